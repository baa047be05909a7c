package models

// Snapshot is the complete serializable local cache of identity, jobs, and
// upload records at a point in time. It is the sole unit of durable
// persistence and is always a fully-formed copy of in-memory state.
type Snapshot struct {
	CurrentUser   *Identity      `json:"currentUser,omitempty"`
	Jobs          []Job          `json:"jobs"`
	UploadRecords []UploadRecord `json:"uploadRecords"`
	SavedAt       Timestamp      `json:"savedAt"`
}
