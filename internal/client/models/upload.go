package models

import "github.com/google/uuid"

// UploadRecord is an immutable log entry for one submission event, linked to
// the job it spawned. Records are created at submission time, never mutated,
// and removed only on sign-out.
type UploadRecord struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"job_id"`
	DatasetName string    `json:"dataset_name"`
	PhotoCount  int       `json:"photo_count"`
	SubmittedAt Timestamp `json:"submitted_at"`
}
