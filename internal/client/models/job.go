package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// JobStatus is the pipeline stage reported by the backend. The progression
// order is informative (used for UI labels only); the server is authoritative
// and may report any status.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusProcessing JobStatus = "processing"
	StatusMeshing    JobStatus = "meshing"
	StatusTexturing  JobStatus = "texturing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Terminal reports whether no further status/progress changes are expected.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Label returns a human-readable stage name for progress display.
func (s JobStatus) Label() string {
	switch s {
	case StatusQueued:
		return "Queued"
	case StatusProcessing:
		return "Processing photos"
	case StatusMeshing:
		return "Building mesh"
	case StatusTexturing:
		return "Applying textures"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	default:
		return string(s)
	}
}

// Job is a single reconstruction task tracked by the backend.
type Job struct {
	ID             uuid.UUID   `json:"id"`
	OwnerID        string      `json:"owner_id"`
	DatasetName    string      `json:"dataset_name"`
	PhotoCount     int         `json:"photo_count"`
	Status         JobStatus   `json:"status"`
	Progress       float64     `json:"progress"`
	Notes          string      `json:"notes,omitempty"`
	ArtifactName   string      `json:"model_file_name,omitempty"`
	CreatedAt      Timestamp   `json:"created_at"`
	UpdatedAt      Timestamp   `json:"updated_at"`
	DownloadEvents []Timestamp `json:"download_events"`
}

// jobAlias avoids recursing into Job.UnmarshalJSON.
type jobAlias Job

// UnmarshalJSON decodes a job and clamps progress to [0,1], mirroring the
// backend's own validator so a misbehaving server cannot break progress bars.
func (j *Job) UnmarshalJSON(data []byte) error {
	var a jobAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.Progress < 0 {
		a.Progress = 0
	}
	if a.Progress > 1 {
		a.Progress = 1
	}
	*j = Job(a)
	return nil
}
