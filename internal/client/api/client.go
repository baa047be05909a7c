// Package api contains the typed request/response contract the client uses
// to talk to the reconstruction backend, and its HTTP implementation.
//
// Every call attaches the caller-supplied bearer token, asks for JSON, and
// classifies failures into the shared taxonomy: *common.TransportError when
// no interpretable response was produced, *common.RemoteError for non-success
// statuses (carrying the raw response body), and *common.DecodingError when a
// body does not match the expected shape.
package api

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/Enfoirer/3D-building-generator/internal/client/models"
)

// Client is the backend contract consumed by the sync engine.
type Client interface {
	// CreateUpload registers a submission by metadata only (JSON body).
	CreateUpload(ctx context.Context, token string, req CreateUploadRequest) (*UploadResponse, error)

	// SubmitUpload registers a submission together with its photo set as a
	// single multipart request. An empty photo set is rejected locally with
	// *common.ValidationError; no request is issued.
	SubmitUpload(ctx context.Context, token string, up MultipartUpload) (*UploadResponse, error)

	ListUploads(ctx context.Context, token string) ([]models.UploadRecord, error)

	// ListJobs returns the caller's jobs, optionally filtered by status.
	ListJobs(ctx context.Context, token string, status *models.JobStatus) ([]models.Job, error)

	GetJob(ctx context.Context, token string, id uuid.UUID) (*models.Job, error)

	GetProfile(ctx context.Context, token string) (*Profile, error)

	// LogDownload records a download event server-side and returns the job
	// with the appended event. The server owns the event list.
	LogDownload(ctx context.Context, token string, jobID uuid.UUID) (*models.Job, error)

	// FetchArtifact streams the finished artifact into w, following
	// redirects, and returns the number of bytes written.
	FetchArtifact(ctx context.Context, token string, jobID uuid.UUID, w io.Writer) (int64, error)

	// Ping probes backend liveness. No authentication required.
	Ping(ctx context.Context) error
}

// CreateUploadRequest is the JSON body of POST /uploads.
type CreateUploadRequest struct {
	DatasetName string `json:"dataset_name"`
	PhotoCount  int    `json:"photo_count"`
	Notes       string `json:"notes,omitempty"`
}

// UploadResponse is the payload returned by both upload variants.
type UploadResponse struct {
	Upload models.UploadRecord `json:"upload"`
	Job    models.Job          `json:"job"`
}

// Profile is the GET /me response.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// PhotoPart describes one file field of a multipart submission.
type PhotoPart struct {
	FieldName   string
	FileName    string
	ContentType string
	Data        []byte
}

// MultipartUpload is a full multipart submission: one text field per scalar
// parameter and one file field per photo, in selection order.
type MultipartUpload struct {
	DatasetName string
	Notes       string
	Photos      []PhotoPart
}

type uploadsListResponse struct {
	Uploads []models.UploadRecord `json:"uploads"`
}

type jobsListResponse struct {
	Jobs []models.Job `json:"jobs"`
}

type logDownloadRequest struct {
	JobID uuid.UUID `json:"job_id"`
}

type logDownloadResponse struct {
	Job models.Job `json:"job"`
}
