package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/Enfoirer/3D-building-generator/internal/client/models"
	"github.com/Enfoirer/3D-building-generator/internal/common"
	"github.com/Enfoirer/3D-building-generator/internal/logging"
)

// HTTPClient is the Client implementation over plain HTTP/JSON.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger
}

func NewHTTPClient(baseURL string, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        log,
	}
}

// send issues one authenticated request and returns the raw success body.
// Statuses in [200,300) are success; anything else becomes a RemoteError
// carrying the response body text, and transport-level failures become a
// TransportError.
func (c *HTTPClient) send(ctx context.Context, method, path, token string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &common.TransportError{Err: err}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &common.TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err != nil {
			return nil, &common.TransportError{Err: err}
		}
		return data, nil
	}

	message := strings.TrimSpace(string(data))
	if err != nil || message == "" {
		message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
	}
	return nil, &common.RemoteError{StatusCode: resp.StatusCode, Message: message}
}

// sendJSON marshals body (when non-nil) and issues the request.
func (c *HTTPClient) sendJSON(ctx context.Context, method, path, token string, query url.Values, body any) ([]byte, error) {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &common.TransportError{Err: err}
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, token, query, reader, contentType)
}

// decode unmarshals a success body into out, preserving DecodingError values
// raised by tolerant field decoders (timestamps).
func decode(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		var decErr *common.DecodingError
		if errors.As(err, &decErr) {
			return err
		}
		return &common.DecodingError{Err: err}
	}
	return nil
}

func (c *HTTPClient) CreateUpload(ctx context.Context, token string, req CreateUploadRequest) (*UploadResponse, error) {
	data, err := c.sendJSON(ctx, http.MethodPost, "/uploads", token, nil, req)
	if err != nil {
		return nil, err
	}
	var resp UploadResponse
	if err := decode(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) SubmitUpload(ctx context.Context, token string, up MultipartUpload) (*UploadResponse, error) {
	if len(up.Photos) == 0 {
		return nil, &common.ValidationError{Reason: "photo set is empty"}
	}

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	if err := mw.WriteField("dataset_name", up.DatasetName); err != nil {
		return nil, &common.TransportError{Err: err}
	}
	if up.Notes != "" {
		if err := mw.WriteField("notes", up.Notes); err != nil {
			return nil, &common.TransportError{Err: err}
		}
	}
	for _, photo := range up.Photos {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, photo.FieldName, photo.FileName))
		header.Set("Content-Type", photo.ContentType)
		part, err := mw.CreatePart(header)
		if err != nil {
			return nil, &common.TransportError{Err: err}
		}
		if _, err := part.Write(photo.Data); err != nil {
			return nil, &common.TransportError{Err: err}
		}
	}
	if err := mw.Close(); err != nil {
		return nil, &common.TransportError{Err: err}
	}

	data, err := c.send(ctx, http.MethodPost, "/uploads", token, nil, buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	var resp UploadResponse
	if err := decode(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) ListUploads(ctx context.Context, token string) ([]models.UploadRecord, error) {
	data, err := c.send(ctx, http.MethodGet, "/uploads", token, nil, nil, "")
	if err != nil {
		return nil, err
	}
	var resp uploadsListResponse
	if err := decode(data, &resp); err != nil {
		return nil, err
	}
	return resp.Uploads, nil
}

func (c *HTTPClient) ListJobs(ctx context.Context, token string, status *models.JobStatus) ([]models.Job, error) {
	var query url.Values
	if status != nil {
		query = url.Values{"status": {string(*status)}}
	}
	data, err := c.send(ctx, http.MethodGet, "/jobs", token, query, nil, "")
	if err != nil {
		return nil, err
	}
	var resp jobsListResponse
	if err := decode(data, &resp); err != nil {
		return nil, err
	}
	return resp.Jobs, nil
}

func (c *HTTPClient) GetJob(ctx context.Context, token string, id uuid.UUID) (*models.Job, error) {
	data, err := c.send(ctx, http.MethodGet, "/jobs/"+id.String(), token, nil, nil, "")
	if err != nil {
		return nil, err
	}
	var job models.Job
	if err := decode(data, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context, token string) (*Profile, error) {
	data, err := c.send(ctx, http.MethodGet, "/me", token, nil, nil, "")
	if err != nil {
		return nil, err
	}
	var profile Profile
	if err := decode(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *HTTPClient) LogDownload(ctx context.Context, token string, jobID uuid.UUID) (*models.Job, error) {
	data, err := c.sendJSON(ctx, http.MethodPost, "/downloads", token, nil, logDownloadRequest{JobID: jobID})
	if err != nil {
		return nil, err
	}
	var resp logDownloadResponse
	if err := decode(data, &resp); err != nil {
		return nil, err
	}
	return &resp.Job, nil
}

func (c *HTTPClient) FetchArtifact(ctx context.Context, token string, jobID uuid.UUID, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/jobs/"+jobID.String()+"/artifact", nil)
	if err != nil {
		return 0, &common.TransportError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &common.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		message := strings.TrimSpace(string(data))
		if message == "" {
			message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return 0, &common.RemoteError{StatusCode: resp.StatusCode, Message: message}
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, &common.TransportError{Err: err}
	}
	return n, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.send(ctx, http.MethodGet, "/health", "", nil, nil, "")
	return err
}
