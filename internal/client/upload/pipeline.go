// Package upload validates photo-set submissions and turns them into the
// multipart payload the transport client sends. It performs no retries: a
// failed submission is retried only by the user re-submitting.
package upload

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Enfoirer/3D-building-generator/internal/client/api"
	"github.com/Enfoirer/3D-building-generator/internal/common"
)

// photoFieldName is the repeated file field of POST /uploads.
const photoFieldName = "files"

// Photo is one selected photo, in selection order.
type Photo struct {
	FileName    string
	ContentType string
	Data        []byte
}

// BuildSubmission checks the local preconditions (non-empty trimmed dataset
// name, at least one photo) and produces the multipart description,
// preserving photo selection order. On violation it returns
// *common.ValidationError and no network call must be made.
func BuildSubmission(datasetName, notes string, photos []Photo) (*api.MultipartUpload, error) {
	name := strings.TrimSpace(datasetName)
	if name == "" {
		return nil, &common.ValidationError{Reason: "dataset name is empty"}
	}
	if len(photos) == 0 {
		return nil, &common.ValidationError{Reason: "photo set is empty"}
	}

	parts := make([]api.PhotoPart, 0, len(photos))
	for i, photo := range photos {
		fileName := photo.FileName
		if fileName == "" {
			fileName = fmt.Sprintf("photo_%03d.jpg", i+1)
		}
		contentType := photo.ContentType
		if contentType == "" {
			contentType = contentTypeFor(fileName)
		}
		parts = append(parts, api.PhotoPart{
			FieldName:   photoFieldName,
			FileName:    fileName,
			ContentType: contentType,
			Data:        photo.Data,
		})
	}

	return &api.MultipartUpload{
		DatasetName: name,
		Notes:       strings.TrimSpace(notes),
		Photos:      parts,
	}, nil
}

// photoExtensions are the capture formats the pipeline accepts from disk.
var photoExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".heic": {},
}

// ReadDir loads every supported photo from dir in lexical name order, which
// stands in for selection order when submitting from the command line.
func ReadDir(dir string) ([]Photo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read photo directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := photoExtensions[ext]; ok {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	photos := make([]Photo, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read photo %s: %w", name, err)
		}
		photos = append(photos, Photo{
			FileName:    name,
			ContentType: contentTypeFor(name),
			Data:        data,
		})
	}
	return photos, nil
}

func contentTypeFor(fileName string) string {
	if ct := mime.TypeByExtension(filepath.Ext(fileName)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
