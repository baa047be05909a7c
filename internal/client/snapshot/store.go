// Package snapshot persists the client's local cache of identity, jobs, and
// upload records as a single human-readable JSON file.
//
// Saves are atomic from a reader's point of view: the snapshot is written to
// a temporary file in the same directory and moved into place with a rename,
// so a crash mid-write can never leave a half-written file readable as valid.
// Loads fail soft: missing or malformed data yields an absent snapshot, never
// an error, and the engine falls back to empty state. There is no schema
// migration; an undecodable snapshot is treated the same as no snapshot.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Enfoirer/3D-building-generator/internal/client/models"
	"github.com/Enfoirer/3D-building-generator/internal/logging"
)

// Store is the durable snapshot contract consumed by the sync engine.
type Store interface {
	// Load returns the persisted snapshot, or nil when none is available.
	Load(ctx context.Context) *models.Snapshot

	// Save persists the snapshot best-effort: failures are logged, never
	// returned, so persistence cannot break an otherwise successful mutation.
	Save(ctx context.Context, snap *models.Snapshot)

	// Clear removes the persisted snapshot.
	Clear(ctx context.Context)
}

// FileStore keeps the snapshot in a single JSON file that it exclusively owns.
type FileStore struct {
	path string
	log  logging.Logger
}

func NewFileStore(path string, log logging.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

func (s *FileStore) Load(ctx context.Context) *models.Snapshot {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn(ctx, "cannot read snapshot, starting empty", "path", s.path, "error", err)
		}
		return nil
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.Warn(ctx, "cannot decode snapshot, starting empty", "path", s.path, "error", err)
		return nil
	}
	return &snap
}

func (s *FileStore) Save(ctx context.Context, snap *models.Snapshot) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		s.log.Error(ctx, "cannot encode snapshot", "error", err)
		return
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		s.log.Error(ctx, "cannot create snapshot directory", "dir", dir, "error", err)
		return
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		s.log.Error(ctx, "cannot create snapshot temp file", "dir", dir, "error", err)
		return
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		s.log.Error(ctx, "cannot write snapshot", "path", tmpName, "error", err)
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		s.log.Error(ctx, "cannot close snapshot temp file", "path", tmpName, "error", err)
		return
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		s.log.Error(ctx, "cannot replace snapshot", "path", s.path, "error", err)
		return
	}

	s.log.Debug(ctx, "snapshot saved",
		"jobs", len(snap.Jobs), "uploads", len(snap.UploadRecords))
}

func (s *FileStore) Clear(ctx context.Context) {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Warn(ctx, "cannot remove snapshot", "path", s.path, "error", err)
	}
}
