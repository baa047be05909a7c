package snapshot

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Enfoirer/3D-building-generator/internal/client/models"
	"github.com/Enfoirer/3D-building-generator/internal/logging"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "state.json"), logging.NewNop())
}

func sampleSnapshot() *models.Snapshot {
	created := time.Date(2024, 3, 4, 5, 6, 7, 890123000, time.UTC)
	jobID := uuid.New()
	return &models.Snapshot{
		CurrentUser: &models.Identity{
			ID:          "auth0|u1",
			DisplayName: "Ada",
			Email:       "ada@example.com",
			AvatarURL:   "https://cdn.example.com/ada.png",
		},
		Jobs: []models.Job{{
			ID:             jobID,
			OwnerID:        "auth0|u1",
			DatasetName:    "tower",
			PhotoCount:     30,
			Status:         models.StatusProcessing,
			Progress:       0.4,
			CreatedAt:      models.NewTimestamp(created),
			UpdatedAt:      models.NewTimestamp(created.Add(time.Minute)),
			DownloadEvents: []models.Timestamp{models.NewTimestamp(created.Add(2 * time.Minute))},
		}},
		UploadRecords: []models.UploadRecord{{
			ID:          uuid.New(),
			JobID:       jobID,
			DatasetName: "tower",
			PhotoCount:  30,
			SubmittedAt: models.NewTimestamp(created),
		}},
		SavedAt: models.NewTimestamp(created.Add(3 * time.Minute)),
	}
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := sampleSnapshot()
	store.Save(ctx, want)

	got := store.Load(ctx)
	require.NotNil(t, got)
	require.Equal(t, want, got)

	// Sub-second precision must survive the round trip.
	require.Equal(t, 890123000, got.Jobs[0].CreatedAt.Nanosecond())
}

func TestFileStore_LoadMissingReturnsAbsent(t *testing.T) {
	store := newTestStore(t)
	require.Nil(t, store.Load(context.Background()))
}

func TestFileStore_LoadMalformedReturnsAbsent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{this is not json"), 0o600))

	store := NewFileStore(path, logging.NewNop())
	require.Nil(t, store.Load(context.Background()))
}

func TestFileStore_ClearRemovesSnapshot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Save(ctx, sampleSnapshot())
	require.NotNil(t, store.Load(ctx))

	store.Clear(ctx)
	require.Nil(t, store.Load(ctx))

	// Clearing twice is harmless.
	store.Clear(ctx)
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	store := NewFileStore(path, logging.NewNop())

	store.Save(context.Background(), sampleSnapshot())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "state.json", entries[0].Name())
}

func TestFileStore_WritesHumanReadableJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	store := NewFileStore(path, logging.NewNop())

	store.Save(context.Background(), sampleSnapshot())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "currentUser")
	require.Contains(t, raw, "jobs")
	require.Contains(t, raw, "uploadRecords")
	require.Contains(t, raw, "savedAt")
}
