package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func jobAt(id uuid.UUID, name string, createdAt time.Time) Job {
	return Job{
		ID:          id,
		OwnerID:     "auth0|tester",
		DatasetName: name,
		PhotoCount:  12,
		Status:      StatusQueued,
		CreatedAt:   NewTimestamp(createdAt),
		UpdatedAt:   NewTimestamp(createdAt),
	}
}

func TestMergeJob_LastMergeWins(t *testing.T) {
	id := uuid.New()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	j1 := jobAt(id, "old", base)
	j2 := jobAt(id, "new", base)
	j2.Status = StatusMeshing
	j2.Progress = 0.5

	var jobs []Job
	jobs = MergeJob(jobs, j1)
	jobs = MergeJob(jobs, j1)
	jobs = MergeJob(jobs, j1)
	jobs = MergeJob(jobs, j2)

	require.Len(t, jobs, 1)
	require.Equal(t, j2, jobs[0])
}

func TestMergeJob_FullListRefreshIsIdempotent(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	incoming := []Job{
		jobAt(uuid.New(), "a", base.Add(2*time.Hour)),
		jobAt(uuid.New(), "b", base),
		jobAt(uuid.New(), "c", base.Add(time.Hour)),
	}

	var once []Job
	for _, j := range incoming {
		once = MergeJob(once, j)
	}
	twice := append([]Job(nil), once...)
	for _, j := range incoming {
		twice = MergeJob(twice, j)
	}

	require.Equal(t, once, twice)
}

func TestMergeJob_SortsByCreatedAtDescending(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	oldest := jobAt(uuid.New(), "oldest", base)
	newest := jobAt(uuid.New(), "newest", base.Add(2*time.Hour))
	middle := jobAt(uuid.New(), "middle", base.Add(time.Hour))

	var jobs []Job
	for _, j := range []Job{oldest, newest, middle} {
		jobs = MergeJob(jobs, j)
	}

	require.Equal(t, []string{"newest", "middle", "oldest"},
		[]string{jobs[0].DatasetName, jobs[1].DatasetName, jobs[2].DatasetName})
}

func TestMergeJob_EqualCreatedAtPreservesInsertionOrder(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	first := jobAt(uuid.New(), "first", at)
	second := jobAt(uuid.New(), "second", at)

	var jobs []Job
	jobs = MergeJob(jobs, first)
	jobs = MergeJob(jobs, second)

	require.Equal(t, first.ID, jobs[0].ID)
	require.Equal(t, second.ID, jobs[1].ID)
}

func TestMergeUploadRecord_UpsertAndOrder(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	early := UploadRecord{ID: uuid.New(), JobID: uuid.New(), DatasetName: "early", PhotoCount: 3, SubmittedAt: NewTimestamp(base)}
	late := UploadRecord{ID: uuid.New(), JobID: uuid.New(), DatasetName: "late", PhotoCount: 5, SubmittedAt: NewTimestamp(base.Add(time.Minute))}

	var uploads []UploadRecord
	uploads = MergeUploadRecord(uploads, early)
	uploads = MergeUploadRecord(uploads, late)
	require.Equal(t, "late", uploads[0].DatasetName)

	updated := early
	updated.PhotoCount = 7
	uploads = MergeUploadRecord(uploads, updated)
	require.Len(t, uploads, 2)
	require.Equal(t, 7, uploads[1].PhotoCount)
}
