package models

import "sort"

// MergeJob reconciles an incoming job into the local list: replace in place
// when a job with the same id exists, otherwise insert. The list is then
// stably re-sorted by creation time, most recent first, so refreshing with
// the same listing twice is idempotent.
func MergeJob(jobs []Job, incoming Job) []Job {
	replaced := false
	for i := range jobs {
		if jobs[i].ID == incoming.ID {
			jobs[i] = incoming
			replaced = true
			break
		}
	}
	if !replaced {
		jobs = append(jobs, incoming)
	}
	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt.Time)
	})
	return jobs
}

// MergeUploadRecord applies the same id-keyed upsert to upload records,
// ordered by submission time descending.
func MergeUploadRecord(uploads []UploadRecord, incoming UploadRecord) []UploadRecord {
	replaced := false
	for i := range uploads {
		if uploads[i].ID == incoming.ID {
			uploads[i] = incoming
			replaced = true
			break
		}
	}
	if !replaced {
		uploads = append(uploads, incoming)
	}
	sort.SliceStable(uploads, func(i, j int) bool {
		return uploads[i].SubmittedAt.After(uploads[j].SubmittedAt.Time)
	})
	return uploads
}
