package cli

import (
	"context"
	"fmt"
	"time"
)

func (a *App) Jobs(ctx context.Context) error {
	state := a.sync.State()
	if len(state.Jobs) == 0 {
		printlnFn("No jobs yet. Use 'submit' to start one.")
		return nil
	}

	for _, job := range state.Jobs {
		line := fmt.Sprintf("%s  %-11s %3.0f%%  %q  %d photos  %s",
			job.ID, job.Status.Label(), job.Progress*100, job.DatasetName,
			job.PhotoCount, job.CreatedAt.Format(time.DateTime))
		if n := len(job.DownloadEvents); n > 0 {
			line += fmt.Sprintf("  downloaded %dx", n)
		}
		printlnFn(line)
	}
	if state.SyncError != "" {
		printlnFn("warning: last sync failed:", state.SyncError)
	}
	return nil
}

func (a *App) Uploads(ctx context.Context) error {
	state := a.sync.State()
	if len(state.Uploads) == 0 {
		printlnFn("No uploads yet.")
		return nil
	}

	for _, up := range state.Uploads {
		printlnFn(fmt.Sprintf("%s  %q  %d photos  submitted %s  job %s",
			up.ID, up.DatasetName, up.PhotoCount,
			up.SubmittedAt.Format(time.DateTime), up.JobID))
	}
	return nil
}

func (a *App) Sync(ctx context.Context) error {
	if err := a.sync.Refresh(ctx); err != nil {
		printlnFn("Sync failed:", err.Error())
		return err
	}
	state := a.sync.State()
	printlnFn(fmt.Sprintf("Synced: %d jobs, %d uploads", len(state.Jobs), len(state.Uploads)))
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	if err := a.sync.Ping(ctx); err != nil {
		printlnFn("Backend unreachable:", err.Error())
		return err
	}
	printlnFn("Backend is up.")
	return nil
}
