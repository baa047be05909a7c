package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/Enfoirer/3D-building-generator/internal/client/models"
)

func (a *App) Download(ctx context.Context) error {
	raw, err := GetSimpleText(a.reader, "Job id", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	jobID, err := uuid.Parse(raw)
	if err != nil {
		printlnFn("Not a valid job id:", raw)
		return err
	}

	var job *models.Job
	for _, j := range a.sync.State().Jobs {
		if j.ID == jobID {
			job = &j
			break
		}
	}
	if job != nil && job.Status != models.StatusCompleted {
		printlnFn(fmt.Sprintf("Job is %s; only completed jobs have an artifact.", job.Status.Label()))
		return nil
	}

	defaultName := "model.glb"
	if job != nil && job.ArtifactName != "" {
		defaultName = job.ArtifactName
	}
	path, err := GetSimpleText(a.reader, fmt.Sprintf("Save as (default %s)", defaultName), os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	if path == "" {
		path = defaultName
	}

	f, err := os.Create(path)
	if err != nil {
		printlnFn("Cannot create file:", err.Error())
		return err
	}

	n, err := a.sync.DownloadArtifact(ctx, jobID, f)
	if cerr := f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		printlnFn("Download failed:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Saved %d bytes to %s", n, path))
	return nil
}
