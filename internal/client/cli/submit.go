package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/Enfoirer/3D-building-generator/internal/client/upload"
)

func (a *App) Submit(ctx context.Context) error {
	datasetName, err := GetSimpleText(a.reader, "Dataset name", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	dir, err := GetSimpleText(a.reader, "Photo directory", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	notes, err := GetMultiline(a.reader, "Notes (optional)", os.Stdout)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	photos, err := upload.ReadDir(dir)
	if err != nil {
		printlnFn("Cannot read photos:", err.Error())
		return err
	}

	job, err := a.sync.CreateUpload(ctx, datasetName, notes, photos)
	if err != nil {
		printlnFn("Submission failed:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Submitted %q (%d photos): job %s is %s",
		job.DatasetName, job.PhotoCount, job.ID, job.Status.Label()))
	return nil
}
