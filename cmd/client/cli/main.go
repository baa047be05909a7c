package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Enfoirer/3D-building-generator/internal/buildinfo"
	"github.com/Enfoirer/3D-building-generator/internal/client/cli"
	"github.com/Enfoirer/3D-building-generator/internal/client/config"
	"github.com/Enfoirer/3D-building-generator/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		slog.Error("cannot start client", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
