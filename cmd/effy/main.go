package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/effyhq/effy-cli/internal/buildinfo"
	"github.com/effyhq/effy-cli/internal/client/cli"
	"github.com/effyhq/effy-cli/internal/client/config"
	"github.com/effyhq/effy-cli/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	// Diagnostics go to stderr at warn level so the prompt stays clean;
	// user-facing messages flow through the console notifier instead.
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	app := cli.NewApp(cfg, log)
	app.Run(ctx)

}
