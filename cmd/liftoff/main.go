// Package main provides the liftoff CLI, the deployment bootstrapper for the
// API server.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/liftoff-dev/liftoff/internal/bootstrap"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		slog.Error("bootstrap failed", "error", err)
		os.Exit(bootstrap.ExitCode(err))
	}
}
