// Package wire assembles the webhook server with google/wire.
package wire

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/wire"

	"github.com/sevigo/approval-gate/internal/app"
	"github.com/sevigo/approval-gate/internal/config"
	"github.com/sevigo/approval-gate/internal/core"
	"github.com/sevigo/approval-gate/internal/jobs"
	"github.com/sevigo/approval-gate/internal/logger"
	"github.com/sevigo/approval-gate/internal/server"
)

// AppSet provides everything InitializeApp needs.
var AppSet = wire.NewSet(
	app.NewApp,
	server.NewServer,
	config.LoadConfig,
	logger.NewLogger,
	provideLoggerConfig,
	provideLogWriter,
	provideGateJob,
	provideDispatcher,
)

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

func provideLogWriter(cfg *config.Config) (io.Writer, func(), error) {
	w, closeFn, err := logger.OpenOutput(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log output: %w", err)
	}
	return w, closeFn, nil
}

// provideGateJob uses GitHub App installation auth for every evaluation.
func provideGateJob(cfg *config.Config, logger *slog.Logger) core.Job {
	return jobs.NewGateJob(cfg, nil, logger)
}

func provideDispatcher(ctx context.Context, cfg *config.Config, job core.Job, logger *slog.Logger) core.JobDispatcher {
	return jobs.NewDispatcher(ctx, job, cfg.Server.MaxWorkers, logger)
}
