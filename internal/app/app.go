// Package app assembles and runs the approval gate webhook server.
package app

import (
	"fmt"
	"log/slog"

	"github.com/sevigo/approval-gate/internal/config"
	"github.com/sevigo/approval-gate/internal/core"
	"github.com/sevigo/approval-gate/internal/policy"
	"github.com/sevigo/approval-gate/internal/server"
)

// App holds the main application components.
type App struct {
	cfg        *config.Config
	server     *server.Server
	dispatcher core.JobDispatcher
	logger     *slog.Logger
}

// NewApp validates the server configuration and the approver policy up
// front, so a broken deployment fails at startup rather than on every webhook.
func NewApp(cfg *config.Config, srv *server.Server, dispatcher core.JobDispatcher, logger *slog.Logger) (*App, error) {
	if err := cfg.GitHub.ValidateApp(); err != nil {
		return nil, err
	}
	if cfg.Gate.HasPolicy() {
		p, err := policy.Parse([]byte(cfg.Gate.Approvers))
		if err != nil {
			return nil, fmt.Errorf("failed to load approver policy: %w", err)
		}
		for _, warning := range p.Lint() {
			logger.Warn("approver policy", "warning", warning)
		}
		logger.Info("approver policy loaded", "groups", p.Len(), "code_freeze", cfg.Gate.CodeFreeze)
	} else {
		logger.Warn("no approver policy configured, every evaluation will be skipped")
	}

	return &App{
		cfg:        cfg,
		server:     srv,
		dispatcher: dispatcher,
		logger:     logger,
	}, nil
}

// Start runs the HTTP server.
func (a *App) Start() error {
	a.logger.Info("starting approval gate",
		"address", a.server.Addr(),
		"max_workers", a.cfg.Server.MaxWorkers)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the server first so no new requests arrive, then drains
// queued evaluations.
func (a *App) Stop() error {
	a.logger.Info("shutting down approval gate")

	serverErr := a.server.Stop()
	if serverErr != nil {
		a.logger.Error("error during HTTP server shutdown", "error", serverErr)
	}

	a.dispatcher.Stop()

	if serverErr != nil {
		return serverErr
	}
	a.logger.Info("approval gate stopped")
	return nil
}
