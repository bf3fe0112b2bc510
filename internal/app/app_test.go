package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/approval-gate/internal/config"
	"github.com/sevigo/approval-gate/internal/core"
	"github.com/sevigo/approval-gate/internal/policy"
	"github.com/sevigo/approval-gate/internal/server"
)

type stubDispatcher struct{ stopped bool }

func (d *stubDispatcher) Dispatch(context.Context, *core.GateRequest) error { return nil }
func (d *stubDispatcher) Stop()                                             { d.stopped = true }

func appConfig(approvers string) *config.Config {
	return &config.Config{
		GitHub: config.GitHubConfig{AppID: 1, WebhookSecret: "s", PrivateKeyPath: "key.pem"},
		Gate:   config.GateConfig{Approvers: approvers},
		Server: config.ServerConfig{Port: "0"},
	}
}

func newApp(cfg *config.Config, d core.JobDispatcher) (*App, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewApp(cfg, server.NewServer(context.Background(), cfg, d, logger), d, logger)
}

func TestNewApp(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *config.Config
		wantErrIs error
	}{
		{name: "valid policy", cfg: appConfig("core:\n  members: [alice]\n  required: 1\n")},
		{name: "no policy", cfg: appConfig("")},
		{name: "broken policy", cfg: appConfig("core:\n  members: [alice]\n  required: 0\n"), wantErrIs: policy.ErrConfig},
		{name: "missing app id", cfg: &config.Config{}, wantErrIs: config.ErrMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := newApp(tt.cfg, &stubDispatcher{})
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				assert.Nil(t, a)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, a)
		})
	}
}

func TestApp_StopDrainsDispatcher(t *testing.T) {
	d := &stubDispatcher{}
	a, err := newApp(appConfig(""), d)
	require.NoError(t, err)

	require.NoError(t, a.Stop())
	assert.True(t, d.stopped)
}
