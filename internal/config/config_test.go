package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/approval-gate/internal/core"
)

func loadInTempDir(t *testing.T) (*Config, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)
	return LoadConfig()
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadInTempDir(t)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 4, cfg.Server.MaxWorkers)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "Approval Gate", cfg.Gate.CheckName)
	assert.False(t, cfg.Gate.CodeFreeze)
	assert.False(t, cfg.Gate.HasPolicy())
	assert.Empty(t, cfg.Gate.ApprovalReactions)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("APPROVERS", "core:\n  members: [alice]\n  required: 1\n")
	t.Setenv("RELEASE_CODEFREEZE", "true")
	t.Setenv("APPROVAL_REACTIONS", "+1, rocket ,")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := loadInTempDir(t)
	require.NoError(t, err)

	assert.Equal(t, "ghp_test", cfg.GitHub.Token)
	assert.True(t, cfg.Gate.HasPolicy())
	assert.True(t, cfg.Gate.CodeFreeze)
	assert.Equal(t, []string{"+1", "rocket"}, cfg.Gate.ApprovalReactions)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_FreezeNeedsExactTrue(t *testing.T) {
	for _, v := range []string{"TRUE", "1", "yes", "false", ""} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("RELEASE_CODEFREEZE", v)
			cfg, err := loadInTempDir(t)
			require.NoError(t, err)
			assert.False(t, cfg.Gate.CodeFreeze)
		})
	}
}

func TestLoadConfig_PolicyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "approvers.yml")
	require.NoError(t, os.WriteFile(path, []byte("core:\n  members: [bob]\n  required: 1\n"), 0o600))
	t.Setenv("APPROVERS_FILE", path)

	cfg, err := loadInTempDir(t)
	require.NoError(t, err)
	assert.Contains(t, cfg.Gate.Approvers, "members: [bob]")
}

func TestLoadConfig_InlinePolicyWins(t *testing.T) {
	t.Setenv("APPROVERS", "core:\n  members: [alice]\n  required: 1\n")
	t.Setenv("APPROVERS_FILE", "/does/not/exist.yml")

	cfg, err := loadInTempDir(t)
	require.NoError(t, err)
	assert.Contains(t, cfg.Gate.Approvers, "alice")
}

func TestLoadConfig_MissingPolicyFile(t *testing.T) {
	t.Setenv("APPROVERS_FILE", filepath.Join(t.TempDir(), "missing.yml"))

	_, err := loadInTempDir(t)
	assert.ErrorIs(t, err, ErrPolicyNotFound)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CHECK_NAME=Release Gate\nMAX_WORKERS=2\n"), 0o600))
	t.Chdir(dir)
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "Release Gate", cfg.Gate.CheckName)
	assert.Equal(t, 2, cfg.Server.MaxWorkers)
}

func TestGateConfig_ChangeRef(t *testing.T) {
	tests := []struct {
		name    string
		cfg     GateConfig
		want    core.ChangeRef
		wantOK  bool
		wantErr bool
	}{
		{
			name:   "explicit reference",
			cfg:    GateConfig{PullRequest: "acme/shop#42", Repository: "other/repo", Ref: "refs/pull/1/merge"},
			want:   core.ChangeRef{Owner: "acme", Repo: "shop", Number: 42},
			wantOK: true,
		},
		{
			name:   "actions environment",
			cfg:    GateConfig{Repository: "acme/shop", Ref: "refs/pull/9/merge"},
			want:   core.ChangeRef{Owner: "acme", Repo: "shop", Number: 9},
			wantOK: true,
		},
		{
			name: "branch build",
			cfg:  GateConfig{Repository: "acme/shop", Ref: "refs/heads/main"},
		},
		{
			name:    "malformed explicit reference",
			cfg:     GateConfig{PullRequest: "acme-shop-42"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok, err := tt.cfg.ChangeRef()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, ref)
		})
	}
}

func TestGitHubConfig_Validate(t *testing.T) {
	assert.ErrorIs(t, (&GitHubConfig{}).ValidateToken(), ErrMissing)
	assert.NoError(t, (&GitHubConfig{Token: "t"}).ValidateToken())

	assert.ErrorIs(t, (&GitHubConfig{WebhookSecret: "s", PrivateKeyPath: "k"}).ValidateApp(), ErrMissing)
	assert.ErrorIs(t, (&GitHubConfig{AppID: 1, PrivateKeyPath: "k"}).ValidateApp(), ErrMissing)
	assert.NoError(t, (&GitHubConfig{AppID: 1, WebhookSecret: "s", PrivateKeyPath: "k"}).ValidateApp())
}
