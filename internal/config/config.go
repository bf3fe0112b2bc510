package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	"github.com/sevigo/approval-gate/internal/core"
	"github.com/sevigo/approval-gate/internal/gitutil"
	"github.com/sevigo/approval-gate/internal/logger"
)

// Config holds the application's configuration values. It is built once at
// the process boundary and passed down explicitly.
type Config struct {
	GitHub  GitHubConfig
	Gate    GateConfig
	Server  ServerConfig
	Logging logger.Config
}

// GitHubConfig holds credentials and endpoints for the review host.
type GitHubConfig struct {
	Token          string
	APIURL         string
	AppID          int64
	PrivateKeyPath string
	WebhookSecret  string
}

// GateConfig holds the approval policy and the change to evaluate.
type GateConfig struct {
	// Approvers is the raw policy document. It is read from ApproversFile
	// when not given inline.
	Approvers     string
	ApproversFile string
	CodeFreeze    bool
	// ApprovalReactions restricts which reaction contents count as approvals.
	// Empty means every reaction counts.
	ApprovalReactions []string
	PullRequest       string
	Repository        string
	Ref               string
	CheckName         string
}

// ServerConfig configures webhook mode.
type ServerConfig struct {
	Port       string
	MaxWorkers int
}

// LoadConfig reads configuration from environment variables, a .env file and
// any bound command-line flags, and sets defaults. Missing values are not
// errors here; each command validates what it needs.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("MAX_WORKERS", 4)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("LOG_OUTPUT", "stdout")
	viper.SetDefault("RELEASE_CODEFREEZE", "false")
	viper.SetDefault("CHECK_NAME", "Approval Gate")
	viper.SetDefault("GITHUB_PRIVATE_KEY_PATH", "keys/approval-gate.private-key.pem")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read .env file: %w", err)
		}
	}

	approvers := viper.GetString("APPROVERS")
	approversFile := viper.GetString("APPROVERS_FILE")
	if strings.TrimSpace(approvers) == "" && approversFile != "" {
		text, err := loadPolicyFile(approversFile)
		if err != nil {
			return nil, err
		}
		approvers = text
	}

	return &Config{
		GitHub: GitHubConfig{
			Token:          viper.GetString("GITHUB_TOKEN"),
			APIURL:         viper.GetString("GITHUB_API_URL"),
			AppID:          viper.GetInt64("GITHUB_APP_ID"),
			PrivateKeyPath: viper.GetString("GITHUB_PRIVATE_KEY_PATH"),
			WebhookSecret:  viper.GetString("GITHUB_WEBHOOK_SECRET"),
		},
		Gate: GateConfig{
			Approvers:         approvers,
			ApproversFile:     approversFile,
			CodeFreeze:        viper.GetString("RELEASE_CODEFREEZE") == "true",
			ApprovalReactions: splitList(viper.GetString("APPROVAL_REACTIONS")),
			PullRequest:       viper.GetString("PULL_REQUEST"),
			Repository:        viper.GetString("GITHUB_REPOSITORY"),
			Ref:               viper.GetString("GITHUB_REF"),
			CheckName:         viper.GetString("CHECK_NAME"),
		},
		Server: ServerConfig{
			Port:       viper.GetString("SERVER_PORT"),
			MaxWorkers: viper.GetInt("MAX_WORKERS"),
		},
		Logging: logger.Config{
			Level:  strings.ToLower(viper.GetString("LOG_LEVEL")),
			Format: viper.GetString("LOG_FORMAT"),
			Output: viper.GetString("LOG_OUTPUT"),
		},
	}, nil
}

// HasPolicy reports whether an approver policy was configured at all.
func (c *GateConfig) HasPolicy() bool {
	return strings.TrimSpace(c.Approvers) != ""
}

// ChangeRef resolves the pull request to evaluate: an explicit PULL_REQUEST
// value wins, otherwise the GitHub Actions environment is consulted. The
// boolean is false when no pull request is in scope.
func (c *GateConfig) ChangeRef() (core.ChangeRef, bool, error) {
	if c.PullRequest != "" {
		ref, err := gitutil.ParseChangeRef(c.PullRequest)
		if err != nil {
			return core.ChangeRef{}, false, err
		}
		return ref, true, nil
	}
	ref, ok := gitutil.RefFromActions(c.Repository, c.Ref)
	return ref, ok, nil
}

// ValidateToken checks the settings needed for token-based access.
func (c *GitHubConfig) ValidateToken() error {
	if c.Token == "" {
		return fmt.Errorf("%w: GITHUB_TOKEN", ErrMissing)
	}
	return nil
}

// ValidateApp checks the settings needed to run as a GitHub App.
func (c *GitHubConfig) ValidateApp() error {
	if c.AppID == 0 {
		return fmt.Errorf("%w: GITHUB_APP_ID", ErrMissing)
	}
	if c.WebhookSecret == "" {
		return fmt.Errorf("%w: GITHUB_WEBHOOK_SECRET", ErrMissing)
	}
	if c.PrivateKeyPath == "" {
		return fmt.Errorf("%w: GITHUB_PRIVATE_KEY_PATH", ErrMissing)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
