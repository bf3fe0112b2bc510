package github

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v73/github"

	"github.com/sevigo/approval-gate/internal/config"
)

// CreateInstallationClient creates a client authenticated as one installation
// of the GitHub App. Installation tokens are minted and refreshed by the
// transport as needed.
func CreateInstallationClient(cfg *config.Config, installationID int64, logger *slog.Logger) (Client, error) {
	logger.Info("creating GitHub installation client", "installation_id", installationID)

	privateKey, err := os.ReadFile(cfg.GitHub.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key from %s: %w", cfg.GitHub.PrivateKeyPath, err)
	}

	itr, err := ghinstallation.New(http.DefaultTransport, cfg.GitHub.AppID, installationID, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create installation transport for installation ID %d: %w", installationID, err)
	}
	if cfg.GitHub.APIURL != "" {
		itr.BaseURL = strings.TrimSuffix(cfg.GitHub.APIURL, "/")
	}

	client, err := withBaseURL(github.NewClient(&http.Client{Transport: itr}), cfg.GitHub.APIURL)
	if err != nil {
		return nil, err
	}
	return NewGitHubClient(client, logger), nil
}
