package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/approval-gate/internal/config"
	"github.com/sevigo/approval-gate/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "approval-gate",
	Short: "approval-gate enforces approver-group quorums on GitHub pull requests.",
	Long: `approval-gate checks that a pull request has collected enough approvals
(reactions) from each configured approver group, and removes approvals
given before the latest push.

Configuration comes from the environment, a .env file in the working
directory, and flags. The policy is read from APPROVERS or APPROVERS_FILE.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringP("github-token", "t", "", "GitHub token (GITHUB_TOKEN)")
	flags.String("api-url", "", "GitHub Enterprise API URL (GITHUB_API_URL)")
	flags.String("approvers-file", "", "Path to the approver policy (APPROVERS_FILE)")
	flags.String("log-level", "", "Log level: debug, info, warn, error (LOG_LEVEL)")
	flags.String("log-format", "", "Log format: text or json (LOG_FORMAT)")

	bindFlags(rootCmd, map[string]string{
		"GITHUB_TOKEN":   "github-token",
		"GITHUB_API_URL": "api-url",
		"APPROVERS_FILE": "approvers-file",
		"LOG_LEVEL":      "log-level",
		"LOG_FORMAT":     "log-format",
	})
}

// initConfig lets CI-style names with dashes resolve to environment keys.
func initConfig() {
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func bindFlags(cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		f := cmd.PersistentFlags().Lookup(flag)
		if f == nil {
			f = cmd.Flags().Lookup(flag)
		}
		if err := viper.BindPFlag(key, f); err != nil {
			slog.Error("Error binding flag", "flag", flag, "error", err)
			os.Exit(exitFailure)
		}
	}
}

// loadRuntime builds the configuration and the logger for a command. The
// returned cleanup closes the log output and must always be called.
func loadRuntime() (*config.Config, *slog.Logger, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, func() {}, fmt.Errorf("failed to load config: %w", err)
	}
	w, closeFn, err := logger.OpenOutput(cfg.Logging)
	if err != nil {
		return nil, nil, func() {}, fmt.Errorf("failed to open log output: %w", err)
	}
	log := logger.NewLogger(cfg.Logging, w)
	slog.SetDefault(log)
	return cfg, log, closeFn, nil
}
