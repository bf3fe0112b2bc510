package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sevigo/approval-gate/internal/wire"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as a GitHub App and evaluate pull requests from webhooks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		app, cleanup, err := wire.InitializeApp(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		defer cleanup()

		errCh := make(chan error, 1)
		go func() { errCh <- app.Start() }()

		select {
		case err = <-errCh:
		case <-ctx.Done():
			slog.Info("received shutdown signal")
		}

		if stopErr := app.Stop(); stopErr != nil && err == nil {
			err = fmt.Errorf("failed to stop application: %w", stopErr)
		}
		return err
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	serveCmd.Flags().String("port", "", "HTTP port (SERVER_PORT)")
	bindFlags(serveCmd, map[string]string{"SERVER_PORT": "port"})
	rootCmd.AddCommand(serveCmd)
}
