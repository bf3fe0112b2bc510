package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sevigo/approval-gate/internal/gate"
)

// Process exit codes.
const (
	exitOK          = 0
	exitNotApproved = 1
	exitFailure     = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	code := exitCode(err)
	if code == exitFailure {
		slog.Error("approval-gate failed", "error", err)
	}
	os.Exit(code)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, gate.ErrNotApproved):
		return exitNotApproved
	default:
		return exitFailure
	}
}
