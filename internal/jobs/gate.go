package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sevigo/approval-gate/internal/config"
	"github.com/sevigo/approval-gate/internal/core"
	"github.com/sevigo/approval-gate/internal/gate"
	"github.com/sevigo/approval-gate/internal/github"
	"github.com/sevigo/approval-gate/internal/policy"
)

// ClientFactory returns a GitHub client acting for one App installation.
type ClientFactory func(installationID int64) (github.Client, error)

// GateJob evaluates one pull request and publishes the outcome as a check run.
type GateJob struct {
	cfg       *config.Config
	newClient ClientFactory
	logger    *slog.Logger
}

// NewGateJob creates a GateJob. A nil factory uses GitHub App installation auth.
func NewGateJob(cfg *config.Config, newClient ClientFactory, logger *slog.Logger) core.Job {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if newClient == nil {
		newClient = func(installationID int64) (github.Client, error) {
			return github.CreateInstallationClient(cfg, installationID, logger)
		}
	}
	return &GateJob{cfg: cfg, newClient: newClient, logger: logger}
}

// Run executes the evaluation for req.
func (j *GateJob) Run(ctx context.Context, req *core.GateRequest) error {
	if err := validateRequest(req); err != nil {
		return fmt.Errorf("input validation failed: %w", err)
	}
	if !j.cfg.Gate.HasPolicy() {
		j.logger.Info("approver policy is empty, nothing to evaluate", "change", req.Ref.String())
		return nil
	}

	client, err := j.newClient(req.InstallationID)
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}

	headSHA := req.HeadSHA
	if headSHA == "" {
		pr, err := client.GetPullRequest(ctx, req.Ref.Owner, req.Ref.Repo, req.Ref.Number)
		if err != nil {
			return fmt.Errorf("failed to get PR details: %w", err)
		}
		headSHA = pr.GetHead().GetSHA()
	}

	status := github.NewStatusUpdater(client, j.cfg.Gate.CheckName)
	checkRunID, err := status.InProgress(ctx, req.Ref, headSHA, "Evaluating approvals", "Checking approver groups...")
	if err != nil {
		return fmt.Errorf("failed to set in-progress status: %w", err)
	}

	orchestrator := gate.New(
		github.NewReviewHost(client, j.cfg.Gate.ApprovalReactions),
		gate.Options{Policy: j.cfg.Gate.Approvers, Freeze: j.cfg.Gate.CodeFreeze},
		j.logger,
	)
	result, err := orchestrator.Evaluate(ctx, req.Ref)
	if err != nil {
		title := "Evaluation failed"
		if errors.Is(err, policy.ErrConfig) {
			title = "Approver policy is invalid"
		}
		if statusErr := status.Completed(ctx, req.Ref, checkRunID, github.ConclusionFailure, title, err.Error()); statusErr != nil {
			j.logger.Error("failed to update failure status", "error", statusErr)
		}
		return fmt.Errorf("failed to evaluate %s: %w", req.Ref, err)
	}

	conclusion, title, summary := github.FormatReport(result)
	if err := status.Completed(ctx, req.Ref, checkRunID, conclusion, title, summary); err != nil {
		return fmt.Errorf("failed to update completion status: %w", err)
	}

	j.logger.Info("gate evaluation completed", "change", req.Ref.String(), "conclusion", conclusion)
	return nil
}

func validateRequest(req *core.GateRequest) error {
	if req == nil {
		return fmt.Errorf("request cannot be nil")
	}
	if req.Ref.Owner == "" || req.Ref.Repo == "" {
		return fmt.Errorf("repository cannot be empty")
	}
	if req.Ref.Number <= 0 {
		return fmt.Errorf("pull request number must be positive, got: %d", req.Ref.Number)
	}
	if req.InstallationID <= 0 {
		return fmt.Errorf("installation ID must be positive, got: %d", req.InstallationID)
	}
	return nil
}
