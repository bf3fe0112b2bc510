package github

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/approval-gate/internal/approval"
	"github.com/sevigo/approval-gate/internal/core"
)

// Check run conclusions used by the gate.
const (
	ConclusionSuccess = "success"
	ConclusionFailure = "failure"
)

// StatusUpdater reports gate evaluations as GitHub check runs.
type StatusUpdater interface {
	InProgress(ctx context.Context, ref core.ChangeRef, headSHA, title, summary string) (int64, error)
	Completed(ctx context.Context, ref core.ChangeRef, checkRunID int64, conclusion, title, summary string) error
}

type statusUpdater struct {
	client    Client
	checkName string
}

// NewStatusUpdater creates a StatusUpdater publishing check runs named checkName.
func NewStatusUpdater(client Client, checkName string) StatusUpdater {
	return &statusUpdater{client: client, checkName: checkName}
}

// InProgress creates a new check run with an "in_progress" status.
func (s *statusUpdater) InProgress(ctx context.Context, ref core.ChangeRef, headSHA, title, summary string) (int64, error) {
	opts := github.CreateCheckRunOptions{
		Name:    s.checkName,
		HeadSHA: headSHA,
		Status:  github.Ptr("in_progress"),
		Output: &github.CheckRunOutput{
			Title:   &title,
			Summary: &summary,
		},
	}
	checkRun, err := s.client.CreateCheckRun(ctx, ref.Owner, ref.Repo, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to create check run: %w", err)
	}
	return checkRun.GetID(), nil
}

// Completed moves an existing check run to "completed".
func (s *statusUpdater) Completed(ctx context.Context, ref core.ChangeRef, checkRunID int64, conclusion, title, summary string) error {
	opts := github.UpdateCheckRunOptions{
		Name:        s.checkName,
		Status:      github.Ptr("completed"),
		Conclusion:  &conclusion,
		CompletedAt: &github.Timestamp{Time: time.Now()},
		Output: &github.CheckRunOutput{
			Title:   &title,
			Summary: &summary,
		},
	}
	_, err := s.client.UpdateCheckRun(ctx, ref.Owner, ref.Repo, checkRunID, opts)
	return err
}

// FormatReport turns an evaluation into a check run conclusion, title and
// markdown summary.
func FormatReport(result *core.EvaluationResult) (conclusion, title, summary string) {
	var sb strings.Builder

	switch {
	case result.ShortCircuited():
		conclusion, title = ConclusionSuccess, "Approved: identical pull request already merged"
		sb.WriteString("### ✅ Approved automatically\n\n")
		for _, s := range result.MergedSiblings {
			fmt.Fprintf(&sb, "- %s\n", s.WebURL)
		}
		return conclusion, title, sb.String()
	case result.Approved:
		conclusion, title = ConclusionSuccess, "Approved"
		sb.WriteString("### ✅ Approved\n\n")
	default:
		conclusion, title = ConclusionFailure, "Not approved"
		if g, ok := result.FailedGroup(); ok {
			title = fmt.Sprintf("Waiting for %d more approval(s) from %s", g.Required-g.Count, g.Name)
		}
		sb.WriteString("### 🚫 Not approved\n\n")
	}

	fmt.Fprintf(&sb, "Current period is **%s**.", approval.ModeDescription(result.Freeze))
	if result.FreezeFallback {
		sb.WriteString(" No freeze-specific groups are configured, the normal policy applies.")
	}
	sb.WriteString("\n\n")

	if report := approval.RenderGroupReport(result); len(report) > 0 {
		sb.WriteString("```\n")
		sb.WriteString(strings.Join(report, "\n"))
		sb.WriteString("\n```\n")
	}

	if len(result.Removed) > 0 {
		fmt.Fprintf(&sb, "\n%d stale approval(s) were removed because commits were pushed after them.\n", len(result.Removed))
	}
	return conclusion, title, sb.String()
}
