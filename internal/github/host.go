package github

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-github/v73/github"

	"github.com/sevigo/approval-gate/internal/core"
)

type reviewHost struct {
	client    Client
	reactions map[string]struct{}
}

// NewReviewHost adapts a GitHub client to core.ReviewHost. Approval signals are
// the reactions on the pull request. When approvalReactions is empty every
// reaction counts; otherwise only the listed contents (e.g. "+1") do.
func NewReviewHost(client Client, approvalReactions []string) core.ReviewHost {
	h := &reviewHost{client: client}
	if len(approvalReactions) > 0 {
		h.reactions = make(map[string]struct{}, len(approvalReactions))
		for _, r := range approvalReactions {
			h.reactions[r] = struct{}{}
		}
	}
	return h
}

func (h *reviewHost) GetChange(ctx context.Context, ref core.ChangeRef) (*core.ChangeState, error) {
	pr, err := h.client.GetPullRequest(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return nil, err
	}
	if pr.GetHead().GetSHA() == "" {
		return nil, fmt.Errorf("pull request %s has no head SHA", ref)
	}
	return &core.ChangeState{
		Ref:          ref,
		HeadSHA:      pr.GetHead().GetSHA(),
		SourceBranch: pr.GetHead().GetRef(),
		TargetBranch: pr.GetBase().GetRef(),
		WebURL:       pr.GetHTMLURL(),
	}, nil
}

// GetLatestCodeTimestamp uses the committer date of the head commit. Rebases
// and amends refresh it; pushing commits created earlier does not.
func (h *reviewHost) GetLatestCodeTimestamp(ctx context.Context, ref core.ChangeRef, sha string) (time.Time, error) {
	commit, err := h.client.GetCommit(ctx, ref.Owner, ref.Repo, sha)
	if err != nil {
		return time.Time{}, err
	}
	date := commit.GetCommit().GetCommitter().GetDate()
	if date.IsZero() {
		return time.Time{}, fmt.Errorf("commit %s has no committer date", sha)
	}
	return date.Time, nil
}

func (h *reviewHost) ListSiblingChanges(ctx context.Context, ref core.ChangeRef, targetBranch string) ([]core.SiblingChange, error) {
	prs, err := h.client.ListPullRequestsByBase(ctx, ref.Owner, ref.Repo, targetBranch)
	if err != nil {
		return nil, err
	}
	siblings := make([]core.SiblingChange, 0, len(prs))
	for _, pr := range prs {
		siblings = append(siblings, core.SiblingChange{
			Number:       pr.GetNumber(),
			SourceBranch: pr.GetHead().GetRef(),
			TargetBranch: pr.GetBase().GetRef(),
			Status:       changeStatus(pr),
			WebURL:       pr.GetHTMLURL(),
		})
	}
	return siblings, nil
}

func (h *reviewHost) ListApprovalSignals(ctx context.Context, ref core.ChangeRef) ([]core.ApprovalSignal, error) {
	reactions, err := h.client.ListIssueReactions(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return nil, err
	}
	var signals []core.ApprovalSignal
	for _, r := range reactions {
		if !h.counts(r.GetContent()) {
			continue
		}
		signals = append(signals, core.ApprovalSignal{
			ID:       r.GetID(),
			Reviewer: r.GetUser().GetLogin(),
			Content:  r.GetContent(),
			At:       r.GetCreatedAt().Time,
		})
	}
	return signals, nil
}

func (h *reviewHost) RetractSignal(ctx context.Context, ref core.ChangeRef, signalID int64) error {
	return h.client.DeleteIssueReaction(ctx, ref.Owner, ref.Repo, ref.Number, signalID)
}

func (h *reviewHost) PostComment(ctx context.Context, ref core.ChangeRef, body string) error {
	return h.client.CreateComment(ctx, ref.Owner, ref.Repo, ref.Number, body)
}

func (h *reviewHost) counts(content string) bool {
	if h.reactions == nil {
		return true
	}
	_, ok := h.reactions[content]
	return ok
}

func changeStatus(pr *github.PullRequest) core.ChangeStatus {
	switch {
	case pr.GetMerged() || !pr.GetMergedAt().IsZero():
		return core.ChangeMerged
	case pr.GetState() == "closed":
		return core.ChangeClosed
	default:
		return core.ChangeOpen
	}
}
