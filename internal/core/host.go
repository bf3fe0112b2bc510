package core

import (
	"context"
	"time"
)

// ReviewHost is the set of review-system operations the approval gate consumes.
// Every call is a blocking request; errors are not retried by callers.
//
//go:generate mockgen -destination=../../mocks/mock_review_host.go -package=mocks . ReviewHost
type ReviewHost interface {
	GetChange(ctx context.Context, ref ChangeRef) (*ChangeState, error)
	// GetLatestCodeTimestamp returns the time of the latest code update on the
	// change. Signals at or before it are stale.
	GetLatestCodeTimestamp(ctx context.Context, ref ChangeRef, sha string) (time.Time, error)
	ListSiblingChanges(ctx context.Context, ref ChangeRef, targetBranch string) ([]SiblingChange, error)
	ListApprovalSignals(ctx context.Context, ref ChangeRef) ([]ApprovalSignal, error)
	RetractSignal(ctx context.Context, ref ChangeRef, signalID int64) error
	PostComment(ctx context.Context, ref ChangeRef, body string) error
}
