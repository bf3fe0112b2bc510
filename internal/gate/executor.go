package gate

import (
	"context"
	"fmt"

	"github.com/sevigo/approval-gate/internal/core"
)

// ActionExecutor carries out actions planned by the orchestrator.
type ActionExecutor interface {
	Execute(ctx context.Context, ref core.ChangeRef, action core.Action) error
}

type hostExecutor struct {
	host core.ReviewHost
}

// NewHostExecutor executes actions against the review host.
func NewHostExecutor(host core.ReviewHost) ActionExecutor {
	return &hostExecutor{host: host}
}

func (e *hostExecutor) Execute(ctx context.Context, ref core.ChangeRef, action core.Action) error {
	switch action.Kind {
	case core.ActionRetractSignal:
		if err := e.host.RetractSignal(ctx, ref, action.SignalID); err != nil {
			return fmt.Errorf("failed to retract signal %d: %w", action.SignalID, err)
		}
	case core.ActionPostComment:
		if err := e.host.PostComment(ctx, ref, action.Body); err != nil {
			return fmt.Errorf("failed to post comment: %w", err)
		}
	default:
		return fmt.Errorf("unknown action kind %q", action.Kind)
	}
	return nil
}

// DryRunExecutor records actions without performing them.
type DryRunExecutor struct {
	Planned []core.Action
}

func (e *DryRunExecutor) Execute(_ context.Context, _ core.ChangeRef, action core.Action) error {
	e.Planned = append(e.Planned, action)
	return nil
}
