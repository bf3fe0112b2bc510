// Package gate runs the end-to-end approval decision for one change.
package gate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sevigo/approval-gate/internal/approval"
	"github.com/sevigo/approval-gate/internal/core"
	"github.com/sevigo/approval-gate/internal/policy"
)

// Options configures a single orchestrator.
type Options struct {
	// Policy is the raw approver policy document. It is decoded only when the
	// evaluation reaches the policy stage.
	Policy string
	Freeze bool
	// Executor performs planned actions. Defaults to the review host.
	Executor ActionExecutor
}

// Orchestrator evaluates changes in the order: merged-sibling check, policy
// load, stale signal retraction, quorum evaluation.
type Orchestrator struct {
	host     core.ReviewHost
	opts     Options
	executor ActionExecutor
	logger   *slog.Logger
}

// New creates an orchestrator that reads from host.
func New(host core.ReviewHost, opts Options, logger *slog.Logger) *Orchestrator {
	if host == nil {
		panic("review host cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	executor := opts.Executor
	if executor == nil {
		executor = NewHostExecutor(host)
	}
	return &Orchestrator{host: host, opts: opts, executor: executor, logger: logger}
}

// Evaluate decides whether the change referenced by ref is approved. Review
// host failures and policy decoding failures abort the evaluation; actions
// executed before the failure are not rolled back.
func (o *Orchestrator) Evaluate(ctx context.Context, ref core.ChangeRef) (*core.EvaluationResult, error) {
	log := o.logger.With("evaluation_id", uuid.NewString(), "change", ref.String())
	result := &core.EvaluationResult{Ref: ref, Freeze: o.opts.Freeze}

	change, err := o.host.GetChange(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request %s: %w", ref, err)
	}
	log.Debug("loaded pull request", "url", change.WebURL, "source", change.SourceBranch, "target", change.TargetBranch, "head_sha", change.HeadSHA)

	siblings, err := o.mergedSiblings(ctx, ref, change)
	if err != nil {
		return nil, err
	}
	if len(siblings) > 0 {
		log.Info("identical pull request already merged, approving", "siblings", len(siblings))
		result.MergedSiblings = siblings
		result.Approved = true
		if err := o.apply(ctx, result, core.PostComment(approval.RenderSiblingNote(siblings))); err != nil {
			return nil, err
		}
		return result, nil
	}

	p, err := policy.Parse([]byte(o.opts.Policy))
	if err != nil {
		log.Error("failed to decode approver policy", "error", err)
		return nil, err
	}
	for _, w := range p.Lint() {
		log.Warn("approver policy cannot be satisfied", "warning", w)
	}

	log.Info("Current period is " + approval.ModeDescription(o.opts.Freeze) + ".")
	effective, fellBack := p.Effective(o.opts.Freeze)
	if fellBack {
		log.Info("no freeze-specific approver groups, applying the normal policy")
	}
	result.FreezeFallback = fellBack

	cutoff, err := o.host.GetLatestCodeTimestamp(ctx, ref, change.HeadSHA)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest commit time for %s: %w", change.HeadSHA, err)
	}
	signals, err := o.host.ListApprovalSignals(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}

	valid, removed := approval.FilterStale(signals, cutoff)
	result.Removed = removed
	if len(removed) > 0 {
		log.Info("retracting stale approvals", "count", len(removed), "cutoff", cutoff)
		actions := make([]core.Action, 0, len(removed)+1)
		for _, s := range removed {
			actions = append(actions, core.RetractSignal(s.ID))
		}
		actions = append(actions, core.PostComment(approval.RenderRemovalAudit(removed, cutoff)))
		if err := o.apply(ctx, result, actions...); err != nil {
			return nil, err
		}
	}

	evaluated := approval.Evaluate(effective, valid)
	result.Approved = evaluated.Approved
	result.Groups = evaluated.Groups
	for _, line := range approval.RenderGroupReport(result) {
		log.Info(line)
	}
	log.Info("evaluation finished", "approved", result.Approved, "valid_signals", len(valid), "groups", effective.Len())
	return result, nil
}

func (o *Orchestrator) mergedSiblings(ctx context.Context, ref core.ChangeRef, change *core.ChangeState) ([]core.SiblingChange, error) {
	changes, err := o.host.ListSiblingChanges(ctx, ref, change.TargetBranch)
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests targeting %s: %w", change.TargetBranch, err)
	}
	var others []core.SiblingChange
	for _, c := range changes {
		if c.Number != ref.Number {
			others = append(others, c)
		}
	}
	return approval.FindMergedSiblings(others, change.SourceBranch, change.TargetBranch), nil
}

func (o *Orchestrator) apply(ctx context.Context, result *core.EvaluationResult, actions ...core.Action) error {
	for _, a := range actions {
		if err := o.executor.Execute(ctx, result.Ref, a); err != nil {
			return err
		}
		result.Actions = append(result.Actions, a)
	}
	return nil
}
