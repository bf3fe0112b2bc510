package approval

import (
	"slices"

	"github.com/sevigo/approval-gate/internal/core"
	"github.com/sevigo/approval-gate/internal/policy"
)

// Evaluate applies the policy to the valid signals.
//
// Groups are visited in policy order and members in configured order. A group
// stops crediting members as soon as its quorum is reached, so the reported
// contributors are the first Required approving members. Evaluation stops at
// the first unsatisfied group; later groups are not reported in that run.
func Evaluate(p *policy.Policy, valid []core.ApprovalSignal) *core.EvaluationResult {
	approvers := make(map[string]struct{}, len(valid))
	for _, s := range valid {
		approvers[s.Reviewer] = struct{}{}
	}

	result := &core.EvaluationResult{Approved: true}
	for _, g := range p.Groups() {
		outcome := evaluateGroup(g, approvers)
		result.Groups = append(result.Groups, outcome)
		if !outcome.Satisfied {
			result.Approved = false
			break
		}
	}
	return result
}

func evaluateGroup(g policy.Group, approvers map[string]struct{}) core.GroupOutcome {
	outcome := core.GroupOutcome{Name: g.Name, Required: g.Required}
	for _, member := range g.Members {
		if _, ok := approvers[member]; !ok {
			continue
		}
		outcome.Contributors = append(outcome.Contributors, member)
		outcome.Count++
		if outcome.Count >= g.Required {
			outcome.Satisfied = true
			return outcome
		}
	}
	outcome.Outstanding = slices.Clone(g.Members)
	return outcome
}
