package approval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/approval-gate/internal/core"
	"github.com/sevigo/approval-gate/internal/policy"
)

var cutoff = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func signal(id int64, reviewer string, offset time.Duration) core.ApprovalSignal {
	return core.ApprovalSignal{ID: id, Reviewer: reviewer, Content: "+1", At: cutoff.Add(offset)}
}

func TestFilterStale(t *testing.T) {
	signals := []core.ApprovalSignal{
		signal(1, "alice", -time.Hour),
		signal(2, "bob", 0),
		signal(3, "carol", time.Second),
		signal(4, "alice", time.Minute),
		signal(5, "dave", -time.Nanosecond),
	}

	valid, removed := FilterStale(signals, cutoff)

	assert.Equal(t, []int64{3, 4}, ids(valid))
	assert.Equal(t, []int64{1, 2, 5}, ids(removed))
	assert.Len(t, append(valid, removed...), len(signals))
}

func TestFilterStale_Empty(t *testing.T) {
	valid, removed := FilterStale(nil, cutoff)
	assert.Empty(t, valid)
	assert.Empty(t, removed)
}

func TestEvaluate(t *testing.T) {
	core3 := policy.Group{Name: "core", Members: []string{"alice", "bob", "carol"}, Required: 2}
	qa := policy.Group{Name: "qa", Members: []string{"dave", "erin"}, Required: 1}
	docs := policy.Group{Name: "docs", Members: []string{"frank"}, Required: 1}

	tests := []struct {
		name         string
		policy       *policy.Policy
		reviewers    []string
		wantApproved bool
		wantGroups   []core.GroupOutcome
	}{
		{
			name:         "quorum reached stops at required members",
			policy:       policy.New(core3),
			reviewers:    []string{"carol", "bob", "alice"},
			wantApproved: true,
			wantGroups: []core.GroupOutcome{
				{Name: "core", Satisfied: true, Count: 2, Required: 2, Contributors: []string{"alice", "bob"}},
			},
		},
		{
			name:         "later members satisfy quorum",
			policy:       policy.New(core3),
			reviewers:    []string{"bob", "carol"},
			wantApproved: true,
			wantGroups: []core.GroupOutcome{
				{Name: "core", Satisfied: true, Count: 2, Required: 2, Contributors: []string{"bob", "carol"}},
			},
		},
		{
			name:         "unsatisfied group lists every member",
			policy:       policy.New(core3),
			reviewers:    []string{"bob", "mallory"},
			wantApproved: false,
			wantGroups: []core.GroupOutcome{
				{Name: "core", Count: 1, Required: 2, Contributors: []string{"bob"}, Outstanding: []string{"alice", "bob", "carol"}},
			},
		},
		{
			name:         "reviewer counts in every group",
			policy:       policy.New(policy.Group{Name: "a", Members: []string{"alice"}, Required: 1}, policy.Group{Name: "b", Members: []string{"bob", "alice"}, Required: 1}),
			reviewers:    []string{"alice"},
			wantApproved: true,
			wantGroups: []core.GroupOutcome{
				{Name: "a", Satisfied: true, Count: 1, Required: 1, Contributors: []string{"alice"}},
				{Name: "b", Satisfied: true, Count: 1, Required: 1, Contributors: []string{"alice"}},
			},
		},
		{
			name:         "stops at first unsatisfied group",
			policy:       policy.New(core3, qa, docs),
			reviewers:    []string{"alice", "bob", "frank"},
			wantApproved: false,
			wantGroups: []core.GroupOutcome{
				{Name: "core", Satisfied: true, Count: 2, Required: 2, Contributors: []string{"alice", "bob"}},
				{Name: "qa", Count: 0, Required: 1, Outstanding: []string{"dave", "erin"}},
			},
		},
		{
			name:         "ungrantable group fails without panicking",
			policy:       policy.New(policy.Group{Name: "security", Members: []string{"alice"}, Required: 3}),
			reviewers:    []string{"alice"},
			wantApproved: false,
			wantGroups: []core.GroupOutcome{
				{Name: "security", Count: 1, Required: 3, Contributors: []string{"alice"}, Outstanding: []string{"alice"}},
			},
		},
		{
			name:         "empty policy passes",
			policy:       policy.New(),
			reviewers:    nil,
			wantApproved: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var valid []core.ApprovalSignal
			for i, r := range tt.reviewers {
				valid = append(valid, signal(int64(i+1), r, time.Hour))
			}

			got := Evaluate(tt.policy, valid)
			assert.Equal(t, tt.wantApproved, got.Approved)
			assert.Equal(t, tt.wantGroups, got.Groups)
		})
	}
}

func TestEvaluate_DuplicateSignalsCountOnce(t *testing.T) {
	p := policy.New(policy.Group{Name: "core", Members: []string{"alice", "bob"}, Required: 2})
	valid := []core.ApprovalSignal{signal(1, "alice", time.Hour), signal(2, "alice", 2*time.Hour)}

	got := Evaluate(p, valid)
	assert.False(t, got.Approved)
	assert.Equal(t, 1, got.Groups[0].Count)
}

func TestEvaluate_Idempotent(t *testing.T) {
	p := policy.New(
		policy.Group{Name: "core", Members: []string{"alice", "bob"}, Required: 1},
		policy.Group{Name: "qa", Members: []string{"carol"}, Required: 1},
	)
	valid := []core.ApprovalSignal{signal(1, "bob", time.Hour)}

	assert.Equal(t, Evaluate(p, valid), Evaluate(p, valid))
}

func TestScenario_SingleValidApproval(t *testing.T) {
	p, err := policy.Parse([]byte("core:\n  members: [alice, bob]\n  required: 1\n  for_freeze: false\n"))
	require.NoError(t, err)
	effective, _ := p.Effective(false)

	valid, removed := FilterStale([]core.ApprovalSignal{signal(7, "bob", time.Minute)}, cutoff)
	require.Empty(t, removed)

	assert.True(t, Evaluate(effective, valid).Approved)
}

func TestScenario_StaleApprovalRemoved(t *testing.T) {
	p, err := policy.Parse([]byte("core:\n  members: [alice, bob]\n  required: 1\n  for_freeze: false\n"))
	require.NoError(t, err)
	effective, _ := p.Effective(false)

	valid, removed := FilterStale([]core.ApprovalSignal{signal(7, "alice", -time.Minute)}, cutoff)
	require.Empty(t, valid)
	require.Len(t, removed, 1)

	result := Evaluate(effective, valid)
	assert.False(t, result.Approved)
	assert.Contains(t, RenderRemovalAudit(removed, cutoff), "from alice")
}

func TestFindMergedSiblings(t *testing.T) {
	changes := []core.SiblingChange{
		{Number: 1, SourceBranch: "feature", TargetBranch: "release/1.0", Status: core.ChangeMerged, WebURL: "u1"},
		{Number: 2, SourceBranch: "feature", TargetBranch: "release/1.0", Status: core.ChangeOpen, WebURL: "u2"},
		{Number: 3, SourceBranch: "feature", TargetBranch: "release/1.0", Status: core.ChangeClosed, WebURL: "u3"},
		{Number: 4, SourceBranch: "other", TargetBranch: "release/1.0", Status: core.ChangeMerged, WebURL: "u4"},
		{Number: 5, SourceBranch: "feature", TargetBranch: "main", Status: core.ChangeMerged, WebURL: "u5"},
		{Number: 6, SourceBranch: "feature", TargetBranch: "release/1.0", Status: core.ChangeMerged, WebURL: "u6"},
	}

	got := FindMergedSiblings(changes, "feature", "release/1.0")
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Number)
	assert.Equal(t, 6, got[1].Number)

	assert.Empty(t, FindMergedSiblings(changes, "feature", "develop"))
}

func TestRenderRemovalAudit(t *testing.T) {
	assert.Empty(t, RenderRemovalAudit(nil, cutoff))

	audit := RenderRemovalAudit([]core.ApprovalSignal{
		signal(1, "alice", -time.Hour),
		{ID: 2, Reviewer: "bob", At: cutoff},
	}, cutoff)

	assert.Equal(t,
		" - Removed :+1: from alice (2024-03-01T11:00:00Z), commits were pushed after it (2024-03-01T12:00:00Z).\n"+
			" - Removed approval from bob (2024-03-01T12:00:00Z), commits were pushed after it (2024-03-01T12:00:00Z).\n",
		audit)
}

func TestRenderSiblingNote(t *testing.T) {
	assert.Empty(t, RenderSiblingNote(nil))

	note := RenderSiblingNote([]core.SiblingChange{
		{WebURL: "https://github.com/o/r/pull/1"},
		{WebURL: "https://github.com/o/r/pull/4"},
	})
	assert.Equal(t, "An identical pull request (https://github.com/o/r/pull/1) was already approved and merged, approving the current one automatically:\n"+
		"https://github.com/o/r/pull/1\nhttps://github.com/o/r/pull/4", note)
}

func TestRenderGroupReport(t *testing.T) {
	result := &core.EvaluationResult{Groups: []core.GroupOutcome{
		{Name: "core", Satisfied: true, Count: 2, Required: 2, Contributors: []string{"alice", "bob"}},
		{Name: "qa", Count: 0, Required: 1, Outstanding: []string{"dave", "erin"}},
	}}

	assert.Equal(t, []string{
		"[+] Approved by group of core (alice,bob).",
		"[-] Need to be approved by group of qa (current approves: 0, need: 1):",
		"  - dave",
		"  - erin",
	}, RenderGroupReport(result))
}

func ids(signals []core.ApprovalSignal) []int64 {
	var out []int64
	for _, s := range signals {
		out = append(out, s.ID)
	}
	return out
}
