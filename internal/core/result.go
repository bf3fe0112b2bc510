package core

// GroupOutcome is the evaluation of a single approver group.
type GroupOutcome struct {
	Name         string
	Satisfied    bool
	Count        int
	Required     int
	Contributors []string
	// Outstanding lists every configured member of an unsatisfied group, in
	// configured order. It is empty for satisfied groups.
	Outstanding []string
}

// EvaluationResult is produced once per evaluated change.
type EvaluationResult struct {
	Ref      ChangeRef
	Approved bool
	// Freeze is the mode whose policy was applied. FreezeFallback is set when
	// freeze mode had no groups of its own and the normal policy was used.
	Freeze         bool
	FreezeFallback bool
	Groups         []GroupOutcome
	Removed        []ApprovalSignal
	// MergedSiblings is non-empty when the run was short-circuited.
	MergedSiblings []SiblingChange
	Actions        []Action
}

// ShortCircuited reports whether quorum evaluation was skipped because an
// identical change had already been merged.
func (r *EvaluationResult) ShortCircuited() bool {
	return len(r.MergedSiblings) > 0
}

// FailedGroup returns the first unsatisfied group, if any.
func (r *EvaluationResult) FailedGroup() (GroupOutcome, bool) {
	for _, g := range r.Groups {
		if !g.Satisfied {
			return g, true
		}
	}
	return GroupOutcome{}, false
}
