package approval

import "github.com/sevigo/approval-gate/internal/core"

// FindMergedSiblings returns the changes that share both the source and the
// target branch with the evaluated change and are already merged.
func FindMergedSiblings(changes []core.SiblingChange, sourceBranch, targetBranch string) []core.SiblingChange {
	var merged []core.SiblingChange
	for _, c := range changes {
		if c.SourceBranch == sourceBranch && c.TargetBranch == targetBranch && c.Status == core.ChangeMerged {
			merged = append(merged, c)
		}
	}
	return merged
}
