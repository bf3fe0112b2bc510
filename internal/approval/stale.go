// Package approval contains the pure decision logic of the gate: stale signal
// filtering, quorum evaluation and the merged-sibling short circuit. Nothing in
// this package performs I/O.
package approval

import (
	"time"

	"github.com/sevigo/approval-gate/internal/core"
)

// FilterStale splits signals into those given after cutoff and those given at
// or before it. A signal at exactly the cutoff predates the code update and is
// stale. Input order is preserved in both results.
func FilterStale(signals []core.ApprovalSignal, cutoff time.Time) (valid, removed []core.ApprovalSignal) {
	for _, s := range signals {
		if s.At.After(cutoff) {
			valid = append(valid, s)
		} else {
			removed = append(removed, s)
		}
	}
	return valid, removed
}
