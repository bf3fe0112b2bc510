package core

import "time"

// ApprovalSignal is one reviewer's reaction on a change. The ID is what the
// review host needs to retract it.
type ApprovalSignal struct {
	ID       int64
	Reviewer string
	Content  string
	At       time.Time
}
