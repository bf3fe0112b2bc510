// Package core defines the essential interfaces and data structures that form the
// backbone of the approval gate. The evaluation engine and the review-host adapters
// only meet through the types declared here.
package core

import "fmt"

// ChangeRef identifies a single pull request on the review host.
type ChangeRef struct {
	Owner  string
	Repo   string
	Number int
}

// FullName returns the "owner/repo" form of the repository.
func (r ChangeRef) FullName() string {
	return r.Owner + "/" + r.Repo
}

func (r ChangeRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

// ChangeState is the review host's view of the change being evaluated.
type ChangeState struct {
	Ref          ChangeRef
	HeadSHA      string
	SourceBranch string
	TargetBranch string
	WebURL       string
}

// ChangeStatus is the lifecycle state of a change on the review host.
type ChangeStatus string

const (
	ChangeOpen   ChangeStatus = "open"
	ChangeClosed ChangeStatus = "closed"
	ChangeMerged ChangeStatus = "merged"
)

// SiblingChange is another change targeting the same branch as the evaluated one.
type SiblingChange struct {
	Number       int
	SourceBranch string
	TargetBranch string
	Status       ChangeStatus
	WebURL       string
}
