package gate

import "errors"

// ErrNotApproved is returned at the process boundary when the policy is not
// satisfied. The orchestrator itself reports that case as a result, not an error.
var ErrNotApproved = errors.New("pull request is not approved")
