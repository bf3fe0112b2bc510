package policy

import "errors"

// ErrConfig marks approver policies that are present but cannot be decoded.
var ErrConfig = errors.New("invalid approver policy")
