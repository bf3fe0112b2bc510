package gitutil

import "errors"

// ErrInvalidRef is returned for strings that do not identify a pull request.
var ErrInvalidRef = errors.New("invalid pull request reference")
