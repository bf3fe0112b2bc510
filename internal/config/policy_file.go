package config

import (
	"errors"
	"fmt"
	"os"
)

var (
	ErrMissing        = errors.New("required setting is missing")
	ErrPolicyNotFound = errors.New("approver policy file not found")
)

// loadPolicyFile reads the approver policy document from disk. Decoding is
// left to the policy package so that a malformed document is reported at the
// policy stage of an evaluation.
func loadPolicyFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrPolicyNotFound, path)
		}
		return "", fmt.Errorf("failed to read approver policy %s: %w", path, err)
	}
	return string(data), nil
}
