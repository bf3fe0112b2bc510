// Package gitutil parses references to pull requests.
package gitutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sevigo/approval-gate/internal/core"
)

var (
	prURLRegex   = regexp.MustCompile(`^(?:https?://)?[^/]+/([^/]+)/([^/]+)/pull/(\d+)$`)
	shortRegex   = regexp.MustCompile(`^([^/\s]+)/([^/\s#!]+)[#!](\d+)$`)
	actionsRegex = regexp.MustCompile(`^refs/pull/(\d+)/(?:merge|head)$`)
)

// ParsePullRequestURL parses a pull request URL and extracts the owner, repo, and PR number.
// Supported format: https://{host}/{owner}/{repo}/pull/{number}
func ParsePullRequestURL(url string) (owner, repo string, prNumber int, err error) {
	url = strings.TrimSuffix(strings.TrimSpace(url), "/")

	matches := prURLRegex.FindStringSubmatch(url)
	if len(matches) != 4 {
		return "", "", 0, fmt.Errorf("%w: %s", ErrInvalidRef, url)
	}

	prNumber, err = parseNumber(matches[3])
	if err != nil {
		return "", "", 0, err
	}
	return matches[1], matches[2], prNumber, nil
}

// ParseChangeRef accepts a pull request URL or the short forms "owner/repo#123"
// and "owner/repo!123".
func ParseChangeRef(s string) (core.ChangeRef, error) {
	s = strings.TrimSpace(s)
	if m := shortRegex.FindStringSubmatch(s); m != nil {
		n, err := parseNumber(m[3])
		if err != nil {
			return core.ChangeRef{}, err
		}
		return core.ChangeRef{Owner: m[1], Repo: m[2], Number: n}, nil
	}

	owner, repo, n, err := ParsePullRequestURL(s)
	if err != nil {
		return core.ChangeRef{}, err
	}
	return core.ChangeRef{Owner: owner, Repo: repo, Number: n}, nil
}

// RefFromActions builds a reference from the GITHUB_REPOSITORY and GITHUB_REF
// values of a GitHub Actions run. It reports false when the run is not for a
// pull request.
func RefFromActions(repository, ref string) (core.ChangeRef, bool) {
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" {
		return core.ChangeRef{}, false
	}
	m := actionsRegex.FindStringSubmatch(ref)
	if m == nil {
		return core.ChangeRef{}, false
	}
	n, err := parseNumber(m[1])
	if err != nil {
		return core.ChangeRef{}, false
	}
	return core.ChangeRef{Owner: owner, Repo: repo, Number: n}, true
}

func parseNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid PR number '%s': %w", ErrInvalidRef, s, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: PR number must be positive, got %d", ErrInvalidRef, n)
	}
	return n, nil
}
