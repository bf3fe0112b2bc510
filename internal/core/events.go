package core

import (
	"fmt"
	"strings"

	"github.com/google/go-github/v73/github"
)

// ApprovalsCommand is the pull-request comment that asks for a re-evaluation.
// Reactions do not produce webhooks, so reviewers use it after reacting.
const ApprovalsCommand = "/approvals"

// pullRequestActions are the pull_request webhook actions that can change the
// outcome of an evaluation.
var pullRequestActions = map[string]struct{}{
	"opened":           {},
	"reopened":         {},
	"synchronize":      {},
	"ready_for_review": {},
	"edited":           {},
}

// RequestFromPullRequest transforms a pull_request webhook into a GateRequest.
// It acts as an anti-corruption layer: payloads missing required data and
// irrelevant actions are rejected.
func RequestFromPullRequest(event *github.PullRequestEvent) (*GateRequest, error) {
	if _, ok := pullRequestActions[event.GetAction()]; !ok {
		return nil, fmt.Errorf("pull request action %q does not affect approvals", event.GetAction())
	}
	if event.GetPullRequest().GetState() != "open" {
		return nil, fmt.Errorf("pull request is not open")
	}

	ref, err := refFromRepo(event.GetRepo(), event.GetPullRequest().GetNumber())
	if err != nil {
		return nil, err
	}
	if event.GetInstallation().GetID() == 0 {
		return nil, fmt.Errorf("installation ID is missing from the event")
	}

	return &GateRequest{
		Ref:            ref,
		HeadSHA:        event.GetPullRequest().GetHead().GetSHA(),
		InstallationID: event.GetInstallation().GetID(),
		Trigger:        "pull_request." + event.GetAction(),
	}, nil
}

// RequestFromIssueComment accepts only "/approvals" comments on pull requests.
func RequestFromIssueComment(event *github.IssueCommentEvent) (*GateRequest, error) {
	if !event.GetIssue().IsPullRequest() {
		return nil, fmt.Errorf("comment is not on a pull request")
	}
	if event.GetAction() != "created" {
		return nil, fmt.Errorf("comment action %q is ignored", event.GetAction())
	}
	if !strings.EqualFold(strings.TrimSpace(event.GetComment().GetBody()), ApprovalsCommand) {
		return nil, fmt.Errorf("comment is not an approvals command")
	}

	ref, err := refFromRepo(event.GetRepo(), event.GetIssue().GetNumber())
	if err != nil {
		return nil, err
	}
	if event.GetInstallation().GetID() == 0 {
		return nil, fmt.Errorf("installation ID is missing from the event")
	}

	return &GateRequest{
		Ref:            ref,
		InstallationID: event.GetInstallation().GetID(),
		Trigger:        "issue_comment",
	}, nil
}

func refFromRepo(repo *github.Repository, number int) (ChangeRef, error) {
	if repo == nil || repo.GetOwner().GetLogin() == "" || repo.GetName() == "" {
		return ChangeRef{}, fmt.Errorf("repository or owner information is missing from the event")
	}
	if number <= 0 {
		return ChangeRef{}, fmt.Errorf("invalid pull request number: %d", number)
	}
	return ChangeRef{Owner: repo.GetOwner().GetLogin(), Repo: repo.GetName(), Number: number}, nil
}
