// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"
)

// Client defines the GitHub operations the approval gate needs: pull requests,
// head commits, issue reactions, comments and check runs.
//
//go:generate mockgen -destination=../../mocks/mock_github_client.go -package=mocks . Client
type Client interface {
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)
	GetCommit(ctx context.Context, owner, repo, sha string) (*github.RepositoryCommit, error)
	ListPullRequestsByBase(ctx context.Context, owner, repo, base string) ([]*github.PullRequest, error)
	ListIssueReactions(ctx context.Context, owner, repo string, number int) ([]*github.Reaction, error)
	DeleteIssueReaction(ctx context.Context, owner, repo string, number int, reactionID int64) error
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
	CreateCheckRun(ctx context.Context, owner, repo string, opts github.CreateCheckRunOptions) (*github.CheckRun, error)
	UpdateCheckRun(ctx context.Context, owner, repo string, checkRunID int64, opts github.UpdateCheckRunOptions) (*github.CheckRun, error)
}

type gitHubClient struct {
	client *github.Client
	logger *slog.Logger
}

// NewGitHubClient wraps the official go-github client to provide a focused,
// testable interface for the approval gate.
func NewGitHubClient(client *github.Client, logger *slog.Logger) Client {
	return &gitHubClient{client: client, logger: logger}
}

// NewPATClient creates a client authenticated with a personal access token.
// A non-empty apiURL points the client at a GitHub Enterprise Server instance.
func NewPATClient(ctx context.Context, token, apiURL string, logger *slog.Logger) (Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	client, err := withBaseURL(github.NewClient(tc), apiURL)
	if err != nil {
		return nil, err
	}
	return &gitHubClient{client: client, logger: logger}, nil
}

func withBaseURL(client *github.Client, apiURL string) (*github.Client, error) {
	if apiURL == "" {
		return client, nil
	}
	enterprise, err := client.WithEnterpriseURLs(apiURL, apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
	}
	return enterprise, nil
}

// GetPullRequest retrieves a single pull request by its number.
func (g *gitHubClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	pr, _, err := g.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		g.logger.Error("failed to get pull request", "owner", owner, "repo", repo, "pr", number, "error", err)
		return nil, err
	}
	return pr, nil
}

// GetCommit retrieves a single commit by SHA.
func (g *gitHubClient) GetCommit(ctx context.Context, owner, repo, sha string) (*github.RepositoryCommit, error) {
	commit, _, err := g.client.Repositories.GetCommit(ctx, owner, repo, sha, nil)
	if err != nil {
		g.logger.Error("failed to get commit", "owner", owner, "repo", repo, "sha", sha, "error", err)
		return nil, err
	}
	return commit, nil
}

// ListPullRequestsByBase lists pull requests in any state that target base.
// It follows pagination until every page has been read.
func (g *gitHubClient) ListPullRequestsByBase(ctx context.Context, owner, repo, base string) ([]*github.PullRequest, error) {
	var all []*github.PullRequest
	opts := &github.PullRequestListOptions{
		State:       "all",
		Base:        base,
		ListOptions: github.ListOptions{PerPage: 100},
	}

	for {
		prs, resp, err := g.client.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			g.logger.Error("failed to list pull requests", "owner", owner, "repo", repo, "base", base, "error", err)
			return nil, err
		}
		all = append(all, prs...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// ListIssueReactions lists every reaction on the pull request itself.
func (g *gitHubClient) ListIssueReactions(ctx context.Context, owner, repo string, number int) ([]*github.Reaction, error) {
	var all []*github.Reaction
	opts := &github.ListReactionOptions{ListOptions: github.ListOptions{PerPage: 100}}

	for {
		reactions, resp, err := g.client.Reactions.ListIssueReactions(ctx, owner, repo, number, opts)
		if err != nil {
			g.logger.Error("failed to list reactions", "owner", owner, "repo", repo, "pr", number, "error", err)
			return nil, err
		}
		all = append(all, reactions...)

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// DeleteIssueReaction removes a reaction from the pull request.
func (g *gitHubClient) DeleteIssueReaction(ctx context.Context, owner, repo string, number int, reactionID int64) error {
	_, err := g.client.Reactions.DeleteIssueReaction(ctx, owner, repo, number, reactionID)
	if err != nil {
		g.logger.Error("failed to delete reaction", "owner", owner, "repo", repo, "pr", number, "reaction_id", reactionID, "error", err)
	}
	return err
}

// CreateComment creates a new comment on a pull request.
func (g *gitHubClient) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	comment := &github.IssueComment{Body: &body}
	_, _, err := g.client.Issues.CreateComment(ctx, owner, repo, number, comment)
	if err != nil {
		g.logger.Error("failed to create comment", "owner", owner, "repo", repo, "pr", number, "error", err)
	}
	return err
}

// CreateCheckRun creates a new check run.
func (g *gitHubClient) CreateCheckRun(ctx context.Context, owner, repo string, opts github.CreateCheckRunOptions) (*github.CheckRun, error) {
	checkRun, _, err := g.client.Checks.CreateCheckRun(ctx, owner, repo, opts)
	if err != nil {
		g.logger.Error("failed to create check run", "owner", owner, "repo", repo, "error", err)
		return nil, err
	}
	return checkRun, nil
}

// UpdateCheckRun updates an existing check run.
func (g *gitHubClient) UpdateCheckRun(ctx context.Context, owner, repo string, checkRunID int64, opts github.UpdateCheckRunOptions) (*github.CheckRun, error) {
	checkRun, _, err := g.client.Checks.UpdateCheckRun(ctx, owner, repo, checkRunID, opts)
	if err != nil {
		g.logger.Error("failed to update check run", "owner", owner, "repo", repo, "checkRunID", checkRunID, "error", err)
	}
	return checkRun, err
}
