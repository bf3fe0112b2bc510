package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/sevigo/approval-gate/internal/config"
	"github.com/sevigo/approval-gate/internal/core"
	"github.com/sevigo/approval-gate/internal/gate"
	"github.com/sevigo/approval-gate/internal/github"
)

var dryRun bool

var checkCmd = &cobra.Command{
	Use:   "check [pr-ref]",
	Short: "Evaluate the approver policy for a pull request",
	Long: `Evaluate the approver policy for a pull request.

The pull request is taken from the argument, PULL_REQUEST, or the GitHub
Actions environment (GITHUB_REPOSITORY and GITHUB_REF). Exits 0 when the
pull request is approved or there is nothing to check, 1 when approvals are
missing and 2 on configuration or API errors.

Examples:
  approval-gate check https://github.com/owner/repo/pull/123
  approval-gate check owner/repo#123 --freeze
  approval-gate check owner/repo#123 --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	checkCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Do not remove approvals or post comments; print what would happen")
	checkCmd.Flags().Bool("freeze", false, "Apply the code-freeze policy (RELEASE_CODEFREEZE)")
	bindFlags(checkCmd, map[string]string{"RELEASE_CODEFREEZE": "freeze"})
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, log, cleanup, err := loadRuntime()
	defer cleanup()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Gate.PullRequest = args[0]
	}

	ref, ok, err := preflight(cfg, log)
	if err != nil || !ok {
		return err
	}

	ctx := cmd.Context()
	client, err := github.NewPATClient(ctx, cfg.GitHub.Token, cfg.GitHub.APIURL, log)
	if err != nil {
		return err
	}

	opts := gate.Options{Policy: cfg.Gate.Approvers, Freeze: cfg.Gate.CodeFreeze}
	var recorder *gate.DryRunExecutor
	if dryRun {
		recorder = &gate.DryRunExecutor{}
		opts.Executor = recorder
	}

	result, err := gate.New(github.NewReviewHost(client, cfg.Gate.ApprovalReactions), opts, log).Evaluate(ctx, ref)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printResult(out, result)
	if recorder != nil {
		printPlanned(out, recorder.Planned)
	}

	if !result.Approved {
		return gate.ErrNotApproved
	}
	return nil
}

// preflight resolves the pull request to check. It reports false when there
// is nothing to do, which is a success and happens before any API call.
func preflight(cfg *config.Config, log *slog.Logger) (core.ChangeRef, bool, error) {
	if !cfg.Gate.HasPolicy() {
		log.Info("no approver policy configured, nothing to check")
		return core.ChangeRef{}, false, nil
	}
	ref, ok, err := cfg.Gate.ChangeRef()
	if err != nil {
		return core.ChangeRef{}, false, err
	}
	if !ok {
		log.Info("no pull request in scope, nothing to check")
		return core.ChangeRef{}, false, nil
	}
	if err := cfg.GitHub.ValidateToken(); err != nil {
		return core.ChangeRef{}, false, err
	}
	return ref, true, nil
}

func printPlanned(w io.Writer, actions []core.Action) {
	titleColor.Fprintln(w, "\nDry run, nothing was changed on GitHub.")
	if len(actions) == 0 {
		dimColor.Fprintln(w, "No actions planned.")
		return
	}

	for _, a := range actions {
		warnColor.Fprintf(w, "- would %s\n", a)
		if a.Kind == core.ActionPostComment {
			fmt.Fprintln(w, renderMarkdown(a.Body))
		}
	}
}

// renderMarkdown previews a comment the way it would look on GitHub, falling
// back to the raw text when the terminal renderer is unavailable.
func renderMarkdown(body string) string {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return body
	}
	rendered, err := renderer.Render(body)
	if err != nil {
		return body
	}
	return rendered
}
