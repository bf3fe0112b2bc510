package main

import (
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/sevigo/approval-gate/internal/approval"
	"github.com/sevigo/approval-gate/internal/core"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

func printResult(w io.Writer, result *core.EvaluationResult) {
	titleColor.Fprintf(w, "Approval gate: %s\n", result.Ref)

	if result.ShortCircuited() {
		successColor.Fprintln(w, "Approved: an identical pull request was already merged.")
		for _, s := range result.MergedSiblings {
			dimColor.Fprintf(w, "  %s\n", s.WebURL)
		}
		return
	}

	dimColor.Fprintf(w, "Current period is %s\n", approval.ModeDescription(result.Freeze))
	if result.FreezeFallback {
		warnColor.Fprintln(w, "No code-freeze groups configured, using the normal policy.")
	}
	for _, s := range result.Removed {
		warnColor.Fprintf(w, "Removed stale approval from %s (%s)\n", s.Reviewer, s.At.UTC().Format("2006-01-02 15:04:05"))
	}

	for _, line := range approval.RenderGroupReport(result) {
		if strings.HasPrefix(line, "[+]") {
			successColor.Fprintln(w, line)
		} else {
			errorColor.Fprintln(w, line)
		}
	}

	if result.Approved {
		successColor.Fprintln(w, "Pull request is approved.")
	} else {
		errorColor.Fprintln(w, "Pull request is not approved.")
	}
}
