package approval

import (
	"fmt"
	"strings"
	"time"

	"github.com/sevigo/approval-gate/internal/core"
)

const timeLayout = time.RFC3339

// RenderRemovalAudit explains which approvals were retracted and why. It
// returns an empty string when nothing was removed.
func RenderRemovalAudit(removed []core.ApprovalSignal, cutoff time.Time) string {
	if len(removed) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, s := range removed {
		fmt.Fprintf(&sb, " - Removed %s from %s (%s), commits were pushed after it (%s).\n",
			reactionName(s.Content), s.Reviewer, s.At.UTC().Format(timeLayout), cutoff.UTC().Format(timeLayout))
	}
	return sb.String()
}

// RenderSiblingNote is posted when an identical change was already merged.
func RenderSiblingNote(siblings []core.SiblingChange) string {
	if len(siblings) == 0 {
		return ""
	}
	urls := make([]string, 0, len(siblings))
	for _, s := range siblings {
		urls = append(urls, s.WebURL)
	}
	return fmt.Sprintf("An identical pull request (%s) was already approved and merged, approving the current one automatically:\n%s",
		siblings[0].WebURL, strings.Join(urls, "\n"))
}

// RenderGroupReport renders one block per evaluated group: a single line for a
// satisfied group, or a header followed by every member for the group that
// stopped the evaluation.
func RenderGroupReport(result *core.EvaluationResult) []string {
	var lines []string
	for _, g := range result.Groups {
		if g.Satisfied {
			lines = append(lines, fmt.Sprintf("[+] Approved by group of %s (%s).", g.Name, strings.Join(g.Contributors, ",")))
			continue
		}
		lines = append(lines, fmt.Sprintf("[-] Need to be approved by group of %s (current approves: %d, need: %d):", g.Name, g.Count, g.Required))
		for _, m := range g.Outstanding {
			lines = append(lines, "  - "+m)
		}
	}
	return lines
}

// ModeDescription describes the approval period for logs and reports.
func ModeDescription(freeze bool) string {
	if freeze {
		return "Code-Freeze. Restrictions may apply"
	}
	return "Normal"
}

func reactionName(content string) string {
	if content == "" {
		return "approval"
	}
	return ":" + content + ":"
}
