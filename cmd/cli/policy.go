package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sevigo/approval-gate/internal/approval"
	"github.com/sevigo/approval-gate/internal/policy"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Inspect the approver policy",
}

var policyValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse the approver policy and show the groups applied in each mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, cleanup, err := loadRuntime()
		defer cleanup()
		if err != nil {
			return err
		}
		if !cfg.Gate.HasPolicy() {
			warnColor.Fprintln(cmd.OutOrStdout(), "No approver policy configured (APPROVERS or APPROVERS_FILE).")
			return nil
		}

		p, err := policy.Parse([]byte(cfg.Gate.Approvers))
		if err != nil {
			return err
		}
		printPolicy(cmd.OutOrStdout(), p)
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	policyCmd.AddCommand(policyValidateCmd)
	rootCmd.AddCommand(policyCmd)
}

func printPolicy(w io.Writer, p *policy.Policy) {
	successColor.Fprintf(w, "Policy is valid: %d group(s).\n", p.Len())
	for _, warning := range p.Lint() {
		warnColor.Fprintf(w, "warning: %s\n", warning)
	}

	for _, freeze := range []bool{false, true} {
		effective, fallback := p.Effective(freeze)
		titleColor.Fprintf(w, "\n%s\n", approval.ModeDescription(freeze))
		if fallback {
			dimColor.Fprintln(w, "  (no freeze groups, normal groups apply)")
		}
		for _, g := range effective.Groups() {
			fmt.Fprintf(w, "  %s: %d of [%s]\n", g.Name, g.Required, strings.Join(g.Members, ", "))
		}
	}
}
