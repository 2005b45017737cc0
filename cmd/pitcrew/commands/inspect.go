// ABOUTME: CLI command to dump the built-in decision tables
// ABOUTME: Shows diagnostic trees, safety rules, and escalation phrase lists
package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pitcrewhq/pitcrew/internal/diagnostic"
	"github.com/pitcrewhq/pitcrew/internal/handoff"
	"github.com/pitcrewhq/pitcrew/internal/safety"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [trees|safety|phrases]",
		Short: "Show the built-in decision tables",
		Long: `Show the compiled-in tables that drive routing decisions.

  trees    diagnostic trees used by the troubleshooting agent
  safety   safety keyword rules and their warnings
  phrases  escalation trigger phrase lists

With no argument, all three tables are shown.

Examples:
  pitcrew inspect
  pitcrew inspect trees
  pitcrew inspect safety --format json`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"trees", "safety", "phrases"},
		RunE:      runInspect,
	}

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	table := ""
	if len(args) > 0 {
		table = args[0]
	}

	if outputFormat == "json" {
		return inspectJSON(cmd, table)
	}

	out := cmd.OutOrStdout()
	if table == "" || table == "trees" {
		fmt.Fprintln(out, "Diagnostic trees:")
		for _, tree := range diagnostic.Trees {
			fmt.Fprintf(out, "  %s\n", tree.ID)
			fmt.Fprintf(out, "    triggers: %s\n", strings.Join(tree.TriggerKeywords, ", "))
			fmt.Fprintf(out, "    questions: %d, causes: %d\n", len(tree.Questions), len(tree.CommonCauses))
		}
	}
	if table == "" || table == "safety" {
		fmt.Fprintln(out, "Safety rules (first match wins):")
		for i, rule := range safety.Rules {
			fmt.Fprintf(out, "  %d. %-10s %s\n", i+1, rule.Keyword, truncate(rule.Warning, 70))
		}
	}
	if table == "" || table == "phrases" {
		fmt.Fprintln(out, "Escalation phrases:")
		fmt.Fprintf(out, "  user request (%d): %s\n", len(handoff.UserRequestPhrases), strings.Join(handoff.UserRequestPhrases, ", "))
		fmt.Fprintf(out, "  sensitive (%d): %s\n", len(handoff.SensitiveKeywords), strings.Join(handoff.SensitiveKeywords, ", "))
		fmt.Fprintf(out, "  safety (%d): %s\n", len(handoff.SafetyPhrases), strings.Join(handoff.SafetyPhrases, ", "))
	}
	return nil
}

func inspectJSON(cmd *cobra.Command, table string) error {
	payload := map[string]interface{}{}
	if table == "" || table == "trees" {
		payload["trees"] = diagnostic.Trees
	}
	if table == "" || table == "safety" {
		payload["safety_rules"] = safety.Rules
	}
	if table == "" || table == "phrases" {
		payload["phrases"] = map[string][]string{
			"user_request": handoff.UserRequestPhrases,
			"sensitive":    handoff.SensitiveKeywords,
			"safety":       handoff.SafetyPhrases,
		}
	}

	jsonData, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
	return nil
}
