// ABOUTME: CLI command to show the message history of one session
// ABOUTME: Prints the conversation transcript in order
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pitcrewhq/pitcrew/internal/config"
	"github.com/pitcrewhq/pitcrew/internal/storage"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <session-id>",
		Short: "Show the transcript of a session",
		Long: `Show the full message history of a support session.

Examples:
  pitcrew history sess_20260831_a1b2c3d4
  pitcrew history sess_20260831_a1b2c3d4 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runHistory,
	}

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	db, err := openSessionDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	messages, err := storage.NewSessionStore(db).History(args[0])
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if len(messages) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No messages found")
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(messages, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	for _, msg := range messages {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", msg.Role, msg.Text)
	}
	return nil
}
