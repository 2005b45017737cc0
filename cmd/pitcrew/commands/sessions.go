// ABOUTME: CLI command to list recent support sessions
// ABOUTME: Shows session IDs, message counts, and last activity
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pitcrewhq/pitcrew/internal/config"
	"github.com/pitcrewhq/pitcrew/internal/storage"
)

var sessionsLimit int

// NewSessionsCmd creates the sessions command
func NewSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recent support sessions",
		Long: `List recent support sessions with message counts.

Examples:
  pitcrew sessions
  pitcrew sessions --limit 25
  pitcrew sessions --format json`,
		RunE: runSessions,
	}

	cmd.Flags().IntVar(&sessionsLimit, "limit", 10, "Maximum sessions to show")

	return cmd
}

func runSessions(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if sessionsLimit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", sessionsLimit)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	db, err := openSessionDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	infos, err := storage.NewSessionStore(db).RecentSessions(sessionsLimit)
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}

	if len(infos) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No sessions found")
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SESSION\tCUSTOMER\tVEHICLE\tMESSAGES\tUPDATED\n")
	fmt.Fprintf(w, "-------\t--------\t-------\t--------\t-------\n")
	for _, info := range infos {
		customer := info.CustomerID
		if customer == "" {
			customer = "-"
		}
		vehicle := info.VehicleID
		if vehicle == "" {
			vehicle = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			truncate(info.ID, 36), customer, vehicle, info.MessageCount, formatTime(info.UpdatedAt))
	}
	_ = w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d session(s)\n", len(infos))
	}
	return nil
}
