// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for all pitcrew CLI operations
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██████╗ ██╗████████╗ ██████╗██████╗ ███████╗██╗    ██╗
██╔══██╗██║╚══██╔══╝██╔════╝██╔══██╗██╔════╝██║    ██║
██████╔╝██║   ██║   ██║     ██████╔╝█████╗  ██║ █╗ ██║
██╔═══╝ ██║   ██║   ██║     ██╔══██╗██╔══╝  ██║███╗██║
██║     ██║   ██║   ╚██████╗██║  ██║███████╗╚███╔███╔╝
╚═╝     ╚═╝   ╚═╝    ╚═════╝╚═╝  ╚═╝╚══════╝ ╚══╝╚══╝
`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pitcrew",
		Short: "Automotive customer support assistant",
		Long: banner + `
Pitcrew answers vehicle questions by classifying each message,
routing it to a specialized agent (specs, maintenance, or
troubleshooting), and handing off to a human when confidence is
low or the conversation needs one.

Run 'pitcrew chat' to start a conversation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, table, json)")

	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewSessionsCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewInspectCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
