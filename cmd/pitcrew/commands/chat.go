// ABOUTME: CLI command for talking to the support assistant
// ABOUTME: One-shot with an argument, interactive REPL without one
package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pitcrewhq/pitcrew/internal/models"
)

var (
	chatSession  string
	chatCustomer string
	chatVehicle  string
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the support assistant",
		Long: `Talk to the automotive support assistant.

With a message argument the command answers once and exits.
Without one it starts an interactive session; type 'exit' to leave.

Examples:
  pitcrew chat "What's the towing capacity of the 2024 Silverado?"
  pitcrew chat --session sess_20260831_a1b2c3d4 "And the payload?"
  pitcrew chat`,
		Args: cobra.MaximumNArgs(1),
		RunE: runChat,
	}

	cmd.Flags().StringVar(&chatSession, "session", "", "Session ID to continue")
	cmd.Flags().StringVar(&chatCustomer, "customer", "", "Customer ID attached to escalations")
	cmd.Flags().StringVar(&chatVehicle, "vehicle", "", "Vehicle ID for this conversation")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	p, err := openPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	if len(args) > 0 {
		return chatOnce(cmd, p, args[0])
	}
	return chatInteractive(cmd, p)
}

func chatOnce(cmd *cobra.Command, p *pipeline, message string) error {
	result, sessionID, err := processMessage(cmd.Context(), p, chatSession, message)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		payload := map[string]interface{}{
			"session_id": sessionID,
			"reply":      result.Reply,
			"intent":     string(result.Intent),
			"confidence": result.Confidence,
			"escalated":  result.Escalated(),
		}
		if result.Escalation != nil {
			payload["escalation"] = result.Escalation
		}
		jsonData, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	printReply(cmd, result)
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nSession: %s\n", sessionID)
	}
	return nil
}

func chatInteractive(cmd *cobra.Command, p *pipeline) error {
	out := cmd.OutOrStdout()
	if !quiet {
		fmt.Fprintln(out, "Pitcrew support assistant. Type 'exit' to leave.")
	}

	sessionID := chatSession
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		result, sid, err := processMessage(cmd.Context(), p, sessionID, line)
		if err != nil {
			// Conversation survives a failed turn; the user can rephrase.
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			continue
		}
		sessionID = sid
		printReply(cmd, result)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if !quiet && sessionID != "" {
		fmt.Fprintf(out, "\nSession: %s\n", sessionID)
	}
	return nil
}

// processMessage runs one message through the pipeline and persists both
// sides of the exchange
func processMessage(ctx context.Context, p *pipeline, sessionID, message string) (*models.TurnResult, string, error) {
	var history []models.Message
	if sessionID != "" {
		var err error
		history, err = p.sessions.History(sessionID)
		if err != nil {
			return nil, "", fmt.Errorf("loading session history: %w", err)
		}
	}

	turn, err := models.NewTurn(sessionID, message, history)
	if err != nil {
		return nil, "", err
	}
	turn.CustomerID = chatCustomer
	turn.VehicleID = chatVehicle

	result, err := p.orch.ProcessTurn(ctx, turn)
	if err != nil {
		return nil, "", err
	}

	if err := p.sessions.EnsureSession(turn.SessionID, turn.CustomerID, turn.VehicleID); err != nil {
		return nil, "", fmt.Errorf("persisting session: %w", err)
	}
	if err := p.sessions.AppendMessage(turn.SessionID, models.Message{Role: models.RoleUser, Text: message}, nil); err != nil {
		return nil, "", fmt.Errorf("persisting message: %w", err)
	}
	confidence := result.Confidence
	if err := p.sessions.AppendMessage(turn.SessionID, models.Message{Role: models.RoleAssistant, Text: result.Reply}, &confidence); err != nil {
		return nil, "", fmt.Errorf("persisting message: %w", err)
	}

	return result, turn.SessionID, nil
}

func printReply(cmd *cobra.Command, result *models.TurnResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", result.Reply)
	if verbose {
		fmt.Fprintf(out, "  [intent=%s confidence=%.2f escalated=%v]\n",
			result.Intent, result.Confidence, result.Escalated())
	}
	if result.Escalation != nil && verbose {
		fmt.Fprintf(out, "  [escalation=%s status=%s]\n",
			result.Escalation.EscalationID, result.Escalation.Status)
	}
}
