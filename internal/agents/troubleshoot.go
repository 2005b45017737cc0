// ABOUTME: Troubleshoot agent diagnosing vehicle problems with decision trees
// ABOUTME: Prepends a safety warning when the user's own text matches a safety rule
package agents

import (
	"context"
	"fmt"

	"github.com/pitcrewhq/pitcrew/internal/diagnostic"
	"github.com/pitcrewhq/pitcrew/internal/llm"
	"github.com/pitcrewhq/pitcrew/internal/models"
	"github.com/pitcrewhq/pitcrew/internal/safety"
)

const troubleshootSystemPrompt = `You are an expert automotive diagnostic assistant.
Your role is to help customers understand and troubleshoot vehicle problems.

IMPORTANT GUIDELINES:
1. SAFETY FIRST - Always warn about safety concerns
2. Ask clarifying questions to narrow down the problem
3. Explain technical concepts in simple terms
4. Be clear about what requires professional service vs. DIY fixes
5. Never encourage unsafe practices
6. If a problem could be dangerous (brakes, steering, etc.), emphasize getting professional help immediately

When diagnosing:
1. Identify symptoms from the customer's description
2. Ask targeted follow-up questions
3. Consider common causes for the symptoms
4. Provide a severity assessment
5. Recommend appropriate next steps

Known diagnostic patterns:
%s

Remember: You're helping someone who may not be mechanically inclined. Be patient and thorough.`

// TroubleshootAgent handles diagnostic and problem-solving queries
type TroubleshootAgent struct {
	client *llm.Client
}

// NewTroubleshootAgent creates the troubleshoot agent
func NewTroubleshootAgent(client *llm.Client) *TroubleshootAgent {
	return &TroubleshootAgent{client: client}
}

// Name implements Agent
func (a *TroubleshootAgent) Name() string { return string(models.IntentTroubleshoot) }

// Respond matches diagnostic trees against the user's text, generates a reply
// at a slightly exploratory temperature, and gates it through the safety
// scanner. The scan runs against the original user text, not the reply.
func (a *TroubleshootAgent) Respond(ctx context.Context, turn *models.Turn) (string, error) {
	diagContext := diagnostic.Context(turn.UserMessage)
	system := fmt.Sprintf(troubleshootSystemPrompt, diagContext)

	reply, err := a.client.Complete(ctx, system, turn.History(), turn.UserMessage, 0.2)
	if err != nil {
		return "", err
	}

	return safety.Prepend(turn.UserMessage, reply), nil
}
