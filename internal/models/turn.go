// ABOUTME: Turn represents one user-message-to-reply exchange within a session
// ABOUTME: Carries prior history, the new user text, and a mutable context bag
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Context keys written by the orchestrator during a turn
const (
	CtxClassifiedIntent = "classified_intent"
	CtxConfidence       = "confidence"
	CtxAgentUsed        = "agent_used"
)

// Turn is one exchange flowing through the classify-route-respond pipeline.
// Messages holds the conversation so far and is append-only for the lifetime
// of the turn; earlier entries are never mutated.
type Turn struct {
	SessionID   string                 `json:"session_id"`
	CustomerID  string                 `json:"customer_id,omitempty"`
	VehicleID   string                 `json:"vehicle_id,omitempty"`
	Messages    []Message              `json:"messages"`
	UserMessage string                 `json:"user_message"`
	Context     map[string]interface{} `json:"context"`
}

// NewTurn creates a turn for a new user message with validation
func NewTurn(sessionID, userMessage string, history []Message) (*Turn, error) {
	if strings.TrimSpace(userMessage) == "" {
		return nil, errors.New("user message cannot be empty")
	}
	if sessionID == "" {
		sessionID = NewSessionID()
	}
	msgs := make([]Message, 0, len(history)+1)
	msgs = append(msgs, history...)
	msgs = append(msgs, Message{Role: RoleUser, Text: userMessage})
	return &Turn{
		SessionID:   sessionID,
		Messages:    msgs,
		UserMessage: userMessage,
		Context:     map[string]interface{}{},
	}, nil
}

// History returns every message except the newest user message
func (t *Turn) History() []Message {
	if len(t.Messages) == 0 {
		return nil
	}
	return t.Messages[:len(t.Messages)-1]
}

// NewSessionID generates a unique session identifier
func NewSessionID() string {
	return fmt.Sprintf("sess_%s_%s", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
}

// TurnResult is what the orchestrator hands back to its caller
type TurnResult struct {
	Reply      string              `json:"reply"`
	Intent     Intent              `json:"intent"`
	Confidence float64             `json:"confidence"`
	AgentReply string              `json:"agent_reply,omitempty"`
	Escalation *EscalationResponse `json:"escalation,omitempty"`
}

// Escalated reports whether this turn was handed off to a human
func (r *TurnResult) Escalated() bool {
	return r.Escalation != nil
}
