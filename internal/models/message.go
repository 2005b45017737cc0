// ABOUTME: Message and Role types for conversation history
// ABOUTME: Core data structures shared by the orchestrator and agents
package models

import "strings"

// Role identifies who produced a message
type Role string

const (
	// RoleUser is a message written by the customer
	RoleUser Role = "user"
	// RoleAssistant is a message produced by an agent
	RoleAssistant Role = "assistant"
)

// IsValid reports whether the role is one of the known values
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is a single entry in a session's conversation history
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"content"`
}

// NewUserMessage builds a user message, rejecting blank text
func NewUserMessage(text string) (Message, bool) {
	if strings.TrimSpace(text) == "" {
		return Message{}, false
	}
	return Message{Role: RoleUser, Text: text}, true
}

// NewAssistantMessage builds an assistant message
func NewAssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Text: text}
}
