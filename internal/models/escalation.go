// ABOUTME: Escalation types for handing a conversation off to human support
// ABOUTME: Request/response structures mirror the support webhook's JSON contract
package models

import (
	"fmt"
	"time"
)

// EscalationReason explains why a conversation was escalated
type EscalationReason string

const (
	// ReasonLowConfidence - classification confidence fell below the threshold
	ReasonLowConfidence EscalationReason = "low_confidence"

	// ReasonUserRequest - the customer explicitly asked for a human
	ReasonUserRequest EscalationReason = "user_request"

	// ReasonSensitiveTopic - accidents, legal matters, recalls
	ReasonSensitiveTopic EscalationReason = "sensitive_topic"

	// ReasonSafetyConcern - safety-critical phrases in the user message
	ReasonSafetyConcern EscalationReason = "safety_concern"

	// ReasonComplexIssue - set by callers only; no automatic trigger exists
	ReasonComplexIssue EscalationReason = "complex_issue"

	// ReasonRepeatedFailure - set by callers only; no automatic trigger exists
	ReasonRepeatedFailure EscalationReason = "repeated_failure"
)

// IsValid reports whether the reason is one of the known values
func (r EscalationReason) IsValid() bool {
	switch r {
	case ReasonLowConfidence, ReasonUserRequest, ReasonSensitiveTopic,
		ReasonSafetyConcern, ReasonComplexIssue, ReasonRepeatedFailure:
		return true
	}
	return false
}

// EscalationStatus is the lifecycle state reported by the support system
type EscalationStatus string

const (
	StatusQueued     EscalationStatus = "queued"
	StatusAssigned   EscalationStatus = "assigned"
	StatusInProgress EscalationStatus = "in_progress"
	StatusResolved   EscalationStatus = "resolved"
)

// EscalationRequest is the payload sent to the human-support webhook.
// Created fresh per escalation event and not persisted by the core.
type EscalationRequest struct {
	SessionID           string                 `json:"session_id"`
	CustomerID          string                 `json:"customer_id,omitempty"`
	Reason              EscalationReason       `json:"reason"`
	ConfidenceScore     float64                `json:"confidence_score"`
	ConversationSummary string                 `json:"conversation_summary"`
	LastUserMessage     string                 `json:"last_user_message"`
	Metadata            map[string]interface{} `json:"metadata"`
	Timestamp           time.Time              `json:"timestamp"`
}

// NewEscalationRequest builds a request stamped with the current UTC time
func NewEscalationRequest(sessionID string, reason EscalationReason, summary, lastUserMessage string) *EscalationRequest {
	return &EscalationRequest{
		SessionID:           sessionID,
		Reason:              reason,
		ConversationSummary: summary,
		LastUserMessage:     lastUserMessage,
		Metadata:            map[string]interface{}{},
		Timestamp:           time.Now().UTC(),
	}
}

// EscalationResponse is what the support system (or the built-in fallback)
// reports back about a queued handoff
type EscalationResponse struct {
	EscalationID      string           `json:"escalation_id"`
	Status            EscalationStatus `json:"status"`
	EstimatedWaitMins int              `json:"estimated_wait_time,omitempty"`
	AgentName         string           `json:"agent_name,omitempty"`
	Message           string           `json:"message"`
}

// DefaultEscalationID derives the fallback reference number from a session ID
func DefaultEscalationID(sessionID string) string {
	if len(sessionID) > 8 {
		sessionID = sessionID[:8]
	}
	return fmt.Sprintf("ESC-%s", sessionID)
}
