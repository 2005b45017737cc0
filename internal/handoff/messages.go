// ABOUTME: User-facing handoff message templates, one per escalation reason
// ABOUTME: Formats wait time, agent name, and reference number when present
package handoff

import (
	"fmt"

	"github.com/pitcrewhq/pitcrew/internal/models"
)

var reasonMessages = map[models.EscalationReason]string{
	models.ReasonLowConfidence:   "I understand your question is complex. I'm transferring you to one of our specialists who can help you better. Please hold on.",
	models.ReasonUserRequest:     "Of course! I'm transferring you to a human agent. One moment, please.",
	models.ReasonSensitiveTopic:  "This matter needs special attention from our team. A specialist will be in touch shortly.",
	models.ReasonComplexIssue:    "Your situation needs a more detailed review. I'm connecting you with a specialized technician.",
	models.ReasonRepeatedFailure: "I apologize for the difficulty. I'm transferring you to an agent who can resolve your issue directly.",
	models.ReasonSafetyConcern:   "⚠️ Safety issues are our priority. A specialist will contact you immediately to help.",
}

// MessageForReason returns the fixed template for an escalation reason
func MessageForReason(reason models.EscalationReason) string {
	if msg, ok := reasonMessages[reason]; ok {
		return msg
	}
	return "Transferring you to human support..."
}

// FormatHandoffReply composes the final user-facing text for an escalation
func FormatHandoffReply(esc *models.EscalationResponse) string {
	reply := esc.Message

	if esc.EstimatedWaitMins > 0 {
		reply += fmt.Sprintf("\n\nEstimated wait time: %d minutes.", esc.EstimatedWaitMins)
	}
	if esc.AgentName != "" {
		reply += fmt.Sprintf("\n\nYou will be assisted by: %s", esc.AgentName)
	}
	reply += fmt.Sprintf("\n\nYour reference number: %s", esc.EscalationID)

	return reply
}
