// ABOUTME: Handoff evaluator deciding whether a turn escalates to a human
// ABOUTME: Precedence is pinned: LowConfidence, UserRequest, SensitiveTopic, SafetyConcern
package handoff

import (
	"context"
	"log"
	"strings"

	"github.com/pitcrewhq/pitcrew/internal/models"
)

// summaryMessages is how many trailing messages feed the conversation summary
const summaryMessages = 10

// DefaultWaitMinutes is the estimated wait used for the synthesized response
const DefaultWaitMinutes = 5

// Sender delivers an escalation request to the support system.
// *WebhookClient implements it; tests inject fakes.
type Sender interface {
	Send(ctx context.Context, req *models.EscalationRequest) (*models.EscalationResponse, error)
}

// Evaluator applies the escalation rules to a finished turn. Stateless per
// call; safe for concurrent use across sessions.
type Evaluator struct {
	threshold float64
	sender    Sender
}

// NewEvaluator creates an evaluator. sender may be nil when no webhook is
// configured; escalations then always use the synthesized queued response.
func NewEvaluator(confidenceThreshold float64, sender Sender) *Evaluator {
	return &Evaluator{threshold: confidenceThreshold, sender: sender}
}

// ShouldEscalate applies the decision rules in pinned order against the
// confidence score and the raw user text. First match wins.
func (e *Evaluator) ShouldEscalate(confidence float64, userMessage string) (models.EscalationReason, bool) {
	if confidence < e.threshold {
		return models.ReasonLowConfidence, true
	}
	if containsAnyPhrase(userMessage, UserRequestPhrases) {
		return models.ReasonUserRequest, true
	}
	if containsAnyPhrase(userMessage, SensitiveKeywords) {
		return models.ReasonSensitiveTopic, true
	}
	if containsAnyPhrase(userMessage, SafetyPhrases) {
		return models.ReasonSafetyConcern, true
	}
	return "", false
}

// Evaluate inspects a turn and its generated reply. When no rule triggers,
// the reply passes through unchanged. When escalation fires, the generated
// reply is discarded and the user sees only the handoff message.
func (e *Evaluator) Evaluate(ctx context.Context, turn *models.Turn, confidence float64, generatedReply string) (string, *models.EscalationResponse) {
	reason, escalate := e.ShouldEscalate(confidence, turn.UserMessage)
	if !escalate {
		return generatedReply, nil
	}

	log.Printf("[Handoff] escalating session %s: reason=%s confidence=%.2f", turn.SessionID, reason, confidence)

	esc := e.escalate(ctx, turn, reason, confidence)
	return FormatHandoffReply(esc), esc
}

// Escalate builds and delivers an escalation for an externally chosen reason
// (complex_issue and repeated_failure have no automatic trigger; callers set
// those deliberately).
func (e *Evaluator) Escalate(ctx context.Context, turn *models.Turn, reason models.EscalationReason, confidence float64) *models.EscalationResponse {
	return e.escalate(ctx, turn, reason, confidence)
}

func (e *Evaluator) escalate(ctx context.Context, turn *models.Turn, reason models.EscalationReason, confidence float64) *models.EscalationResponse {
	req := models.NewEscalationRequest(turn.SessionID, reason, summarize(turn.Messages), turn.UserMessage)
	req.CustomerID = turn.CustomerID
	req.ConfidenceScore = confidence
	if intent, ok := turn.Context[models.CtxClassifiedIntent]; ok {
		req.Metadata["classified_intent"] = intent
	}

	if e.sender != nil {
		resp, err := e.sender.Send(ctx, req)
		if err == nil {
			if resp.Message == "" {
				resp.Message = MessageForReason(reason)
			}
			return resp
		}
		log.Printf("[Handoff] webhook delivery failed, synthesizing response: %v", err)
	}

	// Mandatory fallback: the user always receives some response.
	return &models.EscalationResponse{
		EscalationID:      models.DefaultEscalationID(turn.SessionID),
		Status:            models.StatusQueued,
		EstimatedWaitMins: DefaultWaitMinutes,
		Message:           MessageForReason(reason),
	}
}

// summarize concatenates the trailing messages into a plain-text summary for
// the human agent picking up the conversation
func summarize(messages []models.Message) string {
	start := 0
	if len(messages) > summaryMessages {
		start = len(messages) - summaryMessages
	}

	var b strings.Builder
	for i, m := range messages[start:] {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(string(m.Role))
		b.WriteString(": ")
		b.WriteString(m.Text)
	}
	return b.String()
}
