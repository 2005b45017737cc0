// ABOUTME: Tests for the handoff evaluator
// ABOUTME: Pins rule precedence, the pass-through path, and webhook fallback

package handoff

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pitcrewhq/pitcrew/internal/models"
)

type fakeSender struct {
	resp *models.EscalationResponse
	err  error
	got  *models.EscalationRequest
}

func (f *fakeSender) Send(_ context.Context, req *models.EscalationRequest) (*models.EscalationResponse, error) {
	f.got = req
	return f.resp, f.err
}

func newHandoffTurn(t *testing.T, text string) *models.Turn {
	t.Helper()
	turn, err := models.NewTurn("sess_h_12345", text, nil)
	if err != nil {
		t.Fatalf("NewTurn() error = %v", err)
	}
	return turn
}

func TestShouldEscalate_Precedence(t *testing.T) {
	e := NewEvaluator(0.7, nil)

	tests := []struct {
		name       string
		confidence float64
		text       string
		wantReason models.EscalationReason
		want       bool
	}{
		{"low confidence", 0.50, "how do I change a tire", models.ReasonLowConfidence, true},
		{"user request", 0.85, "I want to speak to human", models.ReasonUserRequest, true},
		{"sensitive topic", 0.85, "is there a recall on my model", models.ReasonSensitiveTopic, true},
		{"safety concern", 0.85, "I noticed a fuel leak", models.ReasonSafetyConcern, true},
		{"nothing triggers", 0.85, "what tire pressure should I use", "", false},

		// Precedence: low confidence beats an explicit user request.
		{"low confidence wins over request", 0.50, "please, real person", models.ReasonLowConfidence, true},
		// A user request beats a sensitive keyword in the same message.
		{"request wins over sensitive", 0.85, "speak to human about my accident", models.ReasonUserRequest, true},
		// A sensitive keyword beats a safety phrase.
		{"sensitive wins over safety", 0.85, "after the accident I smell smoke", models.ReasonSensitiveTopic, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, got := e.ShouldEscalate(tt.confidence, tt.text)
			if got != tt.want || reason != tt.wantReason {
				t.Errorf("ShouldEscalate(%v, %q) = (%v, %v), want (%v, %v)",
					tt.confidence, tt.text, reason, got, tt.wantReason, tt.want)
			}
		})
	}
}

func TestEvaluate_PassThrough(t *testing.T) {
	e := NewEvaluator(0.7, nil)
	turn := newHandoffTurn(t, "what tire pressure should I use")

	reply, esc := e.Evaluate(context.Background(), turn, 0.9, "32 psi front and rear.")
	if esc != nil {
		t.Fatalf("Evaluate() escalation = %+v, want nil", esc)
	}
	if reply != "32 psi front and rear." {
		t.Errorf("reply = %q, want the generated reply unchanged", reply)
	}
}

func TestEvaluate_DiscardsReplyOnEscalation(t *testing.T) {
	e := NewEvaluator(0.7, nil)
	turn := newHandoffTurn(t, "my brakes aren't working, I smell something burning")

	reply, esc := e.Evaluate(context.Background(), turn, 0.85, "Try pumping the pedal.")
	if esc == nil {
		t.Fatal("expected escalation")
	}
	if esc.Status != models.StatusQueued {
		t.Errorf("Status = %v, want queued", esc.Status)
	}
	// The generated reply is discarded entirely; the user only sees the
	// handoff message.
	if strings.Contains(reply, "pumping the pedal") {
		t.Errorf("reply = %q, generated text must be discarded", reply)
	}
	if !strings.Contains(reply, MessageForReason(models.ReasonSafetyConcern)) {
		t.Errorf("reply = %q, want the safety handoff template", reply)
	}
	if !strings.Contains(reply, "Estimated wait time: 5 minutes.") {
		t.Errorf("reply = %q, want default wait time", reply)
	}
	if !strings.Contains(reply, "Your reference number: ESC-sess_h_1") {
		t.Errorf("reply = %q, want synthesized reference", reply)
	}
}

func TestEvaluate_WebhookSuccess(t *testing.T) {
	sender := &fakeSender{resp: &models.EscalationResponse{
		EscalationID:      "ESC-REMOTE-1",
		Status:            models.StatusAssigned,
		EstimatedWaitMins: 2,
		AgentName:         "Marcos",
		Message:           "An agent is on the way.",
	}}
	e := NewEvaluator(0.7, sender)
	turn := newHandoffTurn(t, "I want to talk to agent now")
	turn.CustomerID = "cust_7"
	turn.Context[models.CtxClassifiedIntent] = string(models.IntentMaintenance)

	reply, esc := e.Evaluate(context.Background(), turn, 0.85, "generated")
	if esc == nil {
		t.Fatal("expected escalation")
	}
	if esc.EscalationID != "ESC-REMOTE-1" || esc.AgentName != "Marcos" {
		t.Errorf("escalation = %+v, want the webhook response", esc)
	}
	if !strings.Contains(reply, "An agent is on the way.") {
		t.Errorf("reply = %q", reply)
	}
	if !strings.Contains(reply, "You will be assisted by: Marcos") {
		t.Errorf("reply = %q, want agent name line", reply)
	}

	if sender.got == nil {
		t.Fatal("webhook never received the request")
	}
	if sender.got.Reason != models.ReasonUserRequest {
		t.Errorf("request reason = %v, want user_request", sender.got.Reason)
	}
	if sender.got.CustomerID != "cust_7" {
		t.Errorf("request customer = %q, want cust_7", sender.got.CustomerID)
	}
	if sender.got.Metadata["classified_intent"] != string(models.IntentMaintenance) {
		t.Errorf("request metadata = %v, want classified intent", sender.got.Metadata)
	}
	if !strings.Contains(sender.got.ConversationSummary, "talk to agent") {
		t.Errorf("summary = %q, want the user message included", sender.got.ConversationSummary)
	}
}

func TestEvaluate_WebhookFailureSynthesizesDefault(t *testing.T) {
	sender := &fakeSender{err: &models.WebhookError{Err: errors.New("connection refused")}}
	e := NewEvaluator(0.7, sender)
	turn := newHandoffTurn(t, "human support please")

	reply, esc := e.Evaluate(context.Background(), turn, 0.85, "generated")
	if esc == nil {
		t.Fatal("expected escalation despite webhook failure")
	}
	if esc.Status != models.StatusQueued || esc.EstimatedWaitMins != DefaultWaitMinutes {
		t.Errorf("escalation = %+v, want synthesized queued/5min", esc)
	}
	if !strings.Contains(reply, MessageForReason(models.ReasonUserRequest)) {
		t.Errorf("reply = %q, want the user-request template", reply)
	}
}

func TestEvaluate_LowConfidenceFromFallbackClassification(t *testing.T) {
	// Scenario: classifier returned garbage, confidence 0.50 < 0.70.
	e := NewEvaluator(0.7, nil)
	turn := newHandoffTurn(t, "what is the meaning of life")

	reply, esc := e.Evaluate(context.Background(), turn, models.ConfidenceFallback, "a perfectly good RAG answer")
	if esc == nil {
		t.Fatal("expected low-confidence escalation")
	}
	if !strings.Contains(reply, MessageForReason(models.ReasonLowConfidence)) {
		t.Errorf("reply = %q, want low-confidence template", reply)
	}
}

func TestEscalate_CallerChosenReason(t *testing.T) {
	e := NewEvaluator(0.7, nil)
	turn := newHandoffTurn(t, "still not solved")

	esc := e.Escalate(context.Background(), turn, models.ReasonRepeatedFailure, 0.85)
	if esc.Message != MessageForReason(models.ReasonRepeatedFailure) {
		t.Errorf("Message = %q, want repeated-failure template", esc.Message)
	}
}

func TestSummarize_LimitsToTrailingMessages(t *testing.T) {
	var msgs []models.Message
	for i := 0; i < 15; i++ {
		msgs = append(msgs, models.Message{Role: models.RoleUser, Text: strings.Repeat("x", 1) + string(rune('a'+i))})
	}

	got := summarize(msgs)
	if strings.Contains(got, "xa") {
		t.Errorf("summary should drop the oldest messages, got %q", got)
	}
	if !strings.Contains(got, "xo") {
		t.Errorf("summary should keep the newest message, got %q", got)
	}
	if n := strings.Count(got, "\n"); n != summaryMessages-1 {
		t.Errorf("summary has %d lines, want %d", n+1, summaryMessages)
	}
}
