// ABOUTME: Tests for the troubleshoot agent
// ABOUTME: Covers diagnostic context injection and the safety gate

package agents

import (
	"context"
	"strings"
	"testing"

	"github.com/pitcrewhq/pitcrew/internal/diagnostic"
	"github.com/pitcrewhq/pitcrew/internal/llm"
	"github.com/pitcrewhq/pitcrew/internal/models"
)

func newTroubleshootTurn(t *testing.T, text string) *models.Turn {
	t.Helper()
	turn, err := models.NewTurn("sess_d", text, nil)
	if err != nil {
		t.Fatalf("NewTurn() error = %v", err)
	}
	return turn
}

func TestTroubleshootRespond_MatchedTreeContext(t *testing.T) {
	fake := llm.NewFakeCompleter("Is the light steady or flashing?")
	agent := NewTroubleshootAgent(llm.NewClientWith(fake, ""))

	reply, err := agent.Respond(context.Background(), newTroubleshootTurn(t, "check engine light is flashing"))
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	// No safety keyword in the user text, so no prepended warning.
	if strings.Contains(reply, "SAFETY WARNING") {
		t.Errorf("reply should have no warning: %q", reply)
	}

	req, _ := fake.LastRequest()
	system := req.Messages[0].Content
	if !strings.Contains(system, "Engine Warning Light") {
		t.Errorf("system prompt missing matched tree: %q", system)
	}
	if !strings.Contains(system, "Loose gas cap") {
		t.Errorf("system prompt missing common causes: %q", system)
	}
	if req.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", req.Temperature)
	}
}

func TestTroubleshootRespond_NoMatchFallback(t *testing.T) {
	fake := llm.NewFakeCompleter("Tell me more about the problem.")
	agent := NewTroubleshootAgent(llm.NewClientWith(fake, ""))

	if _, err := agent.Respond(context.Background(), newTroubleshootTurn(t, "the infotainment is acting weird")); err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	req, _ := fake.LastRequest()
	if !strings.Contains(req.Messages[0].Content, diagnostic.NoMatchContext) {
		t.Errorf("system prompt should carry the no-match fallback")
	}
}

func TestTroubleshootRespond_SafetyWarningFromUserText(t *testing.T) {
	// The gate scans the user's original message, not the generated reply.
	fake := llm.NewFakeCompleter("Could be worn pads. Please describe the sound.")
	agent := NewTroubleshootAgent(llm.NewClientWith(fake, ""))

	reply, err := agent.Respond(context.Background(), newTroubleshootTurn(t, "my brakes aren't working, I smell something burning"))
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	if !strings.HasPrefix(reply, "⚠️ **SAFETY WARNING**: Brake issues") {
		t.Errorf("reply missing brake warning prefix: %q", reply)
	}
	if !strings.Contains(reply, "\n\nCould be worn pads.") {
		t.Errorf("generated reply should follow after a paragraph break: %q", reply)
	}
}

func TestTroubleshootRespond_ReplyKeywordsDoNotTriggerWarning(t *testing.T) {
	// Generated reply mentions brakes, user text does not: no warning.
	fake := llm.NewFakeCompleter("Check your brake pads as a precaution.")
	agent := NewTroubleshootAgent(llm.NewClientWith(fake, ""))

	reply, err := agent.Respond(context.Background(), newTroubleshootTurn(t, "grinding when turning left"))
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if strings.Contains(reply, "SAFETY WARNING") {
		t.Errorf("warning must key off user text only: %q", reply)
	}
}
