// ABOUTME: Tests for the chat-completion client wrapper
// ABOUTME: Verifies message assembly, model defaults, and retry exhaustion

package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pitcrewhq/pitcrew/internal/config"
	"github.com/pitcrewhq/pitcrew/internal/models"
)

func TestNewClient_RequiresKey(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	cfg.OpenAIKey = ""
	if _, err := NewClient(cfg); err == nil {
		t.Error("expected error when API key is missing")
	}
}

func TestComplete_AssemblesMessages(t *testing.T) {
	fake := NewFakeCompleter("all good")
	client := NewClientWith(fake, "test-model")

	history := []models.Message{
		{Role: models.RoleUser, Text: "earlier question"},
		{Role: models.RoleAssistant, Text: "earlier answer"},
	}

	got, err := client.Complete(context.Background(), "system prompt", history, "new question", 0.1)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "all good" {
		t.Errorf("Complete() = %q, want %q", got, "all good")
	}

	req, ok := fake.LastRequest()
	if !ok {
		t.Fatal("no request recorded")
	}
	if req.Model != "test-model" {
		t.Errorf("Model = %q, want test-model", req.Model)
	}
	if req.Temperature != 0.1 {
		t.Errorf("Temperature = %v, want 0.1", req.Temperature)
	}
	if len(req.Messages) != 4 {
		t.Fatalf("len(Messages) = %d, want 4 (system + 2 history + user)", len(req.Messages))
	}
	if req.Messages[0].Role != openai.ChatMessageRoleSystem || req.Messages[0].Content != "system prompt" {
		t.Errorf("first message = %+v, want system prompt", req.Messages[0])
	}
	if req.Messages[2].Role != openai.ChatMessageRoleAssistant {
		t.Errorf("history assistant role not preserved: %+v", req.Messages[2])
	}
	if req.Messages[3].Content != "new question" {
		t.Errorf("last message = %+v, want new user question", req.Messages[3])
	}
}

func TestChatCompletion_RetriesThenFails(t *testing.T) {
	boom := errors.New("rate limited")
	fake := NewFakeCompleterScript(FakeReply{Err: boom})
	client := NewClientWith(fake, "")
	client.maxRetries = 2
	client.retryDelay = 0

	_, err := client.ChatCompletion(context.Background(), openai.ChatCompletionRequest{})
	if err == nil {
		t.Fatal("expected error after retries exhausted")
	}
	if !errors.Is(err, boom) {
		t.Errorf("error should wrap the underlying failure, got %v", err)
	}
	if fake.CallCount() != 3 {
		t.Errorf("CallCount() = %d, want 3 (initial + 2 retries)", fake.CallCount())
	}
	if !strings.Contains(err.Error(), "after 3 attempts") {
		t.Errorf("error = %q, want attempt count in message", err)
	}
}

func TestChatCompletion_RecoversOnRetry(t *testing.T) {
	fake := NewFakeCompleterScript(
		FakeReply{Err: errors.New("transient")},
		FakeReply{Content: "recovered"},
	)
	client := NewClientWith(fake, "")
	client.maxRetries = 1
	client.retryDelay = 0

	resp, err := client.ChatCompletion(context.Background(), openai.ChatCompletionRequest{})
	if err != nil {
		t.Fatalf("ChatCompletion() error = %v", err)
	}
	if resp.Choices[0].Message.Content != "recovered" {
		t.Errorf("content = %q, want recovered", resp.Choices[0].Message.Content)
	}
}

func TestComplete_NoChoices(t *testing.T) {
	fake := &emptyCompleter{}
	client := NewClientWith(fake, "")

	if _, err := client.Complete(context.Background(), "s", nil, "u", 0.1); err == nil {
		t.Error("expected error when no choices returned")
	}
}

type emptyCompleter struct{}

func (e *emptyCompleter) CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return openai.ChatCompletionResponse{}, nil
}
