// ABOUTME: OpenAI chat-completion client used by the classifier and all agents
// ABOUTME: Wraps sashabaranov/go-openai with retry, timeout, and model defaults
package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pitcrewhq/pitcrew/internal/config"
	"github.com/pitcrewhq/pitcrew/internal/models"
	"github.com/pitcrewhq/pitcrew/internal/util"
)

// DefaultChatModel is the default model for chat completions
const DefaultChatModel = "gpt-4o-mini"

// ChatCompleter is the minimal surface of the OpenAI client the core needs.
// The real *openai.Client satisfies it directly; tests inject fakes.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client wraps a chat-completion collaborator with retry and timeout policy.
// Retries live here, in the collaborator's client, never in the decision core.
type Client struct {
	completer  ChatCompleter
	chatModel  string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates a client backed by the OpenAI API
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	return &Client{
		completer:  openai.NewClient(cfg.OpenAIKey),
		chatModel:  cfg.ChatModel,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// NewClientWith creates a client around an existing completer, primarily for
// tests and alternative backends
func NewClientWith(completer ChatCompleter, chatModel string) *Client {
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	return &Client{
		completer:  completer,
		chatModel:  chatModel,
		timeout:    30 * time.Second,
		maxRetries: 0,
		retryDelay: time.Second,
	}
}

// Model returns the configured chat model name
func (c *Client) Model() string {
	return c.chatModel
}

// ChatCompletion runs one completion request with the client's retry and
// timeout policy. The request's Model is filled in when unset. Used directly
// by the maintenance agent's tool loop; other callers go through Complete.
func (c *Client) ChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if req.Model == "" {
		req.Model = c.chatModel
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.completer.CreateChatCompletion(callCtx, req)
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		return resp, nil
	}

	return openai.ChatCompletionResponse{}, fmt.Errorf("chat completion failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// Complete sends a system prompt, optional conversation history, and the
// latest user message, returning the assistant's text verbatim.
func (c *Client) Complete(ctx context.Context, system string, history []models.Message, userMessage string, temperature float32) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	msgs = append(msgs, ToChatMessages(history)...)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	resp, err := c.ChatCompletion(ctx, openai.ChatCompletionRequest{
		Messages:    msgs,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// ToChatMessages converts conversation history into OpenAI message format
func ToChatMessages(history []models.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == models.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Text})
	}
	return out
}
