// ABOUTME: Scripted fake completer for tests and offline development
// ABOUTME: Replays canned responses and records every request it receives
package llm

import (
	"context"
	"fmt"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// FakeCompleter replays a fixed sequence of responses. Each call consumes the
// next scripted entry; when the script runs out the last entry repeats. An
// entry with a non-nil Err fails the call instead.
type FakeCompleter struct {
	mu       sync.Mutex
	script   []FakeReply
	calls    int
	Requests []openai.ChatCompletionRequest
}

// FakeReply is one scripted completion outcome
type FakeReply struct {
	Content   string
	ToolCalls []openai.ToolCall
	Err       error
}

// NewFakeCompleter scripts a sequence of plain-text replies
func NewFakeCompleter(contents ...string) *FakeCompleter {
	f := &FakeCompleter{}
	for _, c := range contents {
		f.script = append(f.script, FakeReply{Content: c})
	}
	return f
}

// NewFakeCompleterScript scripts replies with full control over tool calls
// and errors
func NewFakeCompleterScript(script ...FakeReply) *FakeCompleter {
	return &FakeCompleter{script: script}
}

// CreateChatCompletion implements ChatCompleter
func (f *FakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Requests = append(f.Requests, req)
	if len(f.script) == 0 {
		return openai.ChatCompletionResponse{}, fmt.Errorf("fake completer has no scripted replies")
	}

	idx := f.calls
	if idx >= len(f.script) {
		idx = len(f.script) - 1
	}
	f.calls++

	reply := f.script[idx]
	if reply.Err != nil {
		return openai.ChatCompletionResponse{}, reply.Err
	}

	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{
				Message: openai.ChatCompletionMessage{
					Role:      openai.ChatMessageRoleAssistant,
					Content:   reply.Content,
					ToolCalls: reply.ToolCalls,
				},
			},
		},
	}, nil
}

// CallCount returns how many completions were requested
func (f *FakeCompleter) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// LastRequest returns the most recent request, or false when none were made
func (f *FakeCompleter) LastRequest() (openai.ChatCompletionRequest, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Requests) == 0 {
		return openai.ChatCompletionRequest{}, false
	}
	return f.Requests[len(f.Requests)-1], true
}
