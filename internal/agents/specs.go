// ABOUTME: Specs agent answering documentation queries with retrieved context
// ABOUTME: Retrieval failures degrade to a fixed fallback context, never fail the turn
package agents

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pitcrewhq/pitcrew/internal/llm"
	"github.com/pitcrewhq/pitcrew/internal/models"
	"github.com/pitcrewhq/pitcrew/internal/retrieval"
)

// RetrievalFallbackContext is substituted when the retriever errors out
const RetrievalFallbackContext = "Error accessing knowledge base. Please try again."

// NoContextFound is used when retrieval succeeds but returns nothing
const NoContextFound = "No relevant documentation found in the database. Providing general guidance."

const specsSystemPrompt = `You are a knowledgeable automotive technical specialist assistant.
Your role is to help customers understand their vehicle's specifications, features, and documentation.

When answering questions:
1. Be precise and technical when needed, but explain in accessible terms
2. Reference specific manual sections or documentation when available
3. If you're not sure about something, say so rather than guessing
4. Provide safety warnings when relevant
5. Suggest consulting a professional for complex technical issues

Context from documentation:
%s

If no relevant context is found, provide general guidance and recommend checking the owner's manual.`

// SpecsAgent handles technical specification and documentation queries
type SpecsAgent struct {
	client    *llm.Client
	retriever retrieval.Retriever
	topK      int
	maxTokens int
}

// NewSpecsAgent creates the specs agent. The retriever may be nil when no
// knowledge base is configured; that path uses the no-context message.
func NewSpecsAgent(client *llm.Client, retriever retrieval.Retriever, topK, maxTokens int) *SpecsAgent {
	if topK <= 0 {
		topK = 5
	}
	if maxTokens <= 0 {
		maxTokens = 3000
	}
	return &SpecsAgent{client: client, retriever: retriever, topK: topK, maxTokens: maxTokens}
}

// Name implements Agent
func (a *SpecsAgent) Name() string { return string(models.IntentSpecs) }

// Respond retrieves documentation context for the latest user message and
// generates an answer at low temperature
func (a *SpecsAgent) Respond(ctx context.Context, turn *models.Turn) (string, error) {
	docContext := a.retrieveContext(ctx, turn.UserMessage)

	system := fmt.Sprintf(specsSystemPrompt, docContext)
	return a.client.Complete(ctx, system, nil, turn.UserMessage, 0.1)
}

func (a *SpecsAgent) retrieveContext(ctx context.Context, query string) string {
	if a.retriever == nil {
		return NoContextFound
	}

	snippets, err := a.retriever.Retrieve(ctx, query, a.topK, a.maxTokens)
	if err != nil {
		log.Printf("[Specs] retrieval failed: %v", err)
		return RetrievalFallbackContext
	}
	if len(snippets) == 0 {
		return NoContextFound
	}

	var b strings.Builder
	for i, s := range snippets {
		if i > 0 {
			b.WriteString("\n\n---\n\n")
		}
		if s.Source != "" {
			fmt.Fprintf(&b, "[Source: %s]\n", s.Source)
		}
		b.WriteString(s.Content)
	}
	return b.String()
}
