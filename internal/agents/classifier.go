// ABOUTME: Intent classifier assigning one of 3 categories to a user message
// ABOUTME: Recognized labels score 0.85; anything else falls back to specs at 0.50
package agents

import (
	"context"
	"fmt"
	"log"

	"github.com/pitcrewhq/pitcrew/internal/llm"
	"github.com/pitcrewhq/pitcrew/internal/models"
)

const classifierSystemPrompt = "You are an intent classifier for an automotive customer service system."

const classifierPromptTemplate = `Analyze the following user message and classify it into one of these categories:

1. SPECS - Questions about vehicle specifications, manuals, technical documentation, features, how things work
2. MAINTENANCE - Requests to schedule service, book appointments, check service history, maintenance reminders
3. TROUBLESHOOT - Vehicle problems, error messages, diagnostic questions, something not working

User message: %s

Respond with only one word: SPECS, MAINTENANCE, or TROUBLESHOOT`

// Classifier assigns an intent and confidence to the latest user message
type Classifier struct {
	client *llm.Client
}

// NewClassifier creates a classifier on the given completion client
func NewClassifier(client *llm.Client) *Classifier {
	return &Classifier{client: client}
}

// Classify sends the fixed two-message classification prompt and normalizes
// the reply. A recognized label yields that intent at ConfidenceRecognized;
// anything else yields specs at ConfidenceFallback. A collaborator failure is
// fatal: it returns ClassificationError and no fallback intent.
func (c *Classifier) Classify(ctx context.Context, userMessage string) (models.Intent, float64, error) {
	prompt := fmt.Sprintf(classifierPromptTemplate, userMessage)

	raw, err := c.client.Complete(ctx, classifierSystemPrompt, nil, prompt, 0)
	if err != nil {
		return "", 0, &models.ClassificationError{Err: err}
	}

	intent, recognized := models.IntentFromLabel(raw)
	if !recognized {
		log.Printf("[Classifier] unrecognized label %q, falling back to specs", raw)
		return intent, models.ConfidenceFallback, nil
	}
	return intent, models.ConfidenceRecognized, nil
}
