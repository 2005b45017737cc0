// ABOUTME: Orchestrator owning the turn lifecycle: classify, route, respond, evaluate
// ABOUTME: One pass per turn through a fixed state sequence, no loops or retries
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pitcrewhq/pitcrew/internal/agents"
	"github.com/pitcrewhq/pitcrew/internal/config"
	"github.com/pitcrewhq/pitcrew/internal/handoff"
	"github.com/pitcrewhq/pitcrew/internal/llm"
	"github.com/pitcrewhq/pitcrew/internal/models"
	"github.com/pitcrewhq/pitcrew/internal/retrieval"
)

// State is a phase of the turn lifecycle. States advance strictly forward;
// no state is ever revisited within a turn.
type State string

const (
	StateStart      State = "start"
	StateClassified State = "classified"
	StateRouted     State = "routed"
	StateResponded  State = "responded"
	StateTerminal   State = "terminal"
)

// Orchestrator routes each turn to exactly one agent and gates the result
// through the handoff evaluator. A single turn runs sequentially end to end;
// turns for different sessions may run concurrently since the orchestrator
// holds no mutable state beyond the static tables.
type Orchestrator struct {
	classifier   *agents.Classifier
	specs        agents.Agent
	maintenance  agents.Agent
	troubleshoot agents.Agent
	evaluator    *handoff.Evaluator
}

// New wires the default component set from configuration
func New(cfg *config.Config, client *llm.Client, retriever retrieval.Retriever) *Orchestrator {
	var sender handoff.Sender
	if cfg.SupportWebhookURL != "" {
		sender = handoff.NewWebhookClient(cfg.SupportWebhookURL, cfg.WebhookTimeout)
	}

	return NewWithComponents(
		agents.NewClassifier(client),
		agents.NewSpecsAgent(client, retriever, cfg.RetrievalTopK, cfg.MaxContextTokens),
		agents.NewMaintenanceAgent(client, agents.NewMockScheduler()),
		agents.NewTroubleshootAgent(client),
		handoff.NewEvaluator(cfg.ConfidenceThreshold, sender),
	)
}

// NewWithComponents assembles an orchestrator from explicit components
func NewWithComponents(classifier *agents.Classifier, specs, maintenance, troubleshoot agents.Agent, evaluator *handoff.Evaluator) *Orchestrator {
	return &Orchestrator{
		classifier:   classifier,
		specs:        specs,
		maintenance:  maintenance,
		troubleshoot: troubleshoot,
		evaluator:    evaluator,
	}
}

// ProcessTurn runs one turn through the full pipeline. Classification and
// tool-invocation failures are fatal and surface to the caller; retrieval and
// webhook failures degrade inside their components. The evaluator's decision
// is final: the orchestrator never re-routes based on the escalation outcome.
func (o *Orchestrator) ProcessTurn(ctx context.Context, turn *models.Turn) (*models.TurnResult, error) {
	start := time.Now()
	log.Printf("[Orchestrator] turn started: session=%s state=%s", turn.SessionID, StateStart)

	// Start -> Classified
	intent, confidence, err := o.classifier.Classify(ctx, turn.UserMessage)
	if err != nil {
		log.Printf("[Orchestrator] classification failed: session=%s err=%v", turn.SessionID, err)
		return nil, err
	}
	turn.Context[models.CtxClassifiedIntent] = string(intent)
	turn.Context[models.CtxConfidence] = confidence

	// Classified -> Routed: single destination, never a pipeline
	agent, err := o.route(intent)
	if err != nil {
		return nil, err
	}
	turn.Context[models.CtxAgentUsed] = agent.Name()
	log.Printf("[Orchestrator] state=%s: session=%s intent=%s confidence=%.2f", StateRouted, turn.SessionID, intent, confidence)

	// Routed -> Responded
	generated, err := agent.Respond(ctx, turn)
	if err != nil {
		log.Printf("[Orchestrator] agent %s failed: session=%s err=%v", agent.Name(), turn.SessionID, err)
		return nil, err
	}

	// Responded -> Terminal
	finalReply, escalation := o.evaluator.Evaluate(ctx, turn, confidence, generated)

	log.Printf("[Orchestrator] turn finished: session=%s state=%s escalated=%v elapsed_ms=%d",
		turn.SessionID, StateTerminal, escalation != nil, time.Since(start).Milliseconds())

	result := &models.TurnResult{
		Reply:      finalReply,
		Intent:     intent,
		Confidence: confidence,
		Escalation: escalation,
	}
	if escalation != nil {
		result.AgentReply = generated
	}
	return result, nil
}

// route maps an intent to its single handler. The intent set is closed, so
// the switch is exhaustive; an unknown value is a programming error.
func (o *Orchestrator) route(intent models.Intent) (agents.Agent, error) {
	switch intent {
	case models.IntentSpecs:
		return o.specs, nil
	case models.IntentMaintenance:
		return o.maintenance, nil
	case models.IntentTroubleshoot:
		return o.troubleshoot, nil
	}
	return nil, fmt.Errorf("no agent for intent %q", intent)
}
