// ABOUTME: Benchmark runner - replays scenarios through the live pipeline
// ABOUTME: Runs conversation turns against the real OpenAI API and scores results

package scenarios

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pitcrewhq/pitcrew/internal/config"
	"github.com/pitcrewhq/pitcrew/internal/llm"
	"github.com/pitcrewhq/pitcrew/internal/models"
	"github.com/pitcrewhq/pitcrew/internal/orchestrator"
)

// passThreshold is the minimum overall score for a PASS verdict
const passThreshold = 0.7

// BenchmarkRunner executes pipeline benchmark tests
type BenchmarkRunner struct {
	orch    *orchestrator.Orchestrator
	metrics *MetricsCalculator
	verbose bool
}

// NewBenchmarkRunner creates a runner backed by the real OpenAI API. The
// knowledge base and webhook stay unwired so results depend only on the
// model and the decision rules.
func NewBenchmarkRunner(apiKey string, verbose bool) (*BenchmarkRunner, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.OpenAIKey = apiKey
	cfg.SupportWebhookURL = ""

	client, err := llm.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	return &BenchmarkRunner{
		orch:    orchestrator.New(cfg, client, nil),
		metrics: NewMetricsCalculator(),
		verbose: verbose,
	}, nil
}

// RunTest executes a single benchmark scenario
func (r *BenchmarkRunner) RunTest(scenario TestScenario) (TestResult, error) {
	if r.verbose {
		fmt.Printf("Running %s: %s\n", scenario.ID, scenario.Name)
	}

	result := TestResult{
		TestID:   scenario.ID,
		TestName: scenario.Name,
		Details:  map[string]interface{}{},
	}

	var history []models.Message
	var final *models.TurnResult

	for _, turn := range scenario.Turns {
		t, err := models.NewTurn("", turn.UserMessage, history)
		if err != nil {
			result.Status = "FAIL"
			result.ErrorMessage = err.Error()
			return result, err
		}

		final, err = r.orch.ProcessTurn(context.Background(), t)
		if err != nil {
			result.Status = "FAIL"
			result.ErrorMessage = fmt.Sprintf("turn %d failed: %v", turn.TurnNumber, err)
			return result, err
		}

		history = append(history,
			models.Message{Role: models.RoleUser, Text: turn.UserMessage},
			models.Message{Role: models.RoleAssistant, Text: final.Reply},
		)

		if r.verbose {
			fmt.Printf("  turn %d: intent=%s confidence=%.2f escalated=%v\n",
				turn.TurnNumber, final.Intent, final.Confidence, final.Escalated())
		}
	}

	intentScore, intentDetail := r.metrics.ScoreIntent(final.Intent, scenario.GroundTruth)
	escalationScore, escalationDetail := r.metrics.ScoreEscalation(final, scenario.GroundTruth)
	replyScore, replyDetail := r.metrics.ScoreReply(final.Reply, scenario.GroundTruth)

	result.IntentScore = intentScore
	result.EscalationScore = escalationScore
	result.ReplyScore = replyScore
	result.OverallScore = r.metrics.Overall(intentScore, escalationScore, replyScore)
	result.Details["intent"] = intentDetail
	result.Details["escalation"] = escalationDetail
	result.Details["reply"] = replyDetail
	result.Details["final_reply"] = final.Reply

	if result.OverallScore >= passThreshold {
		result.Status = "PASS"
	} else {
		result.Status = "FAIL"
	}
	return result, nil
}

// RunAllTests executes every scenario in order
func (r *BenchmarkRunner) RunAllTests() ([]TestResult, error) {
	var results []TestResult
	for _, scenario := range AllScenarios() {
		result, err := r.RunTest(scenario)
		if err != nil {
			// Keep going; one failed scenario should not hide the rest.
			fmt.Printf("  error in %s: %v\n", scenario.ID, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// SaveResults writes results as indented JSON to the given path
func SaveResults(results []TestResult, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
