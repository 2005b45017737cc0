// ABOUTME: Test scenario data structures for pipeline benchmarks
// ABOUTME: Defines conversation turns and expected routing outcomes for each test

package scenarios

import "github.com/pitcrewhq/pitcrew/internal/models"

// TestScenario represents a complete pipeline benchmark test
type TestScenario struct {
	ID          string
	Name        string
	Description string
	Turns       []ConversationTurn
	GroundTruth GroundTruth
}

// ConversationTurn represents a single turn in a test conversation
type ConversationTurn struct {
	TurnNumber  int
	UserMessage string
}

// GroundTruth defines expected outcomes for the final turn of a scenario
type GroundTruth struct {
	ExpectedIntent models.Intent

	ExpectEscalation bool
	ExpectedReason   models.EscalationReason

	// Strings that MUST appear in the final reply
	ExpectedInReply []string
	// Strings that MUST NOT appear in the final reply
	ForbiddenInReply []string
}

// TestResult represents the outcome of a benchmark test
type TestResult struct {
	TestID          string
	TestName        string
	IntentScore     float64
	EscalationScore float64
	ReplyScore      float64
	OverallScore    float64
	Status          string // "PASS" or "FAIL"
	Details         map[string]interface{}
	ErrorMessage    string
}

// GetTestSpecs returns the documentation-question scenario
func GetTestSpecs() TestScenario {
	return TestScenario{
		ID:          "specs",
		Name:        "Documentation question",
		Description: "A factual vehicle question routes to the specs agent and passes through without escalation.",
		Turns: []ConversationTurn{
			{TurnNumber: 1, UserMessage: "What's the oil capacity of the 2024 Silverado 1500?"},
		},
		GroundTruth: GroundTruth{
			ExpectedIntent:   models.IntentSpecs,
			ExpectEscalation: false,
		},
	}
}

// GetTestMaintenance returns the appointment-booking scenario
func GetTestMaintenance() TestScenario {
	return TestScenario{
		ID:          "maintenance",
		Name:        "Appointment booking",
		Description: "A scheduling request routes to the maintenance agent and its tool loop.",
		Turns: []ConversationTurn{
			{TurnNumber: 1, UserMessage: "I'd like to schedule an oil change for next week"},
		},
		GroundTruth: GroundTruth{
			ExpectedIntent:   models.IntentMaintenance,
			ExpectEscalation: false,
		},
	}
}

// GetTestTroubleshoot returns the diagnostic scenario
func GetTestTroubleshoot() TestScenario {
	return TestScenario{
		ID:          "troubleshoot",
		Name:        "Engine light diagnosis",
		Description: "A symptom description routes to the troubleshooting agent without tripping safety rules.",
		Turns: []ConversationTurn{
			{TurnNumber: 1, UserMessage: "My check engine light is flashing, what should I do?"},
		},
		GroundTruth: GroundTruth{
			ExpectedIntent:   models.IntentTroubleshoot,
			ExpectEscalation: false,
			ForbiddenInReply: []string{"SAFETY WARNING"},
		},
	}
}

// GetTestSafety returns the safety-escalation scenario
func GetTestSafety() TestScenario {
	return TestScenario{
		ID:          "safety",
		Name:        "Brake failure handoff",
		Description: "A safety-critical report escalates to a human and suppresses the generated reply.",
		Turns: []ConversationTurn{
			{TurnNumber: 1, UserMessage: "My brakes aren't working and I smell something burning"},
		},
		GroundTruth: GroundTruth{
			ExpectedIntent:   models.IntentTroubleshoot,
			ExpectEscalation: true,
			ExpectedReason:   models.ReasonSafetyConcern,
			ExpectedInReply:  []string{"Safety issues are our priority"},
		},
	}
}

// GetTestHumanRequest returns the explicit-handoff scenario
func GetTestHumanRequest() TestScenario {
	return TestScenario{
		ID:          "human",
		Name:        "Explicit human request",
		Description: "An explicit request for a person escalates regardless of the classified intent.",
		Turns: []ConversationTurn{
			{TurnNumber: 1, UserMessage: "What's the tire pressure for a Corolla?"},
			{TurnNumber: 2, UserMessage: "I'd rather speak to human support about this"},
		},
		GroundTruth: GroundTruth{
			ExpectEscalation: true,
			ExpectedReason:   models.ReasonUserRequest,
			ExpectedInReply:  []string{"human agent"},
		},
	}
}

// AllScenarios returns every benchmark scenario in run order
func AllScenarios() []TestScenario {
	return []TestScenario{
		GetTestSpecs(),
		GetTestMaintenance(),
		GetTestTroubleshoot(),
		GetTestSafety(),
		GetTestHumanRequest(),
	}
}

// ScenarioByID returns the scenario with the given ID, or false
func ScenarioByID(id string) (TestScenario, bool) {
	for _, s := range AllScenarios() {
		if s.ID == id {
			return s, true
		}
	}
	return TestScenario{}, false
}
