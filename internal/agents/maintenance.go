// ABOUTME: Maintenance agent handling scheduling via OpenAI tool calling
// ABOUTME: Exposes five scheduler operations; the model decides which to invoke
package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/pitcrewhq/pitcrew/internal/llm"
	"github.com/pitcrewhq/pitcrew/internal/models"
)

// maxToolRounds bounds the tool-call loop; the model gets this many chances
// to produce a final text answer before the turn fails
const maxToolRounds = 5

const maintenanceSystemPrompt = `You are a helpful automotive service scheduling assistant.
Your role is to help customers with:
- Scheduling service appointments
- Checking available time slots
- Viewing their service history
- Getting pricing information
- Canceling or rescheduling appointments

Guidelines:
1. Always confirm details before booking
2. Suggest appropriate services based on vehicle history
3. Be proactive about reminding customers of upcoming maintenance
4. If the customer hasn't provided vehicle information, ask for it
5. Be friendly and professional

Current date: %s`

// MaintenanceAgent handles scheduling and service requests through tool calls
type MaintenanceAgent struct {
	client    *llm.Client
	scheduler Scheduler
	now       func() time.Time
}

// NewMaintenanceAgent creates the maintenance agent on a scheduler backend
func NewMaintenanceAgent(client *llm.Client, scheduler Scheduler) *MaintenanceAgent {
	return &MaintenanceAgent{client: client, scheduler: scheduler, now: time.Now}
}

// Name implements Agent
func (a *MaintenanceAgent) Name() string { return string(models.IntentMaintenance) }

// Respond runs the tool-calling conversation. The completion collaborator
// must support tool calling; any protocol failure surfaces as
// ToolInvocationError and the turn fails without retry.
func (a *MaintenanceAgent) Respond(ctx context.Context, turn *models.Turn) (string, error) {
	system := fmt.Sprintf(maintenanceSystemPrompt, a.now().Format("2006-01-02"))

	msgs := make([]openai.ChatCompletionMessage, 0, len(turn.Messages)+1)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	msgs = append(msgs, llm.ToChatMessages(turn.History())...)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: turn.UserMessage,
	})

	for round := 0; round < maxToolRounds; round++ {
		resp, err := a.client.ChatCompletion(ctx, openai.ChatCompletionRequest{
			Messages:    msgs,
			Temperature: 0.1,
			Tools:       maintenanceTools(),
		})
		if err != nil {
			return "", &models.ToolInvocationError{Err: err}
		}
		if len(resp.Choices) == 0 {
			return "", &models.ToolInvocationError{Err: fmt.Errorf("no completion choices returned")}
		}

		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}

		msgs = append(msgs, msg)
		for _, call := range msg.ToolCalls {
			output, err := a.dispatch(call)
			if err != nil {
				return "", &models.ToolInvocationError{Err: err}
			}
			log.Printf("[Maintenance] tool %s invoked", call.Function.Name)
			msgs = append(msgs, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				ToolCallID: call.ID,
				Content:    output,
			})
		}
	}

	return "", &models.ToolInvocationError{Err: fmt.Errorf("tool loop exceeded %d rounds without a final answer", maxToolRounds)}
}

func (a *MaintenanceAgent) dispatch(call openai.ToolCall) (string, error) {
	args := call.Function.Arguments

	switch call.Function.Name {
	case "check_available_slots":
		var p struct {
			ServiceType   string `json:"service_type"`
			PreferredDate string `json:"preferred_date"`
		}
		if err := json.Unmarshal([]byte(args), &p); err != nil {
			return "", fmt.Errorf("bad arguments for check_available_slots: %w", err)
		}
		return a.scheduler.CheckAvailableSlots(p.ServiceType, p.PreferredDate)

	case "book_appointment":
		var p struct {
			CustomerName string `json:"customer_name"`
			ServiceType  string `json:"service_type"`
			Date         string `json:"date"`
			Time         string `json:"time"`
			VehicleInfo  string `json:"vehicle_info"`
		}
		if err := json.Unmarshal([]byte(args), &p); err != nil {
			return "", fmt.Errorf("bad arguments for book_appointment: %w", err)
		}
		return a.scheduler.BookAppointment(p.CustomerName, p.ServiceType, p.Date, p.Time, p.VehicleInfo)

	case "get_service_history":
		var p struct {
			CustomerID string `json:"customer_id"`
		}
		if err := json.Unmarshal([]byte(args), &p); err != nil {
			return "", fmt.Errorf("bad arguments for get_service_history: %w", err)
		}
		return a.scheduler.GetServiceHistory(p.CustomerID)

	case "cancel_appointment":
		var p struct {
			ConfirmationNumber string `json:"confirmation_number"`
		}
		if err := json.Unmarshal([]byte(args), &p); err != nil {
			return "", fmt.Errorf("bad arguments for cancel_appointment: %w", err)
		}
		return a.scheduler.CancelAppointment(p.ConfirmationNumber)

	case "get_service_pricing":
		var p struct {
			ServiceType string `json:"service_type"`
		}
		if err := json.Unmarshal([]byte(args), &p); err != nil {
			return "", fmt.Errorf("bad arguments for get_service_pricing: %w", err)
		}
		return a.scheduler.GetServicePricing(p.ServiceType)
	}

	return "", fmt.Errorf("unknown tool %q", call.Function.Name)
}

func maintenanceTools() []openai.Tool {
	strProp := func(desc string) jsonschema.Definition {
		return jsonschema.Definition{Type: jsonschema.String, Description: desc}
	}

	return []openai.Tool{
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        "check_available_slots",
				Description: "Check available appointment slots for a service.",
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"service_type":   strProp("Type of service (oil_change, tire_rotation, inspection, repair)"),
						"preferred_date": strProp("Preferred date in YYYY-MM-DD format"),
					},
					Required: []string{"service_type", "preferred_date"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        "book_appointment",
				Description: "Book a service appointment.",
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"customer_name": strProp("Customer's full name"),
						"service_type":  strProp("Type of service requested"),
						"date":          strProp("Appointment date (YYYY-MM-DD)"),
						"time":          strProp("Appointment time (HH:MM)"),
						"vehicle_info":  strProp("Vehicle make/model/year (optional)"),
					},
					Required: []string{"customer_name", "service_type", "date", "time"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        "get_service_history",
				Description: "Retrieve service history for a customer.",
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"customer_id": strProp("Customer ID or identifier"),
					},
					Required: []string{"customer_id"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        "cancel_appointment",
				Description: "Cancel an existing appointment.",
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"confirmation_number": strProp("The appointment confirmation number"),
					},
					Required: []string{"confirmation_number"},
				},
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        "get_service_pricing",
				Description: "Get pricing information for a service.",
				Parameters: jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"service_type": strProp("Type of service to get pricing for"),
					},
					Required: []string{"service_type"},
				},
			},
		},
	}
}
