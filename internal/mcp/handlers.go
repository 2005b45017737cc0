// ABOUTME: MCP tool handler implementations for the pitcrew server
// ABOUTME: Each handler validates arguments, runs the operation, and returns JSON
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pitcrewhq/pitcrew/internal/diagnostic"
	"github.com/pitcrewhq/pitcrew/internal/models"
	"github.com/pitcrewhq/pitcrew/internal/orchestrator"
	"github.com/pitcrewhq/pitcrew/internal/retrieval"
	"github.com/pitcrewhq/pitcrew/internal/storage"
)

// searchTokenBudget caps direct knowledge-base searches. Far larger than any
// agent prompt budget since tool callers consume snippets directly.
const searchTokenBudget = 100000

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	orchestrator *orchestrator.Orchestrator
	sessions     *storage.SessionStore
	kb           *retrieval.Store
}

// ProcessTurn handles the process_turn tool
func (h *Handlers) ProcessTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("message argument is required and must be a string"), nil
	}

	sessionID := request.GetString("session_id", "")
	customerID := request.GetString("customer_id", "")
	vehicleID := request.GetString("vehicle_id", "")

	var history []models.Message
	if h.sessions != nil && sessionID != "" {
		history, err = h.sessions.History(sessionID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load session history: %v", err)), nil
		}
	}

	turn, err := models.NewTurn(sessionID, message, history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	turn.CustomerID = customerID
	turn.VehicleID = vehicleID

	result, err := h.orchestrator.ProcessTurn(ctx, turn)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("turn failed: %v", err)), nil
	}

	if h.sessions != nil {
		if err := h.persistTurn(turn, result); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to persist turn: %v", err)), nil
		}
	}

	response := map[string]interface{}{
		"session_id": turn.SessionID,
		"reply":      result.Reply,
		"intent":     string(result.Intent),
		"confidence": result.Confidence,
		"escalated":  result.Escalated(),
	}
	if result.Escalation != nil {
		response["escalation"] = result.Escalation
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

func (h *Handlers) persistTurn(turn *models.Turn, result *models.TurnResult) error {
	if err := h.sessions.EnsureSession(turn.SessionID, turn.CustomerID, turn.VehicleID); err != nil {
		return err
	}
	if err := h.sessions.AppendMessage(turn.SessionID, models.Message{Role: models.RoleUser, Text: turn.UserMessage}, nil); err != nil {
		return err
	}
	confidence := result.Confidence
	return h.sessions.AppendMessage(turn.SessionID, models.Message{Role: models.RoleAssistant, Text: result.Reply}, &confidence)
}

// GetSessionHistory handles the get_session_history tool
func (h *Handlers) GetSessionHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}
	if h.sessions == nil {
		return mcp.NewToolResultError("session persistence is not configured"), nil
	}

	messages, err := h.sessions.History(sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load history: %v", err)), nil
	}

	response := map[string]interface{}{
		"session_id": sessionID,
		"messages":   messages,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListSessions handles the list_sessions tool
func (h *Handlers) ListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.sessions == nil {
		return mcp.NewToolResultError("session persistence is not configured"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit < 1 {
		return mcp.NewToolResultError("limit must be positive"), nil
	}

	infos, err := h.sessions.RecentSessions(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list sessions: %v", err)), nil
	}

	responseJSON, err := json.Marshal(map[string]interface{}{"sessions": infos})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ListDiagnosticTrees handles the list_diagnostic_trees tool
func (h *Handlers) ListDiagnosticTrees(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(map[string]interface{}{"trees": diagnostic.Trees})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// SearchKnowledgeBase handles the search_knowledge_base tool
func (h *Handlers) SearchKnowledgeBase(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	if h.kb == nil {
		return mcp.NewToolResultError("knowledge base is not configured"), nil
	}

	maxResults := request.GetInt("max_results", 5)
	if maxResults < 1 {
		return mcp.NewToolResultError("max_results must be positive"), nil
	}

	// No prompt to fit into here, so the token budget is effectively open.
	snippets, err := h.kb.Retrieve(ctx, query, maxResults, searchTokenBudget)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("knowledge base search failed: %v", err)), nil
	}

	responseJSON, err := json.Marshal(map[string]interface{}{"snippets": snippets})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
