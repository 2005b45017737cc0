// ABOUTME: MCP tool definitions and registration for the pitcrew server
// ABOUTME: Exposes the turn pipeline, session history, and static tables as tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/pitcrewhq/pitcrew/internal/orchestrator"
	"github.com/pitcrewhq/pitcrew/internal/retrieval"
	"github.com/pitcrewhq/pitcrew/internal/storage"
)

// RegisterTools registers all MCP tools with the server. sessions and kb may
// be nil when persistence or the knowledge base is not configured; the
// affected tools then report a clean error instead of failing at startup.
func RegisterTools(server *mcpserver.MCPServer, orch *orchestrator.Orchestrator, sessions *storage.SessionStore, kb *retrieval.Store) *Handlers {
	handlers := &Handlers{
		orchestrator: orch,
		sessions:     sessions,
		kb:           kb,
	}

	// 1. process_turn - Run one customer message through the pipeline
	server.AddTool(mcp.Tool{
		Name:        "process_turn",
		Description: "Process one customer support message: classify the intent, route to the matching agent, and apply the human-handoff rules. Returns the reply and any escalation details.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"message": map[string]interface{}{
					"type":        "string",
					"description": "The customer's message",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session to continue; a new session is created when omitted",
				},
				"customer_id": map[string]interface{}{
					"type":        "string",
					"description": "Optional customer identifier attached to escalations",
				},
				"vehicle_id": map[string]interface{}{
					"type":        "string",
					"description": "Optional vehicle identifier",
				},
			},
			Required: []string{"message"},
		},
	}, handlers.ProcessTurn)

	// 2. get_session_history - Full message history for a session
	server.AddTool(mcp.Tool{
		Name:        "get_session_history",
		Description: "Get the complete message history for a support session.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve history for",
				},
			},
			Required: []string{"session_id"},
		},
	}, handlers.GetSessionHistory)

	// 3. list_sessions - Recent support sessions
	server.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List recent support sessions with message counts.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of sessions to return (default: 10)",
					"default":     10,
				},
			},
		},
	}, handlers.ListSessions)

	// 4. list_diagnostic_trees - Static troubleshooting patterns
	server.AddTool(mcp.Tool{
		Name:        "list_diagnostic_trees",
		Description: "List the built-in diagnostic trees with their trigger keywords, key questions, and common causes.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListDiagnosticTrees)

	// 5. search_knowledge_base - Direct retrieval over ingested docs
	server.AddTool(mcp.Tool{
		Name:        "search_knowledge_base",
		Description: "Search the ingested vehicle documentation and return the best-matching snippets.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of snippets to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchKnowledgeBase)

	return handlers
}
