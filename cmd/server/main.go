// ABOUTME: Main entry point for the pitcrew MCP server with stdio transport
// ABOUTME: Initializes config, storage, the turn pipeline, and all MCP tools
package main

import (
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/pitcrewhq/pitcrew/internal/config"
	"github.com/pitcrewhq/pitcrew/internal/llm"
	"github.com/pitcrewhq/pitcrew/internal/mcp"
	"github.com/pitcrewhq/pitcrew/internal/orchestrator"
	"github.com/pitcrewhq/pitcrew/internal/retrieval"
	"github.com/pitcrewhq/pitcrew/internal/storage"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize OpenAI client: %v", err)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = storage.DefaultDBPath()
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open session database: %v", err)
	}
	defer func() { _ = db.Close() }()
	sessions := storage.NewSessionStore(db)

	kbPath := cfg.KBPath
	if kbPath == "" {
		kbPath = storage.DefaultKBPath()
	}
	kb, err := retrieval.Open(kbPath)
	if err != nil {
		log.Fatalf("Failed to open knowledge base: %v", err)
	}
	defer func() { _ = kb.Close() }()

	orch := orchestrator.New(cfg, client, kb)

	server := mcpserver.NewMCPServer(
		"Pitcrew Support Assistant",
		"0.1.0",
	)
	mcp.RegisterTools(server, orch, sessions, kb)

	log.Println("Pitcrew MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
