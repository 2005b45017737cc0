// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to use pitcrew via stdio
package commands

import (
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/pitcrewhq/pitcrew/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs pitcrew as an MCP (Model Context Protocol) server, exposing
the support pipeline, session history, and knowledge base search
over stdio.`,
		RunE: runMCPServer,
		Example: `  # Start MCP server (typically called by an MCP client)
  pitcrew mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "pitcrew": {
  #       "command": "pitcrew",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCPServer starts the MCP server
func runMCPServer(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	p, err := openPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	server := mcpserver.NewMCPServer(
		"Pitcrew Support Assistant",
		"0.1.0",
	)
	mcp.RegisterTools(server, p.orch, p.sessions, p.kb)

	if !quiet {
		log.Println("Pitcrew MCP server starting on stdio...")
	}
	return mcpserver.ServeStdio(server)
}
