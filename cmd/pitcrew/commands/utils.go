// ABOUTME: Shared helpers for CLI commands
// ABOUTME: Pipeline construction, display formatting, and string utilities
package commands

import (
	"fmt"
	"time"

	"github.com/pitcrewhq/pitcrew/internal/config"
	"github.com/pitcrewhq/pitcrew/internal/llm"
	"github.com/pitcrewhq/pitcrew/internal/orchestrator"
	"github.com/pitcrewhq/pitcrew/internal/retrieval"
	"github.com/pitcrewhq/pitcrew/internal/storage"
)

// pipeline bundles everything a conversational command needs
type pipeline struct {
	cfg      *config.Config
	orch     *orchestrator.Orchestrator
	sessions *storage.SessionStore
	db       *storage.DB
	kb       *retrieval.Store
}

func (p *pipeline) Close() {
	if p.kb != nil {
		_ = p.kb.Close()
	}
	if p.db != nil {
		_ = p.db.Close()
	}
}

// openPipeline builds the full turn pipeline from environment configuration
func openPipeline() (*pipeline, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing OpenAI client: %w", err)
	}

	db, err := openSessionDB(cfg)
	if err != nil {
		return nil, err
	}

	kb, err := openKnowledgeBase(cfg)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &pipeline{
		cfg:      cfg,
		orch:     orchestrator.New(cfg, client, kb),
		sessions: storage.NewSessionStore(db),
		db:       db,
		kb:       kb,
	}, nil
}

func openSessionDB(cfg *config.Config) (*storage.DB, error) {
	path := cfg.DBPath
	if path == "" {
		path = storage.DefaultDBPath()
	}
	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}
	return db, nil
}

func openKnowledgeBase(cfg *config.Config) (*retrieval.Store, error) {
	path := cfg.KBPath
	if path == "" {
		path = storage.DefaultKBPath()
	}
	kb, err := retrieval.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening knowledge base: %w", err)
	}
	return kb, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	} else if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	} else if diff < 7*24*time.Hour {
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
	return t.Format("2006-01-02")
}
