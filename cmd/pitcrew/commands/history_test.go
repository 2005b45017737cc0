// ABOUTME: Tests for sessions and history commands
// ABOUTME: Runs both against a temp database seeded through the session store

package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pitcrewhq/pitcrew/internal/models"
	"github.com/pitcrewhq/pitcrew/internal/storage"
)

func seedSession(t *testing.T, dbPath, sessionID string) {
	t.Helper()
	db, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	defer func() { _ = db.Close() }()

	store := storage.NewSessionStore(db)
	if err := store.EnsureSession(sessionID, "cust_1", "veh_1"); err != nil {
		t.Fatalf("ensuring session: %v", err)
	}
	if err := store.AppendMessage(sessionID, models.Message{Role: models.RoleUser, Text: "My car won't start"}, nil); err != nil {
		t.Fatalf("appending message: %v", err)
	}
	confidence := 0.85
	if err := store.AppendMessage(sessionID, models.Message{Role: models.RoleAssistant, Text: "Let's check the battery first."}, &confidence); err != nil {
		t.Fatalf("appending message: %v", err)
	}
}

func TestHistoryCmd_ShowsTranscript(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pitcrew.db")
	t.Setenv("PITCREW_DB_PATH", dbPath)
	seedSession(t, dbPath, "sess_test_1")

	cmd := NewHistoryCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"sess_test_1"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got := output.String()
	if !strings.Contains(got, "user: My car won't start") {
		t.Errorf("expected user message in transcript, got: %s", got)
	}
	if !strings.Contains(got, "assistant: Let's check the battery first.") {
		t.Errorf("expected assistant message in transcript, got: %s", got)
	}
}

func TestHistoryCmd_UnknownSession(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pitcrew.db")
	t.Setenv("PITCREW_DB_PATH", dbPath)

	cmd := NewHistoryCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"sess_missing"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(output.String(), "No messages found") {
		t.Errorf("expected empty-history notice, got: %s", output.String())
	}
}

func TestSessionsCmd_ListsSessions(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pitcrew.db")
	t.Setenv("PITCREW_DB_PATH", dbPath)
	seedSession(t, dbPath, "sess_test_2")

	cmd := NewSessionsCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got := output.String()
	if !strings.Contains(got, "sess_test_2") {
		t.Errorf("expected session id in listing, got: %s", got)
	}
	if !strings.Contains(got, "cust_1") {
		t.Errorf("expected customer id in listing, got: %s", got)
	}
}
