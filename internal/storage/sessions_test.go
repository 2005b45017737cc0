// ABOUTME: Tests for session and message persistence
// ABOUTME: Uses in-memory SQLite, verifies append-only ordering

package storage

import (
	"testing"

	"github.com/pitcrewhq/pitcrew/internal/models"
)

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewSessionStore(db)
}

func TestSessionStore_AppendAndHistory(t *testing.T) {
	store := newTestStore(t)

	if err := store.EnsureSession("sess_1", "cust_9", ""); err != nil {
		t.Fatalf("EnsureSession() error = %v", err)
	}

	conf := 0.85
	msgs := []struct {
		msg  models.Message
		conf *float64
	}{
		{models.Message{Role: models.RoleUser, Text: "my car overheats"}, nil},
		{models.Message{Role: models.RoleAssistant, Text: "Check the coolant level first."}, &conf},
		{models.Message{Role: models.RoleUser, Text: "coolant is full"}, nil},
	}
	for _, m := range msgs {
		if err := store.AppendMessage("sess_1", m.msg, m.conf); err != nil {
			t.Fatalf("AppendMessage() error = %v", err)
		}
	}

	history, err := store.History("sess_1")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("len(History()) = %d, want 3", len(history))
	}
	for i, m := range msgs {
		if history[i].Text != m.msg.Text || history[i].Role != m.msg.Role {
			t.Errorf("history[%d] = %+v, want %+v", i, history[i], m.msg)
		}
	}
}

func TestSessionStore_HistoryEmptySession(t *testing.T) {
	store := newTestStore(t)

	history, err := store.History("missing")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("History() = %v, want empty", history)
	}
}

func TestSessionStore_RejectsBadRole(t *testing.T) {
	store := newTestStore(t)
	if err := store.EnsureSession("sess_1", "", ""); err != nil {
		t.Fatalf("EnsureSession() error = %v", err)
	}

	err := store.AppendMessage("sess_1", models.Message{Role: "system", Text: "x"}, nil)
	if err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestSessionStore_LastConfidence(t *testing.T) {
	store := newTestStore(t)
	if err := store.EnsureSession("sess_1", "", ""); err != nil {
		t.Fatalf("EnsureSession() error = %v", err)
	}

	if _, ok, err := store.LastConfidence("sess_1"); err != nil || ok {
		t.Fatalf("LastConfidence() on empty session = (ok=%v, err=%v), want no value", ok, err)
	}

	first, second := 0.85, 0.50
	_ = store.AppendMessage("sess_1", models.NewAssistantMessage("a"), &first)
	_ = store.AppendMessage("sess_1", models.NewAssistantMessage("b"), &second)

	got, ok, err := store.LastConfidence("sess_1")
	if err != nil {
		t.Fatalf("LastConfidence() error = %v", err)
	}
	if !ok || got != 0.50 {
		t.Errorf("LastConfidence() = (%v, %v), want (0.50, true)", got, ok)
	}
}

func TestSessionStore_RecentSessions(t *testing.T) {
	store := newTestStore(t)

	for _, id := range []string{"sess_a", "sess_b"} {
		if err := store.EnsureSession(id, "", ""); err != nil {
			t.Fatalf("EnsureSession(%q) error = %v", id, err)
		}
	}
	_ = store.AppendMessage("sess_b", models.Message{Role: models.RoleUser, Text: "hi"}, nil)

	sessions, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("len(RecentSessions()) = %d, want 2", len(sessions))
	}
	for _, s := range sessions {
		if s.ID == "sess_b" && s.MessageCount != 1 {
			t.Errorf("sess_b MessageCount = %d, want 1", s.MessageCount)
		}
	}
}
