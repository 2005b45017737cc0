// ABOUTME: Tests for the escalation webhook client
// ABOUTME: Uses httptest to cover success, non-2xx, and bad-body paths

package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pitcrewhq/pitcrew/internal/models"
)

func TestWebhookSend_Success(t *testing.T) {
	var received models.EscalationRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(models.EscalationResponse{
			EscalationID:      "ESC-42",
			Status:            models.StatusAssigned,
			EstimatedWaitMins: 3,
			AgentName:         "Paula",
			Message:           "Paula will assist you.",
		})
	}))
	defer srv.Close()

	client := NewWebhookClient(srv.URL, 5*time.Second)
	req := models.NewEscalationRequest("sess_1", models.ReasonSafetyConcern, "summary", "fuel leak")

	resp, err := client.Send(context.Background(), req)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if resp.EscalationID != "ESC-42" || resp.Status != models.StatusAssigned {
		t.Errorf("response = %+v", resp)
	}
	if received.Reason != models.ReasonSafetyConcern {
		t.Errorf("server received reason = %v, want safety_concern", received.Reason)
	}
}

func TestWebhookSend_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewWebhookClient(srv.URL, 5*time.Second)
	_, err := client.Send(context.Background(), models.NewEscalationRequest("s", models.ReasonUserRequest, "", ""))

	var whErr *models.WebhookError
	if !errors.As(err, &whErr) {
		t.Errorf("error = %T (%v), want *models.WebhookError", err, err)
	}
}

func TestWebhookSend_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewWebhookClient(srv.URL, 5*time.Second)
	_, err := client.Send(context.Background(), models.NewEscalationRequest("s", models.ReasonUserRequest, "", ""))

	var whErr *models.WebhookError
	if !errors.As(err, &whErr) {
		t.Errorf("error = %T (%v), want *models.WebhookError", err, err)
	}
}

func TestWebhookSend_ConnectionRefused(t *testing.T) {
	client := NewWebhookClient("http://127.0.0.1:1", 500*time.Millisecond)
	_, err := client.Send(context.Background(), models.NewEscalationRequest("s", models.ReasonUserRequest, "", ""))

	var whErr *models.WebhookError
	if !errors.As(err, &whErr) {
		t.Errorf("error = %T (%v), want *models.WebhookError", err, err)
	}
}
