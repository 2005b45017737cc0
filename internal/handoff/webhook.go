// ABOUTME: HTTP client delivering escalation requests to the support webhook
// ABOUTME: Failures surface as WebhookError; the evaluator absorbs them
package handoff

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pitcrewhq/pitcrew/internal/models"
)

// WebhookClient posts escalation requests to the human-support system
type WebhookClient struct {
	url    string
	client *http.Client
}

// NewWebhookClient creates a client for the given webhook URL
func NewWebhookClient(url string, timeout time.Duration) *WebhookClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Send delivers one escalation request and parses the support system's reply
func (w *WebhookClient) Send(ctx context.Context, req *models.EscalationRequest) (*models.EscalationResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &models.WebhookError{Err: fmt.Errorf("failed to encode request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return nil, &models.WebhookError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(httpReq)
	if err != nil {
		return nil, &models.WebhookError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &models.WebhookError{Err: fmt.Errorf("webhook returned status %d", resp.StatusCode)}
	}

	var out models.EscalationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &models.WebhookError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return &out, nil
}
