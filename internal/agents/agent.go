// ABOUTME: Agent capability shared by the three response handlers
// ABOUTME: Each agent consumes a turn and produces response text
package agents

import (
	"context"

	"github.com/pitcrewhq/pitcrew/internal/models"
)

// Agent is one specialized response handler. Respond consumes the full turn
// and returns the reply text; failures are returned, never retried here.
type Agent interface {
	Name() string
	Respond(ctx context.Context, turn *models.Turn) (string, error)
}
