package driven

import (
	"context"

	"github.com/dialogue-labs/botscript/internal/core/domain"
)

// MessageGateway dispatches short messages through an external provider.
// Retries, if any, are the gateway's responsibility; the dispatcher never
// retries internally.
type MessageGateway interface {
	// Send delivers a message via the provider named in it.
	// Returns a provider message ID on success.
	Send(ctx context.Context, msg domain.Message) (string, error)
}
