// Package throttle rate-limits outgoing traffic to external gateways so
// a runaway script cannot flood a messaging provider.
package throttle

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/dialogue-labs/botscript/internal/core/domain"
	"github.com/dialogue-labs/botscript/internal/core/ports/driven"
)

// Ensure MessageGateway implements the interface.
var _ driven.MessageGateway = (*MessageGateway)(nil)

// MessageGateway wraps another message gateway with a token-bucket rate
// limit. Send blocks until a token is available or the context expires.
type MessageGateway struct {
	next    driven.MessageGateway
	limiter *rate.Limiter
}

// NewMessageGateway creates a throttled gateway allowing perSecond sends
// with the given burst.
func NewMessageGateway(next driven.MessageGateway, perSecond float64, burst int) *MessageGateway {
	return &MessageGateway{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Send waits for rate-limit clearance, then delegates.
func (g *MessageGateway) Send(ctx context.Context, message domain.Message) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	return g.next.Send(ctx, message)
}
