package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dialogue-labs/botscript/internal/core/domain"
	"github.com/dialogue-labs/botscript/internal/core/ports/driven"
	"github.com/dialogue-labs/botscript/internal/logger"
)

// Ensure MessageGateway implements the interface.
var _ driven.MessageGateway = (*MessageGateway)(nil)

// MessageGateway records outgoing short messages in memory.
type MessageGateway struct {
	mu   sync.RWMutex
	sent []domain.Message
}

// NewMessageGateway creates a new in-memory message gateway.
func NewMessageGateway() *MessageGateway {
	return &MessageGateway{}
}

// Send records the message and returns a generated message ID.
func (g *MessageGateway) Send(_ context.Context, message domain.Message) (string, error) {
	if message.To == "" {
		return "", fmt.Errorf("%w: message has no recipient", domain.ErrInvalidArgument)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = append(g.sent, message)
	id := uuid.NewString()
	logger.Debug("Recorded message %s to %s via %s", id, message.To, message.Provider)
	return id, nil
}

// Sent returns all recorded messages.
func (g *MessageGateway) Sent() []domain.Message {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]domain.Message, len(g.sent))
	copy(out, g.sent)
	return out
}
