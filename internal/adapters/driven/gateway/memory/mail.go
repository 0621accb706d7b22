// Package memory provides in-memory gateway implementations for tests
// and local development. Nothing leaves the process.
package memory

import (
	"context"
	"sync"

	"github.com/dialogue-labs/botscript/internal/core/domain"
	"github.com/dialogue-labs/botscript/internal/core/ports/driven"
	"github.com/dialogue-labs/botscript/internal/logger"
)

// Ensure MailGateway implements the interface.
var _ driven.MailGateway = (*MailGateway)(nil)

// MailGateway keeps drafts and sent messages in memory. The sent log is
// seeded through RecordSent so draft composition has prior bodies to
// merge against.
type MailGateway struct {
	mu     sync.RWMutex
	sent   map[string][]string
	drafts []domain.Draft
}

// NewMailGateway creates a new in-memory mail gateway.
func NewMailGateway() *MailGateway {
	return &MailGateway{
		sent: make(map[string][]string),
	}
}

// RecordSent appends a sent message body for an address.
func (g *MailGateway) RecordSent(address, body string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent[address] = append(g.sent[address], body)
}

// LatestSentTo returns the most recent sent body for an address, or an
// empty string when none exists.
func (g *MailGateway) LatestSentTo(_ context.Context, address string) (string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	bodies := g.sent[address]
	if len(bodies) == 0 {
		return "", nil
	}
	return bodies[len(bodies)-1], nil
}

// SaveDraft stores a draft.
func (g *MailGateway) SaveDraft(_ context.Context, draft domain.Draft) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.drafts = append(g.drafts, draft)
	logger.Debug("Saved draft for %s (%d total)", draft.To, len(g.drafts))
	return nil
}

// Drafts returns all saved drafts.
func (g *MailGateway) Drafts() []domain.Draft {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]domain.Draft, len(g.drafts))
	copy(out, g.drafts)
	return out
}
