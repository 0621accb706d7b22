package driving

import (
	"context"

	"github.com/dialogue-labs/botscript/internal/core/domain"
)

// SessionService manages conversation sessions.
type SessionService interface {
	// Start creates a session for a channel. An empty id gets a
	// generated one.
	Start(ctx context.Context, id string, channel domain.Channel) (*domain.Session, error)

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// AssociateResource makes a declared resource's collection queryable
	// in the session. Fails unless the resource's crawl record exists
	// and is in the crawled state.
	AssociateResource(ctx context.Context, sessionID, identifier string) (*domain.CrawlRecord, error)

	// ClearCollections removes all associated collections from the
	// session and returns how many were removed.
	ClearCollections(ctx context.Context, sessionID string) (int, error)

	// End discards a session.
	End(ctx context.Context, sessionID string) error
}
