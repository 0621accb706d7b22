package driven

import (
	"context"

	"github.com/dialogue-labs/botscript/internal/core/domain"
)

// SessionStore persists conversation sessions.
//
// Implementations must support concurrent access across distinct session
// IDs without cross-session interference. A single session is only ever
// mutated by one in-flight keyword execution at a time.
type SessionStore interface {
	// Save stores or updates a session.
	Save(ctx context.Context, session domain.Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// Delete removes a session.
	Delete(ctx context.Context, id string) error
}
