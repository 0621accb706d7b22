package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dialogue-labs/botscript/internal/core/domain"
	"github.com/dialogue-labs/botscript/internal/core/ports/driven"
	"github.com/dialogue-labs/botscript/internal/core/ports/driving"
	"github.com/dialogue-labs/botscript/internal/logger"
)

// Ensure SessionManager implements the interface.
var _ driving.SessionService = (*SessionManager)(nil)

// SessionManager manages conversation sessions and their resource
// associations. The status-gating logic in AssociateResource is shared by
// every resource-declaring keyword.
type SessionManager struct {
	sessions driven.SessionStore
	registry driving.CrawlRegistry
}

// NewSessionManager creates a new session manager.
func NewSessionManager(sessions driven.SessionStore, registry driving.CrawlRegistry) *SessionManager {
	return &SessionManager{
		sessions: sessions,
		registry: registry,
	}
}

// Start creates a session for a channel. An empty id gets a generated one.
func (m *SessionManager) Start(ctx context.Context, id string, channel domain.Channel) (*domain.Session, error) {
	if m.sessions == nil {
		return nil, domain.ErrNotImplemented
	}
	if id == "" {
		id = uuid.NewString()
	}

	session := domain.NewSession(id, channel)
	if err := m.sessions.Save(ctx, *session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	logger.Debug("Started session %s on channel %s", id, channel)
	return session, nil
}

// Get retrieves a session by ID.
func (m *SessionManager) Get(ctx context.Context, id string) (*domain.Session, error) {
	if m.sessions == nil {
		return nil, domain.ErrNotImplemented
	}
	return m.sessions.Get(ctx, id)
}

// AssociateResource makes a declared resource's collection queryable in
// the session.
//
// The crawl record gates the association: a missing record means the
// compile step was skipped or the resource was never declared, a pending
// record fails immediately rather than waiting for the crawler, and a
// failed record surfaces the ingestion failure. Only a crawled record's
// collection joins the session.
func (m *SessionManager) AssociateResource(
	ctx context.Context, sessionID, identifier string,
) (*domain.CrawlRecord, error) {
	if m.sessions == nil || m.registry == nil {
		return nil, domain.ErrNotImplemented
	}

	record, err := m.registry.Lookup(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrResourceNotRegistered, identifier)
		}
		return nil, fmt.Errorf("lookup crawl record: %w", err)
	}

	switch record.Status {
	case domain.CrawlPending:
		return nil, fmt.Errorf("%w: %s", domain.ErrResourceNotReady, identifier)
	case domain.CrawlFailed:
		return nil, fmt.Errorf("%w: %s", domain.ErrResourceIngestFailed, identifier)
	case domain.CrawlDone:
		// Queryable.
	default:
		return nil, fmt.Errorf("crawl record %s has unknown status %d", identifier, record.Status)
	}

	session, err := m.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.HasCollection(record.CollectionID) {
		logger.Debug("Collection %s already associated with session %s", record.CollectionID, sessionID)
		return record, nil
	}

	session.AddCollection(record.CollectionID)
	if err := m.sessions.Save(ctx, *session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	logger.Info("Associated collection %s with session %s", record.CollectionID, sessionID)
	return record, nil
}

// ClearCollections removes all associated collections from the session.
func (m *SessionManager) ClearCollections(ctx context.Context, sessionID string) (int, error) {
	if m.sessions == nil {
		return 0, domain.ErrNotImplemented
	}

	session, err := m.sessions.Get(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("get session: %w", err)
	}

	removed := len(session.Collections)
	session.Collections = nil
	if err := m.sessions.Save(ctx, *session); err != nil {
		return 0, fmt.Errorf("save session: %w", err)
	}

	logger.Info("Cleared %d collection(s) from session %s", removed, sessionID)
	return removed, nil
}

// End discards a session.
func (m *SessionManager) End(ctx context.Context, sessionID string) error {
	if m.sessions == nil {
		return domain.ErrNotImplemented
	}
	return m.sessions.Delete(ctx, sessionID)
}
