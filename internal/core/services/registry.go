package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dialogue-labs/botscript/internal/core/domain"
	"github.com/dialogue-labs/botscript/internal/core/ports/driven"
	"github.com/dialogue-labs/botscript/internal/core/ports/driving"
	"github.com/dialogue-labs/botscript/internal/logger"
)

// Ensure CrawlRegistryService implements the interface.
var _ driving.CrawlRegistry = (*CrawlRegistryService)(nil)

// CrawlRegistryService tracks registered resources and their crawl state.
// Writes happen at registration and at crawl completion or failure; reads
// dominate during conversations.
type CrawlRegistryService struct {
	store driven.CrawlRecordStore
}

// NewCrawlRegistryService creates a new crawl registry service.
func NewCrawlRegistryService(store driven.CrawlRecordStore) *CrawlRegistryService {
	return &CrawlRegistryService{store: store}
}

// Register creates a pending record for the identifier, or returns the
// existing record unchanged. Concurrent builds of the same script resolve
// through the store's uniqueness constraint.
func (r *CrawlRegistryService) Register(
	ctx context.Context, identifier string, kind domain.ResourceKind,
) (*domain.CrawlRecord, error) {
	if r.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if identifier == "" {
		return nil, fmt.Errorf("%w: empty resource identifier", domain.ErrInvalidArgument)
	}

	record := domain.CrawlRecord{
		Identifier:   identifier,
		Kind:         kind,
		Status:       domain.CrawlPending,
		RegisteredAt: time.Now().UTC(),
	}

	created, err := r.store.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("create crawl record: %w", err)
	}
	if created {
		logger.Info("Registered %s %q for crawling", kind, identifier)
		return &record, nil
	}

	// Lost the race or already registered by an earlier build.
	existing, err := r.store.Get(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("get crawl record: %w", err)
	}
	logger.Debug("Resource %q already registered (status: %s)", identifier, existing.Status)
	return existing, nil
}

// Lookup returns the current record for the identifier.
func (r *CrawlRegistryService) Lookup(ctx context.Context, identifier string) (*domain.CrawlRecord, error) {
	if r.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return r.store.Get(ctx, identifier)
}

// MarkCompleted transitions a pending record to crawled. Duplicate
// completion callbacks for a terminal record are ignored with a warning,
// preserving the stored collection ID and completion time.
func (r *CrawlRegistryService) MarkCompleted(ctx context.Context, identifier, collectionID string) error {
	if collectionID == "" {
		return fmt.Errorf("%w: empty collection ID", domain.ErrInvalidArgument)
	}
	return r.transition(ctx, identifier, func(record *domain.CrawlRecord) {
		record.Status = domain.CrawlDone
		record.CollectionID = collectionID
		record.CompletedAt = time.Now().UTC()
	})
}

// MarkFailed transitions a pending record to failed.
func (r *CrawlRegistryService) MarkFailed(ctx context.Context, identifier string) error {
	return r.transition(ctx, identifier, func(record *domain.CrawlRecord) {
		record.Status = domain.CrawlFailed
		record.CompletedAt = time.Now().UTC()
	})
}

// transition applies a status mutation to a pending record.
func (r *CrawlRegistryService) transition(
	ctx context.Context, identifier string, mutate func(*domain.CrawlRecord),
) error {
	if r.store == nil {
		return domain.ErrNotImplemented
	}

	record, err := r.store.Get(ctx, identifier)
	if err != nil {
		return fmt.Errorf("get crawl record: %w", err)
	}
	if record.Status.Terminal() {
		logger.Warn("Ignoring duplicate crawl callback for %q (already %s)",
			identifier, record.Status)
		return nil
	}

	mutate(record)
	if err := r.store.Update(ctx, *record); err != nil {
		return fmt.Errorf("update crawl record: %w", err)
	}
	logger.Info("Crawl record %q is now %s", identifier, record.Status)
	return nil
}

// Reset returns a record to pending, clearing collection ID and
// completion time. Explicit re-registration is the only way out of a
// terminal state.
func (r *CrawlRegistryService) Reset(ctx context.Context, identifier string) error {
	if r.store == nil {
		return domain.ErrNotImplemented
	}

	record, err := r.store.Get(ctx, identifier)
	if err != nil {
		return fmt.Errorf("get crawl record: %w", err)
	}

	record.Status = domain.CrawlPending
	record.CollectionID = ""
	record.CompletedAt = time.Time{}
	record.RegisteredAt = time.Now().UTC()

	if err := r.store.Update(ctx, *record); err != nil {
		return fmt.Errorf("update crawl record: %w", err)
	}
	logger.Info("Crawl record %q reset to pending", identifier)
	return nil
}

// List returns all registered records.
func (r *CrawlRegistryService) List(ctx context.Context) ([]domain.CrawlRecord, error) {
	if r.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return r.store.List(ctx)
}
