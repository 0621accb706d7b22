package driving

import (
	"context"

	"github.com/dialogue-labs/botscript/internal/core/domain"
)

// CrawlRegistry tracks external resources and their ingestion status.
//
// Register and Lookup serve the compiler and the dispatcher; MarkCompleted
// and MarkFailed are the transition contract consumed by the external
// crawler. The registry never blocks waiting for a crawl.
type CrawlRegistry interface {
	// Register creates a pending record for the identifier, or returns
	// the existing record unchanged. Idempotent and safe under
	// concurrent builds of the same script.
	Register(ctx context.Context, identifier string, kind domain.ResourceKind) (*domain.CrawlRecord, error)

	// Lookup returns the current record for the identifier.
	Lookup(ctx context.Context, identifier string) (*domain.CrawlRecord, error)

	// MarkCompleted transitions a pending record to crawled, assigning
	// its collection ID. A duplicate call on a terminal record is
	// ignored: the stored collection ID and completion time are kept.
	MarkCompleted(ctx context.Context, identifier, collectionID string) error

	// MarkFailed transitions a pending record to failed.
	// Terminal records are left untouched, as with MarkCompleted.
	MarkFailed(ctx context.Context, identifier string) error

	// Reset returns a record to pending, clearing its collection ID and
	// completion time. This is the only way out of a terminal state.
	Reset(ctx context.Context, identifier string) error

	// List returns all registered records.
	List(ctx context.Context) ([]domain.CrawlRecord, error)
}
