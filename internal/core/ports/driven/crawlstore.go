package driven

import (
	"context"

	"github.com/dialogue-labs/botscript/internal/core/domain"
)

// CrawlRecordStore persists crawl records for registered resources.
//
// Create must be safe under concurrent invocation for the same identifier:
// implementations resolve races with a storage-level uniqueness constraint,
// not caller-side locking.
type CrawlRecordStore interface {
	// Create inserts a record if no record exists for its identifier.
	// Returns true when the record was inserted, false when a record for
	// the identifier already existed (the insert is a no-op).
	Create(ctx context.Context, record domain.CrawlRecord) (created bool, err error)

	// Get retrieves a record by identifier.
	Get(ctx context.Context, identifier string) (*domain.CrawlRecord, error)

	// Update overwrites an existing record.
	Update(ctx context.Context, record domain.CrawlRecord) error

	// List returns all records.
	List(ctx context.Context) ([]domain.CrawlRecord, error)
}
