// Package memory provides in-memory implementations of the driven store
// ports. Used by tests and for ephemeral development runs.
package memory

import (
	"context"
	"sync"

	"github.com/dialogue-labs/botscript/internal/core/domain"
	"github.com/dialogue-labs/botscript/internal/core/ports/driven"
)

// Ensure CrawlRecordStore implements the interface.
var _ driven.CrawlRecordStore = (*CrawlRecordStore)(nil)

// CrawlRecordStore is an in-memory implementation of
// driven.CrawlRecordStore. The mutex stands in for the uniqueness
// constraint a persistent store provides.
type CrawlRecordStore struct {
	mu      sync.RWMutex
	records map[string]domain.CrawlRecord
}

// NewCrawlRecordStore creates a new in-memory crawl record store.
func NewCrawlRecordStore() *CrawlRecordStore {
	return &CrawlRecordStore{
		records: make(map[string]domain.CrawlRecord),
	}
}

// Create inserts a record unless its identifier already exists.
func (s *CrawlRecordStore) Create(_ context.Context, record domain.CrawlRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.Identifier]; exists {
		return false, nil
	}
	s.records[record.Identifier] = record
	return true, nil
}

// Get retrieves a record by identifier.
func (s *CrawlRecordStore) Get(_ context.Context, identifier string) (*domain.CrawlRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[identifier]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// Update overwrites an existing record.
func (s *CrawlRecordStore) Update(_ context.Context, record domain.CrawlRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.Identifier]; !ok {
		return domain.ErrNotFound
	}
	s.records[record.Identifier] = record
	return nil
}

// List returns all records.
func (s *CrawlRecordStore) List(_ context.Context) ([]domain.CrawlRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.CrawlRecord, 0, len(s.records))
	for _, record := range s.records {
		result = append(result, record)
	}
	return result, nil
}
