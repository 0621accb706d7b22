// Package memory provides an in-memory keyword search engine over
// ingested collections. It stands in for the external search service in
// tests and local development.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/dialogue-labs/botscript/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.SearchEngine = (*Engine)(nil)

// Engine indexes text fragments per collection and answers queries by
// term overlap. Scoring is the fraction of query terms present in a
// fragment.
type Engine struct {
	mu        sync.RWMutex
	fragments map[string][]string
}

// NewEngine creates an empty in-memory search engine.
func NewEngine() *Engine {
	return &Engine{
		fragments: make(map[string][]string),
	}
}

// Index adds a text fragment to a collection.
func (e *Engine) Index(collectionID, content string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fragments[collectionID] = append(e.fragments[collectionID], content)
}

// Query searches the given collections and returns the best matches,
// highest score first.
func (e *Engine) Query(
	_ context.Context, query string, collectionIDs []string, limit int,
) ([]driven.SearchHit, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, nil
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	var hits []driven.SearchHit
	for _, collectionID := range collectionIDs {
		for _, content := range e.fragments[collectionID] {
			score := termScore(terms, content)
			if score > 0 {
				hits = append(hits, driven.SearchHit{
					CollectionID: collectionID,
					Content:      content,
					Score:        score,
				})
			}
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// termScore returns the fraction of query terms found in the content.
func termScore(terms []string, content string) float64 {
	lower := strings.ToLower(content)
	matched := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}
