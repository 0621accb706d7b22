package driven

import "context"

// SearchEngine queries ingested collections. The index itself is built by
// the external crawler; the core only reads from it.
type SearchEngine interface {
	// Query searches the union of the given collections and returns
	// matching hits, best first. An empty collection set yields no hits.
	Query(ctx context.Context, query string, collectionIDs []string, limit int) ([]SearchHit, error)
}

// SearchHit is one search result.
type SearchHit struct {
	// CollectionID is the collection the hit came from.
	CollectionID string

	// Content is the matched text snippet.
	Content string

	// Score is the relevance score (e.g., BM25).
	Score float64
}
