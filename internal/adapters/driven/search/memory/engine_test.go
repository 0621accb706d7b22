package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Query(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine()
	engine.Index("col-1", "Returns are accepted within 30 days of purchase.")
	engine.Index("col-1", "Shipping takes 3-5 business days.")
	engine.Index("col-2", "Our return policy covers defective items.")

	hits, err := engine.Query(ctx, "return policy", []string{"col-1", "col-2"}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	// Both terms match in col-2; only "return" matches in col-1.
	assert.Equal(t, "col-2", hits[0].CollectionID)
	assert.Greater(t, hits[0].Score, hits[1].Score)
}

func TestEngine_Query_ScopedToCollections(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine()
	engine.Index("col-1", "pricing for the basic plan")
	engine.Index("col-2", "pricing for the premium plan")

	hits, err := engine.Query(ctx, "pricing", []string{"col-1"}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "col-1", hits[0].CollectionID)
}

func TestEngine_Query_Limit(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine()
	for range 5 {
		engine.Index("col-1", "delivery options overview")
	}

	hits, err := engine.Query(ctx, "delivery", []string{"col-1"}, 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestEngine_Query_NoCollections(t *testing.T) {
	engine := NewEngine()
	engine.Index("col-1", "invisible without association")

	hits, err := engine.Query(context.Background(), "invisible", nil, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
