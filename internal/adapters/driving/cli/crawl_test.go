package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialogue-labs/botscript/internal/core/domain"
)

func TestCrawlListCmd_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "crawl", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No resources registered.")
}

func TestCrawlLifecycle(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	_, err := ts.registry.Register(ctx, "https://docs.example.com", domain.ResourceWebsite)
	require.NoError(t, err)

	out, err := execute(t, "crawl", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "[pending] https://docs.example.com (website)")

	out, err = execute(t, "crawl", "complete", "https://docs.example.com", "col-1")
	require.NoError(t, err)
	assert.Contains(t, out, "marked as crawled")

	out, err = execute(t, "crawl", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "[crawled] https://docs.example.com (website) -> col-1")

	out, err = execute(t, "crawl", "reset", "https://docs.example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "reset to pending")

	record, err := ts.registry.Lookup(ctx, "https://docs.example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.CrawlPending, record.Status)
}

func TestCrawlFailCmd(t *testing.T) {
	ts := setupTestServices(t)
	ctx := context.Background()

	_, err := ts.registry.Register(ctx, "https://down.example.com", domain.ResourceWebsite)
	require.NoError(t, err)

	out, err := execute(t, "crawl", "fail", "https://down.example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "marked as failed")

	record, err := ts.registry.Lookup(ctx, "https://down.example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.CrawlFailed, record.Status)
}

func TestCrawlCompleteCmd_UnknownIdentifier(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "crawl", "complete", "https://never.example.com", "col-1")
	require.Error(t, err)
}
