package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialogue-labs/botscript/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_MigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening the same database must not re-run applied migrations.
	store, err = NewStore(dir)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestCrawlRecordStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	records := newTestStore(t).CrawlRecordStore()

	record := domain.CrawlRecord{
		Identifier:   "https://docs.example.com",
		Kind:         domain.ResourceWebsite,
		Status:       domain.CrawlPending,
		RegisteredAt: time.Now().UTC(),
	}

	created, err := records.Create(ctx, record)
	require.NoError(t, err)
	assert.True(t, created)

	loaded, err := records.Get(ctx, "https://docs.example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.ResourceWebsite, loaded.Kind)
	assert.Equal(t, domain.CrawlPending, loaded.Status)
	assert.Empty(t, loaded.CollectionID)
	assert.True(t, loaded.CompletedAt.IsZero())
}

func TestCrawlRecordStore_Create_Duplicate(t *testing.T) {
	ctx := context.Background()
	records := newTestStore(t).CrawlRecordStore()

	record := domain.CrawlRecord{
		Identifier:   "https://docs.example.com",
		Kind:         domain.ResourceWebsite,
		RegisteredAt: time.Now().UTC(),
	}
	created, err := records.Create(ctx, record)
	require.NoError(t, err)
	assert.True(t, created)

	// The conflict clause keeps the first record and reports no insert.
	record.Status = domain.CrawlFailed
	created, err = records.Create(ctx, record)
	require.NoError(t, err)
	assert.False(t, created)

	loaded, err := records.Get(ctx, "https://docs.example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.CrawlPending, loaded.Status)
}

func TestCrawlRecordStore_Update(t *testing.T) {
	ctx := context.Background()
	records := newTestStore(t).CrawlRecordStore()

	record := domain.CrawlRecord{
		Identifier:   "https://docs.example.com",
		Kind:         domain.ResourceWebsite,
		RegisteredAt: time.Now().UTC(),
	}
	_, err := records.Create(ctx, record)
	require.NoError(t, err)

	record.Status = domain.CrawlDone
	record.CollectionID = "col-1"
	record.CompletedAt = time.Now().UTC()
	require.NoError(t, records.Update(ctx, record))

	loaded, err := records.Get(ctx, "https://docs.example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.CrawlDone, loaded.Status)
	assert.Equal(t, "col-1", loaded.CollectionID)
	assert.False(t, loaded.CompletedAt.IsZero())
}

func TestCrawlRecordStore_Update_NotFound(t *testing.T) {
	records := newTestStore(t).CrawlRecordStore()

	err := records.Update(context.Background(), domain.CrawlRecord{
		Identifier:   "https://missing.example.com",
		RegisteredAt: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCrawlRecordStore_Get_NotFound(t *testing.T) {
	records := newTestStore(t).CrawlRecordStore()

	_, err := records.Get(context.Background(), "https://missing.example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCrawlRecordStore_List(t *testing.T) {
	ctx := context.Background()
	records := newTestStore(t).CrawlRecordStore()

	base := time.Now().UTC()
	for i, id := range []string{"https://a.example.com", "https://b.example.com"} {
		_, err := records.Create(ctx, domain.CrawlRecord{
			Identifier:   id,
			Kind:         domain.ResourceWebsite,
			RegisteredAt: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	all, err := records.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "https://a.example.com", all[0].Identifier)
	assert.Equal(t, "https://b.example.com", all[1].Identifier)
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	sessions := newTestStore(t).SessionStore()

	session := domain.NewSession("s-1", domain.ChannelWhatsApp)
	session.SetVariable("name", "Alice")
	session.AddCollection("col-1")
	session.LastSentBodies["alice@example.com"] = "prior body"
	require.NoError(t, sessions.Save(ctx, *session))

	loaded, err := sessions.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ChannelWhatsApp, loaded.Channel)
	assert.Equal(t, "Alice", loaded.Variables["name"])
	assert.Equal(t, []string{"col-1"}, loaded.Collections)
	assert.Equal(t, "prior body", loaded.LastSentBodies["alice@example.com"])
}

func TestSessionStore_Save_Upsert(t *testing.T) {
	ctx := context.Background()
	sessions := newTestStore(t).SessionStore()

	session := domain.NewSession("s-1", domain.ChannelWebChat)
	require.NoError(t, sessions.Save(ctx, *session))

	session.AddCollection("col-1")
	require.NoError(t, sessions.Save(ctx, *session))

	loaded, err := sessions.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"col-1"}, loaded.Collections)
}

func TestSessionStore_Get_NotFound(t *testing.T) {
	sessions := newTestStore(t).SessionStore()

	_, err := sessions.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	ctx := context.Background()
	sessions := newTestStore(t).SessionStore()

	session := domain.NewSession("s-1", domain.ChannelSMS)
	require.NoError(t, sessions.Save(ctx, *session))
	require.NoError(t, sessions.Delete(ctx, "s-1"))

	_, err := sessions.Get(ctx, "s-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
