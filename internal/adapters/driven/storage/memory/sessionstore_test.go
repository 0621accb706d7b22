package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialogue-labs/botscript/internal/core/domain"
)

func TestSessionStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	session := domain.NewSession("s-1", domain.ChannelWebChat)
	session.AddCollection("col-1")
	session.LastSentBodies["alice@example.com"] = "prior body"
	require.NoError(t, store.Save(ctx, *session))

	loaded, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ChannelWebChat, loaded.Channel)
	assert.Equal(t, []string{"col-1"}, loaded.Collections)
	assert.Equal(t, "prior body", loaded.LastSentBodies["alice@example.com"])
}

func TestSessionStore_Get_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	session := domain.NewSession("s-1", domain.ChannelWebChat)
	require.NoError(t, store.Save(ctx, *session))

	first, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	first.AddCollection("col-mutated")
	first.LastSentBodies["x@example.com"] = "mutated"

	second, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Empty(t, second.Collections)
	assert.Empty(t, second.LastSentBodies)
}

func TestSessionStore_Get_NotFound(t *testing.T) {
	store := NewSessionStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	session := domain.NewSession("s-1", domain.ChannelSMS)
	require.NoError(t, store.Save(ctx, *session))
	require.NoError(t, store.Delete(ctx, "s-1"))

	_, err := store.Get(ctx, "s-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting an absent session is not an error.
	assert.NoError(t, store.Delete(ctx, "s-1"))
}
