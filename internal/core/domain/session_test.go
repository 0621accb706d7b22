package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	s := NewSession("sess-1", ChannelWebChat)

	require.NotNil(t, s)
	assert.Equal(t, "sess-1", s.ID)
	assert.Equal(t, ChannelWebChat, s.Channel)
	assert.Empty(t, s.Collections)
	assert.NotNil(t, s.Variables)
	assert.NotNil(t, s.LastSentBodies)
	assert.False(t, s.CreatedAt.IsZero())
}

func TestSession_AddCollection_Deduplicates(t *testing.T) {
	s := NewSession("sess-1", ChannelWebChat)

	s.AddCollection("c1")
	s.AddCollection("c2")
	s.AddCollection("c1")

	assert.Equal(t, []string{"c1", "c2"}, s.Collections)
	assert.True(t, s.HasCollection("c1"))
	assert.False(t, s.HasCollection("c3"))
}

func TestSession_SetVariable(t *testing.T) {
	s := &Session{ID: "sess-1"}

	s.SetVariable("name", "Ada")
	s.SetVariable("name", "Grace")

	assert.Equal(t, "Grace", s.Variables["name"])
}
