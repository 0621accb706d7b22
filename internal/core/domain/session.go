package domain

import (
	"slices"
	"time"
)

// Channel is the communication medium a conversation runs over.
type Channel string

const (
	// ChannelWebChat is the embedded web chat widget.
	ChannelWebChat Channel = "webchat"

	// ChannelWhatsApp is the WhatsApp messaging channel.
	ChannelWhatsApp Channel = "whatsapp"

	// ChannelSMS is the plain-text SMS channel.
	ChannelSMS Channel = "sms"
)

// Session is the mutable state of one in-progress conversation.
// A session is mutated by at most one keyword execution at a time;
// distinct sessions execute concurrently and independently.
type Session struct {
	// ID is the unique session identifier.
	ID string

	// Channel is the communication medium for this conversation.
	Channel Channel

	// Variables holds script variable bindings.
	Variables map[string]string

	// Collections is the ordered set of collection IDs queryable by
	// search keywords in this session. Only collections of successfully
	// crawled resources may appear here.
	Collections []string

	// LastSentBodies caches the most recent previously sent message body
	// per recipient address, filled from gateway lookups during draft
	// composition. The gateway remains the source of truth.
	LastSentBodies map[string]string

	// CreatedAt is when the conversation started.
	CreatedAt time.Time

	// UpdatedAt is when the session was last mutated.
	UpdatedAt time.Time
}

// NewSession creates an empty session for a channel.
func NewSession(id string, channel Channel) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:             id,
		Channel:        channel,
		Variables:      make(map[string]string),
		LastSentBodies: make(map[string]string),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// HasCollection reports whether a collection is already associated.
func (s *Session) HasCollection(collectionID string) bool {
	return slices.Contains(s.Collections, collectionID)
}

// AddCollection appends a collection ID if not already present.
func (s *Session) AddCollection(collectionID string) {
	if !s.HasCollection(collectionID) {
		s.Collections = append(s.Collections, collectionID)
	}
}

// SetVariable binds a script variable. Bindings are replace-only;
// variables are never structurally deleted.
func (s *Session) SetVariable(name, value string) {
	if s.Variables == nil {
		s.Variables = make(map[string]string)
	}
	s.Variables[name] = value
}
