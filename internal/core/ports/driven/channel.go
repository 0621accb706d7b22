package driven

import (
	"context"

	"github.com/dialogue-labs/botscript/internal/core/domain"
)

// ChannelCapabilities declares what a channel adapter can do. Every
// channel can send text; channels lacking a capability report an explicit
// unsupported-for-channel error instead of silently degrading.
type ChannelCapabilities struct {
	// RenderMedia is true when the channel can display media content
	// (video, images, documents) with options.
	RenderMedia bool
}

// ChannelAdapter renders and sends content for one communication channel.
// The dispatcher selects the adapter by the session's channel and never
// inspects channel-specific rendering details.
type ChannelAdapter interface {
	// Channel returns the channel this adapter serves.
	Channel() domain.Channel

	// Capabilities returns the adapter's capability set.
	Capabilities() ChannelCapabilities

	// SendText delivers a plain text message to the conversation.
	SendText(ctx context.Context, sessionID, text string) error

	// RenderMedia displays a content reference with the given options.
	// Adapters without media support return domain.ErrUnsupportedForChannel.
	RenderMedia(ctx context.Context, sessionID, contentRef string, opts domain.MediaOptions) error
}
