// Package channels provides console-backed channel adapters. Each
// adapter declares its rendering capabilities; the dispatcher consults
// them before delegating media keywords.
package channels

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/dialogue-labs/botscript/internal/core/domain"
	"github.com/dialogue-labs/botscript/internal/core/ports/driven"
)

var (
	_ driven.ChannelAdapter = (*WebChat)(nil)
	_ driven.ChannelAdapter = (*WhatsApp)(nil)
	_ driven.ChannelAdapter = (*TextSMS)(nil)
)

// adapter holds the output plumbing shared by all channel adapters.
type adapter struct {
	mu  sync.Mutex
	out io.Writer
}

func newAdapter(out io.Writer) adapter {
	if out == nil {
		out = os.Stdout
	}
	return adapter{out: out}
}

func (a *adapter) write(channel domain.Channel, sessionID, text string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, err := fmt.Fprintf(a.out, "[%s:%s] %s\n", channel, sessionID, text)
	return err
}

// WebChat is the embedded web chat widget channel. It renders rich
// media inline.
type WebChat struct {
	adapter
}

// NewWebChat creates a web chat adapter writing to out (stdout if nil).
func NewWebChat(out io.Writer) *WebChat {
	return &WebChat{adapter: newAdapter(out)}
}

func (c *WebChat) Channel() domain.Channel { return domain.ChannelWebChat }

func (c *WebChat) Capabilities() driven.ChannelCapabilities {
	return driven.ChannelCapabilities{RenderMedia: true}
}

func (c *WebChat) SendText(_ context.Context, sessionID, text string) error {
	return c.write(domain.ChannelWebChat, sessionID, text)
}

func (c *WebChat) RenderMedia(
	_ context.Context, sessionID, contentRef string, opts domain.MediaOptions,
) error {
	return c.write(domain.ChannelWebChat, sessionID,
		fmt.Sprintf("<media src=%q %s>", contentRef, formatOptions(opts)))
}

// WhatsApp is the WhatsApp messaging channel. Media goes out as an
// attachment reference; playback options do not apply.
type WhatsApp struct {
	adapter
}

// NewWhatsApp creates a WhatsApp adapter writing to out (stdout if nil).
func NewWhatsApp(out io.Writer) *WhatsApp {
	return &WhatsApp{adapter: newAdapter(out)}
}

func (c *WhatsApp) Channel() domain.Channel { return domain.ChannelWhatsApp }

func (c *WhatsApp) Capabilities() driven.ChannelCapabilities {
	return driven.ChannelCapabilities{RenderMedia: true}
}

func (c *WhatsApp) SendText(_ context.Context, sessionID, text string) error {
	return c.write(domain.ChannelWhatsApp, sessionID, text)
}

func (c *WhatsApp) RenderMedia(
	_ context.Context, sessionID, contentRef string, _ domain.MediaOptions,
) error {
	return c.write(domain.ChannelWhatsApp, sessionID, "attachment: "+contentRef)
}

// TextSMS is the plain-text SMS channel. It cannot render media.
type TextSMS struct {
	adapter
}

// NewTextSMS creates an SMS adapter writing to out (stdout if nil).
func NewTextSMS(out io.Writer) *TextSMS {
	return &TextSMS{adapter: newAdapter(out)}
}

func (c *TextSMS) Channel() domain.Channel { return domain.ChannelSMS }

func (c *TextSMS) Capabilities() driven.ChannelCapabilities {
	return driven.ChannelCapabilities{RenderMedia: false}
}

func (c *TextSMS) SendText(_ context.Context, sessionID, text string) error {
	return c.write(domain.ChannelSMS, sessionID, text)
}

func (c *TextSMS) RenderMedia(
	_ context.Context, _, _ string, _ domain.MediaOptions,
) error {
	return fmt.Errorf("%w: sms cannot render media", domain.ErrUnsupportedForChannel)
}

// formatOptions renders active media options as attribute text.
func formatOptions(opts domain.MediaOptions) string {
	var parts []string
	if opts.Autoplay {
		parts = append(parts, "autoplay")
	}
	if opts.Loop {
		parts = append(parts, "loop")
	}
	if opts.Fullscreen {
		parts = append(parts, "fullscreen")
	}
	if opts.Muted {
		parts = append(parts, "muted")
	}
	return strings.Join(parts, " ")
}
