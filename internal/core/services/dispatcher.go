package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dialogue-labs/botscript/internal/core/domain"
	"github.com/dialogue-labs/botscript/internal/core/ports/driven"
	"github.com/dialogue-labs/botscript/internal/core/ports/driving"
	"github.com/dialogue-labs/botscript/internal/logger"
)

// Ensure KeywordDispatcher implements the interface.
var _ driving.Dispatcher = (*KeywordDispatcher)(nil)

// DispatcherConfig holds the immutable settings the dispatcher is
// constructed with. Passing configuration explicitly keeps unit tests
// deterministic; there is no ambient global state.
type DispatcherConfig struct {
	// DefaultProvider is the messaging provider used when SEND SMS does
	// not name one.
	DefaultProvider string

	// DefaultQRSize is the pixel size used when QR CODE does not give one.
	DefaultQRSize int

	// CallTimeout bounds every gateway and channel adapter call.
	CallTimeout time.Duration
}

// Defaults for DispatcherConfig fields left zero.
const (
	defaultProvider    = "twilio"
	defaultQRSize      = 256
	minQRSize          = 64
	maxQRSize          = 2048
	defaultCallTimeout = 10 * time.Second
)

// withDefaults fills unset config fields.
func (c DispatcherConfig) withDefaults() DispatcherConfig {
	if c.DefaultProvider == "" {
		c.DefaultProvider = defaultProvider
	}
	if c.DefaultQRSize == 0 {
		c.DefaultQRSize = defaultQRSize
	}
	if c.CallTimeout == 0 {
		c.CallTimeout = defaultCallTimeout
	}
	return c
}

// handlerFunc executes one keyword against a loaded session.
type handlerFunc func(ctx context.Context, session *domain.Session, args []string) (*driving.Result, error)

// KeywordDispatcher executes keyword invocations against live sessions.
// The keyword set is closed: dispatch goes through a fixed table built at
// construction, and adding a keyword means adding a constant plus a
// handler.
type KeywordDispatcher struct {
	cfg      DispatcherConfig
	sessions driving.SessionService
	store    driven.SessionStore
	mail     driven.MailGateway
	messages driven.MessageGateway
	search   driven.SearchEngine
	images   driven.CodeImageGenerator
	channels map[domain.Channel]driven.ChannelAdapter

	handlers map[domain.Keyword]handlerFunc
}

// NewKeywordDispatcher creates a dispatcher over the given session
// service, gateways and channel adapters. Gateways may be nil; keywords
// needing an absent gateway fail with domain.ErrNotImplemented.
func NewKeywordDispatcher(
	cfg DispatcherConfig,
	sessions driving.SessionService,
	store driven.SessionStore,
	mail driven.MailGateway,
	messages driven.MessageGateway,
	search driven.SearchEngine,
	images driven.CodeImageGenerator,
	adapters []driven.ChannelAdapter,
) *KeywordDispatcher {
	channels := make(map[domain.Channel]driven.ChannelAdapter, len(adapters))
	for _, a := range adapters {
		channels[a.Channel()] = a
	}

	d := &KeywordDispatcher{
		cfg:      cfg.withDefaults(),
		sessions: sessions,
		store:    store,
		mail:     mail,
		messages: messages,
		search:   search,
		images:   images,
		channels: channels,
	}

	d.handlers = map[domain.Keyword]handlerFunc{
		domain.KeywordUseWebsite:    d.handleUseResource(domain.ResourceWebsite),
		domain.KeywordUseKB:         d.handleUseResource(domain.ResourceKB),
		domain.KeywordCreateDraft:   d.handleCreateDraft,
		domain.KeywordFind:          d.handleFind,
		domain.KeywordPlay:          d.handlePlay,
		domain.KeywordQRCode:        d.handleQRCode,
		domain.KeywordSendSMS:       d.handleSendSMS,
		domain.KeywordClearWebsites: d.handleClearWebsites,
	}

	return d
}

// Dispatch runs one keyword with evaluated arguments in the session.
func (d *KeywordDispatcher) Dispatch(
	ctx context.Context, sessionID string, keyword domain.Keyword, args []string,
) (*driving.Result, error) {
	handler, ok := d.handlers[keyword]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownKeyword, keyword)
	}

	session, err := d.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	logger.Debug("Dispatching %s for session %s (channel: %s)", keyword, sessionID, session.Channel)

	result, err := handler(ctx, session, args)
	if err != nil {
		logger.Warn("%s failed for session %s: %v", keyword, sessionID, err)
		return nil, err
	}
	return result, nil
}

// callCtx derives the bounded context for a gateway or adapter call.
func (d *KeywordDispatcher) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d.cfg.CallTimeout)
}

// timeoutErr maps a deadline expiry to the dispatcher's timeout error.
// Any other error passes through untouched so gateway diagnostic text
// reaches the conversation verbatim.
func timeoutErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrTimeout
	}
	return err
}
