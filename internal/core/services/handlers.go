package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dialogue-labs/botscript/internal/core/domain"
	"github.com/dialogue-labs/botscript/internal/core/ports/driving"
	"github.com/dialogue-labs/botscript/internal/logger"
)

// searchLimit caps results returned by the FIND keyword.
const searchLimit = 10

// handleUseResource builds the runtime handler shared by USE WEBSITE and
// USE KB. The status gating lives in SessionManager.AssociateResource;
// behaviour is identical on every channel.
func (d *KeywordDispatcher) handleUseResource(kind domain.ResourceKind) handlerFunc {
	return func(ctx context.Context, session *domain.Session, args []string) (*driving.Result, error) {
		identifier, err := domain.NormalizeIdentifier(kind, argAt(args, 0))
		if err != nil {
			return nil, err
		}

		record, err := d.sessions.AssociateResource(ctx, session.ID, identifier)
		if err != nil {
			return nil, err
		}

		noun := "Website"
		if kind == domain.ResourceKB {
			noun = "Knowledge base"
		}
		return &driving.Result{
			Message: fmt.Sprintf("%s %s is now available in this conversation.", noun, identifier),
			Value:   record.CollectionID,
		}, nil
	}
}

// handleCreateDraft composes an email draft, merging in the most recent
// previously sent message to the same recipient. The mail gateway is the
// source of truth for the prior message; the session cache only records
// what the gateway returned. No session mutation happens unless the
// gateway accepts the draft.
func (d *KeywordDispatcher) handleCreateDraft(
	ctx context.Context, session *domain.Session, args []string,
) (*driving.Result, error) {
	if d.mail == nil {
		return nil, domain.ErrNotImplemented
	}

	to := strings.TrimSpace(argAt(args, 0))
	subject := argAt(args, 1)
	body := argAt(args, 2)
	if to == "" {
		return nil, fmt.Errorf("%w: draft recipient is empty", domain.ErrInvalidArgument)
	}

	callCtx, cancel := d.callCtx(ctx)
	defer cancel()

	prior, err := d.mail.LatestSentTo(callCtx, to)
	if err != nil {
		return nil, timeoutErr(err)
	}

	draft := domain.Draft{
		To:      to,
		Subject: subject,
		Body:    domain.MergeDraftBody(body, prior),
	}
	if err := d.mail.SaveDraft(callCtx, draft); err != nil {
		return nil, timeoutErr(err)
	}

	session.LastSentBodies[to] = prior
	if err := d.store.Save(ctx, *session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return &driving.Result{
		Message: fmt.Sprintf("Draft saved for %s", to),
		Value:   draft.Body,
	}, nil
}

// handleFind queries the union of the session's associated collections.
func (d *KeywordDispatcher) handleFind(
	ctx context.Context, session *domain.Session, args []string,
) (*driving.Result, error) {
	if d.search == nil {
		return nil, domain.ErrNotImplemented
	}

	query := strings.TrimSpace(argAt(args, 0))
	if query == "" {
		return nil, fmt.Errorf("%w: search query is empty", domain.ErrInvalidArgument)
	}

	callCtx, cancel := d.callCtx(ctx)
	defer cancel()

	hits, err := d.search.Query(callCtx, query, session.Collections, searchLimit)
	if err != nil {
		return nil, timeoutErr(err)
	}

	logger.Debug("FIND %q over %d collection(s): %d hit(s)", query, len(session.Collections), len(hits))

	var b strings.Builder
	for i, hit := range hits {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(hit.Content)
	}
	return &driving.Result{
		Message: fmt.Sprintf("%d result(s)", len(hits)),
		Value:   b.String(),
	}, nil
}

// handlePlay delegates media rendering to the channel adapter for the
// session's channel. The capability check happens before any send.
func (d *KeywordDispatcher) handlePlay(
	ctx context.Context, session *domain.Session, args []string,
) (*driving.Result, error) {
	contentRef := strings.TrimSpace(argAt(args, 0))
	if contentRef == "" {
		return nil, fmt.Errorf("%w: content reference is empty", domain.ErrInvalidArgument)
	}
	opts := domain.ParseMediaOptions(argAt(args, 1))

	adapter, ok := d.channels[session.Channel]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownChannel, session.Channel)
	}
	if !adapter.Capabilities().RenderMedia {
		return nil, fmt.Errorf("%w: %s cannot render media", domain.ErrUnsupportedForChannel, session.Channel)
	}

	callCtx, cancel := d.callCtx(ctx)
	defer cancel()

	if err := adapter.RenderMedia(callCtx, session.ID, contentRef, opts); err != nil {
		return nil, timeoutErr(err)
	}
	return &driving.Result{
		Message: fmt.Sprintf("Playing %s", contentRef),
	}, nil
}

// handleQRCode generates a QR code artifact from data. Pure transform:
// no session mutation, errors only on invalid input.
func (d *KeywordDispatcher) handleQRCode(
	ctx context.Context, _ *domain.Session, args []string,
) (*driving.Result, error) {
	if d.images == nil {
		return nil, domain.ErrNotImplemented
	}

	data := argAt(args, 0)
	if data == "" {
		return nil, fmt.Errorf("%w: QR code data is empty", domain.ErrInvalidArgument)
	}

	size := d.cfg.DefaultQRSize
	if raw := strings.TrimSpace(argAt(args, 1)); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: size %q is not a number", domain.ErrInvalidArgument, raw)
		}
		size = parsed
	}
	if size < minQRSize || size > maxQRSize {
		return nil, fmt.Errorf("%w: size %d outside %d-%d", domain.ErrInvalidArgument, size, minQRSize, maxQRSize)
	}

	callCtx, cancel := d.callCtx(ctx)
	defer cancel()

	path, err := d.images.Generate(callCtx, data, size)
	if err != nil {
		return nil, timeoutErr(err)
	}
	return &driving.Result{
		Message: "QR code generated",
		Value:   path,
	}, nil
}

// handleSendSMS dispatches a short message, defaulting the provider from
// configuration when the script does not name one.
func (d *KeywordDispatcher) handleSendSMS(
	ctx context.Context, _ *domain.Session, args []string,
) (*driving.Result, error) {
	if d.messages == nil {
		return nil, domain.ErrNotImplemented
	}

	to := strings.TrimSpace(argAt(args, 0))
	if to == "" {
		return nil, fmt.Errorf("%w: SMS address is empty", domain.ErrInvalidArgument)
	}
	body := argAt(args, 1)
	provider := strings.TrimSpace(argAt(args, 2))
	if provider == "" {
		provider = d.cfg.DefaultProvider
	}

	callCtx, cancel := d.callCtx(ctx)
	defer cancel()

	messageID, err := d.messages.Send(callCtx, domain.Message{To: to, Body: body, Provider: provider})
	if err != nil {
		return nil, timeoutErr(err)
	}
	return &driving.Result{
		Message: fmt.Sprintf("SMS sent to %s via %s", to, provider),
		Value:   messageID,
	}, nil
}

// handleClearWebsites removes every associated collection from the session.
func (d *KeywordDispatcher) handleClearWebsites(
	ctx context.Context, session *domain.Session, _ []string,
) (*driving.Result, error) {
	removed, err := d.sessions.ClearCollections(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	return &driving.Result{
		Message: fmt.Sprintf("%d website(s) removed from conversation", removed),
	}, nil
}

// argAt returns the i-th argument or an empty string.
func argAt(args []string, i int) string {
	if i < 0 || i >= len(args) {
		return ""
	}
	return args[i]
}
