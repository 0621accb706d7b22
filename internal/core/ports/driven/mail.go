package driven

import (
	"context"

	"github.com/dialogue-labs/botscript/internal/core/domain"
)

// MailGateway is the external email service the draft keyword talks to.
// It is the source of truth for previously sent messages; session-side
// caching never replaces a gateway lookup.
type MailGateway interface {
	// LatestSentTo returns the body of the most recent message sent to
	// the address, or an empty string when none exists.
	LatestSentTo(ctx context.Context, address string) (string, error)

	// SaveDraft stores a draft. Ownership of the draft transfers to the
	// gateway; errors are surfaced verbatim to the conversation.
	SaveDraft(ctx context.Context, draft domain.Draft) error
}
