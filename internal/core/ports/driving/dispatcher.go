package driving

import (
	"context"

	"github.com/dialogue-labs/botscript/internal/core/domain"
)

// Result is the outcome of one keyword execution.
type Result struct {
	// Message is the user-facing success text.
	Message string

	// Value is the expression-context result, when the keyword produces
	// one (e.g. an artifact path, search results text).
	Value string
}

// Dispatcher executes keyword invocations against a live session.
//
// Execution is single-shot: Received -> Validated -> Executed ->
// Completed. There is no internal retry, and a failed execution leaves
// the session unmutated except where the mutation itself carries no
// remote call and validation already passed.
type Dispatcher interface {
	// Dispatch runs one keyword with evaluated arguments in the session.
	// Errors carry a user-displayable message; gateway error text is
	// passed through verbatim.
	Dispatch(ctx context.Context, sessionID string, keyword domain.Keyword, args []string) (*Result, error)
}
