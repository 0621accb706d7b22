package driving

import (
	"context"

	"github.com/dialogue-labs/botscript/internal/core/domain"
)

// CompileResult summarises one compile pass over a script.
type CompileResult struct {
	// Invocations are the resource-declaring keyword calls found in the
	// script, in source order, one per matching line. Only Registered is
	// deduplicated by normalized identifier.
	Invocations []domain.Invocation

	// Registered are the normalized identifiers registered this build.
	Registered []string
}

// CompilerPass scans script source for resource-declaring keywords and
// registers their resources for crawling. It runs once per script build,
// before any conversation, and executes no other keyword.
type CompilerPass interface {
	// Compile scans the script and registers every declared resource.
	// A malformed resource argument fails the build; nothing after the
	// failing line is registered.
	Compile(ctx context.Context, script string) (*CompileResult, error)
}
