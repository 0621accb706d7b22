package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/dialogue-labs/botscript/internal/core/domain"
	"github.com/dialogue-labs/botscript/internal/core/ports/driving"
	"github.com/dialogue-labs/botscript/internal/logger"
)

// Ensure ScriptCompiler implements the interface.
var _ driving.CompilerPass = (*ScriptCompiler)(nil)

// resourcePattern recognises one resource-declaring keyword in both its
// statement form (USE WEBSITE "url") and the function-call form the script
// preprocessor produces (USE_WEBSITE("url")).
type resourcePattern struct {
	keyword   domain.Keyword
	statement *regexp.Regexp
	call      *regexp.Regexp
	// bare matches the keyword without a well-formed argument, so a
	// malformed declaration fails the build instead of being skipped.
	bare *regexp.Regexp
}

var resourcePatterns = []resourcePattern{
	{
		keyword:   domain.KeywordUseWebsite,
		statement: regexp.MustCompile(`(?i)^\s*USE\s+WEBSITE\s+"([^"]*)"`),
		call:      regexp.MustCompile(`(?i)^\s*USE_WEBSITE\s*\(\s*"([^"]*)"`),
		bare:      regexp.MustCompile(`(?i)^\s*USE[\s_]+WEBSITE\b`),
	},
	{
		keyword:   domain.KeywordUseKB,
		statement: regexp.MustCompile(`(?i)^\s*USE\s+KB\s+"([^"]*)"`),
		call:      regexp.MustCompile(`(?i)^\s*USE_KB\s*\(\s*"([^"]*)"`),
		bare:      regexp.MustCompile(`(?i)^\s*USE[\s_]+KB\b`),
	},
}

// ScriptCompiler is the compile-time keyword extraction pass. It finds
// resource-declaring keywords in script source and registers each distinct
// resource exactly once per build. No other keyword is executed.
type ScriptCompiler struct {
	registry driving.CrawlRegistry
}

// NewScriptCompiler creates a new compile pass.
func NewScriptCompiler(registry driving.CrawlRegistry) *ScriptCompiler {
	return &ScriptCompiler{registry: registry}
}

// Compile scans the script and registers every declared resource.
// A malformed resource argument aborts the build with its line number;
// registration stops at the failing line.
func (c *ScriptCompiler) Compile(ctx context.Context, script string) (*driving.CompileResult, error) {
	if c.registry == nil {
		return nil, domain.ErrNotImplemented
	}

	result := &driving.CompileResult{}
	seen := make(map[string]bool)

	for i, line := range strings.Split(script, "\n") {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)
		if isComment(trimmed) || trimmed == "" {
			continue
		}

		for _, p := range resourcePatterns {
			kind, declares := p.keyword.ResourceKeyword()
			if !declares {
				continue
			}

			raw, matched := p.extract(trimmed)
			if !matched {
				if p.bare.MatchString(trimmed) {
					return nil, fmt.Errorf(
						"line %d: %w: %s requires a quoted resource argument",
						lineNo, domain.ErrInvalidArgument, p.keyword)
				}
				continue
			}

			identifier, err := domain.NormalizeIdentifier(kind, raw)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}

			result.Invocations = append(result.Invocations, domain.Invocation{
				Keyword: p.keyword,
				Args:    []string{raw},
				Line:    lineNo,
			})

			if seen[identifier] {
				logger.Debug("Line %d: %q already registered in this build", lineNo, identifier)
				break
			}
			seen[identifier] = true

			if _, err := c.registry.Register(ctx, identifier, kind); err != nil {
				return nil, fmt.Errorf("line %d: register %q: %w", lineNo, identifier, err)
			}
			result.Registered = append(result.Registered, identifier)
			break
		}
	}

	logger.Info("Compile pass registered %d resource(s)", len(result.Registered))
	return result, nil
}

// extract returns the resource argument when the line matches either form.
func (p resourcePattern) extract(line string) (string, bool) {
	if m := p.statement.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	if m := p.call.FindStringSubmatch(line); m != nil {
		return m[1], true
	}
	return "", false
}

// isComment reports whether a script line is a comment. The language
// accepts REM, a leading apostrophe, and the // form.
func isComment(line string) bool {
	upper := strings.ToUpper(line)
	return strings.HasPrefix(upper, "REM ") ||
		upper == "REM" ||
		strings.HasPrefix(line, "'") ||
		strings.HasPrefix(line, "//")
}
