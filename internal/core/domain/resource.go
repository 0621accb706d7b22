package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ResourceKind identifies the type of external content source.
type ResourceKind string

const (
	// ResourceWebsite is a crawlable website URL.
	ResourceWebsite ResourceKind = "website"

	// ResourceKB is a named knowledge base.
	ResourceKB ResourceKind = "kb"
)

// CrawlStatus tracks ingestion progress for a registered resource.
// The numeric codes are persisted and shared with the external crawler;
// they must not be renumbered.
type CrawlStatus int

const (
	// CrawlPending means the resource is registered but not yet ingested.
	CrawlPending CrawlStatus = 0

	// CrawlDone means ingestion completed and a collection is queryable.
	CrawlDone CrawlStatus = 1

	// CrawlFailed means the crawler reported a permanent failure.
	CrawlFailed CrawlStatus = 2
)

// String returns the human-readable status name.
func (s CrawlStatus) String() string {
	switch s {
	case CrawlPending:
		return "pending"
	case CrawlDone:
		return "crawled"
	case CrawlFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Terminal reports whether the status is an end state.
func (s CrawlStatus) Terminal() bool {
	return s == CrawlDone || s == CrawlFailed
}

// CrawlRecord is one registered external resource and its ingestion state.
// Records are created by the compile pass and transitioned exclusively by
// the external crawler through the registry.
type CrawlRecord struct {
	// Identifier is the canonical resource key: a normalized URL for
	// websites, the verbatim name for knowledge bases.
	Identifier string

	// Kind is the resource type.
	Kind ResourceKind

	// CollectionID is the queryable collection handle, assigned once
	// ingestion completes. Empty while pending or failed.
	CollectionID string

	// Status is the current ingestion state.
	Status CrawlStatus

	// RegisteredAt is when the record was created.
	RegisteredAt time.Time

	// CompletedAt is when the record reached a terminal state.
	// Zero while pending.
	CompletedAt time.Time
}

// NormalizeURL canonicalises a website identifier: the scheme must be
// http or https, scheme and host are lowercased, and query and fragment
// are dropped so repeated declarations collapse to one record.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a valid URL", ErrInvalidArgument, raw)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("%w: %q must start with http:// or https://", ErrInvalidArgument, raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: %q has no host", ErrInvalidArgument, raw)
	}
	normalized := url.URL{
		Scheme: scheme,
		Host:   strings.ToLower(u.Host),
		Path:   strings.TrimSuffix(u.Path, "/"),
	}
	return normalized.String(), nil
}

// NormalizeIdentifier canonicalises a resource identifier for its kind.
// KB names are taken verbatim (trimmed); an empty name is invalid.
func NormalizeIdentifier(kind ResourceKind, raw string) (string, error) {
	switch kind {
	case ResourceWebsite:
		return NormalizeURL(raw)
	case ResourceKB:
		name := strings.TrimSpace(raw)
		if name == "" {
			return "", fmt.Errorf("%w: knowledge base name is empty", ErrInvalidArgument)
		}
		return name, nil
	default:
		return "", fmt.Errorf("%w: unknown resource kind %q", ErrInvalidArgument, kind)
	}
}

// CollectionName derives a filesystem- and index-safe collection name from
// a resource identifier, e.g. "https://docs.example.com/path" becomes
// "docs_example_com_path".
func CollectionName(identifier string) string {
	s := strings.TrimPrefix(identifier, "https://")
	s = strings.TrimPrefix(s, "http://")
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == '/', r == ':', r == '.', r == '_', r == ' ':
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
