package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates a malformed keyword argument
	// (bad URL, empty address, out-of-range size).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Resource Errors.

	// ErrResourceNotRegistered indicates a runtime reference to a resource
	// that was never registered at compile time.
	ErrResourceNotRegistered = errors.New("resource not registered")

	// ErrResourceNotReady indicates the resource is still pending ingestion.
	// The keyword fails immediately; it never waits for the crawler.
	ErrResourceNotReady = errors.New("resource not yet available")

	// ErrResourceIngestFailed indicates the crawler reported failure for
	// the resource.
	ErrResourceIngestFailed = errors.New("resource ingestion failed")

	// Channel Errors.

	// ErrUnsupportedForChannel indicates the active channel lacks the
	// capability a keyword requires (e.g. inline media on a text channel).
	ErrUnsupportedForChannel = errors.New("unsupported for this channel")

	// ErrUnknownChannel indicates no adapter is configured for the
	// session's channel.
	ErrUnknownChannel = errors.New("unknown channel")

	// Dispatch Errors.

	// ErrUnknownKeyword indicates the dispatcher has no handler for the
	// keyword name.
	ErrUnknownKeyword = errors.New("unknown keyword")

	// ErrTimeout indicates a gateway or channel adapter call exceeded the
	// configured deadline. No session mutation is applied on timeout.
	ErrTimeout = errors.New("operation timed out")
)
