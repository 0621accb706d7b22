package driven

import "context"

// CodeImageGenerator produces a stored image artifact (e.g. a QR code)
// from input data. Generation is a pure transform: it never touches
// session state.
type CodeImageGenerator interface {
	// Generate encodes data into an image of size x size pixels and
	// returns the artifact path or identifier.
	Generate(ctx context.Context, data string, size int) (string, error)
}
