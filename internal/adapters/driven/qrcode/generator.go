// Package qrcode renders QR code images into an artifact directory.
package qrcode

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	qr "github.com/skip2/go-qrcode"

	"github.com/dialogue-labs/botscript/internal/core/ports/driven"
	"github.com/dialogue-labs/botscript/internal/logger"
)

// Ensure Generator implements the interface.
var _ driven.CodeImageGenerator = (*Generator)(nil)

// Generator writes PNG QR codes to a directory and returns their paths.
type Generator struct {
	dir string
}

// NewGenerator creates a generator writing into dir. If dir is empty,
// artifacts go to ~/.botscript/artifacts.
func NewGenerator(dir string) (*Generator, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".botscript", "artifacts")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating artifact directory: %w", err)
	}
	return &Generator{dir: dir}, nil
}

// Generate encodes data into a size-by-size pixel PNG and returns the
// file path.
func (g *Generator) Generate(ctx context.Context, data string, size int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	png, err := qr.Encode(data, qr.Medium, size)
	if err != nil {
		return "", fmt.Errorf("encoding QR code: %w", err)
	}

	path := filepath.Join(g.dir, uuid.NewString()+".png")
	if err := os.WriteFile(path, png, 0600); err != nil {
		return "", fmt.Errorf("writing QR code image: %w", err)
	}

	logger.Debug("Generated QR code %s (%d bytes)", path, len(png))
	return path, nil
}
