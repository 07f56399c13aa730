// Package clipboard writes identifiers to the operating system clipboard.
package clipboard

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"

	"github.com/neomorfeo/serialgen/internal/domain"
)

// ErrUnsupported is returned when no clipboard utility is available
// (e.g. a headless Linux host without xclip, xsel or wl-copy).
var ErrUnsupported = errors.New("clipboard is not available on this system")

// Compile-time check: System implements domain.Clipboard.
var _ domain.Clipboard = (*System)(nil)

// System writes to the platform clipboard through atotto/clipboard.
type System struct {
	write       func(string) error
	unsupported bool
}

// NewSystem creates a clipboard backed by the host's clipboard utilities.
func NewSystem() *System {
	return &System{
		write:       clipboard.WriteAll,
		unsupported: clipboard.Unsupported,
	}
}

// WriteText copies text to the clipboard.
func (s *System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.unsupported {
		return ErrUnsupported
	}
	return s.write(text)
}
