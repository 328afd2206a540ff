// Package clipboard writes to the system clipboard
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available, for
// example on a headless Linux box without xclip, xsel or wl-copy
var ErrUnsupported = errors.New("clipboard not available on this system")

// System is the OS clipboard
type System struct{}

func New() System {
	return System{}
}

// Available reports whether a clipboard utility was found
func (System) Available() bool {
	return !clipboard.Unsupported
}

func (s System) WriteText(text string) error {
	if !s.Available() {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

func (s System) ReadText() (string, error) {
	if !s.Available() {
		return "", ErrUnsupported
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}
	return text, nil
}
