// Package clipboard adapts the host system clipboard to the inspector's
// export port.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when the host has no clipboard utility.
var ErrUnavailable = errors.New("system clipboard unavailable")

// System writes to the host clipboard.
type System struct{}

// WriteAll copies text to the host clipboard.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}
