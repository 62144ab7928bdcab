//go:build !windows

package terminal

import (
	"os"

	"github.com/rileyhilliard/rhino/internal/errors"
)

// OpenConsole always fails: console screen buffers only exist on Windows.
func OpenConsole(*os.File) (ScreenBuffer, error) {
	return nil, errors.New(errors.ErrTerminal,
		"Console screen buffers are only available on Windows",
		"Use terminal.clear: ansi or auto")
}
