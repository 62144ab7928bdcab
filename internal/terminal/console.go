package terminal

import (
	"github.com/rileyhilliard/rhino/internal/errors"
)

// ScreenBuffer is a character-cell console the Console strategy can wipe.
type ScreenBuffer interface {
	// Size returns the buffer dimensions in cells.
	Size() (cols, rows int, err error)
	// FillBlank writes cells spaces starting at the origin.
	FillBlank(cells int) error
	// SetCursor moves the cursor to column x, row y.
	SetCursor(x, y int) error
}

// Console clears a ScreenBuffer in place and homes the cursor.
type Console struct {
	buf ScreenBuffer
}

// NewConsole creates a console controller over buf.
func NewConsole(buf ScreenBuffer) (*Console, error) {
	if buf == nil {
		return nil, errors.New(errors.ErrTerminal,
			"No console screen buffer",
			"Use terminal.clear: ansi outside a Windows console")
	}
	return &Console{buf: buf}, nil
}

// Clear blanks every cell of the buffer and puts the cursor at (0,0).
// The buffer is measured on every call since the window can be resized.
func (c *Console) Clear() error {
	cols, rows, err := c.buf.Size()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrTerminal,
			"Can't read the console size",
			"Run rhino in a console window, or set terminal.clear: ansi")
	}

	if cols > 0 && rows > 0 {
		if err := c.buf.FillBlank(cols * rows); err != nil {
			return errors.WrapWithCode(err, errors.ErrTerminal, "Can't blank the console", "")
		}
	}

	if err := c.buf.SetCursor(0, 0); err != nil {
		return errors.WrapWithCode(err, errors.ErrTerminal, "Can't move the console cursor", "")
	}
	return nil
}

func (c *Console) Name() string { return ModeConsole }
