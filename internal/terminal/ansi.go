package terminal

import (
	"io"

	"github.com/muesli/termenv"

	"github.com/rileyhilliard/rhino/internal/errors"
)

// ANSI clears with erase-display and cursor-home escape sequences.
type ANSI struct {
	w   *errWriter
	out *termenv.Output
}

// NewANSI creates an ANSI controller writing to w.
func NewANSI(w io.Writer) (*ANSI, error) {
	if w == nil {
		return nil, errors.New(errors.ErrTerminal,
			"No output stream to clear",
			"This shouldn't happen - please report this bug!")
	}
	ew := &errWriter{w: w}
	return &ANSI{
		w: ew,
		// Clearing doesn't depend on the color profile; skip detection.
		out: termenv.NewOutput(ew, termenv.WithProfile(termenv.Ascii)),
	}, nil
}

// Clear erases the display and moves the cursor to the first cell.
func (a *ANSI) Clear() error {
	a.w.err = nil
	a.out.ClearScreen()
	if a.w.err != nil {
		return errors.WrapWithCode(a.w.err, errors.ErrTerminal,
			"Can't clear the terminal",
			"Check that stdout is still attached to a terminal")
	}
	return nil
}

func (a *ANSI) Name() string { return ModeANSI }

// errWriter remembers the first write error, since termenv drops it.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
