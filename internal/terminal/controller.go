// Package terminal clears the screen between dashboard frames.
//
// Two real strategies exist. The console strategy blanks the Windows console
// screen buffer and homes the cursor through the console API. The ANSI
// strategy writes erase-display and cursor-home escape sequences. A third,
// None, leaves the screen alone for redirected output.
package terminal

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/rileyhilliard/rhino/internal/errors"
)

// Mode names accepted by Select.
const (
	ModeAuto    = "auto"
	ModeANSI    = "ansi"
	ModeConsole = "console"
	ModeNone    = "none"
)

// Controller wipes the visible screen and leaves the cursor at the top-left
// cell, ready for the next frame.
type Controller interface {
	Clear() error
	Name() string
}

// Select picks the strategy for out once at startup.
//
// auto prefers the console buffer when out is a Windows console, then ANSI
// when out is any other terminal, and otherwise None.
func Select(mode string, out *os.File) (Controller, error) {
	switch mode {
	case "", ModeAuto:
		if buf, err := OpenConsole(out); err == nil {
			return console(buf)
		}
		if out != nil && term.IsTerminal(int(out.Fd())) {
			return ansi(out)
		}
		return None{}, nil
	case ModeANSI:
		return ansi(out)
	case ModeConsole:
		buf, err := OpenConsole(out)
		if err != nil {
			return nil, err
		}
		return console(buf)
	case ModeNone:
		return None{}, nil
	default:
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown terminal.clear mode '%s'", mode),
			"Use one of: auto, ansi, console, none")
	}
}

func ansi(out *os.File) (Controller, error) {
	if out == nil {
		// Keep a nil *os.File from becoming a non-nil io.Writer.
		_, err := NewANSI(nil)
		return nil, err
	}
	c, err := NewANSI(out)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func console(buf ScreenBuffer) (Controller, error) {
	c, err := NewConsole(buf)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// None never clears. Frames are appended one after another.
type None struct{}

func (None) Clear() error { return nil }
func (None) Name() string { return ModeNone }
