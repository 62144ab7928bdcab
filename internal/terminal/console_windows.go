//go:build windows

package terminal

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/rileyhilliard/rhino/internal/errors"
)

var (
	kernel32                       = windows.NewLazySystemDLL("kernel32.dll")
	procFillConsoleOutputCharacter = kernel32.NewProc("FillConsoleOutputCharacterW")
)

// winConsole is the screen buffer behind a Windows console handle.
type winConsole struct {
	h windows.Handle
}

// OpenConsole resolves the console screen buffer behind f. It fails when f
// is redirected or the handle is invalid.
func OpenConsole(f *os.File) (ScreenBuffer, error) {
	if f == nil {
		return nil, errors.New(errors.ErrTerminal, "No console handle", "")
	}
	h := windows.Handle(f.Fd())
	if h == windows.InvalidHandle {
		return nil, errors.New(errors.ErrTerminal, "Invalid console handle", "")
	}

	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(h, &info); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrTerminal,
			"Output is not a console",
			"Use terminal.clear: ansi or none when output is redirected")
	}
	return &winConsole{h: h}, nil
}

func (c *winConsole) Size() (int, int, error) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(c.h, &info); err != nil {
		return 0, 0, err
	}
	return int(info.Size.X), int(info.Size.Y), nil
}

func (c *winConsole) FillBlank(cells int) error {
	var written uint32
	// The COORD argument is passed by value packed into one word; (0,0) is 0.
	r1, _, err := procFillConsoleOutputCharacter.Call(
		uintptr(c.h),
		uintptr(' '),
		uintptr(uint32(cells)),
		0,
		uintptr(unsafe.Pointer(&written)),
	)
	if r1 == 0 {
		return err
	}
	return nil
}

func (c *winConsole) SetCursor(x, y int) error {
	return windows.SetConsoleCursorPosition(c.h, windows.Coord{X: int16(x), Y: int16(y)})
}
