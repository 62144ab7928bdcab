package terminal

import (
	stderrors "errors"
	"testing"

	"github.com/rileyhilliard/rhino/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBuffer is an in-memory console: a grid of cells and a cursor.
type fakeBuffer struct {
	cols, rows int
	cells      []rune
	cursorX    int
	cursorY    int
	sizeErr    error
	fillErr    error
	cursorErr  error
}

func newFakeBuffer(cols, rows int) *fakeBuffer {
	b := &fakeBuffer{cols: cols, rows: rows, cells: make([]rune, cols*rows)}
	for i := range b.cells {
		b.cells[i] = 'x'
	}
	b.cursorX, b.cursorY = cols-1, rows-1
	return b
}

func (b *fakeBuffer) Size() (int, int, error) {
	if b.sizeErr != nil {
		return 0, 0, b.sizeErr
	}
	return b.cols, b.rows, nil
}

func (b *fakeBuffer) FillBlank(cells int) error {
	if b.fillErr != nil {
		return b.fillErr
	}
	for i := 0; i < cells && i < len(b.cells); i++ {
		b.cells[i] = ' '
	}
	return nil
}

func (b *fakeBuffer) SetCursor(x, y int) error {
	if b.cursorErr != nil {
		return b.cursorErr
	}
	b.cursorX, b.cursorY = x, y
	return nil
}

func TestConsole_Clear(t *testing.T) {
	buf := newFakeBuffer(80, 25)
	c, err := NewConsole(buf)
	require.NoError(t, err)

	require.NoError(t, c.Clear())

	assert.Equal(t, 0, buf.cursorX)
	assert.Equal(t, 0, buf.cursorY)
	for i, r := range buf.cells {
		require.Equal(t, ' ', r, "cell %d not blank", i)
	}
	assert.Equal(t, ModeConsole, c.Name())
}

func TestConsole_ClearTracksResize(t *testing.T) {
	buf := newFakeBuffer(10, 2)
	c, err := NewConsole(buf)
	require.NoError(t, err)
	require.NoError(t, c.Clear())

	grown := newFakeBuffer(20, 4)
	buf.cols, buf.rows, buf.cells = grown.cols, grown.rows, grown.cells
	require.NoError(t, c.Clear())

	for _, r := range buf.cells {
		require.Equal(t, ' ', r)
	}
}

func TestConsole_ClearFailures(t *testing.T) {
	boom := stderrors.New("the handle is invalid")

	tests := []struct {
		name   string
		mutate func(*fakeBuffer)
	}{
		{"size", func(b *fakeBuffer) { b.sizeErr = boom }},
		{"fill", func(b *fakeBuffer) { b.fillErr = boom }},
		{"cursor", func(b *fakeBuffer) { b.cursorErr = boom }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := newFakeBuffer(80, 25)
			tt.mutate(buf)
			c, err := NewConsole(buf)
			require.NoError(t, err)

			// Fails the same way every time.
			for i := 0; i < 2; i++ {
				err := c.Clear()
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrTerminal))
				assert.ErrorIs(t, err, boom)
			}
		})
	}
}

func TestConsole_EmptyBufferStillHomesCursor(t *testing.T) {
	buf := newFakeBuffer(0, 0)
	buf.cursorX, buf.cursorY = 3, 3
	c, err := NewConsole(buf)
	require.NoError(t, err)

	require.NoError(t, c.Clear())
	assert.Equal(t, 0, buf.cursorX)
	assert.Equal(t, 0, buf.cursorY)
}

func TestNewConsole_NilBuffer(t *testing.T) {
	_, err := NewConsole(nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTerminal))
}
