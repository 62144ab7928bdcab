package monitor

import (
	"context"
	"io"
	"time"

	"github.com/rileyhilliard/rhino/internal/errors"
	"github.com/rileyhilliard/rhino/internal/logger"
)

// DefaultInterval is the pause between the end of one frame and the start of
// the next.
const DefaultInterval = time.Second

// SnapshotBuilder produces one Snapshot per cycle.
type SnapshotBuilder interface {
	Build() (Snapshot, error)
}

// Clearer wipes the visible screen and homes the cursor.
type Clearer interface {
	Clear() error
}

// Sleeper blocks for d or until ctx is done. It returns ctx.Err() when
// interrupted.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the Sleeper backed by a real timer.
func SleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// LoopOptions tunes the loop. Zero values select defaults.
type LoopOptions struct {
	Interval time.Duration
	Sleep    Sleeper
	Logger   logger.Logger

	// MaxCycles stops the loop after this many frames. Zero runs forever.
	MaxCycles int
}

// Loop drives the sample, render, clear, write and sleep cycle.
type Loop struct {
	builder   SnapshotBuilder
	renderer  *Renderer
	screen    Clearer
	out       io.Writer
	interval  time.Duration
	sleep     Sleeper
	log       logger.Logger
	maxCycles int
}

// NewLoop creates a loop writing frames to out.
func NewLoop(builder SnapshotBuilder, renderer *Renderer, screen Clearer, out io.Writer, opts LoopOptions) *Loop {
	l := &Loop{
		builder:   builder,
		renderer:  renderer,
		screen:    screen,
		out:       out,
		interval:  opts.Interval,
		sleep:     opts.Sleep,
		log:       opts.Logger,
		maxCycles: opts.MaxCycles,
	}
	if l.interval <= 0 {
		l.interval = DefaultInterval
	}
	if l.sleep == nil {
		l.sleep = SleepContext
	}
	if l.log == nil {
		l.log = logger.Noop()
	}
	return l
}

// Run executes cycles until ctx is cancelled, an unrecoverable error occurs,
// or MaxCycles frames have been drawn. Cancellation is a clean stop and
// returns nil.
func (l *Loop) Run(ctx context.Context) error {
	for cycle := 1; l.maxCycles == 0 || cycle <= l.maxCycles; cycle++ {
		if ctx.Err() != nil {
			return nil
		}

		snap, err := l.builder.Build()
		if err != nil {
			if clearErr := l.screen.Clear(); clearErr != nil {
				l.log.Debug("clear before exit failed: %v", clearErr)
			}
			return err
		}
		frame := l.renderer.Render(snap)

		// Clear and write back to back so the old frame stays up while sampling.
		if err := l.screen.Clear(); err != nil {
			return err
		}
		if _, err := io.WriteString(l.out, frame); err != nil {
			return errors.WrapWithCode(err, errors.ErrTerminal,
				"Can't write dashboard frame",
				"Check that stdout is still attached to a terminal")
		}
		l.log.Debug("cycle %d drawn", cycle)

		if err := l.sleep(ctx, l.interval); err != nil {
			return nil
		}
	}
	return nil
}
