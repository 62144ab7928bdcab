package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Banner timing and shape.
const (
	BannerTitle = "Initializing Rhino..."
	BannerSteps = 6
	BannerDelay = 125 * time.Millisecond
)

// Banner prints the startup animation. The title goes out before the GPU is
// opened; the dots follow once it is ready.
type Banner struct {
	out   io.Writer
	title lipgloss.Style
	dots  lipgloss.Style
	sleep func(time.Duration)
}

// NewBanner creates a banner writing to out, styled with r.
func NewBanner(out io.Writer, r *lipgloss.Renderer) *Banner {
	return &Banner{
		out:   out,
		title: r.NewStyle().Foreground(ColorInfo).Bold(true),
		dots:  r.NewStyle().Foreground(ColorMuted),
		sleep: time.Sleep,
	}
}

// SetSleep replaces the pause between dots (for tests).
func (b *Banner) SetSleep(fn func(time.Duration)) {
	b.sleep = fn
}

// Title prints the opening line.
func (b *Banner) Title() {
	fmt.Fprintln(b.out, b.title.Render(BannerTitle))
}

// Dots prints the progress lines, pausing after each, then a blank line.
func (b *Banner) Dots() {
	for i := 0; i < BannerSteps; i++ {
		fmt.Fprintln(b.out, b.dots.Render(strings.Repeat(".", 3)))
		b.sleep(BannerDelay)
	}
	fmt.Fprintln(b.out)
}
