package monitor

import (
	"github.com/charmbracelet/lipgloss"
)

// Dashboard color palette
const (
	ColorBorder = lipgloss.Color("#2A2A4A") // Glass border (purple tint)
	ColorAccent = lipgloss.Color("#FF2E97") // Neon pink
)

// Styles decorates the section titles and separator rules of the report.
// Body lines are never styled so the text layout stays fixed.
type Styles struct {
	title lipgloss.Style
	rule  lipgloss.Style
	plain bool
}

// PlainStyles returns styles that leave text untouched.
func PlainStyles() Styles {
	return Styles{plain: true}
}

// NewStyles builds the dashboard styles for the given lipgloss renderer.
// The renderer's color profile decides whether escape codes are emitted.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		title: r.NewStyle().Foreground(ColorAccent).Bold(true),
		rule:  r.NewStyle().Foreground(ColorBorder),
	}
}

// Title renders a section title.
func (s Styles) Title(text string) string {
	if s.plain {
		return text
	}
	return s.title.Render(text)
}

// Rule renders a separator rule.
func (s Styles) Rule(text string) string {
	if s.plain {
		return text
	}
	return s.rule.Render(text)
}
