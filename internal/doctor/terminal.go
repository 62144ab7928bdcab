package doctor

import (
	"fmt"

	"github.com/rileyhilliard/rhino/internal/terminal"
)

// TerminalCheck reports which clearing strategy the dashboard will use.
type TerminalCheck struct {
	Mode   string
	Select func(mode string) (terminal.Controller, error)
}

func (c *TerminalCheck) Name() string     { return "terminal_clear" }
func (c *TerminalCheck) Category() string { return CategoryTerminal }

func (c *TerminalCheck) Run() CheckResult {
	screen, err := c.Select(c.Mode)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Can't clear the screen with terminal.clear=%s: %v", c.Mode, err),
			Suggestion: "Use terminal.clear: auto",
		}
	}

	if screen.Name() == terminal.ModeNone && c.Mode != terminal.ModeNone {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Output is not a terminal, frames will be appended instead of redrawn",
			Suggestion: "Run rhino directly in a terminal, or set terminal.clear: none to silence this",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Clearing with %s", screen.Name()),
	}
}
