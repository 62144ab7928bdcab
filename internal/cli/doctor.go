package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rhino/internal/config"
	"github.com/rileyhilliard/rhino/internal/doctor"
	"github.com/rileyhilliard/rhino/internal/errors"
	"github.com/rileyhilliard/rhino/internal/logger"
	"github.com/rileyhilliard/rhino/internal/monitor/gpu"
	"github.com/rileyhilliard/rhino/internal/monitor/sensors"
	"github.com/rileyhilliard/rhino/internal/terminal"
	"github.com/rileyhilliard/rhino/internal/ui"
)

var doctorJSON bool

// doctorCmd diagnoses placeholders on the dashboard
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose missing readings",
	Long: `Check the config, GPU backend, host sensors and terminal, and explain
why a dashboard field might show N/A or [Requires Admin Privileges].

Examples:
  rhino doctor
  rhino doctor --gpu-backend nvidia-smi
  rhino doctor --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(cmd.OutOrStdout(), cfgFile, gpuBackendFlag, doctorJSON)
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().StringVar(&gpuBackendFlag, "gpu-backend", "", "GPU backend to check: nvml or nvidia-smi")
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
}

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

// doctorCommand implements the doctor command logic.
func doctorCommand(out io.Writer, configPath, backend string, asJSON bool) error {
	checks := collectChecks(configPath, backend)
	results := doctor.RunAllParallel(checks)

	var err error
	if asJSON {
		err = outputDoctorJSON(out, checks, results)
	} else {
		outputDoctorText(out, checks, results)
	}
	if err != nil {
		return err
	}

	if doctor.HasFailures(results) {
		return errors.NewExitError(1)
	}
	return nil
}

// collectChecks gathers every diagnostic check. GPU and terminal checks use
// the config that applies, or defaults when it can't be loaded.
func collectChecks(configPath, backend string) []doctor.Check {
	cfg, _, err := config.LoadOrDefault(configPath)
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if backend != "" {
		cfg.GPU.Backend = backend
	}

	var checks []doctor.Check
	checks = append(checks, doctor.NewConfigChecks(configPath)...)
	checks = append(checks, doctor.NewGPUChecks(cfg.GPU.Backend, cfg.GPU.Index, gpu.New)...)
	checks = append(checks, doctor.NewSensorChecks(sensors.NewSource(logger.NewEnvLogger("[sensors]")))...)
	checks = append(checks, &doctor.TerminalCheck{
		Mode: cfg.Terminal.Clear,
		Select: func(mode string) (terminal.Controller, error) {
			return terminal.Select(mode, os.Stdout)
		},
	})
	return checks
}

// groupResults pairs each category, in report order, with its results.
func groupResults(checks []doctor.Check, results []doctor.CheckResult) []CategoryOutput {
	grouped := doctor.GroupByCategory(checks)
	categories := make([]CategoryOutput, 0, len(grouped))
	for _, name := range doctor.CategoryOrder {
		indices, ok := grouped[name]
		if !ok {
			continue
		}
		cat := CategoryOutput{Name: name}
		for _, idx := range indices {
			cat.Results = append(cat.Results, results[idx])
		}
		categories = append(categories, cat)
	}
	return categories
}

// outputDoctorJSON outputs results in JSON format.
func outputDoctorJSON(out io.Writer, checks []doctor.Check, results []doctor.CheckResult) error {
	counts := doctor.CountByStatus(results)
	output := DoctorOutput{
		Categories: groupResults(checks, results),
		Summary: SummaryOutput{
			Pass:     counts[doctor.StatusPass],
			Warn:     counts[doctor.StatusWarn],
			Fail:     counts[doctor.StatusFail],
			AllClear: !doctor.HasIssues(results),
		},
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// outputDoctorText outputs results in human-readable format.
func outputDoctorText(out io.Writer, checks []doctor.Check, results []doctor.CheckResult) {
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("Rhino Diagnostic Report"))
	fmt.Fprintln(out)

	for _, cat := range groupResults(checks, results) {
		fmt.Fprintln(out, headerStyle.Render(cat.Name))
		for _, result := range cat.Results {
			renderCheckResult(out, result)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, strings.Repeat("━", 60))
	fmt.Fprintln(out)

	if doctor.HasIssues(results) {
		fmt.Fprintf(out, "%s %s\n", errorStyle.Render(ui.SymbolFail), doctor.Summary(results))
	} else {
		fmt.Fprintf(out, "%s %s\n", successStyle.Render(ui.SymbolSuccess), doctor.Summary(results))
	}
	fmt.Fprintln(out)
}

// renderCheckResult renders a single check result.
func renderCheckResult(out io.Writer, result doctor.CheckResult) {
	var symbol string
	var style lipgloss.Style

	switch result.Status {
	case doctor.StatusPass:
		symbol = ui.SymbolComplete
		style = lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	case doctor.StatusWarn:
		symbol = ui.SymbolComplete // Still shows as done, but with warning styling
		style = lipgloss.NewStyle().Foreground(ui.ColorWarning)
	default:
		symbol = ui.SymbolFail
		style = lipgloss.NewStyle().Foreground(ui.ColorError)
	}

	fmt.Fprintf(out, "  %s %s\n", style.Render(symbol), result.Message)

	if result.Suggestion != "" && result.Status != doctor.StatusPass {
		for _, line := range strings.Split(result.Suggestion, "\n") {
			fmt.Fprintf(out, "    %s\n", ui.MutedStyle().Render(line))
		}
	}
}
