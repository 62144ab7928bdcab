package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/rhino/internal/errors"
	"github.com/rileyhilliard/rhino/internal/ui"
)

// Global flags
var (
	cfgFile        string
	intervalFlag   time.Duration
	clearFlag      string
	gpuBackendFlag string
	noColorFlag    bool
	noBannerFlag   bool
)

// rootCmd runs the dashboard when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "rhino",
	Short: "Live CPU, GPU, memory and disk telemetry in your terminal",
	Long: `Rhino redraws a fixed text report of host telemetry on a steady interval:
system identity, CPU load and temperatures, NVIDIA GPU load, clocks and VRAM,
memory and per-disk usage.

Press Ctrl+C to stop.

Examples:
  rhino
  rhino --interval 500ms
  rhino --gpu-backend nvidia-smi
  rhino --clear none --no-banner`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd.Context(), overridesFromFlags(cmd))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .rhino.yaml, then ~/.config/rhino/config.yaml)")
	rootCmd.Flags().DurationVar(&intervalFlag, "interval", 0, "refresh interval (e.g., 500ms, 2s)")
	rootCmd.Flags().StringVar(&clearFlag, "clear", "", "screen clearing: auto, ansi, console, none")
	rootCmd.Flags().StringVar(&gpuBackendFlag, "gpu-backend", "", "GPU backend: nvml or nvidia-smi")
	rootCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
	rootCmd.Flags().BoolVar(&noBannerFlag, "no-banner", false, "skip the startup banner")
}

// overridesFromFlags collects only the flags the user actually set.
func overridesFromFlags(cmd *cobra.Command) dashboardOverrides {
	o := dashboardOverrides{ConfigPath: cfgFile}
	flags := cmd.Flags()
	if flags.Changed("interval") {
		o.Interval = intervalFlag
	}
	if flags.Changed("clear") {
		o.Clear = clearFlag
	}
	if flags.Changed("gpu-backend") {
		o.GPUBackend = gpuBackendFlag
	}
	o.NoColor = noColorFlag
	o.NoBanner = noBannerFlag
	return o
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := errors.GetExitCode(err); ok {
			os.Exit(code)
		}
		fmt.Fprint(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// formatError renders err for stderr. Structured errors carry their own
// failure symbol.
func formatError(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return err.Error()
	}
	return fmt.Sprintf("%s %s\n", ui.ErrorStyle().Render(ui.SymbolFail), err)
}
