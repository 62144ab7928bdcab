package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/rhino/internal/config"
	"github.com/rileyhilliard/rhino/internal/errors"
	"github.com/rileyhilliard/rhino/internal/monitor/gpu"
	"github.com/rileyhilliard/rhino/internal/terminal"
	"github.com/rileyhilliard/rhino/internal/ui"
)

// nonInteractiveEnv skips init prompts when set to any non-empty value.
const nonInteractiveEnv = "RHINO_NON_INTERACTIVE"

var (
	initForce          bool
	initGlobal         bool
	initNonInteractive bool
)

// initCmd writes a config file.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .rhino.yaml configuration",
	Long: `Write a config file for the dashboard.

By default the file is .rhino.yaml in the current directory. With --global
it goes to ~/.config/rhino/config.yaml instead. On a terminal you are asked
for the GPU backend, refresh interval and screen clearing; otherwise the
defaults are written as-is.

Examples:
  rhino init
  rhino init --global
  rhino init --force --non-interactive`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := InitOptions{
			Global:         initGlobal,
			Overwrite:      initForce,
			NonInteractive: initNonInteractive || !canPrompt(),
		}
		return Init(cmd.OutOrStdout(), opts, huhPrompter{})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	initCmd.Flags().BoolVar(&initGlobal, "global", false, "write the global config instead of the project one")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "skip prompts and write the defaults")
}

// InitOptions holds options for the init command.
type InitOptions struct {
	Global         bool // Write ~/.config/rhino/config.yaml
	Overwrite      bool // Overwrite existing config without asking
	NonInteractive bool // Skip prompts, use defaults
}

// initPrompter asks the user for init choices.
type initPrompter interface {
	ConfirmOverwrite(path string) (bool, error)
	Settings(cfg *config.Config) error
}

// Init writes a new config file and reports where it went.
func Init(out io.Writer, opts InitOptions, prompt initPrompter) error {
	path, err := initPath(opts.Global)
	if err != nil {
		return err
	}

	overwrite := opts.Overwrite
	if _, err := os.Stat(path); err == nil && !overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", path),
				"Use --force to overwrite")
		}
		ok, err := prompt.ConfirmOverwrite(path)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !ok {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		overwrite = true
	}

	cfg := config.DefaultConfig()
	if !opts.NonInteractive {
		if err := prompt.Settings(cfg); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --non-interactive")
		}
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}

	if err := config.Write(path, cfg, overwrite); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s Created %s\n\n", ui.SuccessStyle().Render(ui.SymbolSuccess), path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  rhino         - Start the dashboard")
	fmt.Fprintln(out, "  rhino doctor  - Check sensors and GPU access")
	return nil
}

func initPath(global bool) (string, error) {
	if global {
		path := config.GlobalConfigPath()
		if path == "" {
			return "", errors.New(errors.ErrConfig,
				"Can't find your home directory",
				"Set HOME or write a project config with 'rhino init'")
		}
		return path, nil
	}
	return config.ConfigFileName, nil
}

// canPrompt reports whether stdin is a terminal outside CI.
func canPrompt() bool {
	if os.Getenv(nonInteractiveEnv) != "" || os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// huhPrompter asks with huh forms.
type huhPrompter struct{}

func (huhPrompter) ConfirmOverwrite(path string) (bool, error) {
	var overwrite bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
				Value(&overwrite),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return overwrite, nil
}

func (huhPrompter) Settings(cfg *config.Config) error {
	interval := cfg.Interval.String()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("GPU backend").
				Description("How GPU readings are collected").
				Options(
					huh.NewOption("NVML (NVIDIA management library)", gpu.BackendNVML),
					huh.NewOption("nvidia-smi (command-line tool)", gpu.BackendSMI),
				).
				Value(&cfg.GPU.Backend),
			huh.NewSelect[string]().
				Title("When a GPU reading fails").
				Options(
					huh.NewOption("Show N/A and keep going", "degrade"),
					huh.NewOption("Stop the dashboard", "fatal"),
				).
				Value(&cfg.GPU.OnError),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Refresh interval").
				Description("Pause between frames, e.g. 500ms or 2s").
				Placeholder(interval).
				Value(&interval).
				Validate(validateIntervalInput),
			huh.NewSelect[string]().
				Title("Screen clearing").
				Options(
					huh.NewOption("Detect automatically", terminal.ModeAuto),
					huh.NewOption("ANSI escape sequences", terminal.ModeANSI),
					huh.NewOption("Windows console API", terminal.ModeConsole),
					huh.NewOption("Don't clear (append frames)", terminal.ModeNone),
				).
				Value(&cfg.Terminal.Clear),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	d, err := time.ParseDuration(interval)
	if err != nil {
		return err
	}
	cfg.Interval = d
	return nil
}

func validateIntervalInput(s string) error {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("'%s' doesn't look like a duration", s)
	}
	if d < config.MinInterval {
		return fmt.Errorf("interval must be at least %s", config.MinInterval)
	}
	return nil
}
