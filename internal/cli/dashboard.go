package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/rileyhilliard/rhino/internal/config"
	"github.com/rileyhilliard/rhino/internal/errors"
	"github.com/rileyhilliard/rhino/internal/logger"
	"github.com/rileyhilliard/rhino/internal/monitor"
	"github.com/rileyhilliard/rhino/internal/monitor/gpu"
	"github.com/rileyhilliard/rhino/internal/monitor/sensors"
	"github.com/rileyhilliard/rhino/internal/terminal"
	"github.com/rileyhilliard/rhino/internal/ui"
)

// noColorEnv follows the no-color.org convention.
const noColorEnv = "NO_COLOR"

// dashboardOverrides are command-line values layered over the config.
// Zero values leave the config untouched.
type dashboardOverrides struct {
	ConfigPath string
	Interval   time.Duration
	Clear      string
	GPUBackend string
	NoColor    bool
	NoBanner   bool
}

// apply writes the overrides into cfg.
func (o dashboardOverrides) apply(cfg *config.Config) {
	if o.Interval != 0 {
		cfg.Interval = o.Interval
	}
	if o.Clear != "" {
		cfg.Terminal.Clear = o.Clear
	}
	if o.GPUBackend != "" {
		cfg.GPU.Backend = o.GPUBackend
	}
	if o.NoColor {
		cfg.Output.Color = "never"
	}
	if o.NoBanner {
		cfg.Banner = false
	}
}

// dashboardEnv is everything the dashboard touches outside the process.
type dashboardEnv struct {
	out         io.Writer
	isTerminal  bool
	openGPU     func(backend string, index int) (monitor.GPUDriver, error)
	newSource   func(log logger.Logger) monitor.SensorSource
	openScreen  func(mode string) (terminal.Controller, error)
	sleep       monitor.Sleeper
	bannerSleep func(time.Duration)
	maxCycles   int
}

// systemEnv wires the dashboard to stdout and the real sensors.
func systemEnv() dashboardEnv {
	return dashboardEnv{
		out:        os.Stdout,
		isTerminal: term.IsTerminal(int(os.Stdout.Fd())),
		openGPU:    gpu.New,
		newSource: func(log logger.Logger) monitor.SensorSource {
			return sensors.NewSource(log)
		},
		openScreen: func(mode string) (terminal.Controller, error) {
			return terminal.Select(mode, os.Stdout)
		},
		sleep:       monitor.SleepContext,
		bannerSleep: time.Sleep,
	}
}

// dashboardCommand loads config, applies overrides and runs the dashboard
// until SIGINT or SIGTERM.
func dashboardCommand(ctx context.Context, o dashboardOverrides) error {
	closer, err := logger.RedirectFromEnv()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Can't open log file",
			"Check the path in "+logger.LogFileEnv)
	}
	defer closer.Close()

	cfg, path, err := config.LoadOrDefault(o.ConfigPath)
	if err != nil {
		return err
	}
	o.apply(cfg)
	if err := config.Validate(cfg); err != nil {
		return err
	}

	log := logger.NewEnvLogger("[rhino]")
	if path != "" {
		log.Debug("loaded config from %s", path)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := systemEnv()
	if !useColor(cfg.Output.Color, env.isTerminal) {
		ui.DisableColors()
	}
	return runDashboard(ctx, cfg, env)
}

// runDashboard performs the startup sequence and then blocks in the
// refresh loop.
func runDashboard(ctx context.Context, cfg *config.Config, env dashboardEnv) error {
	log := logger.NewEnvLogger("[rhino]")

	color := useColor(cfg.Output.Color, env.isTerminal)
	r := lipgloss.NewRenderer(env.out)
	switch {
	case !color:
		r.SetColorProfile(termenv.Ascii)
	case !env.isTerminal:
		r.SetColorProfile(termenv.ANSI256)
	}

	var banner *ui.Banner
	if cfg.Banner {
		banner = ui.NewBanner(env.out, r)
		if env.bannerSleep != nil {
			banner.SetSleep(env.bannerSleep)
		}
		banner.Title()
	}

	driver, err := env.openGPU(cfg.GPU.Backend, cfg.GPU.Index)
	if err != nil {
		return err
	}
	device, identity, err := driver.Init()
	if err != nil {
		return err
	}
	defer func() {
		if err := device.Close(); err != nil {
			log.Debug("gpu shutdown: %v", err)
		}
	}()
	log.Debug("gpu %d opened: %s (%s)", cfg.GPU.Index, identity.Name, identity.Architecture)

	if banner != nil {
		banner.Dots()
	}

	policy, err := monitor.ParseGPUFailurePolicy(cfg.GPU.OnError)
	if err != nil {
		return err
	}
	builder := monitor.NewBuilder(env.newSource(logger.NewEnvLogger("[sensors]")), device, identity)
	builder.SetPolicy(policy)
	builder.SetLogger(logger.NewEnvLogger("[gpu]"))

	screen, err := env.openScreen(cfg.Terminal.Clear)
	if err != nil {
		return err
	}
	log.Debug("clearing screen with %s", screen.Name())

	renderer := monitor.NewRenderer()
	if color {
		renderer = monitor.NewStyledRenderer(monitor.NewStyles(r))
	}

	loop := monitor.NewLoop(builder, renderer, screen, env.out, monitor.LoopOptions{
		Interval:  cfg.Interval,
		Sleep:     env.sleep,
		Logger:    log,
		MaxCycles: env.maxCycles,
	})
	return loop.Run(ctx)
}

// useColor resolves output.color against the terminal and NO_COLOR.
func useColor(mode string, isTerminal bool) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal && os.Getenv(noColorEnv) == ""
	}
}
