package config

import (
	"fmt"

	"github.com/rileyhilliard/rhino/internal/errors"
)

var (
	validBackends = []string{"nvml", "nvidia-smi"}
	validOnError  = []string{"degrade", "fatal"}
	validClear    = []string{"auto", "ansi", "console", "none"}
	validColor    = []string{"auto", "always", "never"}
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This shouldn't happen - please report this bug!")
	}

	// Check version
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but rhino only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade rhino, or lower the version in your config")
	}

	if cfg.Interval < MinInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Refresh interval %s is too short", cfg.Interval),
			fmt.Sprintf("Use an interval of at least %s, like 'interval: 1s'", MinInterval))
	}

	if !oneOf(cfg.GPU.Backend, validBackends) {
		return invalidChoice("gpu.backend", cfg.GPU.Backend, validBackends)
	}
	if cfg.GPU.Index < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("gpu.index can't be negative (got %d)", cfg.GPU.Index),
			"Device indexes start at 0; run nvidia-smi -L to list them")
	}
	if !oneOf(cfg.GPU.OnError, validOnError) {
		return invalidChoice("gpu.on_error", cfg.GPU.OnError, validOnError)
	}

	if !oneOf(cfg.Terminal.Clear, validClear) {
		return invalidChoice("terminal.clear", cfg.Terminal.Clear, validClear)
	}

	if !oneOf(cfg.Output.Color, validColor) {
		return invalidChoice("output.color", cfg.Output.Color, validColor)
	}

	return nil
}

func invalidChoice(key, got string, valid []string) error {
	return errors.New(errors.ErrConfig,
		fmt.Sprintf("Invalid %s '%s'", key, got),
		fmt.Sprintf("Use one of: %v", valid))
}

func oneOf(s string, valid []string) bool {
	for _, v := range valid {
		if s == v {
			return true
		}
	}
	return false
}
