package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// MinInterval is the shortest refresh interval accepted.
const MinInterval = 100 * time.Millisecond

// Config represents the complete .rhino.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Interval is the pause between frames.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Banner shows the startup animation.
	Banner bool `yaml:"banner" mapstructure:"banner"`

	GPU      GPUConfig      `yaml:"gpu" mapstructure:"gpu"`
	Terminal TerminalConfig `yaml:"terminal" mapstructure:"terminal"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
}

// GPUConfig selects and tunes the GPU backend.
type GPUConfig struct {
	// Backend is "nvml" or "nvidia-smi".
	Backend string `yaml:"backend" mapstructure:"backend"`

	// Index of the device to show.
	Index int `yaml:"index" mapstructure:"index"`

	// OnError controls per-cycle read failures: "degrade" shows N/A for the
	// field, "fatal" stops the dashboard.
	OnError string `yaml:"on_error" mapstructure:"on_error"`
}

// TerminalConfig controls how the screen is cleared between frames.
type TerminalConfig struct {
	// Clear mode: "auto", "ansi", "console", or "none".
	Clear string `yaml:"clear" mapstructure:"clear"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:  CurrentConfigVersion,
		Interval: time.Second,
		Banner:   true,
		GPU: GPUConfig{
			Backend: "nvml",
			Index:   0,
			OnError: "degrade",
		},
		Terminal: TerminalConfig{
			Clear: "auto",
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}
