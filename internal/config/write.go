package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/rhino/internal/errors"
)

const fileHeader = "# rhino dashboard configuration\n# Any key can be overridden with RHINO_<KEY>, e.g. RHINO_GPU_BACKEND=nvidia-smi\n"

// fileConfig mirrors Config with the interval as a duration string, since
// yaml.v3 would otherwise write nanoseconds.
type fileConfig struct {
	Version  int            `yaml:"version"`
	Interval string         `yaml:"interval"`
	Banner   bool           `yaml:"banner"`
	GPU      GPUConfig      `yaml:"gpu"`
	Terminal TerminalConfig `yaml:"terminal"`
	Output   OutputConfig   `yaml:"output"`
}

// Marshal encodes cfg as the YAML accepted by Load.
func Marshal(cfg *Config) ([]byte, error) {
	fc := fileConfig{
		Version:  cfg.Version,
		Interval: cfg.Interval.String(),
		Banner:   cfg.Banner,
		GPU:      cfg.GPU,
		Terminal: cfg.Terminal,
		Output:   cfg.Output,
	}
	data, err := yaml.Marshal(&fc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return append([]byte(fileHeader), data...), nil
}

// Write saves cfg to path, creating parent directories. An existing file is
// only replaced when force is set.
func Write(path string, cfg *Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrConfig,
			"Config file already exists: "+path,
			"Use --force to overwrite it")
	}

	data, err := Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Couldn't encode config", "")
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Couldn't create config directory "+dir,
				"Check directory permissions")
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't write config file "+path,
			"Check file permissions")
	}
	return nil
}
