package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rhino/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, time.Second, cfg.Interval)
	assert.True(t, cfg.Banner)
	assert.Equal(t, "nvml", cfg.GPU.Backend)
	assert.Equal(t, 0, cfg.GPU.Index)
	assert.Equal(t, "degrade", cfg.GPU.OnError)
	assert.Equal(t, "auto", cfg.Terminal.Clear)
	assert.Equal(t, "auto", cfg.Output.Color)
	assert.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".rhino.yaml")

	content := `
version: 1
interval: 2500ms
banner: false
gpu:
  backend: nvidia-smi
  index: 1
  on_error: fatal
terminal:
  clear: ansi
output:
  color: never
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, 2500*time.Millisecond, cfg.Interval)
	assert.False(t, cfg.Banner)
	assert.Equal(t, GPUConfig{Backend: "nvidia-smi", Index: 1, OnError: "fatal"}, cfg.GPU)
	assert.Equal(t, "ansi", cfg.Terminal.Clear)
	assert.Equal(t, "never", cfg.Output.Color)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".rhino.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("interval: 3s\n"), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	want := DefaultConfig()
	want.Interval = 3 * time.Second
	assert.Equal(t, want, cfg)
}

func TestLoad_EmptyPathIsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("RHINO_INTERVAL", "5s")
	t.Setenv("RHINO_GPU_BACKEND", "nvidia-smi")
	t.Setenv("RHINO_GPU_INDEX", "2")
	t.Setenv("RHINO_BANNER", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Interval)
	assert.Equal(t, "nvidia-smi", cfg.GPU.Backend)
	assert.Equal(t, 2, cfg.GPU.Index)
	assert.False(t, cfg.Banner)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".rhino.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("terminal:\n  clear: ansi\n"), 0644))
	t.Setenv("RHINO_TERMINAL_CLEAR", "none")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "none", cfg.Terminal.Clear)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".rhino.yaml")
		require.NoError(t, os.WriteFile(path, []byte("gpu: [unclosed"), 0644))

		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("bad duration", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".rhino.yaml")
		require.NoError(t, os.WriteFile(path, []byte("interval: soon\n"), 0644))

		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})
}

func TestFind(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0644))

		found, err := Find(path)
		require.NoError(t, err)
		assert.Equal(t, path, found)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Find(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("current directory", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		t.Setenv("HOME", t.TempDir())
		require.NoError(t, os.WriteFile(ConfigFileName, []byte("version: 1\n"), 0644))

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, ConfigFileName, filepath.Base(found))
	})

	t.Run("global config", func(t *testing.T) {
		t.Chdir(t.TempDir())
		home := t.TempDir()
		t.Setenv("HOME", home)
		global := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		require.NoError(t, os.MkdirAll(filepath.Dir(global), 0755))
		require.NoError(t, os.WriteFile(global, []byte("version: 1\n"), 0644))

		found, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, global, found)
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("HOME", t.TempDir())

		found, err := Find("")
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestLoadOrDefault(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, path, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", ExpandTilde(""))
	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, filepath.Join(home, "rhino.yaml"), ExpandTilde("~/rhino.yaml"))
	assert.Equal(t, "/etc/rhino.yaml", ExpandTilde("/etc/rhino.yaml"))
	assert.Equal(t, "~other/x", ExpandTilde("~other/x"))
}
