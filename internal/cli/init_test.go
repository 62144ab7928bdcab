package cli

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/rhino/internal/config"
	"github.com/rileyhilliard/rhino/internal/errors"
)

// scriptedPrompter answers prompts from fixed values.
type scriptedPrompter struct {
	overwrite   bool
	confirmErr  error
	settings    func(*config.Config)
	settingsErr error
	asked       []string
}

func (p *scriptedPrompter) ConfirmOverwrite(path string) (bool, error) {
	p.asked = append(p.asked, "overwrite")
	return p.overwrite, p.confirmErr
}

func (p *scriptedPrompter) Settings(cfg *config.Config) error {
	p.asked = append(p.asked, "settings")
	if p.settings != nil {
		p.settings(cfg)
	}
	return p.settingsErr
}

func TestInit_NonInteractive(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	prompt := &scriptedPrompter{}

	var out bytes.Buffer
	require.NoError(t, Init(&out, InitOptions{NonInteractive: true}, prompt))

	assert.Empty(t, prompt.asked)
	assert.Contains(t, out.String(), "Created "+config.ConfigFileName)
	assert.Contains(t, out.String(), "rhino doctor")

	cfg, err := config.Load(filepath.Join(dir, config.ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestInit_Interactive(t *testing.T) {
	t.Chdir(t.TempDir())
	prompt := &scriptedPrompter{settings: func(c *config.Config) {
		c.GPU.Backend = "nvidia-smi"
		c.Interval = 500 * time.Millisecond
		c.Terminal.Clear = "ansi"
	}}

	var out bytes.Buffer
	require.NoError(t, Init(&out, InitOptions{}, prompt))
	assert.Equal(t, []string{"settings"}, prompt.asked)

	cfg, err := config.Load(config.ConfigFileName)
	require.NoError(t, err)
	assert.Equal(t, "nvidia-smi", cfg.GPU.Backend)
	assert.Equal(t, 500*time.Millisecond, cfg.Interval)
	assert.Equal(t, "ansi", cfg.Terminal.Clear)
}

func TestInit_InteractiveInvalidAnswers(t *testing.T) {
	t.Chdir(t.TempDir())
	prompt := &scriptedPrompter{settings: func(c *config.Config) {
		c.Interval = time.Millisecond
	}}

	err := Init(&bytes.Buffer{}, InitOptions{}, prompt)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.NoFileExists(t, config.ConfigFileName)
}

func TestInit_PromptFailure(t *testing.T) {
	t.Chdir(t.TempDir())
	prompt := &scriptedPrompter{settingsErr: stderrors.New("user aborted")}

	err := Init(&bytes.Buffer{}, InitOptions{}, prompt)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.NoFileExists(t, config.ConfigFileName)
}

func TestInit_Global(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var out bytes.Buffer
	require.NoError(t, Init(&out, InitOptions{Global: true, NonInteractive: true}, &scriptedPrompter{}))

	want := filepath.Join(home, config.GlobalConfigDir, config.GlobalConfigFile)
	assert.FileExists(t, want)
	assert.Contains(t, out.String(), want)
}

func TestInit_ExistingFile(t *testing.T) {
	const existing = "interval: 3s\n"

	tests := []struct {
		name       string
		opts       InitOptions
		prompt     *scriptedPrompter
		wantErr    bool
		wantOutput string
		wantKept   bool
	}{
		{
			name:     "non-interactive refuses",
			opts:     InitOptions{NonInteractive: true},
			prompt:   &scriptedPrompter{},
			wantErr:  true,
			wantKept: true,
		},
		{
			name:   "force overwrites without asking",
			opts:   InitOptions{NonInteractive: true, Overwrite: true},
			prompt: &scriptedPrompter{},
		},
		{
			name:       "user declines",
			opts:       InitOptions{},
			prompt:     &scriptedPrompter{overwrite: false},
			wantOutput: "Cancelled.",
			wantKept:   true,
		},
		{
			name:   "user confirms",
			opts:   InitOptions{},
			prompt: &scriptedPrompter{overwrite: true},
		},
		{
			name:     "confirm fails",
			opts:     InitOptions{},
			prompt:   &scriptedPrompter{confirmErr: stderrors.New("no tty")},
			wantErr:  true,
			wantKept: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			require.NoError(t, os.WriteFile(config.ConfigFileName, []byte(existing), 0644))

			var out bytes.Buffer
			err := Init(&out, tt.opts, tt.prompt)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
			} else {
				require.NoError(t, err)
			}
			if tt.wantOutput != "" {
				assert.Contains(t, out.String(), tt.wantOutput)
			}

			data, err := os.ReadFile(config.ConfigFileName)
			require.NoError(t, err)
			if tt.wantKept {
				assert.Equal(t, existing, string(data))
			} else {
				assert.NotEqual(t, existing, string(data))
			}
		})
	}
}

func TestValidateIntervalInput(t *testing.T) {
	assert.NoError(t, validateIntervalInput("1s"))
	assert.NoError(t, validateIntervalInput("100ms"))
	assert.Error(t, validateIntervalInput("10ms"))
	assert.Error(t, validateIntervalInput("soon"))
}

func TestInitCommandFlags(t *testing.T) {
	for _, name := range []string{"force", "global", "non-interactive"} {
		flag := initCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "init should have --%s", name)
		assert.Equal(t, "false", flag.DefValue)
	}
}
