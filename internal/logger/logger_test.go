package logger

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvLogger_Debug(t *testing.T) {
	tests := []struct {
		name      string
		envValue  string
		expectLog bool
	}{
		{
			name:      "logs when RHINO_DEBUG is set",
			envValue:  "1",
			expectLog: true,
		},
		{
			name:      "logs when RHINO_DEBUG is any value",
			envValue:  "true",
			expectLog: true,
		},
		{
			name:      "does not log when RHINO_DEBUG is empty",
			envValue:  "",
			expectLog: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log.SetOutput(&buf)
			defer log.SetOutput(os.Stderr)

			t.Setenv(DebugEnv, tt.envValue)

			l := NewEnvLogger("[test]")
			l.Debug("gpu field %s failed", "temperature")

			if tt.expectLog {
				assert.Contains(t, buf.String(), "[test] gpu field temperature failed")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestEnvLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	l := NewEnvLogger("[lvl]")
	l.Info("info %d", 42)
	l.Warn("warning")
	l.Error("failure")

	out := buf.String()
	assert.Contains(t, out, "[lvl] info 42")
	assert.Contains(t, out, "[lvl] WARN: warning")
	assert.Contains(t, out, "[lvl] ERROR: failure")
}

func TestNoopLogger(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	l := Noop()
	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	assert.Empty(t, buf.String(), "noop logger should not produce any output")
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("debug %s", "msg")
	l.Info("info %s", "msg")
	l.Warn("warn %s", "msg")
	l.Error("error %s", "msg")

	require.Len(t, l.Messages, 4)
	assert.Equal(t, LogMessage{Level: "debug", Message: "debug msg"}, l.Messages[0])
	assert.Equal(t, LogMessage{Level: "error", Message: "error msg"}, l.Messages[3])
}

func TestBufferLogger_Count(t *testing.T) {
	l := NewBufferLogger()

	assert.False(t, l.HasLevel("debug"))

	l.Debug("a")
	l.Debug("b")
	l.Warn("c")
	assert.Equal(t, 2, l.Count("debug"))
	assert.Equal(t, 1, l.Count("warn"))
	assert.True(t, l.HasLevel("warn"))
	assert.False(t, l.HasLevel("error"))
}

func TestRedirectFromEnv(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	t.Run("unset is a no-op", func(t *testing.T) {
		t.Setenv(LogFileEnv, "")
		closer, err := RedirectFromEnv()
		require.NoError(t, err)
		assert.NoError(t, closer.Close())
	})

	t.Run("writes to the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rhino.log")
		t.Setenv(LogFileEnv, path)

		closer, err := RedirectFromEnv()
		require.NoError(t, err)

		NewEnvLogger("[file]").Info("hello")
		log.SetOutput(os.Stderr)
		require.NoError(t, closer.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "[file] hello")
	})

	t.Run("bad path", func(t *testing.T) {
		t.Setenv(LogFileEnv, filepath.Join(t.TempDir(), "missing", "rhino.log"))
		_, err := RedirectFromEnv()
		assert.Error(t, err)
	})
}
