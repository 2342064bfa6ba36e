package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PWFORM_MIN_LENGTH",
	"PWFORM_MAX_LENGTH",
	"PWFORM_CLIP_TIMEOUT",
	"PWFORM_IDLE_TIMEOUT",
	"PWFORM_LOG_LEVEL",
	"PWFORM_LOG_FILE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("from environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PWFORM_MIN_LENGTH", "10")
		t.Setenv("PWFORM_MAX_LENGTH", "64")
		t.Setenv("PWFORM_CLIP_TIMEOUT", "5s")
		t.Setenv("PWFORM_LOG_LEVEL", "debug")
		t.Setenv("PWFORM_LOG_FILE", "/tmp/pwform.log")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.MinLength)
		assert.Equal(t, 64, cfg.MaxLength)
		assert.Equal(t, 5*time.Second, cfg.ClipTimeout)
		assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
		assert.Equal(t, "/tmp/pwform.log", cfg.LogFile)
	})

	invalid := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"non numeric min", "PWFORM_MIN_LENGTH", "eight", "PWFORM_MIN_LENGTH must be an integer"},
		{"zero min", "PWFORM_MIN_LENGTH", "0", "minimum length must be at least 1"},
		{"min above max", "PWFORM_MIN_LENGTH", "30", "minimum length 30 exceeds maximum length 20"},
		{"bad duration", "PWFORM_CLIP_TIMEOUT", "soon", "PWFORM_CLIP_TIMEOUT must be a duration"},
		{"negative idle", "PWFORM_IDLE_TIMEOUT", "-1s", "idle timeout must be positive"},
		{"bad level", "PWFORM_LOG_LEVEL", "loud", "PWFORM_LOG_LEVEL"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadWithFile(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		clearEnv(t)
		cfg, err := LoadWithFile(filepath.Join(t.TempDir(), "nope.env"))
		require.NoError(t, err)
		assert.Equal(t, 8, cfg.MinLength)
	})

	t.Run("file values apply", func(t *testing.T) {
		clearEnv(t)
		// godotenv does not override variables that are already set.
		os.Unsetenv("PWFORM_MAX_LENGTH")
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("PWFORM_MAX_LENGTH=32\n"), 0600))
		t.Cleanup(func() { os.Unsetenv("PWFORM_MAX_LENGTH") })

		cfg, err := LoadWithFile(path)
		require.NoError(t, err)
		assert.Equal(t, 32, cfg.MaxLength)
	})
}
