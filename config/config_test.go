package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestDefaults(t *testing.T) {
	c, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "bestscore.txt", c.BestScoreFile)
	assert.Equal(t, 400*time.Millisecond, c.Tick)
	assert.False(t, c.NoGhost)
	assert.Equal(t, "tetris.log", c.LogFile)
	assert.Equal(t, slog.LevelInfo, c.LogLevel)
	assert.Equal(t, rate.Limit(30), c.KeyRate)
	assert.Equal(t, 5, c.KeyBurst)
}

func TestFlags(t *testing.T) {
	c, err := Load([]string{
		"-best-score-file", "/tmp/best",
		"-tick", "250ms",
		"-no-ghost",
		"-log-level", "debug",
		"-key-rate", "10",
		"-key-burst", "2",
	})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/best", c.BestScoreFile)
	assert.Equal(t, 250*time.Millisecond, c.Tick)
	assert.True(t, c.NoGhost)
	assert.Equal(t, slog.LevelDebug, c.LogLevel)
	assert.Equal(t, rate.Limit(10), c.KeyRate)
	assert.Equal(t, 2, c.KeyBurst)
}

func TestEnv(t *testing.T) {
	t.Setenv(EnvTick, "1s")
	t.Setenv(EnvNoGhost, "true")
	t.Setenv(EnvLogLevel, "warn")

	c, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, time.Second, c.Tick)
	assert.True(t, c.NoGhost)
	assert.Equal(t, slog.LevelWarn, c.LogLevel)

	t.Run("flags override the environment", func(t *testing.T) {
		c, err := Load([]string{"-tick", "2s"})
		require.NoError(t, err)
		assert.Equal(t, 2*time.Second, c.Tick)
	})

	t.Run("unparsable values fall back to the default", func(t *testing.T) {
		t.Setenv(EnvTick, "often")
		c, err := Load(nil)
		require.NoError(t, err)
		assert.Equal(t, 400*time.Millisecond, c.Tick)
	})
}

func TestEnvFile(t *testing.T) {
	// godotenv doesn't override variables already set, make sure this one isn't.
	t.Setenv(EnvBestScoreFile, "")
	require.NoError(t, os.Unsetenv(EnvBestScoreFile))
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(EnvBestScoreFile+"=from-env-file.txt\n"), 0o644))

	c, err := Load(nil, path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "from-env-file.txt", c.BestScoreFile)
}

func TestInvalid(t *testing.T) {
	tests := map[string][]string{
		"zero tick":      {"-tick", "0s"},
		"negative rate":  {"-key-rate", "-1"},
		"no burst":       {"-key-burst", "0"},
		"empty file":     {"-best-score-file", " "},
		"bad log level":  {"-log-level", "loud"},
		"unknown flag":   {"-level", "3"},
		"malformed tick": {"-tick", "fast"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(args)
			assert.Error(t, err)
		})
	}
}
