// Package config reads the game settings from the command line, falling
// back to environment variables, which may come from a .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

const (
	EnvBestScoreFile = "TETRIS_BEST_SCORE_FILE"
	EnvTick          = "TETRIS_TICK"
	EnvNoGhost       = "TETRIS_NO_GHOST"
	EnvLogFile       = "TETRIS_LOG_FILE"
	EnvLogLevel      = "TETRIS_LOG_LEVEL"
	EnvKeyRate       = "TETRIS_KEY_RATE"
	EnvKeyBurst      = "TETRIS_KEY_BURST"
)

type Config struct {
	BestScoreFile string
	Tick          time.Duration
	NoGhost       bool
	LogFile       string
	LogLevel      slog.Level
	// KeyRate is the amount of key presses per second forwarded to the game.
	KeyRate  rate.Limit
	KeyBurst int
}

// Load parses args (without the program name). envFiles are loaded into
// the environment first; missing files are ignored.
func Load(args []string, envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var (
		c        Config
		logLevel string
		keyRate  float64
	)
	fs := flag.NewFlagSet("tetris", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&c.BestScoreFile, "best-score-file", getEnv(EnvBestScoreFile, "bestscore.txt"), "file keeping the best score")
	fs.DurationVar(&c.Tick, "tick", getEnvDuration(EnvTick, 400*time.Millisecond), "time for the piece to fall one row")
	fs.BoolVar(&c.NoGhost, "no-ghost", getEnvBool(EnvNoGhost, false), "hide the ghost piece")
	fs.StringVar(&c.LogFile, "log-file", getEnv(EnvLogFile, "tetris.log"), "file to write the logs to")
	fs.StringVar(&logLevel, "log-level", getEnv(EnvLogLevel, "info"), "log level: debug, info, warn or error")
	fs.Float64Var(&keyRate, "key-rate", getEnvFloat(EnvKeyRate, 30), "key presses per second")
	fs.IntVar(&c.KeyBurst, "key-burst", getEnvInt(EnvKeyBurst, 5), "key presses allowed in a burst")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if err := c.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	c.KeyRate = rate.Limit(keyRate)

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	switch {
	case c.Tick <= 0:
		return fmt.Errorf("tick must be positive, got %v", c.Tick)
	case c.KeyRate <= 0:
		return fmt.Errorf("key rate must be positive, got %v", c.KeyRate)
	case c.KeyBurst < 1:
		return fmt.Errorf("key burst must be at least 1, got %d", c.KeyBurst)
	case strings.TrimSpace(c.BestScoreFile) == "":
		return errors.New("best score file can't be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if i, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return i
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return fallback
}
