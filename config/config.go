package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the runtime settings for pwform.
type Config struct {
	MinLength   int
	MaxLength   int
	ClipTimeout time.Duration
	IdleTimeout time.Duration
	LogLevel    logrus.Level
	LogFile     string
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		MinLength:   8,
		MaxLength:   20,
		ClipTimeout: 30 * time.Second,
		IdleTimeout: 5 * time.Minute,
		LogLevel:    logrus.InfoLevel,
	}
}

// Load loads configuration from environment variables only.
func Load() (*Config, error) {
	return LoadWithFile("")
}

// LoadWithFile loads configuration from an optional .env file and environment
// variables. A missing .env file is not an error.
func LoadWithFile(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := Default()
	var err error
	if cfg.MinLength, err = intEnv("PWFORM_MIN_LENGTH", cfg.MinLength); err != nil {
		return nil, err
	}
	if cfg.MaxLength, err = intEnv("PWFORM_MAX_LENGTH", cfg.MaxLength); err != nil {
		return nil, err
	}
	if cfg.ClipTimeout, err = durationEnv("PWFORM_CLIP_TIMEOUT", cfg.ClipTimeout); err != nil {
		return nil, err
	}
	if cfg.IdleTimeout, err = durationEnv("PWFORM_IDLE_TIMEOUT", cfg.IdleTimeout); err != nil {
		return nil, err
	}
	if v := os.Getenv("PWFORM_LOG_LEVEL"); v != "" {
		lvl, err := logrus.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("PWFORM_LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = lvl
	}
	cfg.LogFile = os.Getenv("PWFORM_LOG_FILE")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the length bounds and timeouts.
func (c *Config) Validate() error {
	if c.MinLength < 1 {
		return fmt.Errorf("minimum length must be at least 1, got %d", c.MinLength)
	}
	if c.MinLength > c.MaxLength {
		return fmt.Errorf("minimum length %d exceeds maximum length %d", c.MinLength, c.MaxLength)
	}
	if c.ClipTimeout <= 0 {
		return fmt.Errorf("clipboard timeout must be positive")
	}
	if c.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive")
	}
	return nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
