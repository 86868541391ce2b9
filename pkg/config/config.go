package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sigweihq/ual-lynx/pkg/constants"
	"gopkg.in/yaml.v3"
)

// DefaultEnvPrefix is the prefix for environment overrides
const DefaultEnvPrefix = "LYNX_"

// Config controls how the authenticator detects the wallet
type Config struct {
	// RequireWalletBrowser gates rendering on the Lynx user agent in addition to chain support
	RequireWalletBrowser bool `yaml:"require_wallet_browser"`

	// ProbeStrategy is "poll" (check presence on an interval) or "event" (wait for the loaded signal)
	ProbeStrategy string `yaml:"probe_strategy"`

	PollInterval time.Duration `yaml:"poll_interval"`
	PollAttempts int           `yaml:"poll_attempts"`
	LoadTimeout  time.Duration `yaml:"load_timeout"`
}

// Default returns the stock configuration
func Default() Config {
	return Config{
		RequireWalletBrowser: true,
		ProbeStrategy:        constants.ProbeStrategyPoll,
		PollInterval:         constants.PollInterval,
		PollAttempts:         constants.PollAttempts,
		LoadTimeout:          constants.LoadTimeout,
	}
}

// Validate checks the configuration and the probe duration bound
func (c Config) Validate() error {
	switch c.ProbeStrategy {
	case constants.ProbeStrategyPoll:
		if c.PollInterval <= 0 {
			return fmt.Errorf("poll interval must be positive")
		}
		if c.PollAttempts <= 0 {
			return fmt.Errorf("poll attempts must be positive")
		}
		if total := c.PollInterval * time.Duration(c.PollAttempts); total > constants.MaxProbeDuration {
			return fmt.Errorf("poll interval x attempts (%s) exceeds %s", total, constants.MaxProbeDuration)
		}
	case constants.ProbeStrategyEvent:
		if c.LoadTimeout <= 0 {
			return fmt.Errorf("load timeout must be positive")
		}
		if c.LoadTimeout > constants.MaxProbeDuration {
			return fmt.Errorf("load timeout (%s) exceeds %s", c.LoadTimeout, constants.MaxProbeDuration)
		}
	default:
		return fmt.Errorf("unknown probe strategy: %q", c.ProbeStrategy)
	}
	return nil
}

// LoadFile reads a YAML file over the defaults
// Fields absent from the file keep their default values
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv applies LYNX_* environment overrides to base
// dotenvFiles are loaded first if they exist; variables already set in the process win
func FromEnv(base Config, dotenvFiles ...string) (Config, error) {
	for _, file := range dotenvFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return base, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	vars := envVars(DefaultEnvPrefix)
	cfg := base
	var err error

	if val, ok := vars.lookup("REQUIRE_WALLET_BROWSER"); ok {
		if cfg.RequireWalletBrowser, err = strconv.ParseBool(val); err != nil {
			return base, fmt.Errorf("invalid require wallet browser: %w", err)
		}
	}
	if val, ok := vars.lookup("PROBE_STRATEGY"); ok {
		cfg.ProbeStrategy = strings.ToLower(val)
	}
	if val, ok := vars.lookup("POLL_INTERVAL"); ok {
		if cfg.PollInterval, err = time.ParseDuration(val); err != nil {
			return base, fmt.Errorf("invalid poll interval: %w", err)
		}
	}
	if val, ok := vars.lookup("POLL_ATTEMPTS"); ok {
		if cfg.PollAttempts, err = strconv.Atoi(val); err != nil {
			return base, fmt.Errorf("invalid poll attempts: %w", err)
		}
	}
	if val, ok := vars.lookup("LOAD_TIMEOUT"); ok {
		if cfg.LoadTimeout, err = time.ParseDuration(val); err != nil {
			return base, fmt.Errorf("invalid load timeout: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// envVars reads variables sharing a prefix; empty values count as unset
type envVars string

func (p envVars) lookup(key string) (string, bool) {
	val, ok := os.LookupEnv(string(p) + key)
	return val, ok && val != ""
}
