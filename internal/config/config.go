package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gmnfield/opsboard/pkg/boardstore"
)

// DefaultFileName is the config file looked for in the working directory.
const DefaultFileName = "opsboard.yml"

// DefaultTrades is the built-in trade vocabulary. "All Trades" is the
// wildcard; "Other (Custom)" routes through the free-text escape hatch.
var DefaultTrades = []string{
	"All Trades",
	"General",
	"Handyman",
	"Plumbing",
	"Electrical",
	"HVAC",
	"Roofing",
	"Painting",
	"Landscaping",
	"Other (Custom)",
}

// RedisConfig locates the shared store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	DB       int    `yaml:"db,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// DefaultsConfig carries board-level defaults applied by the repositories.
type DefaultsConfig struct {
	Multiplier float64  `yaml:"multiplier,omitempty"`
	Trades     []string `yaml:"trades,omitempty"`
}

// Config represents the top-level opsboard.yml configuration.
type Config struct {
	Version        string         `yaml:"version"`
	Instance       string         `yaml:"instance"`
	Redis          RedisConfig    `yaml:"redis"`
	Defaults       DefaultsConfig `yaml:"defaults,omitempty"`
	RefreshSeconds int            `yaml:"refresh_seconds,omitempty"`
}

// RefreshInterval converts the configured refresh_seconds to a duration;
// zero means use the watcher default.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

// Validate performs strict validation and fills defaults in place.
func (c *Config) Validate() error {
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}
	if c.Instance == "" {
		return fmt.Errorf("instance name is required")
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("redis.db must be >= 0, got %d", c.Redis.DB)
	}
	if c.Defaults.Multiplier == 0 {
		c.Defaults.Multiplier = boardstore.DefaultMultiplier
	}
	if c.Defaults.Multiplier < 0 {
		return fmt.Errorf("defaults.multiplier must be > 0, got %v", c.Defaults.Multiplier)
	}
	if len(c.Defaults.Trades) == 0 {
		c.Defaults.Trades = DefaultTrades
	}
	if c.RefreshSeconds < 0 {
		return fmt.Errorf("refresh_seconds must be >= 0, got %d", c.RefreshSeconds)
	}
	return nil
}

// applyEnv overlays OPSBOARD_* environment variables on top of the file
// values. A .env file in the working directory is loaded first when
// present; real environment variables win over it.
func (c *Config) applyEnv() error {
	_ = godotenv.Load()

	if v := os.Getenv("OPSBOARD_INSTANCE"); v != "" {
		c.Instance = v
	}
	if v := os.Getenv("OPSBOARD_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("OPSBOARD_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("OPSBOARD_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("OPSBOARD_REDIS_DB must be an integer, got %q", v)
		}
		c.Redis.DB = db
	}
	return nil
}

// Load reads opsboard.yml from the given path, applies the environment
// overlay and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Scaffold writes a starter opsboard.yml. It refuses to overwrite an
// existing file.
func Scaffold(path, instance string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	content := fmt.Sprintf(`version: "1.0"
instance: %s
redis:
  addr: localhost:6379
defaults:
  multiplier: %v
`, instance, boardstore.DefaultMultiplier)
	return os.WriteFile(path, []byte(content), 0644)
}
