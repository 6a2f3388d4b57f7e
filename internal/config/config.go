package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/san-kum/dicesim/internal/dice"
	"gopkg.in/yaml.v3"
)

const (
	DefaultStrategy = "bulk"
	DefaultDice     = 1
	DefaultThrows   = 10000
	DefaultExport   = "dicesim_results.json"
	DefaultTheme    = "classic"
)

var (
	ErrInvalidThrows  = errors.New("config: throws must be positive")
	ErrInvalidWorkers = errors.New("config: workers must not be negative")
)

// Config is layered: defaults, then the YAML file, then DICESIM_* variables,
// then command line flags.
type Config struct {
	Seed     *int64 `yaml:"seed,omitempty" env:"DICESIM_SEED"`
	Strategy string `yaml:"strategy" env:"DICESIM_STRATEGY"`
	Workers  int    `yaml:"workers" env:"DICESIM_WORKERS"`
	Dice     int    `yaml:"dice" env:"DICESIM_DICE"`
	Throws   int    `yaml:"throws" env:"DICESIM_THROWS"`
	Export   string `yaml:"export" env:"DICESIM_EXPORT"`
	Theme    string `yaml:"theme" env:"DICESIM_THEME"`
}

func DefaultConfig() *Config {
	return &Config{
		Strategy: DefaultStrategy,
		Dice:     DefaultDice,
		Throws:   DefaultThrows,
		Export:   DefaultExport,
		Theme:    DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	return LoadInto(DefaultConfig(), path)
}

// LoadInto overlays the YAML file at path onto base.
func LoadInto(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields whose DICESIM_* variable is set.
func (c *Config) ApplyEnv() error {
	return ParseEnv(c)
}

// Resolve overlays the file at path (if any) and then the environment onto
// base. A nil base starts from the defaults.
func Resolve(base *Config, path string) (*Config, error) {
	cfg := base
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if path != "" {
		if _, err := LoadInto(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) DiceCount() (dice.Count, error) {
	return dice.ParseCount(c.Dice)
}

func (c *Config) Validate() error {
	if _, err := c.DiceCount(); err != nil {
		return err
	}
	if c.Throws <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidThrows, c.Throws)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.Workers)
	}
	return nil
}
