// Package config loads the DeepDelve configuration file and applies
// environment overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/deepdelve/internal/game"
	"github.com/lawnchairsociety/deepdelve/internal/logger"
	"github.com/lawnchairsociety/deepdelve/internal/store"
)

// Config is the root of config.yaml.
type Config struct {
	Game     GameConfig    `yaml:"game"`
	Database store.Config  `yaml:"database"`
	Catalog  CatalogConfig `yaml:"catalog"`
	Logging  logger.Config `yaml:"logging"`
}

// GameConfig holds engine rules and run seeding.
type GameConfig struct {
	game.Rules `yaml:",inline"`

	// Seed fixes the random source. 0 seeds from the clock.
	Seed int64 `yaml:"seed" env:"DELVE_SEED"`

	// BossFloor is the first boss floor; every multiple of it is one too.
	BossFloor int `yaml:"boss_floor" env:"DELVE_BOSS_FLOOR"`
}

// CatalogConfig locates the content tables.
type CatalogConfig struct {
	Dir string `yaml:"dir" env:"DELVE_CATALOG_DIR"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Game: GameConfig{
			Rules:     game.DefaultRules(),
			BossFloor: 10,
		},
		Database: store.DefaultConfig("data/runs.db"),
		Catalog:  CatalogConfig{Dir: "data"},
		Logging:  logger.DefaultConfig(),
	}
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, returns default config.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}

	return config, nil
}

// ParseEnv overrides fields that have a DELVE_* or LOG_* variable set.
func (c *Config) ParseEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	c.Logging.ApplyEnv()
	return nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if ec := c.Game.EventChance; ec < 0 || ec > 1 {
		errs = append(errs, fmt.Errorf("game.event_chance must be within [0, 1], got %v", ec))
	}
	if c.Game.BossFloor < 1 {
		errs = append(errs, fmt.Errorf("game.boss_floor must be at least 1, got %d", c.Game.BossFloor))
	}
	if c.Catalog.Dir == "" {
		errs = append(errs, errors.New("catalog.dir is required"))
	}
	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}
	return errors.Join(errs...)
}
