package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lawnchairsociety/deepdelve/internal/logger"
	"gopkg.in/yaml.v3"
)

// Table file names inside a catalog directory.
const (
	WeaponsFile  = "weapons.yaml"
	EnemiesFile  = "enemies.yaml"
	UpgradesFile = "upgrades.yaml"
	ScrollsFile  = "scrolls.yaml"
)

// LoadDir reads the four catalog tables from dir. A missing or malformed
// table is logged and left empty; only a directory where every table fails
// is an error.
func LoadDir(dir string, bossFloor int) (*Catalog, error) {
	var t Tables
	failed := 0

	load := func(name string, target any) {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warning("Catalog table unreadable, using empty table", "path", path, "error", err)
			failed++
			return
		}
		if err := yaml.Unmarshal(data, target); err != nil {
			logger.Warning("Catalog table malformed, using empty table", "path", path, "error", err)
			failed++
		}
	}

	var weapons struct {
		Weapons map[string]WeaponDef `yaml:"weapons"`
	}
	var enemies struct {
		Enemies map[string]EnemyDef `yaml:"enemies"`
	}
	var upgrades struct {
		Upgrades map[string]UpgradeDef `yaml:"upgrades"`
	}
	var scrolls struct {
		Scrolls map[string]ScrollDef `yaml:"scrolls"`
	}
	load(WeaponsFile, &weapons)
	load(EnemiesFile, &enemies)
	load(UpgradesFile, &upgrades)
	load(ScrollsFile, &scrolls)

	if failed == 4 {
		return nil, fmt.Errorf("no catalog tables could be loaded from %s", dir)
	}

	t.Weapons = weapons.Weapons
	t.Enemies = enemies.Enemies
	t.Upgrades = upgrades.Upgrades
	t.Scrolls = scrolls.Scrolls

	c := New(t, bossFloor)
	logger.Info("Catalog loaded",
		"weapons", len(c.weapons),
		"enemies", len(c.enemies),
		"upgrades", len(c.upgrades),
		"scrolls", len(c.scrolls))
	return c, nil
}

// Parse builds a catalog from a single YAML document holding all four
// tables under weapons:, enemies:, upgrades: and scrolls: keys.
func Parse(data []byte, bossFloor int) (*Catalog, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	return New(t, bossFloor), nil
}
