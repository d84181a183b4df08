// Package catalog holds the read-only content tables a run draws from:
// weapons, enemies, upgrades and scrolls.
package catalog

import (
	"hash/fnv"
	"math"
	"sort"

	"github.com/lawnchairsociety/deepdelve/internal/run"
)

// Window is an inclusive floor range. Zero bounds are open.
type Window struct {
	MinFloor int `yaml:"min_floor,omitempty"`
	MaxFloor int `yaml:"max_floor,omitempty"`
}

// Contains reports whether floor falls inside the window.
func (w Window) Contains(floor int) bool {
	if w.MinFloor > 0 && floor < w.MinFloor {
		return false
	}
	if w.MaxFloor > 0 && floor > w.MaxFloor {
		return false
	}
	return true
}

// WeaponDef is a weapon row from weapons.yaml.
type WeaponDef struct {
	Name          string  `yaml:"name"`
	MinDmg        int     `yaml:"min_dmg"`
	MaxDmg        int     `yaml:"max_dmg"`
	AccuracyBonus float64 `yaml:"accuracy_bonus"`
	SplashRatio   float64 `yaml:"splash_ratio"`
	BleedChance   float64 `yaml:"bleed_chance"`
	BleedDamage   int     `yaml:"bleed_damage"`
	ArmorPierce   float64 `yaml:"armor_pierce"`
	Starter       bool    `yaml:"starter,omitempty"`
	Window        `yaml:",inline"`
}

// EnemyDef is an enemy row from enemies.yaml. Stats are floor-1 values.
type EnemyDef struct {
	Name     string  `yaml:"name"`
	HP       int     `yaml:"hp"`
	Attack   int     `yaml:"attack"`
	Armor    int     `yaml:"armor"`
	Accuracy float64 `yaml:"accuracy"`
	Evasion  float64 `yaml:"evasion"`
	Boss     bool    `yaml:"boss,omitempty"`
	Window   `yaml:",inline"`
}

// UpgradeDef is an upgrade row from upgrades.yaml.
type UpgradeDef struct {
	Name   string  `yaml:"name"`
	Kind   string  `yaml:"kind"`
	Stat   string  `yaml:"stat,omitempty"`
	Amount float64 `yaml:"amount,omitempty"`
	Potion string  `yaml:"potion,omitempty"`
	Scroll string  `yaml:"scroll,omitempty"`
	Window `yaml:",inline"`
}

// ScrollDef is a scroll row from scrolls.yaml.
type ScrollDef struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`
	Power int    `yaml:"power"`
	Turns int    `yaml:"turns,omitempty"`
}

// Tables is the parsed content of the four YAML files.
type Tables struct {
	Weapons  map[string]WeaponDef  `yaml:"weapons"`
	Enemies  map[string]EnemyDef   `yaml:"enemies"`
	Upgrades map[string]UpgradeDef `yaml:"upgrades"`
	Scrolls  map[string]ScrollDef  `yaml:"scrolls"`
}

// EnemyTemplate is an enemy row keyed by id.
type EnemyTemplate struct {
	ID string
	EnemyDef
}

// WeaponTemplate is a weapon row keyed by id.
type WeaponTemplate struct {
	ID string
	WeaponDef
	Legendary bool
}

// UpgradeTemplate is an upgrade row keyed by id.
type UpgradeTemplate struct {
	ID string
	UpgradeDef
}

// DefaultBossFloor is the first boss floor when none is configured.
const DefaultBossFloor = 10

// Catalog is the immutable, shared content store. All pools are sorted by id
// so that seeded generation is reproducible.
type Catalog struct {
	bossFloor int

	weapons   []WeaponTemplate
	enemies   []EnemyTemplate
	upgrades  []UpgradeTemplate
	scrolls   map[string]ScrollDef
	mutated   []EnemyTemplate
	legendary []WeaponTemplate
}

// New builds a catalog from parsed tables. Floors beyond bossFloor draw from
// the mutated enemy pool and the legendary weapon pool. A bossFloor below 1
// falls back to DefaultBossFloor.
func New(t Tables, bossFloor int) *Catalog {
	if bossFloor < 1 {
		bossFloor = DefaultBossFloor
	}
	c := &Catalog{
		bossFloor: bossFloor,
		scrolls:   make(map[string]ScrollDef, len(t.Scrolls)),
	}
	for _, id := range sortedKeys(t.Weapons) {
		c.weapons = append(c.weapons, WeaponTemplate{ID: id, WeaponDef: t.Weapons[id]})
	}
	for _, id := range sortedKeys(t.Enemies) {
		c.enemies = append(c.enemies, EnemyTemplate{ID: id, EnemyDef: t.Enemies[id]})
	}
	for _, id := range sortedKeys(t.Upgrades) {
		c.upgrades = append(c.upgrades, UpgradeTemplate{ID: id, UpgradeDef: t.Upgrades[id]})
	}
	for id, def := range t.Scrolls {
		c.scrolls[id] = def
	}

	for _, e := range c.enemies {
		if !e.Boss {
			c.mutated = append(c.mutated, mutate(e, bossFloor))
		}
	}
	for _, w := range c.weapons {
		c.legendary = append(c.legendary, legendary(w))
	}
	return c
}

// BossFloor returns the first boss floor this catalog was built for.
func (c *Catalog) BossFloor() int { return c.bossFloor }

// Empty reports whether the catalog has no enemies and no offers at all.
func (c *Catalog) Empty() bool {
	return len(c.enemies) == 0 && len(c.weapons) == 0 && len(c.upgrades) == 0
}

// Enemies returns non-boss enemy templates valid on floor, falling back to
// the whole pool when none match.
func (c *Catalog) Enemies(floor int) []EnemyTemplate {
	pool := c.mutated
	if floor <= c.bossFloor {
		pool = nil
		for _, e := range c.enemies {
			if !e.Boss {
				pool = append(pool, e)
			}
		}
	}
	return filter(pool, floor, func(e EnemyTemplate) Window { return e.Window })
}

// Weapons returns weapon templates valid on floor.
func (c *Catalog) Weapons(floor int) []WeaponTemplate {
	pool := c.weapons
	if floor > c.bossFloor {
		pool = c.legendary
	}
	return filter(pool, floor, func(w WeaponTemplate) Window { return w.Window })
}

// Upgrades returns upgrade templates valid on floor.
func (c *Catalog) Upgrades(floor int) []UpgradeTemplate {
	return filter(c.upgrades, floor, func(u UpgradeTemplate) Window { return u.Window })
}

// Boss returns the first template flagged as a boss, used for naming the
// boss encounter.
func (c *Catalog) Boss() (EnemyTemplate, bool) {
	for _, e := range c.enemies {
		if e.Boss {
			return e, true
		}
	}
	return EnemyTemplate{}, false
}

// Scroll returns the scroll with the given id.
func (c *Catalog) Scroll(id string) (run.Scroll, bool) {
	def, ok := c.scrolls[id]
	if !ok {
		return run.Scroll{}, false
	}
	return run.Scroll{ID: id, Name: def.Name, Kind: run.ScrollKind(def.Kind), Power: def.Power, Turns: def.Turns}, true
}

// StarterWeapon returns the weapon a new run begins with: the first row
// flagged starter, else the weakest weapon, else bare fists.
func (c *Catalog) StarterWeapon() run.Weapon {
	var best *WeaponTemplate
	for i := range c.weapons {
		w := &c.weapons[i]
		if w.Starter {
			return w.Instance(1)
		}
		if best == nil || w.MaxDmg < best.MaxDmg {
			best = w
		}
	}
	if best != nil {
		return best.Instance(1)
	}
	return run.Weapon{ID: "fists", Name: "Fists", MinDmg: 1, MaxDmg: 2, Level: 1}
}

// Instance creates a run weapon from the template, leveled to floor.
func (w WeaponTemplate) Instance(floor int) run.Weapon {
	out := run.Weapon{
		ID:            w.ID,
		Name:          w.Name,
		MinDmg:        w.MinDmg,
		MaxDmg:        w.MaxDmg,
		AccuracyBonus: w.AccuracyBonus,
		SplashRatio:   w.SplashRatio,
		BleedChance:   w.BleedChance,
		BleedDamage:   w.BleedDamage,
		ArmorPierce:   w.ArmorPierce,
		Level:         1,
		Legendary:     w.Legendary,
	}
	out.Normalize()
	out.ScaleTo(floor)
	return out
}

// mutationFactor derives a stable 10-25% bonus from an enemy id.
func mutationFactor(id string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return 1.10 + float64(h.Sum32()%16)/100
}

func mutate(e EnemyTemplate, bossFloor int) EnemyTemplate {
	f := mutationFactor(e.ID)
	m := e
	m.Name = "Twisted " + e.Name
	m.HP = int(math.Ceil(float64(e.HP) * f))
	m.Attack = int(math.Ceil(float64(e.Attack) * f))
	m.Armor = int(math.Ceil(float64(e.Armor) * f))
	m.Accuracy = e.Accuracy * f
	m.Evasion = e.Evasion * f
	m.Window = Window{MinFloor: bossFloor + 1}
	return m
}

func legendary(w WeaponTemplate) WeaponTemplate {
	l := w
	l.ID = "legendary_" + w.ID
	l.Name = "Legendary " + w.Name
	l.MinDmg = int(math.Round(float64(w.MinDmg+2) * 1.25))
	l.MaxDmg = int(math.Round(float64(w.MaxDmg+2) * 1.25))
	l.AccuracyBonus = math.Min(w.AccuracyBonus+0.05, 0.30)
	l.SplashRatio = math.Min(w.SplashRatio+0.10, 0.60)
	l.BleedChance = math.Min(w.BleedChance+0.10, 0.60)
	l.BleedDamage = w.BleedDamage + 1
	l.ArmorPierce = math.Min(w.ArmorPierce+0.10, 0.50)
	l.Starter = false
	l.Legendary = true
	return l
}

func filter[T any](pool []T, floor int, window func(T) Window) []T {
	var out []T
	for _, item := range pool {
		if window(item).Contains(floor) {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return pool
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
