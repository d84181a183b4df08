package run

import "math"

// Weapon is the player's single equipped weapon.
type Weapon struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	MinDmg        int     `json:"min_dmg"`
	MaxDmg        int     `json:"max_dmg"`
	AccuracyBonus float64 `json:"accuracy_bonus"`
	SplashRatio   float64 `json:"splash_ratio"`
	BleedChance   float64 `json:"bleed_chance"`
	BleedDamage   int     `json:"bleed_damage"`
	ArmorPierce   float64 `json:"armor_pierce"`
	Level         int     `json:"level"`
	Legendary     bool    `json:"legendary,omitempty"`
}

// weaponGrowth is the damage gained per floor of re-leveling.
const weaponGrowth = 0.08

// ScaleTo re-levels the weapon for a floor. Scaling only ever goes up, and
// scaling twice to the same floor is a no-op.
func (w *Weapon) ScaleTo(floor int) {
	if w.Level <= 0 {
		w.Level = 1
	}
	if floor <= w.Level {
		return
	}
	mult := 1.0 + float64(floor-w.Level)*weaponGrowth
	w.MinDmg = int(math.Round(float64(w.MinDmg) * mult))
	w.MaxDmg = int(math.Round(float64(w.MaxDmg) * mult))
	if w.MaxDmg < w.MinDmg {
		w.MaxDmg = w.MinDmg
	}
	w.Level = floor
}

// Normalize repairs an inconsistent damage range and probability fields.
func (w *Weapon) Normalize() {
	w.MinDmg = max(0, w.MinDmg)
	if w.MaxDmg < w.MinDmg {
		w.MaxDmg = w.MinDmg
	}
	w.SplashRatio = clamp(w.SplashRatio, 0, 1)
	w.BleedChance = clamp(w.BleedChance, 0, 1)
	w.ArmorPierce = clamp(w.ArmorPierce, 0, 1)
	w.BleedDamage = max(0, w.BleedDamage)
	if w.Level <= 0 {
		w.Level = 1
	}
}
