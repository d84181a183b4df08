package gen

import (
	"math"

	"github.com/lawnchairsociety/deepdelve/internal/catalog"
	"github.com/lawnchairsociety/deepdelve/internal/run"
)

// Enemy stat bounds after floor scaling.
const (
	MinEnemyAccuracy = 0.40
	MaxEnemyAccuracy = 0.95
	MinEnemyEvasion  = 0.02
	MaxEnemyEvasion  = 0.30
)

// IsBossFloor returns true if the floor is a boss floor. The first boss
// floor repeats every bossFloor floors.
func IsBossFloor(floor, bossFloor int) bool {
	return bossFloor > 0 && floor >= bossFloor && floor%bossFloor == 0
}

// BudgetRatio returns the fraction of player max HP an enemy group's summed
// attack may reach on a floor.
func BudgetRatio(floor, bossFloor int) float64 {
	ratio := 0.4
	if floor > bossFloor {
		ratio = 0.6
	}
	if floor > 20 {
		ratio += 0.1 * float64((floor-20)/10)
	}
	return math.Min(ratio, 1.0)
}

// Budget returns the damage budget for a floor as a whole number of attack
// points.
func Budget(floor, hpMax, bossFloor int) int {
	return int(math.Floor(float64(hpMax) * BudgetRatio(floor, bossFloor)))
}

// GroupSize returns the inclusive enemy count range for a floor. The minimum
// grows with the player's AP capacity and with depth, and wins over the
// maximum when they cross.
func GroupSize(floor, apMax int) (lo, hi int) {
	switch {
	case floor <= 3:
		hi = 1
	case floor <= 6:
		hi = 2
	default:
		hi = 3
	}

	lo = 1
	switch {
	case apMax >= 5:
		lo = 3
	case apMax >= 3:
		lo = 2
	}
	if floor > 20 {
		lo += (floor - 20) / 10
	}

	if lo > hi {
		hi = lo
	}
	return lo, hi
}

// ScaleHP grows template HP by 12% per floor past the first.
func ScaleHP(base, floor int) int {
	if floor <= 1 {
		return max(1, base)
	}
	return max(1, int(float64(base)*(1.0+float64(floor-1)*0.12)))
}

// ScaleAttack grows template attack by 8% per floor past the first.
func ScaleAttack(base, floor int) int {
	if floor <= 1 {
		return max(1, base)
	}
	return max(1, int(float64(base)*(1.0+float64(floor-1)*0.08)))
}

// ScaleArmor adds one armor per four floors.
func ScaleArmor(base, floor int) int {
	return base + max(0, floor-1)/4
}

// ScaleEnemy builds a live enemy from a template for a floor.
func ScaleEnemy(t catalog.EnemyTemplate, floor int) *run.Enemy {
	hp := ScaleHP(t.HP, floor)
	step := float64(max(0, floor-1))
	return &run.Enemy{
		ID:       t.ID,
		Name:     t.Name,
		HP:       hp,
		MaxHP:    hp,
		Attack:   ScaleAttack(t.Attack, floor),
		Armor:    ScaleArmor(t.Armor, floor),
		Accuracy: clamp(t.Accuracy+0.01*step, MinEnemyAccuracy, MaxEnemyAccuracy),
		Evasion:  clamp(t.Evasion+0.005*step, MinEnemyEvasion, MaxEnemyEvasion),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
