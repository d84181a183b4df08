// Package gen builds the procedural content of a run: enemy groups sized to
// a damage budget, reward offers, the boss encounter and the between-floor
// menus. All randomness comes from an injected Rand.
package gen

import (
	"math"

	"github.com/lawnchairsociety/deepdelve/internal/catalog"
	"github.com/lawnchairsociety/deepdelve/internal/logger"
	"github.com/lawnchairsociety/deepdelve/internal/run"
)

// Rand is the subset of *math/rand.Rand the generator and combat use.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// MaxAttempts is how many random groups are tried before falling back to
// a rescaled minimum-size group.
const MaxAttempts = 30

// RewardCount is the size of a normal reward offer.
const RewardCount = 3

// Generator draws content from a catalog.
type Generator struct {
	cat *catalog.Catalog
	rng Rand
}

// New creates a generator over cat using rng.
func New(cat *catalog.Catalog, rng Rand) *Generator {
	return &Generator{cat: cat, rng: rng}
}

// Catalog returns the content the generator draws from.
func (g *Generator) Catalog() *catalog.Catalog { return g.cat }

// Roll returns a uniform integer in [lo, hi].
func Roll(rng Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// Enemies builds an enemy group for floor whose summed attack fits the
// player's damage budget. Returns nil when the catalog has no enemies.
func (g *Generator) Enemies(floor int, p *run.Player) []*run.Enemy {
	pool := g.cat.Enemies(floor)
	if len(pool) == 0 {
		logger.Warning("No enemy templates available", "floor", floor)
		return nil
	}

	budget := Budget(floor, p.HPMax, g.cat.BossFloor())
	lo, hi := GroupSize(floor, p.APMax)

	for attempt := 0; attempt < MaxAttempts; attempt++ {
		group := g.group(pool, floor, Roll(g.rng, lo, hi))
		if TotalAttack(group) <= budget {
			return group
		}
	}

	group := g.group(pool, floor, lo)
	Rebalance(group, budget)
	logger.Debug("Enemy group rebalanced", "floor", floor, "budget", budget, "size", lo)
	return group
}

func (g *Generator) group(pool []catalog.EnemyTemplate, floor, size int) []*run.Enemy {
	group := make([]*run.Enemy, 0, size)
	for i := 0; i < size; i++ {
		group = append(group, ScaleEnemy(pool[g.rng.Intn(len(pool))], floor))
	}
	return group
}

// TotalAttack sums the attack of a group.
func TotalAttack(group []*run.Enemy) int {
	total := 0
	for _, e := range group {
		total += e.Attack
	}
	return total
}

// Rebalance shrinks a group's attack to fit budget. Every enemy is scaled by
// the same factor, then any overflow left by the attack=1 floor is trimmed
// one point at a time from the strongest enemies. HP is left alone. When
// budget is below the group size the result is one attack per enemy.
func Rebalance(group []*run.Enemy, budget int) {
	total := TotalAttack(group)
	if total <= budget || total == 0 {
		return
	}

	ratio := float64(max(budget, 0)) / float64(total)
	for _, e := range group {
		e.Attack = max(1, int(math.Floor(float64(e.Attack)*ratio)))
	}

	overflow := TotalAttack(group) - budget
	for overflow > 0 {
		strongest := -1
		for i, e := range group {
			if e.Attack > 1 && (strongest < 0 || e.Attack > group[strongest].Attack) {
				strongest = i
			}
		}
		if strongest < 0 {
			return
		}
		group[strongest].Attack--
		overflow--
	}
}
