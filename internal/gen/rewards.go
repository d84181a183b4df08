package gen

import (
	"github.com/lawnchairsociety/deepdelve/internal/catalog"
	"github.com/lawnchairsociety/deepdelve/internal/logger"
	"github.com/lawnchairsociety/deepdelve/internal/run"
)

// Rewards draws up to n distinct-id offers from the combined weapon and
// upgrade pools of floor. Each item has equal weight and is drawn without
// replacement. Weapons are leveled to floor.
func (g *Generator) Rewards(floor, n int) []run.Reward {
	pool := g.offers(floor)
	out := make([]run.Reward, 0, min(n, len(pool)))
	seen := make(map[string]bool, n)
	for len(out) < n && len(pool) > 0 {
		i := g.rng.Intn(len(pool))
		r := pool[i]
		pool = append(pool[:i:i], pool[i+1:]...)
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	return out
}

// Reward draws a single offer for floor, as used by treasure chests.
func (g *Generator) Reward(floor int) (run.Reward, bool) {
	r := g.Rewards(floor, 1)
	if len(r) == 0 {
		return run.Reward{}, false
	}
	return r[0], true
}

func (g *Generator) offers(floor int) []run.Reward {
	var pool []run.Reward
	for _, w := range g.cat.Weapons(floor) {
		weapon := w.Instance(floor)
		pool = append(pool, run.Reward{ID: w.ID, Name: w.Name, Kind: run.RewardWeapon, Weapon: &weapon})
	}
	for _, u := range g.cat.Upgrades(floor) {
		up, ok := g.upgrade(u)
		if !ok {
			logger.Warning("Skipping malformed upgrade", "id", u.ID, "kind", u.Kind)
			continue
		}
		pool = append(pool, run.Reward{ID: u.ID, Name: u.Name, Kind: run.RewardUpgrade, Upgrade: up})
	}
	return pool
}

func (g *Generator) upgrade(u catalog.UpgradeTemplate) (*run.Upgrade, bool) {
	switch run.UpgradeKind(u.Kind) {
	case run.UpgradeStat:
		if u.Stat == "" {
			return nil, false
		}
		return &run.Upgrade{Kind: run.UpgradeStat, Stat: u.Stat, Amount: u.Amount}, true
	case run.UpgradePotion:
		tier := run.PotionTier(u.Potion)
		if !tier.IsValid() {
			return nil, false
		}
		return &run.Upgrade{Kind: run.UpgradePotion, Potion: tier}, true
	case run.UpgradeScroll:
		sc, ok := g.cat.Scroll(u.Scroll)
		if !ok {
			return nil, false
		}
		return &run.Upgrade{Kind: run.UpgradeScroll, Scroll: &sc}, true
	}
	return nil, false
}
