// Package balance provides Monte Carlo simulation tools for game balance
// testing. A greedy bot plays whole runs through the real engine.
package balance

import (
	"math/rand"
	"slices"

	"github.com/lawnchairsociety/deepdelve/internal/catalog"
	"github.com/lawnchairsociety/deepdelve/internal/game"
	"github.com/lawnchairsociety/deepdelve/internal/run"
)

// Options bounds a simulation.
type Options struct {
	Rules    game.Rules
	MaxFloor int // stop a run that reaches this floor; 0 means no limit
	MaxSteps int // hard cap on bot actions per run
}

// DefaultOptions returns standard rules with a generous step cap.
func DefaultOptions() Options {
	return Options{Rules: game.DefaultRules(), MaxFloor: 30, MaxSteps: 20000}
}

// RunResult is the outcome of one automated run.
type RunResult struct {
	Hero         string
	Floor        int
	Kills        int
	Steps        int
	Died         bool
	BossDefeated bool
}

// SimulationResult holds aggregated results from many runs.
type SimulationResult struct {
	Hero         string
	Simulations  int
	Deaths       int
	BossKills    int
	AvgFloor     float64
	AvgKills     float64
	AvgSteps     float64
	MinFloor     int
	MaxFloor     int
	BossKillRate float64 // percent
}

// SimulateRun plays one run for heroID with a fresh engine seeded by seed.
func SimulateRun(cat *catalog.Catalog, heroID string, seed int64, opts Options) RunResult {
	e := game.New(cat, rand.New(rand.NewSource(seed)), opts.Rules)
	s := e.NewRun(heroID)

	steps := 0
	for steps < opts.MaxSteps && !s.Phase.Terminal() {
		if opts.MaxFloor > 0 && s.Floor >= opts.MaxFloor {
			break
		}
		if err := Step(e, s); err != nil {
			break
		}
		steps++
	}

	return RunResult{
		Hero:         s.Hero,
		Floor:        s.Floor,
		Kills:        s.TotalKills(),
		Steps:        steps,
		Died:         s.Phase == run.PhaseDead,
		BossDefeated: s.BossDefeated,
	}
}

// RunSimulation plays iterations runs for heroID. Run i uses seed+i.
func RunSimulation(cat *catalog.Catalog, heroID string, iterations int, seed int64, opts Options) SimulationResult {
	result := SimulationResult{
		Simulations: iterations,
		MinFloor:    999999,
	}
	if iterations <= 0 {
		result.MinFloor = 0
		return result
	}

	totalFloor, totalKills, totalSteps := 0, 0, 0
	for i := 0; i < iterations; i++ {
		r := SimulateRun(cat, heroID, seed+int64(i), opts)
		result.Hero = r.Hero

		if r.Died {
			result.Deaths++
		}
		if r.BossDefeated {
			result.BossKills++
		}
		totalFloor += r.Floor
		totalKills += r.Kills
		totalSteps += r.Steps

		if r.Floor < result.MinFloor {
			result.MinFloor = r.Floor
		}
		if r.Floor > result.MaxFloor {
			result.MaxFloor = r.Floor
		}
	}

	n := float64(iterations)
	result.AvgFloor = float64(totalFloor) / n
	result.AvgKills = float64(totalKills) / n
	result.AvgSteps = float64(totalSteps) / n
	result.BossKillRate = float64(result.BossKills) / n * 100
	return result
}

// Step makes one greedy decision for whatever the run is waiting on.
func Step(e *game.Engine, s *run.State) error {
	p := s.Player
	switch s.Phase {
	case run.PhaseBattle:
		if p.HPRatio() < 0.4 && len(p.Potions) > 0 {
			return e.PlayerUsePotion(s)
		}
		if i := pickScroll(p); i >= 0 {
			return e.PlayerUseScroll(s, i)
		}
		if p.AP > 0 && s.FirstLiving() != nil {
			return e.PlayerAttack(s)
		}
		return e.EndTurn(s)

	case run.PhaseReward:
		if len(s.Rewards) == 0 {
			return e.SkipReward(s)
		}
		best, bestScore := 0, rewardScore(p, s.Rewards[0])
		for i, r := range s.Rewards[1:] {
			if sc := rewardScore(p, r); sc > bestScore {
				best, bestScore = i+1, sc
			}
		}
		return e.ApplyReward(s, best)

	case run.PhaseEvent:
		choice := run.EventTreasure
		if p.HPRatio() < 0.5 || !slices.Contains(s.EventOptions, choice) {
			choice = run.EventCampfire
		}
		return e.ApplyEventChoice(s, string(choice))

	case run.PhaseTreasure:
		equip := s.TreasureReward != nil && rewardScore(p, *s.TreasureReward) > 0
		return e.ApplyTreasureChoice(s, equip)

	case run.PhaseBossPrep:
		id := "war_drum"
		if !slices.Contains(s.BossArtifacts, id) && len(s.BossArtifacts) > 0 {
			id = s.BossArtifacts[0]
		}
		return e.ApplyBossArtifactChoice(s, id)
	}
	return nil
}

// pickScroll returns the scroll to read now, or -1. Mending waits for low HP.
func pickScroll(p *run.Player) int {
	for i, sc := range p.Scrolls {
		if sc.Kind != run.ScrollMending || p.HPRatio() < 0.5 {
			return i
		}
	}
	return -1
}

// rewardScore rates a reward for the greedy bot. Weapons are compared by
// average damage against the one in hand.
func rewardScore(p *run.Player, r run.Reward) float64 {
	switch {
	case r.Kind == run.RewardWeapon && r.Weapon != nil:
		cur := float64(p.Weapon.MinDmg+p.Weapon.MaxDmg) / 2
		next := float64(r.Weapon.MinDmg+r.Weapon.MaxDmg) / 2
		return (next - cur) * 2
	case r.Upgrade == nil:
		return 0
	case r.Upgrade.Kind == run.UpgradeStat:
		return statWeight(r.Upgrade.Stat) * r.Upgrade.Amount
	case r.Upgrade.Kind == run.UpgradePotion:
		return 1.5
	case r.Upgrade.Kind == run.UpgradeScroll:
		return 1
	}
	return 0
}

func statWeight(stat string) float64 {
	switch stat {
	case run.StatAPMax:
		return 6
	case run.StatPower, run.StatArmor:
		return 2
	case run.StatHPMax:
		return 0.5
	case run.StatAccuracy, run.StatEvasion, run.StatLuck:
		return 20
	}
	return 0
}

