package game

import (
	"fmt"
	"math"
	"slices"

	"github.com/lawnchairsociety/deepdelve/internal/gen"
	"github.com/lawnchairsociety/deepdelve/internal/run"
)

// Treasure chance bounds.
const (
	MinTreasureChance = 0.05
	MaxTreasureChance = 0.80
)

// TreasureLookahead is how many floors ahead a chest's reward is drawn for.
const TreasureLookahead = 2

// Altar trade.
const (
	AltarHPCost    = 3
	AltarPowerGain = 1
)

// TreasureChance returns the chance a chest holds a reward.
func TreasureChance(luck float64) float64 {
	return math.Max(MinTreasureChance, math.Min(MaxTreasureChance, 0.2+luck))
}

// IsBossFloor reports whether floor holds the boss encounter.
func (e *Engine) IsBossFloor(floor int) bool {
	return gen.IsBossFloor(floor, e.cat.BossFloor())
}

// AdvanceFloor moves the run one floor down. A boss floor opens the
// artifact menu with the boss waiting; any other floor starts a battle.
func (e *Engine) AdvanceFloor(s *run.State) error {
	if s == nil {
		return ErrNilState
	}
	next := run.PhaseBattle
	if e.IsBossFloor(s.Floor + 1) {
		next = run.PhaseBossPrep
	}
	if !s.Phase.CanTransition(next) {
		return fmt.Errorf("advance floor: %w: %s -> %s", run.ErrIllegalTransition, s.Phase, next)
	}

	p := s.Player
	s.Floor++
	s.Enemies = nil
	s.Turn = 1
	p.AP = p.APMax
	p.ShieldActive = false
	p.ResetTurnFlags()

	if next == run.PhaseBossPrep {
		p.FullHeal()
		if err := e.transition(s, run.PhaseBossPrep); err != nil {
			return err
		}
		s.BossArtifacts = gen.ArtifactIDs()
		s.PendingBoss = e.gen.Boss(p)
		s.Narrate("Floor %d. The %s awaits. Choose an artifact.", s.Floor, s.PendingBoss.Name)
		return nil
	}

	if err := e.transition(s, run.PhaseBattle); err != nil {
		return err
	}
	s.Enemies = e.gen.Enemies(s.Floor, p)
	s.Narrate("You descend to floor %d.", s.Floor)
	e.announceEnemies(s)
	return nil
}

// ApplyReward takes the reward at index i.
func (e *Engine) ApplyReward(s *run.State, i int) error {
	if s == nil {
		return ErrNilState
	}
	if !expect(s, run.PhaseReward, "take a reward") {
		return nil
	}
	if i < 0 || i >= len(s.Rewards) {
		s.Narrate("There is no reward %d.", i+1)
		return nil
	}
	e.grant(s, s.Rewards[i])
	return e.afterReward(s)
}

// SkipReward leaves every reward behind.
func (e *Engine) SkipReward(s *run.State) error {
	if s == nil {
		return ErrNilState
	}
	if !expect(s, run.PhaseReward, "skip the reward") {
		return nil
	}
	s.Narrate("You leave the spoils behind.")
	return e.afterReward(s)
}

// afterReward enters a between-floor room or goes straight down. Rooms are
// never offered right before a boss floor.
func (e *Engine) afterReward(s *run.State) error {
	if e.IsBossFloor(s.Floor+1) || e.rng.Float64() >= e.rules.EventChance {
		return e.AdvanceFloor(s)
	}
	if err := e.transition(s, run.PhaseEvent); err != nil {
		return err
	}
	s.EventOptions = gen.EventOptions(s.Player)
	s.Narrate("A side passage opens.")
	return nil
}

func (e *Engine) grant(s *run.State, r run.Reward) {
	p := s.Player
	switch r.Kind {
	case run.RewardWeapon:
		if r.Weapon == nil {
			return
		}
		p.Weapon = *r.Weapon
		s.Narrate("You equip the %s.", r.Weapon.Name)
	case run.RewardUpgrade:
		if r.Upgrade == nil {
			return
		}
		e.upgrade(s, r.Name, *r.Upgrade)
	}
}

func (e *Engine) upgrade(s *run.State, name string, u run.Upgrade) {
	p := s.Player
	switch u.Kind {
	case run.UpgradeStat:
		if p.ApplyStat(u.Stat, u.Amount) {
			s.Narrate("%s: %s %+g.", name, u.Stat, u.Amount)
		} else {
			s.Narrate("%s has no effect.", name)
		}
	case run.UpgradePotion:
		if p.AddPotion(u.Potion) {
			s.Narrate("You pack a %s potion.", u.Potion)
		} else {
			s.Narrate("You cannot carry more %s potions.", u.Potion)
		}
	case run.UpgradeScroll:
		if u.Scroll != nil {
			p.Scrolls = append(p.Scrolls, *u.Scroll)
			s.Narrate("You pocket a %s.", u.Scroll.Name)
		}
	}
}

// ApplyEventChoice enters one of the offered rooms.
func (e *Engine) ApplyEventChoice(s *run.State, id string) error {
	if s == nil {
		return ErrNilState
	}
	if !expect(s, run.PhaseEvent, "go there") {
		return nil
	}
	ev := run.Event(id)
	if !slices.Contains(s.EventOptions, ev) {
		s.Narrate("There is no %q here.", id)
		return nil
	}

	p := s.Player
	switch ev {
	case run.EventCampfire:
		gain := 2 + e.rng.Intn(2)
		p.ApplyStat(run.StatHPMax, float64(gain))
		p.AddPotion(run.PotionSmall)
		s.Narrate("You rest by the fire: +%d max HP.", gain)

	case run.EventTreasure:
		s.ChestsOpened++
		if e.rng.Float64() < TreasureChance(p.Luck) {
			if r, ok := e.gen.Reward(s.Floor + TreasureLookahead); ok {
				s.TreasuresFound++
				if err := e.transition(s, run.PhaseTreasure); err != nil {
					return err
				}
				s.TreasureReward = &r
				s.Narrate("The chest holds a %s.", r.Name)
				return nil
			}
		}
		p.AddPotion(run.PotionSmall)
		s.Narrate("The chest is nearly empty. You find a small potion.")

	case run.EventAltar:
		if p.HPMax <= gen.AltarMinHPMax {
			s.Narrate("The altar rejects your frail offering.")
			return nil
		}
		p.ApplyStat(run.StatHPMax, -AltarHPCost)
		p.ApplyStat(run.StatPower, AltarPowerGain)
		s.Narrate("You bleed on the altar: -%d max HP, +%d power.", AltarHPCost, AltarPowerGain)
	}
	return e.AdvanceFloor(s)
}

// ApplyTreasureChoice takes or leaves the treasure reward, then descends.
func (e *Engine) ApplyTreasureChoice(s *run.State, equip bool) error {
	if s == nil {
		return ErrNilState
	}
	if !expect(s, run.PhaseTreasure, "open that") {
		return nil
	}
	if r := s.TreasureReward; r != nil && equip {
		e.grant(s, *r)
	} else {
		s.Narrate("You leave the treasure.")
	}
	return e.AdvanceFloor(s)
}

// ApplyBossArtifactChoice takes an artifact and starts the boss fight.
func (e *Engine) ApplyBossArtifactChoice(s *run.State, id string) error {
	if s == nil {
		return ErrNilState
	}
	if !expect(s, run.PhaseBossPrep, "take an artifact") {
		return nil
	}
	a, ok := gen.LookupArtifact(id)
	if !ok || !slices.Contains(s.BossArtifacts, id) {
		s.Narrate("There is no artifact %q.", id)
		return nil
	}

	p := s.Player
	p.ApplyStat(a.Stat, a.Amount)
	p.FullHeal()
	p.AP = p.APMax

	if err := e.transition(s, run.PhaseBattle); err != nil {
		return err
	}
	boss := e.gen.Boss(p)
	s.Enemies = []*run.Enemy{boss}
	s.Turn = 1
	s.Narrate("The %s empowers you. The %s attacks!", a.Name, boss.Name)
	return nil
}

// Abandon ends a live run.
func (e *Engine) Abandon(s *run.State) error {
	if s == nil {
		return ErrNilState
	}
	if s.Phase.Terminal() {
		return nil
	}
	s.Narrate("You abandon the delve on floor %d.", s.Floor)
	return e.transition(s, run.PhaseDead)
}
