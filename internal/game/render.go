package game

import (
	"fmt"
	"strings"

	"github.com/lawnchairsociety/deepdelve/internal/gen"
	"github.com/lawnchairsociety/deepdelve/internal/hero"
	"github.com/lawnchairsociety/deepdelve/internal/run"
)

// Render returns a plain-text view of a run for display. It is not parsed
// back and carries no state of its own.
func Render(s *run.State) string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	p := s.Player
	h := hero.Get(s.Hero)

	fmt.Fprintf(&b, "== Floor %d | %s | %s ==\n", s.Floor, h.Name(), s.Phase)
	if p != nil {
		fmt.Fprintf(&b, "HP %d/%d  AP %d/%d  Armor %d  Power %d\n", p.HP, p.HPMax, p.AP, p.APMax, p.Armor, p.Power)
		fmt.Fprintf(&b, "Weapon: %s (%d-%d, lvl %d)\n", p.Weapon.Name, p.Weapon.MinDmg, p.Weapon.MaxDmg, p.Weapon.Level)
		if len(p.Potions) > 0 {
			fmt.Fprintf(&b, "Potions: %s\n", potionSummary(p))
		}
		if len(p.Scrolls) > 0 {
			names := make([]string, len(p.Scrolls))
			for i, sc := range p.Scrolls {
				names[i] = fmt.Sprintf("%d) %s", i+1, sc.Name)
			}
			fmt.Fprintf(&b, "Scrolls: %s\n", strings.Join(names, ", "))
		}
	}

	switch s.Phase {
	case run.PhaseBattle:
		for _, en := range s.Enemies {
			if !en.Alive() {
				continue
			}
			fmt.Fprintf(&b, "  %s  HP %d/%d  ATK %d%s\n", en.Name, en.HP, en.MaxHP, en.Attack, statusTags(en))
		}
	case run.PhaseReward:
		b.WriteString("Choose a reward:\n")
		for i, r := range s.Rewards {
			fmt.Fprintf(&b, "  %d) %s\n", i+1, describeReward(r))
		}
	case run.PhaseEvent:
		b.WriteString("Choose a path:\n")
		for _, ev := range s.EventOptions {
			fmt.Fprintf(&b, "  - %s\n", ev)
		}
	case run.PhaseTreasure:
		if s.TreasureReward != nil {
			fmt.Fprintf(&b, "Treasure: %s (take or leave)\n", describeReward(*s.TreasureReward))
		}
	case run.PhaseBossPrep:
		if s.PendingBoss != nil {
			fmt.Fprintf(&b, "Ahead: %s  HP %d  ATK %d\n", s.PendingBoss.Name, s.PendingBoss.MaxHP, s.PendingBoss.Attack)
		}
		b.WriteString("Choose an artifact:\n")
		for _, id := range s.BossArtifacts {
			if a, ok := gen.LookupArtifact(id); ok {
				fmt.Fprintf(&b, "  - %s: %s (%s)\n", a.ID, a.Name, a.Description)
			}
		}
	case run.PhaseDead:
		fmt.Fprintf(&b, "The run is over. Kills: %d\n", s.TotalKills())
	}

	for _, line := range s.Log {
		fmt.Fprintf(&b, "> %s\n", line)
	}
	return b.String()
}

func potionSummary(p *run.Player) string {
	var parts []string
	for _, t := range []run.PotionTier{run.PotionSmall, run.PotionMedium, run.PotionStrong} {
		if n := p.CountPotions(t); n > 0 {
			parts = append(parts, fmt.Sprintf("%s x%d", t, n))
		}
	}
	return strings.Join(parts, ", ")
}

func statusTags(en *run.Enemy) string {
	var tags []string
	if en.BleedTurns > 0 {
		tags = append(tags, "bleeding")
	}
	if en.BurnTurns > 0 {
		tags = append(tags, "burning")
	}
	if en.SkipTurns > 0 {
		tags = append(tags, "frozen")
	}
	if len(tags) == 0 {
		return ""
	}
	return " [" + strings.Join(tags, ", ") + "]"
}

func describeReward(r run.Reward) string {
	switch {
	case r.Kind == run.RewardWeapon && r.Weapon != nil:
		return fmt.Sprintf("%s (weapon %d-%d)", r.Name, r.Weapon.MinDmg, r.Weapon.MaxDmg)
	case r.Upgrade != nil && r.Upgrade.Kind == run.UpgradeStat:
		return fmt.Sprintf("%s (%s %+g)", r.Name, r.Upgrade.Stat, r.Upgrade.Amount)
	default:
		return r.Name
	}
}
