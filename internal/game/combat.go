package game

import (
	"math"

	"github.com/lawnchairsociety/deepdelve/internal/gen"
	"github.com/lawnchairsociety/deepdelve/internal/hero"
	"github.com/lawnchairsociety/deepdelve/internal/run"
)

// Hit chance bounds for every roll.
const (
	MinHitChance = 0.15
	MaxHitChance = 0.95
)

// BleedTurns is how long a weapon bleed lasts.
const BleedTurns = 2

// HitChance is the base accuracy-versus-evasion roll.
func HitChance(accuracy, evasion float64) float64 {
	return math.Max(MinHitChance, math.Min(MaxHitChance, accuracy-evasion))
}

// PlayerHitChance returns the chance that p's next attack on target lands,
// class passives included.
func PlayerHitChance(h hero.Hero, p *run.Player, target *run.Enemy) float64 {
	return playerHitChance(p, target, h.Bonus(hero.OnAttack, hero.Context{Player: p, Target: target}))
}

func playerHitChance(p *run.Player, target *run.Enemy, b hero.Bonus) float64 {
	if b.AutoHit {
		return 1
	}
	evasion := target.Evasion
	if b.IgnoreEvasion {
		evasion = 0
	}
	return HitChance(p.Accuracy+p.Weapon.AccuracyBonus+b.Accuracy, evasion)
}

// Damage computes an attack's damage before class multipliers: the roll
// plus power, minus the unpierced part of armor, never below 1.
func Damage(roll, power, armor int, pierce float64) int {
	pierce = math.Max(0, math.Min(1, pierce))
	dmg := math.Floor(float64(roll+power) - float64(armor)*(1-pierce))
	return max(1, int(dmg))
}

func (e *Engine) playerDamage(p *run.Player, target *run.Enemy, b hero.Bonus) int {
	armor := target.Armor
	if b.IgnoreArmor {
		armor = 0
	}
	roll := gen.Roll(e.rng, p.Weapon.MinDmg, p.Weapon.MaxDmg)
	dmg := Damage(roll, p.Power, armor, p.Weapon.ArmorPierce+b.ArmorIgnore)
	if b.DamageMult > 0 {
		dmg = int(float64(dmg) * (1 + b.DamageMult))
	}
	return max(1, dmg)
}

// PlayerAttack spends one AP to strike the first living enemy.
func (e *Engine) PlayerAttack(s *run.State) error {
	if s == nil {
		return ErrNilState
	}
	if !expect(s, run.PhaseBattle, "attack") {
		return nil
	}
	target := s.FirstLiving()
	if target == nil {
		return e.CheckBattleEnd(s)
	}

	p := s.Player
	h := hero.Get(s.Hero)
	b := h.Bonus(hero.OnAttack, hero.Context{Player: p, Target: target})

	if !b.FreeAttack && p.AP <= 0 {
		s.Narrate("You are out of AP. End your turn.")
		return nil
	}
	if b.FreeAttack {
		p.DesperateChargeUsed = true
		s.Narrate("Desperate charge!")
	} else {
		p.SpendAP(1)
	}
	p.AttacksThisTurn++

	if e.rng.Float64() >= playerHitChance(p, target, b) {
		s.Narrate("You miss the %s.", target.Name)
		return e.CheckBattleEnd(s)
	}

	if b.ConsumePierce {
		p.PierceReady = false
	}
	dmg := e.playerDamage(p, target, b)
	target.TakeDamage(dmg)
	s.Narrate("You hit the %s for %d.", target.Name, dmg)

	if ratio := p.Weapon.SplashRatio; ratio > 0 {
		if splash := int(float64(dmg) * ratio); splash > 0 {
			for _, other := range s.LivingEnemies() {
				if other != target {
					other.TakeDamage(splash)
				}
			}
		}
	}

	if target.Alive() && p.Weapon.BleedChance > 0 && e.rng.Float64() < p.Weapon.BleedChance {
		target.ApplyBleed(BleedTurns, p.Weapon.BleedDamage)
		s.Narrate("The %s starts bleeding.", target.Name)
	}

	if !target.Alive() {
		kb := h.Bonus(hero.OnKill, hero.Context{Player: p, Target: target, Damage: dmg})
		if echo := int(float64(dmg) * kb.Echo); echo > 0 {
			for _, other := range s.LivingEnemies() {
				other.TakeDamage(echo)
			}
			s.Narrate("The kill echoes for %d.", echo)
		}
		p.KilledThisTurn = true
	}

	return e.CheckBattleEnd(s)
}

// PlayerUsePotion drinks the most recently acquired potion.
func (e *Engine) PlayerUsePotion(s *run.State) error {
	if s == nil {
		return ErrNilState
	}
	if !expect(s, run.PhaseBattle, "drink a potion") {
		return nil
	}

	p := s.Player
	tier, ok := p.PopPotion()
	if !ok {
		s.Narrate("You have no potions.")
		return nil
	}
	b := hero.Get(s.Hero).Bonus(hero.OnPotion, hero.Context{Player: p})
	healed := p.Heal(tier.Heal() + b.ExtraHeal)
	p.RestoreAP(tier.AP())
	s.Narrate("You drink a %s potion and recover %d HP.", tier, healed)
	return e.CheckBattleEnd(s)
}

// PlayerUseScroll reads the scroll at index i. Scrolls cost no AP.
func (e *Engine) PlayerUseScroll(s *run.State, i int) error {
	if s == nil {
		return ErrNilState
	}
	if !expect(s, run.PhaseBattle, "read a scroll") {
		return nil
	}

	p := s.Player
	sc, ok := p.TakeScroll(i)
	if !ok {
		if len(p.Scrolls) == 0 {
			s.Narrate("You have no scrolls.")
		} else {
			s.Narrate("There is no scroll %d.", i+1)
		}
		return nil
	}

	switch sc.Kind {
	case run.ScrollFire:
		for _, en := range s.LivingEnemies() {
			en.ApplyBurn(max(1, sc.Turns), sc.Power)
		}
		s.Narrate("Flames engulf your foes.")
	case run.ScrollIce:
		if target := s.FirstLiving(); target != nil {
			target.Freeze(max(1, sc.Turns))
			s.Narrate("The %s is frozen solid.", target.Name)
		}
	case run.ScrollLightning:
		for _, en := range s.LivingEnemies() {
			en.TakeDamage(sc.Power)
		}
		s.Narrate("Lightning strikes for %d.", sc.Power)
	case run.ScrollMending:
		s.Narrate("You recover %d HP.", p.Heal(sc.Power))
	default:
		s.Narrate("The %s crumbles to dust.", sc.Name)
	}
	return e.CheckBattleEnd(s)
}

// EndTurn resolves the enemy phase and starts the next player turn.
func (e *Engine) EndTurn(s *run.State) error {
	if s == nil {
		return ErrNilState
	}
	if !expect(s, run.PhaseBattle, "end the turn") {
		return nil
	}

	p := s.Player
	h := hero.Get(s.Hero)

	shield := h.Bonus(hero.OnTurnEnd, hero.Context{Player: p}).ExtraArmor
	p.ShieldActive = shield > 0
	if p.ShieldActive {
		s.Narrate("Runes flare: +%d armor.", shield)
	}
	p.AP = p.APMax

	for _, en := range s.LivingEnemies() {
		if d := en.TickBleed(); d > 0 {
			s.Narrate("The %s bleeds for %d.", en.Name, d)
		}
		if d := en.TickBurn(); d > 0 {
			s.Narrate("The %s burns for %d.", en.Name, d)
		}
	}
	s.TallyKills()

	for _, en := range s.LivingEnemies() {
		if en.ConsumeSkip() {
			s.Narrate("The %s is frozen and cannot act.", en.Name)
			continue
		}
		if e.rng.Float64() >= HitChance(en.Accuracy, p.Evasion) {
			s.Narrate("The %s misses.", en.Name)
			continue
		}
		dmg := max(1, en.Attack-(p.Armor+shield))
		p.TakeDamage(dmg)
		s.Narrate("The %s hits you for %d.", en.Name, dmg)

		if h.Bonus(hero.OnDamageTaken, hero.Context{Player: p, Target: en, Damage: dmg}).ArmPierce {
			p.PierceReady = true
		}
		if !p.Alive() {
			p.ShieldActive = false
			s.Narrate("You fall on floor %d.", s.Floor)
			return e.transition(s, run.PhaseDead)
		}
	}

	p.ShieldActive = false
	p.ResetTurnFlags()
	// Turn-start AP is capped at APMax, so after the reset above it cannot
	// raise AP further.
	p.RestoreAP(h.Bonus(hero.OnTurnStart, hero.Context{Player: p}).ExtraAP)
	s.Turn++
	return e.CheckBattleEnd(s)
}

// CheckBattleEnd moves a won battle to the reward phase. It runs after every
// combat action and is a no-op while enemies remain.
func (e *Engine) CheckBattleEnd(s *run.State) error {
	if s == nil {
		return ErrNilState
	}
	if s.Phase != run.PhaseBattle || s.FirstLiving() != nil {
		return nil
	}

	s.TallyKills()
	boss := false
	for _, en := range s.Enemies {
		if en.Boss {
			boss = true
		}
	}
	if boss {
		s.BossDefeated = true
		s.Narrate("The boss of floor %d is slain!", s.Floor)
	} else {
		s.Narrate("Floor %d cleared.", s.Floor)
	}

	if err := e.transition(s, run.PhaseReward); err != nil {
		return err
	}
	s.Rewards = e.gen.Rewards(s.Floor+1, gen.RewardCount)
	if len(s.Rewards) == 0 {
		s.Narrate("Nothing of value remains.")
		return e.afterReward(s)
	}
	return nil
}
