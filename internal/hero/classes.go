package hero

import "github.com/lawnchairsociety/deepdelve/internal/run"

type wanderer struct{}

func (wanderer) ID() ID       { return Wanderer }
func (wanderer) Name() string { return "Wanderer" }
func (wanderer) Description() string {
	return "Balanced traveler. Never misses at last breath, hits harder unhurt."
}

func (wanderer) Adjust(*run.Player) {}

func (wanderer) Bonus(trigger Trigger, ctx Context) Bonus {
	var b Bonus
	if trigger != OnAttack {
		return b
	}
	p := ctx.Player
	if p.IsLastBreath() {
		b.AutoHit = true
	}
	if p.IsFullHP() {
		b.DamageMult += 0.10
	}
	return b
}

type runeGuard struct{}

func (runeGuard) ID() ID       { return RuneGuard }
func (runeGuard) Name() string { return "Rune Guard" }
func (runeGuard) Description() string {
	return "Armored warden. Shields up at 0 AP, answers heavy blows with piercing strikes."
}

func (runeGuard) Adjust(p *run.Player) {
	p.HPMax += 6
	p.HP = p.HPMax
	p.Armor++
	p.Evasion = max(0, p.Evasion-0.03)
}

func (runeGuard) Bonus(trigger Trigger, ctx Context) Bonus {
	var b Bonus
	p := ctx.Player
	switch trigger {
	case OnAttack:
		if p.IsLastBreath() && !p.DesperateChargeUsed && p.AttacksThisTurn == 0 {
			b.FreeAttack = true
			b.Accuracy += 0.25
			b.UseDesperateCharge = true
		}
		if p.PierceReady {
			b.ArmorIgnore += 0.30
			b.ConsumePierce = true
		}
	case OnTurnEnd:
		if p.AP == 0 {
			b.ExtraArmor = 2
		}
	case OnDamageTaken:
		if ctx.Damage*4 > p.HPMax {
			b.ArmPierce = true
		}
	case OnTurnStart:
		if p.IsFullHP() {
			b.ExtraAP = 1
		}
	}
	return b
}

type berserk struct{}

func (berserk) ID() ID       { return Berserk }
func (berserk) Name() string { return "Berserk" }
func (berserk) Description() string {
	return "Reckless fighter. The lower the HP, the harder the swing."
}

func (berserk) Adjust(p *run.Player) {
	p.HPMax += 4
	p.HP = p.HPMax
	p.Armor--
}

func (berserk) Bonus(trigger Trigger, ctx Context) Bonus {
	var b Bonus
	if trigger == OnAttack {
		b.DamageMult = RageBonus(ctx.Player.HPRatio())
	}
	return b
}

type assassin struct{}

func (assassin) ID() ID       { return Assassin }
func (assassin) Name() string { return "Assassin" }
func (assassin) Description() string {
	return "Fragile killer. Backstabs fresh targets and echoes the first kill of each turn."
}

func (assassin) Adjust(p *run.Player) {
	p.HPMax -= 6
	p.HP = p.HPMax
	p.Armor--
	p.Evasion += 0.06
	p.Accuracy += 0.08
}

func (assassin) Bonus(trigger Trigger, ctx Context) Bonus {
	var b Bonus
	p := ctx.Player
	switch trigger {
	case OnAttack:
		if p.IsFullHP() {
			b.DamageMult += 0.40
		}
		if ctx.Target != nil && ctx.Target.IsFullHP() {
			b.DamageMult += 0.20
		}
		if p.IsLastBreath() {
			b.IgnoreArmor = true
			b.IgnoreEvasion = true
		}
	case OnKill:
		if !p.KilledThisTurn {
			b.Echo = 0.5
		}
	case OnPotion:
		b.ExtraHeal = 2
	}
	return b
}
