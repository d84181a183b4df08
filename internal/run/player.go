package run

// PotionTier identifies a potion strength.
type PotionTier string

const (
	PotionSmall  PotionTier = "small"
	PotionMedium PotionTier = "medium"
	PotionStrong PotionTier = "strong"
)

// potionStats holds per-tier heal, AP restore and carry cap.
var potionStats = map[PotionTier]struct {
	Heal, AP, Cap int
}{
	PotionSmall:  {Heal: 6, AP: 1, Cap: 10},
	PotionMedium: {Heal: 12, AP: 1, Cap: 5},
	PotionStrong: {Heal: 25, AP: 2, Cap: 2},
}

// IsValid returns true for a known tier
func (t PotionTier) IsValid() bool {
	_, ok := potionStats[t]
	return ok
}

// Cap returns the maximum number of potions of this tier a player may carry.
func (t PotionTier) Cap() int { return potionStats[t].Cap }

// Heal returns the HP restored by this tier.
func (t PotionTier) Heal() int { return potionStats[t].Heal }

// AP returns the action points restored by this tier.
func (t PotionTier) AP() int { return potionStats[t].AP }

// Player is the single hero of a run.
type Player struct {
	HP       int          `json:"hp"`
	HPMax    int          `json:"hp_max"`
	AP       int          `json:"ap"`
	APMax    int          `json:"ap_max"`
	Armor    int          `json:"armor"`
	Accuracy float64      `json:"accuracy"`
	Evasion  float64      `json:"evasion"`
	Power    int          `json:"power"`
	Luck     float64      `json:"luck"`
	Weapon   Weapon       `json:"weapon"`
	Potions  []PotionTier `json:"potions"`
	Scrolls  []Scroll     `json:"scrolls"`

	// Class flags. DesperateChargeUsed lasts the whole run, the rest reset
	// every turn or on use.
	DesperateChargeUsed bool `json:"desperate_charge_used"`
	ShieldActive        bool `json:"shield_active"`
	PierceReady         bool `json:"pierce_ready"`
	AttacksThisTurn     int  `json:"attacks_this_turn"`
	KilledThisTurn      bool `json:"killed_this_turn"`
}

// Base player stats before class adjustment.
const (
	BaseHP       = 30
	BaseAP       = 2
	BaseAccuracy = 0.75
	BaseEvasion  = 0.05
	BaseLuck     = 0.1
)

// NewPlayer returns a fresh, unadjusted player holding the given weapon and
// one small potion.
func NewPlayer(w Weapon) *Player {
	return &Player{
		HP:       BaseHP,
		HPMax:    BaseHP,
		AP:       BaseAP,
		APMax:    BaseAP,
		Accuracy: BaseAccuracy,
		Evasion:  BaseEvasion,
		Luck:     BaseLuck,
		Weapon:   w,
		Potions:  []PotionTier{PotionSmall},
	}
}

// Alive returns true while HP is above zero.
func (p *Player) Alive() bool { return p.HP > 0 }

// IsFullHP reports hp >= hp_max.
func (p *Player) IsFullHP() bool { return p.HP >= p.HPMax }

// IsLastBreath reports a living player at or below a third of max HP.
func (p *Player) IsLastBreath() bool {
	return p.HP > 0 && p.HP*3 <= p.HPMax
}

// HPRatio returns hp/hp_max in [0,1].
func (p *Player) HPRatio() float64 {
	if p.HPMax <= 0 {
		return 0
	}
	return float64(p.HP) / float64(p.HPMax)
}

// Heal restores up to n HP without exceeding the cap and returns the amount healed.
func (p *Player) Heal(n int) int {
	if n <= 0 {
		return 0
	}
	before := p.HP
	p.HP = min(p.HPMax, p.HP+n)
	return p.HP - before
}

// FullHeal restores HP to max.
func (p *Player) FullHeal() { p.HP = p.HPMax }

// RestoreAP adds up to n AP without exceeding the cap.
func (p *Player) RestoreAP(n int) {
	if n <= 0 {
		return
	}
	p.AP = min(p.APMax, p.AP+n)
}

// SpendAP removes n AP, never below zero.
func (p *Player) SpendAP(n int) {
	p.AP = max(0, p.AP-n)
}

// TakeDamage removes n HP, never below zero.
func (p *Player) TakeDamage(n int) {
	if n <= 0 {
		return
	}
	p.HP = max(0, p.HP-n)
}

// CountPotions returns how many potions of tier t are carried.
func (p *Player) CountPotions(t PotionTier) int {
	n := 0
	for _, pt := range p.Potions {
		if pt == t {
			n++
		}
	}
	return n
}

// AddPotion pushes a potion onto the stack unless its tier is at cap.
func (p *Player) AddPotion(t PotionTier) bool {
	if !t.IsValid() || p.CountPotions(t) >= t.Cap() {
		return false
	}
	p.Potions = append(p.Potions, t)
	return true
}

// PopPotion removes and returns the most recently acquired potion.
func (p *Player) PopPotion() (PotionTier, bool) {
	if len(p.Potions) == 0 {
		return "", false
	}
	last := p.Potions[len(p.Potions)-1]
	p.Potions = p.Potions[:len(p.Potions)-1]
	return last, true
}

// TakeScroll removes and returns the scroll at index i.
func (p *Player) TakeScroll(i int) (Scroll, bool) {
	if i < 0 || i >= len(p.Scrolls) {
		return Scroll{}, false
	}
	sc := p.Scrolls[i]
	p.Scrolls = append(p.Scrolls[:i:i], p.Scrolls[i+1:]...)
	return sc, true
}

// Stat names accepted by ApplyStat.
const (
	StatHPMax    = "hp_max"
	StatAPMax    = "ap_max"
	StatArmor    = "armor"
	StatPower    = "power"
	StatAccuracy = "accuracy"
	StatEvasion  = "evasion"
	StatLuck     = "luck"
)

// ApplyStat adds a signed amount to a named stat and keeps every stat in its
// legal range. Returns false for an unknown stat name.
func (p *Player) ApplyStat(stat string, amount float64) bool {
	n := int(amount)
	switch stat {
	case StatHPMax:
		p.HPMax = max(1, p.HPMax+n)
		if n > 0 {
			p.HP += n
		}
		p.HP = min(p.HP, p.HPMax)
	case StatAPMax:
		p.APMax = max(1, p.APMax+n)
		if n > 0 {
			p.AP += n
		}
		p.AP = min(p.AP, p.APMax)
	case StatArmor:
		p.Armor += n
	case StatPower:
		p.Power += n
	case StatAccuracy:
		p.Accuracy = clamp(p.Accuracy+amount, 0, 1)
	case StatEvasion:
		p.Evasion = clamp(p.Evasion+amount, 0, 0.6)
	case StatLuck:
		p.Luck = clamp(p.Luck+amount, 0, 1)
	default:
		return false
	}
	return true
}

// ResetTurnFlags clears the per-turn class flags.
func (p *Player) ResetTurnFlags() {
	p.AttacksThisTurn = 0
	p.KilledThisTurn = false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
