// Package hero defines the playable classes and their passive bonuses.
//
// Every bonus is a pure function of the player, the optional target and the
// trigger being evaluated. Heroes never mutate state; the combat resolver
// reads the returned Bonus and applies it, including any one-shot flags.
package hero

import (
	"strings"

	"github.com/lawnchairsociety/deepdelve/internal/run"
)

// ID identifies a hero class.
type ID string

const (
	Wanderer  ID = "wanderer"
	RuneGuard ID = "rune_guard"
	Berserk   ID = "berserk"
	Assassin  ID = "assassin"
)

// Trigger is the moment a passive is evaluated at.
type Trigger int

const (
	// OnAttack is evaluated for every outgoing attack, before the hit roll.
	OnAttack Trigger = iota
	// OnKill is evaluated when an attack kills its target.
	OnKill
	// OnTurnStart is evaluated after AP is reset for a new turn.
	OnTurnStart
	// OnTurnEnd is evaluated when the player ends a turn, before AP reset.
	OnTurnEnd
	// OnDamageTaken is evaluated after each enemy hit lands.
	OnDamageTaken
	// OnPotion is evaluated when a potion is drunk.
	OnPotion
)

// Context is what a passive may look at.
type Context struct {
	Player *run.Player
	Target *run.Enemy
	// Damage is the killing blow for OnKill and the hit size for OnDamageTaken.
	Damage int
}

// Bonus is the combined effect of a hero's passives for one trigger.
type Bonus struct {
	AutoHit       bool
	IgnoreEvasion bool
	IgnoreArmor   bool
	ArmorIgnore   float64
	Accuracy      float64
	DamageMult    float64
	FreeAttack    bool
	ExtraAP       int
	ExtraArmor    int
	ExtraHeal     int
	Echo          float64

	// Flag changes the resolver must commit.
	UseDesperateCharge bool
	ConsumePierce      bool
	ArmPierce          bool
}

// Hero is a playable class.
type Hero interface {
	ID() ID
	Name() string
	Description() string
	// Adjust applies the class's starting stat changes to a new player.
	Adjust(p *run.Player)
	// Bonus returns the passive effect for a trigger.
	Bonus(trigger Trigger, ctx Context) Bonus
}

var heroes = map[ID]Hero{
	Wanderer:  wanderer{},
	RuneGuard: runeGuard{},
	Berserk:   berserk{},
	Assassin:  assassin{},
}

// All returns every hero in display order.
func All() []Hero {
	return []Hero{heroes[Wanderer], heroes[RuneGuard], heroes[Berserk], heroes[Assassin]}
}

// Get returns the hero for an id. Unknown or empty ids resolve to Wanderer.
func Get(id string) Hero {
	if h, ok := heroes[ID(normalize(id))]; ok {
		return h
	}
	return heroes[Wanderer]
}

// Known reports whether id names a hero without falling back.
func Known(id string) bool {
	_, ok := heroes[ID(normalize(id))]
	return ok
}

func normalize(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(id)
}

// RageBonus returns the Berserk damage bonus for an HP ratio. Tiers are
// checked high to low; an empty HP bar gives nothing.
func RageBonus(ratio float64) float64 {
	switch {
	case ratio <= 0:
		return 0
	case ratio >= 0.7:
		return 0.10
	case ratio >= 0.4:
		return 0.25
	case ratio >= 0.2:
		return 0.45
	default:
		return 0.65
	}
}
