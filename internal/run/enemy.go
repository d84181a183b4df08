package run

// Enemy is one combatant of the current encounter.
type Enemy struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	HP          int     `json:"hp"`
	MaxHP       int     `json:"max_hp"`
	Attack      int     `json:"attack"`
	Armor       int     `json:"armor"`
	Accuracy    float64 `json:"accuracy"`
	Evasion     float64 `json:"evasion"`
	BleedTurns  int     `json:"bleed_turns"`
	BleedDamage int     `json:"bleed_damage"`
	BurnTurns   int     `json:"burn_turns"`
	BurnDamage  int     `json:"burn_damage"`
	SkipTurns   int     `json:"skip_turns"`
	CountedDead bool    `json:"counted_dead"`
	Boss        bool    `json:"boss,omitempty"`
}

// Alive returns true while HP is above zero.
func (e *Enemy) Alive() bool { return e.HP > 0 }

// IsFullHP reports hp >= max_hp.
func (e *Enemy) IsFullHP() bool { return e.HP >= e.MaxHP }

// TakeDamage removes n HP, never below zero, and returns the HP actually lost.
func (e *Enemy) TakeDamage(n int) int {
	if n <= 0 || e.HP <= 0 {
		return 0
	}
	lost := min(n, e.HP)
	e.HP -= lost
	return lost
}

// ApplyBleed starts or refreshes a bleed. The magnitude never drops below
// an existing bleed.
func (e *Enemy) ApplyBleed(turns, damage int) {
	e.BleedTurns = max(e.BleedTurns, turns)
	e.BleedDamage = max(e.BleedDamage, damage)
}

// ApplyBurn starts or refreshes a burn.
func (e *Enemy) ApplyBurn(turns, damage int) {
	e.BurnTurns = max(e.BurnTurns, turns)
	e.BurnDamage = max(e.BurnDamage, damage)
}

// Freeze makes the enemy lose its next n attacks.
func (e *Enemy) Freeze(turns int) {
	e.SkipTurns = max(e.SkipTurns, turns)
}

// TickBleed applies one turn of bleed and returns the damage dealt.
func (e *Enemy) TickBleed() int {
	if e.BleedTurns <= 0 || !e.Alive() {
		return 0
	}
	dealt := e.TakeDamage(e.BleedDamage)
	e.BleedTurns--
	if e.BleedTurns == 0 {
		e.BleedDamage = 0
	}
	return dealt
}

// TickBurn applies one turn of burn and returns the damage dealt.
func (e *Enemy) TickBurn() int {
	if e.BurnTurns <= 0 || !e.Alive() {
		return 0
	}
	dealt := e.TakeDamage(e.BurnDamage)
	e.BurnTurns--
	if e.BurnTurns == 0 {
		e.BurnDamage = 0
	}
	return dealt
}

// ConsumeSkip returns true if the enemy is frozen this turn, using up one
// frozen turn.
func (e *Enemy) ConsumeSkip() bool {
	if e.SkipTurns <= 0 {
		return false
	}
	e.SkipTurns--
	return true
}
