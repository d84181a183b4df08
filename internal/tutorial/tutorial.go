// Package tutorial runs the fixed training fight. It shares the combat
// primitives of a real run but every number is scripted, so the lesson
// plays out the same way each time.
package tutorial

import (
	"fmt"

	"github.com/lawnchairsociety/deepdelve/internal/run"
)

// Action is something the player can do in the tutorial.
type Action string

const (
	Attack  Action = "attack"
	Potion  Action = "potion"
	Scroll  Action = "scroll"
	EndTurn Action = "end_turn"
)

// Outcome is the tutorial's overall status.
type Outcome string

const (
	InProgress Outcome = "in_progress"
	Completed  Outcome = "completed"
	Failed     Outcome = "failed"
)

// Scripted values.
const (
	golemHP     = 40
	strikeDmg   = 6
	slamDmg     = 12
	jabDmg      = 4
	burnDmg     = 3
	burnTurns   = 2
	bleedDmg    = 2
	bleedTurns  = 2
	freezeTurns = 1
)

// Tutorial is the state of one training session.
type Tutorial struct {
	Step    int         `json:"step"`
	Outcome Outcome     `json:"outcome"`
	Player  *run.Player `json:"player"`
	Golem   *run.Enemy  `json:"golem"`
	Log     []string    `json:"log"`
}

type step struct {
	expect Action
	hint   string
	do     func(t *Tutorial)
}

var script = []step{
	{Attack, "Attack the golem.", func(t *Tutorial) {
		t.strike(strikeDmg)
	}},
	{Attack, "Attack again.", func(t *Tutorial) {
		t.Player.SpendAP(1)
		t.narrate("The golem sidesteps. Even good swings miss sometimes.")
	}},
	{EndTurn, "You are out of AP. End your turn.", func(t *Tutorial) {
		t.enemyHit(slamDmg)
	}},
	{Potion, "You are hurt. Drink your potion.", func(t *Tutorial) {
		tier, _ := t.Player.PopPotion()
		healed := t.Player.Heal(tier.Heal())
		t.Player.RestoreAP(tier.AP())
		t.narrate("You drink the potion and recover %d HP.", healed)
	}},
	{Scroll, "Read the fire scroll.", func(t *Tutorial) {
		t.Player.TakeScroll(0)
		t.Golem.ApplyBurn(burnTurns, burnDmg)
		t.narrate("Flames wrap the golem. It will burn for %d turns.", burnTurns)
	}},
	{EndTurn, "End your turn and watch it burn.", func(t *Tutorial) {
		t.ticks()
		t.enemyHit(jabDmg)
	}},
	{Scroll, "Read the ice scroll.", func(t *Tutorial) {
		t.Player.TakeScroll(0)
		t.Golem.Freeze(freezeTurns)
		t.narrate("The golem is frozen solid.")
	}},
	{EndTurn, "End your turn. Frozen enemies cannot act.", func(t *Tutorial) {
		t.Player.AP = t.Player.APMax
		t.ticks()
		t.Golem.ConsumeSkip()
		t.narrate("The golem strains against the ice and does nothing.")
	}},
	{Attack, "Attack. Your blade opens a wound.", func(t *Tutorial) {
		t.strike(strikeDmg)
		t.Golem.ApplyBleed(bleedTurns, bleedDmg)
		t.narrate("The golem is bleeding.")
	}},
	{EndTurn, "End your turn. Bleeding hurts every turn.", func(t *Tutorial) {
		t.ticks()
		t.enemyHit(jabDmg)
	}},
	{Attack, "Attack.", func(t *Tutorial) {
		t.strike(strikeDmg)
	}},
	{Attack, "Finish it!", func(t *Tutorial) {
		t.Player.SpendAP(1)
		t.Golem.TakeDamage(t.Golem.HP)
		t.narrate("Your final blow shatters the golem.")
	}},
}

// Steps returns the number of scripted steps.
func Steps() int { return len(script) }

// New starts a tutorial with a fresh player and training golem.
func New() *Tutorial {
	p := run.NewPlayer(run.Weapon{ID: "training_sword", Name: "Training Sword", MinDmg: strikeDmg, MaxDmg: strikeDmg, Level: 1})
	p.Scrolls = []run.Scroll{
		{ID: "fire", Name: "Scroll of Fire", Kind: run.ScrollFire, Power: burnDmg, Turns: burnTurns},
		{ID: "ice", Name: "Scroll of Ice", Kind: run.ScrollIce, Turns: freezeTurns},
	}
	t := &Tutorial{
		Outcome: InProgress,
		Player:  p,
		Golem:   &run.Enemy{ID: "training_golem", Name: "Training Golem", HP: golemHP, MaxHP: golemHP, Attack: jabDmg},
	}
	t.narrate(script[0].hint)
	return t
}

// ParseAction maps user input to an action.
func ParseAction(s string) (Action, bool) {
	switch Action(s) {
	case Attack, Potion, Scroll, EndTurn:
		return Action(s), true
	}
	if s == "end" {
		return EndTurn, true
	}
	return "", false
}

// Expected returns the action the current step waits for.
func (t *Tutorial) Expected() (Action, bool) {
	if t.Done() {
		return "", false
	}
	return script[t.Step].expect, true
}

// Done reports whether the tutorial reached a terminal outcome.
func (t *Tutorial) Done() bool {
	return t.Outcome == Completed || t.Outcome == Failed
}

// Apply performs an action. A wrong action only repeats the hint.
func (t *Tutorial) Apply(a Action) {
	if t.Done() {
		t.narrate("The tutorial is over.")
		return
	}
	if !t.Player.Alive() {
		t.fail()
		return
	}

	cur := script[t.Step]
	if a != cur.expect {
		t.narrate("Not yet. %s", cur.hint)
		return
	}

	cur.do(t)
	t.Step++

	switch {
	case !t.Player.Alive():
		t.fail()
	case t.Step >= len(script) && !t.Golem.Alive():
		t.Outcome = Completed
		t.narrate("Training complete. The dungeon awaits.")
	case t.Step < len(script):
		t.narrate(script[t.Step].hint)
	}
}

// Forfeit gives up the tutorial.
func (t *Tutorial) Forfeit() {
	if t.Done() {
		return
	}
	t.fail()
}

func (t *Tutorial) fail() {
	t.Outcome = Failed
	t.narrate("Training failed.")
}

func (t *Tutorial) strike(dmg int) {
	t.Player.SpendAP(1)
	t.Golem.TakeDamage(dmg)
	t.narrate("You hit the golem for %d.", dmg)
}

func (t *Tutorial) enemyHit(dmg int) {
	t.Player.AP = t.Player.APMax
	t.Player.TakeDamage(dmg)
	t.narrate("The golem hits you for %d.", dmg)
}

func (t *Tutorial) ticks() {
	if d := t.Golem.TickBurn(); d > 0 {
		t.narrate("The golem burns for %d.", d)
	}
	if d := t.Golem.TickBleed(); d > 0 {
		t.narrate("The golem bleeds for %d.", d)
	}
}

func (t *Tutorial) narrate(format string, args ...any) {
	line := format
	if len(args) > 0 {
		line = fmt.Sprintf(format, args...)
	}
	t.Log = append(t.Log, line)
	if len(t.Log) > run.LogSize {
		t.Log = append([]string(nil), t.Log[len(t.Log)-run.LogSize:]...)
	}
}
