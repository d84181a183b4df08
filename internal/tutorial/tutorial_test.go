package tutorial

import (
	"strings"
	"testing"
)

var walkthrough = []Action{
	Attack, Attack, EndTurn, Potion, Scroll, EndTurn,
	Scroll, EndTurn, Attack, EndTurn, Attack, Attack,
}

func TestWalkthroughCompletes(t *testing.T) {
	if len(walkthrough) != Steps() {
		t.Fatalf("walkthrough has %d steps, script has %d", len(walkthrough), Steps())
	}

	tut := New()
	for i, a := range walkthrough {
		if want, _ := tut.Expected(); want != a {
			t.Fatalf("step %d expects %s, walkthrough has %s", i, want, a)
		}
		tut.Apply(a)
		if tut.Step != i+1 {
			t.Fatalf("after step %d Step = %d", i, tut.Step)
		}
	}

	if tut.Outcome != Completed {
		t.Fatalf("Outcome = %s, want completed", tut.Outcome)
	}
	if tut.Golem.Alive() {
		t.Errorf("golem HP = %d, want 0", tut.Golem.HP)
	}
	if tut.Player.HP != 16 {
		t.Errorf("player HP = %d, want 16", tut.Player.HP)
	}
	if len(tut.Player.Potions) != 0 || len(tut.Player.Scrolls) != 0 {
		t.Errorf("inventory left: %v %v", tut.Player.Potions, tut.Player.Scrolls)
	}
}

func TestScriptedValues(t *testing.T) {
	tut := New()
	tut.Apply(Attack)
	if tut.Golem.HP != 34 {
		t.Errorf("golem HP after first strike = %d, want 34", tut.Golem.HP)
	}
	tut.Apply(Attack)
	if tut.Golem.HP != 34 || tut.Player.AP != 0 {
		t.Errorf("scripted miss: golem HP %d AP %d", tut.Golem.HP, tut.Player.AP)
	}
	tut.Apply(EndTurn)
	if tut.Player.HP != 18 || tut.Player.AP != 2 {
		t.Errorf("after slam HP/AP = %d/%d, want 18/2", tut.Player.HP, tut.Player.AP)
	}
	tut.Apply(Potion)
	if tut.Player.HP != 24 {
		t.Errorf("after potion HP = %d, want 24", tut.Player.HP)
	}
	tut.Apply(Scroll)
	tut.Apply(EndTurn)
	if tut.Golem.HP != 31 || tut.Golem.BurnTurns != 1 {
		t.Errorf("after burn tick golem = %d HP, %d burn turns", tut.Golem.HP, tut.Golem.BurnTurns)
	}
	tut.Apply(Scroll)
	hp := tut.Player.HP
	tut.Apply(EndTurn)
	if tut.Player.HP != hp {
		t.Errorf("frozen golem hit the player: HP %d -> %d", hp, tut.Player.HP)
	}
	if tut.Golem.SkipTurns != 0 {
		t.Errorf("SkipTurns = %d, want 0", tut.Golem.SkipTurns)
	}
}

func TestWrongActionKeepsStep(t *testing.T) {
	tut := New()
	tut.Apply(Potion)

	if tut.Step != 0 {
		t.Errorf("Step = %d, want 0", tut.Step)
	}
	if tut.Golem.HP != golemHP || len(tut.Player.Potions) != 1 {
		t.Error("wrong action changed state")
	}
	if !strings.HasPrefix(tut.Log[len(tut.Log)-1], "Not yet.") {
		t.Errorf("log = %q, want hint", tut.Log[len(tut.Log)-1])
	}
}

func TestForfeitIsTerminal(t *testing.T) {
	tut := New()
	tut.Apply(Attack)
	tut.Forfeit()

	if tut.Outcome != Failed {
		t.Fatalf("Outcome = %s, want failed", tut.Outcome)
	}
	step := tut.Step
	tut.Apply(Attack)
	if tut.Step != step || tut.Outcome != Failed {
		t.Errorf("action after forfeit changed state: step %d outcome %s", tut.Step, tut.Outcome)
	}
	if _, ok := tut.Expected(); ok {
		t.Error("Expected should report nothing after forfeit")
	}
}

func TestDeathFails(t *testing.T) {
	tut := New()
	tut.Player.HP = 0
	tut.Apply(Attack)

	if tut.Outcome != Failed {
		t.Errorf("Outcome = %s, want failed", tut.Outcome)
	}
}

func TestCompletedIsTerminal(t *testing.T) {
	tut := New()
	for _, a := range walkthrough {
		tut.Apply(a)
	}
	tut.Forfeit()
	if tut.Outcome != Completed {
		t.Errorf("Forfeit after completion changed outcome to %s", tut.Outcome)
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		input string
		want  Action
		ok    bool
	}{
		{"attack", Attack, true},
		{"end", EndTurn, true},
		{"end_turn", EndTurn, true},
		{"scroll", Scroll, true},
		{"dance", "", false},
	}

	for _, tc := range tests {
		got, ok := ParseAction(tc.input)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseAction(%q) = %q, %v, want %q, %v", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}
