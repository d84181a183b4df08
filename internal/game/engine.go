// Package game drives a run: it resolves combat actions and moves a run
// between floors. Every entry point applies one synchronous transition to a
// caller-owned run.State.
//
// Actions that make no sense in the current state (wrong phase, no AP, bad
// index, unknown id) are not errors. They leave a line in the run log and
// change nothing else. Errors are reserved for API misuse such as a nil
// state or a phase transition the table forbids.
package game

import (
	"errors"
	"fmt"

	"github.com/lawnchairsociety/deepdelve/internal/catalog"
	"github.com/lawnchairsociety/deepdelve/internal/gen"
	"github.com/lawnchairsociety/deepdelve/internal/hero"
	"github.com/lawnchairsociety/deepdelve/internal/logger"
	"github.com/lawnchairsociety/deepdelve/internal/run"
)

// ErrNilState is returned when an entry point is called without a run.
var ErrNilState = errors.New("game: nil run state")

// Rules are the tunable knobs of the progression driver.
type Rules struct {
	// EventChance is the probability of a between-floor room after a reward.
	EventChance float64 `yaml:"event_chance" env:"DELVE_EVENT_CHANCE"`
}

// DefaultRules returns the standard rules.
func DefaultRules() Rules {
	return Rules{EventChance: 0.35}
}

// Engine applies actions to runs. It holds only immutable content and the
// random source, so one Engine may serve many runs from a single goroutine.
type Engine struct {
	cat   *catalog.Catalog
	gen   *gen.Generator
	rng   gen.Rand
	rules Rules
}

// New creates an engine over a catalog. rng drives every roll, including
// generation.
func New(cat *catalog.Catalog, rng gen.Rand, rules Rules) *Engine {
	return &Engine{
		cat:   cat,
		gen:   gen.New(cat, rng),
		rng:   rng,
		rules: rules,
	}
}

// Rules returns the engine's rules.
func (e *Engine) Rules() Rules { return e.rules }

// NewRun creates a run on floor 1 for a hero. Unknown hero ids play as the
// Wanderer.
func (e *Engine) NewRun(heroID string) *run.State {
	h := hero.Get(heroID)
	if heroID != "" && !hero.Known(heroID) {
		logger.Warning("Unknown hero, using default", "hero", heroID, "default", h.ID())
	}

	p := run.NewPlayer(e.cat.StarterWeapon())
	h.Adjust(p)

	s := run.NewState(string(h.ID()), p)
	s.Enemies = e.gen.Enemies(s.Floor, p)
	s.Narrate("The %s steps into the dark. Floor 1.", h.Name())
	e.announceEnemies(s)

	logger.Debug("Run created", "hero", h.ID(), "enemies", len(s.Enemies))
	return s
}

// expect reports whether s is in phase. Otherwise it narrates the refusal.
func expect(s *run.State, phase run.Phase, action string) bool {
	if s.Phase == phase {
		return true
	}
	logger.Debug("Action ignored", "run", s.ID, "action", action, "phase", s.Phase)
	s.Narrate("You can't %s right now.", action)
	return false
}

func (e *Engine) transition(s *run.State, to run.Phase) error {
	from := s.Phase
	if err := s.Transition(to); err != nil {
		return fmt.Errorf("run %s: %w", s.ID, err)
	}
	logger.Debug("Phase change", "run", s.ID, "floor", s.Floor, "from", from, "to", to)
	return nil
}

func (e *Engine) announceEnemies(s *run.State) {
	switch n := len(s.Enemies); n {
	case 0:
	case 1:
		s.Narrate("A %s blocks the way.", s.Enemies[0].Name)
	default:
		s.Narrate("%d enemies close in, led by a %s.", n, s.Enemies[0].Name)
	}
}
