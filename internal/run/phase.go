package run

import (
	"errors"
	"fmt"
)

// Phase is the coarse state of a run.
type Phase string

const (
	PhaseBattle   Phase = "battle"
	PhaseReward   Phase = "reward"
	PhaseEvent    Phase = "event"
	PhaseBossPrep Phase = "boss_prep"
	PhaseTreasure Phase = "treasure"
	PhaseDead     Phase = "dead"
)

// ErrIllegalTransition is returned when a run is asked to move between two
// phases that have no edge in the transition table.
var ErrIllegalTransition = errors.New("illegal phase transition")

// transitions lists every phase reachable from a given phase.
// Dead is terminal.
var transitions = map[Phase][]Phase{
	PhaseBattle:   {PhaseReward, PhaseDead},
	PhaseReward:   {PhaseEvent, PhaseBossPrep, PhaseBattle, PhaseDead},
	PhaseEvent:    {PhaseTreasure, PhaseBossPrep, PhaseBattle, PhaseDead},
	PhaseTreasure: {PhaseBossPrep, PhaseBattle, PhaseDead},
	PhaseBossPrep: {PhaseBattle, PhaseDead},
	PhaseDead:     {},
}

// IsValid returns true if p is one of the known phases
func (p Phase) IsValid() bool {
	_, ok := transitions[p]
	return ok
}

// CanTransition reports whether the table allows p -> to.
func (p Phase) CanTransition(to Phase) bool {
	for _, next := range transitions[p] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal returns true for phases with no way out.
func (p Phase) Terminal() bool {
	return len(transitions[p]) == 0
}

// Transition moves the run to a new phase and clears every offer set, so the
// caller populates only the set that belongs to the new phase.
func (s *State) Transition(to Phase) error {
	if !s.Phase.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s.Phase, to)
	}
	s.Phase = to
	s.Rewards = nil
	s.EventOptions = nil
	s.BossArtifacts = nil
	s.TreasureReward = nil
	if to != PhaseBossPrep {
		s.PendingBoss = nil
	}
	return nil
}
