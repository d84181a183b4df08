package run

import (
	"encoding/json"
	"fmt"
	"slices"
)

// legacyFields are keys older saves wrote at the top level before the class
// flags moved onto the player.
type legacyFields struct {
	CharacterID         string `json:"character_id"`
	DesperateChargeUsed *bool  `json:"desperate_charge_used"`
}

// Encode serializes a run for storage.
func Encode(s *State) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode run: %w", err)
	}
	return data, nil
}

// Decode parses a stored run. Unknown keys are ignored, renamed legacy keys
// are migrated, and missing collections are initialized.
func Decode(data []byte) (*State, error) {
	s := &State{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decode run: %w", err)
	}

	var legacy legacyFields
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("decode run: %w", err)
	}
	if s.Hero == "" {
		s.Hero = legacy.CharacterID
	}

	s.Normalize()
	if legacy.DesperateChargeUsed != nil && *legacy.DesperateChargeUsed {
		s.Player.DesperateChargeUsed = true
	}
	return s, nil
}

// Normalize restores the structural invariants of a state that came from
// outside the engine.
func (s *State) Normalize() {
	if s.Floor < 1 {
		s.Floor = 1
	}
	if !s.Phase.IsValid() {
		s.Phase = PhaseBattle
	}
	if s.Kills == nil {
		s.Kills = make(map[string]int)
	}
	if s.Log == nil {
		s.Log = make([]string, 0, LogSize)
	}
	if len(s.Log) > LogSize {
		s.Log = s.Log[len(s.Log)-LogSize:]
	}
	if s.Player == nil {
		s.Player = NewPlayer(Weapon{ID: "fists", Name: "Fists", MinDmg: 1, MaxDmg: 2, Level: 1})
	}
	p := s.Player
	p.HPMax = max(1, p.HPMax)
	p.APMax = max(1, p.APMax)
	p.HP = min(max(0, p.HP), p.HPMax)
	p.AP = min(max(0, p.AP), p.APMax)
	p.Luck = clamp(p.Luck, 0, 1)
	p.Weapon.Normalize()

	s.Enemies = slices.DeleteFunc(s.Enemies, func(e *Enemy) bool { return e == nil })
	for _, e := range s.Enemies {
		e.MaxHP = max(1, e.MaxHP)
		e.HP = min(max(0, e.HP), e.MaxHP)
	}
}
