// Package run holds the typed state of a single in-progress dungeon run.
package run

import (
	"fmt"
	"time"
)

// LogSize is how many narrative lines a run keeps.
const LogSize = 4

// State is the aggregate root for one run. It is owned by exactly one session
// and is never shared between goroutines.
type State struct {
	ID        string    `json:"id"`
	Hero      string    `json:"hero"`
	Floor     int       `json:"floor"`
	Phase     Phase     `json:"phase"`
	Turn      int       `json:"turn"`
	Player    *Player   `json:"player"`
	Enemies   []*Enemy  `json:"enemies"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Offer sets. Only the one matching Phase is populated.
	Rewards        []Reward `json:"rewards,omitempty"`
	EventOptions   []Event  `json:"event_options,omitempty"`
	BossArtifacts  []string `json:"boss_artifacts,omitempty"`
	TreasureReward *Reward  `json:"treasure_reward,omitempty"`
	PendingBoss    *Enemy   `json:"pending_boss,omitempty"`

	Kills          map[string]int `json:"kills"`
	Log            []string       `json:"log"`
	TreasuresFound int            `json:"treasures_found"`
	ChestsOpened   int            `json:"chests_opened"`
	BossDefeated   bool           `json:"boss_defeated"`
}

// NewState creates an empty run on floor 1 for the given hero and player.
// The caller is expected to populate the first encounter.
func NewState(hero string, player *Player) *State {
	return &State{
		Hero:   hero,
		Floor:  1,
		Phase:  PhaseBattle,
		Turn:   1,
		Player: player,
		Kills:  make(map[string]int),
		Log:    make([]string, 0, LogSize),
	}
}

// Narrate appends a line to the run log, dropping the oldest past LogSize.
func (s *State) Narrate(format string, args ...any) {
	line := format
	if len(args) > 0 {
		line = fmt.Sprintf(format, args...)
	}
	s.Log = append(s.Log, line)
	if len(s.Log) > LogSize {
		s.Log = append([]string(nil), s.Log[len(s.Log)-LogSize:]...)
	}
}

// LastLog returns the most recent log line, or "".
func (s *State) LastLog() string {
	if len(s.Log) == 0 {
		return ""
	}
	return s.Log[len(s.Log)-1]
}

// LivingEnemies returns the enemies with HP left, in encounter order.
func (s *State) LivingEnemies() []*Enemy {
	var alive []*Enemy
	for _, e := range s.Enemies {
		if e.Alive() {
			alive = append(alive, e)
		}
	}
	return alive
}

// FirstLiving returns the first enemy with HP left, or nil.
func (s *State) FirstLiving() *Enemy {
	for _, e := range s.Enemies {
		if e.Alive() {
			return e
		}
	}
	return nil
}

// TallyKills counts every dead enemy not yet counted. Returns how many were
// newly counted. Calling it twice in a row never double-counts.
func (s *State) TallyKills() int {
	if s.Kills == nil {
		s.Kills = make(map[string]int)
	}
	counted := 0
	for _, e := range s.Enemies {
		if e.Alive() || e.CountedDead {
			continue
		}
		e.CountedDead = true
		s.Kills[e.ID]++
		counted++
	}
	return counted
}

// TotalKills sums the kill map.
func (s *State) TotalKills() int {
	total := 0
	for _, n := range s.Kills {
		total += n
	}
	return total
}
