package gen

import (
	"math"

	"github.com/lawnchairsociety/deepdelve/internal/run"
)

// BossID is the kill-tally key of every boss.
const BossID = "boss"

const defaultBossName = "Warden of the Deep"

// Boss scale bounds.
const (
	MinBossScale = 1.0
	MaxBossScale = 1.4
)

// BossScale returns the boss multiplier for a player. Extra AP and carried
// potions each add up to 0.2.
func BossScale(p *run.Player) float64 {
	scale := 1.0
	scale += math.Min(0.2, 0.1*float64(max(0, p.APMax-run.BaseAP)))
	scale += math.Min(0.2, 0.04*float64(len(p.Potions)))
	return clamp(scale, MinBossScale, MaxBossScale)
}

// Boss builds the boss enemy from the player's current power.
func (g *Generator) Boss(p *run.Player) *run.Enemy {
	name := defaultBossName
	acc, eva := 0.75, 0.05
	if t, ok := g.cat.Boss(); ok {
		name = t.Name
		if t.Accuracy > 0 {
			acc = t.Accuracy
		}
		if t.Evasion > 0 {
			eva = t.Evasion
		}
	}
	return NewBoss(name, p, acc, eva)
}

// NewBoss builds a boss with the given name and hit stats calibrated to p.
func NewBoss(name string, p *run.Player, accuracy, evasion float64) *run.Enemy {
	scale := BossScale(p)
	hp := max(1, int(3*float64(p.HPMax)*scale))
	return &run.Enemy{
		ID:       BossID,
		Name:     name,
		HP:       hp,
		MaxHP:    hp,
		Attack:   max(1, int(0.2*float64(p.HPMax)*scale)),
		Armor:    int(float64(max(p.Armor, 0)+1) * scale),
		Accuracy: clamp(accuracy, MinEnemyAccuracy, MaxEnemyAccuracy),
		Evasion:  clamp(evasion, MinEnemyEvasion, MaxEnemyEvasion),
		Boss:     true,
	}
}

// Artifact is a boss-prep empowerment.
type Artifact struct {
	ID          string
	Name        string
	Description string
	Stat        string
	Amount      float64
}

var artifacts = []Artifact{
	{ID: "blood_chalice", Name: "Blood Chalice", Description: "+8 max HP", Stat: run.StatHPMax, Amount: 8},
	{ID: "war_drum", Name: "War Drum", Description: "+1 max AP", Stat: run.StatAPMax, Amount: 1},
	{ID: "iron_aegis", Name: "Iron Aegis", Description: "+2 armor", Stat: run.StatArmor, Amount: 2},
	{ID: "hunters_eye", Name: "Hunter's Eye", Description: "+10% accuracy", Stat: run.StatAccuracy, Amount: 0.10},
	{ID: "ember_brand", Name: "Ember Brand", Description: "+2 power", Stat: run.StatPower, Amount: 2},
}

// Artifacts returns the fixed boss-prep menu.
func Artifacts() []Artifact {
	out := make([]Artifact, len(artifacts))
	copy(out, artifacts)
	return out
}

// ArtifactIDs returns the ids of the boss-prep menu in order.
func ArtifactIDs() []string {
	ids := make([]string, len(artifacts))
	for i, a := range artifacts {
		ids[i] = a.ID
	}
	return ids
}

// LookupArtifact finds an artifact by id.
func LookupArtifact(id string) (Artifact, bool) {
	for _, a := range artifacts {
		if a.ID == id {
			return a, true
		}
	}
	return Artifact{}, false
}

// AltarMinHPMax is the max HP at or below which the altar refuses a sacrifice.
const AltarMinHPMax = 10

// EventOptions returns the between-floor rooms offered to p.
func EventOptions(p *run.Player) []run.Event {
	opts := []run.Event{run.EventCampfire, run.EventTreasure}
	if p.HPMax > AltarMinHPMax {
		opts = append(opts, run.EventAltar)
	}
	return opts
}
