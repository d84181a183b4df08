// Package tasks picks the optional challenges of a run and measures progress
// against them. Selection depends only on a coarse time window, so every
// player sees the same challenges during the same window.
package tasks

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/lawnchairsociety/deepdelve/internal/gen"
	"github.com/lawnchairsociety/deepdelve/internal/run"
)

// Kind is how a task's progress is measured.
type Kind string

const (
	KillAny    Kind = "kill_any"
	KillEnemy  Kind = "kill_enemy"
	ReachFloor Kind = "reach_floor"
	KillBoss   Kind = "kill_boss"
)

// WindowSize is how long one challenge set lasts.
const WindowSize = 30 * time.Minute

// MaxTasks is the most challenges a run gets.
const MaxTasks = 3

// Task is one optional run challenge.
type Task struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"kind"`
	Target      string `json:"target,omitempty"`
	Goal        int    `json:"goal"`
	Description string `json:"description"`
}

var pool = []Task{
	{ID: "slayer_10", Kind: KillAny, Goal: 10, Description: "Defeat 10 enemies"},
	{ID: "slayer_25", Kind: KillAny, Goal: 25, Description: "Defeat 25 enemies"},
	{ID: "goblin_bane", Kind: KillEnemy, Target: "goblin", Goal: 5, Description: "Defeat 5 goblins"},
	{ID: "bone_breaker", Kind: KillEnemy, Target: "skeleton", Goal: 4, Description: "Defeat 4 skeletons"},
	{ID: "orc_hunter", Kind: KillEnemy, Target: "orc", Goal: 3, Description: "Defeat 3 orc brutes"},
	{ID: "delver_5", Kind: ReachFloor, Goal: 5, Description: "Reach floor 5"},
	{ID: "delver_8", Kind: ReachFloor, Goal: 8, Description: "Reach floor 8"},
	{ID: "abyss_15", Kind: ReachFloor, Goal: 15, Description: "Reach floor 15"},
	{ID: "warden_fall", Kind: KillBoss, Target: gen.BossID, Goal: 1, Description: "Defeat the boss"},
}

// Pool returns every task that can be chosen.
func Pool() []Task {
	out := make([]Task, len(pool))
	copy(out, pool)
	return out
}

// Window returns the window number containing now.
func Window(now time.Time) int64 {
	return now.Unix() / int64(WindowSize/time.Second)
}

// ForWindow picks the challenges for a window. The same window always
// yields the same tasks in the same order.
func ForWindow(window int64) []Task {
	rng := rand.New(rand.NewSource(window))
	n := min(MaxTasks, len(pool))
	out := make([]Task, 0, n)
	for _, i := range rng.Perm(len(pool))[:n] {
		out = append(out, pool[i])
	}
	return out
}

// Current picks the challenges for the window containing now.
func Current(now time.Time) []Task {
	return ForWindow(Window(now))
}

// Progress reads how far s is toward t, capped at the goal.
func Progress(t Task, s *run.State) int {
	if s == nil {
		return 0
	}
	var n int
	switch t.Kind {
	case KillAny:
		n = s.TotalKills()
	case KillEnemy:
		n = s.Kills[t.Target]
	case ReachFloor:
		n = s.Floor
	case KillBoss:
		target := t.Target
		if target == "" {
			target = gen.BossID
		}
		n = s.Kills[target]
	}
	return min(max(n, 0), t.Goal)
}

// Complete reports whether s has met t.
func Complete(t Task, s *run.State) bool {
	return Progress(t, s) >= t.Goal
}

// Summary renders one line per task.
func Summary(tasks []Task, s *run.State) string {
	if len(tasks) == 0 {
		return "No challenges this window."
	}
	var b strings.Builder
	for _, t := range tasks {
		mark := " "
		if Complete(t, s) {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] %s (%d/%d)\n", mark, t.Description, Progress(t, s), t.Goal)
	}
	return b.String()
}
