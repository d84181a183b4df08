package tasks

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/lawnchairsociety/deepdelve/internal/gen"
	"github.com/lawnchairsociety/deepdelve/internal/run"
)

func TestWindow(t *testing.T) {
	base := time.Unix(1800*1000, 0)
	tests := []struct {
		now  time.Time
		want int64
	}{
		{base, 1000},
		{base.Add(29 * time.Minute), 1000},
		{base.Add(30 * time.Minute), 1001},
		{base.Add(-time.Second), 999},
	}

	for _, tc := range tests {
		if got := Window(tc.now); got != tc.want {
			t.Errorf("Window(%v) = %d, want %d", tc.now.Unix(), got, tc.want)
		}
	}
}

func TestForWindowIsPure(t *testing.T) {
	for w := int64(0); w < 50; w++ {
		a, b := ForWindow(w), ForWindow(w)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("ForWindow(%d) not stable: %v vs %v", w, a, b)
		}
		if len(a) != MaxTasks {
			t.Fatalf("ForWindow(%d) = %d tasks, want %d", w, len(a), MaxTasks)
		}
		seen := map[string]bool{}
		for _, task := range a {
			if seen[task.ID] {
				t.Errorf("ForWindow(%d) repeats %s", w, task.ID)
			}
			seen[task.ID] = true
		}
	}

	now := time.Unix(1800*777+5, 0)
	if !reflect.DeepEqual(Current(now), Current(now.Add(10*time.Minute))) {
		t.Error("Current changed inside one window")
	}
}

func TestForWindowVaries(t *testing.T) {
	first := ForWindow(0)
	for w := int64(1); w < 20; w++ {
		if !reflect.DeepEqual(first, ForWindow(w)) {
			return
		}
	}
	t.Error("20 consecutive windows produced the same tasks")
}

func TestProgress(t *testing.T) {
	s := run.NewState("wanderer", run.NewPlayer(run.Weapon{}))
	s.Floor = 6
	s.Kills = map[string]int{"goblin": 7, "rat": 2, gen.BossID: 1}

	tests := []struct {
		task Task
		want int
	}{
		{Task{Kind: KillAny, Goal: 25}, 10},
		{Task{Kind: KillAny, Goal: 5}, 5},
		{Task{Kind: KillEnemy, Target: "goblin", Goal: 5}, 5},
		{Task{Kind: KillEnemy, Target: "orc", Goal: 3}, 0},
		{Task{Kind: ReachFloor, Goal: 8}, 6},
		{Task{Kind: KillBoss, Goal: 1}, 1},
		{Task{Kind: "unknown", Goal: 1}, 0},
	}

	for _, tc := range tests {
		if got := Progress(tc.task, s); got != tc.want {
			t.Errorf("Progress(%s %s) = %d, want %d", tc.task.Kind, tc.task.Target, got, tc.want)
		}
	}
	if Progress(tests[0].task, nil) != 0 {
		t.Error("Progress on nil run should be 0")
	}
}

func TestProgressIsMonotonic(t *testing.T) {
	s := run.NewState("wanderer", run.NewPlayer(run.Weapon{}))
	prev := make(map[string]int)
	for step := 0; step < 30; step++ {
		s.Floor++
		s.Kills["goblin"]++
		if step%3 == 0 {
			s.Kills["orc"]++
		}
		for _, task := range Pool() {
			got := Progress(task, s)
			if got < prev[task.ID] {
				t.Fatalf("step %d: %s progress fell from %d to %d", step, task.ID, prev[task.ID], got)
			}
			prev[task.ID] = got
		}
	}
}

func TestSummary(t *testing.T) {
	s := run.NewState("wanderer", run.NewPlayer(run.Weapon{}))
	s.Floor = 5
	out := Summary([]Task{
		{ID: "delver_5", Kind: ReachFloor, Goal: 5, Description: "Reach floor 5"},
		{ID: "slayer_10", Kind: KillAny, Goal: 10, Description: "Defeat 10 enemies"},
	}, s)

	if !strings.Contains(out, "[x] Reach floor 5 (5/5)") {
		t.Errorf("summary missing completed task:\n%s", out)
	}
	if !strings.Contains(out, "[ ] Defeat 10 enemies (0/10)") {
		t.Errorf("summary missing open task:\n%s", out)
	}
	if Summary(nil, s) == "" {
		t.Error("empty summary should say so")
	}
}
