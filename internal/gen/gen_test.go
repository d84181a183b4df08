package gen

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/lawnchairsociety/deepdelve/internal/catalog"
	"github.com/lawnchairsociety/deepdelve/internal/catalog/catalogtest"
	"github.com/lawnchairsociety/deepdelve/internal/run"
)

func newGenerator(seed int64) *Generator {
	return New(catalogtest.Catalog(), rand.New(rand.NewSource(seed)))
}

func newPlayer(hpMax, apMax int) *run.Player {
	p := run.NewPlayer(run.Weapon{ID: "rusty_sword", MinDmg: 3, MaxDmg: 5, Level: 1})
	p.HPMax, p.HP = hpMax, hpMax
	p.APMax, p.AP = apMax, apMax
	return p
}

func TestIsBossFloor(t *testing.T) {
	tests := []struct {
		floor int
		want  bool
	}{
		{1, false},
		{9, false},
		{10, true},
		{11, false},
		{20, true},
		{30, true},
		{0, false},
	}

	for _, tc := range tests {
		if got := IsBossFloor(tc.floor, 10); got != tc.want {
			t.Errorf("IsBossFloor(%d, 10) = %v, want %v", tc.floor, got, tc.want)
		}
	}
}

func TestBudgetRatio(t *testing.T) {
	tests := []struct {
		floor int
		want  float64
	}{
		{1, 0.4},
		{10, 0.4}, // boss floor itself is still early game
		{11, 0.6},
		{29, 0.6},
		{30, 0.7},
		{45, 0.8},
		{200, 1.0}, // capped
	}

	for _, tc := range tests {
		got := BudgetRatio(tc.floor, 10)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("BudgetRatio(%d) = %v, want %v", tc.floor, got, tc.want)
		}
	}
}

func TestBudget(t *testing.T) {
	tests := []struct {
		floor, hpMax, want int
	}{
		{1, 30, 12},
		{11, 30, 18},
		{200, 30, 30},
		{1, 10, 4},
	}

	for _, tc := range tests {
		if got := Budget(tc.floor, tc.hpMax, 10); got != tc.want {
			t.Errorf("Budget(%d, %d) = %d, want %d", tc.floor, tc.hpMax, got, tc.want)
		}
	}
}

func TestGroupSize(t *testing.T) {
	tests := []struct {
		floor, apMax, lo, hi int
	}{
		{1, 2, 1, 1},
		{5, 2, 1, 2},
		{8, 2, 1, 3},
		{1, 3, 2, 2}, // min wins over max
		{2, 5, 3, 3},
		{8, 5, 3, 3},
		{45, 2, 3, 3},
		{45, 5, 5, 5},
	}

	for _, tc := range tests {
		lo, hi := GroupSize(tc.floor, tc.apMax)
		if lo != tc.lo || hi != tc.hi {
			t.Errorf("GroupSize(%d, %d) = (%d, %d), want (%d, %d)", tc.floor, tc.apMax, lo, hi, tc.lo, tc.hi)
		}
	}
}

func TestScaleStats(t *testing.T) {
	hp := []struct{ base, floor, want int }{
		{10, 1, 10},
		{10, 2, 11},
		{7, 4, 9},
		{20, 10, 41},
		{0, 5, 1},
	}
	for _, tc := range hp {
		if got := ScaleHP(tc.base, tc.floor); got != tc.want {
			t.Errorf("ScaleHP(%d, %d) = %d, want %d", tc.base, tc.floor, got, tc.want)
		}
	}

	attack := []struct{ base, floor, want int }{
		{1, 1, 1},
		{5, 4, 6},
		{3, 10, 5},
		{0, 1, 1},
	}
	for _, tc := range attack {
		if got := ScaleAttack(tc.base, tc.floor); got != tc.want {
			t.Errorf("ScaleAttack(%d, %d) = %d, want %d", tc.base, tc.floor, got, tc.want)
		}
	}

	armor := []struct{ base, floor, want int }{
		{0, 1, 0},
		{0, 4, 0},
		{0, 5, 1},
		{1, 9, 3},
	}
	for _, tc := range armor {
		if got := ScaleArmor(tc.base, tc.floor); got != tc.want {
			t.Errorf("ScaleArmor(%d, %d) = %d, want %d", tc.base, tc.floor, got, tc.want)
		}
	}
}

func TestScaleEnemyClampsHitStats(t *testing.T) {
	tmpl := catalog.EnemyTemplate{ID: "ghost", EnemyDef: catalog.EnemyDef{Name: "Ghost", HP: 5, Attack: 2, Accuracy: 0.9, Evasion: 0.28}}

	e := ScaleEnemy(tmpl, 40)
	if e.Accuracy != MaxEnemyAccuracy {
		t.Errorf("Accuracy = %v, want %v", e.Accuracy, MaxEnemyAccuracy)
	}
	if e.Evasion != MaxEnemyEvasion {
		t.Errorf("Evasion = %v, want %v", e.Evasion, MaxEnemyEvasion)
	}

	tmpl.Accuracy, tmpl.Evasion = 0.1, 0
	e = ScaleEnemy(tmpl, 1)
	if e.Accuracy != MinEnemyAccuracy || e.Evasion != MinEnemyEvasion {
		t.Errorf("floor-1 hit stats = %v/%v, want %v/%v", e.Accuracy, e.Evasion, MinEnemyAccuracy, MinEnemyEvasion)
	}
	if e.ID != "ghost" || e.HP != e.MaxHP {
		t.Errorf("ScaleEnemy = %+v, want id ghost at full HP", e)
	}
}

func TestEnemiesRespectBudget(t *testing.T) {
	g := newGenerator(42)

	for _, hpMax := range []int{10, 30, 60} {
		for _, apMax := range []int{2, 3, 5} {
			for floor := 1; floor <= 40; floor++ {
				p := newPlayer(hpMax, apMax)
				group := g.Enemies(floor, p)
				lo, hi := GroupSize(floor, apMax)
				budget := Budget(floor, hpMax, catalogtest.BossFloor)

				if len(group) < lo || len(group) > hi {
					t.Fatalf("floor %d hp %d ap %d: group size %d outside [%d, %d]", floor, hpMax, apMax, len(group), lo, hi)
				}
				if total := TotalAttack(group); total > budget {
					t.Fatalf("floor %d hp %d ap %d: total attack %d > budget %d", floor, hpMax, apMax, total, budget)
				}
				for _, e := range group {
					if e.Attack < 1 || e.HP <= 0 {
						t.Fatalf("floor %d: bad enemy %+v", floor, e)
					}
				}
			}
		}
	}
}

func TestEnemiesEmptyCatalog(t *testing.T) {
	g := New(catalog.New(catalog.Tables{}, 10), rand.New(rand.NewSource(1)))
	if group := g.Enemies(1, newPlayer(30, 2)); group != nil {
		t.Errorf("Enemies on empty catalog = %v, want nil", group)
	}
}

func TestEnemiesPostBossAreMutated(t *testing.T) {
	g := newGenerator(7)
	for _, e := range g.Enemies(15, newPlayer(60, 2)) {
		if !strings.HasPrefix(e.Name, "Twisted ") {
			t.Errorf("floor 15 enemy %q is not mutated", e.Name)
		}
	}
}

func TestRebalance(t *testing.T) {
	tests := []struct {
		name    string
		attacks []int
		budget  int
		want    []int
	}{
		{"already fits", []int{2, 3}, 10, []int{2, 3}},
		{"proportional", []int{10, 6, 4}, 8, []int{4, 2, 1}},
		{"trims the strongest", []int{10, 1, 1}, 4, []int{2, 1, 1}},
		{"never below one", []int{5, 5, 5}, 2, []int{1, 1, 1}},
	}

	for _, tc := range tests {
		group := make([]*run.Enemy, len(tc.attacks))
		for i, a := range tc.attacks {
			group[i] = &run.Enemy{Attack: a, HP: 10, MaxHP: 10}
		}
		Rebalance(group, tc.budget)
		for i, e := range group {
			if e.Attack != tc.want[i] {
				t.Errorf("%s: attack[%d] = %d, want %d", tc.name, i, e.Attack, tc.want[i])
			}
			if e.HP != 10 {
				t.Errorf("%s: HP changed to %d", tc.name, e.HP)
			}
		}
	}
}

func TestRewardsDistinct(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		g := newGenerator(seed)
		rewards := g.Rewards(1, RewardCount)
		if len(rewards) != RewardCount {
			t.Fatalf("seed %d: got %d rewards, want %d", seed, len(rewards), RewardCount)
		}
		seen := map[string]bool{}
		for _, r := range rewards {
			if seen[r.ID] {
				t.Errorf("seed %d: duplicate reward %q", seed, r.ID)
			}
			seen[r.ID] = true
			if r.ID == "war_axe" {
				t.Errorf("seed %d: war_axe offered outside its floor window", seed)
			}
		}
	}
}

func TestRewardsPoolExhausted(t *testing.T) {
	g := newGenerator(1)
	// rusty_sword, dagger and six upgrades are valid on floor 1.
	if got := len(g.Rewards(1, 50)); got != 8 {
		t.Errorf("Rewards(1, 50) = %d offers, want 8", got)
	}

	empty := New(catalog.New(catalog.Tables{}, 10), rand.New(rand.NewSource(1)))
	if got := empty.Rewards(1, 3); len(got) != 0 {
		t.Errorf("empty catalog rewards = %v, want none", got)
	}
	if _, ok := empty.Reward(1); ok {
		t.Error("Reward on empty catalog should report false")
	}
}

func TestRewardWeaponsAreLeveled(t *testing.T) {
	g := newGenerator(3)
	for _, r := range g.Rewards(5, 50) {
		if r.Kind != run.RewardWeapon {
			continue
		}
		if r.Weapon.Level != 5 {
			t.Errorf("%s level = %d, want 5", r.ID, r.Weapon.Level)
		}
	}

	for _, r := range g.Rewards(12, 50) {
		if r.Kind == run.RewardWeapon && !r.Weapon.Legendary {
			t.Errorf("floor 12 weapon %s is not legendary", r.ID)
		}
	}
}

func TestRewardUpgradeKinds(t *testing.T) {
	g := newGenerator(1)
	kinds := map[run.UpgradeKind]bool{}
	for _, r := range g.Rewards(1, 50) {
		if r.Kind != run.RewardUpgrade {
			continue
		}
		kinds[r.Upgrade.Kind] = true
		if r.Upgrade.Kind == run.UpgradeScroll && (r.Upgrade.Scroll == nil || r.Upgrade.Scroll.Kind != run.ScrollFire) {
			t.Errorf("scroll upgrade = %+v, want fire scroll", r.Upgrade)
		}
	}
	for _, k := range []run.UpgradeKind{run.UpgradeStat, run.UpgradePotion, run.UpgradeScroll} {
		if !kinds[k] {
			t.Errorf("no %s upgrade offered", k)
		}
	}
}

func TestBossScale(t *testing.T) {
	tests := []struct {
		apMax, potions int
		want           float64
	}{
		{2, 0, 1.0},
		{2, 1, 1.04},
		{3, 0, 1.1},
		{5, 10, 1.4},
		{1, 0, 1.0},
	}

	for _, tc := range tests {
		p := newPlayer(30, tc.apMax)
		p.Potions = nil
		for i := 0; i < tc.potions; i++ {
			p.Potions = append(p.Potions, run.PotionSmall)
		}
		if got := BossScale(p); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("BossScale(ap=%d, potions=%d) = %v, want %v", tc.apMax, tc.potions, got, tc.want)
		}
	}
}

func TestBossFromPlayer(t *testing.T) {
	g := newGenerator(1)
	p := newPlayer(30, 2)

	b := g.Boss(p)
	if b.ID != BossID || !b.Boss || b.Name != "Warden of the Deep" {
		t.Errorf("boss identity = %q/%q boss=%v", b.ID, b.Name, b.Boss)
	}
	if b.HP != 93 || b.MaxHP != 93 {
		t.Errorf("boss HP = %d/%d, want 93", b.HP, b.MaxHP)
	}
	if b.Attack != 6 {
		t.Errorf("boss attack = %d, want 6", b.Attack)
	}
	if b.Armor != 1 {
		t.Errorf("boss armor = %d, want 1", b.Armor)
	}
}

func TestArtifacts(t *testing.T) {
	ids := ArtifactIDs()
	if len(ids) != 5 {
		t.Fatalf("artifact menu has %d entries, want 5", len(ids))
	}
	for _, id := range ids {
		a, ok := LookupArtifact(id)
		if !ok || a.Stat == "" || a.Amount == 0 {
			t.Errorf("LookupArtifact(%q) = %+v, %v", id, a, ok)
		}
	}
	if _, ok := LookupArtifact("crown_of_lies"); ok {
		t.Error("unknown artifact should not resolve")
	}

	menu := Artifacts()
	menu[0].Amount = 999
	if a, _ := LookupArtifact(menu[0].ID); a.Amount == 999 {
		t.Error("Artifacts should return a copy")
	}
}

func TestEventOptions(t *testing.T) {
	if got := EventOptions(newPlayer(30, 2)); len(got) != 3 {
		t.Errorf("EventOptions(30 HP) = %v, want 3 rooms", got)
	}
	got := EventOptions(newPlayer(AltarMinHPMax, 2))
	for _, ev := range got {
		if ev == run.EventAltar {
			t.Errorf("altar offered at %d max HP", AltarMinHPMax)
		}
	}
}
