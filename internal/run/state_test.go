package run

import (
	"errors"
	"fmt"
	"testing"
)

func testWeapon() Weapon {
	return Weapon{ID: "rusty_sword", Name: "Rusty Sword", MinDmg: 3, MaxDmg: 5, Level: 1}
}

func TestNewState(t *testing.T) {
	s := NewState("wanderer", NewPlayer(testWeapon()))

	if s.Floor != 1 {
		t.Errorf("Floor = %d, want 1", s.Floor)
	}
	if s.Phase != PhaseBattle {
		t.Errorf("Phase = %q, want %q", s.Phase, PhaseBattle)
	}
	if s.Player.HP != 30 || s.Player.HPMax != 30 {
		t.Errorf("HP = %d/%d, want 30/30", s.Player.HP, s.Player.HPMax)
	}
	if s.Player.AP != 2 || s.Player.APMax != 2 {
		t.Errorf("AP = %d/%d, want 2/2", s.Player.AP, s.Player.APMax)
	}
	if len(s.Player.Potions) != 1 || s.Player.Potions[0] != PotionSmall {
		t.Errorf("Potions = %v, want [small]", s.Player.Potions)
	}
}

func TestNarrateKeepsLastLines(t *testing.T) {
	s := NewState("wanderer", NewPlayer(testWeapon()))
	for i := 1; i <= 7; i++ {
		s.Narrate("line %d", i)
	}

	if len(s.Log) != LogSize {
		t.Fatalf("len(Log) = %d, want %d", len(s.Log), LogSize)
	}
	for i, line := range s.Log {
		want := fmt.Sprintf("line %d", i+4)
		if line != want {
			t.Errorf("Log[%d] = %q, want %q", i, line, want)
		}
	}
	if s.LastLog() != "line 7" {
		t.Errorf("LastLog() = %q, want %q", s.LastLog(), "line 7")
	}
}

func TestTallyKillsIsIdempotent(t *testing.T) {
	s := NewState("wanderer", NewPlayer(testWeapon()))
	s.Enemies = []*Enemy{
		{ID: "rat", HP: 0, MaxHP: 5},
		{ID: "rat", HP: 0, MaxHP: 5},
		{ID: "goblin", HP: 3, MaxHP: 8},
	}

	if got := s.TallyKills(); got != 2 {
		t.Errorf("first TallyKills() = %d, want 2", got)
	}
	if got := s.TallyKills(); got != 0 {
		t.Errorf("second TallyKills() = %d, want 0", got)
	}
	if s.Kills["rat"] != 2 {
		t.Errorf("Kills[rat] = %d, want 2", s.Kills["rat"])
	}

	s.Enemies[2].HP = 0
	s.TallyKills()
	s.TallyKills()
	if s.Kills["goblin"] != 1 {
		t.Errorf("Kills[goblin] = %d, want 1", s.Kills["goblin"])
	}
	if s.TotalKills() != 3 {
		t.Errorf("TotalKills() = %d, want 3", s.TotalKills())
	}
}

func TestPotionCaps(t *testing.T) {
	tests := []struct {
		tier PotionTier
		cap  int
	}{
		{PotionSmall, 10},
		{PotionMedium, 5},
		{PotionStrong, 2},
	}

	for _, tc := range tests {
		p := NewPlayer(testWeapon())
		p.Potions = nil
		for i := 0; i < 20; i++ {
			p.AddPotion(tc.tier)
		}
		if got := p.CountPotions(tc.tier); got != tc.cap {
			t.Errorf("CountPotions(%s) = %d, want %d", tc.tier, got, tc.cap)
		}
	}
}

func TestPopPotionIsLastInFirstOut(t *testing.T) {
	p := NewPlayer(testWeapon())
	p.AddPotion(PotionStrong)
	p.AddPotion(PotionMedium)

	want := []PotionTier{PotionMedium, PotionStrong, PotionSmall}
	for _, w := range want {
		got, ok := p.PopPotion()
		if !ok || got != w {
			t.Errorf("PopPotion() = %q, %v, want %q, true", got, ok, w)
		}
	}
	if _, ok := p.PopPotion(); ok {
		t.Error("PopPotion() on empty stack should fail")
	}
}

func TestPlayerBounds(t *testing.T) {
	p := NewPlayer(testWeapon())

	p.SpendAP(5)
	if p.AP != 0 {
		t.Errorf("AP after overspend = %d, want 0", p.AP)
	}
	p.RestoreAP(10)
	if p.AP != p.APMax {
		t.Errorf("AP after restore = %d, want %d", p.AP, p.APMax)
	}
	p.TakeDamage(100)
	if p.HP != 0 {
		t.Errorf("HP after overkill = %d, want 0", p.HP)
	}
	if healed := p.Heal(100); healed != p.HPMax || p.HP != p.HPMax {
		t.Errorf("Heal(100) = %d, HP = %d, want %d", healed, p.HP, p.HPMax)
	}
}

func TestLastBreath(t *testing.T) {
	tests := []struct {
		hp, max int
		want    bool
	}{
		{30, 30, false},
		{11, 30, false},
		{10, 30, true},
		{1, 30, true},
		{0, 30, false},
	}

	for _, tc := range tests {
		p := &Player{HP: tc.hp, HPMax: tc.max}
		if got := p.IsLastBreath(); got != tc.want {
			t.Errorf("IsLastBreath(%d/%d) = %v, want %v", tc.hp, tc.max, got, tc.want)
		}
	}
}

func TestApplyStat(t *testing.T) {
	p := NewPlayer(testWeapon())

	if !p.ApplyStat(StatHPMax, 5) {
		t.Fatal("ApplyStat(hp_max) returned false")
	}
	if p.HPMax != 35 || p.HP != 35 {
		t.Errorf("HP = %d/%d, want 35/35", p.HP, p.HPMax)
	}
	p.ApplyStat(StatArmor, -2)
	if p.Armor != -2 {
		t.Errorf("Armor = %d, want -2", p.Armor)
	}
	p.ApplyStat(StatLuck, 5)
	if p.Luck != 1 {
		t.Errorf("Luck = %v, want 1", p.Luck)
	}
	if p.ApplyStat("charisma", 1) {
		t.Error("ApplyStat(charisma) should return false")
	}
}

func TestEnemyStatusTicks(t *testing.T) {
	e := &Enemy{ID: "rat", HP: 10, MaxHP: 10}
	e.ApplyBleed(2, 3)
	e.ApplyBleed(1, 1)

	if e.BleedTurns != 2 || e.BleedDamage != 3 {
		t.Fatalf("bleed = %d turns x %d, want 2 x 3", e.BleedTurns, e.BleedDamage)
	}
	if got := e.TickBleed(); got != 3 {
		t.Errorf("TickBleed() = %d, want 3", got)
	}
	e.TickBleed()
	if e.HP != 4 || e.BleedTurns != 0 {
		t.Errorf("after bleed HP = %d turns = %d, want 4 and 0", e.HP, e.BleedTurns)
	}

	e.Freeze(1)
	if !e.ConsumeSkip() {
		t.Error("frozen enemy should skip")
	}
	if e.ConsumeSkip() {
		t.Error("enemy should only skip once")
	}
}

func TestWeaponScaleToIsMonotonicAndIdempotent(t *testing.T) {
	w := testWeapon()
	w.ScaleTo(6)
	first := w

	w.ScaleTo(6)
	if w != first {
		t.Errorf("second ScaleTo(6) changed weapon: %+v -> %+v", first, w)
	}
	w.ScaleTo(3)
	if w != first {
		t.Errorf("ScaleTo(3) after 6 changed weapon: %+v -> %+v", first, w)
	}
	if w.MinDmg < 3 || w.MaxDmg < w.MinDmg || w.Level != 6 {
		t.Errorf("scaled weapon = %+v", w)
	}
}

func TestTransition(t *testing.T) {
	s := NewState("wanderer", NewPlayer(testWeapon()))
	s.Rewards = []Reward{{ID: "x"}}

	if err := s.Transition(PhaseEvent); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("battle -> event err = %v, want ErrIllegalTransition", err)
	}
	if err := s.Transition(PhaseReward); err != nil {
		t.Fatalf("battle -> reward: %v", err)
	}
	if s.Rewards != nil {
		t.Error("Transition should clear offer sets")
	}
	if err := s.Transition(PhaseDead); err != nil {
		t.Fatalf("reward -> dead: %v", err)
	}
	if !s.Phase.Terminal() {
		t.Error("dead should be terminal")
	}
	if err := s.Transition(PhaseBattle); err == nil {
		t.Error("dead -> battle should fail")
	}
}

func TestDecodeMigratesLegacyFields(t *testing.T) {
	data := []byte(`{
		"character_id": "rune_guard",
		"floor": 0,
		"phase": "mystery",
		"desperate_charge_used": true,
		"player": {"hp": 50, "hp_max": 36, "ap": -1, "ap_max": 2,
			"weapon": {"id": "club", "min_dmg": 4, "max_dmg": 2}},
		"removed_field": 3
	}`)

	s, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s.Hero != "rune_guard" {
		t.Errorf("Hero = %q, want rune_guard", s.Hero)
	}
	if s.Floor != 1 || s.Phase != PhaseBattle {
		t.Errorf("Floor/Phase = %d/%q, want 1/battle", s.Floor, s.Phase)
	}
	if !s.Player.DesperateChargeUsed {
		t.Error("legacy desperate_charge_used was not migrated")
	}
	if s.Player.HP != 36 || s.Player.AP != 0 {
		t.Errorf("HP/AP = %d/%d, want 36/0", s.Player.HP, s.Player.AP)
	}
	if s.Player.Weapon.MaxDmg != 4 {
		t.Errorf("Weapon.MaxDmg = %d, want 4", s.Player.Weapon.MaxDmg)
	}
	if s.Kills == nil {
		t.Error("Kills should be initialized")
	}
}

func TestDecodeDropsNullEnemies(t *testing.T) {
	data := []byte(`{"floor":3,"phase":"battle","enemies":[null,{"id":"rat","hp":9,"max_hp":6},null]}`)

	s, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(s.Enemies) != 1 {
		t.Fatalf("len(Enemies) = %d, want 1", len(s.Enemies))
	}
	if e := s.Enemies[0]; e.ID != "rat" || e.HP != 6 {
		t.Errorf("enemy = %s %d HP, want rat 6 HP", e.ID, e.HP)
	}
	if s.FirstLiving() == nil {
		t.Error("FirstLiving() = nil after decode")
	}
}

func TestDecodeIgnoresLegacyShieldFlag(t *testing.T) {
	s, err := Decode([]byte(`{"character_id":"rune_guard","rune_guard_shield_used":true}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if s.Player.ShieldActive {
		t.Error("ShieldActive set from rune_guard_shield_used")
	}
}

func TestEncodeDecodeKeepsOfferSet(t *testing.T) {
	s := NewState("assassin", NewPlayer(testWeapon()))
	s.Enemies = []*Enemy{{ID: "rat", HP: 0, MaxHP: 4}}
	s.TallyKills()
	if err := s.Transition(PhaseReward); err != nil {
		t.Fatal(err)
	}
	s.Rewards = []Reward{{ID: "power_up", Kind: RewardUpgrade, Upgrade: &Upgrade{Kind: UpgradeStat, Stat: StatPower, Amount: 1}}}

	data, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Phase != PhaseReward || len(got.Rewards) != 1 || got.Rewards[0].Upgrade.Stat != StatPower {
		t.Errorf("decoded offers = %+v", got.Rewards)
	}
	if !got.Enemies[0].CountedDead || got.Kills["rat"] != 1 {
		t.Error("kill bookkeeping lost in round trip")
	}
}
