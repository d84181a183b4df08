// Package catalogtest provides a small fixed catalog for tests.
package catalogtest

import "github.com/lawnchairsociety/deepdelve/internal/catalog"

// BossFloor is the boss floor used by Catalog.
const BossFloor = 10

// Tables returns the fixed content tables behind Catalog.
func Tables() catalog.Tables {
	return catalog.Tables{
		Weapons: map[string]catalog.WeaponDef{
			"rusty_sword": {Name: "Rusty Sword", MinDmg: 3, MaxDmg: 5, Starter: true},
			"dagger":      {Name: "Dagger", MinDmg: 2, MaxDmg: 4, AccuracyBonus: 0.1, BleedChance: 0.3, BleedDamage: 2, Window: catalog.Window{MaxFloor: 8}},
			"war_axe":     {Name: "War Axe", MinDmg: 4, MaxDmg: 7, SplashRatio: 0.3, Window: catalog.Window{MinFloor: 3}},
		},
		Enemies: map[string]catalog.EnemyDef{
			"rat":    {Name: "Giant Rat", HP: 6, Attack: 2, Accuracy: 0.6, Evasion: 0.08, Window: catalog.Window{MaxFloor: 5}},
			"goblin": {Name: "Goblin", HP: 9, Attack: 3, Accuracy: 0.65, Evasion: 0.06},
			"orc":    {Name: "Orc Brute", HP: 16, Attack: 5, Armor: 1, Accuracy: 0.65, Evasion: 0.03, Window: catalog.Window{MinFloor: 6}},
			"warden": {Name: "Warden of the Deep", HP: 1, Attack: 1, Boss: true},
		},
		Upgrades: map[string]catalog.UpgradeDef{
			"vitality":      {Name: "Vitality Draught", Kind: "stat", Stat: "hp_max", Amount: 3},
			"might":         {Name: "Whetstone", Kind: "stat", Stat: "power", Amount: 1},
			"toughness":     {Name: "Iron Skin", Kind: "stat", Stat: "armor", Amount: 1},
			"potion_small":  {Name: "Small Potion", Kind: "potion", Potion: "small"},
			"potion_strong": {Name: "Strong Potion", Kind: "potion", Potion: "strong"},
			"scroll_fire":   {Name: "Scroll of Fire", Kind: "scroll", Scroll: "fire"},
		},
		Scrolls: map[string]catalog.ScrollDef{
			"fire":      {Name: "Scroll of Fire", Kind: "fire", Power: 3, Turns: 2},
			"ice":       {Name: "Scroll of Ice", Kind: "ice", Turns: 1},
			"lightning": {Name: "Scroll of Lightning", Kind: "lightning", Power: 5},
			"mending":   {Name: "Scroll of Mending", Kind: "mending", Power: 10},
		},
	}
}

// Catalog returns a fresh catalog built from Tables.
func Catalog() *catalog.Catalog {
	return catalog.New(Tables(), BossFloor)
}
