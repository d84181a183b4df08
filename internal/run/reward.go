package run

// RewardKind tags a reward offer.
type RewardKind string

const (
	RewardWeapon  RewardKind = "weapon"
	RewardUpgrade RewardKind = "upgrade"
)

// UpgradeKind tags what an upgrade grants.
type UpgradeKind string

const (
	UpgradeStat   UpgradeKind = "stat"
	UpgradePotion UpgradeKind = "potion"
	UpgradeScroll UpgradeKind = "scroll"
)

// Upgrade is a stat bump or an inventory grant.
type Upgrade struct {
	Kind   UpgradeKind `json:"kind"`
	Stat   string      `json:"stat,omitempty"`
	Amount float64     `json:"amount,omitempty"`
	Potion PotionTier  `json:"potion,omitempty"`
	Scroll *Scroll     `json:"scroll,omitempty"`
}

// Reward is one offer in a reward or treasure set.
type Reward struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Kind    RewardKind `json:"kind"`
	Weapon  *Weapon    `json:"weapon,omitempty"`
	Upgrade *Upgrade   `json:"upgrade,omitempty"`
}

// Event is a between-floor room.
type Event string

const (
	EventCampfire Event = "campfire"
	EventTreasure Event = "treasure"
	EventAltar    Event = "altar"
)

// ScrollKind names a scroll effect.
type ScrollKind string

const (
	ScrollFire      ScrollKind = "fire"
	ScrollIce       ScrollKind = "ice"
	ScrollLightning ScrollKind = "lightning"
	ScrollMending   ScrollKind = "mending"
)

// Scroll is a single-use combat item.
type Scroll struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Kind  ScrollKind `json:"kind"`
	Power int        `json:"power"`
	Turns int        `json:"turns,omitempty"`
}
