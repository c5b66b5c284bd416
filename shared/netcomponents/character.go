package netcomponents

import (
	"github.com/automoto/giftrush/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// CharacterData is the client's view of one character: authoritative for
// remote characters, predicted between snapshots for the local one.
type CharacterData struct {
	ID       string
	Position mgl64.Vec3
	Velocity mgl64.Vec3

	Nickname string
	Color    string
	Kind     netconfig.CharacterKind

	GiftCount int

	StealMotion   bool
	StolenMotion  bool
	ProtectMotion float64 // Remaining protection window (ms)

	EventBlock           bool
	IsSkillActive        bool
	TotalSkillCooldown   float64 // ms
	CurrentSkillCooldown float64 // ms, never above TotalSkillCooldown
}

// HasCargo reports whether the character carries at least one gift.
func (c *CharacterData) HasCargo() bool {
	return c.GiftCount > 0
}

// SkillReady reports whether a skill request can be sent for this character.
func (c *CharacterData) SkillReady() bool {
	return !c.IsSkillActive && c.CurrentSkillCooldown <= 0
}

var Character = donburi.NewComponentType[CharacterData]()

