// Package protocol converts between wire messages and client components.
package protocol

import (
	"github.com/automoto/giftrush/shared/messages"
	"github.com/automoto/giftrush/shared/netcomponents"
	"github.com/automoto/giftrush/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
)

// ========== Vec3 ==========

// Vec3ToWire converts an mgl64 vector to its wire form.
func Vec3ToWire(v mgl64.Vec3) *messages.Vec3 {
	return &messages.Vec3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// WireToVec3 converts a wire vector; nil becomes the zero vector.
func WireToVec3(v *messages.Vec3) mgl64.Vec3 {
	if v == nil {
		return mgl64.Vec3{}
	}
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// ========== Character ==========

// CharacterFromWire converts a validated wire character. The skill cooldown
// is clamped into [0, TotalSkillCooldown].
func CharacterFromWire(s messages.CharacterState) netcomponents.CharacterData {
	current := min(max(s.CurrentSkillCooldown, 0), s.TotalSkillCooldown)

	return netcomponents.CharacterData{
		ID:       s.ID,
		Position: WireToVec3(s.Position),
		Velocity: WireToVec3(s.Velocity),

		Nickname: s.Nickname,
		Color:    s.Color,
		Kind:     netconfig.ParseKind(s.Kind),

		GiftCount: s.GiftCount,

		StealMotion:   s.StealMotion,
		StolenMotion:  s.StolenMotion,
		ProtectMotion: s.ProtectMotion,

		EventBlock:           s.EventBlock,
		IsSkillActive:        s.IsSkillActive,
		TotalSkillCooldown:   s.TotalSkillCooldown,
		CurrentSkillCooldown: current,
	}
}

// CharacterToWire converts a character to its wire form.
func CharacterToWire(c netcomponents.CharacterData) messages.CharacterState {
	return messages.CharacterState{
		ID:       c.ID,
		Position: Vec3ToWire(c.Position),
		Velocity: Vec3ToWire(c.Velocity),

		Nickname: c.Nickname,
		Color:    c.Color,
		Kind:     string(c.Kind),

		GiftCount: c.GiftCount,

		StealMotion:   c.StealMotion,
		StolenMotion:  c.StolenMotion,
		ProtectMotion: c.ProtectMotion,

		EventBlock:           c.EventBlock,
		IsSkillActive:        c.IsSkillActive,
		TotalSkillCooldown:   c.TotalSkillCooldown,
		CurrentSkillCooldown: c.CurrentSkillCooldown,
	}
}

// CharactersFromWire converts every character of a validated broadcast.
func CharactersFromWire(states []messages.CharacterState) []netcomponents.CharacterData {
	out := make([]netcomponents.CharacterData, 0, len(states))
	for _, s := range states {
		out = append(out, CharacterFromWire(s))
	}
	return out
}
