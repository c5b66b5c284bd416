package messages

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedSnapshot is returned by Validate when a broadcast cannot be
// applied as a whole.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// Vec3 is the wire form of a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) finite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsNaN(v.Z) &&
		!math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsInf(v.Z, 0)
}

// CharacterState is one character as carried on the wire. Position and
// Velocity are pointers so a missing field can be told apart from the origin.
type CharacterState struct {
	ID       string
	Position *Vec3
	Velocity *Vec3

	Nickname string
	Color    string
	Kind     string // "rabbit" (default) or "ghost"

	GiftCount int

	StealMotion   bool
	StolenMotion  bool
	ProtectMotion float64 // Remaining protection window (ms)

	EventBlock           bool
	IsSkillActive        bool
	TotalSkillCooldown   float64 // ms
	CurrentSkillCooldown float64 // ms
}

// MovementUpdate is sent from client to server under the outbound gate.
type MovementUpdate struct {
	Character CharacterState
	Steal     bool
	Skill     bool
}

// CharactersUpdate is the full-registry broadcast sent by the server.
type CharactersUpdate struct {
	Characters        []CharacterState
	RemainRunningTime float64 // Seconds left in the match
}

// Validate checks that the broadcast can replace the registry as a whole.
func (u *CharactersUpdate) Validate() error {
	if u == nil || u.Characters == nil {
		return fmt.Errorf("%w: missing characters", ErrMalformedSnapshot)
	}
	if math.IsNaN(u.RemainRunningTime) || u.RemainRunningTime < 0 {
		return fmt.Errorf("%w: invalid remaining time %v", ErrMalformedSnapshot, u.RemainRunningTime)
	}

	seen := make(map[string]struct{}, len(u.Characters))
	for i := range u.Characters {
		c := &u.Characters[i]
		if err := c.Validate(); err != nil {
			return fmt.Errorf("character %d: %w", i, err)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrMalformedSnapshot, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}

// Validate checks the fields a character must carry.
func (c *CharacterState) Validate() error {
	switch {
	case c.ID == "":
		return fmt.Errorf("%w: missing id", ErrMalformedSnapshot)
	case c.Position == nil:
		return fmt.Errorf("%w: %q missing position", ErrMalformedSnapshot, c.ID)
	case c.Velocity == nil:
		return fmt.Errorf("%w: %q missing velocity", ErrMalformedSnapshot, c.ID)
	case !c.Position.finite() || !c.Velocity.finite():
		return fmt.Errorf("%w: %q non-finite vector", ErrMalformedSnapshot, c.ID)
	case c.GiftCount < 0:
		return fmt.Errorf("%w: %q negative gift count %d", ErrMalformedSnapshot, c.ID, c.GiftCount)
	case c.TotalSkillCooldown < 0:
		return fmt.Errorf("%w: %q negative skill cooldown", ErrMalformedSnapshot, c.ID)
	}
	return nil
}
