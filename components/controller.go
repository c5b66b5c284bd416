package components

import (
	"github.com/automoto/giftrush/animation"
	"github.com/yohamta/donburi"
)

// ControllerData is the per-character presentation controller. It owns the
// animation machine (and through it the character's timers) and must be
// closed before its entity is removed.
type ControllerData struct {
	Machine *animation.Machine
	Local   bool
}

var Controller = donburi.NewComponentType[ControllerData]()

// Close releases the controller's timers. Safe on a zero value.
func (c *ControllerData) Close() {
	if c.Machine != nil {
		c.Machine.Close()
	}
}
