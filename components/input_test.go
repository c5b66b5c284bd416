package components

import (
	"testing"

	"github.com/automoto/giftrush/shared/netconfig"
)

func TestInputEdges(t *testing.T) {
	var d InputData
	var pressed [netconfig.ActionCount]bool

	pressed[netconfig.ActionToggleView] = true
	pressed[netconfig.ActionForward] = true
	d.Advance(pressed, LookDelta{DX: 3})

	if !d.JustPressed(netconfig.ActionToggleView) || d.Look.DX != 3 {
		t.Fatal("first press must be an edge")
	}

	d.Advance(pressed, LookDelta{})
	if d.JustPressed(netconfig.ActionToggleView) {
		t.Error("held key is not a new press")
	}
	if !d.Pressed(netconfig.ActionToggleView) {
		t.Error("held key must stay pressed")
	}

	d.Advance([netconfig.ActionCount]bool{}, LookDelta{})
	if !d.JustReleased(netconfig.ActionForward) {
		t.Error("release not detected")
	}
}

func TestInputSnapshot(t *testing.T) {
	var d InputData
	var pressed [netconfig.ActionCount]bool
	pressed[netconfig.ActionLeft] = true
	pressed[netconfig.ActionCatch] = true
	d.Advance(pressed, LookDelta{})

	want := ControlSnapshot{Left: true, Catch: true}
	if got := d.Snapshot(); got != want {
		t.Errorf("Snapshot = %+v, want %+v", got, want)
	}
}
