package archetypes

import (
	"github.com/automoto/giftrush/components"
	"github.com/automoto/giftrush/shared/netcomponents"
	"github.com/automoto/giftrush/tags"
	"github.com/yohamta/donburi"
)

var (
	LocalCharacter = newArchetype(
		tags.Character,
		tags.Local,
		netcomponents.Character,
		components.Controller,
	)
	RemoteCharacter = newArchetype(
		tags.Character,
		tags.Remote,
		netcomponents.Character,
		components.NetInterp,
		components.Controller,
	)
	Camera = newArchetype(
		components.CameraRig,
	)
	Audio = newArchetype(
		components.Audio,
	)
	Match = newArchetype(
		netcomponents.NetMatch,
	)
	Input = newArchetype(
		components.Input,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	return w.Entry(w.Create(append(a.components, cs...)...))
}
