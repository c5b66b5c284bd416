package config

// CharacterAnimations maps a character kind to the clip identifier the
// renderer plays for each state.
var CharacterAnimations = map[CharacterKind]map[StateID]string{
	KindRabbit: {
		Idle:      "CharacterArmature|Idle",
		IdleCargo: "CharacterArmature|Idle_Gun",
		Run:       "CharacterArmature|Run",
		RunCargo:  "CharacterArmature|Run_Gun",
		Jump:      "CharacterArmature|Jump",
		Punch:     "CharacterArmature|Punch",
		Duck:      "CharacterArmature|Duck",
	},
	KindGhost: {
		FlyingIdle: "CharacterArmature|Flying_Idle",
		Jump:       "CharacterArmature|Flying_Idle",
		Punch:      "CharacterArmature|Punch",
		Duck:       "CharacterArmature|HitReact",
	},
}

// AnimationName returns the clip for state, falling back to the kind's
// resting clip when the state has no dedicated clip.
func AnimationName(kind CharacterKind, state StateID) string {
	clips, ok := CharacterAnimations[kind]
	if !ok {
		clips = CharacterAnimations[KindRabbit]
	}
	if name, ok := clips[state]; ok {
		return name
	}
	if kind == KindGhost {
		return clips[FlyingIdle]
	}
	return clips[Idle]
}
