package systems

import (
	"github.com/automoto/giftrush/components"
	cfg "github.com/automoto/giftrush/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputBinding is the set of keys and gamepad buttons that hold an action.
type InputBinding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// Bindings maps each control to its inputs. The analog sticks are handled
// separately.
var Bindings = map[cfg.ActionID]InputBinding{
	cfg.ActionForward: {
		Keys:                   []ebiten.Key{ebiten.KeyW, ebiten.KeyUp},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftTop},
	},
	cfg.ActionBackward: {
		Keys:                   []ebiten.Key{ebiten.KeyS, ebiten.KeyDown},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftBottom},
	},
	cfg.ActionLeft: {
		Keys:                   []ebiten.Key{ebiten.KeyA, ebiten.KeyLeft},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftLeft},
	},
	cfg.ActionRight: {
		Keys:                   []ebiten.Key{ebiten.KeyD, ebiten.KeyRight},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftRight},
	},
	cfg.ActionJump: {
		Keys:                   []ebiten.Key{ebiten.KeySpace},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightBottom},
	},
	cfg.ActionCatch: {
		Keys:                   []ebiten.Key{ebiten.KeyE},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightLeft},
	},
	cfg.ActionSkill: {
		Keys:                   []ebiten.Key{ebiten.KeyQ, ebiten.KeyShiftLeft},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightRight},
	},
	cfg.ActionToggleView: {
		Keys:                   []ebiten.Key{ebiten.KeyV},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightTop},
	},
}

const (
	analogDeadzone = 0.25
	stickLookSpeed = 12.0 // pixels of pointer travel per frame at full deflection
)

// InputSampler polls keyboard, mouse and gamepads once per frame.
type InputSampler struct {
	data       components.InputData
	gamepadIDs []ebiten.GamepadID

	cursorX, cursorY int
	haveCursor       bool
}

func NewInputSampler() *InputSampler {
	return &InputSampler{}
}

// Sample reads the devices and advances the stored frame.
func (s *InputSampler) Sample() *components.InputData {
	var pressed [cfg.ActionCount]bool

	s.gamepadIDs = ebiten.AppendGamepadIDs(s.gamepadIDs[:0])

	for actionID, binding := range Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				pressed[actionID] = true
			}
		}
		for _, gpID := range s.gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					pressed[actionID] = true
				}
			}
		}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && s.captured() {
		pressed[cfg.ActionCatch] = true
	}

	look := s.pointerDelta()
	s.mergeSticks(&pressed, &look)

	s.data.Advance(pressed, look)
	return &s.data
}

// ToggleViewPressed reports a rising edge on the view toggle.
func (s *InputSampler) ToggleViewPressed() bool {
	return s.data.JustPressed(cfg.ActionToggleView)
}

func (s *InputSampler) captured() bool {
	return ebiten.CursorMode() == ebiten.CursorModeCaptured
}

// pointerDelta returns cursor movement while the pointer is captured. A
// click captures it and Escape releases it.
func (s *InputSampler) pointerDelta() components.LookDelta {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		s.haveCursor = false
	}
	if !s.captured() && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		s.haveCursor = false
	}

	x, y := ebiten.CursorPosition()
	defer func() { s.cursorX, s.cursorY = x, y }()

	if !s.captured() || !s.haveCursor {
		s.haveCursor = s.captured()
		return components.LookDelta{}
	}
	return components.LookDelta{DX: float64(x - s.cursorX), DY: float64(y - s.cursorY)}
}

// mergeSticks folds the left stick into movement and the right stick into
// look.
func (s *InputSampler) mergeSticks(pressed *[cfg.ActionCount]bool, look *components.LookDelta) {
	for _, gpID := range s.gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}

		h := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal)
		v := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickVertical)
		if h < -analogDeadzone {
			pressed[cfg.ActionLeft] = true
		}
		if h > analogDeadzone {
			pressed[cfg.ActionRight] = true
		}
		if v < -analogDeadzone {
			pressed[cfg.ActionForward] = true
		}
		if v > analogDeadzone {
			pressed[cfg.ActionBackward] = true
		}

		rh := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisRightStickHorizontal)
		rv := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisRightStickVertical)
		if rh < -analogDeadzone || rh > analogDeadzone {
			look.DX += rh * stickLookSpeed
		}
		if rv < -analogDeadzone || rv > analogDeadzone {
			look.DY += rv * stickLookSpeed
		}
	}
}
