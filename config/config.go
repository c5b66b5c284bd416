package config

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// NetConfig contains channel and outbound throttling configuration
type NetConfig struct {
	ServerAddr string `yaml:"serverAddr"`
	PlayerName string `yaml:"playerName"`
	Version    string `yaml:"version"`

	// Outbound gate
	SendInterval      time.Duration `yaml:"sendInterval"`      // Minimum time between two movement sends
	PositionThreshold float64       `yaml:"positionThreshold"` // Per-axis change that counts as movement

	// Intent rate limits (client-side, optimistic)
	StealCooldown      time.Duration `yaml:"stealCooldown"`
	SkillRequestWindow time.Duration `yaml:"skillRequestWindow"`

	OutboundQueue     int           `yaml:"outboundQueue"`     // Buffered outbound messages before latest-wins kicks in
	ReconnectInterval time.Duration `yaml:"reconnectInterval"` // Minimum time between dial attempts
}

// MovementConfig contains local prediction tuning
type MovementConfig struct {
	Speed             float64 `yaml:"speed"`             // Units per second on the ground plane
	JumpImpulse       float64 `yaml:"jumpImpulse"`       // Vertical velocity set on jump
	Gravity           float64 `yaml:"gravity"`           // Units per second squared
	MaxFallSpeed      float64 `yaml:"maxFallSpeed"`      // Terminal vertical speed
	RotationSmoothing float64 `yaml:"rotationSmoothing"` // Body yaw easing rate (1/s)

	// Soft correction against authoritative snapshots
	CorrectionDeadzone     float64 `yaml:"correctionDeadzone"`     // Errors below this are ignored
	CorrectionSnapDistance float64 `yaml:"correctionSnapDistance"` // Errors above this snap
	CorrectionSmoothing    float64 `yaml:"correctionSmoothing"`    // Easing rate for errors in between (1/s)
}

// InterpConfig contains remote character smoothing configuration
type InterpConfig struct {
	Smoothing         float64 `yaml:"smoothing"`         // Position easing rate (1/s)
	RotationSmoothing float64 `yaml:"rotationSmoothing"` // Yaw easing rate (1/s)
	TeleportDistance  float64 `yaml:"teleportDistance"`  // Deltas beyond this snap instead of easing
	Epsilon           float64 `yaml:"epsilon"`           // Converged distance, snaps to target
	MovingThreshold   float64 `yaml:"movingThreshold"`   // Ground speed needed before yaw follows velocity
}

// AnimationConfig contains animation state machine configuration
type AnimationConfig struct {
	RunThreshold    float64       `yaml:"runThreshold"`    // Ground speed above which locomotion is Run
	AirborneSpeed   float64       `yaml:"airborneSpeed"`   // Vertical speed treated as airborne for remotes
	PunchWindow     time.Duration `yaml:"punchWindow"`     // Gate for restarting the punch animation
	StunWindow      time.Duration `yaml:"stunWindow"`      // Stolen-from freeze
	JumpCueCooldown time.Duration `yaml:"jumpCueCooldown"` // Minimum time between two jump cues
}

// MountConfig holds fixed visual offsets supplied by the renderer
type MountConfig struct {
	Head         mgl64.Vec3 `yaml:"head"`         // Look-at point relative to the character origin
	Eye          mgl64.Vec3 `yaml:"eye"`          // First-person camera point
	CameraTarget mgl64.Vec3 `yaml:"cameraTarget"` // Look-ahead target in character-local space
}

// CameraConfig contains camera rig configuration
type CameraConfig struct {
	Height   float64 `yaml:"height"`   // Base height above the character
	Distance float64 `yaml:"distance"` // Base distance behind the character

	FollowSmoothing float64 `yaml:"followSmoothing"` // Position easing rate (1/s)
	LookAtSmoothing float64 `yaml:"lookAtSmoothing"` // Look-at easing rate (1/s)

	Sensitivity float64 `yaml:"sensitivity"` // Radians per pixel of pointer movement
	MinPitch    float64 `yaml:"minPitch"`
	MaxPitch    float64 `yaml:"maxPitch"`

	// Skill zoom-out
	SkillExtraHeight   float64 `yaml:"skillExtraHeight"`
	SkillExtraDistance float64 `yaml:"skillExtraDistance"`
	ZoomDuration       float64 `yaml:"zoomDuration"` // Seconds

	FirstPerson bool        `yaml:"firstPerson"`
	Mounts      MountConfig `yaml:"mounts"`
}

// ArenaConfig describes how the TMX arena maps to world space
type ArenaConfig struct {
	Path          string  `yaml:"path"`          // TMX path inside the assets filesystem
	UnitsPerPixel float64 `yaml:"unitsPerPixel"` // TMX pixels to world units
	FloorHeight   float64 `yaml:"floorHeight"`   // Height of the infinite floor
}

// Config holds general client configuration
type Config struct {
	Width         int           `yaml:"width"`
	Height        int           `yaml:"height"`
	TPS           int           `yaml:"tps"`
	MaxFrameDelta time.Duration `yaml:"maxFrameDelta"` // Frame deltas are clamped to this
	Offline       bool          `yaml:"offline"`
}

// Global configuration instances
var C *Config
var Net NetConfig
var Movement MovementConfig
var Interp InterpConfig
var Animation AnimationConfig
var Camera CameraConfig
var Arena ArenaConfig

func init() {
	C = &Config{
		Width:         960,
		Height:        540,
		TPS:           60,
		MaxFrameDelta: 100 * time.Millisecond,
	}

	Net = NetConfig{
		ServerAddr: "localhost:8080",
		PlayerName: "player",
		Version:    "0.1.0",

		SendInterval:      50 * time.Millisecond,
		PositionThreshold: 0.05,

		StealCooldown:      1000 * time.Millisecond,
		SkillRequestWindow: 1000 * time.Millisecond,

		OutboundQueue:     8,
		ReconnectInterval: 2 * time.Second,
	}

	Movement = MovementConfig{
		Speed:             5.0,
		JumpImpulse:       7.0,
		Gravity:           20.0,
		MaxFallSpeed:      30.0,
		RotationSmoothing: 12.0,

		CorrectionDeadzone:     1.0,
		CorrectionSnapDistance: 4.0,
		CorrectionSmoothing:    6.0,
	}

	Interp = InterpConfig{
		Smoothing:         10.0,
		RotationSmoothing: 10.0,
		TeleportDistance:  5.0,
		Epsilon:           0.001,
		MovingThreshold:   0.1,
	}

	Animation = AnimationConfig{
		RunThreshold:    0.5,
		AirborneSpeed:   0.5,
		PunchWindow:     500 * time.Millisecond,
		StunWindow:      500 * time.Millisecond,
		JumpCueCooldown: 300 * time.Millisecond,
	}

	Camera = CameraConfig{
		Height:   10.0,
		Distance: 15.0,

		FollowSmoothing: 8.0,
		LookAtSmoothing: 10.0,

		Sensitivity: 0.003,
		MinPitch:    -0.6,
		MaxPitch:    0.9,

		SkillExtraHeight:   4.0,
		SkillExtraDistance: 6.0,
		ZoomDuration:       0.6,

		Mounts: MountConfig{
			Head:         mgl64.Vec3{0, 1.6, 0},
			Eye:          mgl64.Vec3{0, 1.5, 0.2},
			CameraTarget: mgl64.Vec3{0, 0, 6},
		},
	}

	Arena = ArenaConfig{
		Path:          "levels/arena.tmx",
		UnitsPerPixel: 1.0 / 16.0,
		FloorHeight:   0,
	}
}
