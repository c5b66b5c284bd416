package netplay

import (
	"time"

	"github.com/automoto/giftrush/config"
)

// Settings is the tuning a Session runs with.
type Settings struct {
	Net       config.NetConfig
	Movement  config.MovementConfig
	Interp    config.InterpConfig
	Animation config.AnimationConfig
	Camera    config.CameraConfig
	Audio     config.AudioConfig

	MaxFrameDelta time.Duration
}

// DefaultSettings copies the current global configuration.
func DefaultSettings() Settings {
	return Settings{
		Net:           config.Net,
		Movement:      config.Movement,
		Interp:        config.Interp,
		Animation:     config.Animation,
		Camera:        config.Camera,
		Audio:         config.Audio,
		MaxFrameDelta: config.C.MaxFrameDelta,
	}
}
