package config

// SoundID represents a logical sound cue handed to the audio sink
type SoundID int

const (
	SoundNone SoundID = iota
	SoundJump
	SoundPunch
	SoundStolen
)

var soundNames = map[SoundID]string{
	SoundNone:   "none",
	SoundJump:   "jump",
	SoundPunch:  "punch",
	SoundStolen: "stolen",
}

func (s SoundID) String() string {
	if name, ok := soundNames[s]; ok {
		return name
	}
	return "unknown"
}

// AudioConfig contains audio sink configuration values
type AudioConfig struct {
	Muted      bool    `yaml:"muted"`
	SFXVolume  float64 `yaml:"sfxVolume"`  // 0.0 - 1.0
	QueueLimit int     `yaml:"queueLimit"` // Cues kept per frame before the oldest is dropped
}

var Audio AudioConfig

func init() {
	Audio = AudioConfig{
		SFXVolume:  1.0,
		QueueLimit: 16,
	}
}
