package components

import (
	cfg "github.com/automoto/giftrush/config"
	"github.com/yohamta/donburi"
)

// AudioData stores cues raised this frame until the audio system hands them
// to the sink (singleton component).
type AudioData struct {
	PendingSFX []cfg.SoundID
	Dropped    int // Cues discarded because the queue was full
}

var Audio = donburi.NewComponentType[AudioData]()

// Queue appends cues, dropping the oldest beyond limit (limit <= 0 means no
// limit).
func (a *AudioData) Queue(limit int, cues ...cfg.SoundID) {
	a.PendingSFX = append(a.PendingSFX, cues...)
	if limit > 0 && len(a.PendingSFX) > limit {
		over := len(a.PendingSFX) - limit
		a.Dropped += over
		a.PendingSFX = append(a.PendingSFX[:0], a.PendingSFX[over:]...)
	}
}

// Drain returns the queued cues and empties the queue.
func (a *AudioData) Drain() []cfg.SoundID {
	out := append([]cfg.SoundID(nil), a.PendingSFX...)
	a.PendingSFX = a.PendingSFX[:0]
	return out
}
