package assets

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	cfg "github.com/automoto/giftrush/config"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate is the rate the audio context is opened with.
const SampleRate = 44100

// tone is a frequency sweep with a linear decay envelope.
type tone struct {
	from, to float64 // Hz
	length   float64 // seconds
	square   bool
	gain     float64
}

var tones = map[cfg.SoundID]tone{
	cfg.SoundJump:   {from: 440, to: 880, length: 0.12, gain: 0.35},
	cfg.SoundPunch:  {from: 180, to: 120, length: 0.08, square: true, gain: 0.3},
	cfg.SoundStolen: {from: 660, to: 220, length: 0.25, gain: 0.4},
}

// AudioLoader synthesizes the cue tones once and hands out players over the
// cached PCM.
type AudioLoader struct {
	sfxCache map[cfg.SoundID][]byte
	context  *audio.Context
}

// NewAudioLoader creates a new audio loader with the given context
func NewAudioLoader(ctx *audio.Context) *AudioLoader {
	return &AudioLoader{
		sfxCache: make(map[cfg.SoundID][]byte),
		context:  ctx,
	}
}

// PreloadSFX renders every cue so the first play has no synthesis lag.
func (l *AudioLoader) PreloadSFX() {
	for id := range tones {
		l.pcm(id)
	}
}

// LoadSFX returns a new player for the cue.
func (l *AudioLoader) LoadSFX(id cfg.SoundID) (*audio.Player, error) {
	data, ok := l.pcm(id)
	if !ok {
		return nil, fmt.Errorf("no tone for sound %s", id)
	}
	return l.context.NewPlayer(bytes.NewReader(data))
}

func (l *AudioLoader) pcm(id cfg.SoundID) ([]byte, bool) {
	if data, ok := l.sfxCache[id]; ok {
		return data, true
	}
	t, ok := tones[id]
	if !ok {
		return nil, false
	}
	data := synthesize(t, l.context.SampleRate())
	l.sfxCache[id] = data
	return data, true
}

// synthesize renders t as 16-bit little-endian stereo PCM.
func synthesize(t tone, sampleRate int) []byte {
	n := int(t.length * float64(sampleRate))
	out := make([]byte, n*4)

	phase := 0.0
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		freq := t.from + (t.to-t.from)*progress
		phase += 2 * math.Pi * freq / float64(sampleRate)

		v := math.Sin(phase)
		if t.square {
			v = math.Copysign(1, v)
		}
		v *= t.gain * (1 - progress)

		s := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(out[i*4:], s)
		binary.LittleEndian.PutUint16(out[i*4+2:], s)
	}
	return out
}
