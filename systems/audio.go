package systems

import (
	"log"
	"sync"

	"github.com/automoto/giftrush/assets"
	"github.com/automoto/giftrush/components"
	cfg "github.com/automoto/giftrush/config"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Sink plays sound cues.
type Sink interface {
	Play(id cfg.SoundID)
}

// Global audio state - created once and shared across all scenes
var (
	globalAudioContext *audio.Context
	globalAudioLoader  *assets.AudioLoader
	globalSFXVolume    = cfg.Audio.SFXVolume
	globalMuted        = cfg.Audio.Muted
	audioInitOnce      sync.Once
)

// initGlobalAudio initializes the global audio context (called once)
func initGlobalAudio() {
	audioInitOnce.Do(func() {
		globalAudioContext = audio.NewContext(assets.SampleRate)
		globalAudioLoader = assets.NewAudioLoader(globalAudioContext)
	})
}

// PreloadAllSFX renders the cue tones at startup.
func PreloadAllSFX() {
	initGlobalAudio()
	globalAudioLoader.PreloadSFX()
}

// ToneSink plays cues through the shared ebiten audio context.
type ToneSink struct{}

func (ToneSink) Play(id cfg.SoundID) {
	initGlobalAudio()
	if globalMuted || globalSFXVolume <= 0 {
		return
	}

	player, err := globalAudioLoader.LoadSFX(id)
	if err != nil {
		log.Printf("[audio] %v", err)
		return
	}
	player.SetVolume(globalSFXVolume)
	player.Play()
}

// SetSFXVolume sets the volume used for cues played from now on.
func SetSFXVolume(v float64) {
	globalSFXVolume = max(0, min(1, v))
}

// SetMuted silences or restores cue playback.
func SetMuted(muted bool) {
	globalMuted = muted
}

// UpdateAudio drains the queued cues into sink.
func UpdateAudio(queue *components.AudioData, sink Sink) {
	if queue == nil || sink == nil {
		return
	}
	if queue.Dropped > 0 {
		log.Printf("[audio] dropped %d cues", queue.Dropped)
		queue.Dropped = 0
	}
	for _, id := range queue.Drain() {
		sink.Play(id)
	}
}
