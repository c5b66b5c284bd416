package components

import (
	"testing"

	cfg "github.com/automoto/giftrush/config"
)

func TestAudioQueueDropsOldest(t *testing.T) {
	var a AudioData
	a.Queue(2, cfg.SoundJump)
	a.Queue(2, cfg.SoundPunch, cfg.SoundStolen)

	got := a.Drain()
	if len(got) != 2 || got[0] != cfg.SoundPunch || got[1] != cfg.SoundStolen {
		t.Errorf("Drain = %v, want [punch stolen]", got)
	}
	if a.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", a.Dropped)
	}
	if len(a.Drain()) != 0 {
		t.Error("queue not emptied")
	}
}

func TestControllerCloseZeroValue(t *testing.T) {
	var c ControllerData
	c.Close()
}
