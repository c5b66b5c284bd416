package animation

import (
	"testing"
	"time"

	"github.com/automoto/giftrush/config"
	"github.com/automoto/giftrush/shared/netconfig"
	"github.com/automoto/giftrush/timer"
	"github.com/automoto/giftrush/timer/timertest"
	"github.com/go-gl/mathgl/mgl64"
)

func testAnimationConfig() config.AnimationConfig {
	return config.AnimationConfig{
		RunThreshold:    0.5,
		AirborneSpeed:   0.5,
		PunchWindow:     500 * time.Millisecond,
		StunWindow:      500 * time.Millisecond,
		JumpCueCooldown: 300 * time.Millisecond,
	}
}

func newTestMachine() (*Machine, *timertest.Clock) {
	clock := timertest.NewClock()
	return NewMachine(testAnimationConfig(), timer.NewRegistry(clock)), clock
}

func TestLocomotion(t *testing.T) {
	cases := []struct {
		name  string
		kind  netconfig.CharacterKind
		gifts int
		vel   mgl64.Vec3
		want  netconfig.StateID
	}{
		{"idle", netconfig.KindRabbit, 0, mgl64.Vec3{}, netconfig.Idle},
		{"idle with cargo", netconfig.KindRabbit, 2, mgl64.Vec3{}, netconfig.IdleCargo},
		{"run", netconfig.KindRabbit, 0, mgl64.Vec3{3, 0, 0}, netconfig.Run},
		{"run with cargo", netconfig.KindRabbit, 1, mgl64.Vec3{0, 0, -3}, netconfig.RunCargo},
		{"threshold is exclusive", netconfig.KindRabbit, 0, mgl64.Vec3{0.5, 0, 0}, netconfig.Idle},
		{"vertical speed is not running", netconfig.KindRabbit, 0, mgl64.Vec3{0, 0.4, 0}, netconfig.Idle},
		{"ghost idle", netconfig.KindGhost, 0, mgl64.Vec3{}, netconfig.FlyingIdle},
		{"ghost running", netconfig.KindGhost, 3, mgl64.Vec3{4, 0, 0}, netconfig.FlyingIdle},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, _ := newTestMachine()
			got := m.Update(Input{Kind: c.kind, GiftCount: c.gifts, Velocity: c.vel})
			if got != c.want {
				t.Errorf("state = %v, want %v", got, c.want)
			}
		})
	}
}

func TestStolenFreezesWithoutRetrigger(t *testing.T) {
	m, clock := newTestMachine()

	if got := m.Update(Input{Stolen: true}); got != netconfig.Duck {
		t.Fatalf("stolen rising edge = %v, want Duck", got)
	}
	if cues := m.DrainCues(); len(cues) != 1 || cues[0] != config.SoundStolen {
		t.Fatalf("cues = %v, want one stolen cue", cues)
	}

	// Inside the stun window nothing else applies, not even a steal.
	for i := 0; i < 4; i++ {
		clock.Advance(100 * time.Millisecond)
		if got := m.Update(Input{Stolen: true, Steal: true, Velocity: mgl64.Vec3{5, 0, 0}}); got != netconfig.Duck {
			t.Fatalf("frame %d during stun = %v, want Duck", i, got)
		}
	}
	if cues := m.DrainCues(); len(cues) != 0 {
		t.Errorf("cues during stun = %v", cues)
	}

	// Stun over while the flag is still set: no new edge, no re-trigger.
	clock.Advance(200 * time.Millisecond)
	if got := m.Update(Input{Stolen: true}); got != netconfig.Idle {
		t.Errorf("held stolen after stun = %v, want Idle", got)
	}
	if len(m.DrainCues()) != 0 {
		t.Error("held stolen flag re-triggered the cue")
	}

	m.Update(Input{})
	if got := m.Update(Input{Stolen: true}); got != netconfig.Duck {
		t.Errorf("new rising edge = %v, want Duck", got)
	}
}

func TestStunSuppressesJumpCue(t *testing.T) {
	m, clock := newTestMachine()
	m.Update(Input{Stolen: true, Jumped: true})
	clock.Advance(100 * time.Millisecond)
	m.Update(Input{Stolen: true, Jumped: true, Airborne: true})

	for _, c := range m.DrainCues() {
		if c == config.SoundJump {
			t.Fatal("jump cue emitted while stunned")
		}
	}

	clock.Advance(500 * time.Millisecond)
	m.Update(Input{Jumped: true, Airborne: true})
	if cues := m.DrainCues(); len(cues) != 1 || cues[0] != config.SoundJump {
		t.Errorf("cues after stun = %v, want one jump cue", cues)
	}
}

func TestPunchRestartGate(t *testing.T) {
	m, clock := newTestMachine()

	punches := 0
	for i := 0; i < 5; i++ {
		if got := m.Update(Input{Steal: true}); got != netconfig.Punch {
			t.Fatalf("frame %d = %v, want Punch", i, got)
		}
		for _, c := range m.DrainCues() {
			if c == config.SoundPunch {
				punches++
			}
		}
		clock.Advance(100 * time.Millisecond)
	}
	if punches != 1 {
		t.Errorf("punch cues within 500ms = %d, want 1", punches)
	}

	m.Update(Input{Steal: true})
	if cues := m.DrainCues(); len(cues) != 1 || cues[0] != config.SoundPunch {
		t.Errorf("cue after window = %v, want punch", cues)
	}
	if m.Rule() != "steal" {
		t.Errorf("Rule = %q", m.Rule())
	}
}

func TestAirborneAndJumpCue(t *testing.T) {
	m, clock := newTestMachine()

	if got := m.Update(Input{Airborne: true, Jumped: true, Velocity: mgl64.Vec3{3, 5, 0}}); got != netconfig.Jump {
		t.Fatalf("airborne = %v, want Jump", got)
	}
	m.Update(Input{Jumped: true})
	if cues := m.DrainCues(); len(cues) != 1 || cues[0] != config.SoundJump {
		t.Errorf("cues = %v, want a single jump cue", cues)
	}

	clock.Advance(300 * time.Millisecond)
	m.Update(Input{Jumped: true})
	if len(m.DrainCues()) != 1 {
		t.Error("jump cue must be available again after the cooldown")
	}

	if got := m.Update(Input{Airborne: true, Steal: true}); got != netconfig.Punch {
		t.Errorf("steal while airborne = %v, want Punch", got)
	}
}

func TestAirborneHelper(t *testing.T) {
	cfg := testAnimationConfig()
	if Airborne(mgl64.Vec3{9, 0.4, 0}, cfg) || !Airborne(mgl64.Vec3{0, -0.6, 0}, cfg) {
		t.Error("Airborne must only look at vertical speed")
	}
}

func TestName(t *testing.T) {
	m, _ := newTestMachine()
	m.Update(Input{GiftCount: 1, Velocity: mgl64.Vec3{2, 0, 0}})
	if got := m.Name(netconfig.KindRabbit); got != "CharacterArmature|Run_Gun" {
		t.Errorf("Name = %q", got)
	}
}

func TestCloseCancelsWindows(t *testing.T) {
	clock := timertest.NewClock()
	timers := timer.NewRegistry(clock)
	m := NewMachine(testAnimationConfig(), timers)

	m.Update(Input{Stolen: true})
	m.Update(Input{Stolen: true, Steal: true})
	if clock.Pending() == 0 {
		t.Fatal("expected pending windows")
	}

	m.Close()
	m.Close()
	if clock.Pending() != 0 || timers.Pending() != 0 {
		t.Errorf("pending after Close: clock=%d registry=%d", clock.Pending(), timers.Pending())
	}

	fired := clock.Fired
	clock.Advance(time.Second)
	if clock.Fired != fired {
		t.Error("a timer fired after Close")
	}
}
