package scenes

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/automoto/giftrush/components"
	cfg "github.com/automoto/giftrush/config"
	"github.com/automoto/giftrush/netplay"
	"github.com/automoto/giftrush/network"
	"github.com/automoto/giftrush/shared/gamemath"
	"github.com/automoto/giftrush/shared/leveldata"
	"github.com/automoto/giftrush/shared/netcomponents"
	"github.com/automoto/giftrush/shared/netconfig"
	"github.com/automoto/giftrush/systems"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const layerDefault ecs.LayerID = 0

const closeTimeout = time.Second

// offlineID names the local character when no server is attached.
const offlineID = "local"

// NetworkedScene runs one match: it samples input, steps the session, plays
// cues and draws the arena. With a nil client it runs offline against the
// arena alone.
type NetworkedScene struct {
	ecs     *ecs.ECS
	session *netplay.Session
	client  *network.Client
	cancel  context.CancelFunc
	done    chan struct{}

	arena  *leveldata.ArenaData
	ground *gamemath.Ground
	input  *systems.InputSampler
	sink   systems.Sink

	lastFrame time.Time
	once      sync.Once
	closeOnce sync.Once
}

func NewNetworkedScene(arena *leveldata.ArenaData, ground *gamemath.Ground, client *network.Client) *NetworkedScene {
	return &NetworkedScene{
		arena:  arena,
		ground: ground,
		client: client,
		input:  systems.NewInputSampler(),
		sink:   systems.ToneSink{},
	}
}

func (ns *NetworkedScene) Update() {
	ns.once.Do(ns.configure)
	ns.ecs.Update()
}

func (ns *NetworkedScene) Draw(screen *ebiten.Image) {
	if ns.ecs == nil {
		return
	}
	ns.ecs.Draw(screen)
}

// FirstPerson reports whether the camera is in first-person view.
func (ns *NetworkedScene) FirstPerson() bool {
	return ns.session != nil && ns.session.Camera().Mode == components.FirstPerson
}

// Close tears the session down, stops the connection loop and drops the
// connection.
func (ns *NetworkedScene) Close() {
	ns.closeOnce.Do(func() {
		if ns.session != nil {
			ns.session.Close()
		}
		if ns.cancel != nil {
			ns.cancel()
			select {
			case <-ns.done:
			case <-time.After(closeTimeout):
				log.Println("[client] connection loop did not stop in time")
			}
		}
		if ns.client != nil {
			ns.client.Disconnect()
		}
	})
}

func (ns *NetworkedScene) configure() {
	systems.PreloadAllSFX()

	ns.ecs = ecs.NewECS(donburi.NewWorld())

	var ground network.GroundProbe
	if ns.ground != nil {
		ground = ns.ground
	}
	ns.session = netplay.NewSession(ns.ecs.World, netplay.DefaultSettings(), ground, nil)

	if ns.client != nil {
		ns.session.Attach(ns.client)
		ctx, cancel := context.WithCancel(context.Background())
		ns.cancel = cancel
		ns.done = make(chan struct{})
		go func() {
			defer close(ns.done)
			if err := ns.client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("[client] stopped: %v", err)
			}
		}()
	} else {
		ns.session.Spawn(ns.offlineCharacter())
	}

	ns.ecs.AddSystem(ns.step)
	ns.ecs.AddRenderer(layerDefault, ns.drawWorld)
	ns.ecs.AddRenderer(layerDefault, ns.drawHUD)
}

// offlineCharacter places the local character on the first spawn point.
func (ns *NetworkedScene) offlineCharacter() netcomponents.CharacterData {
	pos := mgl64.Vec3{0, cfg.Arena.FloorHeight, 0}
	if ns.arena != nil && len(ns.arena.SpawnPoints) > 0 {
		sp := ns.arena.SpawnPoints[0]
		pos = mgl64.Vec3{sp.X * cfg.Arena.UnitsPerPixel, 0, sp.Y * cfg.Arena.UnitsPerPixel}
	}
	pos[1] = ns.ground.SurfaceHeight(pos)

	return netcomponents.CharacterData{
		ID:                 offlineID,
		Position:           pos,
		Nickname:           cfg.Net.PlayerName,
		Kind:               netconfig.KindRabbit,
		TotalSkillCooldown: 5000,
	}
}

func (ns *NetworkedScene) step(_ *ecs.ECS) {
	now := time.Now()
	dt := 1.0 / float64(cfg.C.TPS)
	if !ns.lastFrame.IsZero() {
		dt = now.Sub(ns.lastFrame).Seconds()
	}
	ns.lastFrame = now

	in := ns.input.Sample()
	ns.session.Step(netplay.Frame{
		Now:        now,
		DT:         dt,
		Controls:   in.Snapshot(),
		Look:       in.Look,
		ToggleView: ns.input.ToggleViewPressed(),
	})
	systems.UpdateAudio(ns.session.Audio(), ns.sink)
}

func (ns *NetworkedScene) drawWorld(_ *ecs.ECS, screen *ebiten.Image) {
	systems.DrawWorld(screen, systems.WorldView{
		Characters:    ns.session.RenderStates(),
		Camera:        ns.session.Camera(),
		Arena:         ns.arena,
		UnitsPerPixel: cfg.Arena.UnitsPerPixel,
	})
}

func (ns *NetworkedScene) drawHUD(_ *ecs.ECS, screen *ebiten.Image) {
	info := systems.HUDInfo{
		Match:    ns.session.Match(),
		Camera:   ns.session.Camera(),
		Rejected: ns.session.Synchronizer().Rejected(),
		Offline:  ns.client == nil,
	}
	if ns.client != nil {
		info.Connection = ns.client.State().String()
		info.ServerName = ns.client.ServerName()
	}

	states := ns.session.RenderStates()
	for i := range states {
		if states[i].Local {
			info.Local = &states[i]
			break
		}
	}
	systems.DrawHUD(screen, info)

	if info.Local == nil {
		msg := "waiting for server"
		if ns.client != nil && ns.client.LastError() != nil {
			msg = ns.client.LastError().Error()
		}
		systems.DrawBanner(screen, msg)
	}
}
