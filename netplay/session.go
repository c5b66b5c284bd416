// Package netplay runs the client side of a match: it turns the character
// registry into entities, predicts the local character, and produces what
// the renderer draws each frame.
package netplay

import (
	"log"
	"sort"
	"time"

	"github.com/automoto/giftrush/animation"
	"github.com/automoto/giftrush/archetypes"
	"github.com/automoto/giftrush/components"
	"github.com/automoto/giftrush/network"
	"github.com/automoto/giftrush/shared/netcomponents"
	"github.com/automoto/giftrush/shared/netconfig"
	"github.com/automoto/giftrush/tags"
	"github.com/automoto/giftrush/timer"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// Frame is the input to one Step.
type Frame struct {
	Now        time.Time
	DT         float64 // seconds since the previous frame
	Controls   components.ControlSnapshot
	Look       components.LookDelta
	ToggleView bool
}

// RenderState is everything the renderer needs for one character.
type RenderState struct {
	ID          string
	Position    mgl64.Vec3
	Yaw         float64
	State       netconfig.StateID
	Animation   string
	Nickname    string
	Color       string
	Kind        netconfig.CharacterKind
	GiftCount   int
	Transparent bool // skill active
	Protected   bool // inside the post-steal protection window
	Local       bool
}

// CameraView is the camera pose for the renderer.
type CameraView struct {
	Position mgl64.Vec3
	LookAt   mgl64.Vec3
	Mode     components.CameraMode
}

// Session owns every per-character controller and drives one frame at a
// time from the game loop. It is not safe for concurrent use; only the
// registry and synchronizer are touched from network goroutines.
type Session struct {
	world    donburi.World
	settings Settings
	clock    timer.Clock

	registry  *network.Registry
	sync      *network.Synchronizer
	predictor *network.Predictor

	characters map[string]donburi.Entity
	camera     donburi.Entity
	audio      donburi.Entity
	match      donburi.Entity

	authVersion   uint64 // last snapshot folded into the prediction
	entityVersion uint64 // snapshot the character entities were last copied from
	targetVersion uint64 // last snapshot pushed to remote interpolation
	last          network.PredictionResult
	closed        bool
}

// NewSession builds a session in w. ground may be nil for a flat floor at
// zero; a nil clock uses the system clock.
func NewSession(w donburi.World, settings Settings, ground network.GroundProbe, clock timer.Clock) *Session {
	if clock == nil {
		clock = timer.SystemClock()
	}
	registry := network.NewRegistry()

	s := &Session{
		world:      w,
		settings:   settings,
		clock:      clock,
		registry:   registry,
		sync:       network.NewSynchronizer(settings.Net, registry, clock),
		predictor:  network.NewPredictor(settings.Movement, ground),
		characters: make(map[string]donburi.Entity),
	}

	camera := archetypes.Camera.Spawn(w)
	components.CameraRig.SetValue(camera, components.NewCameraRig(settings.Camera))
	s.camera = camera.Entity()
	s.audio = archetypes.Audio.Spawn(w).Entity()
	s.match = archetypes.Match.Spawn(w).Entity()
	return s
}

// Attach connects the session to a channel. Passing nil runs offline.
func (s *Session) Attach(ch network.Channel) {
	s.sync.Attach(ch)
}

// Registry returns the read-only character registry.
func (s *Session) Registry() network.PlayerView { return s.registry }

// Synchronizer returns the session's synchronizer.
func (s *Session) Synchronizer() *network.Synchronizer { return s.sync }

// Spawn places a local-only character, used when running without a server.
func (s *Session) Spawn(c netcomponents.CharacterData) {
	s.registry.SetLocalID(c.ID)
	s.registry.Replace([]netcomponents.CharacterData{c}, 0)
}

// Step runs one frame: entities, prediction, outbound gate, remote
// smoothing, animation, camera, audio, in that order.
func (s *Session) Step(f Frame) {
	if s.closed {
		return
	}
	dt := s.clampDT(f.DT)

	s.syncEntities()

	rig := components.CameraRig.Get(s.world.Entry(s.camera))
	if f.ToggleView {
		rig.ToggleMode()
	}
	rig.Look(f.Look, s.settings.Camera)

	local, hasLocal := s.predictLocal(f.Controls, rig.Yaw, dt)

	if hasLocal {
		s.sync.TickLocal(f.Now, local, network.Intent{Steal: s.last.WantsSteal, Skill: s.last.WantsSkill})
	}

	s.interpolateRemotes(dt)
	s.animate()

	if hasLocal {
		rig.SetSkillActive(local.IsSkillActive, s.settings.Camera)
		rig.Update(local.Position, s.settings.Camera, dt)
	}

	match := netcomponents.NetMatch.Get(s.world.Entry(s.match))
	match.RemainRunningTime = s.registry.RemainRunningTime()
	match.Players = len(s.characters)
}

func (s *Session) clampDT(dt float64) float64 {
	if dt < 0 {
		return 0
	}
	if limit := s.settings.MaxFrameDelta.Seconds(); limit > 0 && dt > limit {
		return limit
	}
	return dt
}

// syncEntities creates, updates and reaps character entities so they match
// the registry. Reaped controllers are closed before removal.
func (s *Session) syncEntities() {
	localID := s.registry.LocalID()
	present := make(map[string]struct{}, len(s.characters))

	chars, version := s.registry.Snapshot()
	s.entityVersion = version

	for _, c := range chars {
		present[c.ID] = struct{}{}
		isLocal := c.ID == localID

		entity, ok := s.characters[c.ID]
		if ok && s.world.Valid(entity) && s.world.Entry(entity).HasComponent(tags.Local) != isLocal {
			s.remove(c.ID)
			ok = false
		}
		if !ok {
			entity = s.create(c, isLocal)
		}
		*netcomponents.Character.Get(s.world.Entry(entity)) = c
	}

	for id := range s.characters {
		if _, ok := present[id]; !ok {
			s.remove(id)
		}
	}
}

func (s *Session) create(c netcomponents.CharacterData, local bool) donburi.Entity {
	var entry *donburi.Entry
	if local {
		entry = archetypes.LocalCharacter.Spawn(s.world)
	} else {
		entry = archetypes.RemoteCharacter.Spawn(s.world)
	}

	components.Controller.SetValue(entry, components.ControllerData{
		Machine: animation.NewMachine(s.settings.Animation, timer.NewRegistry(s.clock)),
		Local:   local,
	})

	s.characters[c.ID] = entry.Entity()
	log.Printf("[netplay] character %q joined (local=%v)", c.ID, local)
	return entry.Entity()
}

func (s *Session) remove(id string) {
	entity, ok := s.characters[id]
	delete(s.characters, id)
	if !ok || !s.world.Valid(entity) {
		return
	}

	entry := s.world.Entry(entity)
	components.Controller.Get(entry).Close()
	if entry.HasComponent(tags.Local) {
		s.predictor.Reset()
		s.last = network.PredictionResult{}
	}
	s.world.Remove(entity)
	log.Printf("[netplay] character %q left", id)
}

// predictLocal folds the latest authoritative position into the prediction,
// advances it, and writes the result back to the registry.
func (s *Session) predictLocal(controls components.ControlSnapshot, cameraYaw, dt float64) (netcomponents.CharacterData, bool) {
	local, ok := s.registry.Local()
	if !ok {
		s.last = network.PredictionResult{}
		return local, false
	}

	if auth, version, ok := s.registry.AuthoritativeLocal(); ok && version != s.authVersion {
		s.authVersion = version
		seeded := s.predictor.Seeded()
		if s.predictor.Correct(auth.Position) == network.CorrectionSnap && seeded {
			log.Printf("[netplay] local position snapped to %v", auth.Position)
		}
	}

	s.last = s.predictor.Step(network.PredictionInput{
		Controls:   controls,
		CameraYaw:  cameraYaw,
		EventBlock: local.EventBlock,
		DT:         dt,
	})

	local.Position = s.last.Position
	local.Velocity = s.last.Velocity
	if err := s.registry.UpdateLocal(local); err != nil {
		log.Printf("[netplay] update local: %v", err)
	}
	if entity, ok := s.characters[local.ID]; ok {
		*netcomponents.Character.Get(s.world.Entry(entity)) = local
	}
	return local, true
}

func (s *Session) interpolateRemotes(dt float64) {
	retarget := s.entityVersion != s.targetVersion
	s.targetVersion = s.entityVersion

	for _, entity := range s.characters {
		entry := s.world.Entry(entity)
		if !entry.HasComponent(components.NetInterp) {
			continue
		}
		interp := components.NetInterp.Get(entry)
		if retarget || !interp.Initialized {
			c := netcomponents.Character.Get(entry)
			interp.SetTarget(c.Position, c.Velocity, s.settings.Interp)
		}
		interp.Step(s.settings.Interp, dt)
	}
}

func (s *Session) animate() {
	audio := components.Audio.Get(s.world.Entry(s.audio))

	for _, id := range s.sortedIDs() {
		entry := s.world.Entry(s.characters[id])
		c := netcomponents.Character.Get(entry)
		ctrl := components.Controller.Get(entry)

		in := animation.Input{
			Kind:      c.Kind,
			GiftCount: c.GiftCount,
			Velocity:  c.Velocity,
			Stolen:    c.StolenMotion,
		}
		if ctrl.Local {
			in.Steal = s.last.WantsSteal
			in.Airborne = !s.last.Grounded
			in.Jumped = s.last.Jumped
		} else {
			in.Steal = c.StealMotion
			in.Airborne = animation.Airborne(c.Velocity, s.settings.Animation)
		}

		ctrl.Machine.Update(in)
		audio.Queue(s.settings.Audio.QueueLimit, ctrl.Machine.DrainCues()...)
	}
}

func (s *Session) sortedIDs() []string {
	ids := make([]string, 0, len(s.characters))
	for id := range s.characters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RenderStates returns one entry per character, sorted by id.
func (s *Session) RenderStates() []RenderState {
	out := make([]RenderState, 0, len(s.characters))
	for _, id := range s.sortedIDs() {
		entry := s.world.Entry(s.characters[id])
		c := netcomponents.Character.Get(entry)
		ctrl := components.Controller.Get(entry)

		rs := RenderState{
			ID:          c.ID,
			Position:    c.Position,
			Yaw:         s.predictor.Yaw(),
			State:       ctrl.Machine.State(),
			Animation:   ctrl.Machine.Name(c.Kind),
			Nickname:    c.Nickname,
			Color:       c.Color,
			Kind:        c.Kind,
			GiftCount:   c.GiftCount,
			Transparent: c.IsSkillActive,
			Protected:   c.ProtectMotion > 0,
			Local:       ctrl.Local,
		}
		if entry.HasComponent(components.NetInterp) {
			interp := components.NetInterp.Get(entry)
			rs.Position = interp.Rendered
			rs.Yaw = interp.Yaw
		}
		out = append(out, rs)
	}
	return out
}

// Camera returns the current camera pose.
func (s *Session) Camera() CameraView {
	rig := components.CameraRig.Get(s.world.Entry(s.camera))
	return CameraView{Position: rig.Position, LookAt: rig.LookAt, Mode: rig.Mode}
}

// Audio returns the pending audio queue; the audio system drains it.
func (s *Session) Audio() *components.AudioData {
	return components.Audio.Get(s.world.Entry(s.audio))
}

// Match returns match-wide values from the latest snapshot.
func (s *Session) Match() netcomponents.NetMatchData {
	return *netcomponents.NetMatch.Get(s.world.Entry(s.match))
}

// Close tears down every character controller and detaches from the
// channel. Step is a no-op afterwards.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for id := range s.characters {
		s.remove(id)
	}
	s.sync.Close()
}
