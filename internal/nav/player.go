package nav

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"exhibition/internal/input"
	"exhibition/internal/scenegraph"
)

// Gaze receives the camera ray once per tick. The interaction raycast service implements it and
// applies its own throttle.
type Gaze interface {
	Update(dt float32, ray scenegraph.Ray)
}

// Option configures a Player.
type Option func(*Player)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Player) { p.log = log }
}

// WithIntents adds movement sources; their intents are OR-ed every tick.
func WithIntents(sources ...input.Source) Option {
	return func(p *Player) { p.sources = append(p.sources, sources...) }
}

// WithGaze sets the per-tick gaze consumer.
func WithGaze(g Gaze) Option {
	return func(p *Player) { p.gaze = g }
}

// Player is the first-person viewer: it sequences seating, orientation, locomotion, camera follow
// and gaze once per simulation tick. Everything runs on the caller's goroutine; input handlers
// only write to the orientation accumulator and the intent sources.
type Player struct {
	cfg     Config
	body    RigidBody
	orient  *Orientation
	loco    Locomotion
	seating *Seating
	follow  Follow
	pose    Pose
	sources []input.Source
	gaze    Gaze
	log     zerolog.Logger

	// rotationHeld is set by the presentation layer while a detail view is open.
	rotationHeld bool
}

// New returns a standing player with no body attached.
func New(cfg Config, opts ...Option) *Player {
	p := &Player{
		cfg:    cfg,
		orient: NewOrientation(cfg.PointerSensitivity, cfg.TouchSensitivity, cfg.pitchLimit()),
		loco:   Locomotion{Speed: cfg.Speed, Damping: cfg.Damping, Deadzone: cfg.Deadzone},
		follow: Follow{EyeHeight: cfg.EyeHeight},
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.orient.log = p.log
	p.seating = NewSeating(p.log)
	return p
}

// Attach binds the physics body and snaps the camera to its eye point.
func (p *Player) Attach(body RigidBody) {
	p.body = body
	if body != nil {
		p.pose.Position = p.follow.Eye(body.Translation())
	}
}

// Detach unbinds the body. Ticks become no-ops until the next Attach.
func (p *Player) Detach() {
	p.body = nil
}

// Body returns the attached body, or nil.
func (p *Player) Body() RigidBody { return p.body }

// Orientation exposes the rotation controller so the host can feed pointer and touch events.
func (p *Player) Orientation() *Orientation { return p.orient }

// SetOrientation sets the camera's yaw and pitch directly (spawn facing).
func (p *Player) SetOrientation(yaw, pitch float32) {
	p.orient.SetOrientation(yaw, pitch)
}

// Pose returns the camera pose after the last tick.
func (p *Player) Pose() Pose {
	pose := p.pose
	pose.Yaw = p.orient.Yaw()
	pose.Pitch = p.orient.Pitch()
	return pose
}

// Seated reports whether a seating session is active.
func (p *Player) Seated() bool { return p.seating.Seated() }

// Session returns the active seating session.
func (p *Player) Session() (Session, bool) { return p.seating.Session() }

// Tick advances the viewer by dt seconds. Call after the physics step so seating pins the
// integrated body.
func (p *Player) Tick(dt float32) {
	if p.body == nil {
		p.orient.Discard()
		return
	}

	if p.seating.Seated() {
		p.orient.Discard()
		p.seating.Tick(p.body)
		p.follow.Update(&p.pose, p.body.Translation(), p.cfg.SeatedFollowFactor, dt)
	} else {
		p.orient.Apply()
		var sources []input.Intents
		for _, s := range p.sources {
			sources = append(sources, s.Intents())
		}
		p.loco.Apply(p.body, input.Merge(sources...), p.Pose())
		p.follow.Update(&p.pose, p.body.Translation(), p.cfg.FollowFactor, dt)
	}

	if p.gaze != nil {
		p.gaze.Update(dt, p.Pose().Ray())
	}
}

// ActivateSeat sits the viewer at seat (already including any sitting offset). Rotation is
// disabled for the session. Returns false when no body is attached.
func (p *Player) ActivateSeat(seat mgl32.Vec3) bool {
	if !p.seating.Activate(p.body, seat) {
		return false
	}
	p.syncRotation()
	return true
}

// StandUp ends the seating session. A stand-up without a session is a no-op returning false.
func (p *Player) StandUp() bool {
	if !p.seating.StandUp(p.body) {
		return false
	}
	p.syncRotation()
	return true
}

// DisableRotation is the hook the presentation layer calls when a modal view opens.
func (p *Player) DisableRotation() {
	p.rotationHeld = true
	p.syncRotation()
}

// EnableRotation is the hook the presentation layer calls when the modal view closes. Rotation
// stays disabled while seated.
func (p *Player) EnableRotation() {
	p.rotationHeld = false
	p.syncRotation()
}

func (p *Player) syncRotation() {
	if p.rotationHeld || p.seating.Seated() {
		p.orient.Disable()
		return
	}
	p.orient.Enable()
}
