package nav

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// SeatState is the seating mode.
type SeatState int

const (
	Standing SeatState = iota
	Seated
)

func (s SeatState) String() string {
	if s == Seated {
		return "seated"
	}
	return "standing"
}

// Session is the record of one seating: where the seat is and the body height before sitting.
type Session struct {
	Seat           mgl32.Vec3
	StandingHeight float32
}

// Seating arbitrates between free locomotion and a pinned seated view.
//
// On sit the body's current Y is stored; on stand it is written back verbatim instead of being
// derived from the seat, so any number of sit/stand cycles leaves the height unchanged.
// The body's X/Z are never touched.
type Seating struct {
	state   SeatState
	session *Session
	log     zerolog.Logger
}

// NewSeating returns a state machine in the Standing state.
func NewSeating(log zerolog.Logger) *Seating {
	return &Seating{log: log}
}

// State returns the current mode.
func (s *Seating) State() SeatState { return s.state }

// Seated reports whether the viewer is seated.
func (s *Seating) Seated() bool { return s.state == Seated }

// Session returns a copy of the active session, or false when standing.
func (s *Seating) Session() (Session, bool) {
	if s.session == nil {
		return Session{}, false
	}
	return *s.session, true
}

// Activate seats the body at seat. Y is pinned to the seat height immediately and velocity is
// zeroed. Activating while already seated moves to the new seat and keeps the first standing
// height. Returns false without a body.
func (s *Seating) Activate(body RigidBody, seat mgl32.Vec3) bool {
	if body == nil {
		return false
	}
	pos := body.Translation()
	if s.session == nil {
		s.session = &Session{StandingHeight: pos[1]}
	}
	s.session.Seat = seat
	s.state = Seated
	s.pin(body)
	s.log.Info().
		Float32("seat_x", seat[0]).Float32("seat_y", seat[1]).Float32("seat_z", seat[2]).
		Float32("standing_height", s.session.StandingHeight).
		Msg("seated")
	return true
}

// StandUp leaves the seat and restores the stored standing height. Without an active session
// it does nothing and returns false.
func (s *Seating) StandUp(body RigidBody) bool {
	if s.session == nil || body == nil {
		return false
	}
	pos := body.Translation()
	pos[1] = s.session.StandingHeight
	body.SetTranslation(pos)
	body.SetLinearVelocity(mgl32.Vec3{})
	s.log.Info().Float32("height", pos[1]).Msg("stood up")
	s.session = nil
	s.state = Standing
	return true
}

// Tick keeps a seated body still at the seat height. No-op while standing.
func (s *Seating) Tick(body RigidBody) {
	if s.state != Seated || body == nil {
		return
	}
	s.pin(body)
}

func (s *Seating) pin(body RigidBody) {
	pos := body.Translation()
	pos[1] = s.session.Seat[1]
	body.SetTranslation(pos)
	body.SetLinearVelocity(mgl32.Vec3{})
}
