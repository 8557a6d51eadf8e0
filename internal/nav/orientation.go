package nav

import (
	"github.com/chewxy/math32"
	"github.com/rs/zerolog"
)

// Button is a pointer button index. Only ButtonPrimary starts a drag.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Cursor is the pointer affordance that reflects drag state.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorGrab
	CursorGrabbing
)

func (c Cursor) String() string {
	switch c {
	case CursorGrab:
		return "grab"
	case CursorGrabbing:
		return "grabbing"
	default:
		return "default"
	}
}

// Orientation turns pointer and single-finger drags into yaw/pitch.
//
// Input handlers only write into the pending accumulator; Apply, called once per tick, consumes
// it. Motion outside a drag or while disabled is dropped rather than buffered.
type Orientation struct {
	PointerSensitivity float32 // radians per pixel
	TouchSensitivity   float32 // radians per pixel
	PitchLimit         float32 // radians, symmetric

	yaw, pitch float32

	enabled  bool
	dragging bool

	touchActive bool
	touchID     int

	hasLast      bool
	lastX, lastY float32

	pendingYaw, pendingPitch float32

	cursor   Cursor
	onCursor func(Cursor)
	log      zerolog.Logger
}

// NewOrientation returns an enabled controller facing yaw 0, pitch 0.
func NewOrientation(pointerSens, touchSens, pitchLimit float32) *Orientation {
	o := &Orientation{
		PointerSensitivity: pointerSens,
		TouchSensitivity:   touchSens,
		PitchLimit:         pitchLimit,
		enabled:            true,
		cursor:             CursorGrab,
		log:                zerolog.Nop(),
	}
	return o
}

// OnCursor registers the host callback that applies cursor styles. It is called immediately with
// the current style and then on every change.
func (o *Orientation) OnCursor(fn func(Cursor)) {
	o.onCursor = fn
	if fn != nil {
		fn(o.cursor)
	}
}

func (o *Orientation) setCursor(c Cursor) {
	if c == o.cursor {
		return
	}
	o.cursor = c
	if o.onCursor != nil {
		o.onCursor(c)
	}
}

// Yaw returns the current yaw in radians. It is unbounded.
func (o *Orientation) Yaw() float32 { return o.yaw }

// Pitch returns the current pitch in radians.
func (o *Orientation) Pitch() float32 { return o.pitch }

// Enabled reports whether rotation input is accepted.
func (o *Orientation) Enabled() bool { return o.enabled }

// Dragging reports whether a drag gesture is in progress.
func (o *Orientation) Dragging() bool { return o.dragging }

// Cursor returns the current pointer affordance.
func (o *Orientation) Cursor() Cursor { return o.cursor }

// SetOrientation replaces yaw and pitch (pitch is clamped) and drops pending motion.
func (o *Orientation) SetOrientation(yaw, pitch float32) {
	o.yaw = yaw
	o.pitch = o.clampPitch(pitch)
	o.pendingYaw, o.pendingPitch = 0, 0
}

// PointerDown starts a drag on the primary button.
func (o *Orientation) PointerDown(b Button, x, y float32) {
	if !o.enabled || b != ButtonPrimary || o.dragging {
		return
	}
	o.beginDrag(x, y)
}

// PointerMove accumulates motion while a pointer drag is active.
func (o *Orientation) PointerMove(x, y float32) {
	if !o.enabled || !o.dragging || o.touchActive {
		return
	}
	o.accumulate(x, y, o.PointerSensitivity)
}

// PointerUp ends a pointer drag.
func (o *Orientation) PointerUp(b Button) {
	if b != ButtonPrimary || !o.dragging || o.touchActive {
		return
	}
	o.endDrag()
}

// TouchStart starts a drag when exactly one finger is down. The touch id is captured so that
// other fingers are ignored for the rest of the gesture.
func (o *Orientation) TouchStart(id int, x, y float32, touches int) {
	if !o.enabled || o.dragging || touches != 1 {
		return
	}
	o.touchActive = true
	o.touchID = id
	o.beginDrag(x, y)
}

// TouchMove accumulates motion for the tracked finger.
func (o *Orientation) TouchMove(id int, x, y float32) {
	if !o.enabled || !o.touchActive || id != o.touchID {
		return
	}
	o.accumulate(x, y, o.TouchSensitivity)
}

// TouchEnd ends the drag if id is the tracked finger. Untracked ids are ignored.
func (o *Orientation) TouchEnd(id int) {
	if !o.touchActive || id != o.touchID {
		return
	}
	o.endDrag()
}

// TouchCancel behaves like TouchEnd.
func (o *Orientation) TouchCancel(id int) {
	o.TouchEnd(id)
}

func (o *Orientation) beginDrag(x, y float32) {
	o.dragging = true
	o.lastX, o.lastY = x, y
	o.hasLast = true
	o.setCursor(CursorGrabbing)
}

func (o *Orientation) endDrag() {
	o.dragging = false
	o.touchActive = false
	o.hasLast = false
	if o.enabled {
		o.setCursor(CursorGrab)
	} else {
		o.setCursor(CursorDefault)
	}
}

func (o *Orientation) accumulate(x, y, sens float32) {
	if !o.hasLast {
		o.lastX, o.lastY = x, y
		o.hasLast = true
		return
	}
	dx, dy := x-o.lastX, y-o.lastY
	o.lastX, o.lastY = x, y
	// Dragging right turns right; dragging down looks down.
	o.pendingYaw += dx * sens
	o.pendingPitch -= dy * sens
}

// Disable stops accepting rotation, aborts any drag in progress and drops pending motion.
// Safe to call at any time, repeatedly.
func (o *Orientation) Disable() {
	if o.dragging {
		o.dragging = false
		o.touchActive = false
	}
	o.hasLast = false
	o.pendingYaw, o.pendingPitch = 0, 0
	if o.enabled {
		o.log.Debug().Msg("rotation disabled")
	}
	o.enabled = false
	o.setCursor(CursorDefault)
}

// Enable accepts rotation again. The accumulator and pointer baseline are resynchronized to the
// current orientation, so motion from before the call never lands.
func (o *Orientation) Enable() {
	o.hasLast = false
	o.pendingYaw, o.pendingPitch = 0, 0
	if !o.enabled {
		o.log.Debug().Msg("rotation enabled")
	}
	o.enabled = true
	if !o.dragging {
		o.setCursor(CursorGrab)
	}
}

// Apply consumes the accumulator: when enabled and non-zero it is added to yaw and pitch (pitch
// clamped). The accumulator is drained either way. Returns true if the orientation changed.
func (o *Orientation) Apply() bool {
	dyaw, dpitch := o.pendingYaw, o.pendingPitch
	o.pendingYaw, o.pendingPitch = 0, 0
	if !o.enabled || (dyaw == 0 && dpitch == 0) {
		return false
	}
	o.yaw += dyaw
	o.pitch = o.clampPitch(o.pitch + dpitch)
	return true
}

// Discard drains the accumulator without applying it.
func (o *Orientation) Discard() {
	o.pendingYaw, o.pendingPitch = 0, 0
}

func (o *Orientation) clampPitch(p float32) float32 {
	limit := o.PitchLimit
	if limit <= 0 {
		limit = math32.Pi / 2
	}
	return max(-limit, min(limit, p))
}
