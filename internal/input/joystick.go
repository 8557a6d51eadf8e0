package input

import "github.com/chewxy/math32"

const (
	// DefaultJoystickRadius is the knob travel in screen pixels.
	DefaultJoystickRadius = 60
	// DefaultJoystickThreshold is the fraction of the radius an axis must pass to count as held.
	DefaultJoystickThreshold = 0.3
)

// Joystick is the on-screen touch stick. The widget is the only writer (Move, Release);
// locomotion reads Intents.
type Joystick struct {
	Radius    float32
	Threshold float32

	knobX, knobY float32
	flags        Intents
}

// NewJoystick returns a joystick with the default radius and threshold.
func NewJoystick() *Joystick {
	return &Joystick{Radius: DefaultJoystickRadius, Threshold: DefaultJoystickThreshold}
}

// Move sets the knob offset from the stick centre, clamped to Radius, and updates the flags.
// Screen Y grows downward, so a negative dy is forward.
func (j *Joystick) Move(dx, dy float32) {
	r := j.Radius
	if r <= 0 {
		r = DefaultJoystickRadius
	}
	dist := math32.Hypot(dx, dy)
	if dist > r {
		dx, dy = dx/dist*r, dy/dist*r
	}
	j.knobX, j.knobY = dx, dy

	nx, ny := dx/r, dy/r
	th := j.Threshold
	j.flags = Intents{
		Forward: ny < -th,
		Back:    ny > th,
		Left:    nx < -th,
		Right:   nx > th,
	}
}

// Release recentres the knob and clears every flag (touch end and touch cancel).
func (j *Joystick) Release() {
	j.knobX, j.knobY = 0, 0
	j.flags = Intents{}
}

// Knob returns the clamped knob offset for drawing.
func (j *Joystick) Knob() (x, y float32) {
	return j.knobX, j.knobY
}

// Intents returns the current directional flags.
func (j *Joystick) Intents() Intents {
	return j.flags
}
