package nav

import (
	"github.com/go-gl/mathgl/mgl32"

	"exhibition/internal/input"
)

// Locomotion turns movement intents into horizontal body velocity relative to the camera's facing.
// The vertical velocity component is never written; gravity owns it.
type Locomotion struct {
	Speed    float32 // target horizontal speed, units per second
	Damping  float32 // per-tick multiplier on horizontal velocity when idle
	Deadzone float32 // intent vector length under which the viewer counts as idle
}

// Apply sets the body's horizontal velocity for this tick.
func (l Locomotion) Apply(body RigidBody, in input.Intents, pose Pose) {
	forward := pose.Forward()
	forward[1] = 0
	if forward.Len() < 1e-6 {
		forward = pose.Heading()
	}
	forward = forward.Normalize()
	right := forward.Cross(Up).Normalize()

	var move mgl32.Vec3
	if in.Forward {
		move = move.Add(forward)
	}
	if in.Back {
		move = move.Sub(forward)
	}
	if in.Right {
		move = move.Add(right)
	}
	if in.Left {
		move = move.Sub(right)
	}

	v := body.LinearVelocity()
	if move.Len() > l.Deadzone {
		move = move.Normalize().Mul(l.Speed)
		v[0], v[2] = move[0], move[2]
	} else {
		v[0] *= l.Damping
		v[2] *= l.Damping
	}
	body.SetLinearVelocity(v)
}

// HorizontalSpeed returns the length of v projected on the ground plane.
func HorizontalSpeed(v mgl32.Vec3) float32 {
	return mgl32.Vec2{v[0], v[2]}.Len()
}
