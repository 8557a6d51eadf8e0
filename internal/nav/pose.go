package nav

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"exhibition/internal/scenegraph"
)

// Up is the world up axis.
var Up = mgl32.Vec3{0, 1, 0}

// Pose is the render camera's viewpoint: a smoothed position plus yaw/pitch (roll is always 0).
// Yaw 0 faces -Z and grows clockwise seen from above, so positive yaw turns right.
// Positive pitch looks up.
type Pose struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
}

// Forward returns the unit look direction.
func (p Pose) Forward() mgl32.Vec3 {
	cp := math32.Cos(p.Pitch)
	return mgl32.Vec3{
		math32.Sin(p.Yaw) * cp,
		math32.Sin(p.Pitch),
		-math32.Cos(p.Yaw) * cp,
	}
}

// Heading returns the horizontal facing derived from yaw alone.
func (p Pose) Heading() mgl32.Vec3 {
	return mgl32.Vec3{math32.Sin(p.Yaw), 0, -math32.Cos(p.Yaw)}
}

// Target returns the point one unit ahead of the camera, for look-at style renderers.
func (p Pose) Target() mgl32.Vec3 {
	return p.Position.Add(p.Forward())
}

// Ray returns the gaze ray from the camera's optical centre.
func (p Pose) Ray() scenegraph.Ray {
	return scenegraph.Ray{Origin: p.Position, Direction: p.Forward()}
}
