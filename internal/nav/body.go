package nav

import "github.com/go-gl/mathgl/mgl32"

// RigidBody is the part of the physics body the navigation core reads and writes.
// The physics world owns gravity and integration; the core only sets velocity and, for seating,
// translation.
type RigidBody interface {
	LinearVelocity() mgl32.Vec3
	SetLinearVelocity(v mgl32.Vec3)
	Translation() mgl32.Vec3
	SetTranslation(p mgl32.Vec3)
}
