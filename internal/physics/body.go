package physics

import "github.com/go-gl/mathgl/mgl32"

// Shape selects the collision volume of a body.
type Shape int

const (
	// ShapeBox uses Size as the full box extents.
	ShapeBox Shape = iota
	// ShapeCapsule is an upright capsule of Radius and HalfHeight (cylinder half height,
	// caps excluded). Collision treats it as its enclosing box.
	ShapeCapsule
)

// Body is a 3D rigid body. Static bodies never move and ignore gravity.
// Rotation is never simulated: LockRotations documents the viewer capsule's upright contract.
type Body struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3

	Shape      Shape
	Size       mgl32.Vec3
	Radius     float32
	HalfHeight float32

	Mass          float32
	Static        bool
	LinearDamping float32
	LockRotations bool
	// CanSleep lets a dynamic body stop simulating after staying still for a while.
	// The viewer capsule keeps it false so it reacts to velocity writes on the same tick.
	CanSleep bool

	sleeping  bool
	idleSteps int
}

// NewStatic returns a static box collider centred at position with the given full size.
func NewStatic(position, size mgl32.Vec3) *Body {
	return &Body{Position: position, Shape: ShapeBox, Size: size, Mass: 1, Static: true}
}

// NewCapsule returns a dynamic, rotation-locked, never-sleeping capsule, the shape used for the
// viewer's body. mass <= 0 defaults to 1.
func NewCapsule(position mgl32.Vec3, radius, halfHeight, mass, linearDamping float32) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		Position:      position,
		Shape:         ShapeCapsule,
		Radius:        radius,
		HalfHeight:    halfHeight,
		Mass:          mass,
		LinearDamping: linearDamping,
		LockRotations: true,
		CanSleep:      false,
	}
}

// LinearVelocity returns the body's velocity.
func (b *Body) LinearVelocity() mgl32.Vec3 { return b.Velocity }

// SetLinearVelocity sets the velocity and wakes the body.
func (b *Body) SetLinearVelocity(v mgl32.Vec3) {
	b.Velocity = v
	b.wake()
}

// Translation returns the body's centre.
func (b *Body) Translation() mgl32.Vec3 { return b.Position }

// SetTranslation teleports the body and wakes it.
func (b *Body) SetTranslation(p mgl32.Vec3) {
	b.Position = p
	b.wake()
}

// Sleeping reports whether the world skipped this body on the last step.
func (b *Body) Sleeping() bool { return b.sleeping }

func (b *Body) wake() {
	b.sleeping = false
	b.idleSteps = 0
}

// halfExtents returns the half size of the body's enclosing box.
func (b *Body) halfExtents() mgl32.Vec3 {
	if b.Shape == ShapeCapsule {
		return mgl32.Vec3{b.Radius, b.HalfHeight + b.Radius, b.Radius}
	}
	h := b.Size.Mul(0.5)
	for i := range h {
		if h[i] == 0 {
			h[i] = 0.5
		}
	}
	return h
}
