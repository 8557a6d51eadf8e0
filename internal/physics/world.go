package physics

import (
	"github.com/go-gl/mathgl/mgl32"

	"exhibition/internal/scenegraph"
)

const (
	// sleepSpeed is the speed under which a sleep-capable body counts as idle.
	sleepSpeed = 0.01
	// sleepAfterSteps is how many idle steps put a sleep-capable body to sleep.
	sleepAfterSteps = 60
)

// World holds a set of bodies and runs a simple 3D physics step: gravity, damping,
// integration, then AABB push-apart between overlapping bodies.
type World struct {
	Gravity mgl32.Vec3
	Bodies  []*Body
}

// NewWorld returns a world with Earth gravity along -Y.
func NewWorld() *World {
	return &World{Gravity: mgl32.Vec3{0, -9.81, 0}}
}

// SetGravity sets the gravity vector.
func (w *World) SetGravity(g mgl32.Vec3) {
	w.Gravity = g
}

// AddBody appends a body to the world.
func (w *World) AddBody(b *Body) {
	w.Bodies = append(w.Bodies, b)
}

// RemoveBody removes b if present.
func (w *World) RemoveBody(b *Body) {
	for i, x := range w.Bodies {
		if x == b {
			w.Bodies = append(w.Bodies[:i], w.Bodies[i+1:]...)
			return
		}
	}
}

func bodyAABB(b *Body) scenegraph.Box {
	h := b.halfExtents()
	return scenegraph.Box{Min: b.Position.Sub(h), Max: b.Position.Add(h)}
}

// penetrationAxis returns the overlap amount and axis index (0=X, 1=Y, 2=Z) of the minimum
// penetration between two boxes, or (0, -1) when they do not overlap.
func penetrationAxis(a, b scenegraph.Box) (depth float32, axis int) {
	axis = -1
	for i := 0; i < 3; i++ {
		overlap := min(a.Max[i], b.Max[i]) - max(a.Min[i], b.Min[i])
		if overlap <= 0 {
			return 0, -1
		}
		if axis < 0 || overlap < depth {
			depth = overlap
			axis = i
		}
	}
	return depth, axis
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	for _, b := range w.Bodies {
		if b.Static || b.sleeping {
			continue
		}
		b.Velocity = b.Velocity.Add(w.Gravity.Mul(dt))
		if b.LinearDamping > 0 {
			b.Velocity = b.Velocity.Mul(1 / (1 + dt*b.LinearDamping))
		}
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
	}

	for i := 0; i < len(w.Bodies); i++ {
		bi := w.Bodies[i]
		for j := i + 1; j < len(w.Bodies); j++ {
			bj := w.Bodies[j]
			if bi.Static && bj.Static {
				continue
			}
			w.resolve(bi, bj)
		}
	}

	for _, b := range w.Bodies {
		if b.Static || !b.CanSleep || b.sleeping {
			continue
		}
		if b.Velocity.Len() < sleepSpeed {
			b.idleSteps++
			if b.idleSteps >= sleepAfterSteps {
				b.sleeping = true
				b.Velocity = mgl32.Vec3{}
			}
		} else {
			b.idleSteps = 0
		}
	}
}

// resolve pushes an overlapping pair apart along the axis of least penetration, splitting the
// correction by mass, and cancels velocity along that axis for the dynamic side(s).
func (w *World) resolve(bi, bj *Body) {
	boxI, boxJ := bodyAABB(bi), bodyAABB(bj)
	depth, axis := penetrationAxis(boxI, boxJ)
	if axis < 0 {
		return
	}
	// Push bi toward its own side of bj.
	dir := float32(-1)
	if boxI.Center()[axis] > boxJ.Center()[axis] {
		dir = 1
	}
	var moveI, moveJ float32
	switch {
	case bi.Static:
		moveJ = -dir * depth
	case bj.Static:
		moveI = dir * depth
	default:
		total := bi.Mass + bj.Mass
		moveI = dir * depth * (bj.Mass / total)
		moveJ = -dir * depth * (bi.Mass / total)
	}
	if !bi.Static {
		bi.Position[axis] += moveI
		bi.Velocity[axis] = 0
	}
	if !bj.Static {
		bj.Position[axis] += moveJ
		bj.Velocity[axis] = 0
	}
}
