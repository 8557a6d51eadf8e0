package scenegraph

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Box is an axis-aligned bounding box.
type Box struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// BoxFromSize returns a box of the given full size centred on the origin.
func BoxFromSize(size mgl32.Vec3) Box {
	half := size.Mul(0.5)
	return Box{Min: half.Mul(-1), Max: half}
}

// Center returns the middle of the box.
func (b Box) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box on each axis.
func (b Box) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Transform returns the axis-aligned box enclosing b after applying m to its eight corners.
func (b Box) Transform(m mgl32.Mat4) Box {
	out := Box{
		Min: mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: mgl32.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
	for i := 0; i < 8; i++ {
		c := mgl32.Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			c[0] = b.Max[0]
		}
		if i&2 != 0 {
			c[1] = b.Max[1]
		}
		if i&4 != 0 {
			c[2] = b.Max[2]
		}
		w := m.Mul4x1(c.Vec4(1)).Vec3()
		for a := 0; a < 3; a++ {
			out.Min[a] = min(out.Min[a], w[a])
			out.Max[a] = max(out.Max[a], w[a])
		}
	}
	return out
}

// Ray is a half-line from Origin along Direction. Direction is expected to be normalized so
// that intersection distances are in world units.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// IntersectRay returns the distance along r at which it enters b (slab test).
// A ray starting inside the box hits at distance 0.
func (b Box) IntersectRay(r Ray) (float32, bool) {
	tmin := float32(0)
	tmax := float32(math.MaxFloat32)
	for a := 0; a < 3; a++ {
		d := r.Direction[a]
		o := r.Origin[a]
		if d == 0 {
			if o < b.Min[a] || o > b.Max[a] {
				return 0, false
			}
			continue
		}
		inv := 1 / d
		t1 := (b.Min[a] - o) * inv
		t2 := (b.Max[a] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
