package nav

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// referenceRate is the frame rate the follow factors are tuned for.
const referenceRate = 60

// Follow moves the camera toward the body's eye point with exponential smoothing.
type Follow struct {
	EyeHeight float32
}

// Eye returns the ideal camera position for a body centre.
func (f Follow) Eye(body mgl32.Vec3) mgl32.Vec3 {
	return body.Add(mgl32.Vec3{0, f.EyeHeight, 0})
}

// Update moves pose.Position toward the eye point. factor is the fraction of the remaining
// distance covered per frame at 60 Hz; it is rescaled by dt so the settle time does not depend on
// frame rate. factor >= 1 snaps, and dt <= 0 applies factor unscaled.
func (f Follow) Update(pose *Pose, body mgl32.Vec3, factor, dt float32) {
	target := f.Eye(body)
	if factor >= 1 {
		pose.Position = target
		return
	}
	if factor <= 0 {
		return
	}
	alpha := factor
	if dt > 0 {
		alpha = 1 - math32.Pow(1-factor, dt*referenceRate)
	}
	pose.Position = pose.Position.Add(target.Sub(pose.Position).Mul(alpha))
}
