package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func floor() *Body {
	return NewStatic(mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{100, 1, 100})
}

func TestCapsuleComesToRestOnFloor(t *testing.T) {
	w := NewWorld()
	w.AddBody(floor())
	viewer := NewCapsule(mgl32.Vec3{0, 3, 0}, 0.5, 0.5, 1, 0.1)
	w.AddBody(viewer)

	for i := 0; i < 240; i++ {
		w.Step(1.0 / 60)
	}
	// Capsule half height including caps is 1, so its centre rests at 1.
	assert.InDelta(t, 1, viewer.Position.Y(), 0.02)
	assert.False(t, viewer.Sleeping())
}

func TestLinearDampingSlowsButKeepsDirection(t *testing.T) {
	w := NewWorld()
	w.SetGravity(mgl32.Vec3{})
	b := NewCapsule(mgl32.Vec3{}, 0.5, 0.5, 1, 0.1)
	b.SetLinearVelocity(mgl32.Vec3{10, 0, 0})
	w.AddBody(b)

	w.Step(1.0 / 60)
	assert.Less(t, b.Velocity.X(), float32(10))
	assert.Greater(t, b.Velocity.X(), float32(9.9))
	assert.Greater(t, b.Position.X(), float32(0))
}

func TestSleepCapableBodySleepsAndWakes(t *testing.T) {
	w := NewWorld()
	w.SetGravity(mgl32.Vec3{})
	b := NewCapsule(mgl32.Vec3{}, 0.5, 0.5, 1, 0)
	b.CanSleep = true
	w.AddBody(b)

	for i := 0; i < sleepAfterSteps; i++ {
		w.Step(1.0 / 60)
	}
	assert.True(t, b.Sleeping())

	b.SetLinearVelocity(mgl32.Vec3{1, 0, 0})
	assert.False(t, b.Sleeping())
	w.Step(1.0 / 60)
	assert.Greater(t, b.Position.X(), float32(0))
}

func TestWallPushesBodyBack(t *testing.T) {
	w := NewWorld()
	w.SetGravity(mgl32.Vec3{})
	wall := NewStatic(mgl32.Vec3{2, 0, 0}, mgl32.Vec3{1, 4, 4})
	b := NewCapsule(mgl32.Vec3{1.2, 0, 0}, 0.5, 0.5, 1, 0)
	w.AddBody(wall)
	w.AddBody(b)

	w.Step(1.0 / 60)
	assert.InDelta(t, 1.0, b.Position.X(), 1e-4)
	assert.Equal(t, float32(2), wall.Position.X())

	w.RemoveBody(wall)
	assert.Len(t, w.Bodies, 1)
}
