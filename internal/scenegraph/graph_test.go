package scenegraph

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meshNode(name string, pos, size mgl32.Vec3) *Node {
	n := NewNode(name)
	n.Position = pos
	b := BoxFromSize(size)
	n.Mesh = &b
	return n
}

func TestWorldBoundsFollowParents(t *testing.T) {
	g := NewGraph()
	group := NewNode("group")
	group.Position = mgl32.Vec3{10, 0, 0}
	g.Add(nil, group)
	child := meshNode("child", mgl32.Vec3{0, 2, 0}, mgl32.Vec3{2, 2, 2})
	g.Add(group, child)

	b, ok := child.WorldBounds()
	require.True(t, ok)
	assert.InDelta(t, 9, b.Min[0], 1e-5)
	assert.InDelta(t, 11, b.Max[0], 1e-5)
	assert.InDelta(t, 1, b.Min[1], 1e-5)
	assert.InDelta(t, 3, b.Max[1], 1e-5)

	_, ok = group.WorldBounds()
	assert.False(t, ok)
}

func TestIntersectRaySortsByDistance(t *testing.T) {
	near := meshNode("near", mgl32.Vec3{0, 0, -3}, mgl32.Vec3{1, 1, 1})
	far := meshNode("far", mgl32.Vec3{0, 0, -8}, mgl32.Vec3{1, 1, 1})
	aside := meshNode("aside", mgl32.Vec3{5, 0, -3}, mgl32.Vec3{1, 1, 1})

	hits := Intersect([]*Node{far, aside, near}, Ray{Direction: mgl32.Vec3{0, 0, -1}})
	require.Len(t, hits, 2)
	assert.Equal(t, "near", hits[0].Node.Name)
	assert.InDelta(t, 2.5, hits[0].Distance, 1e-5)
	assert.Equal(t, "far", hits[1].Node.Name)
	assert.InDelta(t, 7.5, hits[1].Distance, 1e-5)
}

func TestIntersectRayBehindOrigin(t *testing.T) {
	b := BoxFromSize(mgl32.Vec3{1, 1, 1})
	_, ok := b.Transform(mgl32.Translate3D(0, 0, 5)).IntersectRay(Ray{Direction: mgl32.Vec3{0, 0, -1}})
	assert.False(t, ok)

	d, ok := b.IntersectRay(Ray{Direction: mgl32.Vec3{0, 0, -1}})
	assert.True(t, ok)
	assert.Equal(t, float32(0), d)
}

func TestRotatedBounds(t *testing.T) {
	n := meshNode("panel", mgl32.Vec3{}, mgl32.Vec3{4, 1, 0.2})
	n.RotationY = mgl32.DegToRad(90)
	b, _ := n.WorldBounds()
	assert.InDelta(t, 0.2, b.Size()[0], 1e-4)
	assert.InDelta(t, 4, b.Size()[2], 1e-4)
}

func TestChangeListeners(t *testing.T) {
	g := NewGraph()
	var ops []ChangeOp
	remove := g.OnChange(func(c Change) { ops = append(ops, c.Op) })

	n := NewNode("a")
	g.Add(nil, n)
	g.Remove(n)
	g.Remove(n)
	g.Remove(g.Root())
	remove()
	g.Add(nil, n)

	assert.Equal(t, []ChangeOp{NodeAdded, NodeRemoved}, ops)
}

func TestFindInteractableWalksAncestors(t *testing.T) {
	g := NewGraph()
	frame := NewNode("Art_01")
	frame.Interactable = &Interactable{Kind: KindArtwork, Metadata: &Metadata{Title: "Seed"}}
	g.Add(nil, frame)
	canvas := meshNode("canvas", mgl32.Vec3{}, mgl32.Vec3{1, 1, 0.1})
	g.Add(frame, canvas)

	assert.Same(t, frame, FindInteractable(canvas))
	assert.Nil(t, FindInteractable(g.Root()))
	assert.Same(t, canvas, g.Find("canvas"))
	assert.Len(t, g.Meshes(), 1)
}
