package interact

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exhibition/internal/scenegraph"
	"exhibition/internal/signal"
)

func box(name string, z float32) *scenegraph.Node {
	n := scenegraph.NewNode(name)
	n.Position = mgl32.Vec3{0, 0, z}
	b := scenegraph.BoxFromSize(mgl32.Vec3{1, 1, 0.2})
	n.Mesh = &b
	return n
}

func artwork(name string, z float32) (*scenegraph.Node, *scenegraph.Metadata) {
	n := box(name, z)
	meta := &scenegraph.Metadata{Title: name, Description: "desc " + name}
	n.Interactable = &scenegraph.Interactable{Kind: scenegraph.KindArtwork, Metadata: meta}
	return n, meta
}

var forward = scenegraph.Ray{Direction: mgl32.Vec3{0, 0, -1}}

type fixture struct {
	graph  *scenegraph.Graph
	reg    *Registry
	svc    *Service
	ch     Channels
	detail *signal.State[bool]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{graph: scenegraph.NewGraph(), detail: signal.New(false)}
	f.reg = NewRegistry(f.graph, zerolog.Nop())
	t.Cleanup(f.reg.Close)
	f.ch = NewChannels(f.detail.Reader())
	f.svc = NewService(f.reg, f.ch, DefaultConfig(), zerolog.Nop())
	return f
}

func TestNearestEligibleHitWins(t *testing.T) {
	f := newFixture(t)
	a, metaA := artwork("A", -3)
	f.graph.Add(nil, a)
	// B is closer and tagged, but carries no metadata.
	b := box("B", -1)
	b.Interactable = &scenegraph.Interactable{Kind: scenegraph.KindArtwork}
	f.graph.Add(nil, b)

	target, ok := f.svc.Evaluate(forward)
	require.True(t, ok)
	assert.Same(t, a, target.Owner)
	assert.InDelta(t, 2.9, target.Distance, 1e-5)
	assert.True(t, f.ch.LookingAt.Get())
	assert.Same(t, metaA, f.ch.Target.Get())
}

func TestHitsBeyondMaxDistanceAreIgnored(t *testing.T) {
	f := newFixture(t)
	far, _ := artwork("far", -12)
	f.graph.Add(nil, far)

	_, ok := f.svc.Evaluate(forward)
	assert.False(t, ok)
	assert.False(t, f.ch.LookingAt.Get())
	assert.Nil(t, f.ch.Target.Get())
}

func TestTargetClearedWhenLookingAway(t *testing.T) {
	f := newFixture(t)
	a, meta := artwork("A", -3)
	f.graph.Add(nil, a)

	f.svc.Evaluate(forward)
	require.Same(t, meta, f.ch.Target.Get())

	away := scenegraph.Ray{Direction: mgl32.Vec3{0, 0, 1}}
	f.svc.Evaluate(away)
	assert.False(t, f.ch.LookingAt.Get())
	assert.Nil(t, f.ch.Target.Get())
	_, ok := f.svc.Current()
	assert.False(t, ok)
}

func TestDetailViewRetainsTarget(t *testing.T) {
	f := newFixture(t)
	a, meta := artwork("A", -3)
	f.graph.Add(nil, a)

	f.svc.Evaluate(forward)
	f.detail.Set(true)

	away := scenegraph.Ray{Direction: mgl32.Vec3{1, 0, 0}}
	f.svc.Evaluate(away)
	assert.False(t, f.ch.LookingAt.Get())
	assert.Same(t, meta, f.ch.Target.Get())

	f.detail.Set(false)
	f.svc.Evaluate(away)
	assert.Nil(t, f.ch.Target.Get())
}

func TestTargetNotifiesOnlyOnChange(t *testing.T) {
	f := newFixture(t)
	a, _ := artwork("A", -3)
	f.graph.Add(nil, a)

	var changes int
	f.ch.Target.Reader().Subscribe(func(*scenegraph.Metadata) { changes++ })
	for range 5 {
		f.svc.Evaluate(forward)
	}
	assert.Equal(t, 1, changes)
}

func TestUpdateIsThrottled(t *testing.T) {
	f := newFixture(t)
	a, meta := artwork("A", -3)
	f.graph.Add(nil, a)

	// The first update evaluates immediately.
	f.svc.Update(0.016, forward)
	require.Same(t, meta, f.ch.Target.Get())

	// Looking away is not noticed until the interval has elapsed.
	away := scenegraph.Ray{Direction: mgl32.Vec3{0, 0, 1}}
	var elapsed float32
	for elapsed+0.016 < 0.12 {
		f.svc.Update(0.016, away)
		elapsed += 0.016
		require.Same(t, meta, f.ch.Target.Get(), "evaluated after %.3fs", elapsed)
	}
	f.svc.Update(0.016, away)
	assert.Nil(t, f.ch.Target.Get())
}

func TestUpdateUsesSimulatedTime(t *testing.T) {
	f := newFixture(t)
	f.svc.cfg.Interval = time.Second
	a, meta := artwork("A", -3)
	f.graph.Add(nil, a)

	f.svc.Update(0, forward)
	require.Same(t, meta, f.ch.Target.Get())

	away := scenegraph.Ray{Direction: mgl32.Vec3{0, 0, 1}}
	f.svc.Update(0.5, away)
	assert.NotNil(t, f.ch.Target.Get())
	f.svc.Update(0.5, away)
	assert.Nil(t, f.ch.Target.Get())
}

func TestChildGeometryResolvesToTaggedAncestor(t *testing.T) {
	f := newFixture(t)
	frame := scenegraph.NewNode("Art_frame")
	meta := &scenegraph.Metadata{Title: "Framed"}
	frame.Interactable = &scenegraph.Interactable{Kind: scenegraph.KindArtwork, Metadata: meta}
	f.graph.Add(nil, frame)
	canvas := box("canvas", -4)
	f.graph.Add(frame, canvas)

	require.Equal(t, 1, f.reg.Len())
	assert.Same(t, frame, f.reg.Resolve(canvas))

	target, ok := f.svc.Evaluate(forward)
	require.True(t, ok)
	assert.Same(t, frame, target.Owner)
	assert.Same(t, canvas, target.Hit)
}

func TestRegistryRebuildsLazilyOnGraphChange(t *testing.T) {
	f := newFixture(t)
	wall := box("wall", -8)
	f.graph.Add(nil, wall)
	assert.Equal(t, 0, f.reg.Len())
	rebuilds := f.reg.rebuilds

	a, _ := artwork("A", -3)
	f.graph.Add(nil, a)
	b, _ := artwork("B", -5)
	f.graph.Add(nil, b)
	assert.Equal(t, rebuilds, f.reg.rebuilds)

	assert.Equal(t, 2, f.reg.Len())
	assert.Equal(t, rebuilds+1, f.reg.rebuilds)

	f.graph.Remove(a)
	entries := f.reg.Entries()
	require.Len(t, entries, 1)
	assert.Same(t, b, entries[0].Owner)
}

func TestRebuildLeavesEarlierSlicesIntact(t *testing.T) {
	f := newFixture(t)
	a, _ := artwork("A", -3)
	f.graph.Add(nil, a)
	b, _ := artwork("B", -5)
	f.graph.Add(nil, b)

	entries := f.reg.Entries()
	nodes := f.reg.Nodes()
	require.Len(t, entries, 2)
	require.Len(t, nodes, 2)
	first, firstNode := entries[0].Owner, nodes[0]

	f.graph.Remove(first)
	c, _ := artwork("C", -7)
	f.graph.Add(nil, c)
	require.Equal(t, 2, f.reg.Len())

	assert.Same(t, first, entries[0].Owner)
	assert.Same(t, firstNode, nodes[0])
}

func TestFallbackQueriesWholeScene(t *testing.T) {
	f := newFixture(t)
	a, meta := artwork("A", -3)
	f.graph.Add(nil, a)
	// Simulate a cache built before the scene finished loading.
	f.reg.Refresh()
	f.reg.entries, f.reg.nodes = nil, nil
	f.reg.owners = map[*scenegraph.Node]*scenegraph.Node{}

	target, ok := f.svc.Evaluate(forward)
	require.True(t, ok)
	assert.Same(t, a, target.Owner)
	assert.Same(t, meta, f.ch.Target.Get())
}

func TestAttachSwitchesGraph(t *testing.T) {
	f := newFixture(t)
	old, _ := artwork("old", -3)
	f.graph.Add(nil, old)
	require.Equal(t, 1, f.reg.Len())

	next := scenegraph.NewGraph()
	f.reg.Attach(next)
	assert.Equal(t, 0, f.reg.Len())

	// Changes to the detached graph no longer mark the registry dirty.
	rebuilds := f.reg.rebuilds
	f.graph.Remove(old)
	f.reg.Len()
	assert.Equal(t, rebuilds, f.reg.rebuilds)
}

func TestClickOpensGazeArtworkWherePointerIs(t *testing.T) {
	f := newFixture(t)
	a, meta := artwork("A", -5)
	f.graph.Add(nil, a)
	seat := box("bench", -2)
	seat.Position = mgl32.Vec3{3, 0, -2}
	seat.Interactable = &scenegraph.Interactable{Kind: scenegraph.KindSeat}
	f.graph.Add(nil, seat)
	down := scenegraph.Ray{Direction: mgl32.Vec3{0, -1, 0}}

	// Nothing under the gaze yet: a click at the floor resolves nothing.
	_, ok := f.svc.Click(down)
	assert.False(t, ok)

	f.svc.Update(0.016, forward)
	target, ok := f.svc.Click(down)
	require.True(t, ok)
	assert.Same(t, a, target.Owner)
	assert.Same(t, meta, target.Metadata)

	// The gaze artwork also wins over a seat under the pointer.
	toSeat := scenegraph.Ray{Direction: mgl32.Vec3{3, 0, -2}.Normalize()}
	target, ok = f.svc.Click(toSeat)
	require.True(t, ok)
	assert.Same(t, a, target.Owner)
}

func TestClickResolvesSeatsAlongPointer(t *testing.T) {
	f := newFixture(t)
	seat := box("bench", -2)
	seat.Interactable = &scenegraph.Interactable{Kind: scenegraph.KindSeat}
	f.graph.Add(nil, seat)
	far := box("far bench", -20)
	far.Position = mgl32.Vec3{0, 5, -20}
	far.Interactable = &scenegraph.Interactable{Kind: scenegraph.KindSeat}
	f.graph.Add(nil, far)
	a, _ := artwork("A", -5)
	a.Position = mgl32.Vec3{0, 5, -5}
	f.graph.Add(nil, a)

	// Gaze on nothing; pointer on the seat.
	f.svc.Update(0.016, scenegraph.Ray{Direction: mgl32.Vec3{0, -1, 0}})
	picked, ok := f.svc.Click(forward)
	require.True(t, ok)
	assert.Equal(t, scenegraph.KindSeat, picked.Kind)
	assert.Same(t, seat, picked.Owner)

	// Artworks under the pointer are not opened by the pointer ray; seats past MaxDistance are ignored.
	up := scenegraph.Ray{Origin: mgl32.Vec3{0, 5, 0}, Direction: mgl32.Vec3{0, 0, -1}}
	_, ok = f.svc.Click(up)
	assert.False(t, ok)
}
