package scenegraph

import (
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Node is one element of the scene graph. Position, RotationY and Scale form the local transform
// (scale applied first, then rotation about Y, then translation). A zero Scale component means 1.
// Mesh, when set, is the node's geometry bounds in local space; nodes without a Mesh are groups
// and are never hit by rays.
type Node struct {
	Name      string
	Position  mgl32.Vec3
	RotationY float32
	Scale     mgl32.Vec3
	Mesh      *Box
	Color     [4]uint8
	Collide   bool

	// Interactable is set by the scene decorator. Nil for ordinary geometry.
	Interactable *Interactable

	parent   *Node
	children []*Node
}

// NewNode returns a detached node with unit scale.
func NewNode(name string) *Node {
	return &Node{Name: name, Scale: mgl32.Vec3{1, 1, 1}}
}

// Parent returns the node's parent, or nil for the root and detached nodes.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// LocalMatrix returns the node's transform relative to its parent.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	s := n.Scale
	for i := range s {
		if s[i] == 0 {
			s[i] = 1
		}
	}
	t := mgl32.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	r := mgl32.HomogRotate3DY(n.RotationY)
	return t.Mul4(r).Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
}

// WorldMatrix returns the node's transform relative to the root.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
}

// WorldBounds returns the world-space box of the node's mesh. ok is false for group nodes.
func (n *Node) WorldBounds() (Box, bool) {
	if n.Mesh == nil {
		return Box{}, false
	}
	return n.Mesh.Transform(n.WorldMatrix()), true
}

// FindInteractable walks from n up the parent chain and returns the first node carrying an
// Interactable capability, or nil.
func FindInteractable(n *Node) *Node {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.Interactable != nil {
			return cur
		}
	}
	return nil
}

// ChangeOp is the kind of structural change reported to listeners.
type ChangeOp int

const (
	NodeAdded ChangeOp = iota
	NodeRemoved
)

// Change describes one structural mutation of the graph.
type Change struct {
	Op   ChangeOp
	Node *Node
}

// Graph owns a tree of nodes under a single root and reports structural mutations
// (node added or removed) to listeners. Transform edits are not structural.
type Graph struct {
	root *Node

	mu        sync.Mutex
	nextID    int
	listeners map[int]func(Change)
}

// NewGraph returns an empty graph with a root group node.
func NewGraph() *Graph {
	return &Graph{root: NewNode("root"), listeners: make(map[int]func(Change))}
}

// Root returns the root node.
func (g *Graph) Root() *Node { return g.root }

// OnChange registers fn for structural changes and returns a function that removes it.
func (g *Graph) OnChange(fn func(Change)) (remove func()) {
	g.mu.Lock()
	id := g.nextID
	g.nextID++
	g.listeners[id] = fn
	g.mu.Unlock()
	return func() {
		g.mu.Lock()
		delete(g.listeners, id)
		g.mu.Unlock()
	}
}

func (g *Graph) notify(c Change) {
	g.mu.Lock()
	fns := make([]func(Change), 0, len(g.listeners))
	for _, fn := range g.listeners {
		fns = append(fns, fn)
	}
	g.mu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}

// Add attaches child under parent (the root when parent is nil). A child that already has a
// parent is moved.
func (g *Graph) Add(parent, child *Node) {
	if child == nil {
		return
	}
	if parent == nil {
		parent = g.root
	}
	if child.parent != nil {
		detach(child)
	}
	child.parent = parent
	parent.children = append(parent.children, child)
	g.notify(Change{Op: NodeAdded, Node: child})
}

// Remove detaches n and its subtree. Removing the root or a detached node does nothing.
func (g *Graph) Remove(n *Node) {
	if n == nil || n == g.root || n.parent == nil {
		return
	}
	detach(n)
	g.notify(Change{Op: NodeRemoved, Node: n})
}

func detach(n *Node) {
	p := n.parent
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// Walk visits every node depth-first, parents before children, starting at the root.
// Returning false from fn skips that node's subtree.
func (g *Graph) Walk(fn func(n *Node) bool) {
	walk(g.root, fn)
}

func walk(n *Node, fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		walk(c, fn)
	}
}

// Find returns the first node with the given name, or nil.
func (g *Graph) Find(name string) *Node {
	var found *Node
	g.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// Meshes returns every node that has geometry.
func (g *Graph) Meshes() []*Node {
	var out []*Node
	g.Walk(func(n *Node) bool {
		if n.Mesh != nil {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Hit is one ray intersection.
type Hit struct {
	Node     *Node
	Distance float32
}

// Intersect casts r against nodes and returns the hits sorted by ascending distance.
func Intersect(nodes []*Node, r Ray) []Hit {
	var hits []Hit
	for _, n := range nodes {
		b, ok := n.WorldBounds()
		if !ok {
			continue
		}
		if d, ok := b.IntersectRay(r); ok {
			hits = append(hits, Hit{Node: n, Distance: d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits
}
