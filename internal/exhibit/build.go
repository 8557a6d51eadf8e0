package exhibit

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"exhibition/internal/physics"
	"exhibition/internal/scenegraph"
)

// Build creates the scene graph described by the layout. Nodes are untagged; call Decorate to
// attach artwork and seat capabilities.
func (l *Layout) Build() (*scenegraph.Graph, error) {
	if err := l.validate(); err != nil {
		return nil, err
	}
	g := scenegraph.NewGraph()
	for _, d := range l.Nodes {
		buildNode(g, nil, d)
	}
	return g, nil
}

func buildNode(g *scenegraph.Graph, parent *scenegraph.Node, d NodeDef) {
	n := scenegraph.NewNode(d.Name)
	n.Position = mgl32.Vec3(d.Position)
	n.RotationY = d.Rotation * math32.Pi / 180
	n.Collide = d.Collide
	size := mgl32.Vec3(d.Size)
	if d.Type != "group" && size != (mgl32.Vec3{}) {
		b := scenegraph.BoxFromSize(size)
		n.Mesh = &b
		n.Color = DefaultColor
		if d.Color != "" {
			// Validated by Parse.
			n.Color, _ = ParseColor(d.Color)
		}
	}
	g.Add(parent, n)
	for _, c := range d.Children {
		buildNode(g, n, c)
	}
}

// Decorations lists which nodes become interactable.
type Decorations struct {
	Artworks map[string]scenegraph.Metadata
	Seats    map[string]bool
}

// Decorations returns the artwork table and every node flagged as a seat.
func (l *Layout) Decorations() Decorations {
	d := Decorations{Artworks: l.Artworks, Seats: make(map[string]bool)}
	var collect func(defs []NodeDef)
	collect = func(defs []NodeDef) {
		for _, n := range defs {
			if n.Seat {
				d.Seats[n.Name] = true
			}
			collect(n.Children)
		}
	}
	collect(l.Nodes)
	return d
}

// Colliders returns a static physics box for every colliding mesh in g, sized to its world bounds.
func Colliders(g *scenegraph.Graph) []*physics.Body {
	var out []*physics.Body
	g.Walk(func(n *scenegraph.Node) bool {
		if !n.Collide {
			return true
		}
		if b, ok := n.WorldBounds(); ok {
			out = append(out, physics.NewStatic(b.Center(), b.Size()))
		}
		return true
	})
	return out
}
