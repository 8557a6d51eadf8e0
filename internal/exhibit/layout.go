package exhibit

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"exhibition/internal/scenegraph"
)

// DefaultLayoutPath is the layout file loaded when the config names none, relative to the process
// working directory.
const DefaultLayoutPath = "assets/exhibition.yaml"

// ErrNoSpawn is returned by Layout.Spawn when the layout does not define a spawn point.
var ErrNoSpawn = errors.New("exhibit: layout has no spawn point")

// NodeDef is the YAML definition of one scene node. A node with a Size is a box; a node without
// one is a group whose children inherit its transform.
type NodeDef struct {
	Name     string     `yaml:"name"`
	Type     string     `yaml:"type,omitempty"`
	Position [3]float32 `yaml:"position,omitempty"`
	// Rotation is the rotation about Y in degrees.
	Rotation float32    `yaml:"rotation,omitempty"`
	Size     [3]float32 `yaml:"size,omitempty"`
	Color    string     `yaml:"color,omitempty"`
	Collide  bool       `yaml:"collide,omitempty"`
	Seat     bool       `yaml:"seat,omitempty"`
	Children []NodeDef  `yaml:"children,omitempty"`
}

// Layout is a whole exhibition: the room geometry, the artwork table and where the viewer starts.
type Layout struct {
	Name     string                         `yaml:"name"`
	Spawn    *[3]float32                    `yaml:"spawn,omitempty"`
	Nodes    []NodeDef                      `yaml:"nodes"`
	Artworks map[string]scenegraph.Metadata `yaml:"artworks,omitempty"`
}

// Load reads and parses the layout file at path.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Parse decodes and validates a YAML layout.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if err := l.validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

func (l *Layout) validate() error {
	seen := make(map[string]bool)
	var check func(defs []NodeDef) error
	check = func(defs []NodeDef) error {
		for _, d := range defs {
			if d.Name == "" {
				return errors.New("exhibit: node without a name")
			}
			if seen[d.Name] {
				return fmt.Errorf("exhibit: duplicate node name %q", d.Name)
			}
			seen[d.Name] = true
			switch d.Type {
			case "", "cube", "group":
			default:
				return fmt.Errorf("exhibit: node %q: unknown type %q", d.Name, d.Type)
			}
			for _, c := range d.Size {
				if c < 0 {
					return fmt.Errorf("exhibit: node %q: negative size", d.Name)
				}
			}
			if d.Color != "" {
				if _, err := ParseColor(d.Color); err != nil {
					return fmt.Errorf("exhibit: node %q: %w", d.Name, err)
				}
			}
			if err := check(d.Children); err != nil {
				return err
			}
		}
		return nil
	}
	return check(l.Nodes)
}

// SpawnPoint returns the body position the viewer starts at.
func (l *Layout) SpawnPoint() (mgl32.Vec3, error) {
	if l.Spawn == nil {
		return mgl32.Vec3{}, ErrNoSpawn
	}
	return mgl32.Vec3(*l.Spawn), nil
}
