package exhibit

import (
	"regexp"
	"strings"

	"exhibition/internal/scenegraph"
)

// DefaultDescription is shown for artworks missing from the artwork table.
const DefaultDescription = "No description is available for this piece yet."

var artworkName = regexp.MustCompile(`^Art[_0-9]`)

// IsArtworkName reports whether a node name follows the artwork naming convention (Art_01, Art001, ...).
func IsArtworkName(name string) bool {
	return artworkName.MatchString(name)
}

// IsSeatName reports whether a node name marks seating furniture (bean bags).
func IsSeatName(name string) bool {
	return strings.Contains(strings.ToLower(name), "bean")
}

// Decorate attaches interactable capabilities to g. Meshes named like artworks get artwork
// metadata from d.Artworks, or a fallback built from the node name. Nodes listed in d.Seats or named
// like seats become seats. Nodes already carrying a capability are left alone, so decorating twice
// is harmless. It returns the number of nodes tagged.
func Decorate(g *scenegraph.Graph, d Decorations) int {
	tagged := 0
	g.Walk(func(n *scenegraph.Node) bool {
		if n.Interactable != nil {
			return true
		}
		switch {
		case n.Mesh != nil && IsArtworkName(n.Name):
			meta, ok := d.Artworks[n.Name]
			if !ok {
				meta = scenegraph.Metadata{Title: n.Name, Description: DefaultDescription}
			}
			n.Interactable = &scenegraph.Interactable{Kind: scenegraph.KindArtwork, Metadata: &meta}
			tagged++
		case d.Seats[n.Name] || IsSeatName(n.Name):
			n.Interactable = &scenegraph.Interactable{Kind: scenegraph.KindSeat}
			tagged++
		}
		return true
	})
	return tagged
}
