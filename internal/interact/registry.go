package interact

import (
	"github.com/rs/zerolog"

	"exhibition/internal/scenegraph"
)

// Entry is one raycastable piece of geometry and the node that carries its capability
// (the geometry node itself or its nearest tagged ancestor).
type Entry struct {
	Node  *scenegraph.Node
	Owner *scenegraph.Node
}

// Registry caches the interactable subset of a scene graph so that per-tick raycasts test a
// handful of nodes instead of the whole scene. It is rebuilt when the graph is attached and
// after any structural change, lazily on the next query.
type Registry struct {
	graph   *scenegraph.Graph
	entries []Entry
	nodes   []*scenegraph.Node
	owners  map[*scenegraph.Node]*scenegraph.Node
	dirty   bool
	unwatch func()
	log     zerolog.Logger

	rebuilds int
}

// NewRegistry returns a registry watching graph. graph may be nil and attached later.
func NewRegistry(graph *scenegraph.Graph, log zerolog.Logger) *Registry {
	r := &Registry{log: log}
	r.Attach(graph)
	return r
}

// Attach switches the registry to graph and schedules a rebuild.
func (r *Registry) Attach(graph *scenegraph.Graph) {
	r.Close()
	r.graph = graph
	r.dirty = true
	if graph != nil {
		r.unwatch = graph.OnChange(func(scenegraph.Change) { r.dirty = true })
	}
}

// Graph returns the attached graph, or nil.
func (r *Registry) Graph() *scenegraph.Graph { return r.graph }

// Close stops watching the graph.
func (r *Registry) Close() {
	if r.unwatch != nil {
		r.unwatch()
		r.unwatch = nil
	}
}

// Refresh rebuilds the cache now.
func (r *Registry) Refresh() {
	r.entries = nil
	r.nodes = nil
	r.owners = make(map[*scenegraph.Node]*scenegraph.Node)
	r.dirty = false
	r.rebuilds++
	if r.graph == nil {
		return
	}
	r.collect(r.graph.Root(), nil)
	r.log.Debug().Int("entries", len(r.entries)).Int("rebuild", r.rebuilds).Msg("interactable registry rebuilt")
}

func (r *Registry) collect(n, owner *scenegraph.Node) {
	if n.Interactable != nil {
		owner = n
	}
	if owner != nil && n.Mesh != nil {
		r.entries = append(r.entries, Entry{Node: n, Owner: owner})
		r.nodes = append(r.nodes, n)
		r.owners[n] = owner
	}
	for _, c := range n.Children() {
		r.collect(c, owner)
	}
}

func (r *Registry) ensure() {
	if r.dirty {
		r.Refresh()
	}
}

// Entries returns the cached entries, rebuilding first if the graph changed.
func (r *Registry) Entries() []Entry {
	r.ensure()
	return r.entries
}

// Nodes returns the cached geometry nodes.
func (r *Registry) Nodes() []*scenegraph.Node {
	r.ensure()
	return r.nodes
}

// Len returns the number of cached entries.
func (r *Registry) Len() int {
	r.ensure()
	return len(r.entries)
}

// Resolve returns the capability owner of a geometry node. Cached nodes are a map lookup;
// anything else falls back to walking the parent chain.
func (r *Registry) Resolve(n *scenegraph.Node) *scenegraph.Node {
	r.ensure()
	if owner, ok := r.owners[n]; ok {
		return owner
	}
	return scenegraph.FindInteractable(n)
}
