package filament

import (
	"fmt"
	"maps"
	"slices"
)

// LayerState tells whether a filament has a layer assignment.
type LayerState int

const (
	// Unlayered is the state of a freshly built filament.
	Unlayered LayerState = iota
	// Layered means LayerFrom has run; the root is available via [Filament.Root].
	Layered
)

// String returns "unlayered" or "layered".
func (s LayerState) String() string {
	if s == Layered {
		return "layered"
	}
	return "unlayered"
}

// LayerEntry pairs a node with its breadth-first depth from the root.
type LayerEntry struct {
	Node  *Node
	Depth int
}

type layering struct {
	state   LayerState
	root    Coordinate
	list    []LayerEntry
	byDepth map[int][]*Node
	depth   map[*Node]int
}

// LayerFrom assigns breadth-first depths starting at root and returns the
// visitation list.
//
// The root is resolved with [Filament.Node], so an unknown coordinate yields
// a single-entry list. Neighbors are explored in neighbor-list order, which
// makes the result a deterministic function of polyline input order. Nodes
// not connected to root are left out.
//
// A previous layer assignment is replaced.
func (f *Filament) LayerFrom(root Coordinate) []LayerEntry {
	start := f.Node(root)

	visited := map[*Node]bool{start: true}
	queue := []LayerEntry{{Node: start, Depth: 0}}
	list := []LayerEntry{{Node: start, Depth: 0}}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, next := range curr.Node.Neighbors {
			if visited[next] {
				continue
			}
			visited[next] = true
			entry := LayerEntry{Node: next, Depth: curr.Depth + 1}
			queue = append(queue, entry)
			list = append(list, entry)
		}
	}

	byDepth := make(map[int][]*Node)
	depth := make(map[*Node]int, len(list))
	for _, e := range list {
		byDepth[e.Depth] = append(byDepth[e.Depth], e.Node)
		depth[e.Node] = e.Depth
	}

	f.layering = layering{
		state:   Layered,
		root:    root,
		list:    list,
		byDepth: byDepth,
		depth:   depth,
	}
	return slices.Clone(list)
}

// LayerFromIndex is LayerFrom with the root addressed by its position in the
// distinct-coordinate index.
func (f *Filament) LayerFromIndex(i int) ([]LayerEntry, error) {
	n, err := f.NodeAt(i)
	if err != nil {
		return nil, err
	}
	return f.LayerFrom(n.Coordinate), nil
}

// State reports whether a layer assignment exists.
func (f *Filament) State() LayerState { return f.layering.state }

// Root returns the root of the current layer assignment.
func (f *Filament) Root() (Coordinate, bool) {
	return f.layering.root, f.layering.state == Layered
}

// RequireLayers returns ErrNotLayered unless LayerFrom has been called.
func (f *Filament) RequireLayers() error {
	if f.layering.state != Layered {
		return ErrNotLayered
	}
	return nil
}

// Layers returns a copy of the visitation list, root first.
func (f *Filament) Layers() ([]LayerEntry, error) {
	if err := f.RequireLayers(); err != nil {
		return nil, err
	}
	return slices.Clone(f.layering.list), nil
}

// LayerMap returns depth -> nodes in discovery order.
func (f *Filament) LayerMap() (map[int][]*Node, error) {
	if err := f.RequireLayers(); err != nil {
		return nil, err
	}
	out := make(map[int][]*Node, len(f.layering.byDepth))
	for d, nodes := range f.layering.byDepth {
		out[d] = slices.Clone(nodes)
	}
	return out, nil
}

// Depths returns the populated depths in ascending order.
func (f *Filament) Depths() ([]int, error) {
	if err := f.RequireLayers(); err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(f.layering.byDepth)), nil
}

// MaxDepth returns the deepest populated layer.
func (f *Filament) MaxDepth() (int, error) {
	if err := f.RequireLayers(); err != nil {
		return 0, err
	}
	return len(f.layering.byDepth) - 1, nil
}

// NodesAtDepth returns the nodes discovered at depth d, in discovery order.
//
// Returns ErrNotLayered before LayerFrom and ErrDepthNotFound when no node
// sits at d (negative depths, depths past the farthest node).
func (f *Filament) NodesAtDepth(d int) ([]*Node, error) {
	if err := f.RequireLayers(); err != nil {
		return nil, err
	}
	nodes, ok := f.layering.byDepth[d]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrDepthNotFound, d)
	}
	return slices.Clone(nodes), nil
}

// DepthOf returns the depth assigned to the node at c.
func (f *Filament) DepthOf(c Coordinate) (int, bool) {
	if f.layering.state != Layered {
		return 0, false
	}
	n, ok := f.nodes[c]
	if !ok {
		return 0, false
	}
	d, ok := f.layering.depth[n]
	return d, ok
}
