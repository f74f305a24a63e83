package filament

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

var (
	// ErrNotLayered is returned by layered accessors such as [Filament.NodesAtDepth]
	// and [Filament.Layers] when [Filament.LayerFrom] has never been called.
	ErrNotLayered = errors.New("layer structure must be generated first")

	// ErrIndexOutOfRange is returned by [Filament.NodeAt] when the index is
	// outside [0, NodeCount()).
	ErrIndexOutOfRange = errors.New("node index out of range")

	// ErrDepthNotFound is returned by [Filament.NodesAtDepth] when no node was
	// discovered at the requested depth.
	ErrDepthNotFound = errors.New("no nodes at depth")

	// ErrInvalidKey is returned by [Filament.Resolve] for keys that are neither
	// an integer index nor a coordinate.
	ErrInvalidKey = errors.New("node key must be an index or a coordinate")
)

// Coordinate is the exact 3D position of a polyline endpoint.
//
// Coordinates are compared bit for bit. Two samples that differ only by
// floating-point noise are distinct nodes; no snapping is applied.
type Coordinate [3]float64

// X returns the first component.
func (c Coordinate) X() float64 { return c[0] }

// Y returns the second component.
func (c Coordinate) Y() float64 { return c[1] }

// Z returns the third component.
func (c Coordinate) Z() float64 { return c[2] }

// String formats the coordinate as "(x, y, z)".
func (c Coordinate) String() string {
	return fmt.Sprintf("(%g, %g, %g)", c[0], c[1], c[2])
}

// Distance returns the Euclidean distance between c and o.
func (c Coordinate) Distance(o Coordinate) float64 {
	dx, dy, dz := o[0]-c[0], o[1]-c[1], o[2]-c[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Sample is one traced point: a position and the neurite diameter there.
type Sample struct {
	X, Y, Z  float64
	Diameter float64
}

// Coordinate returns the sample position.
func (s Sample) Coordinate() Coordinate { return Coordinate{s.X, s.Y, s.Z} }

// Polyline is an ordered, non-empty run of samples describing one traced
// segment. Only its first and last samples become graph nodes.
type Polyline []Sample

// First returns the coordinate of the first sample.
func (p Polyline) First() Coordinate { return p[0].Coordinate() }

// Last returns the coordinate of the last sample.
func (p Polyline) Last() Coordinate { return p[len(p)-1].Coordinate() }

// Width returns the arithmetic mean of the diameter column, endpoints included.
func (p Polyline) Width() float64 {
	var sum float64
	for _, s := range p {
		sum += s.Diameter
	}
	return sum / float64(len(p))
}

// Length returns the summed Euclidean distance between consecutive samples.
// A single-sample polyline has length 0.
func (p Polyline) Length() float64 {
	var sum float64
	for i := 1; i < len(p); i++ {
		sum += p[i-1].Coordinate().Distance(p[i].Coordinate())
	}
	return sum
}

// Node is a graph vertex identified by the exact coordinate of a polyline
// endpoint.
//
// Widths, Lengths and Neighbors are parallel lists in the order polylines
// were added. Parallel polylines produce repeated neighbor entries, and a
// polyline that starts and ends at the same point adds the node to its own
// neighbor list twice.
type Node struct {
	Coordinate Coordinate
	Neighbors  []*Node
	Widths     []float64
	Lengths    []float64
}

// Degree returns the number of polyline endpoints touching the node.
func (n *Node) Degree() int { return len(n.Neighbors) }

// String formats the node as "FilamentNode(x, y, z)".
func (n *Node) String() string { return "FilamentNode" + n.Coordinate.String() }

// Edge is the presentation view of a connection between two nodes.
// See [Filament.Edges] for how parallel polylines are collapsed.
type Edge struct {
	From, To Coordinate
	Width    float64
	Length   float64
}

// Filament is the graph reconstructed from one component's polylines.
//
// The zero value is not usable - use [New]. A Filament is not safe for
// concurrent use; distinct filaments share no state and may be built and
// layered in parallel.
type Filament struct {
	polylines []Polyline
	nodes     map[Coordinate]*Node
	ordered   []Coordinate
	index     map[Coordinate]int

	edges     []Edge
	edgeIndex map[[2]Coordinate]int

	layering layering
}

// New builds a filament from polylines in input order.
//
// For every polyline the first and last sample become nodes (created on
// first sight and appended to the distinct-coordinate index), the mean
// diameter and path length are appended to both endpoints, and each endpoint
// is appended to the other's neighbor list.
//
// Polylines must be non-empty. New does not validate its input.
func New(polylines []Polyline) *Filament {
	f := &Filament{
		polylines: polylines,
		nodes:     make(map[Coordinate]*Node),
		index:     make(map[Coordinate]int),
		edgeIndex: make(map[[2]Coordinate]int),
	}
	for _, p := range polylines {
		f.addPolyline(p)
	}
	return f
}

func (f *Filament) addPolyline(p Polyline) {
	origin := f.intern(p.First())
	tail := f.intern(p.Last())

	origin.Neighbors = append(origin.Neighbors, tail)
	tail.Neighbors = append(tail.Neighbors, origin)

	width := p.Width()
	origin.Widths = append(origin.Widths, width)
	tail.Widths = append(tail.Widths, width)

	length := p.Length()
	origin.Lengths = append(origin.Lengths, length)
	tail.Lengths = append(tail.Lengths, length)

	f.setEdge(origin.Coordinate, tail.Coordinate, width, length)
}

// intern returns the node at c, registering it in the distinct-coordinate
// index on first sight.
func (f *Filament) intern(c Coordinate) *Node {
	if n, ok := f.nodes[c]; ok {
		return n
	}
	n := &Node{Coordinate: c}
	f.nodes[c] = n
	f.index[c] = len(f.ordered)
	f.ordered = append(f.ordered, c)
	return n
}

// setEdge records the undirected edge a-b, overwriting the attributes of an
// earlier edge between the same endpoints.
func (f *Filament) setEdge(a, b Coordinate, width, length float64) {
	key := edgeKey(a, b)
	e := Edge{From: a, To: b, Width: width, Length: length}
	if i, ok := f.edgeIndex[key]; ok {
		f.edges[i] = e
		return
	}
	f.edgeIndex[key] = len(f.edges)
	f.edges = append(f.edges, e)
}

func edgeKey(a, b Coordinate) [2]Coordinate {
	if less(b, a) {
		a, b = b, a
	}
	return [2]Coordinate{a, b}
}

func less(a, b Coordinate) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Node returns the node at the exact coordinate c.
//
// If no polyline touches c, an isolated node with empty attribute lists is
// created and stored, so repeated calls return the same pointer. Probing
// nodes are not added to the distinct-coordinate index and never appear in
// [Filament.Nodes].
func (f *Filament) Node(c Coordinate) *Node {
	if n, ok := f.nodes[c]; ok {
		return n
	}
	n := &Node{Coordinate: c}
	f.nodes[c] = n
	return n
}

// Lookup returns the node at c without creating it.
func (f *Filament) Lookup(c Coordinate) (*Node, bool) {
	n, ok := f.nodes[c]
	return n, ok
}

// NodeAt returns the i-th distinct node in first-seen order.
// Returns ErrIndexOutOfRange if i is outside [0, NodeCount()).
func (f *Filament) NodeAt(i int) (*Node, error) {
	if i < 0 || i >= len(f.ordered) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(f.ordered))
	}
	return f.nodes[f.ordered[i]], nil
}

// Resolve looks a node up by integer index or by coordinate.
//
// Keys of any integer type go through [Filament.NodeAt]; Coordinate and
// [3]float64 keys go through [Filament.Node] and therefore never fail. Any
// other key type returns ErrInvalidKey.
func (f *Filament) Resolve(key any) (*Node, error) {
	switch k := key.(type) {
	case int:
		return f.NodeAt(k)
	case int8, int16, int32, int64:
		return f.NodeAt(int(reflect.ValueOf(k).Int()))
	case uint, uint8, uint16, uint32, uint64, uintptr:
		u := reflect.ValueOf(k).Uint()
		if u > math.MaxInt {
			return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, u, len(f.ordered))
		}
		return f.NodeAt(int(u))
	case Coordinate:
		return f.Node(k), nil
	case [3]float64:
		return f.Node(Coordinate(k)), nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidKey, key)
	}
}

// IndexOf returns the position of c in the distinct-coordinate index.
func (f *Filament) IndexOf(c Coordinate) (int, bool) {
	i, ok := f.index[c]
	if !ok {
		return -1, false
	}
	return i, true
}

// Polylines returns the raw polylines in input order. The slice must not be
// modified.
func (f *Filament) Polylines() []Polyline { return f.polylines }

// Coordinates returns a copy of the distinct-coordinate index.
func (f *Filament) Coordinates() []Coordinate {
	out := make([]Coordinate, len(f.ordered))
	copy(out, f.ordered)
	return out
}

// Nodes returns the indexed nodes in first-seen order.
func (f *Filament) Nodes() []*Node {
	out := make([]*Node, len(f.ordered))
	for i, c := range f.ordered {
		out[i] = f.nodes[c]
	}
	return out
}

// Edges returns one edge per distinct endpoint pair, in the order each pair
// was first seen. When several polylines join the same two coordinates the
// stored width and length come from the last of them.
func (f *Filament) Edges() []Edge {
	out := make([]Edge, len(f.edges))
	copy(out, f.edges)
	return out
}

// NodeCount returns the number of distinct polyline endpoints.
func (f *Filament) NodeCount() int { return len(f.ordered) }

// EdgeCount returns the number of polylines, counting parallel ones.
func (f *Filament) EdgeCount() int { return len(f.polylines) }
