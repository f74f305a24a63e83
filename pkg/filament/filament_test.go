package filament

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seg(a, b Coordinate, diameter float64) Polyline {
	return Polyline{
		{X: a[0], Y: a[1], Z: a[2], Diameter: diameter},
		{X: b[0], Y: b[1], Z: b[2], Diameter: diameter},
	}
}

func TestPolylineWidth(t *testing.T) {
	tests := []struct {
		name string
		p    Polyline
		want float64
	}{
		{"two samples", Polyline{{Diameter: 2}, {Diameter: 4}}, 3},
		{"single sample", Polyline{{Diameter: 1.5}}, 1.5},
		{"endpoints included", Polyline{{Diameter: 1}, {Diameter: 1}, {Diameter: 4}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.p.Width(), 1e-12)
		})
	}
}

func TestPolylineLength(t *testing.T) {
	tests := []struct {
		name string
		p    Polyline
		want float64
	}{
		{"single sample", Polyline{{X: 4, Y: 5, Z: 6}}, 0},
		{"pythagorean", Polyline{{}, {X: 3, Y: 4}}, 5},
		{"path not chord", Polyline{{}, {X: 1}, {X: 1, Y: 1}}, 2},
		{"3d", Polyline{{}, {X: 1, Y: 2, Z: 2}}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.p.Length(), 1e-12)
		})
	}
}

func TestNewSharedEndpoints(t *testing.T) {
	a, b, c := Coordinate{0, 0, 0}, Coordinate{1, 0, 0}, Coordinate{2, 0, 0}
	f := New([]Polyline{seg(a, b, 1), seg(b, c, 3)})

	require.Equal(t, 3, f.NodeCount())
	assert.Equal(t, []Coordinate{a, b, c}, f.Coordinates())

	nb := f.Node(b)
	assert.Same(t, nb, f.Node(b))
	assert.Equal(t, 2, nb.Degree())
	assert.Equal(t, []float64{1, 3}, nb.Widths)
	assert.Equal(t, []float64{1, 1}, nb.Lengths)
	assert.Same(t, f.Node(a), nb.Neighbors[0])
	assert.Same(t, f.Node(c), nb.Neighbors[1])
}

func TestNewParallelPolylines(t *testing.T) {
	a, b := Coordinate{0, 0, 0}, Coordinate{0, 1, 0}
	arc := Polyline{{X: 0, Y: 0, Diameter: 1}, {X: 1, Y: 0.5, Diameter: 1}, {X: 0, Y: 1, Diameter: 1}}
	f := New([]Polyline{seg(a, b, 2), arc})

	na := f.Node(a)
	require.Len(t, na.Neighbors, 2)
	assert.Same(t, na.Neighbors[0], na.Neighbors[1])
	assert.Equal(t, 2, f.EdgeCount())

	edges := f.Edges()
	require.Len(t, edges, 1)
	assert.InDelta(t, arc.Length(), edges[0].Length, 1e-12)
	assert.InDelta(t, 1.0, edges[0].Width, 1e-12)
}

func TestNewSelfLoop(t *testing.T) {
	a := Coordinate{1, 1, 1}
	loop := Polyline{{X: 1, Y: 1, Z: 1, Diameter: 1}, {X: 2, Y: 1, Z: 1, Diameter: 1}, {X: 1, Y: 1, Z: 1, Diameter: 1}}
	f := New([]Polyline{loop})

	require.Equal(t, 1, f.NodeCount())
	n := f.Node(a)
	require.Len(t, n.Neighbors, 2)
	assert.Same(t, n, n.Neighbors[0])
	assert.Equal(t, []float64{2, 2}, n.Lengths)
}

func TestNewSingleSamplePolyline(t *testing.T) {
	f := New([]Polyline{{{X: 1, Y: 2, Z: 3, Diameter: 0.5}}})

	require.Equal(t, 1, f.NodeCount())
	n, err := f.NodeAt(0)
	require.NoError(t, err)
	// First and last sample coincide, so both endpoint appends land on n.
	require.Len(t, n.Neighbors, 2)
	assert.Same(t, n, n.Neighbors[0])
	assert.Equal(t, []float64{0, 0}, n.Lengths)
	assert.Equal(t, []float64{0.5, 0.5}, n.Widths)
}

func TestNearDuplicatesAreDistinct(t *testing.T) {
	x, y := 0.1, 0.2
	a := Coordinate{x + y, 0, 0}
	b := Coordinate{0.3, 0, 0}
	require.NotEqual(t, a, b)

	f := New([]Polyline{seg(Coordinate{}, a, 1), seg(b, Coordinate{1, 1, 1}, 1)})
	assert.Equal(t, 4, f.NodeCount())
}

func TestNodeAt(t *testing.T) {
	f := New([]Polyline{seg(Coordinate{0, 0, 0}, Coordinate{1, 0, 0}, 1)})

	for _, i := range []int{-1, 2, 100} {
		_, err := f.NodeAt(i)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", i)
	}

	n, err := f.NodeAt(1)
	require.NoError(t, err)
	assert.Equal(t, Coordinate{1, 0, 0}, n.Coordinate)
}

func TestResolve(t *testing.T) {
	a, b := Coordinate{0, 0, 0}, Coordinate{1, 0, 0}
	f := New([]Polyline{seg(a, b, 1)})

	byIndex, err := f.Resolve(1)
	require.NoError(t, err)
	byCoord, err := f.Resolve(b)
	require.NoError(t, err)
	byArray, err := f.Resolve([3]float64{1, 0, 0})
	require.NoError(t, err)
	assert.Same(t, byIndex, byCoord)
	assert.Same(t, byIndex, byArray)

	for _, key := range []any{int64(1), int32(1), uint(1), uint8(1), uint64(1)} {
		n, err := f.Resolve(key)
		require.NoError(t, err, "key %T", key)
		assert.Same(t, byIndex, n, "key %T", key)
	}

	_, err = f.Resolve(7)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = f.Resolve(int64(-1))
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = f.Resolve(uint64(math.MaxUint64))
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = f.Resolve("a")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestNodeCreatesIsolatedNode(t *testing.T) {
	f := New([]Polyline{seg(Coordinate{0, 0, 0}, Coordinate{1, 0, 0}, 1)})
	probe := Coordinate{9, 9, 9}

	_, ok := f.Lookup(probe)
	require.False(t, ok)

	n := f.Node(probe)
	assert.Empty(t, n.Neighbors)
	assert.Empty(t, n.Widths)
	assert.Same(t, n, f.Node(probe))

	// probes stay out of the index
	assert.Equal(t, 2, f.NodeCount())
	_, indexed := f.IndexOf(probe)
	assert.False(t, indexed)
}

func TestStats(t *testing.T) {
	root := Coordinate{0, 0, 0}
	mid := Coordinate{0, 1, 0}
	f := New([]Polyline{
		seg(root, mid, 2),
		seg(mid, Coordinate{1, 2, 0}, 1),
		seg(mid, Coordinate{-1, 2, 0}, 1),
	})

	s := f.Stats()
	assert.Equal(t, 4, s.Nodes)
	assert.Equal(t, 3, s.Edges)
	assert.Equal(t, 1, s.Bifurcations)
	assert.Equal(t, 3, s.Terminals)
	assert.InDelta(t, 1+2*math.Sqrt2, s.TotalLength, 1e-12)
	assert.InDelta(t, 4.0/3.0, s.MeanWidth, 1e-12)
	assert.Equal(t, -1, s.MaxDepth)

	f.LayerFrom(root)
	assert.Equal(t, 2, f.Stats().MaxDepth)
}

func TestNodeString(t *testing.T) {
	n := &Node{Coordinate: Coordinate{1.5, 2, -3}}
	assert.Equal(t, "FilamentNode(1.5, 2, -3)", n.String())
}
