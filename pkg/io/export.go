package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/vestools/pkg/filament"
)

type graph struct {
	Nodes  []node      `json:"nodes"`
	Edges  []edge      `json:"edges"`
	Root   *[3]float64 `json:"root,omitempty"`
	Layers []layer     `json:"layers,omitempty"`
}

type node struct {
	Index      int        `json:"index"`
	Coordinate [3]float64 `json:"coordinate"`
	Neighbors  []int      `json:"neighbors"`
	Widths     []float64  `json:"widths"`
	Lengths    []float64  `json:"lengths"`
	Depth      *int       `json:"depth,omitempty"`
}

type edge struct {
	From   int     `json:"from"`
	To     int     `json:"to"`
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
}

type layer struct {
	Depth int   `json:"depth"`
	Nodes []int `json:"nodes"`
}

// WriteJSON encodes a filament as indented JSON and writes it to w.
//
// Neighbor and edge endpoints are node indices. A neighbor that is not part
// of the index (a probed root) is written as -1.
func WriteJSON(f *filament.Filament, w io.Writer) error {
	out := graph{
		Nodes: make([]node, f.NodeCount()),
		Edges: make([]edge, 0, len(f.Edges())),
	}

	indexOf := func(c filament.Coordinate) int {
		i, ok := f.IndexOf(c)
		if !ok {
			return -1
		}
		return i
	}

	for i, n := range f.Nodes() {
		nd := node{
			Index:      i,
			Coordinate: n.Coordinate,
			Neighbors:  make([]int, len(n.Neighbors)),
			Widths:     n.Widths,
			Lengths:    n.Lengths,
		}
		for j, nb := range n.Neighbors {
			nd.Neighbors[j] = indexOf(nb.Coordinate)
		}
		if d, ok := f.DepthOf(n.Coordinate); ok {
			nd.Depth = &d
		}
		out.Nodes[i] = nd
	}
	for _, e := range f.Edges() {
		out.Edges = append(out.Edges, edge{
			From:   indexOf(e.From),
			To:     indexOf(e.To),
			Width:  e.Width,
			Length: e.Length,
		})
	}

	if root, ok := f.Root(); ok {
		r := [3]float64(root)
		out.Root = &r
		depths, _ := f.Depths()
		for _, d := range depths {
			nodes, _ := f.NodesAtDepth(d)
			l := layer{Depth: d, Nodes: make([]int, len(nodes))}
			for i, n := range nodes {
				l.Nodes[i] = indexOf(n.Coordinate)
			}
			out.Layers = append(out.Layers, l)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a filament to a JSON file at path.
func ExportJSON(f *filament.Filament, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()
	return WriteJSON(f, file)
}
