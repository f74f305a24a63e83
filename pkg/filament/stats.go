package filament

// Stats summarizes a filament for listings.
type Stats struct {
	Nodes        int
	Edges        int
	Bifurcations int
	Terminals    int
	TotalLength  float64
	MeanWidth    float64
	// MaxDepth is -1 when the filament has not been layered.
	MaxDepth int
}

// Stats computes summary numbers over the polylines and nodes.
func (f *Filament) Stats() Stats {
	s := Stats{
		Nodes:        f.NodeCount(),
		Edges:        f.EdgeCount(),
		Bifurcations: len(f.Bifurcations()),
		Terminals:    len(f.Terminals()),
		MaxDepth:     -1,
	}
	for _, p := range f.polylines {
		s.TotalLength += p.Length()
		s.MeanWidth += p.Width()
	}
	if len(f.polylines) > 0 {
		s.MeanWidth /= float64(len(f.polylines))
	}
	if d, err := f.MaxDepth(); err == nil {
		s.MaxDepth = d
	}
	return s
}

// Bifurcations returns indexed nodes where three or more polylines meet.
func (f *Filament) Bifurcations() []*Node {
	return f.nodesWhere(func(n *Node) bool { return n.Degree() >= 3 })
}

// Terminals returns indexed nodes touched by exactly one polyline endpoint.
func (f *Filament) Terminals() []*Node {
	return f.nodesWhere(func(n *Node) bool { return n.Degree() == 1 })
}

func (f *Filament) nodesWhere(keep func(*Node) bool) []*Node {
	var out []*Node
	for _, c := range f.ordered {
		if n := f.nodes[c]; keep(n) {
			out = append(out, n)
		}
	}
	return out
}
