// Package filament reconstructs traced neurite filaments as graphs and
// computes breadth-first layers over them.
//
// # Overview
//
// A filament arrives as a list of [Polyline] values, each an ordered run of
// (x, y, z, diameter) samples. [New] turns the first and last sample of every
// polyline into a [Node], keyed by the exact endpoint [Coordinate]. Polylines
// that share a bit-identical endpoint meet at the same node; near-identical
// endpoints produced by numerical noise stay separate.
//
// Every polyline contributes one undirected connection. Its mean diameter
// (width) and path length are appended to both endpoint nodes, and each
// endpoint is appended to the other's neighbor list:
//
//	f := filament.New(polylines)
//	n, _ := f.NodeAt(0)
//	fmt.Println(n.Degree(), n.Widths, n.Lengths)
//
// # Addressing Nodes
//
// Nodes are reachable by coordinate ([Filament.Node]) or by their position in
// the distinct-coordinate index ([Filament.NodeAt]), which lists coordinates in
// the order they were first seen while scanning polylines. [Filament.Resolve]
// accepts either form.
//
// [Filament.Node] creates an isolated node when the coordinate is unknown.
// Use [Filament.Lookup] to probe without side effects.
//
// # Layering
//
// [Filament.LayerFrom] runs a breadth-first traversal from a root and labels
// each reachable node with its hop distance. The visitation list is available
// from [Filament.Layers] and grouped by depth from [Filament.LayerMap] and
// [Filament.NodesAtDepth]. Until a traversal has run, these accessors return
// [ErrNotLayered].
//
// # Concurrency
//
// A Filament is not safe for concurrent use. Distinct filaments share no
// state.
package filament
