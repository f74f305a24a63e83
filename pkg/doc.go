// Package pkg provides the core libraries for vestools, a toolkit for
// vascular and neurite morphology traces stored as hoc filaments.
//
// # Overview
//
// A trace file holds one record per polyline, grouped into numbered
// components. vestools rebuilds each component as a graph whose nodes are the
// exact endpoint coordinates, assigns breadth-first depths from a chosen root,
// and draws the result. The pkg directory is organized into these areas:
//
//  1. [filament] - The graph, its distinct-coordinate index and layering
//  2. [hoc] - Extraction of polylines from hoc text
//  3. [render] - 2D and 3D plots, node-link drawings, PNG/PDF conversion
//  4. [io] - JSON export of filaments and parsed components
//  5. [pipeline] - Orchestration (load → build → layer → render) with caching
//
// # Architecture
//
// The typical data flow:
//
//	.hoc / .ves text
//	         ↓
//	    [hoc] package (records → polylines per component)
//	         ↓
//	    [filament] package (graph + breadth-first layers)
//	         ↓
//	    [render] packages (plot, nodelink)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
// Parse a file, layer one component and plot it:
//
//	comps, err := hoc.ReadFile("cell.hoc")
//	if err != nil {
//	    return err
//	}
//	lines, err := comps.Get("0")
//	if err != nil {
//	    return err
//	}
//	f := filament.New(lines)
//	if _, err := f.LayerFromIndex(0); err != nil {
//	    return err
//	}
//	svg, err := plot.Plot2D(f, plot.WithLayers())
//
// The [pipeline] package wraps the same steps with option validation,
// structured errors and a content-addressed cache:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "cell.hoc",
//	    Root:    "0",
//	    View:    pipeline.View3D,
//	    Formats: []string{pipeline.FormatSVG},
//	})
//
// # Supporting Packages
//
// [cache] stores parsed components and rendered artifacts on disk or in Redis.
// [errors] defines the codes reported at the CLI boundary. [observability]
// exposes hooks for load, layer, render and cache events.
//
// [filament]: https://pkg.go.dev/github.com/matzehuels/vestools/pkg/filament
// [hoc]: https://pkg.go.dev/github.com/matzehuels/vestools/pkg/hoc
// [render]: https://pkg.go.dev/github.com/matzehuels/vestools/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/vestools/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/vestools/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/vestools/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/vestools/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/vestools/pkg/observability
package pkg
