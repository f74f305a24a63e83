// Package render provides output conversion shared by the filament
// renderers.
//
// # Overview
//
// Renderers produce SVG. The [plot] subpackage draws filaments at their
// traced positions in 2D or projected 3D; the [nodelink] subpackage draws
// the reconstructed graph with Graphviz.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg):
//
//	svg, _ := plot.Plot2D(f)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// [plot]: github.com/matzehuels/vestools/pkg/render/plot
// [nodelink]: github.com/matzehuels/vestools/pkg/render/nodelink
package render
