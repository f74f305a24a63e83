// Package plot draws filaments as static SVG figures.
//
// [Plot2D] draws every polyline in the x/y plane, scatters the graph nodes on
// top and labels each one. [Plot3D] does the same after an orthographic
// projection controlled by [WithAzimuth] and [WithElevation].
//
// By default nodes are labeled with their position in the
// distinct-coordinate index. With [WithLayers] the scatter follows the
// breadth-first visitation list and labels carry depths; the filament must
// have been layered first or the call fails with [filament.ErrNotLayered].
//
//	f.LayerFrom(root)
//	svg, err := plot.Plot3D(f, plot.WithLayers(), plot.WithSize(800, 800))
//
// Convert the result with [render.ToPDF] or [render.ToPNG] for other formats.
//
// [render.ToPDF]: github.com/matzehuels/vestools/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/vestools/pkg/render.ToPNG
package plot
