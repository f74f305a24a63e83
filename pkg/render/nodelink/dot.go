package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/vestools/pkg/filament"
	"github.com/matzehuels/vestools/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Layered adds each node's breadth-first depth to its label and greys out
	// nodes the traversal did not reach. The filament must have been layered.
	Layered bool
	// Detailed adds coordinates and degree to node labels.
	Detailed bool
}

// ToDOT converts a filament to an undirected Graphviz graph.
//
// Nodes are named n<index> after the distinct-coordinate index. Parallel
// polylines are collapsed into one edge labeled with the width and length
// of the last polyline between the two nodes.
//
// Returns filament.ErrNotLayered when opts.Layered is set on an unlayered
// filament.
func ToDOT(f *filament.Filament, opts Options) (string, error) {
	depths := map[filament.Coordinate]int{}
	if opts.Layered {
		layers, err := f.Layers()
		if err != nil {
			return "", err
		}
		for _, e := range layers {
			depths[e.Node.Coordinate] = e.Depth
		}
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=darkorange, color=darkorange, fontsize=10, width=0.3];\n")
	buf.WriteString("  edge [color=firebrick, penwidth=2];\n")
	buf.WriteString("\n")

	for i, n := range f.Nodes() {
		label := strconv.Itoa(i)
		depth, reached := depths[n.Coordinate]
		if opts.Layered && reached {
			label += fmt.Sprintf("\nd=%d", depth)
		}
		if opts.Detailed {
			label += fmt.Sprintf("\n%s\ndeg=%d", n.Coordinate, n.Degree())
		}
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if opts.Layered && !reached {
			attrs = append(attrs, "fillcolor=lightgrey", "color=grey")
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(i), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range f.Edges() {
		from, _ := f.IndexOf(e.From)
		to, _ := f.IndexOf(e.To)
		fmt.Fprintf(&buf, "  %s -- %s [tooltip=%q];\n", nodeID(from), nodeID(to),
			fmt.Sprintf("width %.3g, length %.3g", e.Width, e.Length))
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func nodeID(i int) string { return "n" + strconv.Itoa(i) }

// RenderSVG lays out a DOT graph with neato and renders it to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one whose
// width and height match the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion at the given scale.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
