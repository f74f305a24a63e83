// Package nodelink draws a filament's graph as a node-link diagram.
//
// # Overview
//
// Where [plot] draws filaments at their traced positions, this package
// shows topology only: one circle per distinct endpoint, one line per
// connected endpoint pair, positioned by Graphviz's spring-model neato
// layout.
//
// # Usage
//
//	dot, err := nodelink.ToDOT(f, nodelink.Options{Layered: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
//
// [plot]: github.com/matzehuels/vestools/pkg/render/plot
package nodelink
