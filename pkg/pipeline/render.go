package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/vestools/pkg/filament"
	vesio "github.com/matzehuels/vestools/pkg/io"
	"github.com/matzehuels/vestools/pkg/render"
	"github.com/matzehuels/vestools/pkg/render/nodelink"
	"github.com/matzehuels/vestools/pkg/render/plot"
)

// Render generates artifacts for f in every requested format.
// Layered options require f to be layered.
func Render(ctx context.Context, f *filament.Filament, opts Options) (map[string][]byte, error) {
	if opts.Layered() {
		if err := f.RequireLayers(); err != nil {
			return nil, err
		}
	}
	if opts.View == ViewNodelink {
		return renderNodelink(ctx, f, opts)
	}
	return renderPlot(f, opts)
}

func renderPlot(f *filament.Filament, opts Options) (map[string][]byte, error) {
	var svg []byte
	draw := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		if opts.View == View3D {
			svg, err = plot.Plot3D(f, plotOptions(opts)...)
		} else {
			svg, err = plot.Plot2D(f, plotOptions(opts)...)
		}
		return svg, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = draw()
		case FormatPNG:
			if data, err = draw(); err == nil {
				data, err = render.ToPNG(data, opts.Scale)
			}
		case FormatPDF:
			if data, err = draw(); err == nil {
				data, err = render.ToPDF(data)
			}
		case FormatJSON:
			data, err = exportJSON(f)
		default:
			return nil, fmt.Errorf("unsupported %s format: %s", opts.View, format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderNodelink(ctx context.Context, f *filament.Filament, opts Options) (map[string][]byte, error) {
	dot, err := nodelink.ToDOT(f, nodelink.Options{Layered: opts.Layered(), Detailed: opts.Detailed})
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		case FormatJSON:
			data, err = exportJSON(f)
		default:
			return nil, fmt.Errorf("unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func plotOptions(opts Options) []plot.Option {
	po := []plot.Option{
		plot.WithSize(opts.Width, opts.Height),
		plot.WithFont(opts.Font),
		plot.WithLabels(!opts.NoLabels),
		plot.WithAzimuth(opts.azimuth()),
		plot.WithElevation(opts.elevation()),
	}
	if opts.Layered() {
		po = append(po, plot.WithLayers())
	}
	return po
}

func exportJSON(f *filament.Filament) ([]byte, error) {
	var buf bytes.Buffer
	if err := vesio.WriteJSON(f, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
