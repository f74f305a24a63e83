package plot

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strconv"

	"github.com/matzehuels/vestools/pkg/filament"
)

const margin = 20.0

// projection maps a 3D position to plot space (y up).
type projection func(filament.Coordinate) (x, y float64)

// point is a scattered node with its label.
type point struct {
	x, y  float64
	label string
}

// Plot2D renders the filament in the x/y plane.
func Plot2D(f *filament.Filament, opts ...Option) ([]byte, error) {
	p := newPlotter(opts...)
	return p.render(f, func(c filament.Coordinate) (float64, float64) {
		return c[0], c[1]
	})
}

// Plot3D renders the filament with an orthographic projection.
func Plot3D(f *filament.Filament, opts ...Option) ([]byte, error) {
	p := newPlotter(opts...)
	az, el := radians(p.azimuth), radians(p.elevation)
	sinA, cosA := math.Sincos(az)
	sinE, cosE := math.Sincos(el)
	return p.render(f, func(c filament.Coordinate) (float64, float64) {
		x := c[0]*cosA + c[1]*sinA
		depth := -c[0]*sinA + c[1]*cosA
		return x, c[2]*cosE + depth*sinE
	})
}

func (p plotter) render(f *filament.Filament, proj projection) ([]byte, error) {
	points, err := p.points(f, proj)
	if err != nil {
		return nil, err
	}

	var curves [][][2]float64
	for _, line := range f.Polylines() {
		pts := make([][2]float64, len(line))
		for i, s := range line {
			x, y := proj(s.Coordinate())
			pts[i] = [2]float64{x, y}
		}
		curves = append(curves, pts)
	}

	fit := newViewport(p.width, p.height, curves, points)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		p.width, p.height, p.width, p.height)

	fmt.Fprintf(&buf, `  <g class="curves" fill="none" stroke="%s" stroke-width="%.1f" stroke-linecap="round">`+"\n",
		html.EscapeString(p.lineColor), p.lineWidth)
	for _, c := range curves {
		buf.WriteString(`    <polyline points="`)
		for i, pt := range c {
			if i > 0 {
				buf.WriteByte(' ')
			}
			x, y := fit.apply(pt[0], pt[1])
			fmt.Fprintf(&buf, "%.2f,%.2f", x, y)
		}
		buf.WriteString(`"/>` + "\n")
	}
	buf.WriteString("  </g>\n")

	fmt.Fprintf(&buf, `  <g class="nodes" fill="%s">`+"\n", html.EscapeString(p.pointColor))
	for _, pt := range points {
		x, y := fit.apply(pt.x, pt.y)
		fmt.Fprintf(&buf, `    <circle cx="%.2f" cy="%.2f" r="%.1f"/>`+"\n", x, y, p.pointSize)
	}
	buf.WriteString("  </g>\n")

	if p.labels {
		fmt.Fprintf(&buf, `  <g class="labels" font-family="%s" font-size="%.1f" font-weight="900" fill="black">`+"\n",
			html.EscapeString(p.font), p.fontSize)
		for _, pt := range points {
			x, y := fit.apply(pt.x, pt.y)
			fmt.Fprintf(&buf, `    <text x="%.2f" y="%.2f">%s</text>`+"\n", x+p.pointSize, y-p.pointSize, pt.label)
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// points lists the scattered nodes: the layer list with depth labels when
// layered, otherwise the distinct-coordinate index with index labels.
func (p plotter) points(f *filament.Filament, proj projection) ([]point, error) {
	if p.layered {
		layers, err := f.Layers()
		if err != nil {
			return nil, err
		}
		out := make([]point, len(layers))
		for i, e := range layers {
			x, y := proj(e.Node.Coordinate)
			out[i] = point{x: x, y: y, label: strconv.Itoa(e.Depth)}
		}
		return out, nil
	}

	coords := f.Coordinates()
	out := make([]point, len(coords))
	for i, c := range coords {
		x, y := proj(c)
		out[i] = point{x: x, y: y, label: strconv.Itoa(i)}
	}
	return out, nil
}

// viewport scales plot space uniformly into the SVG frame and flips y.
type viewport struct {
	minX, maxY float64
	scale      float64
	offX, offY float64
}

func newViewport(width, height float64, curves [][][2]float64, points []point) viewport {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	for _, c := range curves {
		for _, pt := range c {
			grow(pt[0], pt[1])
		}
	}
	for _, pt := range points {
		grow(pt.x, pt.y)
	}
	if math.IsInf(minX, 1) {
		minX, maxX, minY, maxY = 0, 0, 0, 0
	}

	spanX, spanY := maxX-minX, maxY-minY
	innerW, innerH := math.Max(width-2*margin, 1), math.Max(height-2*margin, 1)

	scale := 1.0
	switch {
	case spanX > 0 && spanY > 0:
		scale = math.Min(innerW/spanX, innerH/spanY)
	case spanX > 0:
		scale = innerW / spanX
	case spanY > 0:
		scale = innerH / spanY
	}

	return viewport{
		minX:  minX,
		maxY:  maxY,
		scale: scale,
		offX:  margin + (innerW-spanX*scale)/2,
		offY:  margin + (innerH-spanY*scale)/2,
	}
}

func (v viewport) apply(x, y float64) (float64, float64) {
	return v.offX + (x-v.minX)*v.scale, v.offY + (v.maxY-y)*v.scale
}
