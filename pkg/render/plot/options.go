package plot

import "math"

// Defaults applied by [Plot2D] and [Plot3D] when the matching option is not
// given.
const (
	DefaultWidth      = 800.0        // frame width in SVG user units
	DefaultHeight     = 600.0        // frame height in SVG user units
	DefaultFont       = "roboto"     // label font family
	DefaultLineColor  = "firebrick"  // polyline stroke
	DefaultPointColor = "darkorange" // node marker fill
	DefaultPointSize  = 4.0          // node marker radius
	DefaultLineWidth  = 2.0          // polyline stroke width
	DefaultFontSize   = 8.0          // label size

	// Matplotlib's default 3D view.
	DefaultAzimuth   = -60.0
	DefaultElevation = 30.0
)

// Option configures a plot.
type Option func(*plotter)

type plotter struct {
	width, height float64
	font          string
	fontSize      float64
	lineColor     string
	pointColor    string
	pointSize     float64
	lineWidth     float64
	layered       bool
	labels        bool
	azimuth       float64 // degrees
	elevation     float64 // degrees
}

func newPlotter(opts ...Option) plotter {
	p := plotter{
		width:      DefaultWidth,
		height:     DefaultHeight,
		font:       DefaultFont,
		fontSize:   DefaultFontSize,
		lineColor:  DefaultLineColor,
		pointColor: DefaultPointColor,
		pointSize:  DefaultPointSize,
		lineWidth:  DefaultLineWidth,
		labels:     true,
		azimuth:    DefaultAzimuth,
		elevation:  DefaultElevation,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithSize sets the frame size. Non-positive values keep the default.
func WithSize(w, h float64) Option {
	return func(p *plotter) {
		if w > 0 {
			p.width = w
		}
		if h > 0 {
			p.height = h
		}
	}
}

// WithFont sets the label font family. An empty family keeps the default.
func WithFont(family string) Option {
	return func(p *plotter) {
		if family != "" {
			p.font = family
		}
	}
}

// WithFontSize sets the label font size.
func WithFontSize(size float64) Option { return func(p *plotter) { p.fontSize = size } }

// WithLineColor sets the polyline stroke color (any SVG color).
func WithLineColor(c string) Option { return func(p *plotter) { p.lineColor = c } }

// WithPointColor sets the node marker fill color (any SVG color).
func WithPointColor(c string) Option { return func(p *plotter) { p.pointColor = c } }

// WithPointSize sets the node marker radius.
func WithPointSize(r float64) Option { return func(p *plotter) { p.pointSize = r } }

// WithLineWidth sets the polyline stroke width.
func WithLineWidth(w float64) Option { return func(p *plotter) { p.lineWidth = w } }

// WithLayers labels nodes by breadth-first depth instead of index.
func WithLayers() Option { return func(p *plotter) { p.layered = true } }

// WithLabels toggles node labels. Labels are on by default.
func WithLabels(on bool) Option { return func(p *plotter) { p.labels = on } }

// WithAzimuth sets the 3D view rotation around the z axis, in degrees.
func WithAzimuth(deg float64) Option { return func(p *plotter) { p.azimuth = deg } }

// WithElevation sets the 3D view angle above the x/y plane, in degrees.
func WithElevation(deg float64) Option { return func(p *plotter) { p.elevation = deg } }

func radians(deg float64) float64 { return deg * math.Pi / 180 }
