// Package pipeline provides the load → build → layer → render pipeline for
// vestools.
//
// The CLI commands all run through a [Runner] so that caching, logging and
// error codes behave the same whichever command is used.
//
// # Stages
//
//  1. Load: read a .hoc/.ves morphology file (or a components JSON export)
//     and parse it into components, cached by file content hash
//  2. Build: reconstruct one component as a [filament.Filament]
//  3. Layer: assign breadth-first depths from a root given by index or
//     coordinate
//  4. Render: produce 2d, 3d or nodelink artifacts as SVG, PNG, PDF or JSON
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:     "cell.hoc",
//	    Component: "0",
//	    Root:      "0",
//	    View:      pipeline.View2D,
//	    Formats:   []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vestools/pkg/cache"
	"github.com/matzehuels/vestools/pkg/errors"
	"github.com/matzehuels/vestools/pkg/filament"
	"github.com/matzehuels/vestools/pkg/render/plot"
)

// Views.
const (
	View2D       = "2d"
	View3D       = "3d"
	ViewNodelink = "nodelink"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Defaults applied by [Options.ValidateAndSetDefaults].
const (
	DefaultView     = View2D
	DefaultPNGScale = 2.0
)

// ValidViews and ValidFormats list the accepted values in help order.
var (
	ValidViews   = []string{View2D, View3D, ViewNodelink}
	ValidFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}
)

// Options configures a pipeline run.
type Options struct {
	// Input is a .hoc/.ves morphology file or a components .json export.
	Input string `json:"input"`
	// Component selects one filament id. Empty means the first id in
	// numeric order.
	Component string `json:"component,omitempty"`
	// Root is an index ("3") or a coordinate ("1.5,2,0"). Empty skips
	// layering and renders node indices instead of depths.
	Root string `json:"root,omitempty"`

	View     string   `json:"view,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Width    float64  `json:"width,omitempty"`
	Height   float64  `json:"height,omitempty"`
	Font     string   `json:"font,omitempty"`
	NoLabels bool     `json:"no_labels,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	// Azimuth and Elevation orient the 3d view in degrees. Nil selects the
	// plot default; zero is a valid angle.
	Azimuth   *float64 `json:"azimuth,omitempty"`
	Elevation *float64 `json:"elevation,omitempty"`
	Scale     float64  `json:"scale,omitempty"`

	// Refresh bypasses cached results and overwrites them.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies the run in logs.
	ID        string
	Component string
	Filament  *filament.Filament
	// Layers is nil when no root was given.
	Layers    []filament.LayerEntry
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains filament numbers and stage timings.
type Stats struct {
	filament.Stats
	LoadTime   time.Duration
	LayerTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each cached stage.
type CacheInfo struct {
	LoadHit   bool // Whether parsed components came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateView checks that view is a known view.
func ValidateView(view string) error {
	return errors.ValidateOneOf(errors.ErrCodeInvalidView, "view", view, ValidViews)
}

// ValidateFormats checks that all formats are known.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errors.ValidateOneOf(errors.ErrCodeInvalidFormat, "format", f, ValidFormats); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if o.Component != "" {
		if err := errors.ValidateComponentID(o.Component); err != nil {
			return err
		}
	}
	if o.Root != "" {
		if _, err := ParseRoot(o.Root); err != nil {
			return err
		}
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks the input path.
func (o *Options) ValidateForLoad() error {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return errors.ValidateInputPath(o.Input)
}

// SetRenderDefaults fills in view, formats, size, font and scale.
func (o *Options) SetRenderDefaults() {
	if o.View == "" {
		o.View = DefaultView
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width <= 0 {
		o.Width = plot.DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = plot.DefaultHeight
	}
	if o.Font == "" {
		o.Font = plot.DefaultFont
	}
	if o.Azimuth == nil {
		az := plot.DefaultAzimuth
		o.Azimuth = &az
	}
	if o.Elevation == nil {
		el := plot.DefaultElevation
		o.Elevation = &el
	}
	if o.Scale <= 0 {
		o.Scale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets render defaults and checks view and formats.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateView(o.View); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

func (o *Options) azimuth() float64 {
	if o.Azimuth == nil {
		return plot.DefaultAzimuth
	}
	return *o.Azimuth
}

func (o *Options) elevation() float64 {
	if o.Elevation == nil {
		return plot.DefaultElevation
	}
	return *o.Elevation
}

// Layered reports whether the run assigns depths.
func (o *Options) Layered() bool { return o.Root != "" }

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(component, format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Component: component,
		Root:      o.Root,
		View:      o.View,
		Format:    format,
		Labels:    !o.NoLabels,
	}
	switch o.View {
	case ViewNodelink:
		k.Detailed = o.Detailed
	case View3D:
		k.Angles = []float64{o.azimuth(), o.elevation()}
		fallthrough
	default:
		k.Width, k.Height, k.Font = o.Width, o.Height, o.Font
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
