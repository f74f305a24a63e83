package hoc

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strconv"

	"github.com/matzehuels/vestools/pkg/filament"
)

// ErrComponentNotFound is returned by [Components.Get] for unknown ids.
var ErrComponentNotFound = errors.New("component not found")

var (
	recordRe = regexp.MustCompile(`(?s)filament_(\d+?)\[\d+?\] \{(.+?)\}`)

	number   = `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`
	sampleRe = regexp.MustCompile(`pt3dadd\(\s*(` + number + `)\s*,\s*(` + number + `)\s*,\s*(` +
		number + `)\s*,\s*(` + number + `)\s*,\s*` + number + `\s*\)`)
)

// Components maps a component id to its polylines in text order.
// Map iteration order is random; use [Components.IDs] for a stable order.
type Components map[string][]filament.Polyline

// IDs returns the component ids, numerically ascending.
func (c Components) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		if len(a) != len(b) {
			return cmp.Compare(len(a), len(b))
		}
		return cmp.Compare(a, b)
	})
	return ids
}

// Get returns the polylines of component id.
func (c Components) Get(id string) ([]filament.Polyline, error) {
	polys, ok := c[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrComponentNotFound, id)
	}
	return polys, nil
}

// SampleCount returns the number of samples over all components.
func (c Components) SampleCount() int {
	var n int
	for _, polys := range c {
		for _, p := range polys {
			n += len(p)
		}
	}
	return n
}

// Parse extracts every filament record from text.
func Parse(text string) Components {
	out := make(Components)
	for _, m := range recordRe.FindAllStringSubmatch(text, -1) {
		id, body := m[1], m[2]
		p := ParseSamples(body)
		if len(p) == 0 {
			continue
		}
		out[id] = append(out[id], p)
	}
	return out
}

// ParseSamples returns the pt3dadd samples found in a record body.
func ParseSamples(body string) filament.Polyline {
	var p filament.Polyline
	for _, m := range sampleRe.FindAllStringSubmatch(body, -1) {
		var v [4]float64
		ok := true
		for i := range v {
			f, err := strconv.ParseFloat(m[i+1], 64)
			if err != nil {
				ok = false
				break
			}
			v[i] = f
		}
		if !ok {
			continue
		}
		p = append(p, filament.Sample{X: v[0], Y: v[1], Z: v[2], Diameter: v[3]})
	}
	return p
}

// Read parses all of r.
func Read(r io.Reader) (Components, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Parse(string(data)), nil
}

// ReadFile parses the file at path.
func ReadFile(path string) (Components, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data)), nil
}
