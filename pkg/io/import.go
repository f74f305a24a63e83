package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/vestools/pkg/filament"
	"github.com/matzehuels/vestools/pkg/hoc"
)

// components is the on-disk form of [hoc.Components]. Each sample is
// [x, y, z, diameter].
type components struct {
	Components map[string][][][4]float64 `json:"components"`
}

// WriteComponents encodes parsed polylines as JSON.
func WriteComponents(c hoc.Components, w io.Writer) error {
	out := components{Components: make(map[string][][][4]float64, len(c))}
	for id, polys := range c {
		lines := make([][][4]float64, len(polys))
		for i, p := range polys {
			samples := make([][4]float64, len(p))
			for j, s := range p {
				samples[j] = [4]float64{s.X, s.Y, s.Z, s.Diameter}
			}
			lines[i] = samples
		}
		out.Components[id] = lines
	}
	if err := json.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadComponents decodes polylines written by [WriteComponents].
//
// Empty polylines are dropped, matching what [hoc.Parse] produces.
func ReadComponents(r io.Reader) (hoc.Components, error) {
	var in components
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	out := make(hoc.Components, len(in.Components))
	for id, lines := range in.Components {
		for _, samples := range lines {
			if len(samples) == 0 {
				continue
			}
			p := make(filament.Polyline, len(samples))
			for j, s := range samples {
				p[j] = filament.Sample{X: s[0], Y: s[1], Z: s[2], Diameter: s[3]}
			}
			out[id] = append(out[id], p)
		}
	}
	return out, nil
}

// MarshalComponents is WriteComponents into a byte slice.
func MarshalComponents(c hoc.Components) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteComponents(c, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalComponents is ReadComponents from a byte slice.
func UnmarshalComponents(data []byte) (hoc.Components, error) {
	return ReadComponents(bytes.NewReader(data))
}

// ImportComponents reads a components JSON file.
func ImportComponents(path string) (hoc.Components, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadComponents(f)
}
