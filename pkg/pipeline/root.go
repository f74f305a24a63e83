package pipeline

import (
	"strconv"
	"strings"

	"github.com/matzehuels/vestools/pkg/errors"
	"github.com/matzehuels/vestools/pkg/filament"
)

// Root is a parsed root spec: either an index into the distinct-coordinate
// index or an exact coordinate.
type Root struct {
	Index      int
	Coordinate filament.Coordinate
	ByIndex    bool
}

// ParseRoot parses "3" as an index and "x,y,z" as a coordinate.
func ParseRoot(spec string) (Root, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Root{}, errors.New(errors.ErrCodeInvalidRoot, "root cannot be empty")
	}

	parts := strings.Split(strings.Trim(spec, "()"), ",")
	switch len(parts) {
	case 1:
		i, err := strconv.Atoi(parts[0])
		if err != nil || i < 0 {
			return Root{}, errors.New(errors.ErrCodeInvalidRoot, "root %q is not a node index or x,y,z coordinate", spec)
		}
		return Root{Index: i, ByIndex: true}, nil
	case 3:
		var c filament.Coordinate
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return Root{}, errors.Wrap(errors.ErrCodeInvalidRoot, err, "root %q", spec)
			}
			c[i] = v
		}
		return Root{Coordinate: c}, nil
	default:
		return Root{}, errors.New(errors.ErrCodeInvalidRoot, "root %q is not a node index or x,y,z coordinate", spec)
	}
}

// String formats the root the way ParseRoot reads it.
func (r Root) String() string {
	if r.ByIndex {
		return strconv.Itoa(r.Index)
	}
	c := r.Coordinate
	return strconv.FormatFloat(c[0], 'g', -1, 64) + "," +
		strconv.FormatFloat(c[1], 'g', -1, 64) + "," +
		strconv.FormatFloat(c[2], 'g', -1, 64)
}
