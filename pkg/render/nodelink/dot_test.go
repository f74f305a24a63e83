package nodelink

import (
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/vestools/pkg/filament"
)

func chain() *filament.Filament {
	a := filament.Sample{X: 0, Diameter: 1}
	b := filament.Sample{X: 1, Diameter: 1}
	c := filament.Sample{X: 2, Diameter: 1}
	island := filament.Sample{X: 9, Y: 9, Diameter: 1}
	other := filament.Sample{X: 9, Y: 10, Diameter: 1}
	return filament.New([]filament.Polyline{
		{a, b},
		{b, c},
		{c, filament.Sample{X: 1.5, Y: 1, Diameter: 2}, b},
		{island, other},
	})
}

func TestToDOT_Basic(t *testing.T) {
	dot, err := ToDOT(chain(), Options{})
	if err != nil {
		t.Fatalf("ToDOT() error: %v", err)
	}

	if !strings.HasPrefix(dot, "graph G {") {
		t.Error("ToDOT() output missing graph declaration")
	}
	for i := 0; i < 5; i++ {
		if !strings.Contains(dot, "  "+nodeID(i)+" [") {
			t.Errorf("ToDOT() output missing node n%d", i)
		}
	}
	if got := strings.Count(dot, " -- "); got != 3 {
		t.Errorf("ToDOT() edges = %d, want 3 (parallel polylines collapse)", got)
	}
	if !strings.Contains(dot, "n0 -- n1") {
		t.Error("ToDOT() output missing edge n0 -- n1")
	}
}

func TestToDOT_LayeredRequiresLayers(t *testing.T) {
	_, err := ToDOT(chain(), Options{Layered: true})
	if !errors.Is(err, filament.ErrNotLayered) {
		t.Errorf("ToDOT() error = %v, want ErrNotLayered", err)
	}
}

func TestToDOT_Layered(t *testing.T) {
	f := chain()
	f.LayerFrom(filament.Coordinate{0, 0, 0})

	dot, err := ToDOT(f, Options{Layered: true})
	if err != nil {
		t.Fatalf("ToDOT() error: %v", err)
	}
	if !strings.Contains(dot, `label="2\nd=2"`) {
		t.Errorf("ToDOT() missing depth label:\n%s", dot)
	}
	if got := strings.Count(dot, "fillcolor=lightgrey"); got != 2 {
		t.Errorf("unreached nodes = %d, want 2", got)
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot, err := ToDOT(chain(), Options{Detailed: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(dot, "deg=3") {
		t.Error("ToDOT() detailed output missing degree")
	}
	if !strings.Contains(dot, "(1, 0, 0)") {
		t.Error("ToDOT() detailed output missing coordinate")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("normalizeViewBox() should leave svg without viewBox untouched")
	}
}
