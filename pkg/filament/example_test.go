package filament_test

import (
	"fmt"

	"github.com/matzehuels/vestools/pkg/filament"
)

func segment(a, b filament.Coordinate, diameter float64) filament.Polyline {
	return filament.Polyline{
		{X: a[0], Y: a[1], Z: a[2], Diameter: diameter},
		{X: b[0], Y: b[1], Z: b[2], Diameter: diameter},
	}
}

func ExampleFilament_LayerFrom() {
	a := filament.Coordinate{0, 0, 0}
	b := filament.Coordinate{1, 0, 0}
	c := filament.Coordinate{1, 1, 0}
	d := filament.Coordinate{2, 1, 0}

	f := filament.New([]filament.Polyline{
		segment(a, b, 2),
		segment(b, c, 2),
		segment(b, d, 2),
	})

	for _, e := range f.LayerFrom(a) {
		fmt.Println(e.Depth, e.Node)
	}
	// Output:
	// 0 FilamentNode(0, 0, 0)
	// 1 FilamentNode(1, 0, 0)
	// 2 FilamentNode(1, 1, 0)
	// 2 FilamentNode(2, 1, 0)
}

func ExampleFilament_NodeAt() {
	f := filament.New([]filament.Polyline{
		{{X: 0, Y: 0, Z: 0, Diameter: 2}, {X: 3, Y: 4, Z: 0, Diameter: 4}},
	})

	n, _ := f.NodeAt(1)
	fmt.Println(n, n.Widths, n.Lengths)
	// Output:
	// FilamentNode(3, 4, 0) [3] [5]
}
