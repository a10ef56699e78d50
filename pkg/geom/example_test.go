package geom_test

import (
	"fmt"

	"github.com/matzehuels/strut/pkg/geom"
)

func ExampleSpan() {
	// Two knowns on an axis fully determine it.
	var s geom.Span
	s.Set(geom.MinX, 10)
	s.Set(geom.MaxX, 110)

	min, size, _ := s.Resolve()
	mid, _ := s.Value(geom.MidX)
	fmt.Println("min:", min)
	fmt.Println("size:", size)
	fmt.Println("mid:", mid)
	// Output:
	// min: 10
	// size: 100
	// mid: 60
}

func ExampleSpan_ResolveWith() {
	// A single positional known repositions the element but keeps its
	// current size.
	var s geom.Span
	s.Set(geom.MidY, 240)

	min, size, _ := s.ResolveWith(0, 25)
	fmt.Println("min:", min)
	fmt.Println("size:", size)
	// Output:
	// min: 227.5
	// size: 25
}

func ExampleAttribute_Axis() {
	fmt.Println(geom.MidX.Axis())
	fmt.Println(geom.Height.Axis())
	// Output:
	// x
	// y
}
