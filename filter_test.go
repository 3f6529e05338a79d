package lidarclip

import (
	"reflect"
	"testing"
)

// disk is a Region of all points closer than r to the origin.
type disk struct{ r float64 }

func (d disk) Bounds() Bounds { return Bounds{MinX: -d.r, MaxX: d.r, MinY: -d.r, MaxY: d.r} }

func (d disk) Contains(x, y float64) bool { return x*x+y*y < d.r*d.r }

func TestFilterBounds(t *testing.T) {
	b := Bounds{MinX: 10, MaxX: 20, MinY: 100, MaxY: 200}
	rows := []Row{
		{X: 15, Y: 150, Class: 1},
		{X: 9.999, Y: 150, Class: 2},
		{X: 10, Y: 100, Class: 3},
		{X: 20, Y: 200, Class: 4},
		{X: 20.001, Y: 200, Class: 5},
		{X: 15, Y: 99, Class: 1},
		{X: 11, Y: 199, Class: 2},
	}
	orig := append([]Row{}, rows...)

	got := FilterBounds(rows, b)
	exp := []Row{rows[0], rows[2], rows[3], rows[6]}
	if !reflect.DeepEqual(got, exp) {
		t.Fatalf("got %+v, expected %+v", got, exp)
	}
	if !reflect.DeepEqual(rows, orig) {
		t.Fatalf("input modified")
	}
	if got := FilterBounds(nil, b); len(got) != 0 {
		t.Fatalf("filtering nothing gave %v", got)
	}
}

func TestFilterWithin(t *testing.T) {
	d := disk{r: 10}
	rows := []Row{
		{X: 9, Y: 9, Class: 1},
		{X: 1, Y: 1, Class: 2},
		{X: 10, Y: 0, Class: 3},
		{X: -3, Y: 4, Class: 4},
		{X: 0, Y: -9.99, Class: 5},
	}
	got := FilterWithin(FilterBounds(rows, d.Bounds()), d)
	exp := []Row{rows[1], rows[3], rows[4]}
	if !reflect.DeepEqual(got, exp) {
		t.Fatalf("got %+v, expected %+v", got, exp)
	}
}
