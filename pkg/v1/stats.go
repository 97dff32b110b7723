package pondconn

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/tidemill/pondconn/internal/geomop"
)

// Lengths returns the length of every row's geometry, in dataset order.
// Polygons report their perimeter, lines their length, points zero.
func Lengths(ds *Dataset) ([]float64, error) {
	out := make([]float64, ds.FeatureCount())
	for i, f := range ds.Features() {
		l, err := geomop.Length(f.Geometry())
		if err != nil {
			return nil, fmt.Errorf("lengths: feature %d: %w", f.ID(), err)
		}
		out[i] = l
	}
	return out, nil
}

// Areas returns the area of every row's geometry, in dataset order.
// Points and lines report zero.
func Areas(ds *Dataset) ([]float64, error) {
	out := make([]float64, ds.FeatureCount())
	for i, f := range ds.Features() {
		a, err := geomop.Area(f.Geometry())
		if err != nil {
			return nil, fmt.Errorf("areas: feature %d: %w", f.ID(), err)
		}
		out[i] = a
	}
	return out, nil
}

// TotalLength sums the geometry lengths of all rows.
func TotalLength(ds *Dataset) (float64, error) {
	lengths, err := Lengths(ds)
	if err != nil {
		return 0, err
	}
	return floats.Sum(lengths), nil
}

// TotalArea sums the geometry areas of all rows.
func TotalArea(ds *Dataset) (float64, error) {
	areas, err := Areas(ds)
	if err != nil {
		return 0, err
	}
	return floats.Sum(areas), nil
}
