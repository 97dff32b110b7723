package vector

import (
	"fmt"

	"github.com/ctessum/geom"
)

// ValidateCoordinate checks that a geographic coordinate is within valid
// longitude/latitude bounds.
func ValidateCoordinate(x, y float64) error {
	if y < -90.0 || y > 90.0 {
		return &ErrInvalidCoordinate{X: x, Y: y}
	}
	if x < -180.0 || x > 180.0 {
		return &ErrInvalidCoordinate{X: x, Y: y}
	}
	return nil
}

// Validate checks basic structural rules for a geometry: lines need at least
// two points, polygon rings at least three distinct points, and coordinates
// must be within longitude/latitude bounds when the data is geographic.
// Projected data skips the coordinate range check.
func Validate(g geom.Geom, isGeographic bool) error {
	switch t := g.(type) {
	case geom.Point:
		return validatePoint(t, isGeographic)

	case geom.MultiPoint:
		for _, p := range t {
			if err := validatePoint(p, isGeographic); err != nil {
				return err
			}
		}
		return nil

	case geom.LineString:
		if len(t) < 2 {
			return &ErrInvalidGeometry{
				Kind:   "LineString",
				Reason: fmt.Sprintf("need at least 2 points, got %d", len(t)),
			}
		}
		return validatePoints(t, isGeographic, "LineString")

	case geom.MultiLineString:
		for _, l := range t {
			if err := Validate(l, isGeographic); err != nil {
				return err
			}
		}
		return nil

	case geom.Polygon:
		for _, ring := range t {
			// A closed ring repeats its first point, so 4 points is the
			// smallest valid ring (a triangle).
			if len(ring) < 4 {
				return &ErrInvalidGeometry{
					Kind:   "Polygon",
					Reason: fmt.Sprintf("ring needs at least 4 points including closure, got %d", len(ring)),
				}
			}
			if ring[0] != ring[len(ring)-1] {
				return &ErrInvalidGeometry{
					Kind:   "Polygon",
					Reason: "ring is not closed",
				}
			}
			if err := validatePoints(ring, isGeographic, "Polygon"); err != nil {
				return err
			}
		}
		return nil

	case geom.MultiPolygon:
		for _, p := range t {
			if err := Validate(p, isGeographic); err != nil {
				return err
			}
		}
		return nil

	case geom.GeometryCollection:
		for _, sub := range t {
			if err := Validate(sub, isGeographic); err != nil {
				return err
			}
		}
		return nil

	case nil:
		return &ErrInvalidGeometry{Reason: "geometry is nil"}

	default:
		return &ErrUnsupportedGeometry{Kind: "unknown"}
	}
}

func validatePoint(p geom.Point, isGeographic bool) error {
	if !isGeographic {
		return nil
	}
	return ValidateCoordinate(p.X, p.Y)
}

func validatePoints(points []geom.Point, isGeographic bool, kind string) error {
	if !isGeographic {
		return nil
	}
	for i, p := range points {
		if err := ValidateCoordinate(p.X, p.Y); err != nil {
			return &ErrInvalidGeometry{
				Kind:   kind,
				Reason: fmt.Sprintf("coordinate %d invalid: %v", i, err),
			}
		}
	}
	return nil
}
