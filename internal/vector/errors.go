package vector

import (
	"fmt"
)

// ErrUnsupportedFormat indicates a source file with an unrecognized extension.
type ErrUnsupportedFormat struct {
	Path string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported vector format: %s (supported: .shp, .geojson, .json)", e.Path)
}

// ErrInvalidCoordinate indicates a geographic coordinate out of valid bounds.
type ErrInvalidCoordinate struct {
	X, Y float64
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("invalid coordinate: lon=%f lat=%f (lon must be ±180, lat must be ±90)",
		e.X, e.Y)
}

// ErrInvalidGeometry indicates a geometry that violates basic structural rules.
type ErrInvalidGeometry struct {
	Kind   string
	Reason string
}

func (e *ErrInvalidGeometry) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("invalid geometry (%s): %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("invalid geometry: %s", e.Reason)
}

// ErrUnsupportedGeometry indicates a geometry type with no tabular equivalent.
type ErrUnsupportedGeometry struct {
	Kind string
}

func (e *ErrUnsupportedGeometry) Error() string {
	return fmt.Sprintf("unsupported geometry type: %s", e.Kind)
}

// ErrMissingAttribute indicates a requested attribute column absent from the source.
type ErrMissingAttribute struct {
	Column string
	Path   string
}

func (e *ErrMissingAttribute) Error() string {
	return fmt.Sprintf("%s: missing attribute column %s", e.Path, e.Column)
}

// ErrInvalidProjection indicates a spatial reference that cannot be parsed or
// transformed to.
type ErrInvalidProjection struct {
	Proj4 string
	Err   error
}

func (e *ErrInvalidProjection) Error() string {
	return fmt.Sprintf("invalid spatial reference %q: %v", e.Proj4, e.Err)
}

func (e *ErrInvalidProjection) Unwrap() error { return e.Err }
