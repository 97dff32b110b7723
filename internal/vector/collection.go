// Package vector decodes geospatial vector sources into geometry-plus-attribute
// records. It handles shapefiles (via the ctessum shapefile decoder) and GeoJSON
// (via paulmach/go.geojson), optional coordinate reprojection, and geometry
// validation. The public pondconn API wraps these records into Datasets.
package vector

import (
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"
)

// GeographicProj4 is the spatial reference assumed for sources that do not
// declare one. GeoJSON is geographic WGS-84 by definition (RFC 7946 §4).
const GeographicProj4 = "+proj=longlat +datum=WGS84 +no_defs"

// Feature is one decoded row: a geometry value plus the attribute columns
// carried through from the source.
type Feature struct {
	ID    int64
	Geom  geom.Geom
	Attrs map[string]interface{}
}

// Collection is a decoded vector source.
type Collection struct {
	Name     string // source file stem
	Proj4    string // spatial reference of the geometries (Proj4 or WKT), if known
	Features []Feature
}

// Options controls decoding behavior.
type Options struct {
	// SkipInvalid drops rows whose geometry fails validation instead of
	// failing the whole read.
	SkipInvalid bool

	// ValidateGeometry enables per-row geometry validation.
	ValidateGeometry bool

	// AttributeFilter restricts which attribute columns are carried through.
	// Shapefile attributes are only read for the listed columns; an empty
	// filter decodes shapefile geometry without attributes. GeoJSON carries
	// all properties when the filter is empty.
	AttributeFilter []string

	// SourceProj4 overrides the spatial reference of the source
	// (Proj4 format). Shapefiles default to their .prj sidecar and GeoJSON
	// to geographic WGS-84.
	SourceProj4 string

	// TargetProj4 reprojects geometries into this spatial reference
	// (Proj4 format) during the read.
	TargetProj4 string
}

// newTransform builds a coordinate transform between two Proj4 references.
func newTransform(src *proj.SR, targetProj4 string) (proj.Transformer, error) {
	dst, err := proj.Parse(targetProj4)
	if err != nil {
		return nil, &ErrInvalidProjection{Proj4: targetProj4, Err: err}
	}
	t, err := src.NewTransform(dst)
	if err != nil {
		return nil, &ErrInvalidProjection{Proj4: targetProj4, Err: err}
	}
	return t, nil
}

// geographic reports whether a Proj4 reference uses geographic
// (longitude/latitude) coordinates. Coordinate range validation only makes
// sense for those.
func geographic(proj4 string) bool {
	sr, err := proj.Parse(proj4)
	if err != nil {
		return false
	}
	return sr.Name == "longlat"
}
