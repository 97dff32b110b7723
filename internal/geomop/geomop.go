// Package geomop wraps the GEOS library with the geometric operations the
// pond-connectivity derivation needs: buffer, boundary extraction, overlay
// intersection, convex hull, and the length/area measures. Geometries cross
// the cgo boundary as GeoJSON.
//
// GEOS reports failures by panicking through the go-geos binding; every
// operation here recovers those panics and returns them as errors.
package geomop

import (
	"encoding/json"
	"fmt"

	"github.com/ctessum/geom"
	geojson "github.com/paulmach/go.geojson"
	geos "github.com/twpayne/go-geos"

	"github.com/tidemill/pondconn/internal/vector"
)

// Buffer returns the set of all points within dist of g. quadSegs controls
// how many segments approximate a quarter circle (8 is the GEOS default).
// A positive-distance buffer of a polygon always fully contains the polygon.
func Buffer(g geom.Geom, dist float64, quadSegs int) (out geom.Geom, err error) {
	defer recoverGEOS("buffer", &err)

	gg, err := toGEOS(g)
	if err != nil {
		return nil, err
	}
	return fromGEOS(gg.Buffer(dist, quadSegs))
}

// Boundary returns the polyline(s) forming the edge of a polygon: the outer
// ring and, for polygons with holes, the inner rings.
func Boundary(g geom.Geom) (out geom.Geom, err error) {
	defer recoverGEOS("boundary", &err)

	gg, err := toGEOS(g)
	if err != nil {
		return nil, err
	}
	return fromGEOS(gg.Boundary())
}

// ConvexHull returns the smallest convex geometry containing g.
func ConvexHull(g geom.Geom) (out geom.Geom, err error) {
	defer recoverGEOS("convex hull", &err)

	gg, err := toGEOS(g)
	if err != nil {
		return nil, err
	}
	return fromGEOS(gg.ConvexHull())
}

// Intersection returns the geometry common to a and b, or nil when the two
// do not intersect.
func Intersection(a, b geom.Geom) (out geom.Geom, err error) {
	defer recoverGEOS("intersection", &err)

	ga, err := toGEOS(a)
	if err != nil {
		return nil, err
	}
	gb, err := toGEOS(b)
	if err != nil {
		return nil, err
	}
	return fromGEOS(ga.Intersection(gb))
}

// Length returns the length of a geometry in its coordinate units. For
// polygons this is the perimeter; for points it is zero.
func Length(g geom.Geom) (l float64, err error) {
	defer recoverGEOS("length", &err)

	gg, err := toGEOS(g)
	if err != nil {
		return 0, err
	}
	return gg.Length(), nil
}

// Area returns the area of a geometry in squared coordinate units. For
// points and lines it is zero.
func Area(g geom.Geom) (a float64, err error) {
	defer recoverGEOS("area", &err)

	gg, err := toGEOS(g)
	if err != nil {
		return 0, err
	}
	return gg.Area(), nil
}

// Contains reports whether a fully contains b.
func Contains(a, b geom.Geom) (ok bool, err error) {
	defer recoverGEOS("contains", &err)

	ga, err := toGEOS(a)
	if err != nil {
		return false, err
	}
	gb, err := toGEOS(b)
	if err != nil {
		return false, err
	}
	return ga.Contains(gb), nil
}

// toGEOS moves a geometry into GEOS via its GeoJSON form.
func toGEOS(g geom.Geom) (*geos.Geom, error) {
	if g == nil {
		return nil, fmt.Errorf("geos: nil geometry")
	}
	gj, err := vector.ToGeoJSON(g)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(gj)
	if err != nil {
		return nil, fmt.Errorf("geos: encode geometry: %w", err)
	}
	gg, err := geos.NewGeomFromGeoJSON(string(data))
	if err != nil {
		return nil, fmt.Errorf("geos: decode geometry: %w", err)
	}
	return gg, nil
}

// fromGEOS moves a GEOS geometry back into the tabular geometry model.
// Empty results come back as nil.
func fromGEOS(gg *geos.Geom) (geom.Geom, error) {
	if gg == nil || gg.IsEmpty() {
		return nil, nil
	}
	gj, err := geojson.UnmarshalGeometry([]byte(gg.ToGeoJSON(-1)))
	if err != nil {
		return nil, fmt.Errorf("geos: encode result: %w", err)
	}
	return vector.FromGeoJSON(gj)
}

func recoverGEOS(op string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("geos %s: %v", op, r)
	}
}
