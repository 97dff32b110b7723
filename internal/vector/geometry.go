package vector

import (
	"github.com/ctessum/geom"
	geojson "github.com/paulmach/go.geojson"
)

// FromGeoJSON converts a GeoJSON geometry into the tabular geometry model.
// Coordinates follow GeoJSON convention: [longitude, latitude] (or [x, y] for
// projected data). Z values are dropped.
func FromGeoJSON(gj *geojson.Geometry) (geom.Geom, error) {
	if gj == nil {
		return nil, &ErrInvalidGeometry{Reason: "geometry is nil"}
	}

	switch gj.Type {
	case geojson.GeometryPoint:
		return pointFromCoord(gj.Point)

	case geojson.GeometryMultiPoint:
		mp := make(geom.MultiPoint, 0, len(gj.MultiPoint))
		for _, c := range gj.MultiPoint {
			p, err := pointFromCoord(c)
			if err != nil {
				return nil, err
			}
			mp = append(mp, p)
		}
		return mp, nil

	case geojson.GeometryLineString:
		return lineFromCoords(gj.LineString)

	case geojson.GeometryMultiLineString:
		ml := make(geom.MultiLineString, 0, len(gj.MultiLineString))
		for _, coords := range gj.MultiLineString {
			l, err := lineFromCoords(coords)
			if err != nil {
				return nil, err
			}
			ml = append(ml, l)
		}
		return ml, nil

	case geojson.GeometryPolygon:
		return polygonFromCoords(gj.Polygon)

	case geojson.GeometryMultiPolygon:
		mp := make(geom.MultiPolygon, 0, len(gj.MultiPolygon))
		for _, coords := range gj.MultiPolygon {
			p, err := polygonFromCoords(coords)
			if err != nil {
				return nil, err
			}
			mp = append(mp, p)
		}
		return mp, nil

	case geojson.GeometryCollection:
		gc := make(geom.GeometryCollection, 0, len(gj.Geometries))
		for _, sub := range gj.Geometries {
			g, err := FromGeoJSON(sub)
			if err != nil {
				return nil, err
			}
			gc = append(gc, g)
		}
		return gc, nil

	default:
		return nil, &ErrUnsupportedGeometry{Kind: string(gj.Type)}
	}
}

// ToGeoJSON converts a tabular geometry back into GeoJSON form.
func ToGeoJSON(g geom.Geom) (*geojson.Geometry, error) {
	switch t := g.(type) {
	case geom.Point:
		return &geojson.Geometry{
			Type:  geojson.GeometryPoint,
			Point: []float64{t.X, t.Y},
		}, nil

	case geom.MultiPoint:
		coords := make([][]float64, len(t))
		for i, p := range t {
			coords[i] = []float64{p.X, p.Y}
		}
		return &geojson.Geometry{
			Type:       geojson.GeometryMultiPoint,
			MultiPoint: coords,
		}, nil

	case geom.LineString:
		return &geojson.Geometry{
			Type:       geojson.GeometryLineString,
			LineString: lineToCoords(t),
		}, nil

	case geom.MultiLineString:
		coords := make([][][]float64, len(t))
		for i, l := range t {
			coords[i] = lineToCoords(l)
		}
		return &geojson.Geometry{
			Type:            geojson.GeometryMultiLineString,
			MultiLineString: coords,
		}, nil

	case geom.Polygon:
		return &geojson.Geometry{
			Type:    geojson.GeometryPolygon,
			Polygon: polygonToCoords(t),
		}, nil

	case geom.MultiPolygon:
		coords := make([][][][]float64, len(t))
		for i, p := range t {
			coords[i] = polygonToCoords(p)
		}
		return &geojson.Geometry{
			Type:         geojson.GeometryMultiPolygon,
			MultiPolygon: coords,
		}, nil

	case geom.GeometryCollection:
		subs := make([]*geojson.Geometry, len(t))
		for i, sub := range t {
			gj, err := ToGeoJSON(sub)
			if err != nil {
				return nil, err
			}
			subs[i] = gj
		}
		return &geojson.Geometry{
			Type:       geojson.GeometryCollection,
			Geometries: subs,
		}, nil

	default:
		return nil, &ErrUnsupportedGeometry{Kind: "unknown"}
	}
}

func pointFromCoord(c []float64) (geom.Point, error) {
	if len(c) < 2 {
		return geom.Point{}, &ErrInvalidGeometry{
			Kind:   "Point",
			Reason: "coordinate must have at least [x, y] values",
		}
	}
	return geom.Point{X: c[0], Y: c[1]}, nil
}

func lineFromCoords(coords [][]float64) (geom.LineString, error) {
	line := make(geom.LineString, 0, len(coords))
	for _, c := range coords {
		p, err := pointFromCoord(c)
		if err != nil {
			return nil, err
		}
		line = append(line, p)
	}
	return line, nil
}

func polygonFromCoords(coords [][][]float64) (geom.Polygon, error) {
	poly := make(geom.Polygon, 0, len(coords))
	for _, ringCoords := range coords {
		ring := make([]geom.Point, 0, len(ringCoords)+1)
		for _, c := range ringCoords {
			p, err := pointFromCoord(c)
			if err != nil {
				return nil, err
			}
			ring = append(ring, p)
		}
		poly = append(poly, CloseRing(ring))
	}
	return poly, nil
}

func lineToCoords(line geom.LineString) [][]float64 {
	coords := make([][]float64, len(line))
	for i, p := range line {
		coords[i] = []float64{p.X, p.Y}
	}
	return coords
}

func polygonToCoords(poly geom.Polygon) [][][]float64 {
	coords := make([][][]float64, len(poly))
	for i, ring := range poly {
		closed := CloseRing(ring)
		rc := make([][]float64, len(closed))
		for j, p := range closed {
			rc[j] = []float64{p.X, p.Y}
		}
		coords[i] = rc
	}
	return coords
}

// CloseRing ensures a polygon ring is closed (first point == last point).
func CloseRing(ring []geom.Point) []geom.Point {
	if len(ring) < 3 {
		return ring
	}
	if ring[0] == ring[len(ring)-1] {
		return ring
	}
	closed := make([]geom.Point, len(ring)+1)
	copy(closed, ring)
	closed[len(ring)] = ring[0]
	return closed
}
