package pondconn

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/proj"

	"github.com/tidemill/pondconn/internal/vector"
)

// Dataset is a tabular-geometric collection: one row per geographic feature,
// one designated geometry value per row, plus attribute columns carried
// through from the source unchanged.
//
// Datasets are never mutated in place. Derived collections (buffered,
// intersected, and so on) are created by copying a prior collection and
// overwriting its geometry column via WithGeometries.
//
// All fields are private to maintain encapsulation.
type Dataset struct {
	name     string
	path     string // source file, empty for derived collections
	proj4    string // spatial reference of the geometry column, if known
	features []Feature

	spatialIndex *spatialIndex // fast bounding-box queries
	bounds       Bounds        // extent of all features
}

// Feature represents one row of a Dataset: an id, a geometry value, and the
// attribute columns carried through from the source.
type Feature struct {
	id         int64
	geometry   geom.Geom
	attributes map[string]interface{}
}

// ID returns the feature identifier. Shapefile rows are numbered in file
// order; GeoJSON features keep their numeric id when they carry one.
func (f *Feature) ID() int64 {
	return f.id
}

// Geometry returns the feature's geometry value.
func (f *Feature) Geometry() geom.Geom {
	return f.geometry
}

// Attributes returns all attribute columns for this row.
func (f *Feature) Attributes() map[string]interface{} {
	return f.attributes
}

// Attribute returns a specific attribute value by column name.
//
// Returns the value and true if the column exists, or nil and false if not.
func (f *Feature) Attribute(name string) (interface{}, bool) {
	v, ok := f.attributes[name]
	return v, ok
}

// AttributeFloat returns a numeric attribute value by column name.
//
// Shapefile attributes arrive as strings and GeoJSON properties as JSON
// numbers; both are handled.
func (f *Feature) AttributeFloat(name string) (float64, bool) {
	v, ok := f.attributes[name]
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		x, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return x, true
	default:
		return 0, false
	}
}

// spatialIndex provides fast spatial queries using per-feature bounding boxes.
type spatialIndex struct {
	bounds []Bounds
}

// Name returns the dataset name, normally the source file stem.
func (d *Dataset) Name() string { return d.name }

// Path returns the source file the dataset was loaded from, or "" for
// derived collections.
func (d *Dataset) Path() string { return d.path }

// Proj4 returns the spatial reference of the geometry column as declared by
// the source (Proj4 or WKT form), or "" when the source did not declare one.
func (d *Dataset) Proj4() string { return d.proj4 }

// Features returns all rows in the dataset.
func (d *Dataset) Features() []Feature {
	return d.features
}

// FeatureCount returns the number of rows in the dataset.
func (d *Dataset) FeatureCount() int {
	return len(d.features)
}

// Feature returns the row with the given id.
func (d *Dataset) Feature(id int64) (*Feature, error) {
	for i := range d.features {
		if d.features[i].id == id {
			return &d.features[i], nil
		}
	}
	return nil, fmt.Errorf("dataset %s: no feature with id %d", d.name, id)
}

// Bounds returns the extent of all feature geometries.
func (d *Dataset) Bounds() Bounds {
	return d.bounds
}

// AttributeNames returns the sorted union of attribute column names across
// all rows.
func (d *Dataset) AttributeNames() []string {
	seen := make(map[string]bool)
	for i := range d.features {
		for k := range d.features[i].attributes {
			seen[k] = true
		}
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// FeaturesInBounds returns all rows whose geometry bounding box intersects
// the given bounds.
func (d *Dataset) FeaturesInBounds(bounds Bounds) []Feature {
	result := make([]Feature, 0, len(d.features)/10)
	for i := range d.features {
		fb := d.featureBoundsAt(i)
		if bounds.Intersects(fb) {
			result = append(result, d.features[i])
		}
	}
	return result
}

func (d *Dataset) featureBoundsAt(i int) Bounds {
	if d.spatialIndex != nil {
		return d.spatialIndex.bounds[i]
	}
	return featureBounds(d.features[i])
}

// WithGeometries returns a copy of the dataset with the geometry column
// overwritten by geoms, row for row. Attribute columns and ids are carried
// through unchanged; the receiver is not modified.
//
// Rows whose replacement geometry is nil are dropped, so overlay results with
// empty intersections thin out naturally.
func (d *Dataset) WithGeometries(geoms []geom.Geom) (*Dataset, error) {
	if len(geoms) != len(d.features) {
		return nil, fmt.Errorf("dataset %s: geometry column has %d values for %d rows",
			d.name, len(geoms), len(d.features))
	}
	features := make([]Feature, 0, len(d.features))
	for i, f := range d.features {
		if geoms[i] == nil {
			continue
		}
		features = append(features, Feature{
			id:         f.id,
			geometry:   geoms[i],
			attributes: f.attributes,
		})
	}
	return assemble(d.name, d.proj4, features), nil
}

// Select returns a copy of the dataset containing only the rows with the
// given ids, in dataset order.
func (d *Dataset) Select(ids ...int64) *Dataset {
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	features := make([]Feature, 0, len(ids))
	for _, f := range d.features {
		if want[f.id] {
			features = append(features, f)
		}
	}
	return assemble(d.name, d.proj4, features)
}

// Without returns a copy of the dataset with the row carrying the given id
// removed. This is the "rest of the dataset" counterpart to selecting one
// record.
func (d *Dataset) Without(id int64) *Dataset {
	features := make([]Feature, 0, len(d.features))
	for _, f := range d.features {
		if f.id != id {
			features = append(features, f)
		}
	}
	return assemble(d.name, d.proj4, features)
}

// Reproject returns a copy of the dataset with every geometry transformed
// into the given spatial reference (Proj4 format). The dataset must know its
// current spatial reference.
func (d *Dataset) Reproject(proj4 string) (*Dataset, error) {
	if d.proj4 == "" {
		return nil, fmt.Errorf("dataset %s: source spatial reference unknown; cannot reproject", d.name)
	}
	src, err := proj.Parse(d.proj4)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: parse spatial reference: %w", d.name, err)
	}
	dst, err := proj.Parse(proj4)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: parse target spatial reference: %w", d.name, err)
	}
	trans, err := src.NewTransform(dst)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: build transform: %w", d.name, err)
	}

	features := make([]Feature, len(d.features))
	for i, f := range d.features {
		g, err := f.geometry.Transform(trans)
		if err != nil {
			return nil, fmt.Errorf("dataset %s: feature %d: reproject: %w", d.name, f.id, err)
		}
		features[i] = Feature{id: f.id, geometry: g, attributes: f.attributes}
	}
	out := assemble(d.name, proj4, features)
	return out, nil
}

// convertCollection converts an internal decoded collection to a public Dataset.
func convertCollection(c *vector.Collection) *Dataset {
	features := make([]Feature, len(c.Features))
	for i, f := range c.Features {
		features[i] = Feature{
			id:         f.ID,
			geometry:   f.Geom,
			attributes: f.Attrs,
		}
	}
	return assemble(c.Name, c.Proj4, features)
}

// assemble builds a Dataset and its spatial index from a feature slice.
func assemble(name, proj4 string, features []Feature) *Dataset {
	d := &Dataset{
		name:     name,
		proj4:    proj4,
		features: features,
	}
	d.buildSpatialIndex()
	return d
}

// buildSpatialIndex computes per-feature bounds and the dataset extent.
func (d *Dataset) buildSpatialIndex() {
	if len(d.features) == 0 {
		return
	}

	d.spatialIndex = &spatialIndex{
		bounds: make([]Bounds, len(d.features)),
	}

	datasetBounds := featureBounds(d.features[0])
	for i := range d.features {
		fb := featureBounds(d.features[i])
		d.spatialIndex.bounds[i] = fb
		datasetBounds = datasetBounds.Union(fb)
	}
	d.bounds = datasetBounds
}
