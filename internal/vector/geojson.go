package vector

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctessum/geom/proj"
	geojson "github.com/paulmach/go.geojson"
)

// ReadGeoJSON decodes a GeoJSON FeatureCollection file into a Collection.
//
// GeoJSON coordinates are geographic WGS-84 unless Options.SourceProj4 says
// otherwise. When Options.TargetProj4 is set, geometries are reprojected
// during the read.
func ReadGeoJSON(path string, opts Options) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read geojson: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse geojson %s: %w", path, err)
	}

	sourceProj4 := opts.SourceProj4
	if sourceProj4 == "" {
		sourceProj4 = GeographicProj4
	}

	var trans proj.Transformer
	outProj4 := sourceProj4
	if opts.TargetProj4 != "" && opts.TargetProj4 != sourceProj4 {
		src, err := proj.Parse(sourceProj4)
		if err != nil {
			return nil, &ErrInvalidProjection{Proj4: sourceProj4, Err: err}
		}
		trans, err = newTransform(src, opts.TargetProj4)
		if err != nil {
			return nil, err
		}
		outProj4 = opts.TargetProj4
	}

	isGeographic := geographic(sourceProj4)

	c := &Collection{
		Name:     sourceName(path),
		Proj4:    outProj4,
		Features: make([]Feature, 0, len(fc.Features)),
	}

	for i, f := range fc.Features {
		g, err := FromGeoJSON(f.Geometry)
		if err != nil {
			if opts.SkipInvalid {
				continue
			}
			return nil, fmt.Errorf("%s: feature %d: %w", path, i, err)
		}

		if opts.ValidateGeometry {
			if err := Validate(g, isGeographic); err != nil {
				if opts.SkipInvalid {
					continue
				}
				return nil, fmt.Errorf("%s: feature %d: %w", path, i, err)
			}
		}

		if trans != nil {
			g, err = g.Transform(trans)
			if err != nil {
				return nil, fmt.Errorf("%s: feature %d: reproject: %w", path, i, err)
			}
		}

		c.Features = append(c.Features, Feature{
			ID:    featureID(f, int64(len(c.Features))),
			Geom:  g,
			Attrs: filterAttrs(f.Properties, opts.AttributeFilter),
		})
	}

	return c, nil
}

// featureID uses the source feature's numeric id when present, falling back
// to the row index.
func featureID(f *geojson.Feature, row int64) int64 {
	switch id := f.ID.(type) {
	case float64:
		return int64(id)
	case int64:
		return id
	case int:
		return int64(id)
	default:
		return row
	}
}

// filterAttrs carries attribute columns through, restricted to the filter
// when one is given.
func filterAttrs(props map[string]interface{}, filter []string) map[string]interface{} {
	if props == nil {
		return map[string]interface{}{}
	}
	if len(filter) == 0 {
		attrs := make(map[string]interface{}, len(props))
		for k, v := range props {
			attrs[k] = v
		}
		return attrs
	}
	attrs := make(map[string]interface{}, len(filter))
	for _, k := range filter {
		if v, ok := props[k]; ok {
			attrs[k] = v
		}
	}
	return attrs
}

// sourceName derives a dataset name from the file path (stem without extension).
func sourceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
