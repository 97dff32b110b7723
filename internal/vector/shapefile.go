package vector

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"
)

// ReadShapefile decodes a shapefile into a Collection.
//
// The spatial reference is taken from the .prj sidecar unless
// Options.SourceProj4 overrides it; a shapefile without a sidecar reads fine
// but cannot be reprojected. Attribute columns are read for the names in
// Options.AttributeFilter; with an empty filter only the geometry column is
// decoded (DBF columns must be requested by name).
func ReadShapefile(path string, opts Options) (*Collection, error) {
	d, err := shp.NewDecoder(path)
	if err != nil {
		return nil, fmt.Errorf("open shapefile %s: %w", path, err)
	}
	defer d.Close()

	sourceRef := opts.SourceProj4
	if sourceRef == "" {
		sourceRef, err = sidecarRef(path)
		if err != nil {
			return nil, err
		}
	}

	var sr *proj.SR
	if sourceRef != "" {
		sr, err = proj.Parse(sourceRef)
		if err != nil {
			return nil, &ErrInvalidProjection{Proj4: sourceRef, Err: err}
		}
	}

	var trans proj.Transformer
	outRef := sourceRef
	if opts.TargetProj4 != "" {
		if sr == nil {
			return nil, fmt.Errorf("reproject %s: no .prj sidecar and no SourceProj4; source spatial reference unknown", path)
		}
		trans, err = newTransform(sr, opts.TargetProj4)
		if err != nil {
			return nil, err
		}
		outRef = opts.TargetProj4
	}

	isGeographic := sr != nil && sr.Name == "longlat"

	c := &Collection{
		Name:  sourceName(path),
		Proj4: outRef,
	}

	for row := 0; ; row++ {
		g, fields, more := d.DecodeRowFields(opts.AttributeFilter...)
		if !more {
			break
		}

		attrs := make(map[string]interface{}, len(opts.AttributeFilter))
		for _, col := range opts.AttributeFilter {
			v, ok := fields[col]
			if !ok {
				return nil, &ErrMissingAttribute{Column: col, Path: path}
			}
			attrs[col] = v
		}

		if opts.ValidateGeometry {
			if err := Validate(g, isGeographic); err != nil {
				if opts.SkipInvalid {
					continue
				}
				return nil, fmt.Errorf("%s: row %d: %w", path, row, err)
			}
		}

		if trans != nil {
			g, err = g.Transform(trans)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d: reproject: %w", path, row, err)
			}
		}

		c.Features = append(c.Features, Feature{
			ID:    int64(len(c.Features)),
			Geom:  g,
			Attrs: attrs,
		})
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("decode shapefile %s: %w", path, err)
	}

	return c, nil
}

// sidecarRef reads the .prj sidecar next to the shapefile, returning "" when
// there is none. ESRI writes WKT into .prj files; proj.Parse accepts both WKT
// and Proj4 strings, so the contents are carried through verbatim.
func sidecarRef(path string) (string, error) {
	prj := strings.TrimSuffix(path, ".shp") + ".prj"
	b, err := os.ReadFile(prj)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read spatial reference %s: %w", prj, err)
	}
	return strings.TrimSpace(string(b)), nil
}
