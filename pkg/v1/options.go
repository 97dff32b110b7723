package pondconn

// ReadOptions configures vector data loading.
type ReadOptions struct {
	// SkipInvalid drops rows whose geometry fails validation instead of
	// failing the whole read.
	SkipInvalid bool

	// ValidateGeometry enables per-row geometry validation.
	ValidateGeometry bool

	// AttributeFilter restricts which attribute columns are carried through.
	// Shapefile attribute columns are only decoded when named here; GeoJSON
	// carries all properties when the filter is empty.
	AttributeFilter []string

	// SourceProj4 overrides the source's spatial reference (Proj4 format).
	// Shapefiles default to their .prj sidecar; GeoJSON defaults to
	// geographic WGS-84.
	SourceProj4 string

	// TargetProj4 reprojects geometries into this spatial reference during
	// the read. Connectivity metrics are in coordinate units, so data meant
	// for meter-based aggregates should be read into a projected reference.
	TargetProj4 string
}

// DefaultReadOptions returns default options.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{
		SkipInvalid:      false,
		ValidateGeometry: true,
		AttributeFilter:  nil,
	}
}
