package pondconn

import (
	"fmt"

	"github.com/ctessum/geom"

	"github.com/tidemill/pondconn/internal/geomop"
)

// ConnectivityOptions configures the pond-connectivity derivation.
//
// All distances are in the dataset's coordinate units; read data into a
// meter-based projection for metric results.
type ConnectivityOptions struct {
	// ReachDistance is the buffer distance around the selected pond. Every
	// point within this distance of the pond is considered reachable.
	ReachDistance float64

	// EdgeWidth is the half-width used to re-buffer the reach boundary into
	// a thin polygon. Overlay intersection operates on polygons, not lines,
	// so the boundary polyline is thickened before intersecting.
	EdgeWidth float64

	// QuadSegments is the number of segments approximating a quarter circle
	// in buffer operations. 8 is the GEOS default.
	QuadSegments int
}

// DefaultConnectivityOptions returns options suitable for meter-based data:
// a 500 m reach and a 1 m edge width.
func DefaultConnectivityOptions() ConnectivityOptions {
	return ConnectivityOptions{
		ReachDistance: 500,
		EdgeWidth:     1,
		QuadSegments:  8,
	}
}

// ConnectivityResult holds the derived geometries and the two scalar
// aggregates of a pond-connectivity computation.
type ConnectivityResult struct {
	// FeatureID is the id of the selected pond.
	FeatureID int64

	// EdgeLength is the summed perimeter of all reach-edge pieces, in
	// coordinate units (meters for projected data).
	EdgeLength float64

	// HullArea is the summed area of the convex hulls of all reach-edge
	// pieces, in squared coordinate units.
	HullArea float64

	// Reach is the selected pond buffered by the reach distance.
	Reach geom.Geom

	// Edge is the reach boundary re-buffered into a thin polygon.
	Edge geom.Geom

	// Pieces holds the intersections of the thin edge polygon with the
	// other ponds: one row per contributing pond, attributes carried
	// through from the source.
	Pieces *Dataset

	// Hulls holds the convex hull of each piece, row for row.
	Hulls *Dataset
}

// Summary formats the two scalar aggregates as fixed-point strings.
func (r *ConnectivityResult) Summary() string {
	return fmt.Sprintf("Total edge length: %.2f meters\nTotal hull area: %.2f square meters",
		r.EdgeLength, r.HullArea)
}

// Connectivity computes the pond-connectivity metric for one selected record
// against the rest of the dataset.
//
// The derivation is a fixed five-step geometric recipe:
//
//  1. buffer the selected pond by the reach distance;
//  2. extract the buffered polygon's boundary as a polyline;
//  3. re-buffer that boundary into a thin polygon (overlay intersection
//     needs polygon inputs);
//  4. intersect the thin edge polygon with every other pond that could
//     touch it;
//  5. take the convex hull of each resulting piece.
//
// The two aggregates are the summed perimeter of the pieces (edge length)
// and the summed area of their convex hulls. Ponds that do not cross the
// reach edge (including ponds wholly inside the reach) contribute nothing.
//
// The selected feature must be polygonal. A pond with no neighbors on its
// reach edge yields zero aggregates and an empty Pieces dataset, not an
// error.
func Connectivity(ds *Dataset, featureID int64, opts ConnectivityOptions) (*ConnectivityResult, error) {
	if ds.FeatureCount() == 0 {
		return nil, fmt.Errorf("connectivity: dataset %s is empty", ds.Name())
	}

	selected, err := ds.Feature(featureID)
	if err != nil {
		return nil, fmt.Errorf("connectivity: %w", err)
	}
	if _, ok := selected.Geometry().(geom.Polygonal); !ok {
		return nil, fmt.Errorf("connectivity: feature %d is not polygonal", featureID)
	}

	// Step 1: buffer the pond into its reach polygon.
	reach, err := geomop.Buffer(selected.Geometry(), opts.ReachDistance, opts.QuadSegments)
	if err != nil {
		return nil, fmt.Errorf("connectivity: reach buffer: %w", err)
	}

	// Step 2: the reach boundary as a polyline.
	boundary, err := geomop.Boundary(reach)
	if err != nil {
		return nil, fmt.Errorf("connectivity: reach boundary: %w", err)
	}

	// Step 3: thicken the boundary into a thin polygon.
	edge, err := geomop.Buffer(boundary, opts.EdgeWidth, opts.QuadSegments)
	if err != nil {
		return nil, fmt.Errorf("connectivity: edge buffer: %w", err)
	}

	// Steps 4 and 5: intersect the edge with the rest of the dataset and
	// hull each piece, accumulating the two aggregates.
	rest := ds.Without(featureID)
	edgeBounds := geomBounds(edge)

	pieces := make([]geom.Geom, len(rest.Features()))
	hulls := make([]geom.Geom, len(rest.Features()))
	var edgeLength, hullArea float64

	for i, other := range rest.Features() {
		if !edgeBounds.Intersects(featureBounds(other)) {
			continue
		}

		piece, err := geomop.Intersection(edge, other.Geometry())
		if err != nil {
			return nil, fmt.Errorf("connectivity: intersect feature %d: %w", other.ID(), err)
		}
		if piece == nil {
			continue
		}

		hull, err := geomop.ConvexHull(piece)
		if err != nil {
			return nil, fmt.Errorf("connectivity: hull feature %d: %w", other.ID(), err)
		}

		length, err := geomop.Length(piece)
		if err != nil {
			return nil, fmt.Errorf("connectivity: length feature %d: %w", other.ID(), err)
		}
		area, err := geomop.Area(hull)
		if err != nil {
			return nil, fmt.Errorf("connectivity: hull area feature %d: %w", other.ID(), err)
		}

		pieces[i] = piece
		hulls[i] = hull
		edgeLength += length
		hullArea += area
	}

	pieceSet, err := rest.WithGeometries(pieces)
	if err != nil {
		return nil, fmt.Errorf("connectivity: %w", err)
	}
	hullSet, err := rest.WithGeometries(hulls)
	if err != nil {
		return nil, fmt.Errorf("connectivity: %w", err)
	}

	return &ConnectivityResult{
		FeatureID:  featureID,
		EdgeLength: edgeLength,
		HullArea:   hullArea,
		Reach:      reach,
		Edge:       edge,
		Pieces:     pieceSet,
		Hulls:      hullSet,
	}, nil
}
