package pondconn

import (
	"math"

	"github.com/ctessum/geom"
	"github.com/dhconnelly/rtreego"
)

// Bounds represents a planar bounding box in the dataset's coordinate units
// (degrees for geographic data, meters for projected data).
type Bounds struct {
	MinX float64 // Western edge
	MinY float64 // Southern edge
	MaxX float64 // Eastern edge
	MaxY float64 // Northern edge
}

// Contains returns true if the point (x, y) is within the bounds.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX &&
		y >= b.MinY && y <= b.MaxY
}

// Intersects returns true if the given bounds intersects with this bounds.
func (b Bounds) Intersects(other Bounds) bool {
	return !(other.MaxX < b.MinX ||
		other.MinX > b.MaxX ||
		other.MaxY < b.MinY ||
		other.MinY > b.MaxY)
}

// Expand returns a new Bounds expanded by the given margin in all directions.
//
// The margin is in the dataset's coordinate units.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		MinX: b.MinX - margin,
		MinY: b.MinY - margin,
		MaxX: b.MaxX + margin,
		MaxY: b.MaxY + margin,
	}
}

// Union returns the smallest Bounds containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		MinX: math.Min(b.MinX, other.MinX),
		MinY: math.Min(b.MinY, other.MinY),
		MaxX: math.Max(b.MaxX, other.MaxX),
		MaxY: math.Max(b.MaxY, other.MaxY),
	}
}

// rect converts the bounds to an R-tree rectangle. Degenerate extents are
// widened by a hair so point features still index cleanly.
func (b Bounds) rect() (*rtreego.Rect, error) {
	const minExtent = 1e-9
	dx := b.MaxX - b.MinX
	dy := b.MaxY - b.MinY
	if dx < minExtent {
		dx = minExtent
	}
	if dy < minExtent {
		dy = minExtent
	}
	return rtreego.NewRect(rtreego.Point{b.MinX, b.MinY}, []float64{dx, dy})
}

// geomBounds converts a geometry's bounding box to a Bounds value.
func geomBounds(g geom.Geom) Bounds {
	if g == nil {
		return Bounds{}
	}
	gb := g.Bounds()
	if gb == nil {
		return Bounds{}
	}
	return Bounds{
		MinX: gb.Min.X,
		MinY: gb.Min.Y,
		MaxX: gb.Max.X,
		MaxY: gb.Max.Y,
	}
}

// featureBounds calculates the bounding box for a feature's geometry.
func featureBounds(f Feature) Bounds {
	return geomBounds(f.geometry)
}
