package pondconn

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/dhconnelly/rtreego"
)

// Overlay computes the pairwise polygon intersection of two datasets: one
// output row per (a, b) pair whose geometries share area, with the geometry
// column holding the common geometry and the attribute columns of both inputs
// carried through. Colliding column names get "_1" and "_2" suffixes.
//
// Rows whose geometry is not polygonal are skipped. Candidate pairs are
// prefiltered with an R-tree over b.
//
// Both datasets must share a spatial reference; reproject one of them first
// if they do not.
func Overlay(a, b *Dataset) (*Dataset, error) {
	if a.Proj4() != "" && b.Proj4() != "" && a.Proj4() != b.Proj4() {
		return nil, &ErrProjectionMismatch{
			NameA: a.Name(), NameB: b.Name(),
			RefA: a.Proj4(), RefB: b.Proj4(),
		}
	}

	tree := rtreego.NewTree(2, 25, 50)
	for i := range b.Features() {
		f := &b.Features()[i]
		if _, ok := f.Geometry().(geom.Polygonal); !ok {
			continue
		}
		rect, err := featureBounds(*f).rect()
		if err != nil {
			return nil, fmt.Errorf("overlay: index feature %d: %w", f.ID(), err)
		}
		tree.Insert(&overlayItem{feature: f, rect: rect})
	}

	var out []Feature
	for _, fa := range a.Features() {
		pa, ok := fa.Geometry().(geom.Polygonal)
		if !ok {
			continue
		}
		rect, err := featureBounds(fa).rect()
		if err != nil {
			return nil, fmt.Errorf("overlay: query feature %d: %w", fa.ID(), err)
		}
		for _, hit := range tree.SearchIntersect(rect) {
			fb := hit.(*overlayItem).feature
			pb := fb.Geometry().(geom.Polygonal)

			common := pa.Intersection(pb)
			if common == nil || len(common.Polygons()) == 0 || common.Area() <= 0 {
				continue
			}
			out = append(out, Feature{
				id:         int64(len(out)),
				geometry:   common,
				attributes: mergeAttrs(fa.attributes, fb.attributes),
			})
		}
	}

	name := a.Name() + "_x_" + b.Name()
	return assemble(name, a.Proj4(), out), nil
}

// ErrProjectionMismatch indicates two datasets whose geometry columns are in
// different spatial references. Coordinates from different references cannot
// be combined row-wise.
type ErrProjectionMismatch struct {
	NameA, NameB string // dataset names
	RefA, RefB   string // declared spatial references
}

func (e *ErrProjectionMismatch) Error() string {
	return fmt.Sprintf("datasets %s and %s use different spatial references (%q vs %q)",
		e.NameA, e.NameB, e.RefA, e.RefB)
}

type overlayItem struct {
	feature *Feature
	rect    *rtreego.Rect
}

func (it *overlayItem) Bounds() *rtreego.Rect {
	return it.rect
}

// mergeAttrs combines the attribute columns of an intersecting pair,
// suffixing colliding names.
func mergeAttrs(left, right map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(left)+len(right))
	for k, v := range left {
		merged[k] = v
	}
	for k, v := range right {
		if _, clash := merged[k]; clash {
			lv := merged[k]
			delete(merged, k)
			merged[k+"_1"] = lv
			merged[k+"_2"] = v
			continue
		}
		merged[k] = v
	}
	return merged
}
