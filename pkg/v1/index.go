package pondconn

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhconnelly/rtreego"
)

// DatasetIndex provides fast spatial queries over a collection of vector
// files.
//
// The index stores lightweight metadata for each file (path, bounds, row
// count) in an R-tree and supports efficient spatial filtering. This allows
// loading only the files that intersect a region of interest, which matters
// when a waterbody inventory is split across hundreds of county files.
//
// Example:
//
//	idx, err := pondconn.BuildIndexFromDir("/data/nwi", reader, pondconn.DefaultLoadOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	region := pondconn.Bounds{MinX: 500000, MinY: 5200000, MaxX: 600000, MaxY: 5300000}
//	entries := idx.Query(region)
type DatasetIndex struct {
	entries []DatasetEntry
	tree    *rtreego.Rtree
}

// DatasetEntry contains indexed metadata for a single vector file.
type DatasetEntry struct {
	Path         string // absolute path to the source file
	Name         string // dataset name (file stem)
	Bounds       Bounds // geographic coverage
	FeatureCount int    // number of rows
	Proj4        string // spatial reference, if known
}

type indexItem struct {
	entry DatasetEntry
	rect  *rtreego.Rect
}

func (it *indexItem) Bounds() *rtreego.Rect {
	return it.rect
}

// BuildIndexFromDir builds a dataset index by scanning a directory tree for
// vector files (.shp, .geojson, .json).
//
// Every file is decoded once to learn its bounds and row count; loading is
// done in parallel per LoadOptions. Files that fail to load are skipped when
// opts.SkipErrors is set.
func BuildIndexFromDir(root string, reader Reader, opts LoadOptions) (*DatasetIndex, error) {
	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".shp", ".geojson", ".json":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no vector files found in %s", root)
	}

	datasets, errs := ReadDatasetsParallel(paths, reader, opts)
	if len(datasets) == 0 {
		return nil, fmt.Errorf("no vector files could be loaded (%d errors)", len(errs))
	}

	return BuildIndex(datasets)
}

// BuildIndex creates an index from already-loaded datasets.
func BuildIndex(datasets []*Dataset) (*DatasetIndex, error) {
	idx := &DatasetIndex{
		entries: make([]DatasetEntry, len(datasets)),
		tree:    rtreego.NewTree(2, 25, 50),
	}

	for i, ds := range datasets {
		entry := DatasetEntry{
			Path:         ds.Path(),
			Name:         ds.Name(),
			Bounds:       ds.Bounds(),
			FeatureCount: ds.FeatureCount(),
			Proj4:        ds.Proj4(),
		}
		idx.entries[i] = entry

		rect, err := entry.Bounds.rect()
		if err != nil {
			return nil, fmt.Errorf("index %s: %w", entry.Name, err)
		}
		idx.tree.Insert(&indexItem{entry: entry, rect: rect})
	}

	return idx, nil
}

// Query returns entries whose bounds intersect the given bounds, sorted by
// name for stable output.
func (idx *DatasetIndex) Query(bounds Bounds) []DatasetEntry {
	rect, err := bounds.rect()
	if err != nil {
		return nil
	}

	var result []DatasetEntry
	for _, hit := range idx.tree.SearchIntersect(rect) {
		result = append(result, hit.(*indexItem).entry)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Count returns the total number of files in the index.
func (idx *DatasetIndex) Count() int {
	return len(idx.entries)
}

// All returns all entries in the index.
func (idx *DatasetIndex) All() []DatasetEntry {
	return idx.entries
}

// Bounds returns the union of all entry bounds in the index.
func (idx *DatasetIndex) Bounds() Bounds {
	if len(idx.entries) == 0 {
		return Bounds{}
	}

	bounds := idx.entries[0].Bounds
	for i := 1; i < len(idx.entries); i++ {
		bounds = bounds.Union(idx.entries[i].Bounds)
	}

	return bounds
}
