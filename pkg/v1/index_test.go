package pondconn

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func inventoryFeature(minX, minY float64) string {
	return fmt.Sprintf(`{
      "type": "Feature",
      "properties": {"name": "pond"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[%[1]f, %[2]f], [%[3]f, %[2]f], [%[3]f, %[4]f], [%[1]f, %[4]f], [%[1]f, %[2]f]]]
      }
    }`, minX, minY, minX+0.01, minY+0.01)
}

// writeInventory creates a directory of small GeoJSON files in three distinct
// regions, returning its path.
func writeInventory(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]float64{
		"west.geojson":    -72.1,
		"central.geojson": -71.5,
		"east.geojson":    -70.9,
	}
	for name, lon := range files {
		content := fmt.Sprintf(`{"type": "FeatureCollection", "features": [%s]}`,
			inventoryFeature(lon, 42.3))
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	// A non-vector file that the walk must skip.
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("pond inventory"), 0o644); err != nil {
		t.Fatalf("write README: %v", err)
	}

	return dir
}

// TestBuildIndexFromDir tests directory scanning and index construction
func TestBuildIndexFromDir(t *testing.T) {
	dir := writeInventory(t)

	idx, err := BuildIndexFromDir(dir, NewReader(), DefaultLoadOptions())
	if err != nil {
		t.Fatalf("BuildIndexFromDir() error = %v", err)
	}

	if idx.Count() != 3 {
		t.Fatalf("Count = %d, want 3", idx.Count())
	}

	for _, entry := range idx.All() {
		if entry.Path == "" {
			t.Errorf("entry %s has no source path", entry.Name)
		}
		if entry.FeatureCount != 1 {
			t.Errorf("entry %s FeatureCount = %d, want 1", entry.Name, entry.FeatureCount)
		}
	}

	// The union bounds must span west through east.
	bounds := idx.Bounds()
	if bounds.MinX > -72.1 || bounds.MaxX < -70.89 {
		t.Errorf("index bounds %+v should span all files", bounds)
	}
}

// TestIndexQuery tests spatial filtering of entries
func TestIndexQuery(t *testing.T) {
	dir := writeInventory(t)

	idx, err := BuildIndexFromDir(dir, NewReader(), DefaultLoadOptions())
	if err != nil {
		t.Fatalf("BuildIndexFromDir() error = %v", err)
	}

	// A window around the western file only.
	west := idx.Query(Bounds{MinX: -72.2, MinY: 42.2, MaxX: -72.0, MaxY: 42.4})
	if len(west) != 1 || west[0].Name != "west" {
		t.Errorf("Query(west) = %v, want exactly the west entry", west)
	}

	// A window covering everything, results sorted by name.
	all := idx.Query(Bounds{MinX: -73, MinY: 42, MaxX: -70, MaxY: 43})
	if len(all) != 3 {
		t.Fatalf("Query(all) = %d entries, want 3", len(all))
	}
	if all[0].Name != "central" || all[1].Name != "east" || all[2].Name != "west" {
		t.Errorf("Query(all) order = [%s %s %s], want sorted by name",
			all[0].Name, all[1].Name, all[2].Name)
	}

	// A window nowhere near the inventory.
	if hits := idx.Query(Bounds{MinX: 10, MinY: 10, MaxX: 11, MaxY: 11}); len(hits) != 0 {
		t.Errorf("Query(empty region) = %d entries, want 0", len(hits))
	}
}

// TestBuildIndexFromDirEmpty tests the no-files error path
func TestBuildIndexFromDirEmpty(t *testing.T) {
	if _, err := BuildIndexFromDir(t.TempDir(), NewReader(), DefaultLoadOptions()); err == nil {
		t.Error("empty directory should fail")
	}
}

// TestDatasetLoader tests lazy loading through the index and cache
func TestDatasetLoader(t *testing.T) {
	dir := writeInventory(t)

	idx, err := BuildIndexFromDir(dir, NewReader(), DefaultLoadOptions())
	if err != nil {
		t.Fatalf("BuildIndexFromDir() error = %v", err)
	}
	loader := NewDatasetLoader(idx, DefaultLoaderOptions())

	region := Bounds{MinX: -72.2, MinY: 42.2, MaxX: -72.0, MaxY: 42.4}

	datasets, err := loader.GetDatasetsForBounds(region)
	if err != nil {
		t.Fatalf("GetDatasetsForBounds() error = %v", err)
	}
	if len(datasets) != 1 || datasets[0].Name() != "west" {
		t.Fatalf("GetDatasetsForBounds() = %d datasets, want exactly west", len(datasets))
	}

	// Second query hits the cache.
	if _, err := loader.GetDatasetsForBounds(region); err != nil {
		t.Fatalf("GetDatasetsForBounds() error = %v", err)
	}

	stats := loader.Stats()
	if stats.CacheMisses != 1 || stats.CacheHits != 1 {
		t.Errorf("cache hits/misses = %d/%d, want 1/1", stats.CacheHits, stats.CacheMisses)
	}
	if rate := loader.CacheHitRate(); rate != 0.5 {
		t.Errorf("CacheHitRate = %f, want 0.5", rate)
	}

	// Load by name.
	ds, err := loader.GetDataset("east")
	if err != nil {
		t.Fatalf("GetDataset() error = %v", err)
	}
	if ds.Name() != "east" {
		t.Errorf("GetDataset name = %q, want east", ds.Name())
	}

	if _, err := loader.GetDataset("nowhere"); err == nil {
		t.Error("unknown dataset name should fail")
	}
}

// TestReadDatasetsParallel tests the worker-pool loader
func TestReadDatasetsParallel(t *testing.T) {
	dir := writeInventory(t)
	paths := []string{
		filepath.Join(dir, "west.geojson"),
		filepath.Join(dir, "central.geojson"),
		filepath.Join(dir, "east.geojson"),
		filepath.Join(dir, "missing.geojson"),
	}

	opts := DefaultLoadOptions()
	opts.SkipErrors = true

	datasets, errs := ReadDatasetsParallel(paths, NewReader(), opts)
	if len(datasets) != 3 {
		t.Errorf("loaded %d datasets, want 3", len(datasets))
	}
	if len(errs) != 1 {
		t.Errorf("got %d errors, want 1 for the missing file", len(errs))
	}

	// Output preserves input order.
	if datasets[0].Name() != "west" || datasets[1].Name() != "central" || datasets[2].Name() != "east" {
		t.Errorf("order = [%s %s %s], want input order",
			datasets[0].Name(), datasets[1].Name(), datasets[2].Name())
	}
}
