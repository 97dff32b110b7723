package pondconn

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
)

// TestReadGeoJSON tests loading the testdata pond inventory
func TestReadGeoJSON(t *testing.T) {
	reader := NewReader()

	ds, err := reader.Read("testdata/ponds.geojson")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if ds.Name() != "ponds" {
		t.Errorf("Name = %q, want ponds", ds.Name())
	}
	if ds.Path() != "testdata/ponds.geojson" {
		t.Errorf("Path = %q, want source file", ds.Path())
	}
	if ds.FeatureCount() != 3 {
		t.Fatalf("FeatureCount = %d, want 3", ds.FeatureCount())
	}
	if ds.Proj4() == "" {
		t.Error("GeoJSON should carry the geographic default spatial reference")
	}

	f, err := ds.Feature(2)
	if err != nil {
		t.Fatalf("Feature(2) error = %v", err)
	}
	if name, _ := f.Attribute("name"); name != "beaver pond" {
		t.Errorf("feature 2 name = %v, want beaver pond", name)
	}
	if area, ok := f.AttributeFloat("area_ha"); !ok || area != 0.4 {
		t.Errorf("feature 2 area_ha = %v, want 0.4", area)
	}

	bounds := ds.Bounds()
	if bounds.MinX > bounds.MaxX || bounds.MinY > bounds.MaxY {
		t.Errorf("degenerate bounds: %+v", bounds)
	}
}

// TestReadWithAttributeFilter tests restricting carried columns
func TestReadWithAttributeFilter(t *testing.T) {
	reader := NewReader()

	opts := DefaultReadOptions()
	opts.AttributeFilter = []string{"class"}

	ds, err := reader.ReadWithOptions("testdata/ponds.geojson", opts)
	if err != nil {
		t.Fatalf("ReadWithOptions() error = %v", err)
	}

	f := ds.Features()[0]
	if _, ok := f.Attribute("class"); !ok {
		t.Error("class column should survive the filter")
	}
	if _, ok := f.Attribute("name"); ok {
		t.Error("name column should be dropped by the filter")
	}
}

// TestReadShapefile tests loading a shapefile and reprojecting it using the
// spatial reference declared by its .prj sidecar
func TestReadShapefile(t *testing.T) {
	type pondRecord struct {
		geom.Polygon
		Name string `shp:"name"`
	}

	dir := t.TempDir()
	shpPath := filepath.Join(dir, "ponds.shp")
	e, err := shp.NewEncoder(shpPath, pondRecord{})
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	square := geom.Polygon{{
		{X: -72.10, Y: 42.30}, {X: -72.09, Y: 42.30},
		{X: -72.09, Y: 42.31}, {X: -72.10, Y: 42.31},
		{X: -72.10, Y: 42.30},
	}}
	if err := e.Encode(pondRecord{Polygon: square, Name: "mill"}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	e.Close()
	prj := `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137.0,298.257223563]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]]`
	if err := os.WriteFile(filepath.Join(dir, "ponds.prj"), []byte(prj), 0o644); err != nil {
		t.Fatalf("write .prj: %v", err)
	}

	reader := NewReader()
	opts := DefaultReadOptions()
	opts.AttributeFilter = []string{"name"}

	ds, err := reader.ReadWithOptions(shpPath, opts)
	if err != nil {
		t.Fatalf("ReadWithOptions() error = %v", err)
	}
	if ds.FeatureCount() != 1 {
		t.Fatalf("FeatureCount = %d, want 1", ds.FeatureCount())
	}
	if ds.Proj4() == "" {
		t.Fatal("the .prj spatial reference should be carried on the dataset")
	}
	if name, _ := ds.Features()[0].Attribute("name"); name != "mill" {
		t.Errorf("name = %v, want mill", name)
	}

	// The sidecar reference is enough to reproject after the fact.
	utm, err := ds.Reproject("+proj=utm +zone=18 +datum=WGS84 +units=m +no_defs")
	if err != nil {
		t.Fatalf("Reproject() error = %v", err)
	}
	if b := utm.Bounds(); b.MinX < 100000 || b.MinY < 1000000 {
		t.Errorf("reprojected bounds %+v still look like degrees", b)
	}
}

// TestReadUnsupportedFormat tests extension dispatch
func TestReadUnsupportedFormat(t *testing.T) {
	reader := NewReader()

	if _, err := reader.Read("ponds.gpkg"); err == nil {
		t.Error("unsupported extension should fail")
	}
}

// TestReadFromZip tests the zip:// URL path
func TestReadFromZip(t *testing.T) {
	data, err := os.ReadFile("testdata/ponds.geojson")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	zipPath := filepath.Join(t.TempDir(), "ponds.zip")
	zf, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(zf)
	w, err := zw.Create("inventory/ponds.geojson")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	zf.Close()

	reader := NewReader()
	zipURL := "zip://" + zipPath + "!inventory/ponds.geojson"

	ds, err := reader.Read(zipURL)
	if err != nil {
		t.Fatalf("Read(zip) error = %v", err)
	}
	if ds.FeatureCount() != 3 {
		t.Errorf("FeatureCount = %d, want 3", ds.FeatureCount())
	}
	if ds.Path() != zipURL {
		t.Errorf("Path = %q, want the zip URL", ds.Path())
	}
}

// TestReadFromZipErrors tests malformed zip URLs
func TestReadFromZipErrors(t *testing.T) {
	reader := NewReader()

	if _, err := reader.Read("zip:///no/separator.zip"); err == nil {
		t.Error("zip URL without entry separator should fail")
	}
	if _, err := reader.Read("zip:///nonexistent.zip!a.geojson"); err == nil {
		t.Error("missing archive should fail")
	}
}
