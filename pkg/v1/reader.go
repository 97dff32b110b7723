package pondconn

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidemill/pondconn/internal/vector"
)

// Reader loads geospatial vector files into Datasets.
//
// Create a reader with NewReader and use Read or ReadWithOptions. The format
// is chosen by file extension: .shp for shapefiles, .geojson or .json for
// GeoJSON feature collections.
type Reader interface {
	// Read loads a vector file and returns the decoded dataset.
	Read(filename string) (*Dataset, error)

	// ReadWithOptions loads a vector file with custom options.
	//
	// Use ReadOptions to control validation, attribute filtering, and
	// reprojection.
	ReadWithOptions(filename string, opts ReadOptions) (*Dataset, error)
}

// NewReader creates a new vector reader with default settings.
//
// Example:
//
//	reader := pondconn.NewReader()
//	ponds, err := reader.Read("nwi_ponds.shp")
func NewReader() Reader {
	return &readerImpl{}
}

type readerImpl struct{}

func (r *readerImpl) Read(filename string) (*Dataset, error) {
	return r.ReadWithOptions(filename, DefaultReadOptions())
}

func (r *readerImpl) ReadWithOptions(filename string, opts ReadOptions) (*Dataset, error) {
	// zip:// URLs stream the source out of a zip archive first.
	if strings.HasPrefix(filename, "zip://") {
		return r.readFromZip(filename, opts)
	}

	internalOpts := vector.Options{
		SkipInvalid:      opts.SkipInvalid,
		ValidateGeometry: opts.ValidateGeometry,
		AttributeFilter:  opts.AttributeFilter,
		SourceProj4:      opts.SourceProj4,
		TargetProj4:      opts.TargetProj4,
	}

	var (
		c   *vector.Collection
		err error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".shp":
		c, err = vector.ReadShapefile(filename, internalOpts)
	case ".geojson", ".json":
		c, err = vector.ReadGeoJSON(filename, internalOpts)
	default:
		return nil, &vector.ErrUnsupportedFormat{Path: filename}
	}
	if err != nil {
		return nil, err
	}
	ds := convertCollection(c)
	ds.path = filename
	return ds, nil
}

// readFromZip loads a vector file directly from a zip archive without keeping
// extracted files around. Format: zip:///path/to/data.zip!path/within/zip.shp
//
// Shapefiles are a sidecar family, so the matching .dbf, .shx, and .prj
// entries are extracted next to the .shp.
func (r *readerImpl) readFromZip(zipURL string, opts ReadOptions) (*Dataset, error) {
	parts := strings.SplitN(strings.TrimPrefix(zipURL, "zip://"), "!", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid zip URL format: %s (expected zip://path!entry)", zipURL)
	}
	zipPath := parts[0]
	entryPath := parts[1]

	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer zr.Close()

	tmpDir, err := os.MkdirTemp("", "pondconn-zip-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	wanted := []string{entryPath}
	if strings.EqualFold(filepath.Ext(entryPath), ".shp") {
		stem := strings.TrimSuffix(entryPath, filepath.Ext(entryPath))
		for _, ext := range []string{".dbf", ".shx", ".prj"} {
			wanted = append(wanted, stem+ext)
		}
	}

	var mainFile string
	for i, want := range wanted {
		extracted, err := extractZipEntry(zr, want, tmpDir)
		if err != nil {
			if i == 0 {
				// The primary entry must exist; sidecars are best effort.
				return nil, err
			}
			continue
		}
		if i == 0 {
			mainFile = extracted
		}
	}

	ds, err := r.ReadWithOptions(mainFile, opts)
	if err != nil {
		return nil, err
	}
	ds.path = zipURL
	return ds, nil
}

// extractZipEntry copies one archive entry into dir, preserving its base name.
func extractZipEntry(zr *zip.ReadCloser, entryPath, dir string) (string, error) {
	var entry *zip.File
	for _, f := range zr.File {
		if f.Name == entryPath {
			entry = f
			break
		}
	}
	if entry == nil {
		return "", fmt.Errorf("file not found in zip: %s", entryPath)
	}

	rc, err := entry.Open()
	if err != nil {
		return "", fmt.Errorf("open zip entry %s: %w", entryPath, err)
	}
	defer rc.Close()

	dst := filepath.Join(dir, filepath.Base(entryPath))
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return "", fmt.Errorf("extract %s: %w", entryPath, err)
	}
	return dst, nil
}
