package pondconn

import "fmt"

// DatasetLoader provides lazy loading of vector files with caching.
//
// The loader combines a spatial index (for fast file discovery) with an LRU
// cache (for keeping frequently-accessed datasets in memory). Datasets are
// loaded on demand when bounds queries request them, and evicted from cache
// when memory limits are exceeded.
//
// Example:
//
//	idx, err := pondconn.BuildIndexFromDir("/data/nwi", reader, pondconn.DefaultLoadOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	loader := pondconn.NewDatasetLoader(idx, pondconn.LoaderOptions{
//	    CacheSize: 256 * 1024 * 1024, // 256MB in-memory cache
//	})
//
//	region := pondconn.Bounds{MinX: 500000, MinY: 5200000, MaxX: 600000, MaxY: 5300000}
//	datasets, err := loader.GetDatasetsForBounds(region)
type DatasetLoader struct {
	index  *DatasetIndex
	cache  *DatasetCache
	reader Reader
	opts   ReadOptions
	hits   int
	misses int
}

// LoaderOptions configures dataset loader behavior.
type LoaderOptions struct {
	// CacheSize sets maximum cache memory in bytes.
	// Default: 256MB
	CacheSize int64

	// ReadOptions controls how cache misses are decoded from disk.
	ReadOptions ReadOptions
}

// DefaultLoaderOptions returns loader options with defaults.
func DefaultLoaderOptions() LoaderOptions {
	return LoaderOptions{
		CacheSize:   256 * 1024 * 1024,
		ReadOptions: DefaultReadOptions(),
	}
}

// NewDatasetLoader creates a lazy-loading dataset loader over an index.
func NewDatasetLoader(index *DatasetIndex, opts LoaderOptions) *DatasetLoader {
	if opts.CacheSize == 0 {
		opts.CacheSize = DefaultLoaderOptions().CacheSize
	}
	return &DatasetLoader{
		index:  index,
		cache:  NewDatasetCache(opts.CacheSize),
		reader: NewReader(),
		opts:   opts.ReadOptions,
	}
}

// GetDatasetsForBounds returns datasets whose coverage intersects the given
// bounds.
//
// Files are discovered via the spatial index, then loaded from cache or disk.
// Files that fail to load are skipped.
func (l *DatasetLoader) GetDatasetsForBounds(bounds Bounds) ([]*Dataset, error) {
	entries := l.index.Query(bounds)

	datasets := make([]*Dataset, 0, len(entries))
	for _, entry := range entries {
		ds, err := l.loadDataset(entry)
		if err != nil {
			continue
		}
		datasets = append(datasets, ds)
	}

	return datasets, nil
}

// GetDataset loads a specific dataset by name.
//
// The dataset is served from cache if available, otherwise decoded from disk
// and added to cache.
func (l *DatasetLoader) GetDataset(name string) (*Dataset, error) {
	for _, entry := range l.index.All() {
		if entry.Name == name {
			return l.loadDataset(entry)
		}
	}
	return nil, fmt.Errorf("dataset not found in index: %s", name)
}

// loadDataset loads one entry, using cache if available.
func (l *DatasetLoader) loadDataset(entry DatasetEntry) (*Dataset, error) {
	loaded := false
	ds, err := l.cache.Get(entry.Name, func() (*Dataset, error) {
		loaded = true
		if entry.Path == "" {
			return nil, fmt.Errorf("no source path recorded for dataset: %s", entry.Name)
		}
		return l.reader.ReadWithOptions(entry.Path, l.opts)
	})
	if err != nil {
		return nil, err
	}

	if loaded {
		l.misses++
	} else {
		l.hits++
	}
	return ds, nil
}

// Index returns the underlying spatial index.
func (l *DatasetLoader) Index() *DatasetIndex {
	return l.index
}

// Cache returns the underlying dataset cache.
//
// This allows inspecting cache statistics and manually managing cached
// datasets.
func (l *DatasetLoader) Cache() *DatasetCache {
	return l.cache
}

// CacheHitRate returns the cache hit rate (0.0 to 1.0).
func (l *DatasetLoader) CacheHitRate() float64 {
	total := l.hits + l.misses
	if total == 0 {
		return 0
	}
	return float64(l.hits) / float64(total)
}

// Stats returns loader statistics.
func (l *DatasetLoader) Stats() LoaderStats {
	cacheStats := l.cache.Stats()
	return LoaderStats{
		IndexedDatasets: l.index.Count(),
		CachedDatasets:  cacheStats.DatasetCount,
		CacheHits:       l.hits,
		CacheMisses:     l.misses,
		CacheMemory:     cacheStats.UsedMemory,
		MaxMemory:       cacheStats.MaxMemory,
	}
}

// LoaderStats holds loader performance metrics.
type LoaderStats struct {
	IndexedDatasets int   // Total files in index
	CachedDatasets  int   // Datasets currently in cache
	CacheHits       int   // Number of cache hits
	CacheMisses     int   // Number of cache misses
	CacheMemory     int64 // Current cache memory usage
	MaxMemory       int64 // Maximum cache memory limit
}
