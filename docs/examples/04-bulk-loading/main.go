package main

import (
	"fmt"
	"log"
	"os"

	pondconn "github.com/tidemill/pondconn/pkg/v1"
)

func main() {
	reader := pondconn.NewReader()

	// Index every vector file under the inventory directory. Each file is
	// decoded once, in parallel, to learn its extent.
	opts := pondconn.DefaultLoadOptions()
	opts.Progress = func(loaded, total int) {
		fmt.Printf("\rIndexing: %d/%d", loaded, total)
	}
	opts.ErrorLog = os.Stderr

	idx, err := pondconn.BuildIndexFromDir("/data/nwi", reader, opts)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\nIndexed %d files covering %+v\n", idx.Count(), idx.Bounds())

	// Lazy-load only the files intersecting the study area.
	loader := pondconn.NewDatasetLoader(idx, pondconn.LoaderOptions{
		CacheSize: 256 * 1024 * 1024, // 256MB in-memory cache
	})

	study := pondconn.Bounds{
		MinX: 500000, MinY: 5200000,
		MaxX: 600000, MaxY: 5300000,
	}
	datasets, err := loader.GetDatasetsForBounds(study)
	if err != nil {
		log.Fatal(err)
	}

	total := 0
	for _, ds := range datasets {
		total += ds.FeatureCount()
	}
	fmt.Printf("Loaded %d datasets, %d ponds\n", len(datasets), total)

	// Re-query to show the cache at work.
	if _, err := loader.GetDatasetsForBounds(study); err != nil {
		log.Fatal(err)
	}
	stats := loader.Stats()
	fmt.Printf("Cache: %d/%d hit rate %.0f%%, %d bytes\n",
		stats.CacheHits, stats.CacheHits+stats.CacheMisses,
		loader.CacheHitRate()*100, stats.CacheMemory)
}
