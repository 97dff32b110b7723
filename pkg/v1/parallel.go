package pondconn

import (
	"fmt"
	"io"
	"runtime"
	"sync"
)

// LoadOptions controls bulk loading behavior and error handling.
type LoadOptions struct {
	// Parallel enables concurrent dataset loading.
	// When true, files are loaded using multiple worker goroutines.
	Parallel bool

	// Workers specifies the number of parallel loader goroutines.
	// If 0, defaults to runtime.NumCPU().
	// Only used when Parallel is true.
	Workers int

	// SkipErrors causes loading to continue even when individual files fail.
	// Failed files are skipped and errors are collected.
	// When false, the first error stops loading and is returned immediately.
	SkipErrors bool

	// Progress is an optional callback for tracking loading progress.
	// Called after each file is loaded (successfully or with error).
	Progress func(loaded, total int)

	// ErrorLog is an optional writer for detailed error reporting.
	// Each loading error is written here with the file path and error details.
	ErrorLog io.Writer

	// ReadOptions is applied to every file.
	ReadOptions ReadOptions
}

// DefaultLoadOptions returns load options with sensible defaults.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Parallel:    true,
		Workers:     runtime.NumCPU(),
		SkipErrors:  true,
		ReadOptions: DefaultReadOptions(),
	}
}

// ReadDatasetsParallel loads multiple vector files with a worker pool.
//
// Regional waterbody inventories arrive as many per-county files; loading
// them concurrently cuts total load time roughly by the worker count.
//
// The function respects LoadOptions:
//   - Parallel: enable/disable parallel loading
//   - Workers: number of concurrent loaders (defaults to NumCPU)
//   - SkipErrors: continue loading despite individual file failures
//   - Progress: optional callback for progress updates
//   - ErrorLog: optional writer for error details
//
// Example:
//
//	reader := pondconn.NewReader()
//	paths := []string{"county_a.shp", "county_b.shp", "county_c.geojson"}
//
//	datasets, errs := pondconn.ReadDatasetsParallel(paths, reader, pondconn.LoadOptions{
//	    Parallel:   true,
//	    Workers:    8,
//	    SkipErrors: true,
//	    Progress: func(loaded, total int) {
//	        fmt.Printf("\rLoading: %d/%d", loaded, total)
//	    },
//	    ErrorLog: os.Stderr,
//	})
func ReadDatasetsParallel(paths []string, reader Reader, opts LoadOptions) ([]*Dataset, []error) {
	if len(paths) == 0 {
		return nil, nil
	}

	if !opts.Parallel {
		return readDatasetsSerial(paths, reader, opts)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	type loadResult struct {
		index   int
		dataset *Dataset
		err     error
	}

	jobs := make(chan int, len(paths))
	results := make(chan loadResult, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				ds, err := reader.ReadWithOptions(paths[index], opts.ReadOptions)
				results <- loadResult{
					index:   index,
					dataset: ds,
					err:     err,
				}
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	datasetMap := make(map[int]*Dataset)
	var errs []error
	loaded := 0

	for result := range results {
		loaded++

		if opts.Progress != nil {
			opts.Progress(loaded, len(paths))
		}

		if result.err != nil {
			err := fmt.Errorf("%s: %w", paths[result.index], result.err)

			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error loading dataset: %v\n", err)
			}

			if opts.SkipErrors {
				errs = append(errs, err)
				continue
			}
			return nil, []error{err}
		}

		datasetMap[result.index] = result.dataset
	}

	// Preserve input order.
	datasets := make([]*Dataset, 0, len(datasetMap))
	for i := 0; i < len(paths); i++ {
		if ds, ok := datasetMap[i]; ok {
			datasets = append(datasets, ds)
		}
	}

	return datasets, errs
}

// readDatasetsSerial loads files one at a time (fallback when Parallel=false).
func readDatasetsSerial(paths []string, reader Reader, opts LoadOptions) ([]*Dataset, []error) {
	datasets := make([]*Dataset, 0, len(paths))
	var errs []error

	for i, path := range paths {
		if opts.Progress != nil {
			opts.Progress(i, len(paths))
		}

		ds, err := reader.ReadWithOptions(path, opts.ReadOptions)
		if err != nil {
			err := fmt.Errorf("%s: %w", path, err)

			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error loading dataset: %v\n", err)
			}

			if opts.SkipErrors {
				errs = append(errs, err)
				continue
			}
			return nil, []error{err}
		}

		datasets = append(datasets, ds)
	}

	if opts.Progress != nil {
		opts.Progress(len(paths), len(paths))
	}

	return datasets, errs
}
