package pondconn

import (
	"errors"
	"fmt"
	"testing"
)

func cacheFixtureDataset(name string, rows int) *Dataset {
	features := make([]Feature, rows)
	for i := range features {
		features[i] = Feature{
			id:         int64(i),
			geometry:   testSquare(float64(i*20), 0, 10),
			attributes: map[string]interface{}{"name": name},
		}
	}
	return assemble(name, "", features)
}

// TestCacheGetLoadsOnMiss tests the load-through behavior
func TestCacheGetLoadsOnMiss(t *testing.T) {
	cache := NewDatasetCache(1024 * 1024)

	loads := 0
	loader := func() (*Dataset, error) {
		loads++
		return cacheFixtureDataset("king", 5), nil
	}

	ds1, err := cache.Get("king", loader)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	ds2, err := cache.Get("king", loader)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if loads != 1 {
		t.Errorf("loader called %d times, want 1", loads)
	}
	if ds1 != ds2 {
		t.Error("second Get should return the cached dataset")
	}
}

// TestCacheGetLoaderError tests error propagation from the loader
func TestCacheGetLoaderError(t *testing.T) {
	cache := NewDatasetCache(1024 * 1024)

	wantErr := errors.New("disk gone")
	_, err := cache.Get("missing", func() (*Dataset, error) {
		return nil, wantErr
	})
	if err == nil || !errors.Is(err, wantErr) {
		t.Errorf("Get() error = %v, want wrapped %v", err, wantErr)
	}

	if cache.Stats().DatasetCount != 0 {
		t.Error("failed load should not be cached")
	}
}

// TestCacheEviction tests LRU eviction under memory pressure
func TestCacheEviction(t *testing.T) {
	// Each 5-row dataset estimates to 1024 + 5*(512+64) = 3904 bytes, so a
	// 9000-byte cache holds two datasets.
	cache := NewDatasetCache(9000)

	for i := 0; i < 3; i++ {
		name := fmt.Sprintf("county%d", i)
		if err := cache.Add(name, cacheFixtureDataset(name, 5)); err != nil {
			t.Fatalf("Add(%s) error = %v", name, err)
		}
	}

	stats := cache.Stats()
	if stats.DatasetCount != 2 {
		t.Errorf("DatasetCount = %d, want 2 after eviction", stats.DatasetCount)
	}
	if stats.UsedMemory > stats.MaxMemory {
		t.Errorf("UsedMemory %d exceeds MaxMemory %d", stats.UsedMemory, stats.MaxMemory)
	}

	// county0 was least recently used; it should be gone.
	loads := 0
	if _, err := cache.Get("county0", func() (*Dataset, error) {
		loads++
		return cacheFixtureDataset("county0", 5), nil
	}); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if loads != 1 {
		t.Error("evicted dataset should be reloaded")
	}
}

// TestCacheRejectsOversizedDataset tests the too-large error path
func TestCacheRejectsOversizedDataset(t *testing.T) {
	cache := NewDatasetCache(100)

	err := cache.Add("huge", cacheFixtureDataset("huge", 50))
	if err == nil {
		t.Fatal("Add should fail for a dataset larger than the whole cache")
	}
}

// TestCacheRemoveAndClear tests explicit removal
func TestCacheRemoveAndClear(t *testing.T) {
	cache := NewDatasetCache(0) // unlimited

	cache.Add("a", cacheFixtureDataset("a", 1))
	cache.Add("b", cacheFixtureDataset("b", 1))

	cache.Remove("a")
	if cache.Stats().DatasetCount != 1 {
		t.Errorf("DatasetCount = %d, want 1 after Remove", cache.Stats().DatasetCount)
	}

	cache.Clear()
	stats := cache.Stats()
	if stats.DatasetCount != 0 || stats.UsedMemory != 0 {
		t.Errorf("Clear left %d datasets, %d bytes", stats.DatasetCount, stats.UsedMemory)
	}
}
