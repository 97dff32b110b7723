package pondconn

import (
	"container/list"
	"fmt"
	"sync"
	"time"
)

// DatasetCache manages loaded datasets with an LRU eviction policy.
//
// The cache stores fully-decoded datasets in memory and evicts
// least-recently-used ones when the memory limit is exceeded. This lets a
// loader walk a large inventory of per-county files while keeping the
// frequently queried ones in memory.
//
// Memory estimation is approximate, based on feature and attribute counts.
//
// Example:
//
//	cache := pondconn.NewDatasetCache(512 * 1024 * 1024) // 512MB limit
//
//	ds, err := cache.Get("king_county", func() (*Dataset, error) {
//	    return reader.Read("/data/king_county.shp")
//	})
type DatasetCache struct {
	maxMemory  int64
	usedMemory int64
	datasets   map[string]*cacheEntry
	lru        *list.List // most recent at front
	mu         sync.RWMutex
}

// cacheEntry tracks a cached dataset and its metadata
type cacheEntry struct {
	name         string
	dataset      *Dataset
	memorySize   int64
	element      *list.Element // position in LRU list
	lastAccessed time.Time
	accessCount  int
}

// NewDatasetCache creates a new cache with the specified memory limit in bytes.
//
// The limit is enforced approximately: usage may temporarily exceed it during
// loading. Set to 0 for an unlimited cache.
func NewDatasetCache(maxMemoryBytes int64) *DatasetCache {
	return &DatasetCache{
		maxMemory: maxMemoryBytes,
		datasets:  make(map[string]*cacheEntry),
		lru:       list.New(),
	}
}

// Get retrieves a dataset from cache or loads it using the provided loader
// function.
//
// If the dataset is cached, it's returned immediately and moved to the front
// of the LRU list. If not, the loader function is called and the result is
// cached for future access.
func (c *DatasetCache) Get(name string, loader func() (*Dataset, error)) (*Dataset, error) {
	// Fast path: check cache with read lock
	c.mu.RLock()
	if entry, ok := c.datasets[name]; ok {
		c.mu.RUnlock()

		c.mu.Lock()
		entry.lastAccessed = time.Now()
		entry.accessCount++
		c.lru.MoveToFront(entry.element)
		c.mu.Unlock()

		return entry.dataset, nil
	}
	c.mu.RUnlock()

	ds, err := loader()
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	if err := c.Add(name, ds); err != nil {
		// Cache add failed; return the dataset uncached.
		return ds, nil
	}

	return ds, nil
}

// Add adds a dataset to the cache.
//
// If the cache is at capacity, least-recently-used datasets are evicted to
// make room. Returns an error if the dataset is larger than the whole cache.
func (c *DatasetCache) Add(name string, ds *Dataset) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.datasets[name]; ok {
		entry.dataset = ds
		entry.lastAccessed = time.Now()
		entry.accessCount++
		c.lru.MoveToFront(entry.element)
		return nil
	}

	memSize := estimateDatasetMemory(ds)

	if c.maxMemory > 0 && memSize > c.maxMemory {
		return fmt.Errorf("dataset too large for cache (%d bytes > %d bytes max)",
			memSize, c.maxMemory)
	}

	if c.maxMemory > 0 {
		for c.usedMemory+memSize > c.maxMemory && c.lru.Len() > 0 {
			c.evictLRU()
		}
	}

	entry := &cacheEntry{
		name:         name,
		dataset:      ds,
		memorySize:   memSize,
		lastAccessed: time.Now(),
		accessCount:  1,
	}
	entry.element = c.lru.PushFront(entry)
	c.datasets[name] = entry
	c.usedMemory += memSize

	return nil
}

// evictLRU removes the least recently used dataset from cache.
// Must be called with c.mu locked.
func (c *DatasetCache) evictLRU() {
	elem := c.lru.Back()
	if elem == nil {
		return
	}

	entry := elem.Value.(*cacheEntry)
	c.lru.Remove(elem)
	delete(c.datasets, entry.name)
	c.usedMemory -= entry.memorySize
}

// Remove explicitly removes a dataset from the cache.
func (c *DatasetCache) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.datasets[name]; ok {
		c.lru.Remove(entry.element)
		delete(c.datasets, name)
		c.usedMemory -= entry.memorySize
	}
}

// Clear removes all datasets from the cache.
func (c *DatasetCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.datasets = make(map[string]*cacheEntry)
	c.lru.Init()
	c.usedMemory = 0
}

// Stats returns cache statistics.
func (c *DatasetCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	totalAccess := 0
	for _, entry := range c.datasets {
		totalAccess += entry.accessCount
	}

	return CacheStats{
		DatasetCount: len(c.datasets),
		UsedMemory:   c.usedMemory,
		MaxMemory:    c.maxMemory,
		TotalAccess:  totalAccess,
	}
}

// CacheStats holds cache performance metrics.
type CacheStats struct {
	DatasetCount int   // Number of datasets currently cached
	UsedMemory   int64 // Estimated memory usage in bytes
	MaxMemory    int64 // Maximum memory limit in bytes
	TotalAccess  int   // Total accesses across all cached datasets
}

// estimateDatasetMemory estimates memory usage for a dataset.
//
// This is approximate and based on feature count and attribute counts;
// actual usage varies with geometry complexity and string data.
func estimateDatasetMemory(ds *Dataset) int64 {
	if ds == nil {
		return 0
	}

	// Base overhead
	size := int64(1024)

	for i := range ds.Features() {
		f := &ds.Features()[i]
		size += 512
		size += int64(len(f.Attributes())) * 64
	}

	return size
}
