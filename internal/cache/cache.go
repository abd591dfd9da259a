// Package cache holds the per-run cache of loaded configuration records.
package cache

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/opmodel/aliasresolve/internal/alias"
)

// LoadFunc loads the record for a configuration path.
type LoadFunc func(path string) (*alias.Record, error)

// Cache maps configuration paths to their loaded records. Failed loads are
// stored too and returned unchanged on every later lookup. Entries are never
// evicted; a Cache lives as long as one build run.
type Cache struct {
	mu      sync.RWMutex
	records map[string]*alias.Record
	group   singleflight.Group
	loads   atomic.Int64
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{records: make(map[string]*alias.Record)}
}

// GetOrCreate returns the record stored for path, invoking load at most once
// per path. Concurrent misses for the same path share one load.
//
// When the stored record is a failure, its error is returned alongside it.
func (c *Cache) GetOrCreate(path string, load LoadFunc) (*alias.Record, error) {
	if rec, ok := c.get(path); ok {
		return rec, rec.Err
	}

	v, _, _ := c.group.Do(path, func() (any, error) {
		// A concurrent caller may have published while we waited on Do.
		if rec, ok := c.get(path); ok {
			return rec, nil
		}

		c.loads.Add(1)
		rec, err := load(path)
		switch {
		case err != nil:
			rec = &alias.Record{SourcePath: path, Err: err}
		case rec == nil:
			rec = &alias.Record{SourcePath: path, Aliases: alias.Table{}}
		}

		c.mu.Lock()
		c.records[path] = rec
		c.mu.Unlock()
		return rec, nil
	})

	rec := v.(*alias.Record)
	return rec, rec.Err
}

func (c *Cache) get(path string) (*alias.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.records[path]
	return rec, ok
}

// Len returns the number of stored records.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Failed returns how many stored records are sticky failures.
func (c *Cache) Failed() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, rec := range c.records {
		if rec.Failed() {
			n++
		}
	}
	return n
}

// Loads returns how many times a LoadFunc has been invoked.
func (c *Cache) Loads() int64 {
	return c.loads.Load()
}
