// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package memo provides argument-tuple memoization for pure query
// functions.
//
// # Description
//
// A Cache stores the result of a computation keyed by the exact, already
// resolved argument tuple. The first successful computation for a key is
// stored for the life of the process (or until capacity eviction) and every
// later call with the same key returns the stored value without recomputing.
// Failed computations are never stored, so a caller may retry a failure but
// never re-runs a legitimate empty result.
//
// Concurrent callers of the same key are collapsed into a single
// computation via singleflight.
//
// # Thread Safety
//
// All methods are safe for concurrent use.
package memo

import (
	"container/list"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes values of type V by string key.
type Cache[V any] struct {
	mu       sync.RWMutex
	entries  map[string]V
	order    *list.List // insertion order, for capacity eviction
	keys     map[string]*list.Element
	capacity int // 0 means unbounded
	group    singleflight.Group
}

// Option configures a Cache.
type Option func(*config)

type config struct {
	capacity int
}

// WithCapacity bounds the cache to n entries; the oldest inserted entry is
// evicted when a new key is stored at capacity. n <= 0 keeps the cache
// unbounded.
func WithCapacity(n int) Option {
	return func(c *config) { c.capacity = n }
}

// New creates an empty cache. With no options the cache is unbounded,
// which is the intended mode for a read-mostly catalog whose distinct
// query tuples are few.
func New[V any](opts ...Option) *Cache[V] {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Cache[V]{
		entries:  make(map[string]V),
		order:    list.New(),
		keys:     make(map[string]*list.Element),
		capacity: cfg.capacity,
	}
}

// Do returns the stored value for key, computing and storing it on first
// use. Concurrent calls for the same key run compute at most once; a
// compute error is returned to every waiter and nothing is stored.
func (c *Cache[V]) Do(key string, compute func() (V, error)) (V, error) {
	c.mu.RLock()
	if v, ok := c.entries[key]; ok {
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Re-check under the group: a racing caller may have stored the
		// value between our read and the flight starting.
		c.mu.RLock()
		if v, ok := c.entries[key]; ok {
			c.mu.RUnlock()
			return v, nil
		}
		c.mu.RUnlock()

		v, err := compute()
		if err != nil {
			return v, err
		}
		c.store(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return v.(V), nil
}

// Get returns the stored value for key without computing.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Len reports the number of stored entries.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Purge drops every stored entry.
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]V)
	c.order.Init()
	c.keys = make(map[string]*list.Element)
}

func (c *Cache[V]) store(key string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return
	}
	if c.capacity > 0 && len(c.entries) >= c.capacity {
		if oldest := c.order.Front(); oldest != nil {
			oldKey := oldest.Value.(string)
			c.order.Remove(oldest)
			delete(c.keys, oldKey)
			delete(c.entries, oldKey)
		}
	}
	c.entries[key] = v
	c.keys[key] = c.order.PushBack(key)
}

// Key builds the canonical cache key for an argument tuple. Arguments must
// already have their defaults resolved so that logically equal calls
// produce bit-identical keys.
func Key(parts ...any) string {
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteByte(0x1f) // unit separator keeps adjacent fields from merging
		}
		fmt.Fprintf(&b, "%v", p)
	}
	return b.String()
}
