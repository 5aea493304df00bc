// Package cache provides a generic, sharded LRU cache safe for concurrent use.
package cache

import (
	"sync"
	"sync/atomic"
)

// Configuration constants.
const (
	// ShardCount is the number of shards. It is a power of two so shard
	// selection is a mask.
	ShardCount = 16

	// DefaultCapacity is the default total number of entries.
	DefaultCapacity = 4096

	shardMask = ShardCount - 1
)

// Hasher computes the hash used to select a key's shard.
type Hasher[K any] func(K) uint64

// Option configures a ShardedCache.
type Option func(*options)

type options struct {
	capacity int
}

// WithCapacity sets the total number of entries kept across all shards.
// Each shard holds capacity/ShardCount entries, at least one.
// Values <= 0 select DefaultCapacity.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// ShardedCache is a thread-safe LRU cache split into ShardCount shards,
// each with its own lock and recency list.
//
// Values are stored as-is. Callers must not modify a value after caching it.
type ShardedCache[K comparable, V any] struct {
	shards   [ShardCount]shard[K, V]
	hasher   Hasher[K]
	perShard int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*node[K, V]
	lru     recency[K, V]
}

// New creates a cache that selects shards with hasher.
func New[K comparable, V any](hasher Hasher[K], opts ...Option) *ShardedCache[K, V] {
	o := options{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.capacity <= 0 {
		o.capacity = DefaultCapacity
	}

	c := &ShardedCache[K, V]{
		hasher:   hasher,
		perShard: max(o.capacity/ShardCount, 1),
	}
	for i := range c.shards {
		c.shards[i].entries = make(map[K]*node[K, V])
	}
	return c
}

func (c *ShardedCache[K, V]) shardFor(key K) *shard[K, V] {
	return &c.shards[c.hasher(key)&shardMask]
}

// Get returns the value cached under key and marks it most recently used.
func (c *ShardedCache[K, V]) Get(key K) (V, bool) {
	s := c.shardFor(key)

	s.mu.Lock()
	n, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	s.lru.moveToFront(n)
	value := n.value
	s.mu.Unlock()

	c.hits.Add(1)
	return value, true
}

// Set stores value under key, evicting the shard's least recently used
// entries when it is full.
func (c *ShardedCache[K, V]) Set(key K, value V) {
	s := c.shardFor(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if n, ok := s.entries[key]; ok {
		n.value = value
		s.lru.moveToFront(n)
		return
	}

	for s.lru.len >= c.perShard {
		oldest := s.lru.popBack()
		if oldest == nil {
			break
		}
		delete(s.entries, oldest.key)
		c.evictions.Add(1)
	}

	n := &node[K, V]{key: key, value: value}
	s.lru.pushFront(n)
	s.entries[key] = n
}

// Delete removes key. It reports whether the key was present.
func (c *ShardedCache[K, V]) Delete(key K) bool {
	s := c.shardFor(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.entries[key]
	if !ok {
		return false
	}
	s.lru.remove(n)
	delete(s.entries, key)
	return true
}

// Clear removes all entries. Statistics are kept.
func (c *ShardedCache[K, V]) Clear() {
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		clear(s.entries)
		s.lru.clear()
		s.mu.Unlock()
	}
}

// Len returns the number of entries across all shards.
func (c *ShardedCache[K, V]) Len() int {
	total := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

// Capacity returns the total number of entries the cache can hold.
func (c *ShardedCache[K, V]) Capacity() int {
	return c.perShard * ShardCount
}

// Stats returns a snapshot of the cache statistics.
func (c *ShardedCache[K, V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Len:       c.Len(),
		Capacity:  c.Capacity(),
		Hits:      hits,
		Misses:    misses,
		HitRate:   hitRate,
		Evictions: c.evictions.Load(),
	}
}

// ResetStats sets all counters to zero.
func (c *ShardedCache[K, V]) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

// Stats holds cache statistics.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	HitRate   float64
	Evictions uint64
}
