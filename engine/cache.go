package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/diffscope"
)

// diffCache is a bounded, content-addressed cache of computed diffs.
//
// Lookups share a read lock and record recency through an atomic timestamp,
// so the hot path never contends on the write lock. Entries are immutable
// once stored; an update replaces the entry wholesale under the write lock.
// Eviction scans for the stalest timestamp, which is O(capacity) but
// capacity is small by configuration.
type diffCache struct {
	capacity int
	ttl      time.Duration

	mu      sync.RWMutex
	entries map[string]*cacheEntry

	hits        atomic.Uint64
	misses      atomic.Uint64
	evictions   atomic.Uint64
	expirations atomic.Uint64
}

type cacheEntry struct {
	diff     *diffscope.FileDiff
	storedAt time.Time
	lastUsed atomic.Int64 // unix nanoseconds
}

func newDiffCache(capacity int, ttl time.Duration) *diffCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &diffCache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*cacheEntry, capacity),
	}
}

// get returns the cached diff for key. An entry past its TTL counts as a
// miss; removal is deferred to the next eviction scan.
func (c *diffCache) get(key string) (*diffscope.FileDiff, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || (c.ttl > 0 && time.Since(e.storedAt) > c.ttl) {
		c.misses.Add(1)
		return nil, false
	}
	e.lastUsed.Store(time.Now().UnixNano())
	c.hits.Add(1)
	return e.diff, true
}

// peek is get without the hit/miss accounting, for the re-check after
// winning the singleflight slot: the outer lookup already counted.
func (c *diffCache) peek(key string) (*diffscope.FileDiff, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || (c.ttl > 0 && time.Since(e.storedAt) > c.ttl) {
		return nil, false
	}
	e.lastUsed.Store(time.Now().UnixNano())
	return e.diff, true
}

// put stores a computed diff, evicting expired and stale entries as needed.
func (c *diffCache) put(key string, diff *diffscope.FileDiff) {
	e := &cacheEntry{diff: diff, storedAt: time.Now()}
	e.lastUsed.Store(e.storedAt.UnixNano())

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictLocked()
	}
	c.entries[key] = e
}

// evictLocked drops every expired entry, then the least recently used entry
// if the cache is still full. Callers must hold the write lock.
func (c *diffCache) evictLocked() {
	if c.ttl > 0 {
		now := time.Now()
		for k, e := range c.entries {
			if now.Sub(e.storedAt) > c.ttl {
				delete(c.entries, k)
				c.expirations.Add(1)
			}
		}
	}
	if len(c.entries) < c.capacity {
		return
	}

	var oldestKey string
	oldest := int64(math.MaxInt64)
	for k, e := range c.entries {
		if lu := e.lastUsed.Load(); lu < oldest {
			oldest, oldestKey = lu, k
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
		c.evictions.Add(1)
	}
}

// metrics returns a point-in-time snapshot of the cache counters.
func (c *diffCache) metrics() CacheMetrics {
	c.mu.RLock()
	size := len(c.entries)
	c.mu.RUnlock()

	return CacheMetrics{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Evictions:   c.evictions.Load(),
		Expirations: c.expirations.Load(),
		Size:        size,
		Capacity:    c.capacity,
	}
}

// CacheMetrics is a snapshot of the result cache counters.
type CacheMetrics struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64 // Capacity evictions
	Expirations uint64 // TTL removals
	Size        int
	Capacity    int
}

// HitRate returns the fraction of lookups served from the cache.
func (m CacheMetrics) HitRate() float64 {
	total := m.Hits + m.Misses
	if total == 0 {
		return 0
	}
	return float64(m.Hits) / float64(total)
}

// Utilization returns the fraction of capacity in use.
func (m CacheMetrics) Utilization() float64 {
	if m.Capacity == 0 {
		return 0
	}
	return float64(m.Size) / float64(m.Capacity)
}

// cacheKey derives the content address for a computation. Every input that
// changes the output participates: both buffers, the path, and the knobs
// that shape hunks and highlights. Segments are length-prefixed so
// boundaries cannot be confused.
func cacheKey(old, new, path string, cfg Config) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d:%d:%t:%t:%d:%d:%d:",
		cfg.Algorithm, cfg.ContextLines, cfg.WordLevelDiff, cfg.IgnoreWhitespace,
		len(old), len(new), len(path))
	io.WriteString(h, old)
	io.WriteString(h, new)
	io.WriteString(h, path)
	return hex.EncodeToString(h.Sum(nil))
}
