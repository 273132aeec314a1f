package compile

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/stamp-dev/stamp/pkg/logging"
)

// DefaultTTL is used when a cache is constructed without an explicit TTL.
const DefaultTTL = 5 * time.Minute

// cacheEntry is immutable once created. An expired entry is discarded and
// replaced, never mutated in place.
type cacheEntry struct {
	renderer  *Compiled
	createdAt time.Time
}

// Stats is a snapshot of cache effectiveness. Hits and misses are lifetime
// counters; Clear does not reset them.
type Stats struct {
	Size    int
	Hits    uint64
	Misses  uint64
	HitRate float64
}

// Cache memoizes compiled renderers keyed by template-body hash, with
// TTL-based lazy expiry. There is no background sweeper: expiry is checked
// on lookup, and Sweep exists for callers that want proactive cleanup.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	hits    uint64
	misses  uint64
}

// NewCache creates a cache whose entries live for ttl. A non-positive ttl
// falls back to DefaultTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// HashTemplate derives the cache key identifying a template body.
func HashTemplate(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}

// GetOrCreate returns the live renderer cached under hash, or compiles the
// body, stores the result and returns it. An expired entry counts as absent.
func (c *Cache) GetOrCreate(hash, body string) *Compiled {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if entry, ok := c.entries[hash]; ok && now.Sub(entry.createdAt) < c.ttl {
		c.hits++
		return entry.renderer
	}

	renderer := Compile(body)
	c.entries[hash] = cacheEntry{renderer: renderer, createdAt: now}
	c.misses++

	logger := logging.GetLogger("template.compile")
	logger.Debug().Str("hash", hash).Int("size", len(c.entries)).Msg("compiled template")

	return renderer
}

// Stats reports the current size and lifetime hit/miss counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := Stats{
		Size:   len(c.entries),
		Hits:   c.hits,
		Misses: c.misses,
	}
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}
	return stats
}

// Clear removes all entries. Hit and miss counters are lifetime counters
// and survive a Clear.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}

// Sweep removes every expired entry and reports how many were dropped.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for hash, entry := range c.entries {
		if now.Sub(entry.createdAt) >= c.ttl {
			delete(c.entries, hash)
			removed++
		}
	}
	return removed
}
