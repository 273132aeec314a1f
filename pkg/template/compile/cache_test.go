package compile_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stamp-dev/stamp/pkg/template"
	"github.com/stamp-dev/stamp/pkg/template/compile"
)

func TestHashTemplate(t *testing.T) {
	h1 := compile.HashTemplate("Hello {{name}}")
	h2 := compile.HashTemplate("Hello {{name}}")
	h3 := compile.HashTemplate("Hello {{other}}")

	assert.Equal(t, h1, h2, "identical bodies must hash identically")
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64)
}

func TestCacheHit(t *testing.T) {
	cache := compile.NewCache(time.Minute)
	body := "Hello {{name}}!"
	hash := compile.HashTemplate(body)

	first := cache.GetOrCreate(hash, body)
	second := cache.GetOrCreate(hash, body)

	// The second lookup returns the very same renderer.
	assert.Same(t, first, second, "cache hit must return the identical renderer")

	stats := cache.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)
	assert.InDelta(t, 0.5, stats.HitRate, 1e-9)

	assert.Equal(t, "Hello World!", second.Render(template.Context{"name": "World"}))
}

func TestCacheExpiry(t *testing.T) {
	cache := compile.NewCache(50 * time.Millisecond)
	body := "{{x}}"
	hash := compile.HashTemplate(body)

	cache.GetOrCreate(hash, body)
	time.Sleep(100 * time.Millisecond)
	cache.GetOrCreate(hash, body)

	stats := cache.Stats()
	assert.Equal(t, uint64(0), stats.Hits, "expired entry must count as a miss")
	assert.Equal(t, uint64(2), stats.Misses)
	assert.Equal(t, 1, stats.Size, "expired entry is replaced, not duplicated")
}

func TestCacheClearKeepsCounters(t *testing.T) {
	cache := compile.NewCache(time.Minute)
	body := "{{x}}"
	hash := compile.HashTemplate(body)

	cache.GetOrCreate(hash, body)
	cache.GetOrCreate(hash, body)

	cache.Clear()

	stats := cache.Stats()
	assert.Equal(t, 0, stats.Size)
	assert.Equal(t, uint64(1), stats.Hits, "Clear must not reset lifetime counters")
	assert.Equal(t, uint64(1), stats.Misses)

	// After a clear the next lookup recompiles.
	cache.GetOrCreate(hash, body)
	assert.Equal(t, uint64(2), cache.Stats().Misses)
}

func TestCacheEmptyStats(t *testing.T) {
	cache := compile.NewCache(time.Minute)

	stats := cache.Stats()
	assert.Equal(t, 0, stats.Size)
	assert.Zero(t, stats.HitRate, "hit rate with no lookups is 0, not NaN")
}

func TestCacheSweep(t *testing.T) {
	cache := compile.NewCache(50 * time.Millisecond)

	cache.GetOrCreate(compile.HashTemplate("a"), "a")
	cache.GetOrCreate(compile.HashTemplate("b"), "b")
	time.Sleep(100 * time.Millisecond)
	cache.GetOrCreate(compile.HashTemplate("c"), "c")

	removed := cache.Sweep()
	assert.Equal(t, 2, removed)

	stats := cache.Stats()
	assert.Equal(t, 1, stats.Size)
}

func TestCacheDistinctBodies(t *testing.T) {
	cache := compile.NewCache(time.Minute)

	a := cache.GetOrCreate(compile.HashTemplate("A {{x}}"), "A {{x}}")
	b := cache.GetOrCreate(compile.HashTemplate("B {{x}}"), "B {{x}}")

	require.NotSame(t, a, b)

	ctx := template.Context{"x": "1"}
	assert.Equal(t, "A 1", a.Render(ctx))
	assert.Equal(t, "B 1", b.Render(ctx))
}
