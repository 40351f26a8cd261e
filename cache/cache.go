package cache

import (
	"context"
	"errors"
	"log/slog"

	"github.com/IvanBrykalov/lrucache/internal/assert"
	"github.com/IvanBrykalov/lrucache/internal/singleflight"
	"github.com/IvanBrykalov/lrucache/policy"
)

var (
	// ErrNoLoader is returned by GetOrLoad when no Loader was configured in Options.
	ErrNoLoader = errors.New("cache: no Loader provided")
	// ErrClosed is returned by GetOrLoad after Close in release builds;
	// lrudebug builds panic on any use of a closed cache instead.
	ErrClosed = errors.New("cache: closed")
)

// LRU is a weighted least-recently-used cache.
// Safety for concurrent use depends on Options.Guard (safe by default).
// The zero value is not usable; construct with New.
type LRU[K comparable, V any] struct {
	guard policy.Guard
	core  *core[K, V]
	// closed is read and written only under guard.
	closed bool

	metrics Metrics
	log     *slog.Logger
	loader  func(ctx context.Context, k K) (V, error)

	// singleflight group for coalescing concurrent loads in GetOrLoad.
	sf singleflight.Group[K, V]
}

// New constructs an LRU with the provided Options.
// It panics if MaxWeight <= 0.
func New[K comparable, V any](opt Options[K, V]) *LRU[K, V] {
	if opt.MaxWeight <= 0 {
		panic("cache: MaxWeight must be > 0")
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Guard == nil {
		opt.Guard = policy.NewExclusive()
	}
	if opt.Logger == nil {
		opt.Logger = slog.New(slog.DiscardHandler)
	}

	c := &LRU[K, V]{
		guard:   opt.Guard,
		core:    newCore(opt),
		metrics: opt.Metrics,
		log:     opt.Logger.With(slog.String("component", "lrucache")),
		loader:  opt.Loader,
	}
	// Loads coalesce under the same key equality the index uses.
	c.sf.Hash, c.sf.Equal = c.core.hash, c.core.equal
	return c
}

// built checks that the cache was constructed with New.
func (c *LRU[K, V]) built() bool {
	ok := c.core != nil
	assert.That(ok, "use of uninitialized cache; construct it with New")
	return ok
}

// enter acquires the guard and reports whether the cache is usable. When
// it returns false the guard is not held. Violations assert in lrudebug
// builds and degrade to no-ops otherwise.
func (c *LRU[K, V]) enter() bool {
	if !c.built() {
		return false
	}
	c.guard.Lock()
	if c.closed {
		c.guard.Unlock()
		assert.That(false, "use of closed cache")
		return false
	}
	return true
}

// Contains reports whether k is resident. Recency is not touched.
func (c *LRU[K, V]) Contains(k K) bool {
	if !c.enter() {
		return false
	}
	defer c.guard.Unlock()
	return c.core.contains(k)
}

// Get returns the value for k and promotes it to most recently used.
func (c *LRU[K, V]) Get(k K) (V, bool) {
	v, ok, _ := c.getLive(k)
	return v, ok
}

// Peek returns the value for k without promoting it.
func (c *LRU[K, V]) Peek(k K) (V, bool) {
	if !c.enter() {
		var zero V
		return zero, false
	}
	defer c.guard.Unlock()
	return c.core.peek(k)
}

// Put inserts or updates k→v and promotes it to most recently used,
// evicting from the LRU end until the new weight fits. An entry whose
// weight exceeds Capacity is rejected: Put returns false and the cache,
// including any previous value for k, is left unchanged.
func (c *LRU[K, V]) Put(k K, v V) bool {
	if !c.built() {
		return false
	}
	w := c.core.weightOf(k, v)

	if !c.enter() {
		return false
	}
	defer c.guard.Unlock()

	ok := c.core.put(k, v, w)
	if !ok {
		c.metrics.Reject()
		c.log.Debug("put rejected",
			slog.Int64("weight", w),
			slog.Int64("capacity", c.core.limit()),
		)
	}
	c.metrics.Size(c.core.len(), c.core.size())
	return ok
}

// Remove deletes k if present; absent keys are ignored.
func (c *LRU[K, V]) Remove(k K) {
	if !c.enter() {
		return
	}
	defer c.guard.Unlock()

	if c.core.remove(k) {
		c.metrics.Size(c.core.len(), c.core.size())
	}
}

// Clear drops every entry, reporting each to OnEvict with EvictClear.
func (c *LRU[K, V]) Clear() {
	if !c.enter() {
		return
	}
	defer c.guard.Unlock()

	n := c.core.clear(EvictClear)
	c.metrics.Size(0, 0)
	c.log.Debug("cache cleared", slog.Int("entries", n))
}

// Capacity returns the maximum total weight.
func (c *LRU[K, V]) Capacity() int64 {
	if !c.enter() {
		return 0
	}
	defer c.guard.Unlock()
	return c.core.limit()
}

// Size returns the current total weight of resident entries.
// With the default unit weight it equals Len.
func (c *LRU[K, V]) Size() int64 {
	if !c.enter() {
		return 0
	}
	defer c.guard.Unlock()
	return c.core.size()
}

// Len returns the number of resident entries.
func (c *LRU[K, V]) Len() int {
	if !c.enter() {
		return 0
	}
	defer c.guard.Unlock()
	return c.core.len()
}

// Keys returns resident keys ordered from most to least recently used.
func (c *LRU[K, V]) Keys() []K {
	if !c.enter() {
		return nil
	}
	defer c.guard.Unlock()
	return c.core.keys()
}

// Oldest returns the least recently used entry without promoting it.
func (c *LRU[K, V]) Oldest() (K, V, bool) {
	if !c.enter() {
		var (
			zk K
			zv V
		)
		return zk, zv, false
	}
	defer c.guard.Unlock()
	return c.core.oldest()
}

// Close drops all entries and marks the cache closed. Further calls are a
// programming error. Closing twice is allowed and returns nil.
func (c *LRU[K, V]) Close() error {
	if c.core == nil {
		return nil
	}
	c.guard.Lock()
	defer c.guard.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	n := c.core.clear(EvictClear)
	c.metrics.Size(0, 0)
	c.log.Debug("cache closed", slog.Int("entries", n))
	return nil
}

// GetOrLoad returns the value for k; on miss it loads via Options.Loader,
// coalescing concurrent loads for keys the cache considers equal
// (singleflight). A loaded value too heavy to admit is returned but not
// cached. If no Loader is configured, returns ErrNoLoader.
func (c *LRU[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	var zero V
	// fast path
	v, ok, live := c.getLive(k)
	if !live {
		return zero, ErrClosed
	}
	if ok {
		return v, nil
	}
	if c.loader == nil {
		return zero, ErrNoLoader
	}

	return c.sf.Do(ctx, k, func() (V, error) {
		// double-check after flight join; no metrics, the miss is already counted
		if v, ok := c.lookup(k); ok {
			return v, nil
		}
		v, err := c.loader(ctx, k)
		if err == nil {
			c.Put(k, v)
		}
		return v, err
	})
}

// getLive is Get that also reports whether the cache was usable.
func (c *LRU[K, V]) getLive(k K) (v V, ok, live bool) {
	if !c.enter() {
		return v, false, false
	}
	defer c.guard.Unlock()

	v, ok = c.core.get(k)
	if ok {
		c.metrics.Hit()
	} else {
		c.metrics.Miss()
	}
	return v, ok, true
}

// lookup is Get without hit/miss reporting.
func (c *LRU[K, V]) lookup(k K) (V, bool) {
	if !c.enter() {
		var zero V
		return zero, false
	}
	defer c.guard.Unlock()
	return c.core.get(k)
}
