package cache

import (
	"context"
	"log/slog"

	"github.com/IvanBrykalov/lrucache/policy"
)

// EvictReason explains why the cache dropped an entry on its own.
type EvictReason int

const (
	// EvictCapacity means removed from the LRU end to make room for a Put.
	EvictCapacity EvictReason = iota
	// EvictClear means dropped by Clear or Close.
	EvictClear
)

// String returns a stable lower-case name, suitable as a metric label.
func (r EvictReason) String() string {
	switch r {
	case EvictCapacity:
		return "capacity"
	case EvictClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Metrics receives cache-level signals. The cache keeps no counters of its
// own; implementations decide what to aggregate and export.
// All methods are called under the cache guard and must be cheap.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	// Reject is called when Put refuses an entry heavier than the capacity.
	Reject()
	Size(entries int, weight int64)
}

// Options configures an LRU. Zero values are safe; defaults are applied in
// New():
//   - nil Weight  => every entry weighs 1 (MaxWeight is an entry count)
//   - nil Guard   => policy.Exclusive (safe for concurrent use)
//   - nil Metrics => NoopMetrics
//   - nil Logger  => discard
type Options[K comparable, V any] struct {
	// MaxWeight is the total weight budget; must be > 0.
	MaxWeight int64

	// Weight returns the capacity cost of k→v (e.g. len(v) for byte
	// budgets). It must be pure and non-negative; the result is computed
	// once per Put and cached with the entry.
	Weight func(k K, v V) int64

	// Hash and Equal replace Go's native key equality, for the index and
	// for GetOrLoad coalescing alike. If Equal is set and Hash is nil, a
	// FNV-1a hash of the key is used and New panics for key types it cannot
	// hash. equal(a, b) must imply hash(a) == hash(b).
	Hash  func(k K) uint64
	Equal func(a, b K) bool

	// Guard serializes access; nil => policy.NewExclusive().
	// Use policy.NewUncontended() only when one goroutine owns the cache.
	Guard policy.Guard

	// Loader fetches a value on cache miss. Used by GetOrLoad.
	Loader func(ctx context.Context, k K) (V, error)

	// OnEvict is called under the guard for every entry the cache drops on
	// its own (capacity eviction, Clear, Close), never for Remove.
	// It must not call back into the cache.
	OnEvict func(k K, v V, reason EvictReason)

	// Observability
	Metrics Metrics
	Logger  *slog.Logger
}
