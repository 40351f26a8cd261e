package cache

// Cache is the minimal LRU contract. Implementations decide their own
// locking; LRU makes every method a single critical section.
type Cache[K comparable, V any] interface {
	// Contains reports whether k is resident without touching recency.
	Contains(k K) bool

	// Get returns the value for k and a presence flag.
	// On hit, the entry becomes the most recently used: lookups are not
	// side-effect free.
	Get(k K) (V, bool)

	// Put inserts or updates k→v and marks it most recently used, evicting
	// least recently used entries as needed. It returns false, leaving the
	// cache unchanged, when k→v alone outweighs the whole capacity.
	Put(k K, v V) bool

	// Remove deletes k. Removing an absent key is a no-op.
	Remove(k K)

	// Clear drops every entry.
	Clear()
}

// Bounded exposes capacity accounting.
type Bounded interface {
	// Capacity returns the maximum total weight.
	Capacity() int64
	// Size returns the current total weight of resident entries.
	Size() int64
}

var (
	_ Cache[string, int] = (*LRU[string, int])(nil)
	_ Bounded            = (*LRU[string, int])(nil)
)
