// Package cache provides a generic, weighted, in-process LRU cache with a
// pluggable weight function and a pluggable locking strategy.
//
// Design
//
//   - Storage: entries live in a dense slab of slots linked into an
//     intrusive MRU↔LRU list by slot number. Freed slots are recycled via a
//     free list. A map[K]int32 (or a custom hash/equality index) locates a
//     key's slot. Get, Put, Remove and each eviction are O(1) expected.
//
//   - Capacity: every entry has a weight (Options.Weight, default 1) and
//     the cache keeps the sum of resident weights <= Options.MaxWeight.
//     With the default weight MaxWeight is simply an entry count; with
//     e.g. func(_ string, v []byte) int64 { return int64(len(v)) } it is
//     a byte budget. An entry heavier than MaxWeight is rejected outright.
//
//   - Recency: Get and every successful Put (insert or update) move the
//     entry to the MRU end; Contains and Peek do not. Eviction always
//     removes from the LRU end, synchronously inside the Put that needs the
//     room. There are no background goroutines.
//
//   - Concurrency: one policy.Guard is acquired once per public call around
//     the whole operation. policy.Exclusive (the default) makes the cache
//     linearizable; policy.Uncontended removes locking for single-goroutine
//     owners.
//
//   - GetOrLoad: coalesces concurrent loads for the same key using
//     singleflight. If Loader is nil, GetOrLoad returns ErrNoLoader.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Reject/Size signals.
//     By default NoopMetrics is used; plug a Prometheus adapter to export
//     them.
//
// Basic usage
//
//	// Item-count cache holding up to 10k entries.
//	c := cache.New[string, []byte](cache.Options[string, []byte]{MaxWeight: 10_000})
//	c.Put("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v // use value
//	}
//	c.Remove("a")
//
// Byte budget
//
//	c := cache.New[string, []byte](cache.Options[string, []byte]{
//	    MaxWeight: 64 << 20,
//	    Weight:    func(k string, v []byte) int64 { return int64(len(k) + len(v)) },
//	})
//	if !c.Put("blob", make([]byte, 128<<20)) {
//	    // heavier than the whole budget: rejected, nothing evicted
//	}
//
// Single-goroutine owner
//
//	c := cache.New[int, float64](cache.Options[int, float64]{
//	    MaxWeight: 3,
//	    Guard:     policy.NewUncontended(),
//	})
//
// Contract violations (using a zero-value LRU, using an LRU after Close, a
// weight function returning a negative number) are programming errors.
// Build with -tags lrudebug to turn them into panics; release builds ignore
// such calls and clamp negative weights to zero.
package cache
