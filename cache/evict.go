package cache

// makeRoom evicts LRU entries until required more weight fits or nothing
// evictable is left. keep marks a slot that must survive (the entry being
// updated); pass nilSlot on inserts. Evictions are final even when the
// call reports false.
func (c *core[K, V]) makeRoom(required int64, keep int32) bool {
	for !c.acct.wouldFit(required) {
		tail := c.ledger.back()
		if tail == nilSlot || tail == keep {
			return false
		}
		k, v := c.removeAt(tail)
		c.evicted(k, v, EvictCapacity)
	}
	return true
}

// evicted reports an entry the cache dropped on its own.
// Runs under the guard; OnEvict must not call back into the cache.
func (c *core[K, V]) evicted(k K, v V, reason EvictReason) {
	c.metrics.Evict(reason)
	if cb := c.onEvict; cb != nil {
		cb(k, v, reason)
	}
}
