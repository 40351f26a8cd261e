package cache

import (
	"fmt"

	"github.com/IvanBrykalov/lrucache/internal/assert"
	"github.com/IvanBrykalov/lrucache/internal/util"
)

// slabLimit caps the slab preallocation for large unit-weight caches.
const slabLimit = 1 << 10

// core composes ledger, key index and accountant. It performs no locking;
// LRU wraps every call in one guard acquisition.
//
// Invariants outside a call:
//   - index.len() == ledger.len
//   - every indexed slot holds an entry with the same key
//   - acct.cur == sum of resident slot weights <= acct.max
//   - ledger order is recency order, MRU at head
type core[K comparable, V any] struct {
	ledger *ledger[K, V]
	index  keyIndex[K]
	acct   accountant

	// hash and equal are the custom key strategy; both nil for mapIndex.
	hash  func(K) uint64
	equal func(a, b K) bool

	weigh   func(K, V) int64
	onEvict func(K, V, EvictReason)
	metrics Metrics
}

func newCore[K comparable, V any](opt Options[K, V]) *core[K, V] {
	hint := 0
	if opt.Weight == nil {
		hint = util.SlabHint(opt.MaxWeight, slabLimit)
	}
	c := &core[K, V]{
		ledger:  newLedger[K, V](hint),
		acct:    accountant{max: opt.MaxWeight},
		weigh:   opt.Weight,
		onEvict: opt.OnEvict,
		metrics: opt.Metrics,
	}
	if c.metrics == nil {
		c.metrics = NoopMetrics{}
	}

	switch {
	case opt.Equal != nil:
		c.hash, c.equal = opt.Hash, opt.Equal
		if c.hash == nil {
			if !util.Fnv64aSupports[K]() {
				var zero K
				panic(fmt.Sprintf("cache: no default hash for key type %T; set Options.Hash", zero))
			}
			c.hash = util.Fnv64a[K]
		}
	case opt.Hash != nil:
		// A hash without an equality still needs a collision check.
		c.hash, c.equal = opt.Hash, func(a, b K) bool { return a == b }
	}

	if c.equal != nil {
		c.index = newHashIndex(c.hash, c.equal, func(i int32) K { return c.ledger.at(i).key })
	} else {
		c.index = make(mapIndex[K], hint)
	}
	return c
}

// weightOf computes the capacity cost of k→v. Negative weights are a
// caller bug; release builds clamp them to zero.
func (c *core[K, V]) weightOf(k K, v V) int64 {
	if c.weigh == nil {
		return 1
	}
	w := c.weigh(k, v)
	assert.That(w >= 0, "weight function returned a negative weight")
	if w < 0 {
		w = 0
	}
	return w
}

func (c *core[K, V]) contains(k K) bool {
	_, ok := c.index.lookup(k)
	return ok
}

// get returns the value for k and promotes it to MRU.
func (c *core[K, V]) get(k K) (V, bool) {
	i, ok := c.index.lookup(k)
	if !ok {
		var zero V
		return zero, false
	}
	c.ledger.moveToFront(i)
	return c.ledger.at(i).val, true
}

// peek returns the value for k without touching recency.
func (c *core[K, V]) peek(k K) (V, bool) {
	i, ok := c.index.lookup(k)
	if !ok {
		var zero V
		return zero, false
	}
	return c.ledger.at(i).val, true
}

// put inserts or updates k→v with precomputed weight w and promotes it.
// An entry heavier than the whole capacity is rejected before anything is
// touched, so an update never leaves the old value half-replaced.
func (c *core[K, V]) put(k K, v V, w int64) bool {
	if !c.acct.admits(w) {
		return false
	}

	if i, ok := c.index.lookup(k); ok {
		c.ledger.moveToFront(i)
		old := c.ledger.at(i).weight
		if w > old && !c.makeRoom(w-old, i) {
			return false
		}
		s := c.ledger.at(i)
		c.acct.release(old)
		s.val, s.weight = v, w
		c.acct.reserve(w)
		return true
	}

	if !c.makeRoom(w, nilSlot) {
		return false
	}
	i := c.ledger.pushFront(k, v, w)
	c.index.insert(k, i)
	c.acct.reserve(w)
	return true
}

// remove deletes k if present.
func (c *core[K, V]) remove(k K) bool {
	i, ok := c.index.lookup(k)
	if !ok {
		return false
	}
	c.removeAt(i)
	return true
}

// removeAt erases slot i from index, ledger and accountant together and
// returns the dropped entry.
func (c *core[K, V]) removeAt(i int32) (K, V) {
	s := c.ledger.at(i)
	k, v, w := s.key, s.val, s.weight
	c.index.remove(k, i)
	c.ledger.remove(i)
	c.acct.release(w)
	return k, v
}

// clear drops every entry, reporting each one from LRU to MRU.
func (c *core[K, V]) clear(reason EvictReason) int {
	n := c.ledger.len
	for i := c.ledger.back(); i != nilSlot; {
		s := c.ledger.at(i)
		prev := s.prev
		c.evicted(s.key, s.val, reason)
		i = prev
	}
	c.ledger.reset()
	c.index.reset()
	c.acct.reset()
	return n
}

// oldest returns the LRU entry without promoting it.
func (c *core[K, V]) oldest() (K, V, bool) {
	i := c.ledger.back()
	if i == nilSlot {
		var (
			zk K
			zv V
		)
		return zk, zv, false
	}
	s := c.ledger.at(i)
	return s.key, s.val, true
}

// keys lists resident keys from MRU to LRU.
func (c *core[K, V]) keys() []K {
	out := make([]K, 0, c.ledger.len)
	c.ledger.each(func(_ int32, s *slot[K, V]) bool {
		out = append(out, s.key)
		return true
	})
	return out
}

func (c *core[K, V]) len() int     { return c.ledger.len }
func (c *core[K, V]) size() int64  { return c.acct.cur }
func (c *core[K, V]) limit() int64 { return c.acct.max }
