package cache

import "github.com/IvanBrykalov/lrucache/internal/assert"

// accountant tracks weighted occupancy against a fixed maximum.
// Pure bookkeeping: the caller already holds the cache guard.
type accountant struct {
	max int64 // immutable after construction
	cur int64
}

// admits reports whether a single entry of weight w can ever be resident.
func (a *accountant) admits(w int64) bool { return w <= a.max }

// wouldFit reports whether cur+delta <= max without overflowing.
func (a *accountant) wouldFit(delta int64) bool { return delta <= a.max-a.cur }

func (a *accountant) reserve(delta int64) { a.cur += delta }

func (a *accountant) release(delta int64) {
	a.cur -= delta
	assert.That(a.cur >= 0, "released more weight than reserved")
}

func (a *accountant) reset() { a.cur = 0 }
