// Package policy provides the locking strategies a cache can be built with.
//
// A cache takes exactly one Guard and acquires it once per public call,
// around the whole read-modify-write of its index, recency list and weight
// accounting. There is no read/write split: a Get reorders the recency list
// and therefore takes the same exclusive acquisition as a Put.
package policy

import "sync"

// Guard serializes access to a cache's shared state.
// Lock blocks until the guard is available; there is no timeout path.
type Guard interface {
	Lock()
	Unlock()
}

// Exclusive is a mutex-backed Guard. Calls under it are linearizable.
// The zero value is ready to use.
type Exclusive struct {
	mu sync.Mutex
}

// NewExclusive returns a mutex-backed Guard.
func NewExclusive() *Exclusive { return &Exclusive{} }

// Lock acquires the mutex.
func (g *Exclusive) Lock() { g.mu.Lock() }

// Unlock releases the mutex.
func (g *Exclusive) Unlock() { g.mu.Unlock() }

// Uncontended is a no-op Guard for caches owned by a single goroutine.
// Sharing a cache built with it across goroutines is a data race.
type Uncontended struct{}

// NewUncontended returns a Guard whose Lock and Unlock do nothing.
func NewUncontended() Uncontended { return Uncontended{} }

func (Uncontended) Lock()   {}
func (Uncontended) Unlock() {}

var (
	_ Guard       = (*Exclusive)(nil)
	_ Guard       = Uncontended{}
	_ sync.Locker = (*Exclusive)(nil)
)
