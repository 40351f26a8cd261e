// Package singleflight coalesces concurrent loads of the same cache key.
package singleflight

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrLeaderPanicked is returned to followers whose leader's fn panicked.
// The leader itself re-panics with the original value.
var ErrLeaderPanicked = errors.New("singleflight: leader panicked")

// Group runs fn at most once per key among overlapping callers.
//
// The first caller for a key becomes the leader and runs fn; followers
// wait on the call's done channel. Results are written before done is
// closed, so followers read them without further locking. Cancelling a
// follower's ctx releases only that follower; the leader keeps running.
//
// The zero value is ready to use and groups keys with ==. Setting Hash
// and Equal before first use groups keys the caller's way instead;
// Equal(a, b) must imply Hash(a) == Hash(b).
type Group[K comparable, V any] struct {
	Hash  func(K) uint64
	Equal func(a, b K) bool

	mu      sync.Mutex
	m       map[K]*call[K, V]
	buckets map[uint64][]*call[K, V] // used when Equal is set
	n       int
}

type call[K comparable, V any] struct {
	key  K
	done chan struct{} // closed when val/err are published
	val  V
	err  error
}

// Do runs fn once for key and shares its result with concurrent callers.
func (g *Group[K, V]) Do(ctx context.Context, key K, fn func() (V, error)) (V, error) {
	g.mu.Lock()
	if c := g.find(key); c != nil {
		g.mu.Unlock()
		select {
		case <-c.done:
			return c.val, c.err
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err()
		}
	}

	c := &call[K, V]{key: key, done: make(chan struct{})}
	g.add(c)
	g.mu.Unlock()

	g.run(c, fn)
	return c.val, c.err
}

// InFlight returns the number of keys currently being loaded.
func (g *Group[K, V]) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}

// find returns the in-flight call for key, or nil. Caller holds mu.
func (g *Group[K, V]) find(key K) *call[K, V] {
	if g.Equal == nil {
		return g.m[key]
	}
	for _, c := range g.buckets[g.Hash(key)] {
		if g.Equal(c.key, key) {
			return c
		}
	}
	return nil
}

// add registers c. Caller holds mu.
func (g *Group[K, V]) add(c *call[K, V]) {
	g.n++
	if g.Equal == nil {
		if g.m == nil {
			g.m = make(map[K]*call[K, V])
		}
		g.m[c.key] = c
		return
	}
	if g.buckets == nil {
		g.buckets = make(map[uint64][]*call[K, V])
	}
	h := g.Hash(c.key)
	g.buckets[h] = append(g.buckets[h], c)
}

// drop unregisters c. Caller holds mu.
func (g *Group[K, V]) drop(c *call[K, V]) {
	g.n--
	if g.Equal == nil {
		delete(g.m, c.key)
		return
	}
	h := g.Hash(c.key)
	b := g.buckets[h]
	for i, o := range b {
		if o == c {
			b[i] = b[len(b)-1]
			b[len(b)-1] = nil
			b = b[:len(b)-1]
			break
		}
	}
	if len(b) == 0 {
		delete(g.buckets, h)
	} else {
		g.buckets[h] = b
	}
}

// run executes fn outside the lock and always publishes a result, even
// when fn panics, so followers never block forever.
func (g *Group[K, V]) run(c *call[K, V], fn func() (V, error)) {
	normal := false
	defer func() {
		if !normal {
			r := recover()
			c.err = fmt.Errorf("%w: %v", ErrLeaderPanicked, r)
			g.finish(c)
			panic(r)
		}
		g.finish(c)
	}()

	c.val, c.err = fn()
	normal = true
}

func (g *Group[K, V]) finish(c *call[K, V]) {
	g.mu.Lock()
	g.drop(c)
	g.mu.Unlock()
	close(c.done)
}
