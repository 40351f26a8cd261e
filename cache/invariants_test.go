package cache

import (
	"fmt"
	"testing"
)

// checkInvariants walks the ledger under the guard and verifies that index,
// ledger and accountant agree.
func checkInvariants[K comparable, V any](t testing.TB, c *LRU[K, V]) {
	t.Helper()
	c.guard.Lock()
	defer c.guard.Unlock()
	if err := c.core.verify(); err != nil {
		t.Fatal(err)
	}
}

func (c *core[K, V]) verify() error {
	l := c.ledger
	if got, want := c.index.len(), l.len; got != want {
		return fmt.Errorf("index has %d keys, ledger has %d entries", got, want)
	}

	var (
		n      int
		weight int64
		prev   = nilSlot
	)
	for i := l.head; i != nilSlot; i = l.slots[i].next {
		s := &l.slots[i]
		if s.prev != prev {
			return fmt.Errorf("slot %d: prev=%d, want %d", i, s.prev, prev)
		}
		j, ok := c.index.lookup(s.key)
		if !ok || j != i {
			return fmt.Errorf("slot %d key %v: index points to %d (found=%v)", i, s.key, j, ok)
		}
		weight += s.weight
		n++
		prev = i
		if n > len(l.slots) {
			return fmt.Errorf("ledger cycle detected")
		}
	}
	if prev != l.tail {
		return fmt.Errorf("tail=%d, last walked slot=%d", l.tail, prev)
	}
	if n != l.len {
		return fmt.Errorf("walked %d entries, len=%d", n, l.len)
	}
	if weight != c.acct.cur {
		return fmt.Errorf("resident weight %d, accountant says %d", weight, c.acct.cur)
	}
	if c.acct.cur > c.acct.max {
		return fmt.Errorf("weight %d exceeds capacity %d", c.acct.cur, c.acct.max)
	}
	return nil
}
