package cache

import "github.com/IvanBrykalov/lrucache/internal/assert"

// nilSlot terminates the recency list and the free list.
const nilSlot int32 = -1

// slot is one ledger entry. Slots live in a dense slab and are linked by
// index rather than by pointer, so a slot number handed to the key index
// stays valid until that very slot is removed, regardless of slab growth.
type slot[K comparable, V any] struct {
	key K
	val V

	// Weight computed once on insert/update; released on removal.
	weight int64

	// Intrusive list links: head is MRU, tail is LRU.
	// Free slots reuse next as the free-list link.
	prev int32
	next int32
}

// ledger is the recency-ordered entry store (head=MRU, tail=LRU).
// It owns every entry; the key index holds only slot numbers.
// Not safe for concurrent use; the cache guard serializes access.
type ledger[K comparable, V any] struct {
	slots []slot[K, V]
	head  int32 // MRU
	tail  int32 // LRU
	free  int32 // first reusable slot
	len   int   // number of resident entries
}

func newLedger[K comparable, V any](hint int) *ledger[K, V] {
	return &ledger[K, V]{
		slots: make([]slot[K, V], 0, hint),
		head:  nilSlot,
		tail:  nilSlot,
		free:  nilSlot,
	}
}

// at returns the slot stored at i. The pointer is valid until the next
// pushFront, which may grow the slab.
func (l *ledger[K, V]) at(i int32) *slot[K, V] { return &l.slots[i] }

// back returns the current LRU slot or nilSlot.
func (l *ledger[K, V]) back() int32 { return l.tail }

// pushFront stores a new entry at MRU in amortized O(1) and returns its slot.
func (l *ledger[K, V]) pushFront(k K, v V, weight int64) int32 {
	var i int32
	if l.free != nilSlot {
		i = l.free
		l.free = l.slots[i].next
	} else {
		assert.That(len(l.slots) < 1<<31-1, "ledger slab exhausted")
		l.slots = append(l.slots, slot[K, V]{})
		i = int32(len(l.slots) - 1)
	}
	s := &l.slots[i]
	s.key, s.val, s.weight = k, v, weight
	l.linkFront(i)
	l.len++
	return i
}

// moveToFront promotes slot i to MRU in O(1).
func (l *ledger[K, V]) moveToFront(i int32) {
	if i == l.head {
		return
	}
	l.unlink(i)
	l.linkFront(i)
}

// remove unlinks slot i, clears it for the GC and puts it on the free list.
func (l *ledger[K, V]) remove(i int32) {
	l.unlink(i)
	l.slots[i] = slot[K, V]{prev: nilSlot, next: l.free}
	l.free = i
	l.len--
}

// reset drops every entry while keeping the slab's capacity.
func (l *ledger[K, V]) reset() {
	clear(l.slots)
	l.slots = l.slots[:0]
	l.head, l.tail, l.free = nilSlot, nilSlot, nilSlot
	l.len = 0
}

// each visits resident slots from MRU to LRU until fn returns false.
func (l *ledger[K, V]) each(fn func(i int32, s *slot[K, V]) bool) {
	for i := l.head; i != nilSlot; {
		next := l.slots[i].next
		if !fn(i, &l.slots[i]) {
			return
		}
		i = next
	}
}

func (l *ledger[K, V]) linkFront(i int32) {
	s := &l.slots[i]
	s.prev = nilSlot
	s.next = l.head
	if l.head != nilSlot {
		l.slots[l.head].prev = i
	}
	l.head = i
	if l.tail == nilSlot {
		l.tail = i
	}
}

func (l *ledger[K, V]) unlink(i int32) {
	s := &l.slots[i]
	if s.prev != nilSlot {
		l.slots[s.prev].next = s.next
	} else {
		l.head = s.next
	}
	if s.next != nilSlot {
		l.slots[s.next].prev = s.prev
	} else {
		l.tail = s.prev
	}
	s.prev, s.next = nilSlot, nilSlot
}
