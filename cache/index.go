package cache

// keyIndex maps keys to ledger slots. It never owns entries and is kept in
// lockstep with the ledger by core: every ledger insert/remove is paired
// with exactly one index insert/remove.
type keyIndex[K comparable] interface {
	lookup(k K) (int32, bool)
	insert(k K, i int32)
	remove(k K, i int32)
	len() int
	reset()
}

// mapIndex uses Go's native key equality and hashing.
type mapIndex[K comparable] map[K]int32

func (m mapIndex[K]) lookup(k K) (int32, bool) {
	i, ok := m[k]
	return i, ok
}

func (m mapIndex[K]) insert(k K, i int32) { m[k] = i }
func (m mapIndex[K]) remove(k K, _ int32) { delete(m, k) }
func (m mapIndex[K]) len() int            { return len(m) }
func (m mapIndex[K]) reset()              { clear(m) }

// hashIndex honors a caller-supplied hash/equality pair. Colliding slots
// share a bucket; equality is checked against the key stored in the ledger.
//
// The pair must obey equal(a, b) => hash(a) == hash(b), otherwise lookups
// silently miss.
type hashIndex[K comparable] struct {
	buckets map[uint64][]int32
	n       int

	hash  func(K) uint64
	equal func(a, b K) bool
	keyAt func(int32) K
}

func newHashIndex[K comparable](hash func(K) uint64, equal func(a, b K) bool, keyAt func(int32) K) *hashIndex[K] {
	return &hashIndex[K]{
		buckets: make(map[uint64][]int32),
		hash:    hash,
		equal:   equal,
		keyAt:   keyAt,
	}
}

func (h *hashIndex[K]) lookup(k K) (int32, bool) {
	for _, i := range h.buckets[h.hash(k)] {
		if h.equal(h.keyAt(i), k) {
			return i, true
		}
	}
	return nilSlot, false
}

func (h *hashIndex[K]) insert(k K, i int32) {
	hv := h.hash(k)
	h.buckets[hv] = append(h.buckets[hv], i)
	h.n++
}

func (h *hashIndex[K]) remove(k K, i int32) {
	hv := h.hash(k)
	b := h.buckets[hv]
	for j, s := range b {
		if s != i {
			continue
		}
		last := len(b) - 1
		b[j] = b[last]
		if last == 0 {
			delete(h.buckets, hv)
		} else {
			h.buckets[hv] = b[:last]
		}
		h.n--
		return
	}
}

func (h *hashIndex[K]) len() int { return h.n }

func (h *hashIndex[K]) reset() {
	clear(h.buckets)
	h.n = 0
}
