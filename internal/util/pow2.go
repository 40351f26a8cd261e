package util

// NextPow2 returns the smallest power of two >= x.
// Special cases:
//   - x == 0  -> 1
//   - if the exact next power would overflow 64 bits, the result is clamped to 1<<63
func NextPow2(x uint64) uint64 {
	if x <= 1 {
		return 1
	}
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	x++
	if x == 0 {
		return 1 << 63
	}
	return x
}

// SlabHint sizes the initial entry storage of a cache bounded by maxWeight
// under unit weights: the next power of two, capped at limit.
func SlabHint(maxWeight int64, limit int) int {
	if maxWeight <= 0 {
		return 1
	}
	if maxWeight > int64(limit) {
		maxWeight = int64(limit)
	}
	return int(NextPow2(uint64(maxWeight)))
}
