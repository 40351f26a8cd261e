// Package util contains internal helpers shared by the cache packages.
//
//revive:disable:var-naming  // allow 'util' as an internal helpers package name
package util

import (
	"fmt"
	"math"
)

// Fnv64a hashes common key types with 64-bit FNV-1a.
// It is the default hasher for caches configured with a custom key
// equality but no hash function.
// Supported: string, [16|32]byte, bool, all int/uint widths, uintptr,
// float32/64 and fmt.Stringer. Unsupported key types panic instead of
// degrading lookups; check them up front with Fnv64aSupports.
func Fnv64a[K comparable](k K) uint64 {
	switch v := any(k).(type) {
	case string:
		return fnv64aString(v)
	case [16]byte:
		return fnv64aBytes(v[:])
	case [32]byte:
		return fnv64aBytes(v[:])
	case bool:
		if v {
			return fnv64aUint64(1)
		}
		return fnv64aUint64(0)

	case uint8:
		return fnv64aUint64(uint64(v))
	case uint16:
		return fnv64aUint64(uint64(v))
	case uint32:
		return fnv64aUint64(uint64(v))
	case uint64:
		return fnv64aUint64(v)
	case uint:
		return fnv64aUint64(uint64(v))
	case uintptr:
		return fnv64aUint64(uint64(v))
	case int8:
		return fnv64aUint64(uint64(uint8(v)))
	case int16:
		return fnv64aUint64(uint64(uint16(v)))
	case int32:
		return fnv64aUint64(uint64(uint32(v)))
	case int64:
		return fnv64aUint64(uint64(v))
	case int:
		return fnv64aUint64(uint64(v))

	// +0 and -0 compare equal, so they must hash equal too.
	case float32:
		if v == 0 {
			return fnv64aUint64(0)
		}
		return fnv64aUint64(uint64(math.Float32bits(v)))
	case float64:
		if v == 0 {
			return fnv64aUint64(0)
		}
		return fnv64aUint64(math.Float64bits(v))

	case fmt.Stringer:
		return fnv64aString(v.String())
	default:
		panic(fmt.Sprintf("util.Fnv64a: unsupported key type %T; set Options.Hash", k))
	}
}

// Fnv64aSupports reports whether Fnv64a can hash keys of type K without
// calling it. Interface key types report true: only their dynamic values,
// seen per call, decide.
func Fnv64aSupports[K comparable]() bool {
	var zero K
	switch any(zero).(type) {
	case nil:
		return true
	case string, [16]byte, [32]byte, bool,
		uint8, uint16, uint32, uint64, uint, uintptr,
		int8, int16, int32, int64, int,
		float32, float64, fmt.Stringer:
		return true
	}
	return false
}

const (
	fnvOffset64 = 1469598103934665603
	fnvPrime64  = 1099511628211
)

func fnv64aString(s string) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime64
	}
	return h
}

func fnv64aBytes(b []byte) uint64 {
	h := uint64(fnvOffset64)
	for _, c := range b {
		h ^= uint64(c)
		h *= fnvPrime64
	}
	return h
}

// fnv64aUint64 hashes the 8 little-endian bytes of u without allocating.
func fnv64aUint64(u uint64) uint64 {
	h := uint64(fnvOffset64)
	for i := 0; i < 8; i++ {
		h ^= uint64(byte(u))
		h *= fnvPrime64
		u >>= 8
	}
	return h
}
