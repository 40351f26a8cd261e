package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type name string

func (n name) String() string { return string(n) }

func TestNextPow2(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want uint64
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{1000, 1024},
		{1 << 40, 1 << 40},
		{1<<63 + 1, 1 << 63},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NextPow2(tc.in), "NextPow2(%d)", tc.in)
	}
}

func TestSlabHint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, SlabHint(0, 1024))
	assert.Equal(t, 4, SlabHint(3, 1024))
	assert.Equal(t, 1024, SlabHint(1_000_000, 1000))
}

func TestFnv64a_Consistency(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Fnv64a("abc"), Fnv64a("abc"))
	assert.NotEqual(t, Fnv64a("abc"), Fnv64a("abd"))
	assert.Equal(t, Fnv64a(42), Fnv64a(int64(42)))
	assert.Equal(t, Fnv64a(0.0), Fnv64a(math.Copysign(0, -1)))
	assert.Equal(t, Fnv64a(name("x")), Fnv64a("x"))
	assert.NotEqual(t, Fnv64a(true), Fnv64a(false))
	// FNV-1a of the empty string is the offset basis.
	assert.Equal(t, uint64(fnvOffset64), Fnv64a(""))
}

func TestFnv64a_UnsupportedPanics(t *testing.T) {
	t.Parallel()

	type pair struct{ a, b int }
	assert.Panics(t, func() { Fnv64a(pair{1, 2}) })
}

func TestFnv64aSupports(t *testing.T) {
	t.Parallel()

	type pair struct{ a, b int }
	assert.True(t, Fnv64aSupports[string]())
	assert.True(t, Fnv64aSupports[int8]())
	assert.True(t, Fnv64aSupports[float64]())
	assert.True(t, Fnv64aSupports[name]())
	assert.True(t, Fnv64aSupports[any](), "interface keys are checked per value")
	assert.False(t, Fnv64aSupports[pair]())
	assert.False(t, Fnv64aSupports[*int]())
}
