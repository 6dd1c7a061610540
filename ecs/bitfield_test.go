package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitFieldGetSet(t *testing.T) {
	var b BitField
	assert.False(t, b.Get(5))

	b.Set(5, true)
	assert.True(t, b.Get(5))
	assert.False(t, b.Get(4))
	assert.False(t, b.Get(6))

	b.Set(5, false)
	assert.False(t, b.Get(5))
}

func TestBitFieldGetBeyondCapacityNeverGrows(t *testing.T) {
	var b BitField
	assert.False(t, b.Get(1000))
	assert.Equal(t, 0, b.Capacity())
}

func TestBitFieldSetGrows(t *testing.T) {
	var b BitField
	b.Set(100, true)
	assert.GreaterOrEqual(t, b.Capacity(), 101)
	assert.True(t, b.Get(100))
}

func TestBitFieldSpanningWordBoundary(t *testing.T) {
	var b BitField
	for i := 30; i <= 34; i++ {
		b.Set(i, true)
	}
	ranges := b.Ranges()
	assert.Equal(t, []BitRange{{30, 35}}, ranges)
}

func TestBitFieldIterRangesMultiple(t *testing.T) {
	var b BitField
	for _, i := range []int{0, 1, 2, 10, 11, 40} {
		b.Set(i, true)
	}
	ranges := b.Ranges()
	assert.Equal(t, []BitRange{{0, 3}, {10, 12}, {40, 41}}, ranges)
}

func TestBitFieldIterRangesAllOnes(t *testing.T) {
	var b BitField
	b.EnsureCapacity(96)
	for i := 0; i < 96; i++ {
		b.Set(i, true)
	}
	ranges := b.Ranges()
	assert.Equal(t, []BitRange{{0, 96}}, ranges)
}

func TestBitFieldSubsetEmptyIsSubsetOfAnything(t *testing.T) {
	var a, b BitField
	assert.True(t, a.IsSubsetOf(&b))

	b.Set(3, true)
	assert.True(t, a.IsSubsetOf(&b))
	assert.False(t, b.IsSubsetOf(&a))
}

func TestBitFieldSubsetTransitive(t *testing.T) {
	var a, b, c BitField
	a.Set(1, true)
	b.Set(1, true)
	b.Set(2, true)
	c.Set(1, true)
	c.Set(2, true)
	c.Set(3, true)

	assert.True(t, a.IsSubsetOf(&b))
	assert.True(t, b.IsSubsetOf(&c))
	assert.True(t, a.IsSubsetOf(&c))
}

// TestBitFieldSubsetBuggyAnyVsAll demonstrates why is_subset_of must use
// all-of-words, not any-of-words, across the backing words. An any-based
// implementation would incorrectly report 'a' as a subset of 'b' here,
// because word 0 alone happens to satisfy the per-word subset check even
// though word 1 does not.
func TestBitFieldSubsetBuggyAnyVsAll(t *testing.T) {
	var a, b BitField
	a.Set(0, true)  // word 0
	a.Set(40, true) // word 1, not present in b
	b.Set(0, true)  // word 0 matches

	assert.False(t, a.IsSubsetOf(&b))
}

func TestBitFieldIntersects(t *testing.T) {
	var a, b BitField
	a.Set(5, true)
	assert.False(t, a.Intersects(&b))
	b.Set(6, true)
	assert.False(t, a.Intersects(&b))
	b.Set(5, true)
	assert.True(t, a.Intersects(&b))
}

func TestBitFieldEqualIgnoresTrailingZeroWords(t *testing.T) {
	var a, b BitField
	a.Set(1, true)
	b.Set(1, true)
	b.EnsureCapacity(200) // adds trailing all-zero words
	assert.True(t, a.Equal(&b))
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestBitFieldNotEqualWhenBitsDiffer(t *testing.T) {
	var a, b BitField
	a.Set(1, true)
	b.Set(2, true)
	assert.False(t, a.Equal(&b))
}

func TestBitFieldClear(t *testing.T) {
	var b BitField
	b.Set(10, true)
	b.Clear()
	assert.False(t, b.Get(10))
	assert.GreaterOrEqual(t, b.Capacity(), 11)
}

func TestBatchSetUnchecked(t *testing.T) {
	var b BitField
	b.EnsureCapacity(64)
	BatchSetUnchecked(&b, []int{1, 3, 5}, true)
	assert.True(t, b.Get(1))
	assert.True(t, b.Get(3))
	assert.True(t, b.Get(5))
	assert.False(t, b.Get(2))
}
