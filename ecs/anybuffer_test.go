package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestAnyBuffer(t *testing.T) (AnyBuffer, ComponentID) {
	t.Helper()
	resetComponentRegistryForTests()
	posType := componentTypeFor[position]()
	return NewAnyBuffer(posType.desc), posType.ID()
}

func TestAnyBufferEnsureCapacityPreservesDataOnRegrow(t *testing.T) {
	buf, _ := newTestAnyBuffer(t)

	buf.EnsureCapacity(2)
	TypedSliceUnchecked[position](&buf)[0] = position{11, 22}
	TypedSliceUnchecked[position](&buf)[1] = position{33, 44}

	// Force a regrow of an already-populated buffer, the way
	// Registry.CreateEntitiesFromArchetype does when a shared archetype
	// crosses its current capacity.
	buf.EnsureCapacity(64)
	assert.GreaterOrEqual(t, buf.Capacity(), 64)

	grown := TypedSliceUnchecked[position](&buf)
	assert.Equal(t, position{11, 22}, grown[0])
	assert.Equal(t, position{33, 44}, grown[1])
}

func TestAnyBufferEnsureCapacityNoopWhenAlreadyLargeEnough(t *testing.T) {
	buf, _ := newTestAnyBuffer(t)

	buf.EnsureCapacity(8)
	TypedSliceUnchecked[position](&buf)[3] = position{7, 8}
	before := buf.Capacity()

	buf.EnsureCapacity(4)
	assert.Equal(t, before, buf.Capacity())
	assert.Equal(t, position{7, 8}, TypedSliceUnchecked[position](&buf)[3])
}

func TestAnyBufferDefaultValuesZeroesSlots(t *testing.T) {
	buf, _ := newTestAnyBuffer(t)
	buf.EnsureCapacity(4)

	typed := TypedSliceUnchecked[position](&buf)
	typed[1] = position{5, 6}
	typed[2] = position{7, 8}

	buf.DefaultValues(SlotRange{1, 3})

	typed = TypedSliceUnchecked[position](&buf)
	assert.Equal(t, position{0, 0}, typed[1])
	assert.Equal(t, position{0, 0}, typed[2])
}

func TestAnyBufferDropValuesNoopWithoutDropFn(t *testing.T) {
	buf, _ := newTestAnyBuffer(t)
	buf.EnsureCapacity(2)
	TypedSliceUnchecked[position](&buf)[0] = position{1, 1}

	// descriptorFor never sets a drop function (Go has no destructors);
	// DropValues must leave the bytes untouched rather than panic on the
	// nil check.
	assert.NotPanics(t, func() { buf.DropValues(SlotRange{0, 1}) })
	assert.Equal(t, position{1, 1}, TypedSliceUnchecked[position](&buf)[0])
}

func TestAnyBufferCopyValuesTransfersOwnership(t *testing.T) {
	resetComponentRegistryForTests()
	posType := componentTypeFor[position]()

	src := NewAnyBuffer(posType.desc)
	dst := NewAnyBuffer(posType.desc)
	src.EnsureCapacity(4)
	dst.EnsureCapacity(4)

	TypedSliceUnchecked[position](&src)[2] = position{42, 99}

	src.CopyValues(&dst, SlotRange{2, 3}, 0)

	assert.Equal(t, position{42, 99}, TypedSliceUnchecked[position](&dst)[0])
}

func TestAnyBufferCopyValuesPanicsOnDescriptorMismatch(t *testing.T) {
	resetComponentRegistryForTests()
	posType := componentTypeFor[position]()
	rotType := componentTypeFor[rotation]()

	src := NewAnyBuffer(posType.desc)
	dst := NewAnyBuffer(rotType.desc)
	src.EnsureCapacity(1)
	dst.EnsureCapacity(1)

	assert.Panics(t, func() {
		src.CopyValues(&dst, SlotRange{0, 1}, 0)
	})
}

func TestAnyBufferCopyValuesEmptyRangeIsNoop(t *testing.T) {
	buf, _ := newTestAnyBuffer(t)
	buf.EnsureCapacity(2)
	other := NewAnyBuffer(buf.desc)
	other.EnsureCapacity(2)

	assert.NotPanics(t, func() {
		buf.CopyValues(&other, SlotRange{0, 0}, 0)
	})
}
