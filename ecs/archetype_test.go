package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestArchetype(t *testing.T) (*ArchetypeInstance, ComponentType, ComponentType) {
	t.Helper()
	resetComponentRegistryForTests()
	posType := componentTypeFor[position]()
	rotType := componentTypeFor[rotation]()
	arch := NewArchetypeInstance(Archetype{}, []ComponentType{posType, rotType}, 0)
	return arch, posType, rotType
}

func TestArchetypeTakeSlotsDefaultConstructs(t *testing.T) {
	arch, posType, _ := newTestArchetype(t)

	var slots []SlotRange
	arch.TakeSlots(2, &slots)
	assert.Equal(t, 2, arch.Len())

	posBuf, ok := arch.GetComponent(posType.ID())
	assert.True(t, ok)
	typed := TypedSliceUnchecked[position](posBuf)
	assert.Equal(t, position{0, 0}, typed[0])
	assert.Equal(t, position{0, 0}, typed[1])
}

func TestArchetypeGetSetComponentRoundTrip(t *testing.T) {
	arch, posType, rotType := newTestArchetype(t)

	var slots []SlotRange
	arch.TakeSlots(1, &slots)
	slot := slots[0].Start

	posBuf, _ := arch.GetComponent(posType.ID())
	TypedSliceUnchecked[position](posBuf)[slot] = position{1, 2}

	rotBuf, _ := arch.GetComponent(rotType.ID())
	TypedSliceUnchecked[rotation](rotBuf)[slot] = rotation{3}

	assert.Equal(t, position{1, 2}, TypedSliceUnchecked[position](posBuf)[slot])
	assert.Equal(t, rotation{3}, TypedSliceUnchecked[rotation](rotBuf)[slot])
}

func TestArchetypeReturnSlotsFreesRange(t *testing.T) {
	arch, _, _ := newTestArchetype(t)

	var slots []SlotRange
	arch.TakeSlots(4, &slots)
	assert.Equal(t, 4, arch.Len())

	arch.ReturnSlots([]int{slots[0].Start, slots[0].Start + 1})
	assert.Equal(t, 2, arch.Len())
}

func TestArchetypeEntityBackReference(t *testing.T) {
	arch, _, _ := newTestArchetype(t)

	var slots []SlotRange
	arch.TakeSlots(1, &slots)
	slot := slots[0].Start

	e := Entity{index: 7, version: 1}
	arch.SetEntity(slot, e)
	assert.Equal(t, e, arch.Entity(slot))
}

func TestArchetypeMatchesQuery(t *testing.T) {
	arch, posType, rotType := newTestArchetype(t)

	var onlyPos BitField
	onlyPos.Set(int(posType.ID()), true)
	assert.True(t, arch.MatchesQuery(&onlyPos))

	var both BitField
	both.Set(int(posType.ID()), true)
	both.Set(int(rotType.ID()), true)
	assert.True(t, arch.MatchesQuery(&both))

	velType := componentTypeFor[velocity]()
	var needsVelocity BitField
	needsVelocity.Set(int(velType.ID()), true)
	assert.False(t, arch.MatchesQuery(&needsVelocity))
}

func TestArchetypeCopyComponentsNarrowing(t *testing.T) {
	resetComponentRegistryForTests()
	posType := componentTypeFor[position]()
	rotType := componentTypeFor[rotation]()

	src := NewArchetypeInstance(Archetype{}, []ComponentType{posType, rotType}, 0)
	dst := NewArchetypeInstance(Archetype{index: 1}, []ComponentType{posType}, 0)

	var srcSlots, dstSlots []SlotRange
	src.TakeSlots(1, &srcSlots)
	dst.TakeSlots(1, &dstSlots)

	srcPos, _ := src.GetComponent(posType.ID())
	TypedSliceUnchecked[position](srcPos)[srcSlots[0].Start] = position{9, 9}

	src.CopyComponents(dst, srcSlots[0].Start, dstSlots[0].Start)

	dstPos, _ := dst.GetComponent(posType.ID())
	assert.Equal(t, position{9, 9}, TypedSliceUnchecked[position](dstPos)[dstSlots[0].Start])

	_, hasRot := dst.GetComponent(rotType.ID())
	assert.False(t, hasRot)
}

func TestArchetypeTakeSlotsGrowsCapacity(t *testing.T) {
	arch, posType, _ := newTestArchetype(t)

	var slots []SlotRange
	arch.TakeSlots(10, &slots)
	assert.GreaterOrEqual(t, arch.Capacity(), 10)

	posBuf, _ := arch.GetComponent(posType.ID())
	assert.GreaterOrEqual(t, posBuf.Capacity(), 10)
}
