package ecs

// ArchetypeInstance is the columnar table backing one distinct set of
// component kinds: one AnyBuffer column per kind, a RangeAllocator over
// the shared slot axis, and a parallel back-reference from slot to owning
// Entity.
//
// All columns, the RangeAllocator and the entities slice always share the
// same capacity; a slot is live iff it lies in one of the allocator's used
// ranges, and for every live slot s the entity at position s points back
// at (this archetype, s).
type ArchetypeInstance struct {
	id        Archetype
	types     []ComponentType
	bitfield  BitField // set bits = component kinds present
	buffers   []AnyBuffer
	allocator RangeAllocator
	entities  []Entity
	scratch   BitField // reused by ReturnSlots for slot dedup
}

// NewArchetypeInstance builds an ArchetypeInstance for the given (already
// deduplicated) component types, with an initial capacity.
func NewArchetypeInstance(id Archetype, types []ComponentType, capacity int) *ArchetypeInstance {
	a := &ArchetypeInstance{
		id:        id,
		types:     append([]ComponentType(nil), types...),
		allocator: NewRangeAllocatorWithCapacity(capacity),
	}
	for _, t := range types {
		a.bitfield.Set(int(t.ID()), true)
	}
	a.buffers = make([]AnyBuffer, len(types))
	for i, t := range types {
		buf := NewAnyBuffer(t.desc)
		buf.EnsureCapacity(capacity)
		a.buffers[i] = buf
	}
	if capacity > 0 {
		a.entities = make([]Entity, capacity)
	}
	return a
}

// ID returns the archetype's handle.
func (a *ArchetypeInstance) ID() Archetype { return a.id }

// Types returns the archetype's ordered component types.
func (a *ArchetypeInstance) Types() []ComponentType { return a.types }

// Bitfield returns the archetype's component-kind bitfield.
func (a *ArchetypeInstance) Bitfield() *BitField { return &a.bitfield }

// Len returns the number of currently live slots.
func (a *ArchetypeInstance) Len() int {
	n := 0
	for _, r := range a.allocator.UsedRanges() {
		n += r.Len()
	}
	return n
}

// Capacity returns the shared capacity of every column.
func (a *ArchetypeInstance) Capacity() int { return a.allocator.Capacity() }

func (a *ArchetypeInstance) columnIndex(id ComponentID) int {
	for i, t := range a.types {
		if t.ID() == id {
			return i
		}
	}
	return -1
}

// growColumnsTo grows every column and the entities back-reference slice
// in lockstep with the allocator's new capacity.
func (a *ArchetypeInstance) growColumnsTo(capacity int) {
	for i := range a.buffers {
		a.buffers[i].EnsureCapacity(capacity)
	}
	if capacity > len(a.entities) {
		grown := make([]Entity, capacity)
		copy(grown, a.entities)
		a.entities = grown
	}
}

// EnsureCapacity grows every column and the RangeAllocator to at least c.
func (a *ArchetypeInstance) EnsureCapacity(c int) {
	if a.allocator.Capacity() < c {
		a.allocator.EnsureCapacity(c)
		a.bitfield.EnsureCapacity(c)
		a.growColumnsTo(a.allocator.Capacity())
	}
}

// TakeSlots allocates n slots, default-constructing every column over each
// allocated sub-range. out is overwritten with the allocated sub-ranges in
// ascending start order; the allocation may be fragmented over several
// ranges.
func (a *ArchetypeInstance) TakeSlots(n int, out *[]SlotRange) {
	a.TakeSlotsNoInit(n, out)
	for i := range a.buffers {
		for _, r := range *out {
			a.buffers[i].DefaultValues(r)
		}
	}
}

// TakeSlotsNoInit is TakeSlots without default-constructing the columns —
// used by transition logic that will immediately overwrite via
// CopyComponents.
func (a *ArchetypeInstance) TakeSlotsNoInit(n int, out *[]SlotRange) {
	if _, ok := a.allocator.TryAllocateFragmented(n, out); !ok {
		needed := a.allocator.Capacity() + (n - a.allocator.Available())
		a.growColumnsTo(needed)
		a.allocator.AllocateFragmented(n, out)
		a.bitfield.EnsureCapacity(a.allocator.Capacity())
	}
	if c := a.allocator.Capacity(); c > len(a.entities) {
		a.growColumnsTo(c)
	}
}

// ReturnSlots returns slots (which may contain duplicates) to the
// allocator, dropping every column's value in those slots first. Slots
// are deduplicated via the archetype's scratch bitfield before freeing.
func (a *ArchetypeInstance) ReturnSlots(slots []int) {
	a.scratch.Clear()
	a.scratch.EnsureCapacity(a.allocator.Capacity())
	BatchSetUnchecked(&a.scratch, slots, true)
	a.scratch.IterRanges(func(r BitRange) bool {
		sr := SlotRange{r.Start, r.End}
		for i := range a.buffers {
			a.buffers[i].DropValues(sr)
		}
		a.allocator.Free(sr)
		return true
	})
}

// ReturnSlotsNoDrop is ReturnSlots without dropping column values — used
// by transition logic that has already moved ownership to another
// archetype.
func (a *ArchetypeInstance) ReturnSlotsNoDrop(slots []int) {
	a.scratch.Clear()
	a.scratch.EnsureCapacity(a.allocator.Capacity())
	BatchSetUnchecked(&a.scratch, slots, true)
	a.scratch.IterRanges(func(r BitRange) bool {
		a.allocator.Free(SlotRange{r.Start, r.End})
		return true
	})
}

// ReturnSlotNoDrop returns a single slot without dropping its values.
func (a *ArchetypeInstance) ReturnSlotNoDrop(slot int) {
	a.allocator.Free(SlotRange{slot, slot + 1})
}

// MatchesQuery reports whether mask ⊆ this archetype's component bitfield.
func (a *ArchetypeInstance) MatchesQuery(mask *BitField) bool {
	return mask.IsSubsetOf(&a.bitfield)
}

// Entity returns the entity back-reference stored at slot.
func (a *ArchetypeInstance) Entity(slot int) Entity { return a.entities[slot] }

// SetEntity records the owning entity for slot.
func (a *ArchetypeInstance) SetEntity(slot int, e Entity) { a.entities[slot] = e }

func (a *ArchetypeInstance) getBuffer(id ComponentID) (*AnyBuffer, bool) {
	i := a.columnIndex(id)
	if i < 0 {
		return nil, false
	}
	return &a.buffers[i], true
}

// GetComponent returns a pointer to the AnyBuffer backing component id, or
// false if this archetype carries no such column.
func (a *ArchetypeInstance) GetComponent(id ComponentID) (*AnyBuffer, bool) {
	return a.getBuffer(id)
}

// CopyComponents copies, for every column type present in both this
// archetype and dst, the value at srcSlot into dst's column at dstSlot.
// Column types not present in dst are left alone; the caller is
// responsible for reclaiming the source slot (e.g. via
// ReturnSlotsNoDrop/ReturnSlotNoDrop, since ownership of any copied value
// has moved to dst).
func (a *ArchetypeInstance) CopyComponents(dst *ArchetypeInstance, srcSlot, dstSlot int) {
	for i := range a.buffers {
		id := a.types[i].ID()
		dstBuf, ok := dst.getBuffer(id)
		if !ok {
			continue
		}
		srcBuf := &a.buffers[i]
		srcBuf.CopyValues(dstBuf, SlotRange{srcSlot, srcSlot + 1}, dstSlot)
	}
}

// DropAll drops every live value in every column, walking the allocator's
// used ranges. Called when the archetype itself is being torn down.
func (a *ArchetypeInstance) DropAll() {
	for _, r := range a.allocator.UsedRanges() {
		for i := range a.buffers {
			a.buffers[i].DropValues(r)
		}
	}
}

// UsedRanges exposes the archetype's live slot ranges, ascending by start.
func (a *ArchetypeInstance) UsedRanges() []SlotRange {
	return a.allocator.UsedRanges()
}
