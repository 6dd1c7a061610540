package ecs

import (
	"reflect"
	"runtime"

	"github.com/vela-ecs/vela/ecs/listener"
	"github.com/vela-ecs/vela/ecs/stats"
)

// Registry owns the entity instance table, a RangeAllocator over instance
// indices (distinct from any archetype's per-column slot allocator), and
// the ArchetypeStore backing every archetype's columnar storage. It is the
// single point of entry for entity lifecycle and component access.
//
// A Registry is single-owner: every mutating method (Create*, Destroy*,
// GetComponentMut, AddComponent, RemoveComponent) must be called from one
// goroutine at a time. The one operation safe to run concurrently with
// itself — never with a mutation — is Filter.ParForEach.
type Registry struct {
	allocator      RangeAllocator
	instances      []entityInstance
	archetypeStore *ArchetypeStore

	scratch   BitField
	slotPool  *Pool[[]int]
	rangePool *Pool[[]SlotRange]

	defaultArchetypeCapacity int
	parForEachWorkers        int

	events *listener.Emitter
}

// RegistryConfig holds the few constructor-time tunables this engine has:
// there is no environment or config file to parse (spec §6), so these are
// plain struct fields rather than a parser. The zero value is a valid
// config — every field defaults to "grow on demand"/"GOMAXPROCS".
type RegistryConfig struct {
	// InitialInstanceCapacity pre-reserves room in the entity instance
	// table, avoiding the first doubling-growth step.
	InitialInstanceCapacity int
	// DefaultArchetypeCapacity is used by Registry.CreateArchetype as the
	// minimum capacity for newly materialized archetypes.
	DefaultArchetypeCapacity int
	// ParForEachWorkers bounds Filter.ParForEach's worker pool. 0 means
	// runtime.GOMAXPROCS(0).
	ParForEachWorkers int
	// Events, if non-nil, receives EntityEvent notifications for every
	// entity create/destroy and component add/remove. Nil (the default)
	// means the registry performs no event bookkeeping at all.
	Events *listener.Emitter
}

// NewRegistry returns an empty Registry with the default configuration,
// pre-seeded with the empty archetype (no components).
func NewRegistry() *Registry {
	return NewRegistryWithConfig(RegistryConfig{})
}

// NewRegistryWithConfig returns an empty Registry configured per cfg.
func NewRegistryWithConfig(cfg RegistryConfig) *Registry {
	r := &Registry{
		archetypeStore:           NewArchetypeStore(),
		slotPool:                 NewPool(func() []int { return nil }, func(s []int) []int { return s[:0] }),
		rangePool:                NewPool(func() []SlotRange { return nil }, func(s []SlotRange) []SlotRange { return s[:0] }),
		defaultArchetypeCapacity: cfg.DefaultArchetypeCapacity,
		parForEachWorkers:        cfg.ParForEachWorkers,
		events:                   cfg.Events,
	}
	if cfg.InitialInstanceCapacity > 0 {
		r.reserveEntitySpace(cfg.InitialInstanceCapacity)
	}
	return r
}

// ArchetypeStore exposes the registry's ArchetypeStore, e.g. for
// ArchetypeStore.CreateArchetype calls building archetype handles ahead of
// entity creation.
func (r *Registry) ArchetypeStore() *ArchetypeStore { return r.archetypeStore }

// CreateArchetype is a convenience wrapper around
// ArchetypeStore.CreateArchetypeWithCapacity using the registry's
// configured DefaultArchetypeCapacity.
func (r *Registry) CreateArchetype(components []ComponentType) Archetype {
	return r.archetypeStore.CreateArchetypeWithCapacity(components, r.defaultArchetypeCapacity)
}

// Listener returns the registry's event emitter, or nil if none was
// configured.
func (r *Registry) Listener() *listener.Emitter { return r.events }

// Stats snapshots the registry's current entity, component and archetype
// occupancy for monitoring/debugging.
func (r *Registry) Stats() stats.RegistryStats {
	count := registeredComponentCount()
	types := make([]reflect.Type, 0, count)
	for id := 1; id <= count; id++ {
		if t, ok := componentGoType(ComponentID(id)); ok {
			types = append(types, t)
		}
	}

	archetypes := r.archetypeStore.All()
	archStats := make([]stats.ArchetypeStats, len(archetypes))
	for i, inst := range archetypes {
		componentTypes := inst.Types()
		ids := make([]uint32, len(componentTypes))
		goTypes := make([]reflect.Type, len(componentTypes))
		for j, t := range componentTypes {
			ids[j] = uint32(t.ID())
			if gt, ok := componentGoType(t.ID()); ok {
				goTypes[j] = gt
			}
		}
		archStats[i] = stats.ArchetypeStats{
			Size:           inst.Len(),
			Capacity:       inst.Capacity(),
			Components:     len(componentTypes),
			ComponentIDs:   ids,
			ComponentTypes: goTypes,
		}
	}

	return stats.RegistryStats{
		Entities: stats.EntityStats{
			Used:     r.allocator.Used(),
			Capacity: r.allocator.Capacity(),
			Recycled: r.allocator.Available(),
		},
		ComponentCount: count,
		ComponentTypes: types,
		Archetypes:     archStats,
	}
}

func (r *Registry) publish(e Entity, kind listener.Kind, component ComponentID) {
	if r.events == nil {
		return
	}
	r.events.Publish(listener.EntityEvent{
		EntityIndex:   e.index,
		EntityVersion: e.version,
		Component:     uint32(component),
		Kind:          kind,
	})
}

func (r *Registry) workerLimit() int {
	if r.parForEachWorkers > 0 {
		return r.parForEachWorkers
	}
	return runtime.GOMAXPROCS(0)
}

func (r *Registry) reserveEntitySpace(size int) {
	r.allocator.Reserve(size)
	r.scratch.Reserve(size)
	r.instances = append(r.instances, make([]entityInstance, size)...)
}

func assertEntity(e Entity, instance *entityInstance) {
	if instance.version != e.version {
		panicDestroyedEntity(e)
	}
}

// CreateEntity creates a single entity with no components attached.
func (r *Registry) CreateEntity() Entity {
	return r.CreateEntityFromArchetype(Archetype{})
}

// CreateEntityFromArchetype creates a single entity belonging to archetype.
func (r *Registry) CreateEntityFromArchetype(archetype Archetype) Entity {
	idxRange, ok := r.allocator.TryAllocate(1)
	if !ok {
		capacity := r.allocator.Capacity()
		if capacity < 1 {
			capacity = 1
		}
		r.reserveEntitySpace(capacity)
		idxRange = r.allocator.Allocate(1)
	}
	index := idxRange.Start

	instance := &r.instances[index]
	instance.archetype = archetype.index

	archInst := r.archetypeStore.Get(archetype.index)
	slots := r.rangePool.Get()
	archInst.TakeSlots(1, &slots)
	slot := slots[0].Start
	r.rangePool.Put(slots)

	instance.slot = uint32(slot)

	e := Entity{index: uint32(index), version: instance.version}
	archInst.SetEntity(slot, e)
	r.publish(e, listener.EntityCreated, 0)
	return e
}

func flattenSlotRanges(ranges []SlotRange) []int {
	n := 0
	for _, r := range ranges {
		n += r.Len()
	}
	out := make([]int, 0, n)
	for _, r := range ranges {
		for i := r.Start; i < r.End; i++ {
			out = append(out, i)
		}
	}
	return out
}

// CreateEntitiesFromArchetype creates len(out) entities belonging to
// archetype, writing the new handles into out. The i-th entry of out
// corresponds to the i-th instance slot allocated, in ascending order.
func (r *Registry) CreateEntitiesFromArchetype(archetype Archetype, out []Entity) {
	count := len(out)
	if count == 0 {
		return
	}

	instanceRanges := r.rangePool.Get()
	if deficit, ok := r.allocator.TryAllocateFragmented(count, &instanceRanges); !ok {
		capacity := r.allocator.Capacity()
		target := capacity * 2
		if needed := capacity + deficit; target < needed {
			target = needed
		}
		r.reserveEntitySpace(target - capacity)
		r.allocator.AllocateFragmented(count, &instanceRanges)
	}

	archInst := r.archetypeStore.Get(archetype.index)
	slotRanges := r.rangePool.Get()
	archInst.TakeSlots(count, &slotRanges)

	instanceIndices := flattenSlotRanges(instanceRanges)
	slotIndices := flattenSlotRanges(slotRanges)

	for e := 0; e < count; e++ {
		i := instanceIndices[e]
		s := slotIndices[e]

		instance := &r.instances[i]
		instance.archetype = archetype.index
		instance.slot = uint32(s)

		entity := Entity{index: uint32(i), version: instance.version}
		out[e] = entity
		archInst.SetEntity(s, entity)
		r.publish(entity, listener.EntityCreated, 0)
	}

	r.rangePool.Put(instanceRanges)
	r.rangePool.Put(slotRanges)
}

// CreateEntitiesFromArchetypeN is a convenience wrapper around
// CreateEntitiesFromArchetype that allocates and returns the output slice.
func (r *Registry) CreateEntitiesFromArchetypeN(archetype Archetype, n int) []Entity {
	out := make([]Entity, n)
	r.CreateEntitiesFromArchetype(archetype, out)
	return out
}

// DestroyEntities destroys every entity named in entities. Panics if any
// handle is stale (version mismatch). Entries are flushed to their
// archetype in runs of consecutive entries sharing an archetype; duplicate
// handles for the same entity within one such run are tolerated — the
// archetype's dedup bitfield prevents a double-free. Duplicates split
// across separate runs are not deduplicated at the slot level.
func (r *Registry) DestroyEntities(entities []Entity) {
	r.scratch.Clear()
	slots := r.slotPool.Get()

	lastArchetype := archetypeIndex(0)
	for _, e := range entities {
		instance := &r.instances[e.index]
		assertEntity(e, instance)
		r.scratch.Set(int(e.index), true)
		r.publish(e, listener.EntityDestroyed, 0)

		archetype := instance.archetype
		if archetype != lastArchetype && len(slots) > 0 {
			r.archetypeStore.Get(lastArchetype).ReturnSlots(slots)
			slots = slots[:0]
		}
		lastArchetype = archetype
		slots = append(slots, int(instance.slot))
	}
	if len(slots) > 0 {
		r.archetypeStore.Get(lastArchetype).ReturnSlots(slots)
	}
	r.slotPool.Put(slots)

	r.scratch.IterRanges(func(rng BitRange) bool {
		for i := rng.Start; i < rng.End; i++ {
			r.instances[i].version++
		}
		r.allocator.Free(SlotRange{rng.Start, rng.End})
		return true
	})
}

func (r *Registry) resolve(e Entity) (*entityInstance, *ArchetypeInstance) {
	instance := &r.instances[e.index]
	assertEntity(e, instance)
	return instance, r.archetypeStore.Get(instance.archetype)
}

// GetComponent returns a pointer to entity e's component of type T, or
// false if e's archetype carries no such component. Panics if e is stale.
func GetComponent[T any](r *Registry, e Entity) (*T, bool) {
	instance, archInst := r.resolve(e)
	buf, ok := archInst.GetComponent(ComponentIDFor[T]())
	if !ok {
		return nil, false
	}
	return &TypedSliceUnchecked[T](buf)[instance.slot], true
}

// GetComponentMut is GetComponent; Go pointers are always writable, so
// there is no separate mutable-access path the way there is in a
// borrow-checked language, but the name is kept for parity with the
// engine's documented operation set.
func GetComponentMut[T any](r *Registry, e Entity) (*T, bool) {
	return GetComponent[T](r, e)
}

// AddComponent adds a component of type T to entity e, transitioning it to
// the archetype that is e's current archetype plus T. Returns false (and
// does nothing) if e already has a component of type T.
func AddComponent[T any](r *Registry, e Entity, value T) bool {
	instance := &r.instances[e.index]
	assertEntity(e, instance)

	ctype := componentTypeFor[T]()
	srcInst, dstInst, ok := r.archetypeStore.GetArchetypeTransition(instance.archetype, ctype, transitionAdd)
	if !ok {
		return false
	}

	srcSlot := int(instance.slot)
	slots := r.rangePool.Get()
	dstInst.TakeSlotsNoInit(1, &slots)
	dstSlot := slots[0].Start
	r.rangePool.Put(slots)

	srcInst.CopyComponents(dstInst, srcSlot, dstSlot)
	srcInst.ReturnSlotsNoDrop([]int{srcSlot})

	buf, _ := dstInst.GetComponent(ctype.ID())
	TypedSliceUnchecked[T](buf)[dstSlot] = value

	instance.archetype = dstInst.ID().index
	instance.slot = uint32(dstSlot)
	dstInst.SetEntity(dstSlot, e)
	r.publish(e, listener.ComponentAdded, ctype.ID())
	return true
}

// RemoveComponent removes entity e's component of type T, transitioning it
// to the archetype that is e's current archetype minus T. Returns false
// (and does nothing) if e has no component of type T.
func RemoveComponent[T any](r *Registry, e Entity) bool {
	instance := &r.instances[e.index]
	assertEntity(e, instance)

	ctype := componentTypeFor[T]()
	srcInst, dstInst, ok := r.archetypeStore.GetArchetypeTransition(instance.archetype, ctype, transitionRemove)
	if !ok {
		return false
	}

	srcSlot := int(instance.slot)
	slots := r.rangePool.Get()
	dstInst.TakeSlotsNoInit(1, &slots)
	dstSlot := slots[0].Start
	r.rangePool.Put(slots)

	srcInst.CopyComponents(dstInst, srcSlot, dstSlot)

	if tbuf, ok := srcInst.GetComponent(ctype.ID()); ok {
		tbuf.DropValues(SlotRange{srcSlot, srcSlot + 1})
	}
	srcInst.ReturnSlotsNoDrop([]int{srcSlot})

	instance.archetype = dstInst.ID().index
	instance.slot = uint32(dstSlot)
	dstInst.SetEntity(dstSlot, e)
	r.publish(e, listener.ComponentRemoved, ctype.ID())
	return true
}
