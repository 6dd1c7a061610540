package ecs

import "github.com/kamstrup/intmap"

// transitionKind distinguishes an add-component transition from a
// remove-component transition sharing the same (archetype, component) key
// space.
type transitionKind uint8

const (
	transitionAdd transitionKind = iota
	transitionRemove
)

// transitionKey packs (archetype, component, kind) into a single uint64,
// mirroring the original's custom Hash impl (kind | archetype<<33 |
// component<<1) — cheap and collision-free given the field widths.
func transitionKey(arch archetypeIndex, id ComponentID, kind transitionKind) uint64 {
	return uint64(kind) | uint64(arch)<<33 | uint64(id)<<1
}

// ArchetypeStore owns every ArchetypeInstance for a Registry: a bitfield →
// Archetype dedup map so identical component sets always resolve to the
// same table, a transition cache memoizing add/remove-component moves, and
// a per-EntityQuery cache of matching archetype indices.
type ArchetypeStore struct {
	scratch       BitField
	instances     []*ArchetypeInstance
	byBitfield    map[uint64][]bitfieldEntry // hash bucket, since BitField isn't a comparable Go map key
	queries       *intmap.Map[uint64, []archetypeIndex]
	queriesActive []EntityQuery // every query this store has ever been asked about, for match-list maintenance
	transitions   *intmap.Map[uint64, archetypeIndex]
}

type bitfieldEntry struct {
	bits BitField
	arch Archetype
}

// NewArchetypeStore returns a store pre-seeded with the empty archetype
// (index 0, no components) — every entity with no components lives there.
func NewArchetypeStore() *ArchetypeStore {
	s := &ArchetypeStore{
		byBitfield:  make(map[uint64][]bitfieldEntry),
		queries:     intmap.New[uint64, []archetypeIndex](16),
		transitions: intmap.New[uint64, archetypeIndex](64),
	}
	empty := NewArchetypeInstance(Archetype{index: 0}, nil, 0)
	s.instances = append(s.instances, empty)
	s.indexBitfield(empty.Bitfield(), Archetype{index: 0})
	return s
}

func (s *ArchetypeStore) indexBitfield(bf *BitField, arch Archetype) {
	h := bf.Hash()
	s.byBitfield[h] = append(s.byBitfield[h], bitfieldEntry{bits: bf.Clone(), arch: arch})
}

func (s *ArchetypeStore) lookupBitfield(bf *BitField) (Archetype, bool) {
	for _, e := range s.byBitfield[bf.Hash()] {
		if e.bits.Equal(bf) {
			return e.arch, true
		}
	}
	return Archetype{}, false
}

// Get returns the ArchetypeInstance at index.
func (s *ArchetypeStore) Get(index archetypeIndex) *ArchetypeInstance {
	return s.instances[index]
}

// GetByHandle returns the ArchetypeInstance for handle.
func (s *ArchetypeStore) GetByHandle(a Archetype) *ArchetypeInstance {
	return s.instances[a.index]
}

// Len returns the number of archetypes materialized so far.
func (s *ArchetypeStore) Len() int { return len(s.instances) }

// All returns every materialized ArchetypeInstance, in creation order.
func (s *ArchetypeStore) All() []*ArchetypeInstance { return s.instances }

// CreateArchetype returns the Archetype containing exactly the given
// (already deduplicated) component types, creating a new ArchetypeInstance
// if no existing archetype has that exact component set, and matching it
// against every already-cached query.
func (s *ArchetypeStore) CreateArchetype(components []ComponentType) Archetype {
	return s.CreateArchetypeWithCapacity(components, 0)
}

// CreateArchetypeWithCapacity is CreateArchetype but also ensures the
// resulting (possibly pre-existing) archetype has at least minCapacity.
func (s *ArchetypeStore) CreateArchetypeWithCapacity(components []ComponentType, minCapacity int) Archetype {
	s.scratch.Clear()
	for _, t := range components {
		s.scratch.Set(int(t.ID()), true)
	}

	if arch, ok := s.lookupBitfield(&s.scratch); ok {
		s.instances[arch.index].EnsureCapacity(minCapacity)
		return arch
	}

	arch := Archetype{index: archetypeIndex(len(s.instances))}
	instance := NewArchetypeInstance(arch, components, minCapacity)
	s.instances = append(s.instances, instance)
	s.indexBitfield(instance.Bitfield(), arch)

	for _, q := range s.queriesActive {
		data := getQueryData(q)
		if !matchesQuery(instance.Bitfield(), data) {
			continue
		}
		indices, _ := s.queries.Get(uint64(q.index))
		indices = append(indices, arch.index)
		s.queries.Put(uint64(q.index), indices)
	}

	return arch
}

// Query returns the archetype indices currently matching q, computing and
// caching the match list on first use.
func (s *ArchetypeStore) Query(q EntityQuery) []archetypeIndex {
	key := uint64(q.index)
	if indices, ok := s.queries.Get(key); ok {
		return indices
	}
	return s.initQuery(q)
}

func (s *ArchetypeStore) initQuery(q EntityQuery) []archetypeIndex {
	data := getQueryData(q)
	var indices []archetypeIndex
	for i, inst := range s.instances {
		if matchesQuery(inst.Bitfield(), data) {
			indices = append(indices, archetypeIndex(i))
		}
	}
	s.queries.Put(uint64(q.index), indices)
	s.queriesActive = append(s.queriesActive, q)
	return indices
}

// GetArchetypeTransition returns the (source, destination) ArchetypeInstance
// pair for adding or removing a single component from src, memoizing the
// result. ok is false iff the transition is a no-op (adding a component src
// already has, or removing one it doesn't).
func (s *ArchetypeStore) GetArchetypeTransition(src archetypeIndex, component ComponentType, kind transitionKind) (*ArchetypeInstance, *ArchetypeInstance, bool) {
	key := transitionKey(src, component.ID(), kind)
	if dst, ok := s.transitions.Get(key); ok {
		return s.instances[src], s.instances[dst], true
	}

	srcInst := s.instances[src]
	has := srcInst.Bitfield().Get(int(component.ID()))

	switch kind {
	case transitionAdd:
		if has {
			return srcInst, nil, false
		}
		components := append(append([]ComponentType(nil), srcInst.Types()...), component)
		dst := s.CreateArchetype(components)
		s.transitions.Put(key, dst.index)
		return srcInst, s.instances[dst.index], true

	case transitionRemove:
		if !has {
			return srcInst, nil, false
		}
		components := make([]ComponentType, 0, len(srcInst.Types())-1)
		for _, t := range srcInst.Types() {
			if t.ID() != component.ID() {
				components = append(components, t)
			}
		}
		dst := s.CreateArchetype(components)
		s.transitions.Put(key, dst.index)
		return srcInst, s.instances[dst.index], true
	}

	panic("vela/ecs: unreachable transition kind")
}
