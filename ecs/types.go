package ecs

// archetypeIndex is the dense index of an ArchetypeInstance within an
// ArchetypeStore's backing slice.
type archetypeIndex uint32

// Archetype is a handle to the table backing one distinct set of
// component kinds. It carries no data beyond its index, matching the
// original engine's plain {index} handle: cheap to copy, usable as a map
// key, and comparable by value.
type Archetype struct {
	index archetypeIndex
}

// Index returns the archetype's dense index within its ArchetypeStore.
func (a Archetype) Index() uint32 { return uint32(a.index) }
