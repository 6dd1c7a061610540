// Package stats provides snapshot statistics for a Registry, for
// monitoring/debugging purposes. It holds no logic of its own; Registry.Stats
// in the ecs package builds one of these from live registry state.
package stats

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// RegistryStats snapshots a Registry's entity, component and archetype
// counts at the moment it was taken.
type RegistryStats struct {
	Entities       EntityStats
	ComponentCount int
	ComponentTypes []reflect.Type
	Archetypes     []ArchetypeStats
}

// EntityStats reports the registry's instance-table occupancy.
type EntityStats struct {
	// Used is the number of currently live entities.
	Used int
	// Capacity is the instance table's current capacity.
	Capacity int
	// Recycled is the number of free instance slots (freed ones plus
	// reserved ones not yet used) available before the table must grow.
	Recycled int
}

// ArchetypeStats reports one archetype's occupancy and component makeup.
type ArchetypeStats struct {
	Size           int
	Capacity       int
	Components     int
	ComponentIDs   []uint32
	ComponentTypes []reflect.Type
}

// String renders a multi-line summary: the registered component set, entity
// occupancy, then one line per archetype sorted by descending entity count
// (the archetypes holding the most live data read first).
func (s *RegistryStats) String() string {
	registered := make([]string, len(s.ComponentTypes))
	for i, tp := range s.ComponentTypes {
		registered[i] = tp.Name()
	}

	order := make([]int, len(s.Archetypes))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return s.Archetypes[order[i]].Size > s.Archetypes[order[j]].Size
	})

	b := strings.Builder{}
	fmt.Fprintf(&b, "registry: %d component kind(s), %d archetype(s)\n", s.ComponentCount, len(s.Archetypes))
	fmt.Fprintf(&b, "  registered: %s\n", strings.Join(registered, ", "))
	fmt.Fprintf(&b, "  %s\n", s.Entities.String())
	for _, i := range order {
		fmt.Fprintf(&b, "  %s\n", s.Archetypes[i].String())
	}
	return b.String()
}

// String renders entity occupancy as used/capacity plus a percentage, with
// the recycled (free, awaiting use) count called out separately.
func (s *EntityStats) String() string {
	pct := 0.0
	if s.Capacity > 0 {
		pct = 100 * float64(s.Used) / float64(s.Capacity)
	}
	return fmt.Sprintf("entities: %d/%d used (%.1f%%), %d recycled", s.Used, s.Capacity, pct, s.Recycled)
}

// String renders one archetype's component makeup as id:type pairs,
// alongside its occupancy.
func (s *ArchetypeStats) String() string {
	pairs := make([]string, len(s.ComponentIDs))
	for i, id := range s.ComponentIDs {
		name := "?"
		if i < len(s.ComponentTypes) && s.ComponentTypes[i] != nil {
			name = s.ComponentTypes[i].Name()
		}
		pairs[i] = fmt.Sprintf("%d:%s", id, name)
	}
	return fmt.Sprintf("archetype[%s]: %d/%d entities", strings.Join(pairs, ","), s.Size, s.Capacity)
}
