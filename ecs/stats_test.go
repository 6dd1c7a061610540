package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryStatsReportsOccupancy(t *testing.T) {
	r := newTestRegistry(t)
	posType := componentTypeFor[position]()
	rotType := componentTypeFor[rotation]()
	arch := r.CreateArchetype([]ComponentType{posType, rotType})

	entities := r.CreateEntitiesFromArchetypeN(arch, 7)
	r.DestroyEntities(entities[:2])

	snap := r.Stats()
	assert.Equal(t, 5, snap.Entities.Used)
	assert.GreaterOrEqual(t, snap.Entities.Recycled, 2)
	assert.Equal(t, 2, snap.ComponentCount)

	found := false
	for _, a := range snap.Archetypes {
		if a.Components == 2 {
			assert.Equal(t, 5, a.Size)
			found = true
		}
	}
	assert.True(t, found)
}
