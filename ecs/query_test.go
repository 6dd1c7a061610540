package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetOrCreateQueryInternsByStructuralIdentity(t *testing.T) {
	resetComponentRegistryForTests()
	resetQueryRegistryForTests()

	idPos := componentTypeFor[position]().ID()
	idRot := componentTypeFor[rotation]().ID()
	idVel := componentTypeFor[velocity]().ID()

	q1 := getOrCreateQuery([]ComponentID{idPos}, []ComponentID{idRot})
	q2 := getOrCreateQuery([]ComponentID{idPos}, []ComponentID{idRot})
	assert.Equal(t, q1, q2)

	q3 := getOrCreateQuery([]ComponentID{idPos}, []ComponentID{idVel})
	assert.NotEqual(t, q1, q3)
}

func TestGetOrCreateQueryPanicsOnDuplicateInclude(t *testing.T) {
	resetComponentRegistryForTests()
	resetQueryRegistryForTests()

	idPos := componentTypeFor[position]().ID()
	assert.Panics(t, func() {
		getOrCreateQuery([]ComponentID{idPos, idPos}, nil)
	})
}

func TestMatchesQueryIncludeExcludeSemantics(t *testing.T) {
	resetComponentRegistryForTests()
	resetQueryRegistryForTests()

	idPos := componentTypeFor[position]().ID()
	idRot := componentTypeFor[rotation]().ID()
	idVel := componentTypeFor[velocity]().ID()

	q := getOrCreateQuery([]ComponentID{idPos}, []ComponentID{idRot})
	data := getQueryData(q)

	alpha := bitfieldFor([]ComponentID{idPos})
	beta := bitfieldFor([]ComponentID{idPos, idRot})
	gamma := bitfieldFor([]ComponentID{idPos, idVel})

	assert.True(t, matchesQuery(&alpha, data))
	assert.False(t, matchesQuery(&beta, data))
	assert.True(t, matchesQuery(&gamma, data))
}

func TestArchetypeStoreQueryMatchesNewlyMaterializedArchetypes(t *testing.T) {
	r := newTestRegistry(t)
	store := r.ArchetypeStore()

	posType := componentTypeFor[position]()
	rotType := componentTypeFor[rotation]()
	velType := componentTypeFor[velocity]()

	alpha := r.CreateArchetype([]ComponentType{posType})

	q := getOrCreateQuery([]ComponentID{posType.ID()}, []ComponentID{rotType.ID()})
	matches := store.Query(q)
	assert.Contains(t, matches, archetypeIndex(alpha.Index()))

	beta := r.CreateArchetype([]ComponentType{posType, rotType})
	matches = store.Query(q)
	assert.NotContains(t, matches, archetypeIndex(beta.Index()))

	gamma := r.CreateArchetype([]ComponentType{posType, velType})
	matches = store.Query(q)
	assert.Contains(t, matches, archetypeIndex(gamma.Index()))
}
