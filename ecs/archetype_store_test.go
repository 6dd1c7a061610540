package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArchetypeStoreCreateArchetypeDedupes(t *testing.T) {
	resetComponentRegistryForTests()
	posType := componentTypeFor[position]()
	rotType := componentTypeFor[rotation]()

	store := NewArchetypeStore()
	a1 := store.CreateArchetype([]ComponentType{posType, rotType})
	a2 := store.CreateArchetype([]ComponentType{posType, rotType})
	assert.Equal(t, a1, a2)
	assert.Equal(t, 2, store.Len()) // empty archetype + this one
}

func TestArchetypeStoreQueryMatchesExistingArchetypes(t *testing.T) {
	resetComponentRegistryForTests()
	resetQueryRegistryForTests()
	posType := componentTypeFor[position]()
	rotType := componentTypeFor[rotation]()
	velType := componentTypeFor[velocity]()

	store := NewArchetypeStore()
	alpha := store.CreateArchetype([]ComponentType{posType})          // {A}
	beta := store.CreateArchetype([]ComponentType{posType, rotType})  // {A,B}
	gamma := store.CreateArchetype([]ComponentType{posType, velType}) // {A,C}

	q := getOrCreateQuery([]ComponentID{posType.ID()}, []ComponentID{rotType.ID()})
	matches := store.Query(q)

	assert.Contains(t, matches, alpha.index)
	assert.Contains(t, matches, gamma.index)
	assert.NotContains(t, matches, beta.index)
}

func TestArchetypeStoreQueryUpdatesOnLateMaterialization(t *testing.T) {
	resetComponentRegistryForTests()
	resetQueryRegistryForTests()
	posType := componentTypeFor[position]()
	rotType := componentTypeFor[rotation]()
	velType := componentTypeFor[velocity]()

	store := NewArchetypeStore()
	alpha := store.CreateArchetype([]ComponentType{posType})
	gamma := store.CreateArchetype([]ComponentType{posType, velType})

	q := getOrCreateQuery([]ComponentID{posType.ID()}, []ComponentID{rotType.ID()})
	first := store.Query(q)
	assert.Contains(t, first, alpha.index)
	assert.Contains(t, first, gamma.index)
	assert.Len(t, first, 2)

	beta := store.CreateArchetype([]ComponentType{posType, rotType})
	second := store.Query(q)
	assert.NotContains(t, second, beta.index)
	assert.Len(t, second, 2)
}

func TestArchetypeStoreTransitionAddThenRemoveRoundTrips(t *testing.T) {
	resetComponentRegistryForTests()
	posType := componentTypeFor[position]()
	rotType := componentTypeFor[rotation]()

	store := NewArchetypeStore()
	alpha := store.CreateArchetype([]ComponentType{posType})

	src, dst, ok := store.GetArchetypeTransition(alpha.index, rotType, transitionAdd)
	assert.True(t, ok)
	assert.True(t, dst.Bitfield().Get(int(rotType.ID())))
	assert.Same(t, src, store.Get(alpha.index))

	backSrc, backDst, ok := store.GetArchetypeTransition(dst.ID().index, rotType, transitionRemove)
	assert.True(t, ok)
	assert.Equal(t, alpha, backDst.ID())
	assert.Same(t, backSrc, dst)
}

func TestArchetypeStoreTransitionNoOpWhenAlreadyPresent(t *testing.T) {
	resetComponentRegistryForTests()
	posType := componentTypeFor[position]()

	store := NewArchetypeStore()
	alpha := store.CreateArchetype([]ComponentType{posType})

	_, _, ok := store.GetArchetypeTransition(alpha.index, posType, transitionAdd)
	assert.False(t, ok)

	empty := store.Get(0)
	_, _, ok = store.GetArchetypeTransition(empty.ID().index, posType, transitionRemove)
	assert.False(t, ok)
}
