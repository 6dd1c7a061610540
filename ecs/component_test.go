package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type position struct{ X, Y int }
type rotation struct{ Angle int }
type velocity struct{ X, Y int }

func TestComponentIDStableAndDistinct(t *testing.T) {
	resetComponentRegistryForTests()

	idA := ComponentIDFor[position]()
	idB := ComponentIDFor[rotation]()
	idAAgain := ComponentIDFor[position]()

	assert.NotEqual(t, ComponentID(0), idA)
	assert.NotEqual(t, idA, idB)
	assert.Equal(t, idA, idAAgain)
}

func TestComponentTypeEqualityByIDOnly(t *testing.T) {
	resetComponentRegistryForTests()

	a := componentTypeFor[position]()
	b := componentTypeFor[position]()
	assert.Equal(t, a.ID(), b.ID())
}
