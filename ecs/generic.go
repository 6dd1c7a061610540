package ecs

// exclusion is the value produced by Exclude1..Exclude4: a set of
// component IDs attached to a Filter via its Exclude method. Go has no
// const-generic phantom types the way the original EntityFilter builder
// does, so the exclude tuple is captured as a plain value instead of a
// type parameter threaded through the filter's own type.
type exclusion struct {
	ids []ComponentID
}

// Exclude1 builds a one-component exclusion set.
func Exclude1[A any]() exclusion {
	return exclusion{ids: []ComponentID{ComponentIDFor[A]()}}
}

// Exclude2 builds a two-component exclusion set.
func Exclude2[A, B any]() exclusion {
	return exclusion{ids: []ComponentID{ComponentIDFor[A](), ComponentIDFor[B]()}}
}

// Exclude3 builds a three-component exclusion set.
func Exclude3[A, B, C any]() exclusion {
	return exclusion{ids: []ComponentID{ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C]()}}
}

// Exclude4 builds a four-component exclusion set.
func Exclude4[A, B, C, D any]() exclusion {
	return exclusion{ids: []ComponentID{
		ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C](), ComponentIDFor[D](),
	}}
}
