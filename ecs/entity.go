package ecs

// Entity is a lightweight handle naming a row in the Registry's instance
// table. index addresses the instance table; version is the generation at
// creation time. A handle is valid only as long as the instance at
// index still carries the same version — destruction bumps the
// generation, invalidating every outstanding copy of the handle.
type Entity struct {
	index   uint32
	version uint32
}

// Index returns the entity's instance-table index.
func (e Entity) Index() uint32 { return e.index }

// Version returns the entity's generation at creation time.
func (e Entity) Version() uint32 { return e.version }

// IsZero reports whether e is the zero-value Entity. The first entity a
// fresh Registry creates has index 0 and version 0, so it is zero too.
func (e Entity) IsZero() bool { return e.index == 0 && e.version == 0 }

// entityInstance is the registry-internal record a valid Entity handle
// resolves to: which archetype and slot currently hold its components,
// and the generation current clients must match.
type entityInstance struct {
	slot      uint32
	version   uint32
	archetype archetypeIndex
}
