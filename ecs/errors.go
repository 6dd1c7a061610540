package ecs

import "fmt"

// The functions in this file build the panic messages for the engine's
// programming-error class (spec §7): conditions a cooperative, in-process
// client should never trigger, and which are therefore not worth plumbing
// through error returns.

func panicDestroyedEntity(e Entity) {
	panic(fmt.Sprintf("vela/ecs: entity %v is destroyed (version mismatch)", e))
}

func panicDuplicateIncludeType(id ComponentID) {
	panic(fmt.Sprintf("vela/ecs: query include tuple contains component id %d more than once", id))
}
