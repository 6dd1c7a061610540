// Package listener provides EntityEvent notifications for registry
// lifecycle operations: entity creation and destruction, and component
// add/remove. It is ambient (spec's hard core excludes event
// notification), wired as a real pub/sub emitter rather than a hand-rolled
// callback list.
//
// EntityEvent carries only plain integers, not ecs.Entity/ecs.Archetype
// handles, so this package has no import-cycle dependency on the ecs
// package it is notified from.
package listener

import "github.com/btvoidx/mint"

// Kind distinguishes the registry operation an EntityEvent reports.
type Kind uint8

const (
	EntityCreated Kind = iota
	EntityDestroyed
	ComponentAdded
	ComponentRemoved
)

func (k Kind) String() string {
	switch k {
	case EntityCreated:
		return "EntityCreated"
	case EntityDestroyed:
		return "EntityDestroyed"
	case ComponentAdded:
		return "ComponentAdded"
	case ComponentRemoved:
		return "ComponentRemoved"
	default:
		return "Unknown"
	}
}

// EntityEvent reports one registry lifecycle operation. Component is the
// affected component's process-wide ID; it is 0 (unset) for
// EntityCreated/EntityDestroyed events.
type EntityEvent struct {
	EntityIndex   uint32
	EntityVersion uint32
	Component     uint32
	Kind          Kind
}

// Emitter is a registry's event bus. The zero value is ready to use.
type Emitter struct {
	bus mint.Emitter
}

// Publish broadcasts evt to every current subscriber.
func (em *Emitter) Publish(evt EntityEvent) {
	mint.Emit(&em.bus, evt)
}

// Subscribe registers fn to be called for every future EntityEvent.
// Calling the returned function removes the subscription.
func (em *Emitter) Subscribe(fn func(EntityEvent)) (unsubscribe func()) {
	return mint.On(&em.bus, fn)
}
