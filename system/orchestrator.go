// Package system provides SystemOrchestrator, the external collaborator
// named by the engine's contract (spec §4.8): an ordered list of systems
// plus a small state machine gating when systems may be registered versus
// run. It is not part of the core engine — it is a thin convenience layer
// over *ecs.Registry, kept in its own package so the core has no knowledge
// of "systems" as a concept.
package system

import "github.com/vela-ecs/vela/ecs"

// State is the orchestrator's lifecycle stage.
type State uint8

const (
	Uninitialized State = iota
	Initializing
	Initialized
)

// System is a callable unit of per-tick logic run against a Registry.
type System interface {
	Run(r *ecs.Registry)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(r *ecs.Registry)

// Run calls fn(r).
func (fn SystemFunc) Run(r *ecs.Registry) { fn(r) }

// Orchestrator owns an ordered list of systems and the registry they run
// against. Systems may only be added in Uninitialized; RunSystems may
// only be called once Setup has transitioned the orchestrator to
// Initialized.
type Orchestrator struct {
	registry *ecs.Registry
	systems  []System
	state    State
}

// NewOrchestrator returns an Uninitialized Orchestrator bound to registry.
func NewOrchestrator(registry *ecs.Registry) *Orchestrator {
	return &Orchestrator{registry: registry}
}

// State returns the orchestrator's current lifecycle stage.
func (o *Orchestrator) State() State { return o.state }

// AddSystem appends s to the ordered system list. Panics if the
// orchestrator has left Uninitialized.
func (o *Orchestrator) AddSystem(s System) {
	if o.state != Uninitialized {
		panic("vela/system: system registered after the orchestrator has left Uninitialized")
	}
	o.systems = append(o.systems, s)
}

// Setup transitions Uninitialized -> Initializing -> Initialized. It is a
// no-op if already Initialized. Panics if called while Initializing
// (re-entrant Setup).
func (o *Orchestrator) Setup() {
	switch o.state {
	case Initialized:
		return
	case Initializing:
		panic("vela/system: Setup called while already Initializing")
	}
	o.state = Initializing
	o.state = Initialized
}

// RunSystems invokes every registered system's Run, in registration
// order, against the bound registry. Panics unless the orchestrator is
// Initialized.
func (o *Orchestrator) RunSystems() {
	if o.state != Initialized {
		panic("vela/system: RunSystems called before Setup")
	}
	for _, s := range o.systems {
		s.Run(o.registry)
	}
}
