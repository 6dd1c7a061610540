package system_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vela-ecs/vela/ecs"
	"github.com/vela-ecs/vela/system"
)

func TestOrchestratorRunsSystemsInOrder(t *testing.T) {
	r := ecs.NewRegistry()
	o := system.NewOrchestrator(r)

	var order []int
	o.AddSystem(system.SystemFunc(func(r *ecs.Registry) { order = append(order, 1) }))
	o.AddSystem(system.SystemFunc(func(r *ecs.Registry) { order = append(order, 2) }))

	o.Setup()
	o.RunSystems()

	assert.Equal(t, []int{1, 2}, order)
}

func TestOrchestratorRejectsAddSystemAfterSetup(t *testing.T) {
	r := ecs.NewRegistry()
	o := system.NewOrchestrator(r)
	o.Setup()

	assert.Panics(t, func() {
		o.AddSystem(system.SystemFunc(func(r *ecs.Registry) {}))
	})
}

func TestOrchestratorRejectsRunSystemsBeforeSetup(t *testing.T) {
	r := ecs.NewRegistry()
	o := system.NewOrchestrator(r)

	assert.Panics(t, func() {
		o.RunSystems()
	})
}

func TestOrchestratorSetupIsIdempotentOnceInitialized(t *testing.T) {
	r := ecs.NewRegistry()
	o := system.NewOrchestrator(r)
	o.Setup()
	assert.Equal(t, system.Initialized, o.State())
	o.Setup()
	assert.Equal(t, system.Initialized, o.State())
}
