// Package ecs contains vela's core archetypal data engine.
//
// See the top-level module [github.com/vela-ecs/vela] for an overview.
//
// # Outline
//
//   - [Registry] owns entity and archetype storage, and provides the basic
//     lifecycle operations: [Registry.CreateEntity], [Registry.CreateEntityFromArchetype],
//     [Registry.CreateEntitiesFromArchetypeN], [Registry.DestroyEntities],
//     [AddComponent], [RemoveComponent], [GetComponent], [GetComponentMut].
//   - [ArchetypeStore] interns archetypes by component set and answers
//     [ArchetypeStore.Query] lookups against a cached bitfield index.
//   - [Include1] through [Include8] build typed [Filter1]..[Filter8] queries;
//     chain [Filter1.Exclude] (with [Exclude1]..[Exclude4]) to narrow a query,
//     then drive it with ForEach, ParForEach or EntitiesForEach.
//   - [Registry.Stats] reports entity and archetype occupancy via the
//     ecs/stats package.
//   - [Registry.Listener] exposes an ecs/listener Emitter for entity and
//     component lifecycle notifications.
//
// # Sub-packages
//   - [github.com/vela-ecs/vela/ecs/listener] provides EntityEvent notifications
//     for registry lifecycle operations.
//   - [github.com/vela-ecs/vela/ecs/stats] provides registry statistics for
//     monitoring purposes.
//
// # Manipulation
//
// Simple manipulations of a single entity:
//   - Create an entity: [Registry.CreateEntity], [Registry.CreateEntityFromArchetype]
//   - Destroy entities: [Registry.DestroyEntities]
//   - Add a component: [AddComponent]
//   - Remove a component: [RemoveComponent]
//   - Read/write a component: [GetComponent], [GetComponentMut]
//
// Batch creation of many entities sharing an archetype:
//   - [Registry.CreateEntitiesFromArchetype], [Registry.CreateEntitiesFromArchetypeN]
//
// Querying:
//   - Build a query: [Include1]..[Include8], optionally narrowed with
//     [Filter1.Exclude] (and its sibling arities) using [Exclude1]..[Exclude4]
//   - Sequential iteration: Filter*.ForEach, Filter*.EntitiesForEach
//   - Parallel iteration: Filter*.ParForEach, dispatched over a worker pool
//     sized by [RegistryConfig.ParForEachWorkers] or GOMAXPROCS.
package ecs
