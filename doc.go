// Package vela is the module root for the vela archetypal ECS data
// engine. It re-exports nothing; the engine lives in the ecs package, with
// supporting packages ecs/stats, ecs/listener and system.
//
// # Outline
//
//   - [github.com/vela-ecs/vela/ecs] is the core engine: [ecs.Registry]
//     provides entity/component lifecycle with [ecs.Registry.CreateEntity],
//     [ecs.AddComponent], [ecs.RemoveComponent], [ecs.GetComponent];
//     [ecs.Include1]..[ecs.Include8] build queries that iterate matching
//     entities via ForEach/ParForEach/EntitiesForEach.
//   - [github.com/vela-ecs/vela/ecs/stats] provides registry statistics for
//     monitoring purposes.
//   - [github.com/vela-ecs/vela/ecs/listener] provides EntityEvent
//     notifications for registry lifecycle operations.
//   - [github.com/vela-ecs/vela/system] provides SystemOrchestrator, an
//     external collaborator for ordering and running systems against a
//     Registry.
package vela
