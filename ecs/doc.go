// Package ecs provides ECS adapters for yuletide's phase events.
//
// The primary adapter is [NewDonburiSink], which bridges scene phase changes
// (bloom started, nebula reached, collapse started, tree restored) into a
// [Donburi] world as typed events. Subscribe to [PhaseEventType] in your ECS
// systems to receive them, or read the [PhaseComponent] singleton for the
// latest phase.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
