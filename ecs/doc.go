// Package ecs provides ECS adapters for sprout's growth events.
//
// The primary adapter is [NewDonburiStore], which publishes every structural
// change made during growth (segment splits, new branches, branches skipped
// because the arena was full) into a [Donburi] world as typed events.
// Subscribe to [GrowthEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	sim.SetEventSink(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
