// Package ecs provides ECS adapters for sprout.
package ecs

import (
	"github.com/phanxgames/sprout"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GrowthEventType is the Donburi event type for sprout growth events.
// Subscribe to this in your ECS systems to receive split, branch and
// skipped-branch notifications.
var GrowthEventType = events.NewEventType[sprout.GrowthEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventSink backed by a Donburi world.
// Growth events are published to GrowthEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) sprout.EventSink {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event sprout.GrowthEvent) {
	GrowthEventType.Publish(s.world, event)
}
