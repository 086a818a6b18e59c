package ecs

import (
	"github.com/phanxgames/avg"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for avg pointer events.
var InteractionEventType = events.NewEventType[avg.InteractionEvent]()

// LifecycleEventType is the Donburi event type for lifecycle bus events.
var LifecycleEventType = events.NewEventType[avg.LifecycleEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) avg.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event avg.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// BridgeLifecycle publishes every event posted on bus to LifecycleEventType.
// Remove the returned handles to stop.
func BridgeLifecycle(world donburi.World, bus *avg.Bus) []avg.BusHandle {
	return bus.SubscribeAll(func(ev avg.LifecycleEvent) {
		LifecycleEventType.Publish(world, ev)
	})
}
