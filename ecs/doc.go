// Package ecs bridges avg into a [Donburi] world.
//
// [NewDonburiStore] publishes pointer interaction events for nodes that carry
// an EntityID. [BridgeLifecycle] republishes the runtime's lifecycle bus so
// systems can react to nodes being created, mounted, updated and removed.
//
// Usage:
//
//	scene.SetEntityStore(ecs.NewDonburiStore(world))
//	handles := ecs.BridgeLifecycle(world, rt.Bus)
//
// Both publish queued events; drain them with events.ProcessAllEvents.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
