// Package ecs provides ECS adapters for evergreen.
//
// [NewDonburiSink] publishes every target change of a scene into a [Donburi]
// world as a typed event. Subscribe to [TargetEventType] in your systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene, err := evergreen.NewScene(cfg, evergreen.WithEventSink(sink))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
