package ecs

import (
	"github.com/phanxgames/evergreen"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TargetEventType is the Donburi event type for target changes.
var TargetEventType = events.NewEventType[evergreen.TargetEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued until ProcessEvents (or events.ProcessAllEvents) runs.
func NewDonburiSink(world donburi.World) evergreen.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitTargetChanged(event evergreen.TargetEvent) {
	TargetEventType.Publish(s.world, event)
}

// TargetCounter is a component that counts received target changes per
// state. Attach it to an entity with Track.
type TargetCounter struct {
	Formed int
	Chaos  int
	Last   evergreen.TreeState
}

// TargetCounterComponent is the Donburi component type of TargetCounter.
var TargetCounterComponent = donburi.NewComponentType[TargetCounter]()

// Track creates an entity holding a TargetCounter and subscribes it to
// TargetEventType. The counter updates whenever events are processed.
func Track(world donburi.World) donburi.Entity {
	entity := world.Create(TargetCounterComponent)
	TargetEventType.Subscribe(world, func(w donburi.World, e evergreen.TargetEvent) {
		if !w.Valid(entity) {
			return
		}
		c := TargetCounterComponent.Get(w.Entry(entity))
		if e.To == evergreen.TreeFormed {
			c.Formed++
		} else {
			c.Chaos++
		}
		c.Last = e.To
	})
	return entity
}
