package ecs

import (
	"github.com/phanxgames/yuletide"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PhaseEventType is the Donburi event type for yuletide phase changes.
// Subscribe to this in your ECS systems to react to blooms and collapses.
var PhaseEventType = events.NewEventType[yuletide.PhaseEvent]()

// PhaseState is the latest phase change seen by a sink.
type PhaseState struct {
	Phase    yuletide.Phase
	Since    float64
	Progress float64
}

// PhaseComponent tags the singleton entity holding the world's PhaseState.
var PhaseComponent = donburi.NewComponentType[PhaseState]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Phase events are published to PhaseEventType and can be consumed with
// events.Subscribe and ProcessEvents. The sink also keeps a PhaseComponent
// entity up to date, creating it on first use.
func NewDonburiSink(world donburi.World) yuletide.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitPhaseEvent(event yuletide.PhaseEvent) {
	entry, ok := PhaseComponent.First(s.world)
	if !ok {
		entry = s.world.Entry(s.world.Create(PhaseComponent))
	}
	PhaseComponent.SetValue(entry, PhaseState{
		Phase:    event.To,
		Since:    event.Time,
		Progress: event.Progress,
	})
	PhaseEventType.Publish(s.world, event)
}

// CurrentPhase returns the phase recorded in world, or PhaseResting when no
// phase change has been seen yet.
func CurrentPhase(world donburi.World) yuletide.Phase {
	entry, ok := PhaseComponent.First(world)
	if !ok {
		return yuletide.PhaseResting
	}
	return PhaseComponent.Get(entry).Phase
}
