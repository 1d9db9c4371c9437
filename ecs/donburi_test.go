package ecs

import (
	"math/rand/v2"
	"testing"

	"github.com/phanxgames/yuletide"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitPhaseEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []yuletide.PhaseEvent
	PhaseEventType.Subscribe(world, func(w donburi.World, e yuletide.PhaseEvent) {
		received = append(received, e)
	})

	sink.EmitPhaseEvent(yuletide.PhaseEvent{
		From: yuletide.PhaseResting,
		To:   yuletide.PhaseTransitioningForward,
		Time: 1.5,
	})
	sink.EmitPhaseEvent(yuletide.PhaseEvent{
		From:     yuletide.PhaseTransitioningForward,
		To:       yuletide.PhaseExpanded,
		Time:     4,
		Progress: 1,
	})

	// Events are queued; process them.
	PhaseEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.To != yuletide.PhaseTransitioningForward || e.Time != 1.5 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.To != yuletide.PhaseExpanded || e.Progress != 1 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_PhaseComponent(t *testing.T) {
	world := donburi.NewWorld()
	if got := CurrentPhase(world); got != yuletide.PhaseResting {
		t.Errorf("empty world phase = %v, want resting", got)
	}

	sink := NewDonburiSink(world)
	sink.EmitPhaseEvent(yuletide.PhaseEvent{To: yuletide.PhaseTransitioningForward, Time: 2})
	sink.EmitPhaseEvent(yuletide.PhaseEvent{To: yuletide.PhaseExpanded, Time: 3, Progress: 1})

	if n := donburi.NewQuery(filter.Contains(PhaseComponent)).Count(world); n != 1 {
		t.Errorf("phase entities = %d, want 1", n)
	}
	if got := CurrentPhase(world); got != yuletide.PhaseExpanded {
		t.Errorf("phase = %v, want expanded", got)
	}
	entry, _ := PhaseComponent.First(world)
	if st := PhaseComponent.Get(entry); st.Since != 3 || st.Progress != 1 {
		t.Errorf("state = %+v", st)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	PhaseEventType.Subscribe(world, func(w donburi.World, e yuletide.PhaseEvent) {
		count1++
	})
	PhaseEventType.Subscribe(world, func(w donburi.World, e yuletide.PhaseEvent) {
		count2++
	})

	sink.EmitPhaseEvent(yuletide.PhaseEvent{To: yuletide.PhaseTransitioningForward})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiSink_SceneIntegration(t *testing.T) {
	cfg := yuletide.DefaultConfig()
	cfg.Tree.Count, cfg.Garland.Count = 10, 10
	cfg.Transitions.Forward.Duration = 0.1
	scene, err := yuletide.NewScene(cfg, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatal(err)
	}
	world := donburi.NewWorld()
	scene.SetEventSink(NewDonburiSink(world))

	var phases []yuletide.Phase
	PhaseEventType.Subscribe(world, func(w donburi.World, e yuletide.PhaseEvent) {
		phases = append(phases, e.To)
	})

	scene.State().SetGesture(yuletide.GestureOpenPalm)
	for i := 0; i < 10; i++ {
		scene.Update(0.05)
	}
	PhaseEventType.ProcessEvents(world)

	if len(phases) != 2 || phases[0] != yuletide.PhaseTransitioningForward || phases[1] != yuletide.PhaseExpanded {
		t.Errorf("phases = %v", phases)
	}
	if CurrentPhase(world) != yuletide.PhaseExpanded {
		t.Errorf("component phase = %v", CurrentPhase(world))
	}
}
