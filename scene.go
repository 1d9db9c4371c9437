package yuletide

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"
)

// EventSink is the interface for optional ECS integration.
// When set on a Scene, phase changes are forwarded to the ECS.
type EventSink interface {
	EmitPhaseEvent(event PhaseEvent)
}

// PhaseEvent carries a phase change for the ECS bridge.
type PhaseEvent struct {
	From Phase
	To   Phase
	// Time is the scene clock in seconds when the change happened.
	Time float64
	// Progress is the blend progress at the change.
	Progress float64
}

// Renderer draws the computed particle buffers. It is handed fully animated
// groups and never mutates them.
type Renderer interface {
	DrawGroup(name string, transforms []Transform, particles []Particle, containerRotation float64)
}

// Scene is the top-level object that owns the particle groups, the phase
// controller and the state shared with the gesture loop. Update and Draw must
// be called from a single goroutine.
type Scene struct {
	state   *AppState
	phase   *PhaseController
	groups  []*ParticleGroup
	tracker *HandTracker
	sink    EventSink
	elapsed float64

	// counts the groups were built with; particle counts never change.
	treeCount    int
	garlandCount int

	debug    bool
	debugOut io.Writer
}

// NewScene builds the tree and garland groups from cfg. rng seeds the point
// clouds and palettes; nil uses the global generator.
func NewScene(cfg Config, rng *rand.Rand) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	forward, err := cfg.Transitions.Forward.Params()
	if err != nil {
		return nil, err
	}
	backward, err := cfg.Transitions.Backward.Params()
	if err != nil {
		return nil, err
	}
	tree, err := NewTreeGroup(rng, cfg.Tree)
	if err != nil {
		return nil, fmt.Errorf("new scene: %w", err)
	}
	garland, err := NewGarlandGroup(rng, cfg.Garland)
	if err != nil {
		return nil, fmt.Errorf("new scene: %w", err)
	}

	s := &Scene{
		state:        NewAppState(),
		phase:        NewPhaseController(forward, backward),
		groups:       []*ParticleGroup{tree, garland},
		treeCount:    cfg.Tree.Count,
		garlandCount: cfg.Garland.Count,
		debugOut:     os.Stderr,
	}
	s.phase.OnPhaseChange = s.phaseChanged
	return s, nil
}

// State returns the state shared with the gesture loop.
func (s *Scene) State() *AppState { return s.state }

// Phase returns the current display phase.
func (s *Scene) Phase() Phase { return s.phase.Phase() }

// Progress returns the current blend progress in [0, 1].
func (s *Scene) Progress() float64 { return s.phase.Progress() }

// Elapsed returns the scene clock in seconds.
func (s *Scene) Elapsed() float64 { return s.elapsed }

// Groups returns the scene's particle groups, tree first. The returned slice
// MUST NOT be mutated.
func (s *Scene) Groups() []*ParticleGroup { return s.groups }

// Update advances the scene by dt seconds: it reads the latest gesture,
// drives the phase controller and recomputes every group's transforms.
func (s *Scene) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}
	var stats debugStats
	var t0 time.Time

	if s.debug {
		t0 = time.Now()
	}

	s.phase.HandleGesture(s.state.Gesture())
	s.phase.Update(float32(dt))
	s.elapsed += dt

	if s.debug {
		stats.gestureTime = time.Since(t0)
		t0 = time.Now()
	}

	f := FrameInput{
		Time:     s.elapsed,
		Progress: s.phase.Progress(),
		Phase:    s.phase.Phase(),
	}
	if f.Phase == PhaseResting {
		f.Hover = s.state.Hover()
	}
	for _, g := range s.groups {
		g.Animate(f)
	}

	if s.debug {
		stats.animateTime = time.Since(t0)
		stats.groupCount = len(s.groups)
		for _, g := range s.groups {
			stats.particleCount += g.Len()
		}
		stats.phase = f.Phase
		stats.progress = f.Progress
		s.debugLog(stats)
	}
}

// Draw hands every group's buffers to r, tree first.
func (s *Scene) Draw(r Renderer) {
	for _, g := range s.groups {
		r.DrawGroup(g.Name, g.Transforms(), g.Particles(), g.ContainerRotation())
	}
}

// SetHover sets the interaction point that repels collapsed particles. It is
// ignored unless the scene is resting.
func (s *Scene) SetHover(p Vec3) {
	if s.phase.Phase() != PhaseResting {
		return
	}
	s.state.setHover(p)
}

// ClearHover removes the interaction point.
func (s *Scene) ClearHover() {
	s.state.clearHover()
}

// SetEventSink sets the optional ECS bridge.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

func (s *Scene) phaseChanged(from, to Phase) {
	if to != PhaseResting {
		s.state.clearHover()
	}
	if s.sink != nil {
		s.sink.EmitPhaseEvent(PhaseEvent{
			From:     from,
			To:       to,
			Time:     s.elapsed,
			Progress: s.phase.Progress(),
		})
	}
}

// SetTracker attaches the gesture loop that publishes into the scene's
// state. Replacing a running tracker fails with ErrTrackerRunning.
func (s *Scene) SetTracker(t *HandTracker) error {
	if s.tracker != nil && s.tracker.Running() {
		return ErrTrackerRunning
	}
	s.tracker = t
	return nil
}

// Tracker returns the attached tracker, or nil.
func (s *Scene) Tracker() *HandTracker { return s.tracker }

// SetCameraEnabled switches gesture input on or off without blocking.
// Switching on without a tracker, or after the hand model failed, returns the
// error right away. Camera and model failures found while the tracker starts
// up are reported through its Status and Err and switch the camera flag back
// off; the scene keeps animating either way.
func (s *Scene) SetCameraEnabled(ctx context.Context, on bool) error {
	if !on {
		if s.tracker == nil {
			s.state.setCameraEnabled(false)
			s.state.SetGesture(GestureNone)
			return nil
		}
		return s.tracker.Disable()
	}
	if s.tracker == nil {
		s.state.SetGesture(GestureNone)
		return fmt.Errorf("%w: no tracker attached", ErrCameraUnavailable)
	}
	return s.tracker.Enable(ctx)
}

// ToggleCamera flips gesture input and reports the new setting.
func (s *Scene) ToggleCamera(ctx context.Context) (bool, error) {
	on := !s.state.CameraEnabled()
	if err := s.SetCameraEnabled(ctx, on); err != nil {
		return s.state.CameraEnabled(), err
	}
	return on, nil
}

// ApplyConfig applies a reloaded config: transition curves and motion
// constants take effect immediately. Particle counts and shapes are fixed for
// the scene's lifetime, so changes to them are logged and ignored.
func (s *Scene) ApplyConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	forward, err := cfg.Transitions.Forward.Params()
	if err != nil {
		return err
	}
	backward, err := cfg.Transitions.Backward.Params()
	if err != nil {
		return err
	}
	s.phase.SetTransitions(forward, backward)

	for _, g := range s.groups {
		switch g.Name {
		case "tree":
			g.Params = cfg.Tree.Motion.apply(g.Params)
		case "garland":
			g.Params = cfg.Garland.Motion.apply(g.Params)
		}
	}
	if cfg.Tree.Count != s.treeCount || cfg.Garland.Count != s.garlandCount {
		logger("config").Warn("particle counts are fixed; ignoring count change",
			"tree", cfg.Tree.Count, "garland", cfg.Garland.Count)
	}
	return nil
}

// Close stops the gesture loop, if any.
func (s *Scene) Close() error {
	s.state.setCameraEnabled(false)
	if s.tracker == nil {
		return nil
	}
	return s.tracker.Disable()
}
