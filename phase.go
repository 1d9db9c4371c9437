package yuletide

import (
	"github.com/tanema/gween/ease"
)

// TransitionParams configures one eased phase transition.
type TransitionParams struct {
	// Duration of the transition in seconds.
	Duration float32
	// Ease is the curve applied over the duration.
	Ease ease.TweenFunc
}

var (
	// DefaultForward blooms the tree into the nebula with an elastic overshoot.
	DefaultForward = TransitionParams{Duration: 2.5, Ease: ease.OutElastic}
	// DefaultBackward collapses the nebula with a smooth ease-in-out.
	DefaultBackward = TransitionParams{Duration: 2, Ease: ease.InOutQuart}
)

// PhaseController is the finite-state machine behind the display phase. It
// cycles Resting -> TransitioningForward -> Expanded -> TransitioningBackward
// -> Resting and owns the eased progress value.
//
// Gestures only start transitions from the two resting states; transitions
// always run to completion. Not safe for concurrent use.
type PhaseController struct {
	phase    Phase
	progress float64
	tween    *ProgressTween

	forward  TransitionParams
	backward TransitionParams

	// OnPhaseChange, if set, is called after every phase change.
	OnPhaseChange func(from, to Phase)
}

// NewPhaseController returns a controller in PhaseResting with progress 0.
func NewPhaseController(forward, backward TransitionParams) *PhaseController {
	return &PhaseController{
		forward:  forward,
		backward: backward,
	}
}

// Phase returns the current phase.
func (c *PhaseController) Phase() Phase {
	return c.phase
}

// Progress returns the current blend progress in [0, 1].
func (c *PhaseController) Progress() float64 {
	return c.progress
}

// Target returns the progress value the current phase is heading to or
// holding: 1 while transitioning forward or expanded, 0 otherwise.
func (c *PhaseController) Target() float64 {
	switch c.phase {
	case PhaseTransitioningForward, PhaseExpanded:
		return 1
	default:
		return 0
	}
}

// SetTransitions replaces the transition parameters. A transition already in
// flight keeps the parameters it started with.
func (c *PhaseController) SetTransitions(forward, backward TransitionParams) {
	c.forward = forward
	c.backward = backward
}

// HandleGesture applies a gesture signal and reports whether it started a
// transition. An open palm blooms a resting tree; a closed fist collapses an
// expanded nebula. Every other combination is ignored.
func (c *PhaseController) HandleGesture(g Gesture) bool {
	switch {
	case g == GestureOpenPalm && c.phase == PhaseResting:
		c.begin(PhaseTransitioningForward, 1, c.forward)
	case g == GestureClosedFist && c.phase == PhaseExpanded:
		c.begin(PhaseTransitioningBackward, 0, c.backward)
	default:
		return false
	}
	return true
}

// Update advances the active transition by dt seconds. When the transition
// completes, progress lands exactly on its boundary and the phase moves to
// the matching resting state.
func (c *PhaseController) Update(dt float32) {
	if c.tween == nil {
		return
	}
	c.progress = c.tween.Update(dt)
	if !c.tween.Done {
		return
	}
	c.tween = nil
	switch c.phase {
	case PhaseTransitioningForward:
		c.progress = 1
		c.setPhase(PhaseExpanded)
	case PhaseTransitioningBackward:
		c.progress = 0
		c.setPhase(PhaseResting)
	}
}

func (c *PhaseController) begin(next Phase, target float64, p TransitionParams) {
	c.tween = NewProgressTween(c.progress, target, p.Duration, p.Ease)
	c.setPhase(next)
}

func (c *PhaseController) setPhase(next Phase) {
	prev := c.phase
	c.phase = next
	logger("phase").Info("phase change", "from", prev, "to", next, "progress", c.progress)
	if c.OnPhaseChange != nil {
		c.OnPhaseChange(prev, next)
	}
}
