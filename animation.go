package yuletide

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ProgressTween animates a blend progress value towards a target over a fixed
// duration using a gween easing curve. Call Update(dt) each frame.
//
// Overshooting curves such as elastic easing are clamped to [0, 1). Only the
// final frame reports the exact target, so a value of exactly 1 always means
// the tween has finished.
type ProgressTween struct {
	tween  *gween.Tween
	target float64
	value  float64
	Done   bool
}

// NewProgressTween creates a tween from from to to over duration seconds.
func NewProgressTween(from, to float64, duration float32, fn ease.TweenFunc) *ProgressTween {
	if fn == nil {
		fn = ease.Linear
	}
	return &ProgressTween{
		tween:  gween.New(float32(from), float32(to), duration, fn),
		target: to,
		value:  clamp01(from),
	}
}

// Update advances the tween by dt seconds and returns the current value.
// Once Done, further calls return the target unchanged.
func (t *ProgressTween) Update(dt float32) float64 {
	if t.Done {
		return t.value
	}
	val, finished := t.tween.Update(dt)
	if finished {
		t.value = clamp01(t.target)
		t.Done = true
		return t.value
	}
	t.value = min(clamp01(float64(val)), belowOne)
	return t.value
}

// belowOne is the largest float64 less than 1.
var belowOne = math.Nextafter(1, 0)

// Value returns the most recently computed value.
func (t *ProgressTween) Value() float64 {
	return t.value
}

// Target returns the value the tween ends on.
func (t *ProgressTween) Target() float64 {
	return t.target
}

// easings maps configuration names to gween easing curves.
var easings = map[string]ease.TweenFunc{
	"linear":          ease.Linear,
	"quad-in-out":     ease.InOutQuad,
	"cubic-in-out":    ease.InOutCubic,
	"quart-in-out":    ease.InOutQuart,
	"sine-in-out":     ease.InOutSine,
	"expo-in-out":     ease.InOutExpo,
	"elastic-out":     ease.OutElastic,
	"back-out":        ease.OutBack,
	"bounce-out":      ease.OutBounce,
	"cubic-out":       ease.OutCubic,
	"elastic-in-out":  ease.InOutElastic,
	"circular-in-out": ease.InOutCirc,
}

// EaseByName returns the easing curve registered under name.
func EaseByName(name string) (ease.TweenFunc, bool) {
	fn, ok := easings[name]
	return fn, ok
}
