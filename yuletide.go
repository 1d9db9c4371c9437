package yuletide

import "math"

// Vec3 is a 3D vector used for particle positions and the hover point.
// Y is the vertical axis.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Lerp interpolates componentwise from v to o by t.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{lerp(v.X, o.X, t), lerp(v.Y, o.Y, t), lerp(v.Z, o.Z, t)}
}

// RotateY rotates v about the vertical axis by angle radians.
func (v Vec3) RotateY(angle float64) Vec3 {
	sin, cos := math.Sincos(angle)
	return Vec3{v.X*cos - v.Z*sin, v.Y, v.X*sin + v.Z*cos}
}

// Color is an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// ColorWhite is full-intensity white.
var ColorWhite = Color{1, 1, 1}

// Phase is the discrete display mode of the scene.
type Phase uint8

const (
	PhaseResting               Phase = iota // collapsed tree, progress 0
	PhaseTransitioningForward                // blooming towards the nebula
	PhaseExpanded                            // nebula, progress 1
	PhaseTransitioningBackward               // collapsing back into the tree
)

func (p Phase) String() string {
	switch p {
	case PhaseResting:
		return "resting"
	case PhaseTransitioningForward:
		return "transitioning-forward"
	case PhaseExpanded:
		return "expanded"
	case PhaseTransitioningBackward:
		return "transitioning-backward"
	default:
		return "unknown"
	}
}

// Gesture is the classification of a single frame of hand keypoints.
// The underlying type is int32 so it can be stored atomically.
type Gesture int32

const (
	GestureNone       Gesture = iota // no hand, or an ambiguous pose
	GestureOpenPalm                  // four fingers extended
	GestureClosedFist                // at most one finger extended
)

func (g Gesture) String() string {
	switch g {
	case GestureNone:
		return "none"
	case GestureOpenPalm:
		return "open-palm"
	case GestureClosedFist:
		return "closed-fist"
	default:
		return "unknown"
	}
}

// ParticleKind selects the scale law of a particle in a kinded group.
type ParticleKind uint8

const (
	KindNone   ParticleKind = iota // no category; kinded groups treat it as tinsel
	KindTinsel                     // fast, small glitter
	KindLight                      // slow, large twinkle
)

func (k ParticleKind) String() string {
	switch k {
	case KindTinsel:
		return "tinsel"
	case KindLight:
		return "light"
	default:
		return "none"
	}
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clamp01 clamps v into [0, 1].
func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
