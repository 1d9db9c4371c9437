package yuletide

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Particle holds the immutable attributes of one particle. Its identity is its
// index within the owning ParticleGroup.
type Particle struct {
	// ShapeA is the position in the collapsed (progress 0) distribution.
	ShapeA Vec3
	// ShapeB is the position in the expanded (progress 1) distribution.
	ShapeB Vec3
	Color  Color
	Kind   ParticleKind
}

// Transform is the per-frame render output for one particle.
type Transform struct {
	Position Vec3
	Scale    float64
}

// ScaleLaw selects how a group computes particle scale each frame.
type ScaleLaw uint8

const (
	ScalePulse  ScaleLaw = iota // gentle per-particle pulsation
	ScaleKinded                 // twinkle or glitter depending on ParticleKind
)

// GroupParams holds the group-specific constants of the per-particle
// animation routine.
type GroupParams struct {
	// Sway adds a slow vertical wave to every particle.
	Sway bool
	// RepulsionRadius is the distance from the hover point inside which
	// particles are pushed away. Zero disables repulsion.
	RepulsionRadius float64
	// RepulsionStrength scales the push at the hover point itself.
	RepulsionStrength float64
	// RotationRate is the spin about the vertical axis, in radians per
	// second, applied near full expansion.
	RotationRate float64
	// ContainerRate is the whole-group spin, in radians per second, applied
	// while resting.
	ContainerRate float64
	// Scale selects the scale law.
	Scale ScaleLaw
}

// PrimaryParams returns the constants of the main tree group.
func PrimaryParams() GroupParams {
	return GroupParams{
		Sway:              true,
		RepulsionRadius:   2.0,
		RepulsionStrength: 1.5,
		RotationRate:      0.1,
		ContainerRate:     0.05,
		Scale:             ScalePulse,
	}
}

// SecondaryParams returns the constants of the garland group. It spins a
// little faster than the tree so the two layers separate visually.
func SecondaryParams() GroupParams {
	return GroupParams{
		RepulsionRadius:   2.5,
		RepulsionStrength: 1.2,
		RotationRate:      0.15,
		ContainerRate:     0.05,
		Scale:             ScaleKinded,
	}
}

// ErrShapeMismatch is returned when the per-particle inputs of a group differ
// in length.
var ErrShapeMismatch = errors.New("yuletide: particle attribute lengths differ")

// ParticleGroup owns a fixed set of particles and a preallocated transform
// buffer that Animate rewrites every frame.
type ParticleGroup struct {
	Name   string
	Params GroupParams

	particles         []Particle
	transforms        []Transform
	containerRotation float64
}

// NewParticleGroup builds a group from matching endpoint shapes and colors.
// kinds may be nil, in which case every particle is KindNone.
func NewParticleGroup(name string, shapeA, shapeB []Vec3, colors []Color, kinds []ParticleKind, params GroupParams) (*ParticleGroup, error) {
	n := len(shapeA)
	if len(shapeB) != n || len(colors) != n || (kinds != nil && len(kinds) != n) {
		return nil, fmt.Errorf("%w: group %q: shapeA=%d shapeB=%d colors=%d kinds=%d",
			ErrShapeMismatch, name, n, len(shapeB), len(colors), len(kinds))
	}
	particles := make([]Particle, n)
	for i := range particles {
		particles[i] = Particle{ShapeA: shapeA[i], ShapeB: shapeB[i], Color: colors[i]}
		if kinds != nil {
			particles[i].Kind = kinds[i]
		}
	}
	g := &ParticleGroup{
		Name:       name,
		Params:     params,
		particles:  particles,
		transforms: make([]Transform, n),
	}
	for i, p := range particles {
		g.transforms[i] = Transform{Position: p.ShapeA, Scale: 1}
	}
	return g, nil
}

// NewTreeGroup builds the primary group: a cone volume blooming into a torus.
func NewTreeGroup(rng *rand.Rand, cfg TreeConfig) (*ParticleGroup, error) {
	return NewParticleGroup("tree",
		ConeVolume(rng, cfg.Count, cfg.Radius, cfg.Height),
		TorusVolume(rng, cfg.Count, cfg.NebulaRadius, cfg.NebulaTube),
		TreeColors(rng, cfg.Count),
		nil,
		cfg.Motion.apply(PrimaryParams()),
	)
}

// NewGarlandGroup builds the secondary group: a spiral garland opening into a
// flat ring of lights and tinsel.
func NewGarlandGroup(rng *rand.Rand, cfg GarlandConfig) (*ParticleGroup, error) {
	colors, kinds := GarlandColors(rng, cfg.Count)
	return NewParticleGroup("garland",
		SpiralBand(rng, cfg.Count, cfg.Radius, cfg.Height, cfg.Turns, cfg.Spread),
		FlatRing(rng, cfg.Count, cfg.RingRadius, cfg.RingTube),
		colors,
		kinds,
		cfg.Motion.apply(SecondaryParams()),
	)
}

// Len returns the fixed particle count.
func (g *ParticleGroup) Len() int {
	return len(g.particles)
}

// Particles returns the immutable particle attributes. The returned slice
// MUST NOT be mutated.
func (g *ParticleGroup) Particles() []Particle {
	return g.particles
}

// Transforms returns the transforms computed by the last Animate call. The
// slice is reused across frames.
func (g *ParticleGroup) Transforms() []Transform {
	return g.transforms
}

// ContainerRotation returns the whole-group rotation about the vertical axis
// computed by the last Animate call.
func (g *ParticleGroup) ContainerRotation() float64 {
	return g.containerRotation
}
