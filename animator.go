package yuletide

import "math"

const (
	// Repulsion only acts near full collapse.
	repulsionCutoff = 0.1
	// Orbital rotation only acts near full expansion.
	rotationThreshold = 0.9

	swayFrequency = 0.5
	swayAmplitude = 0.1

	pulseFrequency = 2.0
	pulseAmplitude = 0.2
	pulseBonus     = 0.5

	twinkleFrequency = 3.0
	twinkleSpacing   = 10.0
	twinkleRange     = 1.5
	lightBonus       = 0.5

	glitterFrequency = 10.0
	glitterMax       = 0.6
	tinselBonus      = 0.3
)

// FrameInput is everything the animator needs for one frame.
type FrameInput struct {
	// Time is the monotonic elapsed time in seconds.
	Time float64
	// Progress blends shape A (0) into shape B (1).
	Progress float64
	// Hover is the pointer or hand position, or nil when no interaction is
	// active.
	Hover *Vec3
	// Phase drives the container rotation.
	Phase Phase
}

// AnimateParticle computes the transform of particle i for one frame. It is a
// pure function of its inputs.
func AnimateParticle(p *Particle, i int, params *GroupParams, f FrameInput) Transform {
	pos := p.ShapeA.Lerp(p.ShapeB, f.Progress)

	if params.Sway {
		pos.Y += math.Sin(f.Time*swayFrequency+pos.X*swayFrequency) * swayAmplitude
	}

	if f.Progress < repulsionCutoff && f.Hover != nil && params.RepulsionRadius > 0 {
		d := pos.Sub(*f.Hover)
		if dist := d.Len(); dist < params.RepulsionRadius {
			force := (params.RepulsionRadius - dist) / params.RepulsionRadius
			pos = pos.Add(d.Scale(force * params.RepulsionStrength))
		}
	}

	if f.Progress > rotationThreshold {
		pos = pos.RotateY(f.Time * params.RotationRate)
	}

	return Transform{Position: pos, Scale: particleScale(p.Kind, i, params.Scale, f)}
}

func particleScale(kind ParticleKind, i int, law ScaleLaw, f FrameInput) float64 {
	full := f.Progress == 1
	fi := float64(i)
	if law == ScalePulse {
		s := 1 + math.Sin(f.Time*pulseFrequency+fi)*pulseAmplitude
		if full {
			s += pulseBonus
		}
		return s
	}
	if kind == KindLight {
		twinkle := math.Sin(f.Time*twinkleFrequency+fi*twinkleSpacing)*0.5 + 0.5
		s := 1 + twinkle*twinkleRange
		if full {
			s += lightBonus
		}
		return s
	}
	glitter := math.Sin(f.Time*glitterFrequency+fi)*0.3 + 0.7
	s := glitterMax * glitter
	if full {
		s += tinselBonus
	}
	return s
}

// Animate recomputes every transform in the group and the container rotation.
// The container spins only while resting and snaps back to zero otherwise.
func (g *ParticleGroup) Animate(f FrameInput) {
	for i := range g.particles {
		g.transforms[i] = AnimateParticle(&g.particles[i], i, &g.Params, f)
	}
	if f.Phase == PhaseResting {
		g.containerRotation = f.Time * g.Params.ContainerRate
	} else {
		g.containerRotation = 0
	}
}
