package yuletide

import (
	"math"
	"testing"
)

var (
	testA = Vec3{1, -2, 0.5}
	testB = Vec3{-6, 3, 4}
)

func plainParams() GroupParams {
	p := SecondaryParams()
	p.Sway = false
	p.Scale = ScalePulse
	return p
}

func TestAnimateInterpolationIsConvex(t *testing.T) {
	p := Particle{ShapeA: testA, ShapeB: testB}
	params := plainParams()
	for _, progress := range []float64{0, 0.05, 0.1, 0.33, 0.5, 0.75, 0.9} {
		got := AnimateParticle(&p, 3, &params, FrameInput{Time: 12.5, Progress: progress}).Position
		assertVecNear(t, "position", got, testA.Lerp(testB, progress))
		// Each component lies between the endpoints.
		for _, c := range [][3]float64{{got.X, testA.X, testB.X}, {got.Y, testA.Y, testB.Y}, {got.Z, testA.Z, testB.Z}} {
			lo, hi := math.Min(c[1], c[2]), math.Max(c[1], c[2])
			if c[0] < lo-1e-12 || c[0] > hi+1e-12 {
				t.Errorf("progress %v: component %v outside [%v, %v]", progress, c[0], lo, hi)
			}
		}
	}
}

func TestAnimateSway(t *testing.T) {
	p := Particle{ShapeA: Vec3{2, 0, 0}, ShapeB: Vec3{2, 0, 0}}
	params := PrimaryParams()
	f := FrameInput{Time: 3}
	got := AnimateParticle(&p, 0, &params, f).Position
	assertNear(t, "sway y", got.Y, math.Sin(3*0.5+2*0.5)*0.1)

	secondary := SecondaryParams()
	got = AnimateParticle(&p, 0, &secondary, f).Position
	assertNear(t, "no sway y", got.Y, 0)
}

func TestAnimateRepulsionBoundary(t *testing.T) {
	params := plainParams()
	params.RepulsionRadius = 2
	params.RepulsionStrength = 1.5
	hover := Vec3{0, 0, 0}
	// Identical endpoints keep the interpolated position fixed at (1,0,0).
	p := Particle{ShapeA: Vec3{1, 0, 0}, ShapeB: Vec3{1, 0, 0}}

	below := AnimateParticle(&p, 0, &params, FrameInput{Progress: 0.099, Hover: &hover}).Position
	// d=1, force=(2-1)/2=0.5, push = 1*0.5*1.5 = 0.75
	assertVecNear(t, "repelled", below, Vec3{1.75, 0, 0})

	at := AnimateParticle(&p, 0, &params, FrameInput{Progress: 0.1, Hover: &hover}).Position
	assertVecNear(t, "not repelled at cutoff", at, Vec3{1, 0, 0})

	above := AnimateParticle(&p, 0, &params, FrameInput{Progress: 0.5, Hover: &hover}).Position
	assertVecNear(t, "not repelled above cutoff", above, Vec3{1, 0, 0})
}

func TestAnimateRepulsionRadius(t *testing.T) {
	hover := Vec3{0, 0, 0}
	tests := []struct {
		name   string
		params GroupParams
		dist   float64
		want   float64
	}{
		{"primary inside", PrimaryParams(), 1.0, 1 + 1*0.5*1.5},
		{"primary at radius", PrimaryParams(), 2.0, 2.0},
		{"primary outside", PrimaryParams(), 2.2, 2.2},
		{"secondary inside", SecondaryParams(), 2.2, 2.2 + 2.2*(0.3/2.5)*1.2},
		{"secondary outside", SecondaryParams(), 2.6, 2.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.params
			params.Sway = false
			p := Particle{ShapeA: Vec3{0, 0, tt.dist}, ShapeB: Vec3{0, 0, tt.dist}}
			got := AnimateParticle(&p, 0, &params, FrameInput{Hover: &hover}).Position
			assertNear(t, "z", got.Z, tt.want)
		})
	}
}

func TestAnimateNoHoverNoRepulsion(t *testing.T) {
	params := plainParams()
	p := Particle{ShapeA: Vec3{0.1, 0, 0}, ShapeB: Vec3{0.1, 0, 0}}
	got := AnimateParticle(&p, 0, &params, FrameInput{}).Position
	assertVecNear(t, "position", got, Vec3{0.1, 0, 0})
}

func TestAnimateRotationThreshold(t *testing.T) {
	params := plainParams()
	p := Particle{ShapeA: Vec3{4, 1, 0}, ShapeB: Vec3{4, 1, 0}}
	const tm = 7.0

	for _, progress := range []float64{0, 0.5, 0.9} {
		got := AnimateParticle(&p, 0, &params, FrameInput{Time: tm, Progress: progress}).Position
		assertVecNear(t, "unrotated", got, Vec3{4, 1, 0})
	}

	got := AnimateParticle(&p, 0, &params, FrameInput{Time: tm, Progress: 0.91}).Position
	assertVecNear(t, "rotated", got, Vec3{4, 1, 0}.RotateY(tm*params.RotationRate))
}

func TestAnimateRotationRates(t *testing.T) {
	p := Particle{ShapeA: Vec3{1, 0, 0}, ShapeB: Vec3{1, 0, 0}}
	primary, secondary := PrimaryParams(), SecondaryParams()
	f := FrameInput{Time: 10, Progress: 1}
	a := AnimateParticle(&p, 0, &primary, f).Position
	b := AnimateParticle(&p, 0, &secondary, f).Position
	assertNear(t, "primary angle", math.Atan2(a.Z, a.X), 1.0)
	assertNear(t, "secondary angle", math.Atan2(b.Z, b.X), 1.5)
}

func TestAnimatePulseScaleBonus(t *testing.T) {
	params := PrimaryParams()
	p := Particle{}
	const tm, i = 1.25, 17
	base := 1 + math.Sin(tm*2+i)*0.2

	full := AnimateParticle(&p, i, &params, FrameInput{Time: tm, Progress: 1}).Scale
	assertNear(t, "scale at 1", full, base+0.5)

	almost := AnimateParticle(&p, i, &params, FrameInput{Time: tm, Progress: 0.999}).Scale
	assertNear(t, "scale at 0.999", almost, base)
}

func TestAnimateKindedScale(t *testing.T) {
	params := SecondaryParams()
	const tm, i = 0.75, 5
	twinkle := math.Sin(tm*3+i*10)*0.5 + 0.5
	glitter := math.Sin(tm*10+i)*0.3 + 0.7

	tests := []struct {
		name     string
		kind     ParticleKind
		progress float64
		want     float64
	}{
		{"light", KindLight, 0.5, 1 + twinkle*1.5},
		{"light full", KindLight, 1, 1 + twinkle*1.5 + 0.5},
		{"tinsel", KindTinsel, 0.5, 0.6 * glitter},
		{"tinsel full", KindTinsel, 1, 0.6*glitter + 0.3},
		{"none is tinsel", KindNone, 0, 0.6 * glitter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Particle{Kind: tt.kind}
			got := AnimateParticle(&p, i, &params, FrameInput{Time: tm, Progress: tt.progress}).Scale
			assertNear(t, "scale", got, tt.want)
		})
	}
}

func TestKindedScaleRanges(t *testing.T) {
	params := SecondaryParams()
	light := Particle{Kind: KindLight}
	tinsel := Particle{Kind: KindTinsel}
	for step := 0; step < 500; step++ {
		f := FrameInput{Time: float64(step) * 0.037, Progress: 0.5}
		if s := AnimateParticle(&light, step, &params, f).Scale; s < 1-1e-9 || s > 2.5+1e-9 {
			t.Fatalf("light scale %v outside [1, 2.5]", s)
		}
		if s := AnimateParticle(&tinsel, step, &params, f).Scale; s < 0 || s > 0.6+1e-9 {
			t.Fatalf("tinsel scale %v outside [0, 0.6]", s)
		}
	}
}

func TestGroupAnimateContainerRotation(t *testing.T) {
	g, err := NewParticleGroup("g", []Vec3{{1, 0, 0}}, []Vec3{{5, 0, 0}}, []Color{ColorWhite}, nil, PrimaryParams())
	if err != nil {
		t.Fatal(err)
	}

	g.Animate(FrameInput{Time: 20, Phase: PhaseResting})
	assertNear(t, "resting rotation", g.ContainerRotation(), 20*0.05)

	for _, ph := range []Phase{PhaseTransitioningForward, PhaseExpanded, PhaseTransitioningBackward} {
		g.Animate(FrameInput{Time: 20, Progress: 0.5, Phase: ph})
		if g.ContainerRotation() != 0 {
			t.Errorf("phase %v rotation = %v, want 0", ph, g.ContainerRotation())
		}
	}
}

func TestGroupAnimateMatchesAnimateParticle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Garland.Count = 64
	g, err := NewGarlandGroup(testRand(), cfg.Garland)
	if err != nil {
		t.Fatal(err)
	}
	hover := Vec3{1, 0, 1}
	f := FrameInput{Time: 4.2, Progress: 0.05, Hover: &hover, Phase: PhaseResting}
	g.Animate(f)
	for i := range g.Particles() {
		want := AnimateParticle(&g.Particles()[i], i, &g.Params, f)
		if g.Transforms()[i] != want {
			t.Fatalf("transform %d = %+v, want %+v", i, g.Transforms()[i], want)
		}
	}
}
