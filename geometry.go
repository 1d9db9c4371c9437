package yuletide

import (
	"math"
	"math/rand/v2"
)

// Point clouds are sampled with the supplied generator. A nil rng uses the
// package-level math/rand/v2 source. Every generator returns exactly count
// points, or an empty slice when count <= 0.

// ConeVolume samples count points uniformly by area inside a cone of the given
// base radius and height, centered vertically on the origin with the apex at
// the top.
func ConeVolume(rng *rand.Rand, count int, radius, height float64) []Vec3 {
	if count <= 0 {
		return []Vec3{}
	}
	rnd := sampler(rng)
	points := make([]Vec3, count)
	for i := range points {
		h := rnd()
		y := (h - 0.5) * height
		// sqrt keeps the areal density uniform instead of clustering at the axis.
		r := (1 - h) * radius * math.Sqrt(rnd())
		sin, cos := math.Sincos(rnd() * 2 * math.Pi)
		points[i] = Vec3{r * cos, y, r * sin}
	}
	return points
}

// TorusVolume samples count points on a torus lying in the horizontal plane.
func TorusVolume(rng *rand.Rand, count int, majorRadius, tubeRadius float64) []Vec3 {
	return torus(sampler(rng), count, majorRadius, tubeRadius, 1)
}

// FlatRing samples count points on a torus whose vertical extent is
// compressed to a fifth of the tube radius, giving a thin disk-like ring.
func FlatRing(rng *rand.Rand, count int, radius, tubeRadius float64) []Vec3 {
	return torus(sampler(rng), count, radius, tubeRadius, flatRingSquash)
}

const flatRingSquash = 0.2

func torus(rnd func() float64, count int, major, tube, squash float64) []Vec3 {
	if count <= 0 {
		return []Vec3{}
	}
	points := make([]Vec3, count)
	for i := range points {
		sinU, cosU := math.Sincos(rnd() * 2 * math.Pi)
		sinV, cosV := math.Sincos(rnd() * 2 * math.Pi)
		ring := major + tube*cosV
		points[i] = Vec3{ring * cosU, tube * sinV * squash, ring * sinU}
	}
	return points
}

// SpiralBand places count points along a helix of the given number of turns
// whose radius tapers linearly from radius at the bottom to zero at the top,
// matching ConeVolume. Each point is displaced by a uniform sample inside a
// sphere of radius spread.
func SpiralBand(rng *rand.Rand, count int, radius, height, turns, spread float64) []Vec3 {
	if count <= 0 {
		return []Vec3{}
	}
	rnd := sampler(rng)
	points := make([]Vec3, count)
	for i := range points {
		t := float64(i) / float64(count)
		r := (1 - t) * radius
		sin, cos := math.Sincos(t * 2 * math.Pi * turns)
		base := Vec3{r * cos, (t - 0.5) * height, r * sin}
		points[i] = base.Add(inSphere(rnd, spread))
	}
	return points
}

// inSphere returns a point distributed uniformly inside a sphere of radius r.
func inSphere(rnd func() float64, r float64) Vec3 {
	if r <= 0 {
		return Vec3{}
	}
	z := 2*rnd() - 1
	sin, cos := math.Sincos(rnd() * 2 * math.Pi)
	ring := math.Sqrt(1 - z*z)
	dist := r * math.Cbrt(rnd())
	return Vec3{ring * cos * dist, z * dist, ring * sin * dist}
}

func sampler(rng *rand.Rand) func() float64 {
	if rng == nil {
		return rand.Float64
	}
	return rng.Float64
}
