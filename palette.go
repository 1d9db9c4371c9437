package yuletide

import (
	"image/color"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Fractions of each group that get the accent treatment.
const (
	ornamentChance = 0.1
	lightChance    = 0.15
	tinselJitter   = 0.3 // total HSL lightness range around gold
)

var (
	ornamentPalette = []colorful.Color{
		mustHex("#C5A059"), // antique gold
		mustHex("#800020"), // burgundy
		mustHex("#778899"), // slate
		mustHex("#B76E79"), // rose gold
		mustHex("#F7E7CE"), // champagne
	}
	needleLight = named(colornames.Seagreen)
	needleDark  = named(colornames.Darkgreen)
	tinselGold  = named(colornames.Gold)
	warmWhite   = mustHex("#FFF8E7")
)

// TreeColors returns count colors for the primary group: mostly shades
// between sea green and dark green, with about one in ten particles an
// ornament from a fixed palette.
func TreeColors(rng *rand.Rand, count int) []Color {
	if count <= 0 {
		return []Color{}
	}
	rnd := sampler(rng)
	colors := make([]Color, count)
	for i := range colors {
		var c colorful.Color
		if rnd() < ornamentChance {
			c = ornamentPalette[int(rnd()*float64(len(ornamentPalette)))%len(ornamentPalette)]
		} else {
			c = needleLight.BlendRgb(needleDark, rnd())
		}
		colors[i] = fromColorful(c)
	}
	return colors
}

// GarlandColors returns count colors and kinds for the secondary group. About
// 15% of particles are warm-white lights; the rest are tinsel in gold shades
// with jittered lightness.
func GarlandColors(rng *rand.Rand, count int) ([]Color, []ParticleKind) {
	if count <= 0 {
		return []Color{}, []ParticleKind{}
	}
	rnd := sampler(rng)
	colors := make([]Color, count)
	kinds := make([]ParticleKind, count)
	h, s, l := tinselGold.Hsl()
	for i := range colors {
		if rnd() < lightChance {
			kinds[i] = KindLight
			colors[i] = fromColorful(warmWhite)
			continue
		}
		kinds[i] = KindTinsel
		jitter := (rnd() - 0.5) * tinselJitter
		colors[i] = fromColorful(colorful.Hsl(h, s, clamp01(l+jitter)))
	}
	return colors, kinds
}

func fromColorful(c colorful.Color) Color {
	c = c.Clamped()
	return Color{R: c.R, G: c.G, B: c.B}
}

func named(c color.RGBA) colorful.Color {
	cf, _ := colorful.MakeColor(c)
	return cf
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("yuletide: bad palette color " + s)
	}
	return c
}
