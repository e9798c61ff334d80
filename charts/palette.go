package charts

import (
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
)

// Cubehelix is a palette.Palette of N colors sampled along a cubehelix
// ramp (Green 2011), from Light to Dark.
type Cubehelix struct {
	N        int
	Start    float64
	Rotation float64
	Gamma    float64
	Hue      float64
	Light    float64
	Dark     float64
}

var _ palette.Palette = Cubehelix{}

// YearPalette is the ramp used to color one line per year:
// start 2.5, rotation -0.2, dark 0.3.
func YearPalette(n int) Cubehelix {
	return Cubehelix{
		N:        n,
		Start:    2.5,
		Rotation: -0.2,
		Gamma:    1,
		Hue:      0.8,
		Light:    0.85,
		Dark:     0.3,
	}
}

// Colors implements palette.Palette.
func (c Cubehelix) Colors() []color.Color {
	if c.N <= 0 {
		return nil
	}
	gamma := c.Gamma
	if gamma <= 0 {
		gamma = 1
	}

	colors := make([]color.Color, c.N)
	for i := range colors {
		t := 0.0
		if c.N > 1 {
			t = float64(i) / float64(c.N-1)
		}
		x := c.Light + (c.Dark-c.Light)*t

		xg := math.Pow(x, gamma)
		amp := c.Hue * xg * (1 - xg) / 2
		phi := 2 * math.Pi * (c.Start/3 + c.Rotation*x)
		cos, sin := math.Cos(phi), math.Sin(phi)

		colors[i] = color.NRGBA{
			R: channel(xg + amp*(-0.14861*cos+1.78277*sin)),
			G: channel(xg + amp*(-0.29227*cos-0.90649*sin)),
			B: channel(xg + amp*(1.97294*cos)),
			A: 255,
		}
	}
	return colors
}

func channel(v float64) uint8 {
	return uint8(math.Round(255 * math.Max(0, math.Min(1, v))))
}
