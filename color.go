package ridgeline

import "github.com/lucasb-eyer/go-colorful"

// A gradientStop pairs a normalized elevation with a color. Between stops
// the color is interpolated per channel; between two stops with equal
// positions the earlier color holds.
type gradientStop struct {
	t     float64
	color colorful.Color
}

// elevationGradient runs dark blue at the lowest elevation through light
// blue, cyan, green and yellow to red at the highest.
var elevationGradient = []gradientStop{
	{0, rgb(0, 0, 139)},
	{0.01, rgb(0, 0, 139)},
	{0.1, rgb(135, 206, 250)},
	{0.3, rgb(0, 255, 255)},
	{0.5, rgb(0, 255, 0)},
	{0.75, rgb(255, 255, 0)},
	{1, rgb(255, 0, 0)},
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// ElevationColor maps a raw (unexaggerated) elevation to a color on the
// gradient, normalized over r.
func ElevationColor(elevation float64, r Range) colorful.Color {
	t := (elevation - r.Min) / (r.Max - r.Min + rangeEpsilon)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return gradientColor(t)
}

func gradientColor(t float64) colorful.Color {
	for i := 0; i+1 < len(elevationGradient); i++ {
		lo, hi := elevationGradient[i], elevationGradient[i+1]
		if t > hi.t {
			continue
		}
		if hi.t == lo.t {
			return lo.color
		}
		return lo.color.BlendRgb(hi.color, (t-lo.t)/(hi.t-lo.t)).Clamped()
	}
	return elevationGradient[len(elevationGradient)-1].color
}
