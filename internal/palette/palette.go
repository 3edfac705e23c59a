// Package palette maps normalised terrain heights to colours, shared by the
// wireframe viewer and the PNG exporter.
package palette

import (
	"image/color"

	"github.com/chewxy/math32"
)

// ColorVec is a linear RGB colour with components in [0, 1].
type ColorVec [3]float32

var colors = [...]ColorVec{
	RGB(0, 50, 115),
	RGB(0, 75, 130),
	RGB(194, 178, 128),
	RGB(90, 180, 30),
	RGB(105, 110, 115),
	Gray(220),
}

// Height bands as fractions of the field's height range.
const (
	WaterLevel = 0.3
	SandLevel  = 0.35
	GrassLevel = 0.6
	RockLevel  = 0.85
)

// At colours a height normalised to [0, 1]. Values outside are clamped.
func At(t float32) ColorVec {
	t = clamp(t)
	switch {
	case t <= WaterLevel:
		return colors[0].Lerp(colors[1], t/WaterLevel)
	case t <= SandLevel:
		return colors[2]
	case t <= GrassLevel:
		return colors[2].Lerp(colors[3], (t-SandLevel)/(GrassLevel-SandLevel))
	case t <= RockLevel:
		return colors[3].Lerp(colors[4], (t-GrassLevel)/(RockLevel-GrassLevel))
	default:
		return colors[4].Lerp(colors[5], (t-RockLevel)/(1-RockLevel))
	}
}

// Normalize maps h from [lo, hi] onto [0, 1]. A flat range maps to 0.5.
func Normalize(h, lo, hi float64) float32 {
	span := hi - lo
	if !(span > 0) {
		return 0.5
	}
	return clamp(float32((h - lo) / span))
}

// Gray returns the grey with all three channels set to v.
func Gray(v byte) ColorVec {
	return RGB(v, v, v)
}

// RGB converts 8-bit channels to a ColorVec.
func RGB(r, g, b byte) ColorVec {
	const factor = 1.0 / 255
	return ColorVec{float32(r) * factor, float32(g) * factor, float32(b) * factor}
}

// Lerp moves factor of the way from vec to other; factor is clamped to [0, 1].
func (vec ColorVec) Lerp(other ColorVec, factor float32) ColorVec {
	factor = clamp(factor)
	for i := range vec {
		vec[i] += (other[i] - vec[i]) * factor
	}
	return vec
}

// Color rounds to the nearest 8-bit opaque colour.
func (vec ColorVec) Color() color.RGBA {
	return color.RGBA{R: floatToByte(vec[0]), G: floatToByte(vec[1]), B: floatToByte(vec[2]), A: 255}
}

func clamp(f float32) float32 {
	if math32.IsNaN(f) {
		return 0
	}
	return math32.Min(math32.Max(f, 0), 1)
}

func floatToByte(f float32) byte {
	return byte(math32.Floor(clamp(f)*255 + 0.5))
}
