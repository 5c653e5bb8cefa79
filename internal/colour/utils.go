package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/sitekit/internal/security"
)

// HSV holds hue, saturation and value, each normalised to [0, 1).
// Hue 0 is red, 1/3 green, 2/3 blue.
type HSV struct {
	H, S, V float64
}

// ToHSV converts an RGB colour to HSV. Achromatic colours have hue 0.
func ToHSV(rgb RGB) HSV {
	c := colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
	h, s, v := c.Hsv()
	return HSV{H: h / 360.0, S: s, V: v}
}

// Quantise snaps each channel to the nearest multiple of step, rounding
// halves to even, and clamps to 0-255. With step 16, 255 maps to 256 and is
// clamped to 255.
func Quantise(rgb RGB, step int) RGB {
	if step <= 1 {
		return rgb
	}
	q := func(v uint8) uint8 {
		return security.ClampUint8(int(math.RoundToEven(float64(v)/float64(step))) * step)
	}
	return RGB{R: q(rgb.R), G: q(rgb.G), B: q(rgb.B)}
}
