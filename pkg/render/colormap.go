package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// plasma holds evenly spaced samples of the plasma colormap.
var plasma = [...]colorful.Color{
	mustHex("#0d0887"),
	mustHex("#4b03a1"),
	mustHex("#7d03a8"),
	mustHex("#a82296"),
	mustHex("#cc4778"),
	mustHex("#e56b5d"),
	mustHex("#f89540"),
	mustHex("#fdc328"),
	mustHex("#f0f921"),
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Plasma samples the plasma colormap at t in [0, 1]. Values outside the range
// are clamped; NaN maps to the low end.
func Plasma(t float64) colorful.Color {
	if math.IsNaN(t) || t <= 0 {
		return plasma[0]
	}
	if t >= 1 {
		return plasma[len(plasma)-1]
	}
	pos := t * float64(len(plasma)-1)
	i := int(pos)
	return plasma[i].BlendRgb(plasma[i+1], pos-float64(i)).Clamped()
}

// WithAlpha converts c to a non-premultiplied colour with the given opacity.
func WithAlpha(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(alpha) * 255))}
}

// HexAlpha formats c as #rrggbbaa, the form Graphviz accepts for translucent
// colours.
func HexAlpha(c color.NRGBA) string {
	const digits = "0123456789abcdef"
	buf := []byte{'#', 0, 0, 0, 0, 0, 0, 0, 0}
	for i, v := range [4]uint8{c.R, c.G, c.B, c.A} {
		buf[1+2*i] = digits[v>>4]
		buf[2+2*i] = digits[v&0x0f]
	}
	return string(buf)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
