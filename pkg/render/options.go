package render

import (
	"math"

	cgerrors "github.com/matzehuels/citygraph/pkg/errors"
)

const (
	// DefaultDPI is the output resolution in dots per inch.
	DefaultDPI = 300

	// DefaultWidthIn is the canvas width in inches.
	DefaultWidthIn = 14.0

	// DefaultHeightIn is the canvas height in inches.
	DefaultHeightIn = 10.0

	// DefaultTitle is drawn above the graph.
	DefaultTitle = "City Graph with Distances"

	// DefaultSeed seeds layouts that need randomness.
	DefaultSeed = int64(42)

	// MaxDPI bounds the canvas so a typo cannot allocate gigabytes.
	MaxDPI = 1200
)

// Options configures the canvas shared by all engines.
type Options struct {
	DPI      int     `json:"dpi" toml:"dpi"`
	WidthIn  float64 `json:"width_in" toml:"width_in"`
	HeightIn float64 `json:"height_in" toml:"height_in"`
	Title    string  `json:"title" toml:"title"`
	Seed     int64   `json:"seed" toml:"seed"`
}

// DefaultOptions returns the standard 14×10 inch, 300 DPI canvas.
func DefaultOptions() Options {
	return Options{
		DPI:      DefaultDPI,
		WidthIn:  DefaultWidthIn,
		HeightIn: DefaultHeightIn,
		Title:    DefaultTitle,
		Seed:     DefaultSeed,
	}
}

// Validate checks that the canvas has a usable size and resolution.
func (o Options) Validate() error {
	if o.DPI <= 0 || o.DPI > MaxDPI {
		return cgerrors.New(cgerrors.ErrCodeInvalidConfig, "dpi must be between 1 and %d, got %d", MaxDPI, o.DPI)
	}
	for _, v := range []float64{o.WidthIn, o.HeightIn} {
		if !(v > 0) || math.IsInf(v, 0) {
			return cgerrors.New(cgerrors.ErrCodeInvalidConfig, "canvas size must be positive, got %gx%g", o.WidthIn, o.HeightIn)
		}
	}
	return nil
}

// Pixels returns the canvas size in pixels.
func (o Options) Pixels() (w, h int) {
	return int(math.Round(o.WidthIn * float64(o.DPI))), int(math.Round(o.HeightIn * float64(o.DPI)))
}

// PointsToPixels converts typographic points (1/72 inch) to pixels.
func (o Options) PointsToPixels(pt float64) float64 {
	return pt * float64(o.DPI) / 72
}
