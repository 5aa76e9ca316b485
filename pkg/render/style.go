package render

import (
	"image/color"
	"math"
	"strconv"

	"github.com/matzehuels/citygraph/pkg/citygraph"
)

// Encoding constants. Areas are in square points, widths and font sizes in
// points.
const (
	MinNodeArea    = 50.0
	NodeAreaPerDeg = 50.0
	NodeAlpha      = 0.9

	BaseEdgeWidth  = 0.5
	EdgeWidthRange = 2.0
	EdgeAlpha      = 0.4

	NodeFontSize  = 8.0
	EdgeFontSize  = 7.0
	TitleFontSize = 12.0
)

var (
	// EdgeColor is translucent gray.
	EdgeColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: uint8(math.Round(EdgeAlpha * 255))}

	// LabelColor is used for node and edge labels and the title.
	LabelColor = color.NRGBA{A: 0xff}

	// Background fills the canvas.
	Background = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// NodeStyle is the visual encoding of one city.
type NodeStyle struct {
	Name   string
	Degree int
	Area   float64 // square points
	Color  color.NRGBA
}

// Diameter returns the node's diameter in points.
func (n NodeStyle) Diameter() float64 { return math.Sqrt(n.Area) }

// EdgeStyle is the visual encoding of one road.
type EdgeStyle struct {
	citygraph.Road
	Width float64 // points
	Label string
}

// Scene is a graph with every visual attribute resolved, in graph order.
type Scene struct {
	Nodes []NodeStyle
	Edges []EdgeStyle
}

// Encode resolves node and edge styles for g.
func Encode(g *citygraph.Graph) Scene {
	cities := g.Cities()
	degrees := g.Degrees()

	degs := make([]int, len(cities))
	for i, c := range cities {
		degs[i] = degrees[c.Name]
	}
	colors := NodeColors(degs)

	scene := Scene{Nodes: make([]NodeStyle, len(cities))}
	for i, c := range cities {
		scene.Nodes[i] = NodeStyle{
			Name:   c.Name,
			Degree: degs[i],
			Area:   NodeArea(degs[i]),
			Color:  colors[i],
		}
	}

	maxW := g.MaxDistance()
	for _, r := range g.Roads() {
		scene.Edges = append(scene.Edges, EdgeStyle{
			Road:  r,
			Width: EdgeWidth(r.Distance, maxW),
			Label: FormatDistance(r.Distance),
		})
	}
	return scene
}

// NodeArea returns the marker area for a node of the given degree.
func NodeArea(degree int) float64 {
	return math.Max(MinNodeArea, float64(degree)*NodeAreaPerDeg)
}

// NodeColors maps degrees onto the plasma colormap, normalised to the
// observed range. Equal degrees all map to the low end.
func NodeColors(degrees []int) []color.NRGBA {
	out := make([]color.NRGBA, len(degrees))
	if len(degrees) == 0 {
		return out
	}

	lo, hi := degrees[0], degrees[0]
	for _, d := range degrees[1:] {
		lo = min(lo, d)
		hi = max(hi, d)
	}

	for i, d := range degrees {
		var t float64
		if hi > lo {
			t = float64(d-lo) / float64(hi-lo)
		}
		out[i] = WithAlpha(Plasma(t), NodeAlpha)
	}
	return out
}

// EdgeWidth scales a distance into a line width. A non-positive maxDistance
// (no edges, or only zero-length roads) yields the base width.
func EdgeWidth(distance, maxDistance float64) float64 {
	if !(maxDistance > 0) {
		return BaseEdgeWidth
	}
	return BaseEdgeWidth + distance/maxDistance*EdgeWidthRange
}

// FormatDistance renders a distance with no trailing zeros: 465, 12.5.
func FormatDistance(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}
