package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/citygraph/pkg/citygraph"
	"github.com/matzehuels/citygraph/pkg/render"
)

// Canvas proportions, as fractions of the canvas size.
const (
	marginFrac    = 0.05
	titleBandFrac = 0.06
)

var regular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

func newFace(size float64, dpi int) (font.Face, error) {
	f, err := regular()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     float64(dpi),
		Hinting: font.HintingFull,
	})
}

// Render lays out g and encodes the drawing as PNG.
func Render(ctx context.Context, g *citygraph.Graph, opts render.Options) ([]byte, error) {
	dc, err := paint(ctx, g, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Draw lays out g and paints it onto a canvas sized by opts. Edges are drawn
// first, then nodes, then labels, so labels are never hidden.
func Draw(ctx context.Context, g *citygraph.Graph, opts render.Options) (image.Image, error) {
	dc, err := paint(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func paint(ctx context.Context, g *citygraph.Graph, opts render.Options) (*gg.Context, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	pos, err := Layout(ctx, g, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	w, h := opts.Pixels()
	dc := gg.NewContext(w, h)
	dc.SetColor(render.Background)
	dc.Clear()

	titleBand := 0.0
	if opts.Title != "" {
		titleBand = float64(h) * titleBandFrac
		face, err := newFace(render.TitleFontSize, opts.DPI)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		dc.SetColor(render.LabelColor)
		dc.DrawStringAnchored(opts.Title, float64(w)/2, titleBand/2, 0.5, 0.5)
	}

	scene := render.Encode(g)
	px := opts.PointsToPixels

	// Keep the largest node fully on the canvas.
	var maxR float64
	for _, n := range scene.Nodes {
		maxR = math.Max(maxR, px(n.Diameter())/2)
	}
	frame := image.Rect(0, int(titleBand), w, h)
	place := fit(pos, frame, float64(w)*marginFrac+maxR)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dc.SetLineCapRound()
	for _, e := range scene.Edges {
		if e.IsLoop() {
			continue
		}
		a, b := place[e.From], place[e.To]
		dc.SetColor(render.EdgeColor)
		dc.SetLineWidth(px(e.Width))
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
		dc.Stroke()
	}

	for _, n := range scene.Nodes {
		p := place[n.Name]
		dc.SetColor(n.Color)
		dc.DrawCircle(p.X, p.Y, px(n.Diameter())/2)
		dc.Fill()
	}

	edgeFace, err := newFace(render.EdgeFontSize, opts.DPI)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(edgeFace)
	pad := px(1.5)
	for _, e := range scene.Edges {
		if e.IsLoop() {
			continue
		}
		mid := r2.Scale(0.5, r2.Add(place[e.From], place[e.To]))
		tw, th := dc.MeasureString(e.Label)
		dc.SetColor(render.Background)
		dc.DrawRoundedRectangle(mid.X-tw/2-pad, mid.Y-th/2-pad, tw+2*pad, th+2*pad, pad)
		dc.Fill()
		dc.SetColor(render.LabelColor)
		dc.DrawStringAnchored(e.Label, mid.X, mid.Y, 0.5, 0.35)
	}

	nodeFace, err := newFace(render.NodeFontSize, opts.DPI)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(nodeFace)
	dc.SetColor(render.LabelColor)
	for _, n := range scene.Nodes {
		p := place[n.Name]
		dc.DrawStringAnchored(n.Name, p.X, p.Y, 0.5, 0.35)
	}

	return dc, nil
}

// fit maps layout positions into frame, inset by margin pixels. Each axis is
// scaled independently to fill the frame. A zero extent on an axis centres
// the nodes on it. Screen y grows downward, so layout y is flipped.
func fit(pos map[string]r2.Vec, frame image.Rectangle, margin float64) map[string]r2.Vec {
	out := make(map[string]r2.Vec, len(pos))
	if len(pos) == 0 {
		return out
	}

	lo := r2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	hi := r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range pos {
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}

	minX, maxX := float64(frame.Min.X)+margin, float64(frame.Max.X)-margin
	minY, maxY := float64(frame.Min.Y)+margin, float64(frame.Max.Y)-margin
	if maxX < minX {
		minX, maxX = float64(frame.Min.X+frame.Max.X)/2, float64(frame.Min.X+frame.Max.X)/2
	}
	if maxY < minY {
		minY, maxY = float64(frame.Min.Y+frame.Max.Y)/2, float64(frame.Min.Y+frame.Max.Y)/2
	}

	scale := func(v, lo, hi, min, max float64) float64 {
		if hi <= lo {
			return (min + max) / 2
		}
		return min + (v-lo)/(hi-lo)*(max-min)
	}
	for name, p := range pos {
		out[name] = r2.Vec{
			X: scale(p.X, lo.X, hi.X, minX, maxX),
			Y: maxY + minY - scale(p.Y, lo.Y, hi.Y, minY, maxY),
		}
	}
	return out
}
