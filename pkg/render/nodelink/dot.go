package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/citygraph/pkg/citygraph"
	cgerrors "github.com/matzehuels/citygraph/pkg/errors"
	"github.com/matzehuels/citygraph/pkg/render"
)

// Output formats supported by [Render].
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatDOT = "dot"
)

var formats = map[string]graphviz.Format{
	FormatPNG: graphviz.PNG,
	FormatSVG: graphviz.SVG,
	FormatDOT: graphviz.XDOT,
}

// ToDOT converts a city graph to Graphviz DOT source laid out by neato in
// Kamada-Kawai mode. The result can be rendered with [Render].
//
// Nodes are fixed-size filled circles whose area and colour follow
// [render.Encode]; edges are translucent gray lines labelled with their
// distance.
func ToDOT(g *citygraph.Graph, opts render.Options) string {
	scene := render.Encode(g)

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  mode=KK;\n")
	buf.WriteString("  overlap=scale;\n")
	fmt.Fprintf(&buf, "  start=%d;\n", opts.Seed)
	fmt.Fprintf(&buf, "  dpi=%d;\n", opts.DPI)
	fmt.Fprintf(&buf, "  size=\"%s,%s!\";\n", fmtFloat(opts.WidthIn), fmtFloat(opts.HeightIn))
	buf.WriteString("  ratio=fill;\n")
	buf.WriteString("  bgcolor=white;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", opts.Title)
		fmt.Fprintf(&buf, "  labelloc=t;\n  fontsize=%s;\n", fmtFloat(render.TitleFontSize))
	}
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fixedsize=true, color=none, fontsize=%s];\n",
		fmtFloat(render.NodeFontSize))
	fmt.Fprintf(&buf, "  edge [color=%q, fontsize=%s];\n",
		render.HexAlpha(render.EdgeColor), fmtFloat(render.EdgeFontSize))
	buf.WriteString("\n")

	for _, n := range scene.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Name, strings.Join(nodeAttrs(n), ", "))
	}

	buf.WriteString("\n")
	for _, e := range scene.Edges {
		fmt.Fprintf(&buf, "  %q -- %q [penwidth=%s, label=%q];\n",
			e.From, e.To, fmtFloat(e.Width), e.Label)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n render.NodeStyle) []string {
	return []string{
		fmt.Sprintf("label=%q", n.Name),
		"width=" + fmtFloat(n.Diameter()/72),
		fmt.Sprintf("fillcolor=%q", render.HexAlpha(n.Color)),
	}
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Render lays out DOT source with neato and renders it in-process.
// format is one of [FormatPNG], [FormatSVG] or [FormatDOT]; the latter
// returns the input annotated with computed positions.
func Render(ctx context.Context, dot, format string) ([]byte, error) {
	gvFormat, ok := formats[format]
	if !ok {
		return nil, cgerrors.New(cgerrors.ErrCodeInvalidFormat, "unsupported format %q (must be one of: png, svg, dot)", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales from its
// viewBox instead of Graphviz's absolute point size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
