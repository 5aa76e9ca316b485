// Package nodelink renders city graphs with Graphviz.
//
// # Overview
//
// This is the default engine. Positions come from neato in Kamada-Kawai
// mode (mode=KK), a stress-minimising force-directed layout; Graphviz also
// draws the result, so the whole pipeline runs in-process through
// [github.com/goccy/go-graphviz].
//
// # Usage
//
// Convert a graph to DOT, then render:
//
//	dot := nodelink.ToDOT(g, render.DefaultOptions())
//	png, err := nodelink.Render(ctx, dot, nodelink.FormatPNG)
//
// # DOT Format
//
// The generated source is an undirected graph. Nodes are fixed-size filled
// circles labelled with the city name; edges carry penwidth and a distance
// label. Canvas size and resolution come from [render.Options] via the
// size and dpi graph attributes, so a 14×10 inch canvas at 300 DPI yields a
// PNG about 4200 pixels wide.
//
// The source can also be saved and processed with the Graphviz command line
// tools:
//
//	neato -Tpng graph.dot -o graph.png
package nodelink
