// Package render holds the visual encoding shared by every rendering engine.
//
// # Overview
//
// A city graph is drawn the same way regardless of engine: nodes are sized
// and coloured by degree, edges are drawn with a width proportional to their
// distance, and every node and edge carries a label. This package turns a
// [citygraph.Graph] into a [Scene] that engines only have to place and paint:
//
//	scene := render.Encode(g)
//	for _, n := range scene.Nodes {
//	    // n.Diameter() inches wide, filled with n.Color
//	}
//
// Engines live in subpackages:
//
//   - [nodelink]: Graphviz neato (Kamada-Kawai) through go-graphviz
//   - [raster]: gonum force layout painted with gg
//
// # Encoding
//
// Node area is max(50, degree*50) square points. Node colour is the plasma
// colormap sampled at the degree normalised to the graph's degree range;
// a graph whose nodes share one degree uses the low end. Edge width is
// 0.5 + distance/maxDistance*2 points, falling back to 0.5 when the graph
// has no positive distance.
//
// # Options
//
// [Options] controls the canvas: 14×10 inches at 300 DPI by default with the
// title "City Graph with Distances".
//
// [nodelink]: github.com/matzehuels/citygraph/pkg/render/nodelink
// [raster]: github.com/matzehuels/citygraph/pkg/render/raster
package render
