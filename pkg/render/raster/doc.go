// Package raster is the native rendering engine: a pure Go alternative to
// Graphviz that needs no WebAssembly runtime.
//
// Positions come from gonum's Eades force-directed layout
// ([gonum.org/v1/gonum/graph/layout.EadesR2]); drawing uses
// [github.com/fogleman/gg] with the Go Regular font. The visual encoding is
// the one defined by [render.Encode], so both engines agree on sizes, colours
// and labels:
//
//	png, err := raster.Render(ctx, g, render.DefaultOptions())
//
// Layouts are seeded from [render.Options.Seed] and therefore reproducible.
// Empty graphs and graphs without roads render as a titled canvas.
package raster
