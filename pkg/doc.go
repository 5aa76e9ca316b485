// Package pkg provides the core libraries for citygraph, which renders city
// road networks as force-directed graph images.
//
// # Overview
//
// The pkg directory is organized into these areas:
//
//  1. [citygraph] - The undirected weighted city graph
//  2. [io] - The dataset JSON format (cities plus adjacency list)
//  3. [render] - Visual encoding shared by all engines, with the
//     [render/nodelink] (Graphviz) and [render/raster] (native) engines
//  4. [pipeline] - Orchestration (load → render → save) with caching
//  5. [config], [cache], [errors], [observability], [buildinfo] - Supporting
//     infrastructure
//
// # Architecture
//
// The data flow of one job:
//
//	dataset JSON (graph.json, mst_graph.json)
//	         ↓
//	    [io] package (decode, keep document order)
//	         ↓
//	    [citygraph] package (one node per city, one edge per unordered pair)
//	         ↓
//	    [render] package (size and colour by degree, width by distance)
//	         ↓
//	    [render/nodelink] or [render/raster] (layout + draw)
//	         ↓
//	    PNG/SVG/DOT output
//
// # Quick Start
//
//	g, err := io.LoadGraph("../dataset/graph.json")
//	if err != nil {
//	    return err
//	}
//	png, err := raster.Render(ctx, g, render.DefaultOptions())
//
// Or run whole jobs with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	results, err := runner.RunAll(ctx, pipeline.DefaultJobs("../dataset"), pipeline.Options{})
package pkg
