// Package citygraph holds the weighted undirected graph of cities and road
// distances that citygraph renders.
//
// # Overview
//
// A [Graph] has one node per [City] (keyed by name, carrying its country)
// and one [Road] per unordered pair of cities. Storage and duplicate
// detection are delegated to [github.com/dominikbraun/graph]; this package
// adds insertion order so every consumer sees cities and roads in the order
// of the source dataset.
//
// # Building
//
// Datasets list every road twice, once from each end. [Build] folds them:
//
//	g, err := citygraph.Build(
//	    []citygraph.City{{Name: "A", Country: "X"}, {Name: "B", Country: "Y"}},
//	    []citygraph.Adjacency{
//	        {City: "A", Neighbors: []citygraph.Neighbor{{City: "B", Distance: 10}}},
//	        {City: "B", Neighbors: []citygraph.Neighbor{{City: "A", Distance: 10}}},
//	    },
//	)
//	// g.EdgeCount() == 1, and the road is A→B because A was listed first.
//
// A road to a city missing from the city list fails with [ErrUnknownCity].
//
// # Degree
//
// [Graph.Degree] and [Graph.Degrees] count incident roads, with a self-loop
// counting twice. Renderers use degree to size and colour nodes.
//
// # Lifecycle
//
// A graph is built once per input file, read by one renderer and dropped.
// Nothing here is safe for concurrent mutation.
package citygraph
