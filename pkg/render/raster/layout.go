package raster

import (
	"cmp"
	"context"
	"math"
	"slices"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/citygraph/pkg/citygraph"
)

// Eades parameters. Initial positions are drawn from the unit square.
const (
	layoutUpdates   = 300
	layoutRepulsion = 1.0
	layoutRate      = 0.05
	layoutTheta     = 0.2
)

// Layout computes force-directed positions for every city using the Eades
// spring-electrical model. The same seed always yields the same layout.
//
// Positions are in arbitrary layout units; callers scale them to the canvas.
// Self-loops do not affect placement. A graph with at most one city, or one
// whose optimisation collapses to a point, is placed on a circle instead.
func Layout(ctx context.Context, g *citygraph.Graph, seed int64) (map[string]r2.Vec, error) {
	cities := g.Cities()
	pos := make(map[string]r2.Vec, len(cities))
	if len(cities) <= 1 {
		for _, c := range cities {
			pos[c.Name] = r2.Vec{}
		}
		return pos, nil
	}

	ids := make(map[string]int64, len(cities))
	ug := simple.NewUndirectedGraph()
	for i, c := range cities {
		ids[c.Name] = int64(i)
		ug.AddNode(simple.Node(i))
	}
	for _, r := range g.Roads() {
		if r.IsLoop() {
			continue
		}
		ug.SetEdge(ug.NewEdge(simple.Node(ids[r.From]), simple.Node(ids[r.To])))
	}

	eades := layout.EadesR2{
		Updates:   layoutUpdates,
		Repulsion: layoutRepulsion,
		Rate:      layoutRate,
		Theta:     layoutTheta,
		Src:       rand.NewSource(uint64(seed)),
	}
	o := layout.NewOptimizerR2(orderedGraph{ug}, eades.Update)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !o.Update() {
			break
		}
	}

	for _, c := range cities {
		pos[c.Name] = o.Coord2(ids[c.Name])
	}
	if degenerate(pos) {
		return circle(cities), nil
	}
	return pos, nil
}

// orderedGraph iterates nodes by ID. The simple graphs iterate in map
// order, which would make seeded layouts differ between runs.
type orderedGraph struct {
	*simple.UndirectedGraph
}

func (g orderedGraph) Nodes() graph.Nodes {
	return sortedNodes(g.UndirectedGraph.Nodes())
}

func (g orderedGraph) From(id int64) graph.Nodes {
	return sortedNodes(g.UndirectedGraph.From(id))
}

func sortedNodes(it graph.Nodes) graph.Nodes {
	nodes := graph.NodesOf(it)
	slices.SortFunc(nodes, func(a, b graph.Node) int { return cmp.Compare(a.ID(), b.ID()) })
	return iterator.NewOrderedNodes(nodes)
}

// degenerate reports whether every position is the same point or not finite.
func degenerate(pos map[string]r2.Vec) bool {
	var first *r2.Vec
	distinct := false
	for _, p := range pos {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return true
		}
		if first == nil {
			first = &p
			continue
		}
		if p != *first {
			distinct = true
		}
	}
	return !distinct
}

func circle(cities []citygraph.City) map[string]r2.Vec {
	pos := make(map[string]r2.Vec, len(cities))
	step := 2 * math.Pi / float64(len(cities))
	for i, c := range cities {
		a := float64(i) * step
		pos[c.Name] = r2.Vec{X: math.Cos(a), Y: math.Sin(a)}
	}
	return pos
}
