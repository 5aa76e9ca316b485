package citygraph

import "fmt"

// Neighbor is one entry of an adjacency list: a neighbouring city and the
// distance to it.
type Neighbor struct {
	City     string
	Distance float64
}

// Adjacency lists the neighbours of one city, in source order.
type Adjacency struct {
	City      string
	Neighbors []Neighbor
}

// Build constructs a graph from city metadata and adjacency lists.
//
// Every city becomes a node carrying its country. Every unordered pair in
// adjacency becomes exactly one road: datasets list each road once per
// direction, and only the first direction encountered (in slice order) is
// kept along with its distance.
//
// A city that appears in adjacency but not in cities is an error wrapping
// [ErrUnknownCity]; it is never added implicitly.
func Build(cities []City, adjacency []Adjacency) (*Graph, error) {
	g := New()
	for _, c := range cities {
		if err := g.AddCity(c); err != nil {
			return nil, fmt.Errorf("city %s: %w", c.Name, err)
		}
	}
	for _, adj := range adjacency {
		for _, n := range adj.Neighbors {
			if _, err := g.AddRoad(adj.City, n.City, n.Distance); err != nil {
				return nil, fmt.Errorf("road %s→%s: %w", adj.City, n.City, err)
			}
		}
	}
	return g, nil
}

// Adjacency returns the graph as adjacency lists with both directions of
// every road listed, the shape datasets use. Cities without roads appear
// with an empty neighbour list.
func (g *Graph) Adjacency() []Adjacency {
	pos := make(map[string]int, len(g.names))
	out := make([]Adjacency, len(g.names))
	for i, name := range g.names {
		pos[name] = i
		out[i] = Adjacency{City: name}
	}
	for _, r := range g.roads {
		i := pos[r.From]
		out[i].Neighbors = append(out[i].Neighbors, Neighbor{City: r.To, Distance: r.Distance})
		if r.IsLoop() {
			continue
		}
		j := pos[r.To]
		out[j].Neighbors = append(out[j].Neighbors, Neighbor{City: r.From, Distance: r.Distance})
	}
	return out
}
