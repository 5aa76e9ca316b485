package citygraph

import (
	"errors"
	"fmt"
	"math"

	"github.com/dominikbraun/graph"
)

var (
	// ErrInvalidCity is returned by [Graph.AddCity] when the city name is empty.
	ErrInvalidCity = errors.New("city name must not be empty")

	// ErrDuplicateCity is returned by [Graph.AddCity] when a city with the
	// same name already exists. City names are the graph's keys.
	ErrDuplicateCity = errors.New("duplicate city")

	// ErrUnknownCity is returned by [Graph.AddRoad] and [Build] when a road
	// references a city that was never added.
	ErrUnknownCity = errors.New("unknown city")

	// ErrInvalidDistance is returned by [Graph.AddRoad] for NaN or infinite
	// distances, which would poison edge-width scaling.
	ErrInvalidDistance = errors.New("distance must be a finite number")
)

// attrCountry is the vertex attribute holding a city's country.
const attrCountry = "country"

// City is a graph node. Name is the unique key.
type City struct {
	Name    string
	Country string
}

// Road is an undirected weighted edge. From and To record the direction in
// which the road was first encountered; Distance is the edge weight.
type Road struct {
	From     string
	To       string
	Distance float64
}

// Other returns the endpoint of r that is not name.
func (r Road) Other(name string) string {
	if r.From == name {
		return r.To
	}
	return r.From
}

// IsLoop reports whether the road starts and ends in the same city.
func (r Road) IsLoop() bool { return r.From == r.To }

// Graph is an undirected weighted city graph.
//
// Storage and duplicate detection are delegated to an undirected
// [graph.Graph]; Graph additionally remembers insertion order so rendering
// and serialization are deterministic.
//
// The zero value is not usable - use [New] or [Build].
// Graph is not safe for concurrent mutation.
type Graph struct {
	g     graph.Graph[string, City]
	names []string
	roads []Road
	index map[[2]string]int
}

func cityHash(c City) string { return c.Name }

// pairKey orders the endpoints so both directions map to one key.
func pairKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		g:     graph.New(cityHash, graph.Weighted()),
		index: make(map[[2]string]int),
	}
}

// AddCity adds a node. Returns ErrInvalidCity for an empty name and
// ErrDuplicateCity if the name is already present.
func (g *Graph) AddCity(c City) error {
	if c.Name == "" {
		return ErrInvalidCity
	}
	err := g.g.AddVertex(c, graph.VertexAttribute(attrCountry, c.Country))
	if errors.Is(err, graph.ErrVertexAlreadyExists) {
		return fmt.Errorf("%w: %s", ErrDuplicateCity, c.Name)
	}
	if err != nil {
		return err
	}
	g.names = append(g.names, c.Name)
	return nil
}

// AddRoad adds the undirected road from–to.
//
// If the unordered pair already exists (in either direction) the call is a
// no-op and reports added == false: the first encountered direction and its
// distance are kept. Returns ErrUnknownCity if either endpoint is missing.
func (g *Graph) AddRoad(from, to string, distance float64) (added bool, err error) {
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return false, fmt.Errorf("%w: %s–%s", ErrInvalidDistance, from, to)
	}
	for _, name := range [2]string{from, to} {
		if _, err := g.g.Vertex(name); err != nil {
			return false, fmt.Errorf("%w: %q", ErrUnknownCity, name)
		}
	}

	err = g.g.AddEdge(from, to,
		graph.EdgeWeight(int(math.Round(distance))),
		graph.EdgeData(distance),
	)
	if errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	g.index[pairKey(from, to)] = len(g.roads)
	g.roads = append(g.roads, Road{From: from, To: to, Distance: distance})
	return true, nil
}

// City returns the city with the given name.
func (g *Graph) City(name string) (City, bool) {
	_, props, err := g.g.VertexWithProperties(name)
	if err != nil {
		return City{}, false
	}
	return City{Name: name, Country: props.Attributes[attrCountry]}, true
}

// Cities returns all cities in insertion order.
func (g *Graph) Cities() []City {
	out := make([]City, 0, len(g.names))
	for _, name := range g.names {
		c, _ := g.City(name)
		out = append(out, c)
	}
	return out
}

// Roads returns all roads in insertion order. The slice is a copy.
func (g *Graph) Roads() []Road {
	out := make([]Road, len(g.roads))
	copy(out, g.roads)
	return out
}

// Road returns the road between a and b regardless of direction.
func (g *Graph) Road(a, b string) (Road, bool) {
	i, ok := g.index[pairKey(a, b)]
	if !ok {
		return Road{}, false
	}
	return g.roads[i], true
}

// NodeCount returns the number of cities.
func (g *Graph) NodeCount() int { return len(g.names) }

// EdgeCount returns the number of distinct roads.
func (g *Graph) EdgeCount() int { return len(g.roads) }

// Degree returns the number of roads incident to name. A self-loop counts
// twice. Unknown cities have degree 0.
func (g *Graph) Degree(name string) int {
	deg := 0
	for _, r := range g.roads {
		if r.From == name {
			deg++
		}
		if r.To == name {
			deg++
		}
	}
	return deg
}

// Degrees returns the degree of every city, keyed by name.
func (g *Graph) Degrees() map[string]int {
	adj, err := g.g.AdjacencyMap()
	if err != nil {
		out := make(map[string]int, len(g.names))
		for _, name := range g.names {
			out[name] = g.Degree(name)
		}
		return out
	}

	out := make(map[string]int, len(adj))
	for name, neighbours := range adj {
		deg := len(neighbours)
		if _, loop := neighbours[name]; loop {
			deg++
		}
		out[name] = deg
	}
	return out
}

// MaxDistance returns the largest road distance, or 0 when there are no
// roads.
func (g *Graph) MaxDistance() float64 {
	var max float64
	for _, r := range g.roads {
		if r.Distance > max {
			max = r.Distance
		}
	}
	return max
}
