package citygraph

import (
	"errors"
	"math"
	"testing"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		cities    []City
		adjacency []Adjacency
		wantNodes int
		wantEdges int
		wantErr   error
		check     func(t *testing.T, g *Graph)
	}{
		{
			name:      "Empty",
			wantNodes: 0,
			wantEdges: 0,
		},
		{
			name:      "CitiesWithoutRoads",
			cities:    []City{{Name: "A"}, {Name: "B"}},
			wantNodes: 2,
			wantEdges: 0,
		},
		{
			name:   "BothDirectionsFoldToOne",
			cities: []City{{Name: "A", Country: "X"}, {Name: "B", Country: "Y"}},
			adjacency: []Adjacency{
				{City: "A", Neighbors: []Neighbor{{City: "B", Distance: 10}}},
				{City: "B", Neighbors: []Neighbor{{City: "A", Distance: 10}}},
			},
			wantNodes: 2,
			wantEdges: 1,
			check: func(t *testing.T, g *Graph) {
				r, ok := g.Road("B", "A")
				if !ok {
					t.Fatal("road A–B not found")
				}
				if r.From != "A" || r.To != "B" {
					t.Errorf("road = %s→%s, want A→B", r.From, r.To)
				}
				if r.Distance != 10 {
					t.Errorf("distance = %v, want 10", r.Distance)
				}
			},
		},
		{
			name:   "FirstDirectionWins",
			cities: []City{{Name: "A"}, {Name: "B"}},
			adjacency: []Adjacency{
				{City: "B", Neighbors: []Neighbor{{City: "A", Distance: 7}}},
				{City: "A", Neighbors: []Neighbor{{City: "B", Distance: 9}}},
			},
			wantNodes: 2,
			wantEdges: 1,
			check: func(t *testing.T, g *Graph) {
				r, _ := g.Road("A", "B")
				if r.From != "B" || r.Distance != 7 {
					t.Errorf("road = %s→%s (%v), want B→A (7)", r.From, r.To, r.Distance)
				}
			},
		},
		{
			name: "Triangle",
			cities: []City{
				{Name: "Paris", Country: "France"},
				{Name: "Lyon", Country: "France"},
				{Name: "Zurich", Country: "Switzerland"},
			},
			adjacency: []Adjacency{
				{City: "Paris", Neighbors: []Neighbor{{City: "Lyon", Distance: 465}, {City: "Zurich", Distance: 603}}},
				{City: "Lyon", Neighbors: []Neighbor{{City: "Paris", Distance: 465}, {City: "Zurich", Distance: 408}}},
				{City: "Zurich", Neighbors: []Neighbor{{City: "Paris", Distance: 603}, {City: "Lyon", Distance: 408}}},
			},
			wantNodes: 3,
			wantEdges: 3,
			check: func(t *testing.T, g *Graph) {
				for _, name := range []string{"Paris", "Lyon", "Zurich"} {
					if d := g.Degree(name); d != 2 {
						t.Errorf("Degree(%s) = %d, want 2", name, d)
					}
				}
				if got := g.MaxDistance(); got != 603 {
					t.Errorf("MaxDistance() = %v, want 603", got)
				}
			},
		},
		{
			name:   "UnknownNeighbor",
			cities: []City{{Name: "A"}},
			adjacency: []Adjacency{
				{City: "A", Neighbors: []Neighbor{{City: "Atlantis", Distance: 1}}},
			},
			wantErr: ErrUnknownCity,
		},
		{
			name:   "UnknownSource",
			cities: []City{{Name: "A"}},
			adjacency: []Adjacency{
				{City: "Atlantis", Neighbors: []Neighbor{{City: "A", Distance: 1}}},
			},
			wantErr: ErrUnknownCity,
		},
		{
			name:    "DuplicateCity",
			cities:  []City{{Name: "A"}, {Name: "A"}},
			wantErr: ErrDuplicateCity,
		},
		{
			name:    "EmptyName",
			cities:  []City{{Name: ""}},
			wantErr: ErrInvalidCity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(tt.cities, tt.adjacency)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Build() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if got := g.NodeCount(); got != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", got, tt.wantNodes)
			}
			if got := g.EdgeCount(); got != tt.wantEdges {
				t.Errorf("edges = %d, want %d", got, tt.wantEdges)
			}
			if tt.check != nil {
				tt.check(t, g)
			}
		})
	}
}

func TestCityCountry(t *testing.T) {
	g := New()
	if err := g.AddCity(City{Name: "Prague", Country: "Czechia"}); err != nil {
		t.Fatal(err)
	}

	c, ok := g.City("Prague")
	if !ok {
		t.Fatal("City(Prague) not found")
	}
	if c.Country != "Czechia" {
		t.Errorf("country = %q, want Czechia", c.Country)
	}

	if _, ok := g.City("Vienna"); ok {
		t.Error("City(Vienna) should not be found")
	}
}

func TestAddRoad(t *testing.T) {
	g := New()
	g.AddCity(City{Name: "A"})
	g.AddCity(City{Name: "B"})

	added, err := g.AddRoad("A", "B", 5)
	if err != nil || !added {
		t.Fatalf("AddRoad(A, B) = %v, %v; want true, nil", added, err)
	}

	added, err = g.AddRoad("B", "A", 5)
	if err != nil {
		t.Fatalf("AddRoad(B, A) error = %v", err)
	}
	if added {
		t.Error("reverse road should not be added")
	}

	added, err = g.AddRoad("A", "B", 99)
	if err != nil || added {
		t.Errorf("repeat AddRoad(A, B) = %v, %v; want false, nil", added, err)
	}
	if r, _ := g.Road("A", "B"); r.Distance != 5 {
		t.Errorf("distance = %v, want first value 5", r.Distance)
	}

	if g.EdgeCount() != 1 {
		t.Errorf("edges = %d, want 1", g.EdgeCount())
	}
}

func TestAddRoadInvalidDistance(t *testing.T) {
	g := New()
	g.AddCity(City{Name: "A"})
	g.AddCity(City{Name: "B"})

	if _, err := g.AddRoad("A", "B", math.NaN()); !errors.Is(err, ErrInvalidDistance) {
		t.Errorf("AddRoad(NaN) error = %v, want ErrInvalidDistance", err)
	}
}

func TestDegrees(t *testing.T) {
	g, err := Build(
		[]City{{Name: "hub"}, {Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "alone"}},
		[]Adjacency{
			{City: "hub", Neighbors: []Neighbor{{City: "a", Distance: 1}, {City: "b", Distance: 2}, {City: "c", Distance: 3}}},
			{City: "a", Neighbors: []Neighbor{{City: "hub", Distance: 1}}},
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]int{"hub": 3, "a": 1, "b": 1, "c": 1, "alone": 0}
	got := g.Degrees()
	for name, d := range want {
		if got[name] != d {
			t.Errorf("Degrees()[%s] = %d, want %d", name, got[name], d)
		}
		if g.Degree(name) != d {
			t.Errorf("Degree(%s) = %d, want %d", name, g.Degree(name), d)
		}
	}
}

func TestSelfLoopDegree(t *testing.T) {
	g := New()
	g.AddCity(City{Name: "A"})
	if _, err := g.AddRoad("A", "A", 0); err != nil {
		t.Fatalf("AddRoad(A, A) error = %v", err)
	}
	if d := g.Degree("A"); d != 2 {
		t.Errorf("Degree(A) = %d, want 2", d)
	}
	if d := g.Degrees()["A"]; d != 2 {
		t.Errorf("Degrees()[A] = %d, want 2", d)
	}
}

func TestMaxDistanceEmpty(t *testing.T) {
	if got := New().MaxDistance(); got != 0 {
		t.Errorf("MaxDistance() = %v, want 0", got)
	}
}

func TestInsertionOrder(t *testing.T) {
	names := []string{"Madrid", "Barcelona", "Amsterdam", "Zurich"}
	g := New()
	for _, n := range names {
		g.AddCity(City{Name: n})
	}

	for i, c := range g.Cities() {
		if c.Name != names[i] {
			t.Errorf("Cities()[%d] = %s, want %s", i, c.Name, names[i])
		}
	}
}

func TestAdjacencyRoundTrip(t *testing.T) {
	cities := []City{{Name: "A", Country: "X"}, {Name: "B", Country: "X"}, {Name: "C", Country: "Y"}}
	adj := []Adjacency{
		{City: "A", Neighbors: []Neighbor{{City: "B", Distance: 1}}},
		{City: "B", Neighbors: []Neighbor{{City: "A", Distance: 1}, {City: "C", Distance: 2}}},
		{City: "C", Neighbors: []Neighbor{{City: "B", Distance: 2}}},
	}

	g, err := Build(cities, adj)
	if err != nil {
		t.Fatal(err)
	}

	out := g.Adjacency()
	if len(out) != 3 {
		t.Fatalf("Adjacency() len = %d, want 3", len(out))
	}
	if len(out[1].Neighbors) != 2 {
		t.Errorf("B neighbours = %d, want 2", len(out[1].Neighbors))
	}

	again, err := Build(g.Cities(), out)
	if err != nil {
		t.Fatal(err)
	}
	if again.EdgeCount() != g.EdgeCount() {
		t.Errorf("rebuilt edges = %d, want %d", again.EdgeCount(), g.EdgeCount())
	}
}
