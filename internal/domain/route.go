package domain

import "strings"

// Route is a single route record published by the upstream provider.
type Route struct {
	// AirportFrom is the IATA code of the origin airport
	AirportFrom string `json:"airportFrom"`

	// AirportTo is the IATA code of the destination airport
	AirportTo string `json:"airportTo"`

	// ConnectingAirport is set when the route is not a direct service
	ConnectingAirport *string `json:"connectingAirport"`

	// Operator identifies the operating carrier (e.g., "RYANAIR")
	Operator string `json:"operator"`
}

// IsDirect returns true when the route has no connecting airport.
func (r Route) IsDirect() bool {
	return r.ConnectingAirport == nil || strings.TrimSpace(*r.ConnectingAirport) == ""
}

// Path is an ordered sequence of airports from departure to arrival without repeats.
type Path []string

// Stops returns the number of intermediate airports on the path.
func (p Path) Stops() int {
	if len(p) < 2 {
		return 0
	}
	return len(p) - 2
}

// String joins the airports with arrows, e.g. "MAD->BCN->TNF".
func (p Path) String() string {
	return strings.Join(p, "->")
}

// RouteGraph maps an airport to the airports directly reachable from it, in insertion order.
// A graph is read-only once built and can be shared between goroutines.
type RouteGraph struct {
	edges map[string][]string
}

// NewRouteGraph creates an empty route graph.
func NewRouteGraph() *RouteGraph {
	return &RouteGraph{edges: make(map[string][]string)}
}

// AddAirport registers an airport node without outgoing edges.
func (g *RouteGraph) AddAirport(code string) {
	if _, ok := g.edges[code]; !ok {
		g.edges[code] = []string{}
	}
}

// AddEdge adds a directed edge from -> to, registering both airports.
// Duplicate edges are ignored.
func (g *RouteGraph) AddEdge(from, to string) {
	g.AddAirport(from)
	g.AddAirport(to)
	if g.HasEdge(from, to) {
		return
	}
	g.edges[from] = append(g.edges[from], to)
}

// HasAirport reports whether code is a node of the graph.
func (g *RouteGraph) HasAirport(code string) bool {
	_, ok := g.edges[code]
	return ok
}

// HasEdge reports whether there is a direct route from -> to.
func (g *RouteGraph) HasEdge(from, to string) bool {
	for _, d := range g.edges[from] {
		if d == to {
			return true
		}
	}
	return false
}

// Destinations returns the airports directly reachable from code.
func (g *RouteGraph) Destinations(code string) []string {
	return g.edges[code]
}

// Len returns the number of airports in the graph.
func (g *RouteGraph) Len() int {
	return len(g.edges)
}

// Paths returns every simple path from origin to destination with exactly stops
// intermediate airports. Paths are produced in edge insertion order.
func (g *RouteGraph) Paths(origin, destination string, stops int) []Path {
	if stops < 0 || !g.HasAirport(origin) {
		return nil
	}

	var paths []Path
	visited := map[string]bool{origin: true}
	current := make([]string, 0, stops+2)
	current = append(current, origin)

	var walk func(from string, depth int)
	walk = func(from string, depth int) {
		if depth == stops {
			if g.HasEdge(from, destination) {
				p := make(Path, len(current), len(current)+1)
				copy(p, current)
				paths = append(paths, append(p, destination))
			}
			return
		}
		for _, next := range g.edges[from] {
			if visited[next] || next == destination {
				continue
			}
			visited[next] = true
			current = append(current, next)
			walk(next, depth+1)
			current = current[:len(current)-1]
			visited[next] = false
		}
	}
	walk(origin, 0)

	return paths
}
