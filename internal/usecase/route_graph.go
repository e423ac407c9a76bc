package usecase

import (
	"strings"

	"github.com/flight-search/interconnecting-flights/internal/domain"
)

// BuildRouteGraph turns the flat route list into a directed graph.
// Only direct routes operated by carrier are kept; everything else is skipped.
func BuildRouteGraph(routes []domain.Route, carrier string) *domain.RouteGraph {
	graph := domain.NewRouteGraph()

	for _, r := range routes {
		if !strings.EqualFold(r.Operator, carrier) || !r.IsDirect() {
			continue
		}

		from := strings.ToUpper(strings.TrimSpace(r.AirportFrom))
		to := strings.ToUpper(strings.TrimSpace(r.AirportTo))
		if from == "" || to == "" || from == to {
			continue
		}

		graph.AddEdge(from, to)
	}

	return graph
}
