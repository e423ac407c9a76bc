package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/flight-search/interconnecting-flights/internal/domain"
)

// searchNode is one flight in the connection search tree.
// parent indexes the previous leg in the arena, or -1 for a first leg.
type searchNode struct {
	flight domain.Flight
	parent int
}

// connectionSearch finds every itinerary that realizes path within [start, end].
//
// The tree is grown one hop at a time: each node of the current frontier is
// expanded with the flights it can connect to, and nodes without any
// connection are dropped. Once the last hop is expanded, every frontier node
// is walked back to its root to produce the legs. Results come out in
// depth-first order of the tree.
func (uc *interconnectionSearchUseCase) connectionSearch(ctx context.Context, loader *timetableLoader, path domain.Path, start, end time.Time) []domain.Itinerary {
	if len(path) < 2 {
		return nil
	}

	roots := loader.flights(ctx, path[0], path[1], start, end)

	arena := make([]searchNode, 0, len(roots))
	frontier := make([]int, 0, len(roots))
	for _, f := range roots {
		arena = append(arena, searchNode{flight: f, parent: -1})
		frontier = append(frontier, len(arena)-1)
	}

	for hop := 2; hop < len(path) && len(frontier) > 0; hop++ {
		children := uc.expand(ctx, loader, path[hop-1], path[hop], arena, frontier, end)

		next := make([]int, 0, len(frontier))
		for i, parent := range frontier {
			for _, f := range children[i] {
				arena = append(arena, searchNode{flight: f, parent: parent})
				next = append(next, len(arena)-1)
			}
		}
		frontier = next
	}

	itineraries := make([]domain.Itinerary, 0, len(frontier))
	for _, idx := range frontier {
		legs := make([]domain.Flight, path.Stops()+1)
		for i := len(legs) - 1; i >= 0; i-- {
			legs[i] = arena[idx].flight
			idx = arena[idx].parent
		}
		itineraries = append(itineraries, domain.NewItinerary(legs))
	}

	return itineraries
}

// expand fetches the onward flights of every frontier node concurrently.
// children[i] holds the candidates for frontier[i].
func (uc *interconnectionSearchUseCase) expand(ctx context.Context, loader *timetableLoader, departure, arrival string, arena []searchNode, frontier []int, end time.Time) [][]domain.Flight {
	children := make([][]domain.Flight, len(frontier))

	var g errgroup.Group
	for i, idx := range frontier {
		earliest := arena[idx].flight.ArrivalDateTime.Add(uc.minConnectionTime)
		g.Go(func() error {
			children[i] = loader.flights(ctx, departure, arrival, earliest, end)
			return nil
		})
	}
	_ = g.Wait()

	return children
}
