// Package usecase implements the itinerary search on top of the route and
// schedule providers.
package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/flight-search/interconnecting-flights/internal/domain"
	"github.com/flight-search/interconnecting-flights/internal/infrastructure/logger"
)

// Default search settings.
const (
	DefaultCarrier              = "RYANAIR"
	DefaultMinConnectionTime    = 2 * time.Hour
	DefaultMaxConcurrentFetches = 8
	DefaultSearchTimeout        = 20 * time.Second
)

// InterconnectionSearchUseCase defines the interface for itinerary search operations.
type InterconnectionSearchUseCase interface {
	// Search returns every itinerary from criteria.Departure to criteria.Arrival
	// within the requested window, grouped by stop-count from 0 to criteria.MaxStops.
	// A stop-count without results is represented by a single itinerary with no legs.
	Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Itinerary, error)
}

// Config contains configuration options for the use case.
type Config struct {
	// Carrier is the operator whose routes are searched.
	Carrier string

	// MinConnectionTime is the minimum gap between an arrival and the next departure.
	MinConnectionTime time.Duration

	// MaxConcurrentFetches bounds in-flight schedule requests across all searches.
	MaxConcurrentFetches int

	// SearchTimeout bounds a single search.
	SearchTimeout time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Carrier:              DefaultCarrier,
		MinConnectionTime:    DefaultMinConnectionTime,
		MaxConcurrentFetches: DefaultMaxConcurrentFetches,
		SearchTimeout:        DefaultSearchTimeout,
	}
}

type interconnectionSearchUseCase struct {
	routes    domain.RouteProvider
	schedules domain.ScheduleProvider

	carrier           string
	minConnectionTime time.Duration
	searchTimeout     time.Duration
	fetchLimiter      *semaphore.Weighted
}

// NewInterconnectionSearchUseCase creates a new InterconnectionSearchUseCase.
// If config is nil, or a field is left at its zero value, the default is used.
func NewInterconnectionSearchUseCase(routes domain.RouteProvider, schedules domain.ScheduleProvider, config *Config) InterconnectionSearchUseCase {
	cfg := DefaultConfig()
	if config != nil {
		if config.Carrier != "" {
			cfg.Carrier = config.Carrier
		}
		if config.MinConnectionTime > 0 {
			cfg.MinConnectionTime = config.MinConnectionTime
		}
		if config.MaxConcurrentFetches > 0 {
			cfg.MaxConcurrentFetches = config.MaxConcurrentFetches
		}
		if config.SearchTimeout > 0 {
			cfg.SearchTimeout = config.SearchTimeout
		}
	}

	return &interconnectionSearchUseCase{
		routes:            routes,
		schedules:         schedules,
		carrier:           cfg.Carrier,
		minConnectionTime: cfg.MinConnectionTime,
		searchTimeout:     cfg.SearchTimeout,
		fetchLimiter:      semaphore.NewWeighted(int64(cfg.MaxConcurrentFetches)),
	}
}

// Search implements InterconnectionSearchUseCase.Search.
func (uc *interconnectionSearchUseCase) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Itinerary, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	startTime := time.Now()
	log := logger.FromContext(ctx).WithRoute(criteria.Departure, criteria.Arrival)

	ctx, cancel := context.WithTimeout(ctx, uc.searchTimeout)
	defer cancel()

	graph := BuildRouteGraph(uc.routes.Routes(ctx), uc.carrier)
	log.Debug().
		Int("airports", graph.Len()).
		Str("carrier", uc.carrier).
		Msg("Route graph built")

	loader := newTimetableLoader(uc.schedules, uc.fetchLimiter)

	byStops := make([][]domain.Itinerary, criteria.MaxStops+1)
	var g errgroup.Group
	for stops := range byStops {
		g.Go(func() error {
			byStops[stops] = uc.searchStops(ctx, graph, loader, criteria, stops)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		log.Warn().
			Err(err).
			Dur("elapsed", time.Since(startTime)).
			Msg("Interconnection search did not complete")
		return nil, err
	}

	var itineraries []domain.Itinerary
	found := 0
	for _, group := range byStops {
		for _, it := range group {
			if !it.IsEmpty() {
				found++
			}
		}
		itineraries = append(itineraries, group...)
	}

	log.Info().
		Int("max_stops", criteria.MaxStops).
		Int("itineraries", found).
		Int64("duration_ms", time.Since(startTime).Milliseconds()).
		Msg("Interconnection search completed")

	return itineraries, nil
}

// searchStops collects every itinerary with exactly stops connections, or a
// single sentinel when there is none.
func (uc *interconnectionSearchUseCase) searchStops(ctx context.Context, graph *domain.RouteGraph, loader *timetableLoader, criteria domain.SearchCriteria, stops int) []domain.Itinerary {
	var paths []domain.Path
	if stops == 0 {
		if graph.HasEdge(criteria.Departure, criteria.Arrival) {
			paths = []domain.Path{{criteria.Departure, criteria.Arrival}}
		}
	} else {
		paths = graph.Paths(criteria.Departure, criteria.Arrival, stops)
	}

	byPath := make([][]domain.Itinerary, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			byPath[i] = uc.connectionSearch(ctx, loader, path, criteria.DepartureDateTime, criteria.ArrivalDateTime)
			return nil
		})
	}
	_ = g.Wait()

	var itineraries []domain.Itinerary
	for _, found := range byPath {
		itineraries = append(itineraries, found...)
	}

	if len(itineraries) == 0 {
		return []domain.Itinerary{domain.NoItinerary(stops)}
	}
	return itineraries
}

// Ensure interconnectionSearchUseCase implements InterconnectionSearchUseCase at compile time.
var _ InterconnectionSearchUseCase = (*interconnectionSearchUseCase)(nil)
