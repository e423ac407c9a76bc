// Package app assembles the search use case from configuration. Both the
// HTTP server and the CLI start from here.
package app

import (
	"context"
	"fmt"

	"github.com/flight-search/interconnecting-flights/internal/adapter/cache"
	"github.com/flight-search/interconnecting-flights/internal/adapter/provider/ryanair"
	"github.com/flight-search/interconnecting-flights/internal/config"
	"github.com/flight-search/interconnecting-flights/internal/domain"
	"github.com/flight-search/interconnecting-flights/internal/infrastructure/logger"
	"github.com/flight-search/interconnecting-flights/internal/infrastructure/timeutil"
	"github.com/flight-search/interconnecting-flights/internal/usecase"
)

// Search is a ready to use search with the resources it holds.
type Search struct {
	UseCase usecase.InterconnectionSearchUseCase

	closers []func() error
}

// Close releases the resources opened by NewSearch.
func (s *Search) Close() error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NewSearch builds the upstream client, wraps it in the configured cache and
// returns the search use case on top.
func NewSearch(ctx context.Context, cfg *config.Config) (*Search, error) {
	s := &Search{}

	client := ryanair.NewClient(ryanair.Config{
		RoutesURL:      cfg.Upstream.RoutesURL,
		SchedulesURL:   cfg.Upstream.SchedulesURL,
		RequestTimeout: cfg.Timeouts.UpstreamRequest,
		RetryAttempts:  cfg.Upstream.RetryAttempts,
	})

	routes, schedules, err := s.providers(ctx, cfg, client)
	if err != nil {
		return nil, err
	}

	s.UseCase = usecase.NewInterconnectionSearchUseCase(routes, schedules, &usecase.Config{
		Carrier:              cfg.Search.Carrier,
		MinConnectionTime:    cfg.Search.MinConnectionTime,
		MaxConcurrentFetches: cfg.Search.MaxConcurrentFetches,
		SearchTimeout:        cfg.Timeouts.GlobalSearch,
	})
	return s, nil
}

func (s *Search) providers(ctx context.Context, cfg *config.Config, client *ryanair.Client) (domain.RouteProvider, domain.ScheduleProvider, error) {
	ttl := cache.Config{
		RoutesTTL:    cfg.Cache.RoutesTTL,
		SchedulesTTL: cfg.Cache.SchedulesTTL,
		FetchTimeout: cfg.Timeouts.GlobalSearch,
	}

	var store cache.Store
	switch cfg.Cache.Backend {
	case config.CacheBackendNone:
		logger.Info().Msg("Upstream cache disabled")
		return client, client, nil
	case config.CacheBackendRedis:
		rdb, err := cache.NewRedisClient(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect cache: %w", err)
		}
		s.closers = append(s.closers, rdb.Close)
		store = cache.NewRedisStore(rdb, "")
	default:
		store = cache.NewMemoryStore(timeutil.NewRealClock())
	}

	logger.Info().
		Str("backend", cfg.Cache.Backend).
		Dur("routes_ttl", ttl.RoutesTTL).
		Dur("schedules_ttl", ttl.SchedulesTTL).
		Msg("Upstream cache enabled")

	cached := cache.NewProvider(client, store, ttl)
	return cached, cached, nil
}

var _ cache.Source = (*ryanair.Client)(nil)
