package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/flight-search/interconnecting-flights/internal/domain"
	"github.com/flight-search/interconnecting-flights/internal/infrastructure/logger"
)

// Source is an upstream that reports failures instead of hiding them.
// FetchMonthlySchedule returns an error wrapping domain.ErrNoData when the
// upstream has no timetable for the key.
type Source interface {
	Name() string
	FetchRoutes(ctx context.Context) ([]domain.Route, error)
	FetchMonthlySchedule(ctx context.Context, departure, arrival string, ym domain.YearMonth) (*domain.MonthlySchedule, error)
}

// Config holds the entry lifetimes and the bound on a shared upstream fetch.
type Config struct {
	RoutesTTL    time.Duration
	SchedulesTTL time.Duration
	// FetchTimeout bounds an upstream fetch. Zero means no bound beyond the
	// source's own timeouts.
	FetchTimeout time.Duration
}

// DefaultConfig returns the default lifetimes.
func DefaultConfig() Config {
	return Config{
		RoutesTTL:    24 * time.Hour,
		SchedulesTTL: time.Hour,
		FetchTimeout: 20 * time.Second,
	}
}

const routesKey = "routes"

// Provider serves routes and schedules from a Store, falling back to the
// Source on a miss. Successful responses and known absences are cached;
// failures are not, so the next search asks the upstream again.
type Provider struct {
	source Source
	store  Store
	cfg    Config
	group  singleflight.Group
}

// NewProvider creates a caching Provider in front of source.
func NewProvider(source Source, store Store, cfg Config) *Provider {
	return &Provider{
		source: source,
		store:  store,
		cfg:    cfg,
	}
}

// Name returns the name of the wrapped source.
func (p *Provider) Name() string {
	return p.source.Name()
}

// Routes returns all routes, or an empty list if the upstream failed.
func (p *Provider) Routes(ctx context.Context) []domain.Route {
	var routes []domain.Route
	if p.lookup(ctx, routesKey, &routes) {
		return routes
	}

	v, ok := p.shared(ctx, routesKey, func(ctx context.Context) interface{} {
		var cached []domain.Route
		if p.lookup(ctx, routesKey, &cached) {
			return cached
		}

		routes, err := p.source.FetchRoutes(ctx)
		if err != nil {
			logger.FromContext(ctx).WithProvider(p.source.Name()).Warn().
				Err(err).
				Bool("timeout", domain.IsProviderTimeout(err)).
				Msg("Failed to fetch routes")
			return []domain.Route{}
		}
		p.save(ctx, routesKey, routes, p.cfg.RoutesTTL)
		return routes
	})
	if !ok {
		return []domain.Route{}
	}

	return v.([]domain.Route)
}

// MonthlySchedule returns the timetable for the pair and month, or nil when
// there is none or the upstream failed.
func (p *Provider) MonthlySchedule(ctx context.Context, departure, arrival string, ym domain.YearMonth) *domain.MonthlySchedule {
	key := scheduleKey(departure, arrival, ym)

	var schedule *domain.MonthlySchedule
	if p.lookup(ctx, key, &schedule) {
		return schedule
	}

	v, ok := p.shared(ctx, key, func(ctx context.Context) interface{} {
		// a previous flight for this key may have filled the store since the lookup above
		var cached *domain.MonthlySchedule
		if p.lookup(ctx, key, &cached) {
			return cached
		}

		schedule, err := p.source.FetchMonthlySchedule(ctx, departure, arrival, ym)
		if err != nil {
			if domain.IsNoData(err) {
				// remember the absence; stored as JSON null
				p.save(ctx, key, (*domain.MonthlySchedule)(nil), p.cfg.SchedulesTTL)
			} else {
				logger.FromContext(ctx).WithProvider(p.source.Name()).WithRoute(departure, arrival).Warn().
					Err(err).
					Bool("timeout", domain.IsProviderTimeout(err)).
					Str("month", ym.String()).
					Msg("Failed to fetch schedule")
			}
			return (*domain.MonthlySchedule)(nil)
		}
		p.save(ctx, key, schedule, p.cfg.SchedulesTTL)
		return schedule
	})
	if !ok {
		return nil
	}

	return v.(*domain.MonthlySchedule)
}

// shared runs fetch at most once per key among concurrent callers. The fetch
// runs on a context detached from the caller that started it, so cancelling
// one caller does not fail the others. Each caller stops waiting when its own
// context is done and then gets ok == false.
func (p *Provider) shared(ctx context.Context, key string, fetch func(ctx context.Context) interface{}) (v interface{}, ok bool) {
	ch := p.group.DoChan(key, func() (interface{}, error) {
		fetchCtx := context.WithoutCancel(ctx)
		if p.cfg.FetchTimeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(fetchCtx, p.cfg.FetchTimeout)
			defer cancel()
		}
		return fetch(fetchCtx), nil
	})

	select {
	case res := <-ch:
		return res.Val, true
	case <-ctx.Done():
		return nil, false
	}
}

// lookup decodes a cached entry into dst. Store and decode failures count as a miss.
func (p *Provider) lookup(ctx context.Context, key string, dst interface{}) bool {
	data, ok, err := p.store.Get(ctx, key)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("Cache read failed")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("Discarding undecodable cache entry")
		return false
	}
	return true
}

func (p *Provider) save(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("Failed to encode cache entry")
		return
	}
	if err := p.store.Set(ctx, key, data, ttl); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

func scheduleKey(departure, arrival string, ym domain.YearMonth) string {
	return fmt.Sprintf("schedule:%s:%s:%s", departure, arrival, ym)
}

// Ensure Provider implements the provider interfaces.
var (
	_ domain.RouteProvider    = (*Provider)(nil)
	_ domain.ScheduleProvider = (*Provider)(nil)
)
