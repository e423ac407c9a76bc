package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/interconnecting-flights/internal/config"
	"github.com/flight-search/interconnecting-flights/internal/domain"
)

// fakeUpstream serves a single DUB -> WRO route with one flight on 2018-03-01.
func fakeUpstream(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()

	var scheduleCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/routes", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"airportFrom":"DUB","airportTo":"WRO","connectingAirport":null,"operator":"RYANAIR"}]`))
	})
	mux.HandleFunc("/schedules/DUB/WRO/years/2018/months/3", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&scheduleCalls, 1)
		_, _ = w.Write([]byte(`{"month":3,"days":[{"day":1,"flights":[{"carrierCode":"FR","number":"1926","departureTime":"17:50","arrivalTime":"21:25"}]}]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &scheduleCalls
}

func testConfig(upstream string, backend string) *config.Config {
	return &config.Config{
		Timeouts: config.TimeoutConfig{GlobalSearch: 5 * time.Second, UpstreamRequest: time.Second},
		Search: config.SearchConfig{
			Carrier:              "RYANAIR",
			MinConnectionTime:    2 * time.Hour,
			DefaultMaxStops:      1,
			MaxStopsLimit:        3,
			MaxConcurrentFetches: 4,
		},
		Upstream: config.UpstreamConfig{
			RoutesURL:     upstream + "/routes",
			SchedulesURL:  upstream + "/schedules",
			RetryAttempts: 1,
		},
		Cache: config.CacheConfig{
			Backend:      backend,
			RoutesTTL:    time.Hour,
			SchedulesTTL: time.Hour,
		},
	}
}

func criteria() domain.SearchCriteria {
	return domain.SearchCriteria{
		Departure:         "DUB",
		DepartureDateTime: time.Date(2018, 3, 1, 7, 0, 0, 0, time.UTC),
		Arrival:           "WRO",
		ArrivalDateTime:   time.Date(2018, 3, 3, 21, 0, 0, 0, time.UTC),
		MaxStops:          1,
	}
}

func TestNewSearch_Backends(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		backend   string
		wantCalls int32
	}{
		{backend: config.CacheBackendNone, wantCalls: 2},
		{backend: config.CacheBackendMemory, wantCalls: 1},
		{backend: config.CacheBackendRedis, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			mr.FlushAll()
			srv, calls := fakeUpstream(t)
			cfg := testConfig(srv.URL, tt.backend)
			cfg.Cache.RedisAddr = mr.Addr()

			search, err := NewSearch(context.Background(), cfg)
			require.NoError(t, err)
			defer func() { assert.NoError(t, search.Close()) }()

			for i := 0; i < 2; i++ {
				result, err := search.UseCase.Search(context.Background(), criteria())
				require.NoError(t, err)
				require.Len(t, result, 2)
				require.Len(t, result[0].Legs, 1)
				assert.Equal(t, time.Date(2018, 3, 1, 17, 50, 0, 0, time.UTC), result[0].Legs[0].DepartureDateTime)
				assert.True(t, result[1].IsEmpty())
			}

			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(calls))
		})
	}
}

func TestNewSearch_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig("http://127.0.0.1:1", config.CacheBackendRedis)
	cfg.Cache.RedisAddr = addr

	_, err := NewSearch(context.Background(), cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect cache")
}
