package ryanair

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/interconnecting-flights/internal/domain"
)

var march2018 = domain.YearMonth{Year: 2018, Month: time.March}

// newTestClient points a client at srv with fast retries.
func newTestClient(srv *httptest.Server) *Client {
	c := NewClient(Config{
		RoutesURL:      srv.URL + "/locate/3/routes",
		SchedulesURL:   srv.URL + "/timtbl/3/schedules/",
		RequestTimeout: time.Second,
		RetryAttempts:  3,
	})
	c.retry = c.retry.WithInitialDelay(time.Millisecond).WithMaxDelay(2 * time.Millisecond)
	return c
}

func TestClient_Name(t *testing.T) {
	assert.Equal(t, "ryanair", NewClient(Config{}).Name())
}

func TestClient_Defaults(t *testing.T) {
	c := NewClient(Config{})

	assert.Equal(t, DefaultRoutesURL, c.routesURL)
	assert.Equal(t, DefaultSchedulesURL, c.schedulesURL)
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
	assert.Equal(t, 3, c.retry.MaxAttempts)
}

func TestClient_Routes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/locate/3/routes", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"airportFrom":"DUB","airportTo":"WRO","connectingAirport":null,"newRoute":false,"seasonalRoute":false,"operator":"RYANAIR","group":"CITY"},
			{"airportFrom":"DUB","airportTo":"BGY","connectingAirport":"STN","newRoute":true,"seasonalRoute":false,"operator":"RYANAIR","group":"GENERIC"},
			{"airportFrom":"","airportTo":"WRO","operator":"RYANAIR"}
		]`))
	}))
	defer srv.Close()

	routes := newTestClient(srv).Routes(context.Background())

	require.Len(t, routes, 2)
	assert.Equal(t, "DUB", routes[0].AirportFrom)
	assert.Equal(t, "WRO", routes[0].AirportTo)
	assert.Nil(t, routes[0].ConnectingAirport)
	assert.Equal(t, "RYANAIR", routes[0].Operator)
	require.NotNil(t, routes[1].ConnectingAirport)
	assert.Equal(t, "STN", *routes[1].ConnectingAirport)
}

func TestClient_MonthlySchedule(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/timtbl/3/schedules/DUB/WRO/years/2018/months/3", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"month": 3,
			"days": [
				{"day": 1, "flights": [
					{"carrierCode": "FR", "number": "1926", "departureTime": "17:50", "arrivalTime": "21:25"},
					{"carrierCode": "FR", "number": "1927", "departureTime": "bad", "arrivalTime": "21:25"}
				]},
				{"day": 2, "flights": [
					{"carrierCode": "FR", "number": "1926", "departureTime": "23:00", "arrivalTime": "01:00"}
				]}
			]
		}`))
	}))
	defer srv.Close()

	schedule := newTestClient(srv).MonthlySchedule(context.Background(), "DUB", "WRO", march2018)

	require.NotNil(t, schedule)
	assert.Equal(t, 3, schedule.Month)
	require.Len(t, schedule.Days, 2)
	require.Len(t, schedule.Days[0].Flights, 1, "malformed entries are dropped")
	assert.Equal(t, "1926", schedule.Days[0].Flights[0].Number)
	assert.Equal(t, domain.ClockTime{Hour: 17, Minute: 50}, schedule.Days[0].Flights[0].DepartureTime)
	assert.Equal(t, domain.ClockTime{Hour: 1, Minute: 0}, schedule.Days[1].Flights[0].ArrivalTime)
}

func TestClient_StatusHandling(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		wantAttempts    int32
		wantNoData      bool
		wantRetry       bool
		wantUnavailable bool
	}{
		{name: "not found is absent data", status: http.StatusNotFound, wantAttempts: 1, wantNoData: true},
		{name: "bad request is permanent", status: http.StatusBadRequest, wantAttempts: 1},
		{name: "internal error is retried", status: http.StatusInternalServerError, wantAttempts: 3, wantRetry: true},
		{name: "service unavailable is retried", status: http.StatusServiceUnavailable, wantAttempts: 3, wantRetry: true, wantUnavailable: true},
		{name: "bad gateway is retried", status: http.StatusBadGateway, wantAttempts: 3, wantRetry: true, wantUnavailable: true},
		{name: "rate limit is retried", status: http.StatusTooManyRequests, wantAttempts: 3, wantRetry: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attempts int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&attempts, 1)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := newTestClient(srv)

			schedule, err := c.FetchMonthlySchedule(context.Background(), "DUB", "WRO", march2018)
			require.Error(t, err)
			assert.Nil(t, schedule)
			assert.Equal(t, tt.wantAttempts, atomic.LoadInt32(&attempts))
			assert.Equal(t, tt.wantNoData, domain.IsNoData(err))
			assert.Equal(t, tt.wantRetry, domain.IsRetryable(err))
			assert.Equal(t, tt.wantUnavailable, errors.Is(err, domain.ErrProviderUnavailable))

			// the provider interface reports every failure as absence
			assert.Nil(t, c.MonthlySchedule(context.Background(), "DUB", "WRO", march2018))
		})
	}
}

func TestClient_RecoversAfterTransientFailure(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[{"airportFrom":"DUB","airportTo":"WRO","operator":"RYANAIR"}]`))
	}))
	defer srv.Close()

	routes, err := newTestClient(srv).FetchRoutes(context.Background())

	require.NoError(t, err)
	assert.Len(t, routes, 1)
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer srv.Close()

	c := newTestClient(srv)

	_, err := c.FetchRoutes(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
	assert.NotNil(t, c.Routes(context.Background()))
	assert.Empty(t, c.Routes(context.Background()))
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(200 * time.Millisecond):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := newTestClient(srv)
	c.httpClient.Timeout = 20 * time.Millisecond

	_, err := c.FetchRoutes(context.Background())

	require.Error(t, err)
	assert.True(t, domain.IsProviderTimeout(err))
}

func TestClient_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := newTestClient(srv)
	srv.Close()

	_, err := c.FetchRoutes(context.Background())

	require.Error(t, err)
	assert.True(t, domain.IsRetryable(err))
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
	assert.False(t, domain.IsProviderTimeout(err))
}
