// Package integration wires the real HTTP layer, use case and providers
// together against in-memory or fake upstreams.
package integration

import (
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	httpAdapter "github.com/flight-search/interconnecting-flights/internal/adapter/http"
	"github.com/flight-search/interconnecting-flights/internal/adapter/http/middleware"
	"github.com/flight-search/interconnecting-flights/internal/domain"
	"github.com/flight-search/interconnecting-flights/internal/usecase"
)

// TestServer wraps an Echo instance configured like the production server.
type TestServer struct {
	Echo *echo.Echo
}

// NewTestServer creates a test server on top of uc with the default stop limits.
func NewTestServer(uc usecase.InterconnectionSearchUseCase) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	middleware.Setup(e, zerolog.Nop())
	httpAdapter.RegisterRoutes(e, httpAdapter.NewInterconnectionHandler(uc, httpAdapter.DefaultStopLimits()))

	return &TestServer{Echo: e}
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Get executes a GET request with the query parameters q.
func (ts *TestServer) Get(path string, q url.Values) Response {
	target := path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// Search calls /api/v1/interconnections.
func (ts *TestServer) Search(q url.Values) Response {
	return ts.Get("/api/v1/interconnections", q)
}

// SearchQuery builds the query string of a search.
func SearchQuery(departure, from, arrival, to string) url.Values {
	q := url.Values{}
	q.Set("departure", departure)
	q.Set("departureDateTime", from)
	q.Set("arrival", arrival)
	q.Set("arrivalDateTime", to)
	return q
}

// DefaultSearchQuery is DUB -> WRO from 2018-03-01T07:00 to 2018-03-03T21:00.
func DefaultSearchQuery() url.Values {
	return SearchQuery("DUB", "2018-03-01T07:00", "WRO", "2018-03-03T21:00")
}

// CreateUseCase creates a use case on top of a combined route and schedule provider.
func CreateUseCase(p interface {
	domain.RouteProvider
	domain.ScheduleProvider
}, config *usecase.Config) usecase.InterconnectionSearchUseCase {
	return usecase.NewInterconnectionSearchUseCase(p, p, config)
}
