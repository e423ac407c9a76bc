// Package ryanair implements the route and schedule providers on top of the
// public Ryanair timetable API.
package ryanair

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/flight-search/interconnecting-flights/internal/domain"
	"github.com/flight-search/interconnecting-flights/internal/infrastructure/logger"
	"github.com/flight-search/interconnecting-flights/internal/infrastructure/retry"
)

// Default endpoints of the public API.
const (
	DefaultRoutesURL    = "https://services-api.ryanair.com/locate/3/routes"
	DefaultSchedulesURL = "https://services-api.ryanair.com/timtbl/3/schedules"
)

// Config holds the client settings.
type Config struct {
	RoutesURL      string
	SchedulesURL   string
	RequestTimeout time.Duration
	RetryAttempts  int
}

// Client talks to the Ryanair routes and schedules endpoints.
type Client struct {
	routesURL    string
	schedulesURL string
	httpClient   *http.Client
	retry        retry.Config
}

// NewClient creates a new Client. Empty fields fall back to the public defaults.
func NewClient(cfg Config) *Client {
	if strings.TrimSpace(cfg.RoutesURL) == "" {
		cfg.RoutesURL = DefaultRoutesURL
	}
	if strings.TrimSpace(cfg.SchedulesURL) == "" {
		cfg.SchedulesURL = DefaultSchedulesURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 5 * time.Second
	}

	retryCfg := retry.UpstreamConfig.WithRetryIf(domain.IsRetryable)
	if cfg.RetryAttempts > 0 {
		retryCfg = retryCfg.WithMaxAttempts(cfg.RetryAttempts)
	}

	return &Client{
		routesURL:    cfg.RoutesURL,
		schedulesURL: strings.TrimRight(cfg.SchedulesURL, "/"),
		httpClient:   &http.Client{Timeout: cfg.RequestTimeout},
		retry:        retryCfg,
	}
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return ProviderName
}

// Routes returns all published routes, or an empty list if the upstream failed.
func (c *Client) Routes(ctx context.Context) []domain.Route {
	routes, err := c.FetchRoutes(ctx)
	if err != nil {
		logger.FromContext(ctx).WithProvider(ProviderName).Warn().
			Err(err).
			Bool("timeout", domain.IsProviderTimeout(err)).
			Msg("Failed to fetch routes")
		return []domain.Route{}
	}
	return routes
}

// MonthlySchedule returns the timetable for the pair and month, or nil when
// there is none or the upstream failed.
func (c *Client) MonthlySchedule(ctx context.Context, departure, arrival string, ym domain.YearMonth) *domain.MonthlySchedule {
	schedule, err := c.FetchMonthlySchedule(ctx, departure, arrival, ym)
	if err != nil {
		if !domain.IsNoData(err) {
			logger.FromContext(ctx).WithProvider(ProviderName).WithRoute(departure, arrival).Warn().
				Err(err).
				Bool("timeout", domain.IsProviderTimeout(err)).
				Str("month", ym.String()).
				Msg("Failed to fetch schedule")
		}
		return nil
	}
	return schedule
}

// FetchRoutes returns all published routes with retries.
func (c *Client) FetchRoutes(ctx context.Context) ([]domain.Route, error) {
	var dtos []RouteDTO
	if err := c.getJSON(ctx, c.routesURL, &dtos); err != nil {
		return nil, err
	}
	return normalizeRoutes(dtos), nil
}

// FetchMonthlySchedule returns the timetable for the pair and month with retries.
// It returns an error wrapping domain.ErrNoData when the upstream has no timetable.
func (c *Client) FetchMonthlySchedule(ctx context.Context, departure, arrival string, ym domain.YearMonth) (*domain.MonthlySchedule, error) {
	var dto ScheduleDTO
	if err := c.getJSON(ctx, c.scheduleURL(departure, arrival, ym), &dto); err != nil {
		return nil, err
	}

	schedule, skipped := normalizeSchedule(dto)
	if skipped > 0 {
		logger.FromContext(ctx).WithProvider(ProviderName).WithRoute(departure, arrival).Debug().
			Int("skipped", skipped).
			Str("month", ym.String()).
			Msg("Dropped malformed timetable entries")
	}
	return schedule, nil
}

func (c *Client) scheduleURL(departure, arrival string, ym domain.YearMonth) string {
	return fmt.Sprintf("%s/%s/%s/years/%d/months/%d",
		c.schedulesURL, url.PathEscape(departure), url.PathEscape(arrival), ym.Year, int(ym.Month))
}

// getJSON fetches rawURL and decodes the body into v, retrying transient failures.
func (c *Client) getJSON(ctx context.Context, rawURL string, v interface{}) error {
	attempt := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return domain.NewProviderError(ProviderName, fmt.Errorf("build request: %w", err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return classifyTransportError(err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return domain.NewProviderError(ProviderName, fmt.Errorf("%s: %w", rawURL, domain.ErrNoData))
		case resp.StatusCode == http.StatusBadGateway || resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusGatewayTimeout:
			return domain.NewProviderUnavailableError(ProviderName, fmt.Errorf("upstream status: %s", resp.Status))
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
			return domain.NewRetryableProviderError(ProviderName, fmt.Errorf("upstream status: %s", resp.Status))
		case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
			return domain.NewProviderError(ProviderName, fmt.Errorf("upstream status: %s", resp.Status))
		}

		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return domain.NewProviderError(ProviderName, fmt.Errorf("decode response: %w", err))
		}
		return nil
	}

	return retry.Do(ctx, attempt, c.retry.WithOnRetry(func(n int, err error) {
		logger.FromContext(ctx).WithProvider(ProviderName).Debug().
			Err(err).
			Int("attempt", n).
			Msg("Retrying upstream request")
	}))
}

// classifyTransportError maps an http.Client error to a provider error.
func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return domain.NewProviderError(ProviderName, err)
	}
	var netErr interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return domain.NewProviderTimeoutError(ProviderName)
	}
	return domain.NewProviderUnavailableError(ProviderName, err)
}

// Ensure Client implements the provider interfaces.
var (
	_ domain.RouteProvider    = (*Client)(nil)
	_ domain.ScheduleProvider = (*Client)(nil)
)
