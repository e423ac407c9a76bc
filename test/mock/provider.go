// Package mock provides an in-memory timetable for integration tests.
// It plays both the route and the schedule provider, with configurable
// delays and outages, and counts the schedule requests it receives.
package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/flight-search/interconnecting-flights/internal/domain"
)

type pairKey struct {
	departure string
	arrival   string
}

type datedFlight struct {
	date   time.Time
	flight domain.ScheduledFlight
}

// Timetable is a configurable implementation of domain.RouteProvider and
// domain.ScheduleProvider.
type Timetable struct {
	mu sync.Mutex

	routes      []domain.Route
	flights     map[pairKey][]datedFlight
	unavailable map[pairKey]bool
	delay       time.Duration

	scheduleCalls map[string]int
	inFlight      int
	peakInFlight  int
}

// NewTimetable creates an empty timetable.
func NewTimetable() *Timetable {
	return &Timetable{
		flights:       make(map[pairKey][]datedFlight),
		unavailable:   make(map[pairKey]bool),
		scheduleCalls: make(map[string]int),
	}
}

// WithRoute adds a direct RYANAIR route.
func (t *Timetable) WithRoute(departure, arrival string) *Timetable {
	return t.WithOperatorRoute(departure, arrival, "RYANAIR")
}

// WithOperatorRoute adds a direct route flown by operator.
func (t *Timetable) WithOperatorRoute(departure, arrival, operator string) *Timetable {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.routes = append(t.routes, domain.Route{AirportFrom: departure, AirportTo: arrival, Operator: operator})
	return t
}

// WithFlight adds a flight on date ("2006-01-02") with "15:04" clock times.
// The route is not added implicitly.
func (t *Timetable) WithFlight(departure, arrival, date, departureTime, arrivalTime string) *Timetable {
	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		panic(fmt.Sprintf("mock: bad date %q: %v", date, err))
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := pairKey{departure, arrival}
	t.flights[key] = append(t.flights[key], datedFlight{
		date: day,
		flight: domain.ScheduledFlight{
			CarrierCode:   "FR",
			Number:        fmt.Sprintf("%d", len(t.flights[key])+1000),
			DepartureTime: domain.MustParseClockTime(departureTime),
			ArrivalTime:   domain.MustParseClockTime(arrivalTime),
		},
	})
	return t
}

// WithUnavailable makes every schedule request for the pair report no data.
func (t *Timetable) WithUnavailable(departure, arrival string) *Timetable {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.unavailable[pairKey{departure, arrival}] = true
	return t
}

// WithDelay makes every schedule request wait d, or until ctx is done.
func (t *Timetable) WithDelay(d time.Duration) *Timetable {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.delay = d
	return t
}

// Name returns the provider identifier.
func (t *Timetable) Name() string {
	return "mock"
}

// Routes implements domain.RouteProvider.
func (t *Timetable) Routes(ctx context.Context) []domain.Route {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]domain.Route{}, t.routes...)
}

// MonthlySchedule implements domain.ScheduleProvider.
func (t *Timetable) MonthlySchedule(ctx context.Context, departure, arrival string, ym domain.YearMonth) *domain.MonthlySchedule {
	key := pairKey{departure, arrival}

	t.mu.Lock()
	t.scheduleCalls[fmt.Sprintf("%s-%s-%s", departure, arrival, ym)]++
	t.inFlight++
	if t.inFlight > t.peakInFlight {
		t.peakInFlight = t.inFlight
	}
	delay := t.delay
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.inFlight--
		t.mu.Unlock()
	}()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.unavailable[key] {
		return nil
	}

	byDay := make(map[int][]domain.ScheduledFlight)
	for _, df := range t.flights[key] {
		if domain.YearMonthOf(df.date) == ym {
			byDay[df.date.Day()] = append(byDay[df.date.Day()], df.flight)
		}
	}
	if len(byDay) == 0 {
		return nil
	}

	days := make([]int, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Ints(days)

	schedule := &domain.MonthlySchedule{Month: int(ym.Month)}
	for _, day := range days {
		schedule.Days = append(schedule.Days, domain.DaySchedule{Day: day, Flights: byDay[day]})
	}
	return schedule
}

// ScheduleCalls returns how often the schedule for "DEP-ARR-YYYY-MM" was requested.
func (t *Timetable) ScheduleCalls(key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scheduleCalls[key]
}

// TotalScheduleCalls returns the number of schedule requests received.
func (t *Timetable) TotalScheduleCalls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := 0
	for _, n := range t.scheduleCalls {
		total += n
	}
	return total
}

// PeakInFlight returns the highest number of concurrent schedule requests seen.
func (t *Timetable) PeakInFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.peakInFlight
}

// Ensure Timetable implements the provider interfaces.
var (
	_ domain.RouteProvider    = (*Timetable)(nil)
	_ domain.ScheduleProvider = (*Timetable)(nil)
)
