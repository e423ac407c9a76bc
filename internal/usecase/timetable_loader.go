package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/flight-search/interconnecting-flights/internal/domain"
	"github.com/flight-search/interconnecting-flights/internal/infrastructure/logger"
	"github.com/flight-search/interconnecting-flights/internal/infrastructure/timeutil"
)

// timetableLoader fetches and normalizes monthly timetables for one search.
// Each (pair, month) is requested from the provider at most once; concurrent
// callers asking for the same key share a single upstream call.
type timetableLoader struct {
	provider domain.ScheduleProvider
	limiter  *semaphore.Weighted

	group singleflight.Group

	mu   sync.Mutex
	memo map[string]*domain.MonthlyTimetable
}

func newTimetableLoader(provider domain.ScheduleProvider, limiter *semaphore.Weighted) *timetableLoader {
	return &timetableLoader{
		provider: provider,
		limiter:  limiter,
		memo:     make(map[string]*domain.MonthlyTimetable),
	}
}

// flights returns every departure -> arrival flight that departs at or after
// from and arrives at or before to, in timetable order.
func (l *timetableLoader) flights(ctx context.Context, departure, arrival string, from, to time.Time) []domain.Flight {
	var result []domain.Flight
	for _, ym := range timeutil.MonthsBetween(from, to) {
		timetable := l.month(ctx, departure, arrival, ym)
		if timetable == nil {
			continue
		}
		for _, f := range timetable.Flights {
			if f.DepartsWithin(from, to) {
				result = append(result, f)
			}
		}
	}
	return result
}

// month returns the normalized timetable, or nil when the month has no service.
func (l *timetableLoader) month(ctx context.Context, departure, arrival string, ym domain.YearMonth) *domain.MonthlyTimetable {
	key := fmt.Sprintf("%s-%s-%s", departure, arrival, ym)

	l.mu.Lock()
	timetable, ok := l.memo[key]
	l.mu.Unlock()
	if ok {
		return timetable
	}

	v, _, _ := l.group.Do(key, func() (interface{}, error) {
		// a previous flight for this key may have finished since the lookup above
		l.mu.Lock()
		timetable, ok := l.memo[key]
		l.mu.Unlock()
		if ok {
			return timetable, nil
		}

		timetable = NormalizeSchedule(departure, arrival, ym, l.fetch(ctx, departure, arrival, ym))

		l.mu.Lock()
		l.memo[key] = timetable
		l.mu.Unlock()

		return timetable, nil
	})

	return v.(*domain.MonthlyTimetable)
}

// fetch calls the provider under the shared concurrency limit.
// Provider panics are recovered and reported as absent data.
func (l *timetableLoader) fetch(ctx context.Context, departure, arrival string, ym domain.YearMonth) (schedule *domain.MonthlySchedule) {
	if err := l.limiter.Acquire(ctx, 1); err != nil {
		return nil
	}
	defer l.limiter.Release(1)

	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error().
				Str("provider", l.provider.Name()).
				Str("departure", departure).
				Str("arrival", arrival).
				Str("month", ym.String()).
				Interface("panic", r).
				Msg("Schedule provider panicked")
			schedule = nil
		}
	}()

	return l.provider.MonthlySchedule(ctx, departure, arrival, ym)
}
