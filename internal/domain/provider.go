package domain

import "context"

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=domain

// RouteProvider supplies the carrier's route network.
// Implementations never fail: any upstream error is reported as an empty list.
type RouteProvider interface {
	// Name returns the provider identifier used in logs.
	Name() string

	// Routes returns every published route record.
	Routes(ctx context.Context) []Route
}

// ScheduleProvider supplies monthly timetables for an airport pair.
type ScheduleProvider interface {
	// Name returns the provider identifier used in logs.
	Name() string

	// MonthlySchedule returns the timetable for departure -> arrival in the given month,
	// or nil when the month has no service or the upstream failed.
	MonthlySchedule(ctx context.Context, departure, arrival string, ym YearMonth) *MonthlySchedule
}
