package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/interconnecting-flights/internal/domain"
	"github.com/flight-search/interconnecting-flights/internal/usecase"
	"github.com/flight-search/interconnecting-flights/test/mock"
	"github.com/flight-search/interconnecting-flights/test/testutil"
)

func criteria(t *testing.T, departure, from, arrival, to string, maxStops int) domain.SearchCriteria {
	return domain.SearchCriteria{
		Departure:         departure,
		DepartureDateTime: testutil.MustParseLocal(t, from),
		Arrival:           arrival,
		ArrivalDateTime:   testutil.MustParseLocal(t, to),
		MaxStops:          maxStops,
	}
}

func TestUseCase_TwoStopsAcrossMonthBoundary(t *testing.T) {
	timetable := mock.NewTimetable().
		WithRoute("MAD", "DUB").
		WithRoute("DUB", "STN").
		WithRoute("STN", "WRO").
		WithFlight("MAD", "DUB", "2018-03-31", "18:00", "20:00").
		WithFlight("DUB", "STN", "2018-03-31", "23:30", "00:40").
		WithFlight("STN", "WRO", "2018-04-01", "06:00", "09:00").
		WithFlight("STN", "WRO", "2018-04-01", "02:00", "05:00")

	uc := CreateUseCase(timetable, nil)

	result, err := uc.Search(context.Background(),
		criteria(t, "MAD", "2018-03-31T00:00", "WRO", "2018-04-01T23:00", 2))

	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.True(t, result[0].IsEmpty())
	assert.True(t, result[1].IsEmpty())

	trip := result[2]
	assert.Equal(t, 2, trip.Stops)
	require.Len(t, trip.Legs, 3)
	assert.Equal(t, testutil.MustParseLocal(t, "2018-04-01T00:40"), trip.Legs[1].ArrivalDateTime, "overnight leg lands the next day")
	assert.Equal(t, testutil.MustParseLocal(t, "2018-04-01T06:00"), trip.Legs[2].DepartureDateTime)

	// STN -> WRO is looked up in April only, once
	assert.Equal(t, 1, timetable.ScheduleCalls("STN-WRO-2018-04"))
	assert.Zero(t, timetable.ScheduleCalls("STN-WRO-2018-03"))
}

func TestUseCase_MinConnectionTimeIsConfigurable(t *testing.T) {
	timetable := mock.NewTimetable().
		WithRoute("DUB", "STN").
		WithRoute("STN", "WRO").
		WithFlight("DUB", "STN", "2018-03-01", "06:00", "07:00").
		WithFlight("STN", "WRO", "2018-03-01", "08:00", "10:00")

	q := criteria(t, "DUB", "2018-03-01T00:00", "WRO", "2018-03-01T23:00", 1)

	strict, err := CreateUseCase(timetable, nil).Search(context.Background(), q)
	require.NoError(t, err)
	assert.True(t, strict[1].IsEmpty(), "a one hour layover is below the default minimum")

	relaxed, err := CreateUseCase(timetable, &usecase.Config{MinConnectionTime: time.Hour}).Search(context.Background(), q)
	require.NoError(t, err)
	assert.False(t, relaxed[1].IsEmpty())
}

func TestUseCase_OtherOperatorsAreIgnored(t *testing.T) {
	timetable := mock.NewTimetable().
		WithOperatorRoute("DUB", "LHR", "AER_LINGUS").
		WithFlight("DUB", "LHR", "2018-03-01", "08:00", "09:00")

	result, err := CreateUseCase(timetable, nil).Search(context.Background(),
		criteria(t, "DUB", "2018-03-01T00:00", "LHR", "2018-03-01T23:00", 0))

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.True(t, result[0].IsEmpty())
	assert.Zero(t, timetable.TotalScheduleCalls())
}

func TestUseCase_UnavailableLegDropsOnlyItsPaths(t *testing.T) {
	timetable := mock.NewTimetable().
		WithRoute("DUB", "WRO").
		WithRoute("DUB", "STN").
		WithRoute("STN", "WRO").
		WithFlight("DUB", "WRO", "2018-03-01", "12:00", "15:00").
		WithFlight("DUB", "STN", "2018-03-01", "06:00", "07:00").
		WithFlight("STN", "WRO", "2018-03-01", "10:00", "13:00").
		WithUnavailable("STN", "WRO")

	result, err := CreateUseCase(timetable, nil).Search(context.Background(),
		criteria(t, "DUB", "2018-03-01T00:00", "WRO", "2018-03-01T23:00", 1))

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Len(t, result[0].Legs, 1)
	assert.True(t, result[1].IsEmpty())
}
