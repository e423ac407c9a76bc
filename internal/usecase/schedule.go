package usecase

import (
	"github.com/flight-search/interconnecting-flights/internal/domain"
)

// NormalizeSchedule converts a provider month schedule into absolute-time flights.
// A nil schedule means no service that month and yields nil.
//
// Arrival is on the departure day unless its clock time is earlier than the
// departure clock time, in which case it rolls over to the next day.
func NormalizeSchedule(departure, arrival string, ym domain.YearMonth, schedule *domain.MonthlySchedule) *domain.MonthlyTimetable {
	if schedule == nil {
		return nil
	}

	timetable := &domain.MonthlyTimetable{
		Departure: departure,
		Arrival:   arrival,
		YearMonth: ym,
		Flights:   []domain.Flight{},
	}

	daysInMonth := ym.DaysIn()
	for _, day := range schedule.Days {
		if day.Day < 1 || day.Day > daysInMonth {
			continue
		}
		date := ym.Date(day.Day)

		for _, sf := range day.Flights {
			arrivalDate := date
			if sf.ArrivalTime.Before(sf.DepartureTime) {
				arrivalDate = date.AddDate(0, 0, 1)
			}

			timetable.Flights = append(timetable.Flights, domain.Flight{
				Number:            sf.Number,
				DepartureAirport:  departure,
				ArrivalAirport:    arrival,
				DepartureDateTime: sf.DepartureTime.On(date),
				ArrivalDateTime:   sf.ArrivalTime.On(arrivalDate),
			})
		}
	}

	return timetable
}
