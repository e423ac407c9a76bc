package usecase

import (
	"time"

	"github.com/flight-search/interconnecting-flights/internal/domain"
)

var (
	march2018 = domain.YearMonth{Year: 2018, Month: time.March}
	april2018 = domain.YearMonth{Year: 2018, Month: time.April}
)

// at parses a local date-time in the wire format.
func at(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

// scheduled builds a provider timetable entry.
func scheduled(number, departure, arrival string) domain.ScheduledFlight {
	return domain.ScheduledFlight{
		CarrierCode:   "FR",
		Number:        number,
		DepartureTime: domain.MustParseClockTime(departure),
		ArrivalTime:   domain.MustParseClockTime(arrival),
	}
}

// monthOf builds a monthly schedule with the given days.
func monthOf(month time.Month, days ...domain.DaySchedule) *domain.MonthlySchedule {
	return &domain.MonthlySchedule{Month: int(month), Days: days}
}

// dayOf builds one day of a monthly schedule.
func dayOf(day int, flights ...domain.ScheduledFlight) domain.DaySchedule {
	return domain.DaySchedule{Day: day, Flights: flights}
}

// route builds a direct route record for the given operator.
func route(from, to, operator string) domain.Route {
	return domain.Route{AirportFrom: from, AirportTo: to, Operator: operator}
}

// legSummary renders legs as "DUB 06:25 -> STN 07:35" for readable assertions.
func legSummary(it domain.Itinerary) []string {
	out := make([]string, 0, len(it.Legs))
	for _, l := range it.Legs {
		out = append(out, l.DepartureAirport+" "+l.DepartureDateTime.Format("01-02T15:04")+" -> "+
			l.ArrivalAirport+" "+l.ArrivalDateTime.Format("01-02T15:04"))
	}
	return out
}
