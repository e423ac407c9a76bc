package ryanair

import (
	"fmt"
	"strings"

	"github.com/flight-search/interconnecting-flights/internal/domain"
)

// ProviderName is the unique identifier for the Ryanair timetable API.
const ProviderName = "ryanair"

// normalizeRoutes converts route DTOs to domain routes.
// Records without both airports are skipped.
func normalizeRoutes(dtos []RouteDTO) []domain.Route {
	result := make([]domain.Route, 0, len(dtos))

	for _, r := range dtos {
		from := strings.ToUpper(strings.TrimSpace(r.AirportFrom))
		to := strings.ToUpper(strings.TrimSpace(r.AirportTo))
		if from == "" || to == "" {
			continue
		}

		result = append(result, domain.Route{
			AirportFrom:       from,
			AirportTo:         to,
			ConnectingAirport: r.ConnectingAirport,
			Operator:          r.Operator,
		})
	}

	return result
}

// normalizeSchedule converts a schedule DTO to the domain form.
// Flights whose times cannot be parsed are dropped and counted in skipped.
func normalizeSchedule(dto ScheduleDTO) (schedule *domain.MonthlySchedule, skipped int) {
	schedule = &domain.MonthlySchedule{
		Month: dto.Month,
		Days:  make([]domain.DaySchedule, 0, len(dto.Days)),
	}

	for _, d := range dto.Days {
		day := domain.DaySchedule{
			Day:     d.Day,
			Flights: make([]domain.ScheduledFlight, 0, len(d.Flights)),
		}
		for _, f := range d.Flights {
			flight, err := normalizeFlight(f)
			if err != nil {
				skipped++
				continue
			}
			day.Flights = append(day.Flights, flight)
		}
		schedule.Days = append(schedule.Days, day)
	}

	return schedule, skipped
}

// normalizeFlight converts a single timetable entry.
func normalizeFlight(f FlightDTO) (domain.ScheduledFlight, error) {
	departure, err := domain.ParseClockTime(f.DepartureTime)
	if err != nil {
		return domain.ScheduledFlight{}, fmt.Errorf("failed to parse departure time: %w", err)
	}

	arrival, err := domain.ParseClockTime(f.ArrivalTime)
	if err != nil {
		return domain.ScheduledFlight{}, fmt.Errorf("failed to parse arrival time: %w", err)
	}

	return domain.ScheduledFlight{
		CarrierCode:   f.CarrierCode,
		Number:        f.Number,
		DepartureTime: departure,
		ArrivalTime:   arrival,
	}, nil
}
