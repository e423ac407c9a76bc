package http

import (
	"github.com/flight-search/interconnecting-flights/internal/domain"
	"github.com/flight-search/interconnecting-flights/internal/infrastructure/timeutil"
)

// ItineraryDTO is one element of the search response.
type ItineraryDTO struct {
	Stops int      `json:"stops" example:"1"`
	Legs  []LegDTO `json:"legs"`
}

// LegDTO is a single flight of an itinerary. The flight number is not exposed.
type LegDTO struct {
	DepartureAirport  string `json:"departureAirport" example:"DUB"`
	ArrivalAirport    string `json:"arrivalAirport" example:"STN"`
	DepartureDateTime string `json:"departureDateTime" example:"2018-03-01T06:25"`
	ArrivalDateTime   string `json:"arrivalDateTime" example:"2018-03-01T07:35"`
}

// ToItineraryDTOs converts itineraries for the response, keeping their order.
// Sentinel itineraries keep an empty, non-null legs array.
func ToItineraryDTOs(itineraries []domain.Itinerary) []ItineraryDTO {
	dtos := make([]ItineraryDTO, 0, len(itineraries))
	for _, it := range itineraries {
		legs := make([]LegDTO, 0, len(it.Legs))
		for _, f := range it.Legs {
			legs = append(legs, toLegDTO(f))
		}
		dtos = append(dtos, ItineraryDTO{Stops: it.Stops, Legs: legs})
	}
	return dtos
}

func toLegDTO(f domain.Flight) LegDTO {
	return LegDTO{
		DepartureAirport:  f.DepartureAirport,
		ArrivalAirport:    f.ArrivalAirport,
		DepartureDateTime: timeutil.FormatLocalDateTime(f.DepartureDateTime),
		ArrivalDateTime:   timeutil.FormatLocalDateTime(f.ArrivalDateTime),
	}
}
