// Package domain contains the core business entities and rules for the interconnecting flights system.
// These entities are provider-agnostic and form the foundation upon which all other components are built.
package domain

import "time"

// Flight represents a single scheduled flight leg between two airports.
// Date-times are naive local wall-clock values; they carry no timezone semantics.
type Flight struct {
	// Number is the carrier's flight number (e.g., "1926").
	// It is accepted on construction but never echoed back to consumers.
	Number string `json:"-"`

	// DepartureAirport is the IATA code of the departure airport (e.g., "DUB")
	DepartureAirport string `json:"departureAirport"`

	// ArrivalAirport is the IATA code of the arrival airport (e.g., "WRO")
	ArrivalAirport string `json:"arrivalAirport"`

	// DepartureDateTime is the absolute local departure time
	DepartureDateTime time.Time `json:"departureDateTime"`

	// ArrivalDateTime is the absolute local arrival time
	ArrivalDateTime time.Time `json:"arrivalDateTime"`
}

// DepartsWithin reports whether the flight departs at or after from and arrives at or before to.
func (f Flight) DepartsWithin(from, to time.Time) bool {
	return !f.DepartureDateTime.Before(from) && !f.ArrivalDateTime.After(to)
}

// Itinerary is one coherent trip from the requested departure to the requested arrival.
// An itinerary with no legs is a sentinel meaning "nothing found for this stop-count".
type Itinerary struct {
	// Stops is the number of connections (legs - 1)
	Stops int `json:"stops"`

	// Legs are the flights of the trip in travel order
	Legs []Flight `json:"legs"`
}

// NewItinerary creates an itinerary from its ordered legs.
func NewItinerary(legs []Flight) Itinerary {
	stops := len(legs) - 1
	if stops < 0 {
		stops = 0
	}
	return Itinerary{Stops: stops, Legs: legs}
}

// NoItinerary returns the sentinel itinerary for a stop-count with no results.
func NoItinerary(stops int) Itinerary {
	return Itinerary{Stops: stops, Legs: []Flight{}}
}

// IsEmpty returns true for sentinel itineraries.
func (i Itinerary) IsEmpty() bool {
	return len(i.Legs) == 0
}
