package domain

import (
	"regexp"
	"time"
)

// SearchCriteria defines the parameters for an interconnection search.
type SearchCriteria struct {
	// Departure is the IATA code of the departure airport (e.g., "DUB")
	Departure string `json:"departure"`

	// DepartureDateTime is the earliest allowed departure of the first leg
	DepartureDateTime time.Time `json:"departureDateTime"`

	// Arrival is the IATA code of the arrival airport (e.g., "WRO")
	Arrival string `json:"arrival"`

	// ArrivalDateTime is the latest allowed arrival of the last leg
	ArrivalDateTime time.Time `json:"arrivalDateTime"`

	// MaxStops is the maximum number of intermediate airports
	MaxStops int `json:"maxStops"`
}

// airportCodeRegex matches valid IATA airport codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// Validate checks the search preconditions.
// Returns a wrapped ErrInvalidRequest error naming the first violated rule, or
// a *ValidationError when a single airport code is malformed.
func (s *SearchCriteria) Validate() error {
	if !s.DepartureDateTime.Before(s.ArrivalDateTime) {
		return WrapInvalidRequest("arrival date time must be after departure date time")
	}

	if s.Departure == s.Arrival {
		return WrapInvalidRequest("departure and arrival can not be the same")
	}

	if s.MaxStops < 0 {
		return WrapInvalidRequest("max stops can not be negative")
	}

	if !airportCodeRegex.MatchString(s.Departure) {
		return NewValidationError("departure", "must be a valid 3-letter IATA code")
	}
	if !airportCodeRegex.MatchString(s.Arrival) {
		return NewValidationError("arrival", "must be a valid 3-letter IATA code")
	}

	return nil
}

// IsValidAirportCode reports whether code is three uppercase letters.
func IsValidAirportCode(code string) bool {
	return airportCodeRegex.MatchString(code)
}
