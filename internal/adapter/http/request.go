// Package http exposes the interconnection search over HTTP with Echo.
package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/flight-search/interconnecting-flights/internal/domain"
	"github.com/flight-search/interconnecting-flights/internal/infrastructure/timeutil"
)

// SearchInterconnectionsRequest holds the raw query parameters of a search.
type SearchInterconnectionsRequest struct {
	// Departure is the IATA code of the departure airport (e.g., "DUB")
	Departure string `query:"departure"`

	// DepartureDateTime is the earliest departure, local time (e.g., "2018-03-01T07:00")
	DepartureDateTime string `query:"departureDateTime"`

	// Arrival is the IATA code of the arrival airport (e.g., "WRO")
	Arrival string `query:"arrival"`

	// ArrivalDateTime is the latest arrival, local time (e.g., "2018-03-03T21:00")
	ArrivalDateTime string `query:"arrivalDateTime"`

	// MaxStops is the largest number of intermediate airports (optional)
	MaxStops string `query:"maxStops"`
}

// StopLimits bounds the maxStops parameter.
type StopLimits struct {
	// Default applies when the parameter is omitted
	Default int

	// Max is the largest accepted value
	Max int
}

// DefaultStopLimits returns one stop by default and at most three.
func DefaultStopLimits() StopLimits {
	return StopLimits{Default: 1, Max: 3}
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// ToCriteria parses and checks the parameters, collecting every field error.
// Cross-field rules (window order, distinct airports) are left to
// domain.SearchCriteria.Validate so their messages stay in one place.
func (r *SearchInterconnectionsRequest) ToCriteria(limits StopLimits) (domain.SearchCriteria, error) {
	errs := &ValidationErrors{}
	criteria := domain.SearchCriteria{MaxStops: limits.Default}

	criteria.Departure = parseAirport("departure", r.Departure, errs)
	criteria.Arrival = parseAirport("arrival", r.Arrival, errs)
	criteria.DepartureDateTime = parseDateTime("departureDateTime", r.DepartureDateTime, errs)
	criteria.ArrivalDateTime = parseDateTime("arrivalDateTime", r.ArrivalDateTime, errs)

	if raw := strings.TrimSpace(r.MaxStops); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs.Add("maxStops", "maxStops must be an integer")
		case n < 0 || n > limits.Max:
			errs.Add("maxStops", fmt.Sprintf("maxStops must be between 0 and %d", limits.Max))
		default:
			criteria.MaxStops = n
		}
	}

	if errs.HasErrors() {
		return domain.SearchCriteria{}, errs
	}
	return criteria, nil
}

func parseAirport(field, value string, errs *ValidationErrors) string {
	value = strings.TrimSpace(value)
	if value == "" {
		errs.Add(field, field+" is required")
		return ""
	}

	code := strings.ToUpper(value)
	if !domain.IsValidAirportCode(code) {
		errs.Add(field, field+" must be a valid 3-letter IATA airport code")
		return ""
	}
	return code
}

func parseDateTime(field, value string, errs *ValidationErrors) (t time.Time) {
	value = strings.TrimSpace(value)
	if value == "" {
		errs.Add(field, field+" is required")
		return t
	}

	t, err := timeutil.ParseLocalDateTime(value)
	if err != nil {
		errs.Add(field, field+" must be a local date-time like 2018-03-01T07:00")
	}
	return t
}
