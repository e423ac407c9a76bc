package http

// SwaggerItinerary documents one element of the search response.
// @Description Itinerary with its stop count. A stop count without any itinerary is reported once with empty legs.
type SwaggerItinerary struct {
	// Stops is the number of intermediate airports
	Stops int `json:"stops" example:"1"`

	// Legs are the flights in travel order
	Legs []SwaggerLeg `json:"legs"`
}

// SwaggerLeg documents a single flight of an itinerary.
// @Description Flight leg with local departure and arrival times
type SwaggerLeg struct {
	DepartureAirport  string `json:"departureAirport" example:"DUB"`
	ArrivalAirport    string `json:"arrivalAirport" example:"STN"`
	DepartureDateTime string `json:"departureDateTime" example:"2018-03-01T06:25"`
	ArrivalDateTime   string `json:"arrivalDateTime" example:"2018-03-01T07:35"`
}

// SwaggerErrorResponse documents the error body.
// @Description Error response
type SwaggerErrorResponse struct {
	Code    string            `json:"code" example:"validation_error"`
	Message string            `json:"message" example:"departure and arrival can not be the same"`
	Details map[string]string `json:"details,omitempty"`
}
