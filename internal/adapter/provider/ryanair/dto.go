package ryanair

// RouteDTO is one element of the routes endpoint response.
type RouteDTO struct {
	AirportFrom       string  `json:"airportFrom"`
	AirportTo         string  `json:"airportTo"`
	ConnectingAirport *string `json:"connectingAirport"`
	NewRoute          bool    `json:"newRoute"`
	SeasonalRoute     bool    `json:"seasonalRoute"`
	Operator          string  `json:"operator"`
	Group             string  `json:"group"`
}

// ScheduleDTO is the schedules endpoint response for one pair and month.
type ScheduleDTO struct {
	Month int      `json:"month"`
	Days  []DayDTO `json:"days"`
}

// DayDTO lists the flights of one day of the month.
type DayDTO struct {
	Day     int         `json:"day"`
	Flights []FlightDTO `json:"flights"`
}

// FlightDTO is a timetable entry with local "HH:MM" times.
type FlightDTO struct {
	CarrierCode   string `json:"carrierCode"`
	Number        string `json:"number"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
}
