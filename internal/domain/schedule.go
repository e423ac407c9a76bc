package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the calendar month containing t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Next returns the following calendar month.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// After reports whether ym is a later month than other.
func (ym YearMonth) After(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year > other.Year
	}
	return ym.Month > other.Month
}

// DaysIn returns the number of days in the month.
func (ym YearMonth) DaysIn() int {
	return time.Date(ym.Year, ym.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Date returns midnight of the given day of the month.
func (ym YearMonth) Date(day int) time.Time {
	return time.Date(ym.Year, ym.Month, day, 0, 0, 0, 0, time.UTC)
}

// String formats the month as YYYY-MM.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// ClockTime is a local time of day with minute precision.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses a time of day in HH:MM format.
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// MustParseClockTime is like ParseClockTime but panics on error.
func MustParseClockTime(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Before reports whether c is earlier in the day than other.
func (c ClockTime) Before(other ClockTime) bool {
	return c.sinceMidnight() < other.sinceMidnight()
}

// On returns the absolute time at c on the given date.
func (c ClockTime) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, time.UTC)
}

// String formats the clock time as HH:MM.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MarshalJSON encodes the clock time as an "HH:MM" string.
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes an "HH:MM" string.
func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c ClockTime) sinceMidnight() int {
	return c.Hour*60 + c.Minute
}

// ScheduledFlight is one entry of a provider timetable day, in local clock times only.
type ScheduledFlight struct {
	CarrierCode   string    `json:"carrierCode,omitempty"`
	Number        string    `json:"number"`
	DepartureTime ClockTime `json:"departureTime"`
	ArrivalTime   ClockTime `json:"arrivalTime"`
}

// DaySchedule lists the flights operated on one day of the month.
type DaySchedule struct {
	Day     int               `json:"day"`
	Flights []ScheduledFlight `json:"flights"`
}

// MonthlySchedule is a provider's timetable for one airport pair and month.
type MonthlySchedule struct {
	Month int           `json:"month"`
	Days  []DaySchedule `json:"days"`
}

// MonthlyTimetable is the normalized form of a MonthlySchedule, with absolute flight times.
type MonthlyTimetable struct {
	Departure string
	Arrival   string
	YearMonth YearMonth
	Flights   []Flight
}
