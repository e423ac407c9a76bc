package timeutil

import (
	"fmt"
	"time"

	"github.com/flight-search/interconnecting-flights/internal/domain"
)

// LocalDateTimeLayout is the ISO local date-time format used on the wire.
const LocalDateTimeLayout = "2006-01-02T15:04"

// localDateTimeLayouts are accepted when parsing, in order.
var localDateTimeLayouts = []string{
	LocalDateTimeLayout,
	"2006-01-02T15:04:05",
}

// ParseLocalDateTime parses an ISO local date-time such as "2018-03-01T07:00".
// Seconds are optional. The result is a naive wall-clock time in UTC.
func ParseLocalDateTime(value string) (time.Time, error) {
	for _, layout := range localDateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid local date time %q, expected format %s", value, LocalDateTimeLayout)
}

// FormatLocalDateTime formats a naive wall-clock time as "2006-01-02T15:04".
func FormatLocalDateTime(t time.Time) string {
	return t.Format(LocalDateTimeLayout)
}

// MonthsBetween returns every calendar month from the month of start to the
// month of end, both inclusive. It returns nil when end precedes start.
func MonthsBetween(start, end time.Time) []domain.YearMonth {
	first := domain.YearMonthOf(start)
	last := domain.YearMonthOf(end)
	if first.After(last) {
		return nil
	}

	var months []domain.YearMonth
	for ym := first; !ym.After(last); ym = ym.Next() {
		months = append(months, ym)
	}
	return months
}
