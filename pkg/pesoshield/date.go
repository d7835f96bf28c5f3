package pesoshield

import (
	"fmt"
	"strings"
	"time"
)

// YearMonth is a calendar month (YYYY-MM), the aggregation unit for spend
// and reporting.
type YearMonth struct {
	Year  int
	Month time.Month
}

var monthNames = []string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// CurrentYearMonth returns the month containing t.
func CurrentYearMonth(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses a YYYY-MM string.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("unable to parse year-month: %s", s)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// String formats the month as YYYY-MM, the prefix used to match
// transaction dates.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Prev returns the month immediately before, handling year rollover.
func (ym YearMonth) Prev() YearMonth {
	if ym.Month == time.January {
		return YearMonth{Year: ym.Year - 1, Month: time.December}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

// DaysIn returns the number of calendar days in the month, leap years
// included.
func (ym YearMonth) DaysIn() int {
	return time.Date(ym.Year, ym.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DisplayName returns the Spanish month name with the year, e.g.
// "septiembre 2026".
func (ym YearMonth) DisplayName() string {
	return fmt.Sprintf("%s %d", monthNames[int(ym.Month)-1], ym.Year)
}

// Contains reports whether an ISO YYYY-MM-DD date string falls in the
// month. The match is a string prefix, no timezone conversion.
func (ym YearMonth) Contains(isoDate string) bool {
	return strings.HasPrefix(isoDate, ym.String())
}

// MarshalJSON encodes the month as a YYYY-MM string.
func (ym YearMonth) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", ym.String())), nil
}

// UnmarshalJSON decodes a YYYY-MM string.
func (ym *YearMonth) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)
	if str == "" || str == "null" {
		*ym = YearMonth{}
		return nil
	}
	parsed, err := ParseYearMonth(str)
	if err != nil {
		return err
	}
	*ym = parsed
	return nil
}

// dayStamp formats t as the YYYY-MM-DD stamp used by the dismissal record.
func dayStamp(t time.Time) string {
	return t.Format("2006-01-02")
}
