// Package period holds the calendar month arithmetic shared by the
// salary-month generator, the budget aggregator and the analytics queries.
package period

import (
	"fmt"
	"time"
)

// YearMonth identifies one calendar month.
type YearMonth struct {
	Year  int
	Month int
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

// MonthString formats t's calendar month as "YYYY-MM".
func MonthString(t time.Time) string {
	return t.Format("2006-01")
}

// FloorToMonth returns midnight on the first day of t's month.
func FloorToMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// ParsePeriod parses a "YYYY-MM" period string.
func ParsePeriod(p string) (YearMonth, error) {
	t, err := time.Parse("2006-01", p)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid period %q, expected YYYY-MM", p)
	}
	return YearMonth{Year: t.Year(), Month: int(t.Month())}, nil
}

// MonthWindow returns the half-open interval [first of month, first of next month).
func MonthWindow(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// MonthRange lists every "YYYY-MM" from start's month to end's month inclusive.
// Returns nil when start is after end.
func MonthRange(start, end time.Time) []string {
	cur := FloorToMonth(start)
	last := FloorToMonth(end)

	var months []string
	for !cur.After(last) {
		months = append(months, MonthString(cur))
		cur = cur.AddDate(0, 1, 0)
	}
	return months
}

// MonthsBack lists n calendar months ending with from's month, newest first,
// wrapping year boundaries.
func MonthsBack(from time.Time, n int) []YearMonth {
	months := make([]YearMonth, 0, n)
	year, month := from.Year(), int(from.Month())

	for i := 0; i < n; i++ {
		m := month - i
		y := year
		for m <= 0 {
			m += 12
			y--
		}
		months = append(months, YearMonth{Year: y, Month: m})
	}
	return months
}
