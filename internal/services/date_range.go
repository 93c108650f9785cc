package services

import (
	"strings"
	"time"
)

const (
	RangeLastWeek  = "last_week"
	RangeLastMonth = "last_month"
	RangeAllTime   = "all_time"

	// DefaultRange applies when a request carries no range token.
	DefaultRange = RangeLastWeek
)

const (
	rangeDayLayout  = "2006-01-02"
	rangeStartClock = " 00:00:00"
	rangeEndClock   = " 23:59:59"
)

// DateRange bounds stored date_time values inclusively. Nil bounds mean no filter.
type DateRange struct {
	Start *string
	End   *string
}

func (dateRange DateRange) Bounded() bool {
	return dateRange.Start != nil && dateRange.End != nil
}

// CalculateDateRange maps a range token to whole-day bounds relative to now.
// Unknown tokens, including all_time, are unbounded.
func CalculateDateRange(token string, now time.Time) DateRange {
	var days int
	switch strings.TrimSpace(token) {
	case RangeLastWeek:
		days = 7
	case RangeLastMonth:
		days = 30
	default:
		return DateRange{}
	}

	start := now.AddDate(0, 0, -days).Format(rangeDayLayout) + rangeStartClock
	end := now.Format(rangeDayLayout) + rangeEndClock
	return DateRange{Start: &start, End: &end}
}

// NormalizeRangeToken returns the token to echo back to pages, defaulting an empty one.
func NormalizeRangeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return DefaultRange
	}
	return token
}
