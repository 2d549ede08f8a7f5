// Package availability generates candidate delivery dates for a route.
package availability

import (
	"strconv"
	"time"
)

const (
	// FirstOffset is the earliest bookable day, counted from today.
	FirstOffset = 3
	// LastOffset is the last scanned day (inclusive).
	LastOffset = 59
	// nearTermEnd is the last offset of the weekdays-only window.
	nearTermEnd = 13

	defaultZipSeed = 10
)

// DatesFor returns the delivery dates offered for a move out of originZip.
// Days 3 through 13 offer every weekday. From day 14 on, a date is offered
// when (offset*7 + seed) mod 10 > 1, where seed comes from the first two
// digits of the origin ZIP. destZip does not influence the result.
//
// The result depends only on the calendar day of today and originZip, so
// repeated calls return identical dates.
func DatesFor(originZip, destZip string, today time.Time) []time.Time {
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	seed := zipSeed(originZip)

	dates := make([]time.Time, 0, LastOffset-FirstOffset+1)
	for offset := FirstOffset; offset <= LastOffset; offset++ {
		date := start.AddDate(0, 0, offset)
		if available(offset, date.Weekday(), seed) {
			dates = append(dates, date)
		}
	}
	return dates
}

func available(offset int, weekday time.Weekday, seed int) bool {
	if offset <= nearTermEnd {
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return (offset*7+seed)%10 > 1
}

// zipSeed reads the leading digits of the ZIP's first two characters,
// defaulting to 10 when there are none.
func zipSeed(zip string) int {
	prefix := zip
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	end := 0
	for end < len(prefix) && prefix[end] >= '0' && prefix[end] <= '9' {
		end++
	}
	if end == 0 {
		return defaultZipSeed
	}
	v, err := strconv.Atoi(prefix[:end])
	if err != nil {
		return defaultZipSeed
	}
	return v
}
