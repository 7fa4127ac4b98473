// Package streak computes consecutive-day commit streaks.
package streak

import (
	"slices"
	"time"
)

// Day reduces a timestamp to its calendar date, keeping the year, month
// and day as observed in the timestamp's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// distinctDays reduces timestamps to a sorted list of distinct calendar dates.
func distinctDays(times []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(times))
	for _, t := range times {
		seen[Day(t)] = struct{}{}
	}
	days := make([]time.Time, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })
	return days
}

// nextDay reports whether b is exactly one calendar day after a.
func nextDay(a, b time.Time) bool {
	return a.AddDate(0, 0, 1).Equal(b)
}

// Calculate returns the longest and current consecutive-day streaks for
// the given commit timestamps. Multiple commits on one day count once.
//
// The current streak is anchored on today, which is an explicit parameter
// so callers control the evaluation time: it is non-zero only when the
// most recent commit day is today or yesterday, and then extends backward
// through strictly consecutive days.
func Calculate(times []time.Time, today time.Time) (longest, current int) {
	days := distinctDays(times)
	if len(days) == 0 {
		return 0, 0
	}

	longest = 1
	run := 1
	for i := 1; i < len(days); i++ {
		if nextDay(days[i-1], days[i]) {
			run++
		} else {
			longest = max(longest, run)
			run = 1
		}
	}
	longest = max(longest, run)

	latest := days[len(days)-1]
	ref := Day(today)
	if !latest.Equal(ref) && !latest.Equal(ref.AddDate(0, 0, -1)) {
		return longest, 0
	}

	current = 1
	for i := len(days) - 2; i >= 0; i-- {
		if !nextDay(days[i], days[i+1]) {
			break
		}
		current++
	}
	return longest, current
}
