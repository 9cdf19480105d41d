// Package reward implements the daily reward calendar: the process-wide day
// counter, the rotating five-day forecast, and the randomized generation of
// forecast entries.
package reward

import "time"

// hoursPerDay is the length of one reward day.
const hoursPerDay = 24

// DayIndexAt returns the day counter for the given instant. The counter is
// derived from wall-clock time, increments once per 24-hour period, and rolls
// over at 23:00 UTC rather than midnight: the +1 hour offset shifts the
// boundary one hour before the UTC date change, so the reward day flips while
// the evening crowd is still online.
func DayIndexAt(t time.Time) int64 {
	return (t.Unix()/3600 + 1) / hoursPerDay
}

// CurrentDayIndex returns the day counter for the present moment.
func CurrentDayIndex() int64 {
	return DayIndexAt(time.Now())
}
