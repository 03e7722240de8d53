package scheduler

import "time"

// Calendar arithmetic on bare dates. time.AddDate normalizes overflow
// (Jan 31 + 1 month = Mar 2/3) instead of clamping, so month addition
// is written out against the target month's length.

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// clampDay limits day to the last valid day of the given month.
func clampDay(year int, month time.Month, day int) int {
	if last := daysInMonth(year, month); day > last {
		return last
	}
	return day
}

// addMonthsClamped advances d by n calendar months, keeping day as the
// day-of-month and clamping it to the target month's last day.
func addMonthsClamped(d time.Time, n int, day int) time.Time {
	year, month := d.Year(), d.Month()
	total := int(month) - 1 + n
	year += total / 12
	month = time.Month(total%12 + 1)
	return time.Date(year, month, clampDay(year, month, day), 0, 0, 0, 0, d.Location())
}

// midnight truncates d to a bare calendar date in its location.
func midnight(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}
