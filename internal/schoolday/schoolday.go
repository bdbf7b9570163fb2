// Package schoolday counts teaching days between two calendar dates.
package schoolday

import "time"

// Range is a holiday interval. A nil End means a single day.
type Range struct {
	Start time.Time
	End   *time.Time
}

// Day truncates t to its calendar date in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r Range) contains(day time.Time) bool {
	start := Day(r.Start)
	end := start
	if r.End != nil {
		end = Day(*r.End)
	}
	// a range ending before it starts only covers its start day
	if end.Before(start) {
		end = start
	}
	return !day.Before(start) && !day.After(end)
}

// Count returns the Mon-Fri dates in [start, end] outside every holiday.
func Count(start, end time.Time, holidays []Range) int {
	from, to := Day(start), Day(end)
	if to.Before(from) {
		return 0
	}

	n := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		if inHoliday(day, holidays) {
			continue
		}
		n++
	}
	return n
}

// Hours is Count multiplied by the hours taught per school day.
func Hours(start, end time.Time, holidays []Range, hoursPerDay int) int {
	if hoursPerDay <= 0 {
		return 0
	}
	return Count(start, end, holidays) * hoursPerDay
}

func inHoliday(day time.Time, holidays []Range) bool {
	for _, h := range holidays {
		if h.contains(day) {
			return true
		}
	}
	return false
}
