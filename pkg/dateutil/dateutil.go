package dateutil

import "time"

// DayFormat is the canonical YYYY-MM-DD representation used for store keys
const DayFormat = "2006-01-02"

// Day returns the given calendar day truncated to 00:00:00 UTC
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// Today returns today's date (start of day, local calendar)
func Today() time.Time {
	return StartOfDay(time.Now())
}

// FormatDay formats a date as YYYY-MM-DD
func FormatDay(date time.Time) string {
	return date.Format(DayFormat)
}

// ParseDay parses a YYYY-MM-DD date string
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayFormat, s)
}

// SameDay returns true if two dates are on the same calendar day
func SameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// SameMonth returns true if the date falls in the given year and month
func SameMonth(date time.Time, year int, month time.Month) bool {
	return date.Year() == year && date.Month() == month
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// StartOfWeek returns the most recent occurrence of weekStart on or
// before the given date. With weekStart == time.Monday this is the
// Monday of the date's week.
func StartOfWeek(date time.Time, weekStart time.Weekday) time.Time {
	offset := (int(date.Weekday()) - int(weekStart) + 7) % 7
	return StartOfDay(date.AddDate(0, 0, -offset))
}

// RollingWindow returns before+after+1 consecutive days centered on
// anchor, in chronological order, anchor included
func RollingWindow(anchor time.Time, before, after int) []time.Time {
	start := StartOfDay(anchor)
	days := make([]time.Time, 0, before+after+1)
	for i := -before; i <= after; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days
}

// MonthDays returns every day of the given month in chronological order
func MonthDays(year int, month time.Month) []time.Time {
	// Day 0 of the next month is the last day of this one
	last := Day(year, month+1, 0).Day()

	days := make([]time.Time, 0, last)
	for d := 1; d <= last; d++ {
		days = append(days, Day(year, month, d))
	}
	return days
}

// MonthStart returns the first day of the month offset months after the
// anchor's month. Advancing from the first of the month keeps AddDate
// free of end-of-month normalization.
func MonthStart(anchor time.Time, offset int) time.Time {
	first := Day(anchor.Year(), anchor.Month(), 1)
	return first.AddDate(0, offset, 0)
}

// MonthGrid returns exactly 42 days (6 full weeks) covering the given
// month: it starts at the latest weekStart on or before the 1st and
// includes the leading/trailing days of the adjacent months needed to
// fill whole weeks. Use SameMonth to tell padding days apart.
func MonthGrid(year int, month time.Month, weekStart time.Weekday) []time.Time {
	start := StartOfWeek(Day(year, month, 1), weekStart)

	days := make([]time.Time, 0, 42)
	for i := 0; i < 42; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days
}

// YearDays returns every day of the given calendar year
func YearDays(year int) []time.Time {
	days := make([]time.Time, 0, 366)
	for month := time.January; month <= time.December; month++ {
		days = append(days, MonthDays(year, month)...)
	}
	return days
}
