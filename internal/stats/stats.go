package stats

import (
	"time"

	"github.com/username/care-calendar/internal/holidays"
	"github.com/username/care-calendar/internal/roster"
	"github.com/username/care-calendar/internal/store"
	"github.com/username/care-calendar/pkg/dateutil"
)

// Predicate selects which dates of a range participate in a count
type Predicate func(date time.Time) bool

// All accepts every date
func All(time.Time) bool { return true }

// Weekend accepts Saturdays and Sundays
func Weekend(date time.Time) bool {
	return dateutil.IsWeekend(date)
}

// InSet accepts dates whose ISO form is in the given holiday set
func InSet(set holidays.Set) Predicate {
	return func(date time.Time) bool {
		return set.Contains(dateutil.FormatDay(date))
	}
}

// Aggregate counts assigned days per caregiver name over the given
// dates. Every roster member gets an entry, zero included. Unknown
// assignment codes count under Otro; unassigned days are skipped.
func Aggregate(dates []time.Time, st *store.Store, pred Predicate) map[string]int {
	counts := make(map[string]int, len(roster.All()))
	for _, c := range roster.All() {
		counts[c.Name] = 0
	}

	for _, date := range dates {
		code := st.Get(date).Turno
		if code == "" {
			continue
		}
		if pred(date) {
			counts[roster.ByCode(code).Name]++
		}
	}

	return counts
}

// Report holds the per-caregiver breakdown for one reporting period.
// Total, Weekend and Holiday are computed over the same date set, so
// the subtotals never exceed the totals.
type Report struct {
	Year    int
	Month   time.Month // zero for whole-year reports
	Total   map[string]int
	Weekend map[string]int
	Holiday map[string]int
}

// HolidayResolver supplies the holiday set for a year. The zero value
// (nil) means no holiday data; holiday counts stay zero.
type HolidayResolver func(year int) holidays.Set

func breakdown(dates []time.Time, st *store.Store, set holidays.Set) (total, weekend, holiday map[string]int) {
	total = Aggregate(dates, st, All)
	weekend = Aggregate(dates, st, Weekend)
	holiday = Aggregate(dates, st, InSet(set))
	return
}

// MonthReport computes the breakdown for one month
func MonthReport(year int, month time.Month, st *store.Store, set holidays.Set) Report {
	total, weekend, holiday := breakdown(dateutil.MonthDays(year, month), st, set)

	return Report{
		Year:    year,
		Month:   month,
		Total:   total,
		Weekend: weekend,
		Holiday: holiday,
	}
}

// PeriodReports computes month reports for nMonths consecutive months
// starting at the anchor's month
func PeriodReports(anchor time.Time, nMonths int, st *store.Store, resolve HolidayResolver) []Report {
	reports := make([]Report, 0, nMonths)
	for i := 0; i < nMonths; i++ {
		first := dateutil.MonthStart(anchor, i)

		var set holidays.Set
		if resolve != nil {
			set = resolve(first.Year())
		}

		reports = append(reports, MonthReport(first.Year(), first.Month(), st, set))
	}
	return reports
}

// YearReport computes the breakdown for a whole calendar year
func YearReport(year int, st *store.Store, set holidays.Set) Report {
	total, weekend, holiday := breakdown(dateutil.YearDays(year), st, set)

	return Report{
		Year:    year,
		Total:   total,
		Weekend: weekend,
		Holiday: holiday,
	}
}
