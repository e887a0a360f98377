package stats

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/username/care-calendar/internal/holidays"
	"github.com/username/care-calendar/internal/roster"
	"github.com/username/care-calendar/internal/store"
	"github.com/username/care-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.NewStore(filepath.Join(t.TempDir(), "calendar.json"), zap.NewNop())
	if err := st.Load(); err != nil {
		t.Fatal(err)
	}
	return st
}

func TestAggregateMonth(t *testing.T) {
	st := newTestStore(t)
	st.SetAssignment(dateutil.Day(2024, 3, 1), "F")
	st.SetAssignment(dateutil.Day(2024, 3, 2), "N")
	st.AppendComment(dateutil.Day(2024, 3, 2), "needs milk")

	counts := Aggregate(dateutil.MonthDays(2024, time.March), st, All)

	want := map[string]int{"Fer": 1, "Nines": 1, "Conchi": 0, "Otro": 0}
	for name, n := range want {
		if counts[name] != n {
			t.Errorf("counts[%s] = %d, want %d", name, counts[name], n)
		}
	}
	if len(counts) != len(roster.All()) {
		t.Errorf("counts has %d entries, want %d (full roster coverage)",
			len(counts), len(roster.All()))
	}
}

func TestAggregateUnknownCodeCountsAsOtro(t *testing.T) {
	st := newTestStore(t)
	st.SetAssignment(dateutil.Day(2024, 3, 1), "ZZ")
	st.SetAssignment(dateutil.Day(2024, 3, 2), "X")

	counts := Aggregate(dateutil.MonthDays(2024, time.March), st, All)

	if counts["Otro"] != 2 {
		t.Errorf("counts[Otro] = %d, want 2 (unknown codes collapse to Otro)", counts["Otro"])
	}
}

func TestAggregateSkipsUnassignedDays(t *testing.T) {
	st := newTestStore(t)
	st.AppendComment(dateutil.Day(2024, 3, 1), "comment without shift")

	counts := Aggregate(dateutil.MonthDays(2024, time.March), st, All)

	for name, n := range counts {
		if n != 0 {
			t.Errorf("counts[%s] = %d, want 0", name, n)
		}
	}
}

func TestWeekendNeverExceedsTotal(t *testing.T) {
	st := newTestStore(t)
	// March 2024: assign Fer everywhere, Nines on the first weekend
	for _, d := range dateutil.MonthDays(2024, time.March) {
		st.SetAssignment(d, "F")
	}
	st.SetAssignment(dateutil.Day(2024, 3, 2), "N") // Saturday
	st.SetAssignment(dateutil.Day(2024, 3, 3), "N") // Sunday

	dates := dateutil.MonthDays(2024, time.March)
	total := Aggregate(dates, st, All)
	weekend := Aggregate(dates, st, Weekend)

	for _, c := range roster.All() {
		if weekend[c.Name] > total[c.Name] {
			t.Errorf("weekend[%s] = %d exceeds total %d",
				c.Name, weekend[c.Name], total[c.Name])
		}
	}
	if weekend["Nines"] != 2 {
		t.Errorf("weekend[Nines] = %d, want 2", weekend["Nines"])
	}
	if total["Fer"] != 29 {
		t.Errorf("total[Fer] = %d, want 29 (31 days minus 2 reassigned)", total["Fer"])
	}
}

func TestHolidayPredicate(t *testing.T) {
	st := newTestStore(t)
	st.SetAssignment(dateutil.Day(2024, 1, 1), "C")
	st.SetAssignment(dateutil.Day(2024, 1, 2), "C")

	set := holidays.NewSet([]string{"2024-01-01", "2024-01-06"})
	counts := Aggregate(dateutil.MonthDays(2024, time.January), st, InSet(set))

	if counts["Conchi"] != 1 {
		t.Errorf("holiday counts[Conchi] = %d, want 1", counts["Conchi"])
	}
}

func TestMonthReportSubtotalsShareDateSet(t *testing.T) {
	st := newTestStore(t)
	st.SetAssignment(dateutil.Day(2024, 3, 2), "F")  // Saturday
	st.SetAssignment(dateutil.Day(2024, 3, 29), "F") // Friday, Viernes Santo

	set := holidays.NewSet([]string{"2024-03-29"})
	report := MonthReport(2024, time.March, st, set)

	if report.Total["Fer"] != 2 {
		t.Errorf("Total[Fer] = %d, want 2", report.Total["Fer"])
	}
	if report.Weekend["Fer"] != 1 {
		t.Errorf("Weekend[Fer] = %d, want 1", report.Weekend["Fer"])
	}
	if report.Holiday["Fer"] != 1 {
		t.Errorf("Holiday[Fer] = %d, want 1", report.Holiday["Fer"])
	}
}

func TestPeriodReports(t *testing.T) {
	st := newTestStore(t)
	st.SetAssignment(dateutil.Day(2024, 11, 30), "F")
	st.SetAssignment(dateutil.Day(2024, 12, 25), "N")
	st.SetAssignment(dateutil.Day(2025, 1, 1), "C")

	resolved := make(map[int]int)
	resolve := func(year int) holidays.Set {
		resolved[year]++
		return holidays.Set{}
	}

	reports := PeriodReports(dateutil.Day(2024, 11, 20), 3, st, resolve)

	if len(reports) != 3 {
		t.Fatalf("len(reports) = %d, want 3", len(reports))
	}

	if reports[0].Year != 2024 || reports[0].Month != time.November {
		t.Errorf("reports[0] period = %d-%v, want 2024-November", reports[0].Year, reports[0].Month)
	}
	if reports[2].Year != 2025 || reports[2].Month != time.January {
		t.Errorf("reports[2] period = %d-%v, want 2025-January (year rollover)", reports[2].Year, reports[2].Month)
	}

	if reports[0].Total["Fer"] != 1 {
		t.Errorf("November Total[Fer] = %d, want 1", reports[0].Total["Fer"])
	}
	if reports[1].Total["Nines"] != 1 {
		t.Errorf("December Total[Nines] = %d, want 1", reports[1].Total["Nines"])
	}
	if reports[2].Total["Conchi"] != 1 {
		t.Errorf("January Total[Conchi] = %d, want 1", reports[2].Total["Conchi"])
	}

	if resolved[2024] == 0 || resolved[2025] == 0 {
		t.Errorf("holiday resolver calls = %v, want both years resolved", resolved)
	}
}

func TestPeriodReportsNilResolver(t *testing.T) {
	st := newTestStore(t)
	st.SetAssignment(dateutil.Day(2024, 3, 1), "F")

	reports := PeriodReports(dateutil.Day(2024, 3, 15), 1, st, nil)

	if reports[0].Holiday["Fer"] != 0 {
		t.Errorf("Holiday[Fer] = %d, want 0 without holiday data", reports[0].Holiday["Fer"])
	}
}

func TestYearReport(t *testing.T) {
	st := newTestStore(t)
	st.SetAssignment(dateutil.Day(2024, 2, 29), "F") // leap day
	st.SetAssignment(dateutil.Day(2024, 12, 31), "F")
	st.SetAssignment(dateutil.Day(2025, 1, 1), "F") // outside the year

	report := YearReport(2024, st, holidays.Set{})

	if report.Total["Fer"] != 2 {
		t.Errorf("Total[Fer] = %d, want 2 (2025 day excluded)", report.Total["Fer"])
	}
	if report.Month != 0 {
		t.Errorf("Month = %v, want zero for year report", report.Month)
	}
}
