package period

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve(t *testing.T) {
	now := date(2024, time.March, 15)

	t.Run("both_bounds_verbatim", func(t *testing.T) {
		start := date(2024, time.January, 10)
		end := date(2024, time.February, 20)
		w := Resolve(now, &start, &end)
		if !w.Start.Equal(start) || !w.End.Equal(end) {
			t.Errorf("expected [%v, %v], got [%v, %v]", start, end, w.Start, w.End)
		}
	})

	t.Run("missing_bounds_default_to_current_month", func(t *testing.T) {
		w := Resolve(now, nil, nil)
		if !w.Start.Equal(date(2024, time.March, 1)) {
			t.Errorf("expected start 2024-03-01, got %v", w.Start)
		}
		if !w.End.Equal(date(2024, time.March, 31)) {
			t.Errorf("expected end 2024-03-31, got %v", w.End)
		}
	})

	t.Run("single_bound_defaults_to_current_month", func(t *testing.T) {
		start := date(2024, time.January, 10)
		w := Resolve(now, &start, nil)
		if !w.Start.Equal(date(2024, time.March, 1)) || !w.End.Equal(date(2024, time.March, 31)) {
			t.Errorf("expected current month window, got [%v, %v]", w.Start, w.End)
		}
	})

	t.Run("inverted_range_accepted", func(t *testing.T) {
		start := date(2024, time.May, 31)
		end := date(2024, time.May, 1)
		w := Resolve(now, &start, &end)
		if !w.Start.Equal(start) || !w.End.Equal(end) {
			t.Error("inverted range must be returned verbatim, not corrected")
		}
	})

	t.Run("february_leap_year", func(t *testing.T) {
		w := Resolve(date(2024, time.February, 10), nil, nil)
		if !w.End.Equal(date(2024, time.February, 29)) {
			t.Errorf("expected end 2024-02-29, got %v", w.End)
		}
	})
}

func TestPreviousMonth(t *testing.T) {
	t.Run("mid_year", func(t *testing.T) {
		w := PreviousMonth(date(2024, time.March, 1))
		if !w.Start.Equal(date(2024, time.February, 1)) || !w.End.Equal(date(2024, time.February, 29)) {
			t.Errorf("expected February 2024, got [%v, %v]", w.Start, w.End)
		}
	})

	t.Run("january_wraps_to_previous_year", func(t *testing.T) {
		w := PreviousMonth(date(2024, time.January, 15))
		if !w.Start.Equal(date(2023, time.December, 1)) || !w.End.Equal(date(2023, time.December, 31)) {
			t.Errorf("expected December 2023, got [%v, %v]", w.Start, w.End)
		}
	})

	t.Run("partial_window_still_compares_whole_month", func(t *testing.T) {
		// Window starting mid-month still compares against the full prior month.
		w := PreviousMonth(date(2024, time.July, 20))
		if !w.Start.Equal(date(2024, time.June, 1)) || !w.End.Equal(date(2024, time.June, 30)) {
			t.Errorf("expected June 2024, got [%v, %v]", w.Start, w.End)
		}
	})
}

func TestYearWindow(t *testing.T) {
	w := YearWindow(date(2024, time.August, 5))
	if !w.Start.Equal(date(2024, time.January, 1)) || !w.End.Equal(date(2024, time.December, 31)) {
		t.Errorf("expected full 2024, got [%v, %v]", w.Start, w.End)
	}
}

func TestMonthNames(t *testing.T) {
	if len(MonthNames) != 12 {
		t.Fatalf("expected 12 month names, got %d", len(MonthNames))
	}
	if MonthNames[0] != "Jan" || MonthNames[11] != "Dec" {
		t.Errorf("unexpected month name table: %v", MonthNames)
	}
}
