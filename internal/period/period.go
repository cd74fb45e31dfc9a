// Package period resolves reporting windows from optional caller-supplied
// bounds. Every function is pure: the reference time is always passed in,
// never read from the wall clock.
package period

import "time"

// Window is an inclusive [Start, End] date range used to filter
// transactions for a report.
type Window struct {
	Start time.Time
	End   time.Time
}

// MonthNames holds the fixed three-letter month abbreviations used by the
// monthly chart, indexed by month number minus one.
var MonthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Resolve returns the effective reporting window. When both bounds are
// supplied they are used verbatim; an inverted range is returned as-is
// and simply matches nothing downstream. When either bound is missing the
// window defaults to the calendar month containing now.
func Resolve(now time.Time, start, end *time.Time) Window {
	if start != nil && end != nil {
		return Window{Start: *start, End: *end}
	}
	return MonthWindow(now)
}

// MonthWindow returns the first through last calendar day of the month
// containing t.
func MonthWindow(t time.Time) Window {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return Window{Start: first, End: first.AddDate(0, 1, -1)}
}

// PreviousMonth returns the full calendar month immediately preceding the
// given window start. The comparison period is always a whole month, even
// when the window itself is not.
func PreviousMonth(start time.Time) Window {
	end := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location()).AddDate(0, 0, -1)
	first := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
	return Window{Start: first, End: end}
}

// YearWindow returns the first through last calendar day of the year
// containing t. Used as the default window for cashflow grouping.
func YearWindow(t time.Time) Window {
	first := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	return Window{Start: first, End: time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, t.Location())}
}
