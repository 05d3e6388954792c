// Package period resolves symbolic period tokens into inclusive day windows.
package period

import (
	"errors"
	"fmt"
	"time"

	"sanhuu/internal/core"
)

const (
	Day1   Period = "1d"
	Week7  Period = "7d"
	Month1 Period = "1m"
	Year1  Period = "1y"
)

type (
	Period string

	// Window is an inclusive [Start, End] range. Start is a start-of-day
	// instant, End an end-of-day instant, both UTC.
	Window struct {
		Start time.Time
		End   time.Time
	}
)

var ErrUnknownPeriod = errors.New("unknown period")

// Parse validates a period token from the outside (query params, CLI flags).
func Parse(s string) (Period, error) {
	switch p := Period(s); p {
	case Day1, Week7, Month1, Year1:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
}

// Label returns the human-readable period label used in report titles.
func (p Period) Label() string {
	switch p {
	case Day1:
		return "1 өдөр"
	case Week7:
		return "7 хоног"
	case Month1:
		return "1 сар"
	case Year1:
		return "1 жил"
	}
	return string(p)
}

// Contains reports whether a day-granularity timestamp falls inside the window.
func (w Window) Contains(day time.Time) bool {
	return !day.Before(w.Start) && !day.After(w.End)
}

// Resolve computes the window for a period anchored at referenceNow.
// End is the end of referenceNow's day. Start is the start of the day
// reached by subtracting 1 day (Day1), 6 days (Week7, a 7-day inclusive
// span), 1 calendar month (Month1) or 1 calendar year (Year1).
//
// Month and year subtraction use time.AddDate, which normalizes overflow:
// subtracting one month from March 31 lands on March 2 or 3, not on the
// last day of February. Tests pin this behavior down.
func Resolve(p Period, referenceNow time.Time) Window {
	ref := referenceNow.UTC()

	var start time.Time
	switch p {
	case Day1:
		start = ref.AddDate(0, 0, -1)
	case Week7:
		start = ref.AddDate(0, 0, -6)
	case Month1:
		start = ref.AddDate(0, -1, 0)
	case Year1:
		start = ref.AddDate(-1, 0, 0)
	default:
		start = ref.AddDate(0, -1, 0)
	}

	return Window{Start: startOfDay(start), End: endOfDay(ref)}
}

// Resolver anchors windows on a transaction snapshot. The reference "now"
// is the maximum transaction date, so a fixed historical dataset still
// yields a populated default window; the injected clock is used only when
// the snapshot is empty.
type Resolver struct {
	Now func() time.Time
}

// ReferenceNow returns the end-of-day instant of the latest transaction
// date, or the clock's current day for an empty snapshot. Transactions
// with unparseable dates are skipped.
func (r Resolver) ReferenceNow(txs []core.Transaction) time.Time {
	var max time.Time
	for _, tx := range txs {
		d, err := tx.Day()
		if err != nil {
			continue
		}
		if d.After(max) {
			max = d
		}
	}
	if max.IsZero() {
		now := time.Now
		if r.Now != nil {
			now = r.Now
		}
		return endOfDay(now().UTC())
	}
	return endOfDay(max)
}

// WindowFor resolves a period against the snapshot's reference now.
func (r Resolver) WindowFor(p Period, txs []core.Transaction) Window {
	return Resolve(p, r.ReferenceNow(txs))
}

// MonthWindow returns the inclusive window covering a YYYY-MM month.
func MonthWindow(yearMonth string) (Window, error) {
	start, err := time.ParseInLocation("2006-01", yearMonth, time.UTC)
	if err != nil {
		return Window{}, fmt.Errorf("parse month %q: %w", yearMonth, err)
	}
	return Window{Start: start, End: endOfDay(start.AddDate(0, 1, -1))}, nil
}

// YearWindow returns the inclusive window covering a YYYY year.
func YearWindow(year string) (Window, error) {
	start, err := time.ParseInLocation("2006", year, time.UTC)
	if err != nil {
		return Window{}, fmt.Errorf("parse year %q: %w", year, err)
	}
	return Window{Start: start, End: endOfDay(start.AddDate(1, 0, -1))}, nil
}

// LatestMonth returns the YYYY-MM of the newest transaction, or ok=false
// for an empty (or fully unparseable) snapshot.
func LatestMonth(txs []core.Transaction) (string, bool) {
	if latest, ok := latestDate(txs); ok {
		return latest[:7], true
	}
	return "", false
}

// LatestYear returns the YYYY of the newest transaction.
func LatestYear(txs []core.Transaction) (string, bool) {
	if latest, ok := latestDate(txs); ok {
		return latest[:4], true
	}
	return "", false
}

func latestDate(txs []core.Transaction) (string, bool) {
	var max string
	for _, tx := range txs {
		if _, err := tx.Day(); err != nil {
			continue
		}
		if tx.Date > max {
			max = tx.Date
		}
	}
	return max, max != ""
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}
