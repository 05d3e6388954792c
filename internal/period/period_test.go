package period

import (
	"testing"
	"time"

	"sanhuu/internal/core"
)

func date(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestResolveWeek7(t *testing.T) {
	w := Resolve(Week7, date("2025-12-08"))

	wantStart := time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, 12, 8, 23, 59, 59, 0, time.UTC)
	if !w.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", w.Start, wantStart)
	}
	if !w.End.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", w.End, wantEnd)
	}

	// 7-day inclusive span.
	if days := int(w.End.Sub(w.Start).Hours()/24) + 1; days != 7 {
		t.Errorf("window spans %d days, want 7", days)
	}
}

func TestResolveDay1(t *testing.T) {
	w := Resolve(Day1, date("2025-12-08"))
	if got := w.Start; !got.Equal(time.Date(2025, 12, 7, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", got)
	}
}

func TestResolveMonthRollover(t *testing.T) {
	// AddDate normalization: 2025-03-31 minus one month is 2025-03-03
	// (February has 28 days in 2025), not the end of February.
	w := Resolve(Month1, date("2025-03-31"))
	if got := w.Start; !got.Equal(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v, want 2025-03-03 (normalized)", got)
	}
}

func TestResolveYearLeapDay(t *testing.T) {
	// 2024-02-29 minus one year normalizes to 2023-03-01.
	w := Resolve(Year1, date("2024-02-29"))
	if got := w.Start; !got.Equal(time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v, want 2023-03-01 (normalized)", got)
	}
}

func TestWindowContainsInclusiveBounds(t *testing.T) {
	w := Resolve(Week7, date("2025-12-08"))
	if !w.Contains(date("2025-12-02")) {
		t.Error("start day must be included")
	}
	if !w.Contains(date("2025-12-08")) {
		t.Error("end day must be included")
	}
	if w.Contains(date("2025-12-01")) {
		t.Error("day before start must be excluded")
	}
	if w.Contains(date("2025-12-09")) {
		t.Error("day after end must be excluded")
	}
}

func TestReferenceNowFromDataset(t *testing.T) {
	r := Resolver{Now: func() time.Time { return date("2030-01-01") }}

	txs := []core.Transaction{
		{Date: "2025-11-20"},
		{Date: "2025-12-08"},
		{Date: "garbage"}, // skipped
		{Date: "2025-12-01"},
	}
	got := r.ReferenceNow(txs)
	want := time.Date(2025, 12, 8, 23, 59, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ReferenceNow = %v, want %v", got, want)
	}
}

func TestReferenceNowEmptySnapshotUsesClock(t *testing.T) {
	r := Resolver{Now: func() time.Time { return date("2026-08-31") }}
	got := r.ReferenceNow(nil)
	want := time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ReferenceNow = %v, want %v", got, want)
	}
}

func TestMonthAndYearWindows(t *testing.T) {
	mw, err := MonthWindow("2025-12")
	if err != nil {
		t.Fatal(err)
	}
	if !mw.Contains(date("2025-12-31")) || mw.Contains(date("2026-01-01")) {
		t.Errorf("month window wrong: %+v", mw)
	}

	// February of a leap year.
	mw, err = MonthWindow("2024-02")
	if err != nil {
		t.Fatal(err)
	}
	if !mw.Contains(date("2024-02-29")) || mw.Contains(date("2024-03-01")) {
		t.Errorf("leap february window wrong: %+v", mw)
	}

	yw, err := YearWindow("2025")
	if err != nil {
		t.Fatal(err)
	}
	if !yw.Contains(date("2025-01-01")) || !yw.Contains(date("2025-12-31")) || yw.Contains(date("2026-01-01")) {
		t.Errorf("year window wrong: %+v", yw)
	}

	if _, err := MonthWindow("12-2025"); err == nil {
		t.Error("expected error for malformed month")
	}
}

func TestLatestMonthAndYear(t *testing.T) {
	txs := []core.Transaction{
		{Date: "2025-11-28"},
		{Date: "2025-12-08"},
	}
	if m, ok := LatestMonth(txs); !ok || m != "2025-12" {
		t.Errorf("LatestMonth = %q, %v", m, ok)
	}
	if y, ok := LatestYear(txs); !ok || y != "2025" {
		t.Errorf("LatestYear = %q, %v", y, ok)
	}
	if _, ok := LatestMonth(nil); ok {
		t.Error("empty snapshot must report ok=false")
	}
}

func TestParse(t *testing.T) {
	for _, s := range []string{"1d", "7d", "1m", "1y"} {
		if _, err := Parse(s); err != nil {
			t.Errorf("Parse(%q) failed: %v", s, err)
		}
	}
	if _, err := Parse("2w"); err == nil {
		t.Error("expected error for unknown token")
	}
}
