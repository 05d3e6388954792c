package report

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"sanhuu/internal/core"
	"sanhuu/internal/period"
)

func window(start, end string) period.Window {
	s, err := core.ParseDate(start)
	if err != nil {
		panic(err)
	}
	e, err := core.ParseDate(end)
	if err != nil {
		panic(err)
	}
	return period.Window{Start: s, End: e.Add(23*time.Hour + 59*time.Minute + 59*time.Second)}
}

func tx(date string, kind core.Kind, category string, amount int64, desc string) core.Transaction {
	return core.Transaction{Date: date, Kind: kind, Category: category, Amount: amount, Description: desc}
}

func TestAggregateSingleDay(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-12-01", core.Expense, "Түрээс", 500000, "Office"),
		tx("2025-12-01", core.Income, "Борлуулалт", 2000000, "Deal"),
	}
	res := Aggregate(txs, window("2025-12-01", "2025-12-01"))

	if res.TotalIncome != 2000000 {
		t.Errorf("TotalIncome = %d", res.TotalIncome)
	}
	if res.TotalExpense != 500000 {
		t.Errorf("TotalExpense = %d", res.TotalExpense)
	}
	if res.NetProfit != 1500000 {
		t.Errorf("NetProfit = %d", res.NetProfit)
	}

	want := []CategoryTotal{
		{Category: "Түрээс", Count: 1, Total: 500000},
		{Category: "Борлуулалт", Count: 1, Total: 2000000},
	}
	if !reflect.DeepEqual(res.ByCategory, want) {
		t.Errorf("ByCategory = %+v, want %+v", res.ByCategory, want)
	}
}

func TestAggregateNetProfitIdentity(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-12-01", core.Income, "Борлуулалт", 100, "a"),
		tx("2025-12-02", core.Expense, "Тээвэр", 250, "b"),
		tx("2025-12-03", core.Expense, "Гааль", 75, "c"),
		tx("2025-12-04", core.Income, "Хүү орлого", 10, "d"),
	}
	res := Aggregate(txs, window("2025-12-01", "2025-12-31"))
	if res.TotalIncome-res.TotalExpense != res.NetProfit {
		t.Errorf("identity broken: %d - %d != %d", res.TotalIncome, res.TotalExpense, res.NetProfit)
	}
	if res.NetProfit != -215 {
		t.Errorf("NetProfit = %d, want -215", res.NetProfit)
	}
}

func TestAggregateCategorySums(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-12-01", core.Income, "Борлуулалт", 1000, "a"),
		tx("2025-12-01", core.Expense, "Тээвэр", 300, "b"),
		tx("2025-12-02", core.Expense, "Тээвэр", 200, "c"),
		tx("2025-12-03", core.Expense, "Түрээс", 500, "d"),
	}
	w := window("2025-12-01", "2025-12-31")

	// Unfiltered rollup sums to income + expense.
	res := Aggregate(txs, w)
	var sum int64
	for _, c := range res.ByCategory {
		sum += c.Total
	}
	if sum != res.TotalIncome+res.TotalExpense {
		t.Errorf("unfiltered rollup sums to %d, want %d", sum, res.TotalIncome+res.TotalExpense)
	}

	// Expense-only rollup sums to the expense total.
	res = AggregateWith(txs, w, Options{CategoryKind: core.Expense})
	sum = 0
	for _, c := range res.ByCategory {
		sum += c.Total
	}
	if sum != res.TotalExpense {
		t.Errorf("expense rollup sums to %d, want %d", sum, res.TotalExpense)
	}
	for _, c := range res.ByCategory {
		if c.Category == "Борлуулалт" {
			t.Error("income category leaked into expense-only rollup")
		}
	}
}

func TestAggregateIdempotent(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-12-03", core.Expense, "Гааль", 300000, "Гаалийн татвар"),
		tx("2025-12-01", core.Income, "Борлуулалт", 2500000, "Michelin"),
		tx("2025-11-28", core.Income, "Борлуулалт", 1500000, "Сарын сүүл"),
	}
	w := window("2025-11-01", "2025-12-31")

	first := Aggregate(txs, w)
	second := Aggregate(txs, w)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ:\n%+v\n%+v", first, second)
	}
}

func TestAggregateWindowInclusivity(t *testing.T) {
	w := window("2025-12-02", "2025-12-08")
	cases := []struct {
		date string
		in   bool
	}{
		{"2025-12-01", false},
		{"2025-12-02", true},
		{"2025-12-08", true},
		{"2025-12-09", false},
	}
	for _, tc := range cases {
		res := Aggregate([]core.Transaction{tx(tc.date, core.Income, "Борлуулалт", 1, "x")}, w)
		got := res.TotalIncome == 1
		if got != tc.in {
			t.Errorf("date %s included=%v, want %v", tc.date, got, tc.in)
		}
	}
}

func TestAggregateBucketsSortedAscending(t *testing.T) {
	// Deliberately unsorted input across two months.
	txs := []core.Transaction{
		tx("2025-12-05", core.Expense, "Цалин хөлс", 800000, "цалин"),
		tx("2025-11-20", core.Income, "Борлуулалт", 4200000, "том захиалга"),
		tx("2025-12-01", core.Income, "Борлуулалт", 2500000, "Michelin"),
		tx("2025-12-01", core.Expense, "Худалдан авалт", 1800000, "импорт"),
	}
	res := Aggregate(txs, window("2025-11-01", "2025-12-31"))

	wantDaily := []BucketPoint{
		{Key: "2025-11-20", Income: 4200000},
		{Key: "2025-12-01", Income: 2500000, Expense: 1800000},
		{Key: "2025-12-05", Expense: 800000},
	}
	if !reflect.DeepEqual(res.Daily, wantDaily) {
		t.Errorf("Daily = %+v, want %+v", res.Daily, wantDaily)
	}

	wantMonthly := []BucketPoint{
		{Key: "2025-11", Income: 4200000},
		{Key: "2025-12", Income: 2500000, Expense: 2600000},
	}
	if !reflect.DeepEqual(res.Monthly, wantMonthly) {
		t.Errorf("Monthly = %+v, want %+v", res.Monthly, wantMonthly)
	}
}

func TestLastNTruncation(t *testing.T) {
	// Ten consecutive days; the chart series keeps the seven newest,
	// still ascending.
	var txs []core.Transaction
	for d := 1; d <= 10; d++ {
		txs = append(txs, tx(fmt.Sprintf("2025-12-%02d", d), core.Income, "Борлуулалт", int64(d), "day"))
	}
	res := Aggregate(txs, window("2025-12-01", "2025-12-31"))

	got := LastN(res.Daily, 7)
	if len(got) != 7 {
		t.Fatalf("len = %d, want 7", len(got))
	}
	if got[0].Key != "2025-12-04" || got[6].Key != "2025-12-10" {
		t.Errorf("range = %s..%s, want 2025-12-04..2025-12-10", got[0].Key, got[6].Key)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Key >= got[i].Key {
			t.Errorf("series not ascending at %d: %s >= %s", i, got[i-1].Key, got[i].Key)
		}
	}

	// Short series are returned whole.
	if short := LastN(res.Daily[:3], 7); len(short) != 3 {
		t.Errorf("short series truncated to %d", len(short))
	}
}

func TestAggregateMalformedDatesSkipped(t *testing.T) {
	txs := []core.Transaction{
		tx("2025-12-01", core.Income, "Борлуулалт", 100, "good"),
		tx("12/01/2025", core.Income, "Борлуулалт", 900, "bad format"),
		tx("", core.Expense, "Тээвэр", 50, "empty"),
	}
	res := Aggregate(txs, window("2025-12-01", "2025-12-31"))
	if res.TotalIncome != 100 {
		t.Errorf("TotalIncome = %d, malformed record leaked in", res.TotalIncome)
	}
	if res.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", res.Skipped)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	res := Aggregate(nil, window("2025-12-01", "2025-12-31"))
	if res.TotalIncome != 0 || res.TotalExpense != 0 || res.NetProfit != 0 {
		t.Errorf("non-zero totals for empty input: %+v", res)
	}
	if len(res.ByCategory) != 0 || len(res.Daily) != 0 || len(res.Monthly) != 0 {
		t.Errorf("non-empty collections for empty input: %+v", res)
	}
}
