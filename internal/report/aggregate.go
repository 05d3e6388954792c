// Package report computes period aggregations over transaction snapshots and
// renders them as export artifacts. Everything here is pure: inputs are
// snapshots owned by the caller and results are recomputed on demand, never
// persisted.
package report

import (
	"sort"

	"sanhuu/internal/core"
	"sanhuu/internal/period"
)

type (
	// CategoryTotal is one row of the category rollup.
	CategoryTotal struct {
		Category string `json:"category"`
		Count    int    `json:"count"`
		Total    int64  `json:"total"`
	}

	// BucketPoint is one time bucket of the income/expense series. Key is a
	// zero-padded ISO fragment (YYYY-MM-DD for daily, YYYY-MM for monthly),
	// so lexicographic order is chronological order.
	BucketPoint struct {
		Key     string `json:"key"`
		Income  int64  `json:"income"`
		Expense int64  `json:"expense"`
	}

	// Result is the derived aggregation for one window.
	Result struct {
		TotalIncome  int64           `json:"totalIncome"`
		TotalExpense int64           `json:"totalExpense"`
		NetProfit    int64           `json:"netProfit"`
		ByCategory   []CategoryTotal `json:"byCategory"`
		Daily        []BucketPoint   `json:"daily"`
		Monthly      []BucketPoint   `json:"monthly"`

		// Skipped counts records excluded because their date would not
		// parse. Callers should surface this instead of dropping it.
		Skipped int `json:"skipped,omitempty"`
	}

	// Options tunes the rollup. The zero value matches the default report:
	// category totals cover both kinds together.
	Options struct {
		// CategoryKind restricts the category rollup to one kind, e.g.
		// core.Expense for a spending-by-category view. Empty means both.
		CategoryKind core.Kind
	}
)

// Aggregate filters the snapshot to the window (inclusive, day granularity)
// and computes totals, the category rollup and the daily/monthly series.
// Two calls with the same inputs produce structurally identical results:
// categories keep first-encounter order and buckets are sorted by key.
func Aggregate(txs []core.Transaction, w period.Window) Result {
	return AggregateWith(txs, w, Options{})
}

// AggregateWith is Aggregate with explicit options.
func AggregateWith(txs []core.Transaction, w period.Window, opts Options) Result {
	res := Result{
		ByCategory: []CategoryTotal{},
		Daily:      []BucketPoint{},
		Monthly:    []BucketPoint{},
	}

	catIndex := map[string]int{}
	dayIndex := map[string]int{}
	monthIndex := map[string]int{}

	for _, tx := range txs {
		day, err := tx.Day()
		if err != nil {
			res.Skipped++
			continue
		}
		if !w.Contains(day) {
			continue
		}

		switch tx.Kind {
		case core.Income:
			res.TotalIncome += tx.Amount
		case core.Expense:
			res.TotalExpense += tx.Amount
		}

		if opts.CategoryKind == "" || tx.Kind == opts.CategoryKind {
			i, ok := catIndex[tx.Category]
			if !ok {
				i = len(res.ByCategory)
				catIndex[tx.Category] = i
				res.ByCategory = append(res.ByCategory, CategoryTotal{Category: tx.Category})
			}
			res.ByCategory[i].Count++
			res.ByCategory[i].Total += tx.Amount
		}

		res.Daily = accumulate(res.Daily, dayIndex, tx.Date, tx)
		res.Monthly = accumulate(res.Monthly, monthIndex, tx.Date[:7], tx)
	}

	res.NetProfit = res.TotalIncome - res.TotalExpense
	sortByKey(res.Daily)
	sortByKey(res.Monthly)
	return res
}

// LastN returns the n most recent buckets of an already sorted series,
// still in ascending order. Used for the last-7-days chart: truncation
// happens after sorting, so it always keeps the newest buckets.
func LastN(points []BucketPoint, n int) []BucketPoint {
	if len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}

func accumulate(points []BucketPoint, index map[string]int, key string, tx core.Transaction) []BucketPoint {
	i, ok := index[key]
	if !ok {
		i = len(points)
		index[key] = i
		points = append(points, BucketPoint{Key: key})
	}
	switch tx.Kind {
	case core.Income:
		points[i].Income += tx.Amount
	case core.Expense:
		points[i].Expense += tx.Amount
	}
	return points
}

func sortByKey(points []BucketPoint) {
	sort.Slice(points, func(i, j int) bool { return points[i].Key < points[j].Key })
}
