package http

import (
	"fmt"
	"net/http"
	"time"

	"sanhuu/internal/core"
	"sanhuu/internal/period"
	"sanhuu/internal/report"
)

// dashboardResponse is the JSON shape behind the dashboard page: headline
// totals for the selected period plus the series that feed its charts.
type dashboardResponse struct {
	Period string `json:"period"`
	Label  string `json:"label"`
	Start  string `json:"start"`
	End    string `json:"end"`

	TotalIncome         int64  `json:"totalIncome"`
	TotalExpense        int64  `json:"totalExpense"`
	NetProfit           int64  `json:"netProfit"`
	TotalIncomeDisplay  string `json:"totalIncomeDisplay"`
	TotalExpenseDisplay string `json:"totalExpenseDisplay"`
	NetProfitDisplay    string `json:"netProfitDisplay"`

	ByCategory []report.CategoryTotal `json:"byCategory"`
	Daily      []report.BucketPoint   `json:"daily"`
	Monthly    []report.BucketPoint   `json:"monthly"`
	Skipped    int                    `json:"skipped"`
}

// handleDashboard serves GET /dashboard?period=7d.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return
	}

	token := r.URL.Query().Get("period")
	if token == "" {
		token = string(period.Week7)
	}

	p, err := period.Parse(token)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if cached, ok := s.summaryCache.Get(token); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	win, agg, txs := s.svc.Summary(p)

	// The expense breakdown drives the category chart; recompute the
	// rollup over the same snapshot restricted to expenses so income
	// rows never dilute it.
	expenseOnly := report.AggregateWith(txs, win, report.Options{CategoryKind: core.Expense})

	resp := dashboardResponse{
		Period: token,
		Label:  p.Label(),
		Start:  win.Start.Format(time.RFC3339),
		End:    win.End.Format(time.RFC3339),

		TotalIncome:         agg.TotalIncome,
		TotalExpense:        agg.TotalExpense,
		NetProfit:           agg.NetProfit,
		TotalIncomeDisplay:  core.FormatMoney(agg.TotalIncome),
		TotalExpenseDisplay: core.FormatMoney(agg.TotalExpense),
		NetProfitDisplay:    core.FormatMoney(agg.NetProfit),

		ByCategory: expenseOnly.ByCategory,
		Daily:      report.LastN(agg.Daily, 7),
		Monthly:    agg.Monthly,
		Skipped:    agg.Skipped,
	}

	s.summaryCache.Set(token, resp)
	writeJSON(w, http.StatusOK, resp)
}
