package http

import (
	"fmt"
	"net/http"

	"sanhuu/internal/core"
	"sanhuu/internal/report"
)

// reportScope resolves the month= or year= query parameter into the report
// window. Month wins when both are present; neither defaults to the latest
// month in the ledger.
func (s *Server) reportScope(r *http.Request) (label string, txs []core.Transaction, agg report.Result, err error) {
	q := r.URL.Query()
	if year := q.Get("year"); year != "" && q.Get("month") == "" {
		return s.svc.YearReport(year)
	}
	return s.svc.MonthReport(q.Get("month"))
}

// handleReportCSV serves GET /reports/csv?month=YYYY-MM as a download.
func (s *Server) handleReportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return
	}

	label, txs, agg, err := s.reportScope(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="san_huu_tailan_%s.csv"`, label))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(report.BuildCSV(txs, agg)))
}

// handleReportHTML serves GET /reports/html?month=YYYY-MM as a printable page.
func (s *Server) handleReportHTML(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return
	}

	label, txs, agg, err := s.reportScope(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(report.BuildHTML(txs, agg, label)))
}

// handleReportChart serves GET /reports/chart.png?month=YYYY-MM, a daily
// income versus expense bar chart.
func (s *Server) handleReportChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
		return
	}

	label, _, agg, err := s.reportScope(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(agg.Daily) == 0 {
		writeError(w, http.StatusNotFound, fmt.Errorf("no activity in %s", label))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := report.RenderBucketChart(label, agg.Daily, w); err != nil {
		writeError(w, http.StatusInternalServerError, err)
	}
}
