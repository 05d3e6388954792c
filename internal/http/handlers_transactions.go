package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"sanhuu/internal/core"
	"sanhuu/internal/store"
)

// handleTransactions serves GET /transactions (list with filters) and
// POST /transactions (create).
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
	}
}

// handleTransactionByID serves PUT and DELETE on /transactions/{id}.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/transactions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, errors.New("transaction not found"))
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.updateTransaction(w, r, id)
	case http.MethodDelete:
		s.deleteTransaction(w, r, id)
	default:
		w.Header().Set("Allow", "PUT, DELETE")
		writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.Filter{
		Kind:     core.Kind(q.Get("type")),
		Category: q.Get("category"),
		Search:   q.Get("q"),
		From:     q.Get("from"),
		To:       q.Get("to"),
	}

	if filter.Kind != "" && !filter.Kind.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown transaction type %q", filter.Kind))
		return
	}

	txs := s.svc.Search(filter)
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": txs,
		"count":        len(txs),
	})
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var draft core.Transaction
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request body: %w", err))
		return
	}

	tx, err := s.svc.Add(r.Context(), draft)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	s.summaryCache.Clear()
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request, id string) {
	var draft core.Transaction
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request body: %w", err))
		return
	}

	tx, err := s.svc.Edit(r.Context(), id, draft)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	s.summaryCache.Clear()
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.svc.Remove(r.Context(), id); err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	s.summaryCache.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// statusForError maps domain errors onto HTTP status codes. Validation
// failures are the caller's fault; everything else is a server problem.
func statusForError(err error) int {
	switch {
	case errors.Is(err, store.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidKind),
		errors.Is(err, core.ErrUnknownCategory),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyDescription):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
