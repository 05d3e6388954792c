package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"sanhuu/internal/amqp"
	"sanhuu/internal/core"
	"sanhuu/internal/period"
	"sanhuu/internal/report"
	"sanhuu/internal/store"
)

// ErrEmptyLedger reports that no dated transactions exist to anchor a report on.
var ErrEmptyLedger = errors.New("ledger has no dated transactions")

// EventPublisher is the slice of the AMQP client the service needs.
type EventPublisher interface {
	PublishTransactionChanged(ctx context.Context, id, op string) error
}

// TransactionService orchestrates ledger mutations across the store and AMQP.
// Publishing is best effort: the mutation has already been persisted, so a
// broker outage is logged and swallowed.
type TransactionService struct {
	store     *store.Store
	resolver  *period.Resolver
	publisher EventPublisher
}

func NewTransactionService(st *store.Store, resolver *period.Resolver, publisher EventPublisher) *TransactionService {
	return &TransactionService{
		store:     st,
		resolver:  resolver,
		publisher: publisher,
	}
}

func (s *TransactionService) List() []core.Transaction {
	return s.store.List()
}

func (s *TransactionService) Search(f store.Filter) []core.Transaction {
	return s.store.Search(f)
}

func (s *TransactionService) Add(ctx context.Context, draft core.Transaction) (core.Transaction, error) {
	tx, err := s.store.Add(ctx, draft)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}
	s.publish(ctx, tx.ID, amqp.OpCreated)
	return tx, nil
}

func (s *TransactionService) Edit(ctx context.Context, id string, draft core.Transaction) (core.Transaction, error) {
	tx, err := s.store.Edit(ctx, id, draft)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("edit transaction: %w", err)
	}
	s.publish(ctx, tx.ID, amqp.OpUpdated)
	return tx, nil
}

func (s *TransactionService) Remove(ctx context.Context, id string) error {
	if err := s.store.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove transaction: %w", err)
	}
	s.publish(ctx, id, amqp.OpDeleted)
	return nil
}

// Summary aggregates the ledger over the window the period token resolves to.
// It returns the snapshot it aggregated so callers can derive further rollups
// from the same set of transactions.
func (s *TransactionService) Summary(p period.Period) (period.Window, report.Result, []core.Transaction) {
	txs := s.store.List()
	win := s.resolver.WindowFor(p, txs)
	return win, report.Aggregate(txs, win), txs
}

// MonthReport aggregates one calendar month. An empty month selects the
// latest month present in the ledger.
func (s *TransactionService) MonthReport(month string) (string, []core.Transaction, report.Result, error) {
	txs := s.store.List()
	if month == "" {
		latest, ok := period.LatestMonth(txs)
		if !ok {
			return "", nil, report.Result{}, ErrEmptyLedger
		}
		month = latest
	}
	win, err := period.MonthWindow(month)
	if err != nil {
		return "", nil, report.Result{}, fmt.Errorf("resolve month: %w", err)
	}
	return month, filterWindow(txs, win), report.Aggregate(txs, win), nil
}

// YearReport aggregates one calendar year. An empty year selects the latest
// year present in the ledger.
func (s *TransactionService) YearReport(year string) (string, []core.Transaction, report.Result, error) {
	txs := s.store.List()
	if year == "" {
		latest, ok := period.LatestYear(txs)
		if !ok {
			return "", nil, report.Result{}, ErrEmptyLedger
		}
		year = latest
	}
	win, err := period.YearWindow(year)
	if err != nil {
		return "", nil, report.Result{}, fmt.Errorf("resolve year: %w", err)
	}
	return year, filterWindow(txs, win), report.Aggregate(txs, win), nil
}

// filterWindow keeps the transactions whose day falls inside win, preserving
// ledger order. Unparseable dates are dropped, matching the aggregation.
func filterWindow(txs []core.Transaction, win period.Window) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		day, err := tx.Day()
		if err != nil {
			continue
		}
		if win.Contains(day) {
			out = append(out, tx)
		}
	}
	return out
}

func (s *TransactionService) publish(ctx context.Context, id, op string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransactionChanged(ctx, id, op); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"id", id, "op", op, "error", err)
	}
}
