// Package store owns the canonical transaction list. Mutations go through
// Add/Edit/Remove, which validate, replace wholesale and persist the new
// snapshot through an injected Persistence collaborator. Readers only ever
// get copies; the aggregation and export layers never touch shared state.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"sanhuu/internal/core"
)

// SnapshotVersion tags the serialized format so it can evolve later.
const SnapshotVersion = 1

type (
	// Snapshot is the persisted form of the store: a version tag plus the
	// full transaction list.
	Snapshot struct {
		Version      int                `json:"version"`
		Transactions []core.Transaction `json:"transactions"`
	}

	// Persistence loads and saves snapshots. Load returns ErrNoSnapshot
	// when nothing has been persisted yet.
	Persistence interface {
		Load(ctx context.Context) (Snapshot, error)
		Save(ctx context.Context, snap Snapshot) error
	}

	Store struct {
		mu      sync.Mutex
		txs     []core.Transaction
		persist Persistence
		newID   func() string
	}

	// Filter narrows List output. Zero fields are ignored.
	Filter struct {
		Kind     core.Kind
		Category string
		Search   string // substring of description or category, case-insensitive
		From     string // YYYY-MM-DD inclusive
		To       string // YYYY-MM-DD inclusive
	}
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNoSnapshot          = errors.New("no snapshot persisted")
)

// Open loads the persisted snapshot into a new store. When no snapshot
// exists yet the seed set is installed and persisted immediately, so a
// fresh deployment starts with data instead of an empty ledger.
func Open(ctx context.Context, persist Persistence, seed []core.Transaction) (*Store, error) {
	s := &Store{persist: persist, newID: uuid.NewString}

	snap, err := persist.Load(ctx)
	switch {
	case errors.Is(err, ErrNoSnapshot):
		s.txs = append([]core.Transaction(nil), seed...)
		if err := persist.Save(ctx, s.snapshot()); err != nil {
			return nil, fmt.Errorf("persist seed snapshot: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("load snapshot: %w", err)
	default:
		s.txs = snap.Transactions
	}

	return s, nil
}

// List returns the current snapshot in insertion order. The returned slice
// is a copy and safe to hold across later mutations.
func (s *Store) List() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.txs...)
}

// Search returns the transactions matching the filter, in insertion order.
func (s *Store) Search(f Filter) []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Transaction
	for _, tx := range s.txs {
		if f.Match(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// Add validates the draft, assigns a fresh id and persists the grown
// snapshot. The stored transaction is returned.
func (s *Store) Add(ctx context.Context, draft core.Transaction) (core.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft.ID = s.newID()
	s.txs = append(s.txs, draft)
	if err := s.persist.Save(ctx, s.snapshot()); err != nil {
		s.txs = s.txs[:len(s.txs)-1]
		return core.Transaction{}, fmt.Errorf("persist after add: %w", err)
	}
	return draft, nil
}

// Edit replaces every field of the identified transaction except its id.
func (s *Store) Edit(ctx context.Context, id string, draft core.Transaction) (core.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return core.Transaction{}, fmt.Errorf("edit %q: %w", id, ErrTransactionNotFound)
	}

	prev := s.txs[i]
	draft.ID = id
	s.txs[i] = draft
	if err := s.persist.Save(ctx, s.snapshot()); err != nil {
		s.txs[i] = prev
		return core.Transaction{}, fmt.Errorf("persist after edit: %w", err)
	}
	return draft, nil
}

// Remove deletes by id and persists the shrunk snapshot.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("remove %q: %w", id, ErrTransactionNotFound)
	}

	prev := s.txs
	s.txs = append(append([]core.Transaction(nil), s.txs[:i]...), s.txs[i+1:]...)
	if err := s.persist.Save(ctx, s.snapshot()); err != nil {
		s.txs = prev
		return fmt.Errorf("persist after remove: %w", err)
	}
	return nil
}

func (s *Store) indexOf(id string) int {
	for i, tx := range s.txs {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() Snapshot {
	return Snapshot{
		Version:      SnapshotVersion,
		Transactions: append([]core.Transaction(nil), s.txs...),
	}
}

// Match reports whether a transaction passes the filter.
func (f Filter) Match(tx core.Transaction) bool {
	if f.Kind != "" && tx.Kind != f.Kind {
		return false
	}
	if f.Category != "" && tx.Category != f.Category {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(tx.Description), q) &&
			!strings.Contains(strings.ToLower(tx.Category), q) {
			return false
		}
	}
	if f.From != "" && tx.Date < f.From {
		return false
	}
	if f.To != "" && tx.Date > f.To {
		return false
	}
	return true
}
