package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"sanhuu/internal/core"
	"sanhuu/internal/store"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "sanhuu.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestLoadEmptyDatabase(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Load(context.Background())
	if !errors.Is(err, store.ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	snap := store.Snapshot{
		Version: store.SnapshotVersion,
		Transactions: []core.Transaction{
			{ID: "a", Date: "2025-12-01", Kind: core.Income, Category: "Борлуулалт", Amount: 2000000, Description: "Дугуй борлуулалт"},
			{ID: "b", Date: "2025-12-01", Kind: core.Expense, Category: "Түрээс", Amount: 500000, Description: "Сарын түрээс"},
		},
	}
	if err := repo.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Version != store.SnapshotVersion {
		t.Errorf("version = %d, want %d", got.Version, store.SnapshotVersion)
	}
	if len(got.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(got.Transactions))
	}
	if got.Transactions[0] != snap.Transactions[0] {
		t.Errorf("first transaction = %+v, want %+v", got.Transactions[0], snap.Transactions[0])
	}
	if got.Transactions[1].Kind != core.Expense {
		t.Errorf("kind = %q, want %q", got.Transactions[1].Kind, core.Expense)
	}
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := store.Snapshot{Version: store.SnapshotVersion, Transactions: store.Seed()}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("Save first: %v", err)
	}

	second := store.Snapshot{
		Version: store.SnapshotVersion,
		Transactions: []core.Transaction{
			{ID: "only", Date: "2025-12-09", Kind: core.Expense, Category: "Тээвэр", Amount: 120000, Description: "Хүргэлт"},
		},
	}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(got.Transactions))
	}
	if got.Transactions[0].ID != "only" {
		t.Errorf("id = %q, want %q", got.Transactions[0].ID, "only")
	}
}

func TestLoadPreservesInsertionOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	snap := store.Snapshot{Version: store.SnapshotVersion, Transactions: store.Seed()}
	if err := repo.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i, tx := range snap.Transactions {
		if got.Transactions[i].ID != tx.ID {
			t.Fatalf("position %d: got id %q, want %q", i, got.Transactions[i].ID, tx.ID)
		}
	}
}

func TestStoreOpenSeedsSQLite(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	s, err := store.Open(ctx, repo, store.Seed())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := len(s.List()); got != len(store.Seed()) {
		t.Fatalf("store holds %d transactions, want %d", got, len(store.Seed()))
	}

	// A second open must read the persisted rows, not reseed.
	again, err := store.Open(ctx, repo, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := len(again.List()); got != len(store.Seed()) {
		t.Fatalf("reopened store holds %d transactions, want %d", got, len(store.Seed()))
	}
}
