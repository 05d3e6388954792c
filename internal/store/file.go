package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"sanhuu/internal/core"
)

// FilePersistence keeps the snapshot as a JSON document on disk, one file
// per ledger. Writes go through a temp file plus rename so a crash cannot
// leave a half-written snapshot behind.
type FilePersistence struct {
	Path string
}

func NewFilePersistence(path string) *FilePersistence {
	return &FilePersistence{Path: path}
}

func (p *FilePersistence) Load(_ context.Context) (Snapshot, error) {
	data, err := os.ReadFile(p.Path)
	if os.IsNotExist(err) {
		return Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot %s: %w", p.Path, err)
	}
	return decodeSnapshot(data)
}

func (p *FilePersistence) Save(_ context.Context, snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(p.Path), 0755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := p.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, p.Path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// decodeSnapshot accepts the versioned format and, for compatibility with
// ledgers written before the version tag existed, a bare transaction array.
func decodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err == nil && snap.Version > 0 {
		return snap, nil
	}

	var legacy []core.Transaction
	if err := json.Unmarshal(data, &legacy); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return Snapshot{Version: SnapshotVersion, Transactions: legacy}, nil
}

// MemoryPersistence holds the snapshot in process memory. Used by tests and
// the demo backend.
type MemoryPersistence struct {
	mu   sync.Mutex
	snap *Snapshot
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{}
}

func (p *MemoryPersistence) Load(_ context.Context) (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.snap == nil {
		return Snapshot{}, ErrNoSnapshot
	}
	return *p.snap, nil
}

func (p *MemoryPersistence) Save(_ context.Context, snap Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap = &snap
	return nil
}
