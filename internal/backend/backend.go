package backend

import (
	"context"
	"fmt"
	"log/slog"

	"sanhuu/internal/config"
	"sanhuu/internal/sheets"
	"sanhuu/internal/storage"
	"sanhuu/internal/store"
)

// Type selects which persistence implementation backs the transaction store.
type Type string

const (
	MemoryBackend Type = "memory"
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
	SheetsBackend Type = "sheets"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, FileBackend, SQLiteBackend, SheetsBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result carries the persistence instance and its cleanup, which may be nil.
type Result struct {
	Persistence store.Persistence
	Cleanup     CleanupFunc
}

// Factory creates persistence backends from the application config.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

func (f *Factory) Create(ctx context.Context, cfg *config.Config) (*Result, error) {
	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	switch t {
	case MemoryBackend:
		f.logger.Info("Initialized memory backend")
		return &Result{Persistence: &store.MemoryPersistence{}}, nil

	case FileBackend:
		f.logger.Info("Initialized file backend", "path", cfg.SnapshotPath)
		return &Result{Persistence: &store.FilePersistence{Path: cfg.SnapshotPath}}, nil

	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Persistence: repo, Cleanup: repo.Close}, nil

	case SheetsBackend:
		cli, err := sheets.NewFromEnv(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize Google Sheets client: %w", err)
		}
		f.logger.Info("Initialized Google Sheets backend",
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"sheet", cfg.GoogleSheetName)
		return &Result{Persistence: cli}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", t)
	}
}
