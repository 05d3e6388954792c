package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"sanhuu/internal/amqp"
	"sanhuu/internal/core"
	"sanhuu/internal/period"
	"sanhuu/internal/report"
	"sanhuu/internal/store"
)

// ReportWorker regenerates report artifacts whenever the ledger changes.
// Artifacts for the latest month and year land in the output directory so
// the owner always has a current export without touching the API.
type ReportWorker struct {
	persist  store.Persistence
	outDir   string
	debounce time.Duration
	kick     chan struct{}
}

func NewReportWorker(persist store.Persistence, outDir string, debounce time.Duration) *ReportWorker {
	return &ReportWorker{
		persist:  persist,
		outDir:   outDir,
		debounce: debounce,
		kick:     make(chan struct{}, 1),
	}
}

// HandleEvent queues a rebuild. Bursts of events collapse into one rebuild.
func (w *ReportWorker) HandleEvent(msg *amqp.TransactionEvent) error {
	select {
	case w.kick <- struct{}{}:
	default:
	}
	return nil
}

// Run consumes rebuild requests until ctx is cancelled. After a request
// arrives it waits out the debounce window so a burst of ledger mutations
// produces a single rebuild.
func (w *ReportWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.kick:
		}

		if w.debounce > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.debounce):
			}
			// Drop anything queued while waiting.
			select {
			case <-w.kick:
			default:
			}
		}

		if err := w.Rebuild(ctx); err != nil {
			slog.ErrorContext(ctx, "Report rebuild failed", "error", err)
		}
	}
}

// Rebuild loads the current snapshot and rewrites all report artifacts.
func (w *ReportWorker) Rebuild(ctx context.Context) error {
	snap, err := w.persist.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	txs := snap.Transactions

	if err := os.MkdirAll(w.outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	month, ok := period.LatestMonth(txs)
	if ok {
		if err := w.writeWindowArtifacts(txs, month, period.MonthWindow); err != nil {
			return err
		}
	}

	year, ok := period.LatestYear(txs)
	if ok {
		if err := w.writeWindowArtifacts(txs, year, period.YearWindow); err != nil {
			return err
		}
	}

	slog.InfoContext(ctx, "Report artifacts rebuilt",
		"dir", w.outDir,
		"month", month,
		"year", year,
		"transactions", len(txs))
	return nil
}

func (w *ReportWorker) writeWindowArtifacts(txs []core.Transaction, label string, resolve func(string) (period.Window, error)) error {
	win, err := resolve(label)
	if err != nil {
		return fmt.Errorf("resolve window %s: %w", label, err)
	}

	windowTxs := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		day, err := tx.Day()
		if err != nil {
			continue
		}
		if win.Contains(day) {
			windowTxs = append(windowTxs, tx)
		}
	}

	agg := report.Aggregate(txs, win)

	csvPath := filepath.Join(w.outDir, fmt.Sprintf("tailan-%s.csv", label))
	if err := os.WriteFile(csvPath, []byte(report.BuildCSV(windowTxs, agg)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", csvPath, err)
	}

	htmlPath := filepath.Join(w.outDir, fmt.Sprintf("tailan-%s.html", label))
	if err := os.WriteFile(htmlPath, []byte(report.BuildHTML(windowTxs, agg, label)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", htmlPath, err)
	}

	if len(agg.Daily) > 0 {
		pngPath := filepath.Join(w.outDir, fmt.Sprintf("tailan-%s.png", label))
		f, err := os.Create(pngPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", pngPath, err)
		}
		if err := report.RenderBucketChart(label, agg.Daily, f); err != nil {
			f.Close()
			os.Remove(pngPath)
			return fmt.Errorf("render chart %s: %w", pngPath, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", pngPath, err)
		}
	}

	return nil
}
