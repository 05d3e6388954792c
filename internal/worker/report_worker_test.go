package worker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sanhuu/internal/amqp"
	"sanhuu/internal/store"
)

func seededPersistence(t *testing.T) *store.MemoryPersistence {
	t.Helper()
	p := &store.MemoryPersistence{}
	snap := store.Snapshot{Version: store.SnapshotVersion, Transactions: store.Seed()}
	if err := p.Save(context.Background(), snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return p
}

func TestRebuildWritesArtifacts(t *testing.T) {
	outDir := t.TempDir()
	w := NewReportWorker(seededPersistence(t), outDir, 0)

	if err := w.Rebuild(context.Background()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	// Seed data spans 2025-11 and 2025-12; latest month and year artifacts.
	for _, name := range []string{
		"tailan-2025-12.csv",
		"tailan-2025-12.html",
		"tailan-2025-12.png",
		"tailan-2025.csv",
		"tailan-2025.html",
		"tailan-2025.png",
	} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}
}

func TestRebuildCSVContent(t *testing.T) {
	outDir := t.TempDir()
	w := NewReportWorker(seededPersistence(t), outDir, 0)

	if err := w.Rebuild(context.Background()); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "tailan-2025-12.csv"))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	body := string(data)

	if !strings.HasPrefix(body, "\uFEFF") {
		t.Error("CSV must start with a UTF-8 BOM")
	}
	if !strings.Contains(body, `"Нийт орлого"`) {
		t.Error("CSV missing income summary row")
	}
	// November rows must not leak into the December report.
	if strings.Contains(body, "2025-11-28") {
		t.Error("December CSV contains November transaction")
	}
}

func TestRebuildFailsWithoutSnapshot(t *testing.T) {
	w := NewReportWorker(&store.MemoryPersistence{}, t.TempDir(), 0)

	if err := w.Rebuild(context.Background()); err == nil {
		t.Fatal("expected error when no snapshot exists")
	}
}

func TestHandleEventCoalesces(t *testing.T) {
	w := NewReportWorker(seededPersistence(t), t.TempDir(), 0)

	for i := 0; i < 10; i++ {
		if err := w.HandleEvent(amqp.NewTransactionEvent("x", amqp.OpCreated)); err != nil {
			t.Fatalf("HandleEvent: %v", err)
		}
	}

	// All ten events collapse into a single queued rebuild.
	select {
	case <-w.kick:
	default:
		t.Fatal("expected a queued rebuild")
	}
	select {
	case <-w.kick:
		t.Fatal("expected exactly one queued rebuild")
	default:
	}
}

func TestRunRebuildsOnEvent(t *testing.T) {
	outDir := t.TempDir()
	w := NewReportWorker(seededPersistence(t), outDir, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	w.HandleEvent(amqp.NewTransactionEvent("1", amqp.OpUpdated))

	deadline := time.After(5 * time.Second)
	for {
		if _, err := os.Stat(filepath.Join(outDir, "tailan-2025-12.csv")); err == nil {
			break
		}
		select {
		case <-deadline:
			t.Fatal("rebuild did not produce artifacts in time")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on context cancellation")
	}
}
