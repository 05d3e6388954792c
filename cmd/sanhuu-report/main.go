package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"sanhuu/internal/backend"
	"sanhuu/internal/config"
	"sanhuu/internal/core"
	"sanhuu/internal/period"
	"sanhuu/internal/report"
	"sanhuu/internal/services"
	"sanhuu/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	var (
		month  = flag.String("month", "", "report month as YYYY-MM (default: latest month in the ledger)")
		year   = flag.String("year", "", "report year as YYYY; overrides -month")
		outDir = flag.String("out", "", "write CSV, HTML, and chart artifacts to this directory")
	)
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	res, err := backend.NewFactory(logger).Create(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialize backend: %v\n", err)
		os.Exit(1)
	}
	if res.Cleanup != nil {
		defer res.Cleanup()
	}

	st, err := store.Open(ctx, res.Persistence, store.Seed())
	if err != nil {
		fmt.Fprintf(os.Stderr, "open store: %v\n", err)
		os.Exit(1)
	}
	svc := services.NewTransactionService(st, &period.Resolver{}, nil)

	var (
		label string
		txs   []core.Transaction
		agg   report.Result
	)
	if *year != "" {
		label, txs, agg, err = svc.YearReport(*year)
	} else {
		label, txs, agg, err = svc.MonthReport(*month)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "build report: %v\n", err)
		os.Exit(1)
	}

	printSummary(label, agg)
	printCategories(agg)

	if *outDir != "" {
		if err := writeArtifacts(*outDir, label, txs, agg); err != nil {
			fmt.Fprintf(os.Stderr, "write artifacts: %v\n", err)
			os.Exit(1)
		}
	}
}

func printSummary(label string, agg report.Result) {
	fmt.Printf("Тайлан: %s\n\n", label)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"", "Дүн"})
	table.Append([]string{core.Income.Label(), core.FormatMoney(agg.TotalIncome)})
	table.Append([]string{core.Expense.Label(), core.FormatMoney(agg.TotalExpense)})
	table.Append([]string{"Цэвэр ашиг", core.FormatMoney(agg.NetProfit)})
	table.Render()

	if agg.Skipped > 0 {
		fmt.Printf("\nАнхаар: %d гүйлгээний огноо уншигдсангүй\n", agg.Skipped)
	}
}

func printCategories(agg report.Result) {
	if len(agg.ByCategory) == 0 {
		return
	}

	fmt.Println()
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Ангилал", "Гүйлгээ", "Нийт дүн"})
	for _, ct := range agg.ByCategory {
		table.Append([]string{ct.Category, fmt.Sprintf("%d", ct.Count), core.FormatMoney(ct.Total)})
	}
	table.Render()
}

func writeArtifacts(dir, label string, txs []core.Transaction, agg report.Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	csvPath := filepath.Join(dir, fmt.Sprintf("san_huu_tailan_%s.csv", label))
	if err := os.WriteFile(csvPath, []byte(report.BuildCSV(txs, agg)), 0644); err != nil {
		return err
	}
	fmt.Printf("\nCSV: %s\n", csvPath)

	htmlPath := filepath.Join(dir, fmt.Sprintf("san_huu_tailan_%s.html", label))
	if err := os.WriteFile(htmlPath, []byte(report.BuildHTML(txs, agg, label)), 0644); err != nil {
		return err
	}
	fmt.Printf("HTML: %s\n", htmlPath)

	if len(agg.Daily) == 0 {
		return nil
	}
	pngPath := filepath.Join(dir, fmt.Sprintf("san_huu_tailan_%s.png", label))
	f, err := os.Create(pngPath)
	if err != nil {
		return err
	}
	if err := report.RenderBucketChart(label, agg.Daily, f); err != nil {
		f.Close()
		os.Remove(pngPath)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Chart: %s\n", pngPath)
	return nil
}
