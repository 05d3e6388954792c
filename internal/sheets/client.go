package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"sanhuu/internal/core"
	"sanhuu/internal/store"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client persists snapshots in a Google Sheet so the ledger stays readable
// by non-technical owners. One row per transaction, columns A:F.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ store.Persistence = (*Client)(nil)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional: GOOGLE_SHEET_NAME (default "Transactions").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Transactions"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))

	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return service, nil
}

// Load implements store.Persistence. An empty sheet maps to
// store.ErrNoSnapshot so the caller installs the seed.
func (c *Client) Load(ctx context.Context) (store.Snapshot, error) {
	if c.svc == nil {
		return store.Snapshot{}, errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:F", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("read sheet %s: %w", c.sheetName, err)
	}
	if len(resp.Values) == 0 {
		return store.Snapshot{}, store.ErrNoSnapshot
	}

	snap := store.Snapshot{Version: store.SnapshotVersion}
	for i, row := range resp.Values {
		tx, err := rowToTransaction(row)
		if err != nil {
			return store.Snapshot{}, fmt.Errorf("row %d: %w", i+1, err)
		}
		snap.Transactions = append(snap.Transactions, tx)
	}

	return snap, nil
}

// Save implements store.Persistence. The sheet range is cleared and
// rewritten so removed transactions do not linger as stale rows.
func (c *Client) Save(ctx context.Context, snap store.Snapshot) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:F", c.sheetName)
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear sheet %s: %w", c.sheetName, err)
	}

	values := make([][]any, 0, len(snap.Transactions))
	for _, t := range snap.Transactions {
		values = append(values, transactionToRow(t))
	}
	if len(values) == 0 {
		return nil
	}

	vr := &gsheet.ValueRange{Values: values}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, fmt.Sprintf("%s!A1", c.sheetName), vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write sheet %s: %w", c.sheetName, err)
	}

	slog.InfoContext(ctx, "Snapshot saved to Google Sheets",
		"spreadsheet_id", c.spreadsheetID,
		"sheet", c.sheetName,
		"transactions", len(snap.Transactions))
	return nil
}

func transactionToRow(t core.Transaction) []any {
	return []any{t.ID, t.Date, string(t.Kind), t.Category, strconv.FormatInt(t.Amount, 10), t.Description}
}

func rowToTransaction(row []any) (core.Transaction, error) {
	if len(row) < 6 {
		return core.Transaction{}, fmt.Errorf("expected 6 columns, got %d", len(row))
	}

	cells := make([]string, 6)
	for i := range cells {
		s, ok := row[i].(string)
		if !ok {
			return core.Transaction{}, fmt.Errorf("column %d: expected string cell, got %T", i+1, row[i])
		}
		cells[i] = s
	}

	amount, err := strconv.ParseInt(strings.TrimSpace(cells[4]), 10, 64)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount %q: %w", cells[4], err)
	}

	return core.Transaction{
		ID:          cells[0],
		Date:        cells[1],
		Kind:        core.Kind(cells[2]),
		Category:    cells[3],
		Amount:      amount,
		Description: cells[5],
	}, nil
}
