package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// Kind labels match the values persisted by the original dataset.
	Income  Kind = "орлого"
	Expense Kind = "зарлага"
)

// DateLayout is the wire format for transaction dates (day granularity).
const DateLayout = "2006-01-02"

type (
	Kind string

	// Transaction is an immutable ledger entry. Mutation happens only by
	// wholesale replacement through the store.
	Transaction struct {
		ID          string `json:"id"`
		Date        string `json:"date"` // YYYY-MM-DD
		Kind        Kind   `json:"type"`
		Category    string `json:"category"`
		Amount      int64  `json:"amount"` // whole currency units, no decimals
		Description string `json:"description"`
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidKind      = errors.New("invalid transaction kind")
	ErrUnknownCategory  = errors.New("unknown category for kind")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
)

// Categories is the closed per-kind vocabulary. The store validates against
// it on add/edit; free-text categories are rejected rather than coerced.
var Categories = map[Kind][]string{
	Income:  {"Борлуулалт", "Бусад орлого", "Хүү орлого"},
	Expense: {"Худалдан авалт", "Тээвэр", "Гааль", "Цалин хөлс", "Түрээс", "Маркетинг", "Бусад зарлага"},
}

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

// Label returns the display label for the kind. Kinds are stored as their
// labels, so this is the identity for valid values.
func (k Kind) Label() string {
	return string(k)
}

// ValidCategory reports whether category belongs to the kind's vocabulary.
func ValidCategory(k Kind, category string) bool {
	for _, c := range Categories[k] {
		if c == category {
			return true
		}
	}
	return false
}

// ParseDate parses a YYYY-MM-DD string into a UTC day timestamp.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Day returns the transaction date at day granularity.
func (t Transaction) Day() (time.Time, error) {
	return ParseDate(t.Date)
}

// Validate checks every field except ID, which the store assigns.
func (t Transaction) Validate() error {
	if _, err := ParseDate(t.Date); err != nil {
		return err
	}
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if !ValidCategory(t.Kind, t.Category) {
		return ErrUnknownCategory
	}
	if t.Amount < 0 {
		return ErrInvalidAmount
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}
