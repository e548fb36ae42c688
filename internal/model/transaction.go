// Package model defines the core domain types shared across the application.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransactionType tells whether money came in or went out.
type TransactionType string

const (
	// TypeIncome marks money received.
	TypeIncome TransactionType = "Income"
	// TypeExpense marks money spent.
	TypeExpense TransactionType = "Expense"
)

// Validation errors.
var (
	ErrMissingID        = errors.New("missing transaction id")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrMissingDate      = errors.New("missing date")
)

// Transaction is a single income or expense record.
// ID is assigned once at creation and never changes; the other fields may be
// replaced wholesale by an update.
type Transaction struct {
	Date        time.Time       `json:"date"`
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"` // Always a positive magnitude; Type carries the sign
}

// NewID returns a fresh unique transaction identifier.
func NewID() string {
	return uuid.NewString()
}

// NewTransaction builds a transaction with a freshly assigned ID.
func NewTransaction(amount float64, description, category string, t TransactionType, date time.Time) Transaction {
	return Transaction{
		ID:          NewID(),
		Amount:      amount,
		Description: description,
		Category:    category,
		Type:        t,
		Date:        date,
	}
}

// IsIncome reports whether the transaction is income.
func (t Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// Validate checks the fields the entry layer is responsible for.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrMissingID
	}
	if t.Amount < 0 || math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, t.Amount)
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if !t.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, t.Type)
	}
	if t.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// String implements fmt.Stringer.
func (t TransactionType) String() string {
	return string(t)
}

// UnmarshalJSON rejects unknown type labels so a corrupt blob is detected on load.
func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed := TransactionType(s)
	if !parsed.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	*t = parsed
	return nil
}

// ParseType parses a user supplied type name, case-insensitively.
func ParseType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "in":
		return TypeIncome, nil
	case "expense", "out":
		return TypeExpense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
}

// ParseAmount parses a user entered amount. Both "12.34" and "12,34" are accepted.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("%w: must not be negative", ErrInvalidAmount)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return v, nil
}
