package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a bank account ("banco") with a cached balance.
// Balance is derived-but-stored: every entry mutation adjusts it in place
// rather than recomputing it from the entry history on read.
type Account struct {
	ID      int64
	Name    string
	Number  string // external account number, free text
	Balance decimal.Decimal
}

// Income is a recorded inflow ("receita") attributed to one account.
type Income struct {
	ID          int64
	Description string // source platform (iFood, Rappi, ...)
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
	Notes       string
	AccountID   int64
	Installment string // "k/n" marker, empty for single payments
}

// Expense is a recorded outflow ("despesa") attributed to one account.
type Expense struct {
	ID          int64
	Description string // display label derived from Category
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
	Notes       string
	AccountID   int64
	Installment string
}

// Goal is a savings goal ("objetivo"). Current <= Target is enforced by the
// ledger service, not by the store.
type Goal struct {
	ID       int64
	Title    string
	Target   decimal.Decimal
	Current  decimal.Decimal
	Deadline time.Time
}

// Targets holds the daily/weekly/monthly income targets ("metas").
// The store keeps a single row with ID 1.
type Targets struct {
	ID      int64
	Daily   decimal.Decimal
	Weekly  decimal.Decimal
	Monthly decimal.Decimal
}

// DefaultTargets returns the targets used before the user sets their own.
func DefaultTargets() Targets {
	return Targets{
		ID:      1,
		Daily:   decimal.NewFromInt(120),
		Weekly:  decimal.NewFromInt(840),
		Monthly: decimal.NewFromInt(3600),
	}
}
