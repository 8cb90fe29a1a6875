package commands

import (
	"fmt"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const dateFormat = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// brl formats a decimal amount as Brazilian currency, e.g. "R$1.234,56".
func brl(d decimal.Decimal) string {
	cents := d.Shift(2).Round(0).IntPart()
	return money.New(cents, money.BRL).Display()
}

// parseAmount parses a decimal amount from a flag value.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// parseDate parses an ISO date, defaulting to today when empty.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return d, nil
}
