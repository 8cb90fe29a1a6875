package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// IfoodParser parses iFood repasse exports: semicolon-separated, dates as
// dd/mm/yyyy and amounts in Brazilian notation ("1.234,56"). Debit rows
// (taxas, estornos) carry negative amounts and are kept; callers decide
// whether to skip them.
type IfoodParser struct{}

const (
	ifoodDateFormat = "02/01/2006"
	ifoodNumFields  = 3
	ifoodColDate    = 0
	ifoodColDesc    = 1
	ifoodColAmount  = 2
)

// Format returns the parser name.
func (p *IfoodParser) Format() string { return "ifood" }

// Parse reads an iFood repasse CSV and returns Earnings.
func (p *IfoodParser) Parse(r io.Reader) ([]Earning, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = ifoodNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ifood CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var earnings []Earning
	for i, rec := range records[1:] {
		e, err := parseIfoodRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		earnings = append(earnings, e)
	}
	return earnings, nil
}

func parseIfoodRow(rec []string) (Earning, error) {
	date, err := time.Parse(ifoodDateFormat, rec[ifoodColDate])
	if err != nil {
		return Earning{}, fmt.Errorf("parsing date %q: %w", rec[ifoodColDate], err)
	}

	amount, err := parseBrazilianAmount(rec[ifoodColAmount])
	if err != nil {
		return Earning{}, fmt.Errorf("parsing amount %q: %w", rec[ifoodColAmount], err)
	}

	return Earning{
		Date:     date,
		Platform: "iFood",
		Amount:   amount,
		Notes:    rec[ifoodColDesc],
	}, nil
}

// parseBrazilianAmount converts "1.234,56" (optionally with a leading
// "R$ " prefix) into a decimal.
func parseBrazilianAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	return decimal.NewFromString(s)
}
