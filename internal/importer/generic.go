package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// GenericParser parses the app's own statement layout:
// data,plataforma,valor,observacoes with ISO dates and dot decimals.
type GenericParser struct{}

const (
	genericDateFormat = "2006-01-02"
	genericNumFields  = 4
	genericColDate    = 0
	genericColPlat    = 1
	genericColAmount  = 2
	genericColNotes   = 3
)

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads a generic earnings CSV and returns Earnings.
func (p *GenericParser) Parse(r io.Reader) ([]Earning, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = genericNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading earnings CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var earnings []Earning
	for i, rec := range records[1:] {
		e, err := parseGenericRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		earnings = append(earnings, e)
	}
	return earnings, nil
}

func parseGenericRow(rec []string) (Earning, error) {
	date, err := time.Parse(genericDateFormat, rec[genericColDate])
	if err != nil {
		return Earning{}, fmt.Errorf("parsing date %q: %w", rec[genericColDate], err)
	}

	amount, err := decimal.NewFromString(rec[genericColAmount])
	if err != nil {
		return Earning{}, fmt.Errorf("parsing amount %q: %w", rec[genericColAmount], err)
	}

	return Earning{
		Date:     date,
		Platform: rec[genericColPlat],
		Amount:   amount,
		Notes:    rec[genericColNotes],
	}, nil
}
