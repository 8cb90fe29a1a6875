package store

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Income and expense rows share one shape; the collections differ only in
// name and sign convention, which the ledger service owns.

const entryColumns = "id, descricao, valor, categoria, data, observacoes, banco_id, parcelamento"

type entryRow struct {
	ID          int64
	Description string
	Amount      decimal.Decimal
	Category    string
	Date        time.Time
	Notes       string
	AccountID   int64
	Installment string
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(rs rowScanner) (entryRow, error) {
	var e entryRow
	var valor, data string
	if err := rs.Scan(&e.ID, &e.Description, &valor, &e.Category, &data, &e.Notes, &e.AccountID, &e.Installment); err != nil {
		return entryRow{}, fmt.Errorf("scanning entry: %w", err)
	}

	var err error
	e.Amount, err = decimal.NewFromString(valor)
	if err != nil {
		return entryRow{}, fmt.Errorf("parsing amount %q: %w", valor, err)
	}

	e.Date, err = time.Parse(dateFormat, data)
	if err != nil {
		return entryRow{}, fmt.Errorf("parsing date %q: %w", data, err)
	}

	return e, nil
}

func entryInsertArgs(e entryRow) []any {
	return []any{
		e.Description,
		e.Amount.StringFixed(2),
		e.Category,
		e.Date.Format(dateFormat),
		e.Notes,
		e.AccountID,
		e.Installment,
	}
}

func entryPatchSets(patch EntryPatch) (sets []string, args []any) {
	if patch.Description != nil {
		sets = append(sets, "descricao = ?")
		args = append(args, *patch.Description)
	}
	if patch.Amount != nil {
		sets = append(sets, "valor = ?")
		args = append(args, patch.Amount.StringFixed(2))
	}
	if patch.Category != nil {
		sets = append(sets, "categoria = ?")
		args = append(args, *patch.Category)
	}
	if patch.Date != nil {
		sets = append(sets, "data = ?")
		args = append(args, patch.Date.Format(dateFormat))
	}
	if patch.Notes != nil {
		sets = append(sets, "observacoes = ?")
		args = append(args, *patch.Notes)
	}
	if patch.AccountID != nil {
		sets = append(sets, "banco_id = ?")
		args = append(args, *patch.AccountID)
	}
	if patch.Installment != nil {
		sets = append(sets, "parcelamento = ?")
		args = append(args, *patch.Installment)
	}
	return sets, args
}
