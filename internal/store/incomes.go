package store

import (
	"context"
	"fmt"

	"github.com/pcfiz73/fechamento/internal/model"
)

// ListIncomes returns all income entries ordered by date then ID.
func (s *SQLite) ListIncomes(ctx context.Context) ([]model.Income, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM receitas ORDER BY data, id", entryColumns))
	if err != nil {
		return nil, fmt.Errorf("querying incomes: %w", err)
	}
	defer rows.Close()

	var incomes []model.Income
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		incomes = append(incomes, model.Income(e))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating incomes: %w", err)
	}
	return incomes, nil
}

// InsertIncome inserts an income entry and returns it with its assigned ID.
func (s *SQLite) InsertIncome(ctx context.Context, r model.Income) (model.Income, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO receitas (descricao, valor, categoria, data, observacoes, banco_id, parcelamento)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entryInsertArgs(entryRow(r))...)
	if err != nil {
		return model.Income{}, fmt.Errorf("inserting income: %w", err)
	}

	r.ID, err = res.LastInsertId()
	if err != nil {
		return model.Income{}, fmt.Errorf("reading income id: %w", err)
	}
	return r, nil
}

// UpdateIncome applies a partial patch to one income entry.
func (s *SQLite) UpdateIncome(ctx context.Context, id int64, patch EntryPatch) error {
	sets, args := entryPatchSets(patch)
	return s.patchUpdate(ctx, "receitas", id, sets, args)
}

// DeleteIncome removes one income entry.
func (s *SQLite) DeleteIncome(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "receitas", id)
}
