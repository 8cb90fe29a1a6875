package store

import (
	"context"
	"fmt"

	"github.com/pcfiz73/fechamento/internal/model"
)

// ListExpenses returns all expense entries ordered by date then ID.
func (s *SQLite) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM despesas ORDER BY data, id", entryColumns))
	if err != nil {
		return nil, fmt.Errorf("querying expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, model.Expense(e))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}
	return expenses, nil
}

// InsertExpense inserts an expense entry and returns it with its assigned ID.
func (s *SQLite) InsertExpense(ctx context.Context, d model.Expense) (model.Expense, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO despesas (descricao, valor, categoria, data, observacoes, banco_id, parcelamento)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entryInsertArgs(entryRow(d))...)
	if err != nil {
		return model.Expense{}, fmt.Errorf("inserting expense: %w", err)
	}

	d.ID, err = res.LastInsertId()
	if err != nil {
		return model.Expense{}, fmt.Errorf("reading expense id: %w", err)
	}
	return d, nil
}

// UpdateExpense applies a partial patch to one expense entry.
func (s *SQLite) UpdateExpense(ctx context.Context, id int64, patch EntryPatch) error {
	sets, args := entryPatchSets(patch)
	return s.patchUpdate(ctx, "despesas", id, sets, args)
}

// DeleteExpense removes one expense entry.
func (s *SQLite) DeleteExpense(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "despesas", id)
}
