package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/pcfiz73/fechamento/internal/model"
)

// ListAccounts returns all accounts ordered by ID.
func (s *SQLite) ListAccounts(ctx context.Context) ([]model.Account, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, nome, conta, saldo FROM bancos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		var saldo string
		if err := rows.Scan(&a.ID, &a.Name, &a.Number, &saldo); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		a.Balance, err = decimal.NewFromString(saldo)
		if err != nil {
			return nil, fmt.Errorf("parsing balance %q: %w", saldo, err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}

	slog.Debug("listed accounts", "count", len(accounts))
	return accounts, nil
}

// InsertAccount inserts an account and returns it with its assigned ID.
func (s *SQLite) InsertAccount(ctx context.Context, a model.Account) (model.Account, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO bancos (nome, conta, saldo) VALUES (?, ?, ?)`,
		a.Name, a.Number, a.Balance.StringFixed(2))
	if err != nil {
		return model.Account{}, fmt.Errorf("inserting account: %w", err)
	}

	a.ID, err = res.LastInsertId()
	if err != nil {
		return model.Account{}, fmt.Errorf("reading account id: %w", err)
	}
	return a, nil
}

// UpdateAccount applies a partial patch to one account.
func (s *SQLite) UpdateAccount(ctx context.Context, id int64, patch AccountPatch) error {
	var sets []string
	var args []any

	if patch.Name != nil {
		sets = append(sets, "nome = ?")
		args = append(args, *patch.Name)
	}
	if patch.Number != nil {
		sets = append(sets, "conta = ?")
		args = append(args, *patch.Number)
	}
	if patch.Balance != nil {
		sets = append(sets, "saldo = ?")
		args = append(args, patch.Balance.StringFixed(2))
	}

	return s.patchUpdate(ctx, "bancos", id, sets, args)
}

// DeleteAccount removes one account.
func (s *SQLite) DeleteAccount(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "bancos", id)
}
