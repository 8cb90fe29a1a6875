package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pcfiz73/fechamento/internal/model"
)

// GetTargets returns the single income-targets record. Returns ErrNotFound
// when the row has never been written.
func (s *SQLite) GetTargets(ctx context.Context) (model.Targets, error) {
	var t model.Targets
	var daily, weekly, monthly string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, diaria, semanal, mensal FROM metas LIMIT 1`).
		Scan(&t.ID, &daily, &weekly, &monthly)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Targets{}, fmt.Errorf("targets: %w", ErrNotFound)
	}
	if err != nil {
		return model.Targets{}, fmt.Errorf("querying targets: %w", err)
	}

	t.Daily, err = decimal.NewFromString(daily)
	if err != nil {
		return model.Targets{}, fmt.Errorf("parsing daily target %q: %w", daily, err)
	}
	t.Weekly, err = decimal.NewFromString(weekly)
	if err != nil {
		return model.Targets{}, fmt.Errorf("parsing weekly target %q: %w", weekly, err)
	}
	t.Monthly, err = decimal.NewFromString(monthly)
	if err != nil {
		return model.Targets{}, fmt.Errorf("parsing monthly target %q: %w", monthly, err)
	}

	return t, nil
}

// SaveTargets writes the income-targets record, creating it if needed.
func (s *SQLite) SaveTargets(ctx context.Context, t model.Targets) error {
	if t.ID == 0 {
		t.ID = 1
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO metas (id, diaria, semanal, mensal) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET diaria = excluded.diaria, semanal = excluded.semanal, mensal = excluded.mensal`,
		t.ID, t.Daily.StringFixed(2), t.Weekly.StringFixed(2), t.Monthly.StringFixed(2))
	if err != nil {
		return fmt.Errorf("saving targets: %w", err)
	}
	return nil
}
