package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pcfiz73/fechamento/internal/model"
)

// ListGoals returns all savings goals ordered by deadline.
func (s *SQLite) ListGoals(ctx context.Context) ([]model.Goal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, titulo, meta_valor, valor_atual, data_limite FROM objetivos ORDER BY data_limite, id`)
	if err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}
	defer rows.Close()

	var goals []model.Goal
	for rows.Next() {
		var g model.Goal
		var target, current, deadline string
		if err := rows.Scan(&g.ID, &g.Title, &target, &current, &deadline); err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		g.Target, err = decimal.NewFromString(target)
		if err != nil {
			return nil, fmt.Errorf("parsing goal target %q: %w", target, err)
		}
		g.Current, err = decimal.NewFromString(current)
		if err != nil {
			return nil, fmt.Errorf("parsing goal progress %q: %w", current, err)
		}
		g.Deadline, err = time.Parse(dateFormat, deadline)
		if err != nil {
			return nil, fmt.Errorf("parsing goal deadline %q: %w", deadline, err)
		}

		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}
	return goals, nil
}

// InsertGoal inserts a goal and returns it with its assigned ID.
func (s *SQLite) InsertGoal(ctx context.Context, g model.Goal) (model.Goal, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO objetivos (titulo, meta_valor, valor_atual, data_limite) VALUES (?, ?, ?, ?)`,
		g.Title, g.Target.StringFixed(2), g.Current.StringFixed(2), g.Deadline.Format(dateFormat))
	if err != nil {
		return model.Goal{}, fmt.Errorf("inserting goal: %w", err)
	}

	g.ID, err = res.LastInsertId()
	if err != nil {
		return model.Goal{}, fmt.Errorf("reading goal id: %w", err)
	}
	return g, nil
}

// UpdateGoal applies a partial patch to one goal.
func (s *SQLite) UpdateGoal(ctx context.Context, id int64, patch GoalPatch) error {
	var sets []string
	var args []any

	if patch.Title != nil {
		sets = append(sets, "titulo = ?")
		args = append(args, *patch.Title)
	}
	if patch.Target != nil {
		sets = append(sets, "meta_valor = ?")
		args = append(args, patch.Target.StringFixed(2))
	}
	if patch.Current != nil {
		sets = append(sets, "valor_atual = ?")
		args = append(args, patch.Current.StringFixed(2))
	}
	if patch.Deadline != nil {
		sets = append(sets, "data_limite = ?")
		args = append(args, patch.Deadline.Format(dateFormat))
	}

	return s.patchUpdate(ctx, "objetivos", id, sets, args)
}

// DeleteGoal removes one goal.
func (s *SQLite) DeleteGoal(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "objetivos", id)
}
