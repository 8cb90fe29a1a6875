package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pcfiz73/fechamento/internal/model"
	"github.com/pcfiz73/fechamento/internal/store"
)

// Goals and income targets sit outside the balance invariant: they are
// plain records mutated directly, with the same reload-after-write pattern.

// GoalParams holds the fields for creating or replacing a savings goal.
type GoalParams struct {
	Title    string
	Target   decimal.Decimal
	Current  decimal.Decimal
	Deadline time.Time
}

func validateGoal(p GoalParams) error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("goal title cannot be empty")
	}
	if !p.Target.IsPositive() {
		return fmt.Errorf("goal target: %w", ErrInvalidAmount)
	}
	if p.Current.IsNegative() {
		return fmt.Errorf("goal progress: %w", ErrInvalidAmount)
	}
	if p.Current.GreaterThan(p.Target) {
		return fmt.Errorf("progress %s > target %s: %w",
			p.Current.StringFixed(2), p.Target.StringFixed(2), ErrGoalOverTarget)
	}
	return nil
}

// AddGoal creates a savings goal.
func (s *Service) AddGoal(ctx context.Context, p GoalParams) (model.Goal, error) {
	if err := validateGoal(p); err != nil {
		return model.Goal{}, err
	}

	created, err := s.store.InsertGoal(ctx, model.Goal{
		Title:    p.Title,
		Target:   p.Target,
		Current:  p.Current,
		Deadline: p.Deadline,
	})
	if err != nil {
		return model.Goal{}, fmt.Errorf("creating goal: %w", err)
	}

	s.recordAudit("goal.add", created.Title, created.ID)
	if err := s.Reload(ctx); err != nil {
		return model.Goal{}, err
	}
	return created, nil
}

// UpdateGoal replaces a goal's fields.
func (s *Service) UpdateGoal(ctx context.Context, id int64, p GoalParams) error {
	if err := validateGoal(p); err != nil {
		return err
	}
	if _, ok := s.snap.Goal(id); !ok {
		return fmt.Errorf("goal %d: %w", id, ErrGoalNotFound)
	}

	patch := store.GoalPatch{
		Title:    &p.Title,
		Target:   &p.Target,
		Current:  &p.Current,
		Deadline: &p.Deadline,
	}
	if err := s.store.UpdateGoal(ctx, id, patch); err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}

	s.recordAudit("goal.update", p.Title, id)
	return s.Reload(ctx)
}

// DeleteGoal removes a goal.
func (s *Service) DeleteGoal(ctx context.Context, id int64) error {
	goal, ok := s.snap.Goal(id)
	if !ok {
		return fmt.Errorf("goal %d: %w", id, ErrGoalNotFound)
	}

	if err := s.store.DeleteGoal(ctx, id); err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	s.recordAudit("goal.delete", goal.Title, id)
	return s.Reload(ctx)
}

// SaveTargets writes the daily/weekly/monthly income targets.
func (s *Service) SaveTargets(ctx context.Context, t model.Targets) error {
	if t.Daily.IsNegative() || t.Weekly.IsNegative() || t.Monthly.IsNegative() {
		return fmt.Errorf("targets: %w", ErrInvalidAmount)
	}

	if err := s.store.SaveTargets(ctx, t); err != nil {
		return fmt.Errorf("saving targets: %w", err)
	}

	s.recordAudit("targets.set",
		fmt.Sprintf("%s/%s/%s", t.Daily.StringFixed(2), t.Weekly.StringFixed(2), t.Monthly.StringFixed(2)), t.ID)
	return s.Reload(ctx)
}
