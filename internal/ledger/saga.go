package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// saga sequences the independent store writes that make up one ledger
// operation. When a step fails, the undo functions of the steps that already
// ran are executed in reverse order. Steps whose effect the caller accepts
// leaving in place on partial failure register a nil undo.
type saga struct {
	op    string
	steps []sagaStep
}

type sagaStep struct {
	name string
	run  func(ctx context.Context) error
	undo func(ctx context.Context) error // nil = not compensated
}

func newSaga(op string) *saga {
	return &saga{op: op}
}

func (s *saga) step(name string, run, undo func(ctx context.Context) error) {
	s.steps = append(s.steps, sagaStep{name: name, run: run, undo: undo})
}

// run executes the steps in order. On failure it compensates and returns a
// *ConsistencyError carrying the step failure and any undo failure.
func (s *saga) run(ctx context.Context) error {
	for i, st := range s.steps {
		err := st.run(ctx)
		if err == nil {
			continue
		}

		compErr := s.compensate(ctx, s.steps[:i])
		slog.Error("ledger operation failed",
			"op", s.op,
			"step", st.name,
			"error", err,
			"compensated", compErr == nil)

		return &ConsistencyError{
			Op:              s.op,
			Step:            st.name,
			Err:             err,
			CompensationErr: compErr,
		}
	}
	return nil
}

// compensate undoes completed steps in reverse order. Every undo is
// attempted even when an earlier one fails; failures are joined.
func (s *saga) compensate(ctx context.Context, done []sagaStep) error {
	var errs []error
	for i := len(done) - 1; i >= 0; i-- {
		st := done[i]
		if st.undo == nil {
			continue
		}
		if err := st.undo(ctx); err != nil {
			errs = append(errs, fmt.Errorf("undoing %s: %w", st.name, err))
		}
	}
	return errors.Join(errs...)
}
