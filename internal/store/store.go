// Package store persists the tracker's records in SQLite. It deliberately
// mirrors the hosted record store the application talks to in production:
// per collection there is select-all, insert-one, patch-one-by-id and
// delete-one-by-id, and nothing else. In particular no multi-record
// transaction is exposed; every call is a single independent write, and
// cross-record consistency is the ledger service's problem.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pcfiz73/fechamento/internal/model"
)

// ErrNotFound is returned when a patch or delete targets an ID that does
// not exist in the collection.
var ErrNotFound = errors.New("record not found")

// Store is the record-store boundary used by the ledger service.
type Store interface {
	ListAccounts(ctx context.Context) ([]model.Account, error)
	InsertAccount(ctx context.Context, a model.Account) (model.Account, error)
	UpdateAccount(ctx context.Context, id int64, patch AccountPatch) error
	DeleteAccount(ctx context.Context, id int64) error

	ListIncomes(ctx context.Context) ([]model.Income, error)
	InsertIncome(ctx context.Context, r model.Income) (model.Income, error)
	UpdateIncome(ctx context.Context, id int64, patch EntryPatch) error
	DeleteIncome(ctx context.Context, id int64) error

	ListExpenses(ctx context.Context) ([]model.Expense, error)
	InsertExpense(ctx context.Context, d model.Expense) (model.Expense, error)
	UpdateExpense(ctx context.Context, id int64, patch EntryPatch) error
	DeleteExpense(ctx context.Context, id int64) error

	ListGoals(ctx context.Context) ([]model.Goal, error)
	InsertGoal(ctx context.Context, g model.Goal) (model.Goal, error)
	UpdateGoal(ctx context.Context, id int64, patch GoalPatch) error
	DeleteGoal(ctx context.Context, id int64) error

	GetTargets(ctx context.Context) (model.Targets, error)
	SaveTargets(ctx context.Context, t model.Targets) error

	Close() error
}

// AccountPatch is a partial update of an account record. Nil fields are
// left untouched.
type AccountPatch struct {
	Name    *string
	Number  *string
	Balance *decimal.Decimal
}

// EntryPatch is a partial update of an income or expense record.
type EntryPatch struct {
	Description *string
	Amount      *decimal.Decimal
	Category    *string
	Date        *time.Time
	Notes       *string
	AccountID   *int64
	Installment *string
}

// GoalPatch is a partial update of a goal record.
type GoalPatch struct {
	Title    *string
	Target   *decimal.Decimal
	Current  *decimal.Decimal
	Deadline *time.Time
}
