package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pcfiz73/fechamento/internal/installment"
	"github.com/pcfiz73/fechamento/internal/model"
	"github.com/pcfiz73/fechamento/internal/store"
)

// AddExpenseParams holds the fields for recording an expense entry. The
// display description is derived from the category label, not supplied.
type AddExpenseParams struct {
	Category    string
	Amount      decimal.Decimal
	Date        time.Time
	Notes       string
	AccountID   int64
	Installment string
}

// AddExpense debits the owning account and then persists the entry. An
// amount above the account's balance is rejected before any write; equality
// is allowed and may zero the account out. If the insert fails after the
// debit succeeded, the balance is written back before the error surfaces.
func (s *Service) AddExpense(ctx context.Context, p AddExpenseParams) (model.Expense, error) {
	if !p.Amount.IsPositive() {
		return model.Expense{}, ErrInvalidAmount
	}
	if p.Installment != "" {
		if _, err := installment.Parse(p.Installment); err != nil {
			return model.Expense{}, err
		}
	}

	label, ok := model.ExpenseCategoryLabel(p.Category)
	if !ok {
		return model.Expense{}, fmt.Errorf("category %q: %w", p.Category, ErrUnknownCategory)
	}

	acct, ok := s.snap.Account(p.AccountID)
	if !ok {
		return model.Expense{}, fmt.Errorf("account %d: %w", p.AccountID, ErrAccountNotFound)
	}
	if acct.Balance.LessThan(p.Amount) {
		return model.Expense{}, fmt.Errorf("account %s has %s, expense needs %s: %w",
			acct.Name, acct.Balance.StringFixed(2), p.Amount.StringFixed(2), ErrInsufficientFunds)
	}

	entry := model.Expense{
		Description: label,
		Amount:      p.Amount,
		Category:    p.Category,
		Date:        p.Date,
		Notes:       p.Notes,
		AccountID:   p.AccountID,
		Installment: p.Installment,
	}

	debited := acct.Balance.Sub(p.Amount)
	prior := acct.Balance
	var created model.Expense

	sg := newSaga("add expense")
	sg.step("debit account",
		func(ctx context.Context) error {
			return s.store.UpdateAccount(ctx, acct.ID, store.AccountPatch{Balance: &debited})
		},
		func(ctx context.Context) error {
			return s.store.UpdateAccount(ctx, acct.ID, store.AccountPatch{Balance: &prior})
		})
	sg.step("insert entry",
		func(ctx context.Context) error {
			var err error
			created, err = s.store.InsertExpense(ctx, entry)
			return err
		}, nil)

	if err := sg.run(ctx); err != nil {
		return model.Expense{}, err
	}

	s.recordAudit("expense.add", fmt.Sprintf("%s %s", entry.Category, entry.Amount.StringFixed(2)), created.ID)
	if err := s.Reload(ctx); err != nil {
		return model.Expense{}, err
	}
	return created, nil
}

// UpdateExpenseParams holds the replacement fields for an existing entry.
type UpdateExpenseParams struct {
	ID          int64
	Category    string
	Amount      decimal.Decimal
	Date        time.Time
	Notes       string
	AccountID   int64
	Installment string
}

// UpdateExpense mirrors UpdateIncome with the signs inverted: the old
// amount is returned to the old account and the new amount taken from the
// new account. Partial failure leaves a transitional state for reload; no
// compensation is attempted.
func (s *Service) UpdateExpense(ctx context.Context, p UpdateExpenseParams) error {
	if !p.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if p.Installment != "" {
		if _, err := installment.Parse(p.Installment); err != nil {
			return err
		}
	}

	label, ok := model.ExpenseCategoryLabel(p.Category)
	if !ok {
		return fmt.Errorf("category %q: %w", p.Category, ErrUnknownCategory)
	}

	old, ok := s.snap.Expense(p.ID)
	if !ok {
		return fmt.Errorf("expense %d: %w", p.ID, ErrExpenseNotFound)
	}

	sg := newSaga("update expense")

	if old.AccountID == p.AccountID {
		if acct, ok := s.snap.Account(old.AccountID); ok {
			delta := old.Amount.Sub(p.Amount) // inverse of the income delta
			if !delta.IsZero() {
				adjusted := acct.Balance.Add(delta)
				sg.step("adjust account", func(ctx context.Context) error {
					return s.store.UpdateAccount(ctx, acct.ID, store.AccountPatch{Balance: &adjusted})
				}, nil)
			}
		}
	} else {
		if oldAcct, ok := s.snap.Account(old.AccountID); ok {
			returned := oldAcct.Balance.Add(old.Amount)
			sg.step("reverse old account", func(ctx context.Context) error {
				return s.store.UpdateAccount(ctx, oldAcct.ID, store.AccountPatch{Balance: &returned})
			}, nil)
		}
		if newAcct, ok := s.snap.Account(p.AccountID); ok {
			taken := newAcct.Balance.Sub(p.Amount)
			sg.step("apply new account", func(ctx context.Context) error {
				return s.store.UpdateAccount(ctx, newAcct.ID, store.AccountPatch{Balance: &taken})
			}, nil)
		}
	}

	patch := store.EntryPatch{
		Description: &label,
		Amount:      &p.Amount,
		Category:    &p.Category,
		Date:        &p.Date,
		Notes:       &p.Notes,
		AccountID:   &p.AccountID,
		Installment: &p.Installment,
	}
	sg.step("patch entry", func(ctx context.Context) error {
		return s.store.UpdateExpense(ctx, p.ID, patch)
	}, nil)

	if err := sg.run(ctx); err != nil {
		return err
	}

	s.recordAudit("expense.update", fmt.Sprintf("%s %s", p.Category, p.Amount.StringFixed(2)), p.ID)
	return s.Reload(ctx)
}

// DeleteExpense returns the entry's amount to its owning account and then
// removes the entry. A missing account skips the balance adjustment.
func (s *Service) DeleteExpense(ctx context.Context, id int64) error {
	old, ok := s.snap.Expense(id)
	if !ok {
		return fmt.Errorf("expense %d: %w", id, ErrExpenseNotFound)
	}

	sg := newSaga("delete expense")

	if acct, ok := s.snap.Account(old.AccountID); ok {
		returned := acct.Balance.Add(old.Amount)
		prior := acct.Balance
		sg.step("reverse account",
			func(ctx context.Context) error {
				return s.store.UpdateAccount(ctx, acct.ID, store.AccountPatch{Balance: &returned})
			},
			func(ctx context.Context) error {
				return s.store.UpdateAccount(ctx, acct.ID, store.AccountPatch{Balance: &prior})
			})
	}
	sg.step("delete entry", func(ctx context.Context) error {
		return s.store.DeleteExpense(ctx, id)
	}, nil)

	if err := sg.run(ctx); err != nil {
		return err
	}

	s.recordAudit("expense.delete", fmt.Sprintf("%s %s", old.Category, old.Amount.StringFixed(2)), id)
	return s.Reload(ctx)
}
