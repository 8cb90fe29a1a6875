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

// AddIncomeParams holds the fields for recording an income entry. Amount is
// the per-installment share when Installment is set; dividing a total into
// shares is the caller's concern.
type AddIncomeParams struct {
	Platform    string
	Amount      decimal.Decimal
	Date        time.Time
	Notes       string
	AccountID   int64
	Installment string
}

// AddIncome credits the owning account and then persists the entry. If the
// insert fails after the credit succeeded, the balance is written back to
// its prior value before the error is surfaced.
func (s *Service) AddIncome(ctx context.Context, p AddIncomeParams) (model.Income, error) {
	if !p.Amount.IsPositive() {
		return model.Income{}, ErrInvalidAmount
	}
	if p.Installment != "" {
		if _, err := installment.Parse(p.Installment); err != nil {
			return model.Income{}, err
		}
	}

	acct, ok := s.snap.Account(p.AccountID)
	if !ok {
		return model.Income{}, fmt.Errorf("account %d: %w", p.AccountID, ErrAccountNotFound)
	}

	entry := model.Income{
		Description: p.Platform,
		Amount:      p.Amount,
		Category:    model.IncomeCategory,
		Date:        p.Date,
		Notes:       p.Notes,
		AccountID:   p.AccountID,
		Installment: p.Installment,
	}

	credited := acct.Balance.Add(p.Amount)
	prior := acct.Balance
	var created model.Income

	sg := newSaga("add income")
	sg.step("credit account",
		func(ctx context.Context) error {
			return s.store.UpdateAccount(ctx, acct.ID, store.AccountPatch{Balance: &credited})
		},
		func(ctx context.Context) error {
			return s.store.UpdateAccount(ctx, acct.ID, store.AccountPatch{Balance: &prior})
		})
	sg.step("insert entry",
		func(ctx context.Context) error {
			var err error
			created, err = s.store.InsertIncome(ctx, entry)
			return err
		}, nil)

	if err := sg.run(ctx); err != nil {
		return model.Income{}, err
	}

	s.recordAudit("income.add", fmt.Sprintf("%s %s", entry.Description, entry.Amount.StringFixed(2)), created.ID)
	if err := s.Reload(ctx); err != nil {
		return model.Income{}, err
	}
	return created, nil
}

// UpdateIncomeParams holds the replacement fields for an existing entry.
type UpdateIncomeParams struct {
	ID          int64
	Platform    string
	Amount      decimal.Decimal
	Date        time.Time
	Notes       string
	AccountID   int64
	Installment string
}

// UpdateIncome re-attributes the entry's effect on account balances and then
// patches the entry. When the owning account changes, the old account is
// debited by the old amount and the new account credited by the new amount
// as independent writes. No compensation is attempted on partial failure:
// the returned ConsistencyError tells the caller to reload.
func (s *Service) UpdateIncome(ctx context.Context, p UpdateIncomeParams) error {
	if !p.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if p.Installment != "" {
		if _, err := installment.Parse(p.Installment); err != nil {
			return err
		}
	}

	old, ok := s.snap.Income(p.ID)
	if !ok {
		return fmt.Errorf("income %d: %w", p.ID, ErrIncomeNotFound)
	}

	sg := newSaga("update income")

	if old.AccountID == p.AccountID {
		// Same account: a single signed delta.
		if acct, ok := s.snap.Account(old.AccountID); ok {
			delta := p.Amount.Sub(old.Amount)
			if !delta.IsZero() {
				adjusted := acct.Balance.Add(delta)
				sg.step("adjust account", func(ctx context.Context) error {
					return s.store.UpdateAccount(ctx, acct.ID, store.AccountPatch{Balance: &adjusted})
				}, nil)
			}
		}
	} else {
		// Reverse the old effect, apply the new one. A missing account on
		// either side is skipped rather than treated as a hard failure.
		if oldAcct, ok := s.snap.Account(old.AccountID); ok {
			reversed := oldAcct.Balance.Sub(old.Amount)
			sg.step("reverse old account", func(ctx context.Context) error {
				return s.store.UpdateAccount(ctx, oldAcct.ID, store.AccountPatch{Balance: &reversed})
			}, nil)
		}
		if newAcct, ok := s.snap.Account(p.AccountID); ok {
			applied := newAcct.Balance.Add(p.Amount)
			sg.step("apply new account", func(ctx context.Context) error {
				return s.store.UpdateAccount(ctx, newAcct.ID, store.AccountPatch{Balance: &applied})
			}, nil)
		}
	}

	patch := store.EntryPatch{
		Description: &p.Platform,
		Amount:      &p.Amount,
		Date:        &p.Date,
		Notes:       &p.Notes,
		AccountID:   &p.AccountID,
		Installment: &p.Installment,
	}
	sg.step("patch entry", func(ctx context.Context) error {
		return s.store.UpdateIncome(ctx, p.ID, patch)
	}, nil)

	if err := sg.run(ctx); err != nil {
		return err
	}

	s.recordAudit("income.update", fmt.Sprintf("%s %s", p.Platform, p.Amount.StringFixed(2)), p.ID)
	return s.Reload(ctx)
}

// DeleteIncome reverses the entry's effect on its owning account and then
// removes the entry. A missing account skips the balance adjustment; the
// deletion still proceeds.
func (s *Service) DeleteIncome(ctx context.Context, id int64) error {
	old, ok := s.snap.Income(id)
	if !ok {
		return fmt.Errorf("income %d: %w", id, ErrIncomeNotFound)
	}

	sg := newSaga("delete income")

	if acct, ok := s.snap.Account(old.AccountID); ok {
		reversed := acct.Balance.Sub(old.Amount)
		prior := acct.Balance
		sg.step("reverse account",
			func(ctx context.Context) error {
				return s.store.UpdateAccount(ctx, acct.ID, store.AccountPatch{Balance: &reversed})
			},
			func(ctx context.Context) error {
				return s.store.UpdateAccount(ctx, acct.ID, store.AccountPatch{Balance: &prior})
			})
	}
	sg.step("delete entry", func(ctx context.Context) error {
		return s.store.DeleteIncome(ctx, id)
	}, nil)

	if err := sg.run(ctx); err != nil {
		return err
	}

	s.recordAudit("income.delete", fmt.Sprintf("%s %s", old.Description, old.Amount.StringFixed(2)), id)
	return s.Reload(ctx)
}
