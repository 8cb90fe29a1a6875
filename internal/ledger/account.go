package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pcfiz73/fechamento/internal/model"
	"github.com/pcfiz73/fechamento/internal/store"
)

// AddAccountParams holds the fields for creating a bank account.
type AddAccountParams struct {
	Name    string
	Number  string
	Balance decimal.Decimal // initial balance
}

// AddAccount creates an account with its initial balance.
func (s *Service) AddAccount(ctx context.Context, p AddAccountParams) (model.Account, error) {
	if strings.TrimSpace(p.Name) == "" {
		return model.Account{}, fmt.Errorf("account name cannot be empty")
	}
	if p.Balance.IsNegative() {
		return model.Account{}, fmt.Errorf("initial balance cannot be negative: %w", ErrInvalidAmount)
	}

	created, err := s.store.InsertAccount(ctx, model.Account{
		Name:    p.Name,
		Number:  p.Number,
		Balance: p.Balance,
	})
	if err != nil {
		return model.Account{}, fmt.Errorf("creating account: %w", err)
	}

	s.recordAudit("account.add", created.Name, created.ID)
	if err := s.Reload(ctx); err != nil {
		return model.Account{}, err
	}
	return created, nil
}

// UpdateAccountParams renames an account. The balance is never set directly:
// it only moves through entries, transfers and deposits.
type UpdateAccountParams struct {
	ID     int64
	Name   string
	Number string
}

// UpdateAccount updates an account's name and number.
func (s *Service) UpdateAccount(ctx context.Context, p UpdateAccountParams) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("account name cannot be empty")
	}
	if _, ok := s.snap.Account(p.ID); !ok {
		return fmt.Errorf("account %d: %w", p.ID, ErrAccountNotFound)
	}

	err := s.store.UpdateAccount(ctx, p.ID, store.AccountPatch{Name: &p.Name, Number: &p.Number})
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}

	s.recordAudit("account.update", p.Name, p.ID)
	return s.Reload(ctx)
}

// DeleteAccount removes an account. Rejected while any entry still
// references it.
func (s *Service) DeleteAccount(ctx context.Context, id int64) error {
	acct, ok := s.snap.Account(id)
	if !ok {
		return fmt.Errorf("account %d: %w", id, ErrAccountNotFound)
	}
	if s.snap.AccountInUse(id) {
		return fmt.Errorf("account %s: %w", acct.Name, ErrAccountInUse)
	}

	if err := s.store.DeleteAccount(ctx, id); err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	s.recordAudit("account.delete", acct.Name, id)
	return s.Reload(ctx)
}

// Transfer moves amount from one account to another: debit the source, then
// credit the destination, as two independent writes. If the credit fails the
// debit is written back before the error surfaces.
func (s *Service) Transfer(ctx context.Context, fromID, toID int64, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if fromID == toID {
		return ErrSameAccount
	}

	from, ok := s.snap.Account(fromID)
	if !ok {
		return fmt.Errorf("account %d: %w", fromID, ErrAccountNotFound)
	}
	to, ok := s.snap.Account(toID)
	if !ok {
		return fmt.Errorf("account %d: %w", toID, ErrAccountNotFound)
	}
	if from.Balance.LessThan(amount) {
		return fmt.Errorf("account %s has %s, transfer needs %s: %w",
			from.Name, from.Balance.StringFixed(2), amount.StringFixed(2), ErrInsufficientFunds)
	}

	debited := from.Balance.Sub(amount)
	priorFrom := from.Balance
	credited := to.Balance.Add(amount)

	sg := newSaga("transfer")
	sg.step("debit source",
		func(ctx context.Context) error {
			return s.store.UpdateAccount(ctx, from.ID, store.AccountPatch{Balance: &debited})
		},
		func(ctx context.Context) error {
			return s.store.UpdateAccount(ctx, from.ID, store.AccountPatch{Balance: &priorFrom})
		})
	sg.step("credit destination",
		func(ctx context.Context) error {
			return s.store.UpdateAccount(ctx, to.ID, store.AccountPatch{Balance: &credited})
		}, nil)

	if err := sg.run(ctx); err != nil {
		return err
	}

	s.recordAudit("account.transfer",
		fmt.Sprintf("%s -> %s %s", from.Name, to.Name, amount.StringFixed(2)), fromID)
	return s.Reload(ctx)
}

// Deposit is the manual top-up: it unconditionally credits the account.
func (s *Service) Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	acct, ok := s.snap.Account(accountID)
	if !ok {
		return fmt.Errorf("account %d: %w", accountID, ErrAccountNotFound)
	}

	credited := acct.Balance.Add(amount)
	if err := s.store.UpdateAccount(ctx, acct.ID, store.AccountPatch{Balance: &credited}); err != nil {
		return fmt.Errorf("crediting account: %w", err)
	}

	s.recordAudit("account.deposit", fmt.Sprintf("%s +%s", acct.Name, amount.StringFixed(2)), accountID)
	return s.Reload(ctx)
}
