// Package ledger keeps each account's cached balance consistent with the
// income and expense entries attributed to it. The invariant: balance equals
// the account's initial balance plus all income, minus all expenses, plus or
// minus transfers and manual adjustments. The store only offers independent
// single-record writes, so every multi-write operation here runs through a
// compensating saga and every successful mutation ends with a full reload —
// the store stays the single source of truth.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pcfiz73/fechamento/internal/auditlog"
	"github.com/pcfiz73/fechamento/internal/model"
	"github.com/pcfiz73/fechamento/internal/store"
)

// Service owns the balance-consistency operations and the reload cache.
type Service struct {
	store    store.Store
	auditDir string // empty disables the audit log
	snap     model.Snapshot
}

// NewService creates a ledger Service. Call Reload before the first
// mutation. auditDir, when non-empty, receives the mutation audit log.
func NewService(st store.Store, auditDir string) *Service {
	return &Service{store: st, auditDir: auditDir}
}

// Snapshot returns the state as of the last reload.
func (s *Service) Snapshot() model.Snapshot {
	return s.snap
}

// Reload re-fetches every collection from the store and replaces the cached
// snapshot wholesale. This is the sole mechanism by which post-mutation
// balances become visible, and the recovery path after any reported failure.
func (s *Service) Reload(ctx context.Context) error {
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("reloading accounts: %w", err)
	}
	incomes, err := s.store.ListIncomes(ctx)
	if err != nil {
		return fmt.Errorf("reloading incomes: %w", err)
	}
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return fmt.Errorf("reloading expenses: %w", err)
	}
	goals, err := s.store.ListGoals(ctx)
	if err != nil {
		return fmt.Errorf("reloading goals: %w", err)
	}

	targets, err := s.store.GetTargets(ctx)
	if errors.Is(err, store.ErrNotFound) {
		targets = model.DefaultTargets()
	} else if err != nil {
		return fmt.Errorf("reloading targets: %w", err)
	}

	s.snap = model.Snapshot{
		Accounts: accounts,
		Incomes:  incomes,
		Expenses: expenses,
		Goals:    goals,
		Targets:  targets,
	}

	slog.Debug("reloaded snapshot",
		"accounts", len(accounts),
		"incomes", len(incomes),
		"expenses", len(expenses),
		"goals", len(goals))
	return nil
}

// recordAudit appends one row to the mutation audit log. Audit failures are
// logged, never surfaced: the mutation itself already succeeded.
func (s *Service) recordAudit(action, details string, recordID int64) {
	if s.auditDir == "" {
		return
	}
	entry := auditlog.Entry{
		Timestamp: time.Now(),
		Action:    action,
		Details:   details,
		RecordID:  recordID,
	}
	if err := auditlog.Append(s.auditDir, []auditlog.Entry{entry}); err != nil {
		slog.Warn("audit log write failed", "action", action, "error", err)
	}
}
