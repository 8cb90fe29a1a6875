package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pcfiz73/fechamento/internal/model"
	"github.com/pcfiz73/fechamento/internal/store"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// newTestService returns a ledger Service over a fresh SQLite store, with
// the audit log disabled.
func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "fechamento.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc := NewService(st, "")
	require.NoError(t, svc.Reload(context.Background()))
	return svc
}

// seedAccount creates an account through the service and returns it.
func seedAccount(t *testing.T, svc *Service, name, balance string) model.Account {
	t.Helper()
	a, err := svc.AddAccount(context.Background(), AddAccountParams{Name: name, Balance: dec(balance)})
	require.NoError(t, err)
	return a
}

// balance re-reads an account's balance from the current snapshot.
func balance(t *testing.T, svc *Service, id int64) decimal.Decimal {
	t.Helper()
	a, ok := svc.Snapshot().Account(id)
	require.True(t, ok, "account %d missing from snapshot", id)
	return a.Balance
}

var errStoreDown = errors.New("store unavailable")

// failingStore wraps a real store and fails selected calls, for exercising
// the compensation paths.
type failingStore struct {
	store.Store

	failInsertIncome    bool
	failInsertExpense   bool
	failDeleteIncome    bool
	updateAccountCalls  int
	failUpdateAccountOn int // 1-based call number to fail, 0 = never
}

func (f *failingStore) InsertIncome(ctx context.Context, r model.Income) (model.Income, error) {
	if f.failInsertIncome {
		return model.Income{}, errStoreDown
	}
	return f.Store.InsertIncome(ctx, r)
}

func (f *failingStore) InsertExpense(ctx context.Context, d model.Expense) (model.Expense, error) {
	if f.failInsertExpense {
		return model.Expense{}, errStoreDown
	}
	return f.Store.InsertExpense(ctx, d)
}

func (f *failingStore) DeleteIncome(ctx context.Context, id int64) error {
	if f.failDeleteIncome {
		return errStoreDown
	}
	return f.Store.DeleteIncome(ctx, id)
}

func (f *failingStore) UpdateAccount(ctx context.Context, id int64, patch store.AccountPatch) error {
	f.updateAccountCalls++
	if f.failUpdateAccountOn != 0 && f.updateAccountCalls == f.failUpdateAccountOn {
		return errStoreDown
	}
	return f.Store.UpdateAccount(ctx, id, patch)
}

// newFailingService builds a Service over a failingStore seeded with the
// given accounts. The failure flags are configured after seeding so setup
// writes always succeed.
func newFailingService(t *testing.T, accounts map[string]string) (*Service, *failingStore, map[string]int64) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "fechamento.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	fs := &failingStore{Store: st}
	svc := NewService(fs, "")
	require.NoError(t, svc.Reload(context.Background()))

	ids := make(map[string]int64, len(accounts))
	for name, bal := range accounts {
		a, err := svc.AddAccount(context.Background(), AddAccountParams{Name: name, Balance: dec(bal)})
		require.NoError(t, err)
		ids[name] = a.ID
	}
	fs.updateAccountCalls = 0
	return svc, fs, ids
}
