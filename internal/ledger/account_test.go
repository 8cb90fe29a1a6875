package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAccount(t *testing.T) {
	svc := newTestService(t)

	a, err := svc.AddAccount(context.Background(), AddAccountParams{
		Name: "Nubank", Number: "1234-5", Balance: dec("250.00"),
	})
	require.NoError(t, err)
	assert.NotZero(t, a.ID)
	assert.True(t, balance(t, svc, a.ID).Equal(dec("250.00")))
}

func TestAddAccount_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddAccount(ctx, AddAccountParams{Name: "  ", Balance: dec("10.00")})
	require.Error(t, err)

	_, err = svc.AddAccount(ctx, AddAccountParams{Name: "Caixa", Balance: dec("-1.00")})
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestUpdateAccount_RenameOnly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	a := seedAccount(t, svc, "Nubank", "100.00")

	require.NoError(t, svc.UpdateAccount(ctx, UpdateAccountParams{ID: a.ID, Name: "Nubank PJ", Number: "999-0"}))

	got, ok := svc.Snapshot().Account(a.ID)
	require.True(t, ok)
	assert.Equal(t, "Nubank PJ", got.Name)
	assert.Equal(t, "999-0", got.Number)
	assert.True(t, got.Balance.Equal(dec("100.00")), "rename never touches the balance")
}

func TestDeleteAccount_Empty(t *testing.T) {
	svc := newTestService(t)
	a := seedAccount(t, svc, "Nubank", "100.00")

	require.NoError(t, svc.DeleteAccount(context.Background(), a.ID))
	assert.Empty(t, svc.Snapshot().Accounts)
}

func TestDeleteAccount_WithEntriesRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	a := seedAccount(t, svc, "Nubank", "100.00")

	created, err := svc.AddIncome(ctx, AddIncomeParams{
		Platform: "iFood", Amount: dec("10.00"), Date: date(2025, 6, 18), AccountID: a.ID,
	})
	require.NoError(t, err)

	err = svc.DeleteAccount(ctx, a.ID)
	require.ErrorIs(t, err, ErrAccountInUse)

	// Nothing changed.
	assert.Len(t, svc.Snapshot().Accounts, 1)
	assert.Len(t, svc.Snapshot().Incomes, 1)
	assert.True(t, balance(t, svc, a.ID).Equal(dec("110.00")))

	// Once the entry is gone the account can be removed.
	require.NoError(t, svc.DeleteIncome(ctx, created.ID))
	require.NoError(t, svc.DeleteAccount(ctx, a.ID))
}

func TestDeleteAccount_NotFound(t *testing.T) {
	svc := newTestService(t)
	require.ErrorIs(t, svc.DeleteAccount(context.Background(), 7), ErrAccountNotFound)
}

func TestTransfer(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	a := seedAccount(t, svc, "Nubank", "100.00")
	b := seedAccount(t, svc, "Caixa", "50.00")

	require.NoError(t, svc.Transfer(ctx, a.ID, b.ID, dec("40.00")))

	assert.True(t, balance(t, svc, a.ID).Equal(dec("60.00")))
	assert.True(t, balance(t, svc, b.ID).Equal(dec("90.00")))

	total := balance(t, svc, a.ID).Add(balance(t, svc, b.ID))
	assert.True(t, total.Equal(dec("150.00")), "transfer preserves the combined balance")
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	a := seedAccount(t, svc, "Nubank", "100.00")
	b := seedAccount(t, svc, "Caixa", "50.00")

	err := svc.Transfer(ctx, a.ID, b.ID, dec("1000.00"))
	require.ErrorIs(t, err, ErrInsufficientFunds)

	assert.True(t, balance(t, svc, a.ID).Equal(dec("100.00")))
	assert.True(t, balance(t, svc, b.ID).Equal(dec("50.00")))
}

func TestTransfer_ExactBalance(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	a := seedAccount(t, svc, "Nubank", "75.00")
	b := seedAccount(t, svc, "Caixa", "0.00")

	require.NoError(t, svc.Transfer(ctx, a.ID, b.ID, dec("75.00")))
	assert.True(t, balance(t, svc, a.ID).IsZero())
	assert.True(t, balance(t, svc, b.ID).Equal(dec("75.00")))
}

func TestTransfer_SameAccount(t *testing.T) {
	svc := newTestService(t)
	a := seedAccount(t, svc, "Nubank", "100.00")

	err := svc.Transfer(context.Background(), a.ID, a.ID, dec("10.00"))
	require.ErrorIs(t, err, ErrSameAccount)
}

func TestTransfer_InvalidAmount(t *testing.T) {
	svc := newTestService(t)
	a := seedAccount(t, svc, "Nubank", "100.00")
	b := seedAccount(t, svc, "Caixa", "50.00")

	require.ErrorIs(t, svc.Transfer(context.Background(), a.ID, b.ID, dec("0.00")), ErrInvalidAmount)
	require.ErrorIs(t, svc.Transfer(context.Background(), a.ID, b.ID, dec("-5.00")), ErrInvalidAmount)
}

func TestTransfer_CreditFails_RestoresSource(t *testing.T) {
	svc, fs, ids := newFailingService(t, map[string]string{"Nubank": "100.00", "Caixa": "50.00"})
	// Call 1 debits the source, call 2 credits the destination, call 3 is
	// the compensating restore of the source.
	fs.failUpdateAccountOn = 2

	err := svc.Transfer(context.Background(), ids["Nubank"], ids["Caixa"], dec("40.00"))
	require.Error(t, err)

	var cerr *ConsistencyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "credit destination", cerr.Step)
	assert.True(t, cerr.Compensated())

	require.NoError(t, svc.Reload(context.Background()))
	assert.True(t, balance(t, svc, ids["Nubank"]).Equal(dec("100.00")), "debit was written back")
	assert.True(t, balance(t, svc, ids["Caixa"]).Equal(dec("50.00")))
}

func TestDeposit(t *testing.T) {
	svc := newTestService(t)
	a := seedAccount(t, svc, "Nubank", "100.00")

	require.NoError(t, svc.Deposit(context.Background(), a.ID, dec("25.00")))
	assert.True(t, balance(t, svc, a.ID).Equal(dec("125.00")))
}

func TestDeposit_Validation(t *testing.T) {
	svc := newTestService(t)
	a := seedAccount(t, svc, "Nubank", "100.00")

	require.ErrorIs(t, svc.Deposit(context.Background(), a.ID, dec("-5.00")), ErrInvalidAmount)
	require.ErrorIs(t, svc.Deposit(context.Background(), 99, dec("5.00")), ErrAccountNotFound)
	assert.True(t, balance(t, svc, a.ID).Equal(dec("100.00")))
}
