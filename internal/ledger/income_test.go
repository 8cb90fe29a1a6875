package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcfiz73/fechamento/internal/model"
)

func TestAddIncome_CreditsAccount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	acct := seedAccount(t, svc, "Nubank", "100.00")

	created, err := svc.AddIncome(ctx, AddIncomeParams{
		Platform:  "iFood",
		Amount:    dec("50.00"),
		Date:      date(2025, 6, 18),
		AccountID: acct.ID,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, model.IncomeCategory, created.Category)

	assert.True(t, balance(t, svc, acct.ID).Equal(dec("150.00")))
	assert.Len(t, svc.Snapshot().Incomes, 1)
}

func TestAddIncome_InvalidAmount(t *testing.T) {
	svc := newTestService(t)
	acct := seedAccount(t, svc, "Nubank", "100.00")

	for _, amount := range []string{"0.00", "-10.00"} {
		_, err := svc.AddIncome(context.Background(), AddIncomeParams{
			Platform: "iFood", Amount: dec(amount), Date: date(2025, 6, 18), AccountID: acct.ID,
		})
		require.ErrorIs(t, err, ErrInvalidAmount)
	}
	assert.True(t, balance(t, svc, acct.ID).Equal(dec("100.00")), "no writes on validation failure")
}

func TestAddIncome_UnknownAccount(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.AddIncome(context.Background(), AddIncomeParams{
		Platform: "Rappi", Amount: dec("20.00"), Date: date(2025, 6, 18), AccountID: 42,
	})
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAddIncome_BadInstallment(t *testing.T) {
	svc := newTestService(t)
	acct := seedAccount(t, svc, "Nubank", "100.00")

	_, err := svc.AddIncome(context.Background(), AddIncomeParams{
		Platform: "Freelance", Amount: dec("200.00"), Date: date(2025, 6, 18),
		AccountID: acct.ID, Installment: "5/3",
	})
	require.Error(t, err)
	assert.True(t, balance(t, svc, acct.ID).Equal(dec("100.00")))
}

func TestUpdateIncome_SameAccountDelta(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	acct := seedAccount(t, svc, "Nubank", "100.00")

	created, err := svc.AddIncome(ctx, AddIncomeParams{
		Platform: "iFood", Amount: dec("50.00"), Date: date(2025, 6, 18), AccountID: acct.ID,
	})
	require.NoError(t, err)

	err = svc.UpdateIncome(ctx, UpdateIncomeParams{
		ID: created.ID, Platform: "iFood", Amount: dec("30.00"),
		Date: date(2025, 6, 18), AccountID: acct.ID,
	})
	require.NoError(t, err)

	assert.True(t, balance(t, svc, acct.ID).Equal(dec("130.00")))
}

func TestUpdateIncome_MoveBetweenAccounts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	a := seedAccount(t, svc, "Nubank", "100.00")
	b := seedAccount(t, svc, "Caixa", "50.00")
	c := seedAccount(t, svc, "Inter", "10.00")

	created, err := svc.AddIncome(ctx, AddIncomeParams{
		Platform: "Rappi", Amount: dec("40.00"), Date: date(2025, 6, 18), AccountID: a.ID,
	})
	require.NoError(t, err)
	require.True(t, balance(t, svc, a.ID).Equal(dec("140.00")))

	// Move to account B with a different amount.
	err = svc.UpdateIncome(ctx, UpdateIncomeParams{
		ID: created.ID, Platform: "Rappi", Amount: dec("60.00"),
		Date: date(2025, 6, 18), AccountID: b.ID,
	})
	require.NoError(t, err)

	assert.True(t, balance(t, svc, a.ID).Equal(dec("100.00")), "old account loses the old amount")
	assert.True(t, balance(t, svc, b.ID).Equal(dec("110.00")), "new account gains the new amount")
	assert.True(t, balance(t, svc, c.ID).Equal(dec("10.00")), "unrelated account untouched")
}

func TestUpdateIncome_NotFound(t *testing.T) {
	svc := newTestService(t)
	err := svc.UpdateIncome(context.Background(), UpdateIncomeParams{
		ID: 9, Platform: "iFood", Amount: dec("10.00"), Date: date(2025, 6, 18), AccountID: 1,
	})
	require.ErrorIs(t, err, ErrIncomeNotFound)
}

func TestDeleteIncome_ReversesBalance(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	acct := seedAccount(t, svc, "Nubank", "100.00")

	created, err := svc.AddIncome(ctx, AddIncomeParams{
		Platform: "iFood", Amount: dec("50.00"), Date: date(2025, 6, 18), AccountID: acct.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteIncome(ctx, created.ID))

	assert.True(t, balance(t, svc, acct.ID).Equal(dec("100.00")))
	assert.Empty(t, svc.Snapshot().Incomes)
}

func TestIncomeLifecycle_Scenario(t *testing.T) {
	// Add 50 to a 100 account, edit to 30, then delete: 150 -> 130 -> 100.
	svc := newTestService(t)
	ctx := context.Background()
	acct := seedAccount(t, svc, "Nubank", "100.00")

	created, err := svc.AddIncome(ctx, AddIncomeParams{
		Platform: "iFood", Amount: dec("50.00"), Date: date(2025, 6, 18), AccountID: acct.ID,
	})
	require.NoError(t, err)
	require.True(t, balance(t, svc, acct.ID).Equal(dec("150.00")))

	require.NoError(t, svc.UpdateIncome(ctx, UpdateIncomeParams{
		ID: created.ID, Platform: "iFood", Amount: dec("30.00"),
		Date: date(2025, 6, 18), AccountID: acct.ID,
	}))
	require.True(t, balance(t, svc, acct.ID).Equal(dec("130.00")))

	require.NoError(t, svc.DeleteIncome(ctx, created.ID))
	assert.True(t, balance(t, svc, acct.ID).Equal(dec("100.00")))
}

func TestAddIncome_InsertFails_RestoresBalance(t *testing.T) {
	svc, fs, ids := newFailingService(t, map[string]string{"Nubank": "100.00"})
	fs.failInsertIncome = true

	_, err := svc.AddIncome(context.Background(), AddIncomeParams{
		Platform: "iFood", Amount: dec("50.00"), Date: date(2025, 6, 18), AccountID: ids["Nubank"],
	})
	require.Error(t, err)

	var cerr *ConsistencyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "insert entry", cerr.Step)
	assert.True(t, cerr.Compensated())

	// Authoritative state after reload: the credit was written back.
	require.NoError(t, svc.Reload(context.Background()))
	assert.True(t, balance(t, svc, ids["Nubank"]).Equal(dec("100.00")))
	assert.Empty(t, svc.Snapshot().Incomes)
}

func TestAddIncome_CompensationAlsoFails(t *testing.T) {
	svc, fs, ids := newFailingService(t, map[string]string{"Nubank": "100.00"})
	fs.failInsertIncome = true
	// Call 1 is the credit; call 2 is the compensating write-back.
	fs.failUpdateAccountOn = 2

	_, err := svc.AddIncome(context.Background(), AddIncomeParams{
		Platform: "iFood", Amount: dec("50.00"), Date: date(2025, 6, 18), AccountID: ids["Nubank"],
	})
	require.Error(t, err)

	var cerr *ConsistencyError
	require.ErrorAs(t, err, &cerr)
	assert.False(t, cerr.Compensated(), "undo failure must be surfaced")
	assert.ErrorIs(t, cerr.CompensationErr, errStoreDown)

	// The credit stuck: only a reload shows the true (inconsistent) state.
	require.NoError(t, svc.Reload(context.Background()))
	assert.True(t, balance(t, svc, ids["Nubank"]).Equal(dec("150.00")))
}

func TestDeleteIncome_DeleteFails_RestoresBalance(t *testing.T) {
	svc, fs, ids := newFailingService(t, map[string]string{"Nubank": "100.00"})

	created, err := svc.AddIncome(context.Background(), AddIncomeParams{
		Platform: "iFood", Amount: dec("50.00"), Date: date(2025, 6, 18), AccountID: ids["Nubank"],
	})
	require.NoError(t, err)

	fs.failDeleteIncome = true
	err = svc.DeleteIncome(context.Background(), created.ID)
	require.Error(t, err)

	require.NoError(t, svc.Reload(context.Background()))
	assert.True(t, balance(t, svc, ids["Nubank"]).Equal(dec("150.00")), "reversal undone, entry kept")
	assert.Len(t, svc.Snapshot().Incomes, 1)
}
