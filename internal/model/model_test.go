package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpenseCategoryLabel(t *testing.T) {
	label, ok := ExpenseCategoryLabel("combustivel")
	assert.True(t, ok)
	assert.Equal(t, "Combustível", label)

	label, ok = ExpenseCategoryLabel("pensao")
	assert.True(t, ok)
	assert.Equal(t, "Pensão Alimentícia", label)

	_, ok = ExpenseCategoryLabel("viagem")
	assert.False(t, ok)
}

func TestValidExpenseCategory(t *testing.T) {
	assert.True(t, ValidExpenseCategory("taxas"))
	assert.False(t, ValidExpenseCategory("Taxas"))
	assert.False(t, ValidExpenseCategory(""))
}

func TestSnapshotLookups(t *testing.T) {
	s := Snapshot{
		Accounts: []Account{{ID: 1, Name: "Nubank"}, {ID: 2, Name: "Caixa"}},
		Incomes:  []Income{{ID: 10, AccountID: 1}},
		Expenses: []Expense{{ID: 20, AccountID: 2}},
		Goals:    []Goal{{ID: 30, Title: "Reserva"}},
	}

	a, ok := s.Account(2)
	assert.True(t, ok)
	assert.Equal(t, "Caixa", a.Name)

	_, ok = s.Account(99)
	assert.False(t, ok)

	_, ok = s.Income(10)
	assert.True(t, ok)
	_, ok = s.Expense(20)
	assert.True(t, ok)

	g, ok := s.Goal(30)
	assert.True(t, ok)
	assert.Equal(t, "Reserva", g.Title)
}

func TestAccountInUse(t *testing.T) {
	s := Snapshot{
		Incomes:  []Income{{ID: 10, AccountID: 1}},
		Expenses: []Expense{{ID: 20, AccountID: 2}},
	}

	assert.True(t, s.AccountInUse(1), "income reference")
	assert.True(t, s.AccountInUse(2), "expense reference")
	assert.False(t, s.AccountInUse(3))
}

func TestDefaultTargets(t *testing.T) {
	d := DefaultTargets()
	assert.EqualValues(t, 1, d.ID)
	assert.Equal(t, "120.00", d.Daily.StringFixed(2))
	assert.Equal(t, "840.00", d.Weekly.StringFixed(2))
	assert.Equal(t, "3600.00", d.Monthly.StringFixed(2))
}
