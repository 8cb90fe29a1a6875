package model

// Snapshot is a full copy of the store contents as of one reload. The store
// is the single source of truth; a Snapshot is a cache that is thrown away
// and repopulated wholesale after every mutation, never patched in place.
type Snapshot struct {
	Accounts []Account
	Incomes  []Income
	Expenses []Expense
	Goals    []Goal
	Targets  Targets
}

// Account returns the account with the given ID.
func (s Snapshot) Account(id int64) (Account, bool) {
	for _, a := range s.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return Account{}, false
}

// Income returns the income entry with the given ID.
func (s Snapshot) Income(id int64) (Income, bool) {
	for _, r := range s.Incomes {
		if r.ID == id {
			return r, true
		}
	}
	return Income{}, false
}

// Expense returns the expense entry with the given ID.
func (s Snapshot) Expense(id int64) (Expense, bool) {
	for _, d := range s.Expenses {
		if d.ID == id {
			return d, true
		}
	}
	return Expense{}, false
}

// Goal returns the goal with the given ID.
func (s Snapshot) Goal(id int64) (Goal, bool) {
	for _, g := range s.Goals {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}

// AccountInUse reports whether any income or expense entry references the
// account. Accounts with attached entries cannot be deleted.
func (s Snapshot) AccountInUse(id int64) bool {
	for _, r := range s.Incomes {
		if r.AccountID == id {
			return true
		}
	}
	for _, d := range s.Expenses {
		if d.AccountID == id {
			return true
		}
	}
	return false
}
