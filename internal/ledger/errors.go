package ledger

import (
	"errors"
	"fmt"
)

// Errors rejected before any write reaches the store.
var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAccount       = errors.New("source and destination accounts must differ")
	ErrUnknownCategory   = errors.New("unknown expense category")
	ErrGoalOverTarget    = errors.New("goal progress cannot exceed its target")

	ErrAccountNotFound = errors.New("account not found")
	ErrIncomeNotFound  = errors.New("income entry not found")
	ErrExpenseNotFound = errors.New("expense entry not found")
	ErrGoalNotFound    = errors.New("goal not found")

	ErrAccountInUse = errors.New("account still has entries attached")
)

// ConsistencyError reports a store write that failed partway through a
// multi-write operation. The store offers no cross-record transaction, so
// after this error the cached balances may disagree with the entries until
// the caller reloads from the store. CompensationErr carries the failure of
// any undo writes; when it is nil the prior state was restored.
type ConsistencyError struct {
	Op              string
	Step            string
	Err             error
	CompensationErr error
}

func (e *ConsistencyError) Error() string {
	if e.CompensationErr != nil {
		return fmt.Sprintf("%s failed at %s: %v (compensation also failed: %v; reload before retrying)",
			e.Op, e.Step, e.Err, e.CompensationErr)
	}
	return fmt.Sprintf("%s failed at %s: %v (prior state restored)", e.Op, e.Step, e.Err)
}

func (e *ConsistencyError) Unwrap() error {
	return e.Err
}

// Compensated reports whether all undo writes succeeded.
func (e *ConsistencyError) Compensated() bool {
	return e.CompensationErr == nil
}
