package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/agencia-dev/agencia/internal/model"
)

// Apply validates tx against acct and, if every rule passes, mutates the
// balance, appends a log entry and (for checking accounts) counts the
// withdrawal. A rejected transaction leaves acct untouched.
func Apply(acct *Account, tx model.Transaction) (model.Entry, error) {
	var check func(*Account, decimal.Decimal) error
	switch tx.Kind {
	case model.KindDeposit:
		check = checkDeposit
	case model.KindWithdrawal:
		check = checkWithdrawal
	default:
		return model.Entry{}, reject(acct, tx, fmt.Errorf("%w: %q", ErrUnknownTransaction, tx.Kind))
	}

	if err := check(acct, tx.Amount); err != nil {
		return model.Entry{}, reject(acct, tx, err)
	}
	return acct.commit(tx), nil
}

func checkDeposit(_ *Account, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	return nil
}

// checkWithdrawal evaluates balance, then per-withdrawal limit, then daily
// count, then sign. The first failing rule wins.
func checkWithdrawal(acct *Account, amount decimal.Decimal) error {
	if amount.GreaterThan(acct.balance) {
		return ErrInsufficientFunds
	}
	if p := acct.policy; p != nil {
		if amount.GreaterThan(p.PerWithdrawalLimit) {
			return ErrExceedsPerTransactionLimit
		}
		if acct.withdrawalsToday >= p.DailyWithdrawalLimit {
			return ErrDailyLimitReached
		}
	}
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	return nil
}
