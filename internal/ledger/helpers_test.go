package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testTime }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newChecking(limit string, daily int) *Account {
	acct, err := NewCheckingAccount("12345678900", 1, "", WithdrawalPolicy{
		PerWithdrawalLimit:   dec(limit),
		DailyWithdrawalLimit: daily,
	}, WithAccountClock(fixedClock))
	if err != nil {
		panic(err)
	}
	return acct
}

type snapshot struct {
	balance     decimal.Decimal
	logLen      int
	withdrawals int
}

func snap(a *Account) snapshot {
	return snapshot{balance: a.Balance(), logLen: len(a.History()), withdrawals: a.WithdrawalsToday()}
}
