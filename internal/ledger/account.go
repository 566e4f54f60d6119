package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agencia-dev/agencia/internal/model"
)

// DefaultBranch is the branch code given to accounts when none is configured.
const DefaultBranch = "0001"

// WithdrawalPolicy holds the limits that turn an account into a checking account.
type WithdrawalPolicy struct {
	PerWithdrawalLimit   decimal.Decimal
	DailyWithdrawalLimit int
}

// Validate checks that the limit is positive and the daily count non-negative.
func (p WithdrawalPolicy) Validate() error {
	if !p.PerWithdrawalLimit.IsPositive() {
		return fmt.Errorf("%w: per-withdrawal limit %s must be greater than zero", ErrInvalidPolicy, p.PerWithdrawalLimit)
	}
	if p.DailyWithdrawalLimit < 0 {
		return fmt.Errorf("%w: daily withdrawal limit %d must not be negative", ErrInvalidPolicy, p.DailyWithdrawalLimit)
	}
	return nil
}

// Account holds a balance and its transaction log. The balance only changes
// through Apply.
type Account struct {
	number int
	branch string
	owner  string // tax ID of the owning client

	balance decimal.Decimal
	log     TransactionLog

	policy           *WithdrawalPolicy
	withdrawalsToday int

	now   func() time.Time
	newID func() uuid.UUID
}

// AccountOption configures an Account.
type AccountOption func(*Account)

// WithAccountClock sets the clock used to timestamp log entries.
func WithAccountClock(now func() time.Time) AccountOption {
	return func(a *Account) { a.now = now }
}

// NewAccount creates a basic account with zero balance and an empty log.
// Basic accounts have no per-withdrawal limit and no daily cap.
func NewAccount(owner string, number int, branch string, opts ...AccountOption) *Account {
	if branch == "" {
		branch = DefaultBranch
	}
	a := &Account{
		number:  number,
		branch:  branch,
		owner:   owner,
		balance: decimal.Zero,
		now:     time.Now,
		newID:   uuid.New,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewCheckingAccount creates an account governed by policy.
func NewCheckingAccount(owner string, number int, branch string, policy WithdrawalPolicy, opts ...AccountOption) (*Account, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	a := NewAccount(owner, number, branch, opts...)
	a.policy = &policy
	return a, nil
}

// Deposit applies a deposit of amount to the account.
func (a *Account) Deposit(amount decimal.Decimal) (model.Entry, error) {
	return Apply(a, model.Deposit(amount))
}

// Withdraw applies a withdrawal of amount. Checking accounts that already
// reached their daily cap are rejected before any other rule is evaluated.
func (a *Account) Withdraw(amount decimal.Decimal) (model.Entry, error) {
	tx := model.Withdrawal(amount)
	if a.atDailyCap() {
		return model.Entry{}, reject(a, tx, ErrDailyLimitReached)
	}
	return Apply(a, tx)
}

func (a *Account) atDailyCap() bool {
	return a.policy != nil && a.withdrawalsToday >= a.policy.DailyWithdrawalLimit
}

// commit mutates the account for a transaction that already passed validation.
func (a *Account) commit(tx model.Transaction) model.Entry {
	switch tx.Kind {
	case model.KindDeposit:
		a.balance = a.balance.Add(tx.Amount)
	case model.KindWithdrawal:
		a.balance = a.balance.Sub(tx.Amount)
		if a.policy != nil {
			a.withdrawalsToday++
		}
	}
	e := model.Entry{
		ID:        a.newID(),
		Timestamp: a.now(),
		Kind:      tx.Kind,
		Amount:    tx.Amount,
		Balance:   a.balance,
	}
	a.log.Append(e)
	return e
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal { return a.balance }

// History returns the account's log entries in chronological order.
func (a *Account) History() []model.Entry { return a.log.Entries() }

// Number returns the account number.
func (a *Account) Number() int { return a.number }

// Branch returns the branch code.
func (a *Account) Branch() string { return a.branch }

// Owner returns the tax ID of the owning client.
func (a *Account) Owner() string { return a.owner }

// Kind reports whether this is a basic or checking account.
func (a *Account) Kind() model.AccountKind {
	if a.policy != nil {
		return model.AccountKindChecking
	}
	return model.AccountKindBasic
}

// Policy returns the withdrawal policy, if any.
func (a *Account) Policy() (WithdrawalPolicy, bool) {
	if a.policy == nil {
		return WithdrawalPolicy{}, false
	}
	return *a.policy, true
}

// WithdrawalsToday returns the number of successful withdrawals counted
// against the daily cap. The counter is never reset.
func (a *Account) WithdrawalsToday() int { return a.withdrawalsToday }
