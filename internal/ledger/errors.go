package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/agencia-dev/agencia/internal/model"
)

// Transaction rejections.
var (
	ErrNonPositiveAmount          = errors.New("amount must be greater than zero")
	ErrInsufficientFunds          = errors.New("insufficient funds")
	ErrExceedsPerTransactionLimit = errors.New("amount exceeds the per-withdrawal limit")
	ErrDailyLimitReached          = errors.New("daily withdrawal limit reached")
	ErrUnknownTransaction         = errors.New("unknown transaction kind")
)

// Directory and setup errors.
var (
	ErrClientNotFound  = errors.New("client not found")
	ErrClientExists    = errors.New("client already exists")
	ErrAccountNotFound = errors.New("account not found")
	ErrNoAccounts      = errors.New("client has no accounts")
	ErrInvalidPolicy   = errors.New("invalid withdrawal policy")
	ErrInvalidClient   = errors.New("invalid client")
)

// RejectionError reports a transaction that was not applied. The account is
// left unmodified.
type RejectionError struct {
	Kind    model.TransactionKind
	Amount  decimal.Decimal
	Account int
	Cause   error
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s of %s on account %d rejected: %v", e.Kind, e.Amount.StringFixed(2), e.Account, e.Cause)
}

func (e *RejectionError) Unwrap() error {
	return e.Cause
}

func reject(acct *Account, tx model.Transaction, cause error) error {
	return &RejectionError{Kind: tx.Kind, Amount: tx.Amount, Account: acct.number, Cause: cause}
}

// IsRejection reports whether err is a business-rule rejection rather than a
// lookup or setup failure.
func IsRejection(err error) bool {
	var rej *RejectionError
	return errors.As(err, &rej)
}

// Reason returns a stable label for err, suitable for metrics and logs.
// A nil error yields "accepted".
func Reason(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, ErrNonPositiveAmount):
		return "non_positive_amount"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrExceedsPerTransactionLimit):
		return "exceeds_limit"
	case errors.Is(err, ErrDailyLimitReached):
		return "daily_limit_reached"
	case errors.Is(err, ErrClientNotFound):
		return "client_not_found"
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrNoAccounts):
		return "account_not_found"
	default:
		return "error"
	}
}
