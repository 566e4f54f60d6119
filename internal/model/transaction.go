package model

import "github.com/shopspring/decimal"

// TransactionKind tags the variant of a Transaction.
type TransactionKind string

const (
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
)

// Label returns the display name used in statements.
func (k TransactionKind) Label() string {
	switch k {
	case KindDeposit:
		return "Deposit"
	case KindWithdrawal:
		return "Withdrawal"
	default:
		return string(k)
	}
}

// Transaction is a requested balance change. The amount is not validated on
// construction; a non-positive amount is rejected when the transaction is applied.
type Transaction struct {
	Kind   TransactionKind
	Amount decimal.Decimal
}

// Deposit returns a deposit transaction for amount.
func Deposit(amount decimal.Decimal) Transaction {
	return Transaction{Kind: KindDeposit, Amount: amount}
}

// Withdrawal returns a withdrawal transaction for amount.
func Withdrawal(amount decimal.Decimal) Transaction {
	return Transaction{Kind: KindWithdrawal, Amount: amount}
}
