package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// DefaultCurrencySymbol prefixes amounts in rendered entries.
	DefaultCurrencySymbol = "R$"
	// DefaultTimestampLayout is the layout used for entry timestamps.
	DefaultTimestampLayout = "02/01/2006 15:04:05"
)

// Entry is one applied transaction in an account's log.
type Entry struct {
	ID        uuid.UUID
	Timestamp time.Time
	Kind      TransactionKind
	Amount    decimal.Decimal
	Balance   decimal.Decimal // balance after the transaction
}

// Format renders the entry as "<timestamp> - <Kind>: <symbol> <amount>".
// An empty layout falls back to DefaultTimestampLayout.
func (e Entry) Format(symbol, layout string) string {
	if layout == "" {
		layout = DefaultTimestampLayout
	}
	return fmt.Sprintf("%s - %s: %s %s", e.Timestamp.Format(layout), e.Kind.Label(), symbol, e.Amount.StringFixed(2))
}

func (e Entry) String() string {
	return e.Format(DefaultCurrencySymbol, DefaultTimestampLayout)
}
