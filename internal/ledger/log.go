package ledger

import "github.com/agencia-dev/agencia/internal/model"

// TransactionLog is the append-only, chronological record of an account's
// applied transactions.
type TransactionLog struct {
	entries []model.Entry
}

// Append adds e to the end of the log.
func (l *TransactionLog) Append(e model.Entry) {
	l.entries = append(l.entries, e)
}

// Entries returns a copy of the log in insertion order.
func (l *TransactionLog) Entries() []model.Entry {
	out := make([]model.Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *TransactionLog) Len() int {
	return len(l.entries)
}
