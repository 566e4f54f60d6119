package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/agencia-dev/agencia/internal/model"
)

// Header is the CSV header for exported statements.
const Header = "entry_id,timestamp,kind,amount,balance"

const (
	numFields    = 5
	colEntryID   = 0
	colTimestamp = 1
	colKind      = 2
	colAmount    = 3
	colBalance   = 4
)

// WriteCSV writes entries to w (including header).
func WriteCSV(w io.Writer, entries []model.Entry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads entries written by WriteCSV.
func ReadCSV(r io.Reader) ([]model.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []model.Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e model.Entry) []string {
	row := make([]string, numFields)
	row[colEntryID] = e.ID.String()
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colKind] = string(e.Kind)
	row[colAmount] = e.Amount.StringFixed(2)
	row[colBalance] = e.Balance.StringFixed(2)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (model.Entry, error) {
	if len(record) != numFields {
		return model.Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	entryID, err := uuid.Parse(record[colEntryID])
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing entry_id %q: %w", record[colEntryID], err)
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	kind := model.TransactionKind(record[colKind])
	if kind != model.KindDeposit && kind != model.KindWithdrawal {
		return model.Entry{}, fmt.Errorf("unknown kind %q", record[colKind])
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	balance, err := decimal.NewFromString(record[colBalance])
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing balance %q: %w", record[colBalance], err)
	}

	return model.Entry{
		ID:        entryID,
		Timestamp: ts,
		Kind:      kind,
		Amount:    amount,
		Balance:   balance,
	}, nil
}
