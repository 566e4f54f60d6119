package statement

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/agencia-dev/agencia/internal/id"
	"github.com/agencia-dev/agencia/internal/model"
)

// Options control how a statement is rendered.
type Options struct {
	CurrencySymbol  string
	TimestampFormat string
}

// DefaultOptions renders amounts in reais with day-first timestamps.
func DefaultOptions() Options {
	return Options{
		CurrencySymbol:  model.DefaultCurrencySymbol,
		TimestampFormat: model.DefaultTimestampLayout,
	}
}

// Statement is what gets printed for one account.
type Statement struct {
	Branch  string
	Account int
	Holder  string
	Entries []model.Entry
	Balance decimal.Decimal
}

// Money formats amount with the currency symbol and two fraction digits.
func (o Options) Money(amount decimal.Decimal) string {
	return o.CurrencySymbol + " " + amount.StringFixed(2)
}

const rule = "=========================================="

// Render writes a printable statement to w.
func Render(w io.Writer, st Statement, opts Options) error {
	var b strings.Builder
	fmt.Fprintln(&b, "================ STATEMENT ================")
	fmt.Fprintf(&b, "Account: %s\n", id.FormatAccountRef(st.Branch, st.Account))
	if st.Holder != "" {
		fmt.Fprintf(&b, "Holder:  %s\n", st.Holder)
	}
	fmt.Fprintln(&b, rule)
	if len(st.Entries) == 0 {
		fmt.Fprintln(&b, "No transactions recorded.")
	}
	for _, e := range st.Entries {
		fmt.Fprintln(&b, e.Format(opts.CurrencySymbol, opts.TimestampFormat))
	}
	fmt.Fprintf(&b, "\nBalance: %s\n", opts.Money(st.Balance))
	fmt.Fprintln(&b, rule)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing statement: %w", err)
	}
	return nil
}
