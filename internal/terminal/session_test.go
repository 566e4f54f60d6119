package terminal

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencia-dev/agencia/internal/ledger"
	"github.com/agencia-dev/agencia/internal/metrics"
	"github.com/agencia-dev/agencia/internal/statement"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

type harness struct {
	bank    *ledger.Bank
	metrics *metrics.Collector
}

func newHarness() *harness {
	m := metrics.NewCollector(nil)
	b := ledger.NewBank(ledger.DefaultSettings(),
		ledger.WithClock(func() time.Time { return testTime }),
		ledger.WithObserver(m))
	return &harness{bank: b, metrics: m}
}

// run feeds lines to a new session and returns everything it printed.
func (h *harness) run(t *testing.T, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	s := New(Params{
		Bank:    h.bank,
		Metrics: h.metrics,
		Options: statement.DefaultOptions(),
		In:      strings.NewReader(strings.Join(lines, "\n") + "\n"),
		Out:     &out,
	})
	require.NoError(t, s.Run(context.Background()))
	return out.String()
}

var newAna = []string{"6", "123.456.789-00", "Ana Souza", "17-05-1990", "Rua A, 10 - Centro - Recife/PE"}

func script(parts ...[]string) []string {
	var lines []string
	for _, p := range parts {
		lines = append(lines, p...)
	}
	return lines
}

func TestSession_NewClientAndAccount(t *testing.T) {
	h := newHarness()
	out := h.run(t, script(newAna, []string{"4", "12345678900", "5", "7"})...)

	assert.Contains(t, out, "Client created successfully!")
	assert.Contains(t, out, "Account 0001/000001 created successfully!")
	assert.Contains(t, out, "Branch:\t\t0001")
	assert.Contains(t, out, "Account:\t000001")
	assert.Contains(t, out, "Holder:\t\tAna Souza")
	assert.Contains(t, out, "Exiting...")

	c, err := h.bank.Client("12345678900")
	require.NoError(t, err)
	assert.Equal(t, 1990, c.BirthDate.Year())
	assert.Len(t, c.Accounts(), 1)
}

func TestSession_DuplicateClient(t *testing.T) {
	h := newHarness()
	out := h.run(t, script(newAna, []string{"6", "12345678900"})...)
	assert.Contains(t, out, "A client with this tax ID already exists!")
	assert.Len(t, h.bank.Clients(), 1)
}

func TestSession_CheckingScenario(t *testing.T) {
	h := newHarness()
	out := h.run(t, script(newAna, []string{
		"4", "12345678900",
		"1", "12345678900", "1000",
		"2", "12345678900", "1200",
		"2", "12345678900", "300",
		"2", "12345678900", "300",
		"2", "12345678900", "300",
		"2", "12345678900", "50",
		"3", "12345678900",
	})...)

	assert.Contains(t, out, "Deposit completed successfully! Balance: R$ 1000.00")
	assert.Contains(t, out, "Operation failed: insufficient funds.")
	assert.Contains(t, out, "Withdrawal completed successfully! Balance: R$ 100.00")
	assert.Contains(t, out, "Operation failed: daily withdrawal limit reached")
	assert.Contains(t, out, "15/01/2025 10:30:00 - Deposit: R$ 1000.00")
	assert.Equal(t, 3, strings.Count(out, "- Withdrawal: R$ 300.00"))
	assert.Contains(t, out, "Balance: R$ 100.00")

	st, err := h.bank.Statement("12345678900", 0)
	require.NoError(t, err)
	assert.Equal(t, "100.00", st.Balance.StringFixed(2))
	assert.Equal(t, 3, st.Account.WithdrawalsToday())
}

func TestSession_LimitMessage(t *testing.T) {
	h := newHarness()
	out := h.run(t, script(newAna, []string{
		"4", "12345678900",
		"1", "12345678900", "2000",
		"2", "12345678900", "600",
	})...)
	assert.Contains(t, out, "exceeds the per-withdrawal limit of R$ 500.00")
}

func TestSession_InvalidInputsDoNotTouchState(t *testing.T) {
	h := newHarness()
	out := h.run(t, script(newAna, []string{
		"4", "12345678900",
		"1", "12345678900", "abc",
		"1", "12345678900", "10.001",
		"1", "12345678900", "0",
		"1", "12345678900", "-5",
		"2", "12345678900", "-5",
		"1", "99999999999",
		"x",
	})...)

	assert.Equal(t, 2, strings.Count(out, "Invalid amount"))
	assert.Equal(t, 3, strings.Count(out, "Operation failed: the amount entered is invalid."))
	assert.Contains(t, out, "Client not found!")
	assert.Contains(t, out, "Invalid option, please try again.")

	st, err := h.bank.Statement("12345678900", 0)
	require.NoError(t, err)
	assert.True(t, st.Balance.IsZero())
	assert.Empty(t, st.Entries)
}

func TestSession_NoAccounts(t *testing.T) {
	h := newHarness()
	out := h.run(t, script(newAna, []string{"1", "12345678900"})...)
	assert.Contains(t, out, "Client has no accounts.")
}

func TestSession_AccountSelection(t *testing.T) {
	h := newHarness()
	out := h.run(t, script(newAna, []string{
		"4", "12345678900",
		"4", "12345678900",
		"1", "12345678900", "2", "75,50",
		"1", "12345678900", "", "10",
		"1", "12345678900", "42",
	})...)

	assert.Contains(t, out, "Choose an account (000001, 000002)")
	assert.Contains(t, out, "Account not found!")

	c, err := h.bank.Client("12345678900")
	require.NoError(t, err)
	accts := c.Accounts()
	require.Len(t, accts, 2)
	assert.True(t, accts[0].Balance().Equal(decimal.NewFromInt(10)))
	assert.True(t, accts[1].Balance().Equal(decimal.RequireFromString("75.50")))
}

func TestSession_ExportAndSummary(t *testing.T) {
	h := newHarness()
	out := h.run(t, script(newAna, []string{
		"4", "12345678900",
		"1", "12345678900", "100",
		"2", "12345678900", "500",
		"8", "12345678900",
		"9",
	})...)

	assert.Contains(t, out, statement.Header)
	assert.Contains(t, out, ",2025-01-15T10:30:00Z,deposit,100.00,100.00")
	assert.Contains(t, out, "SESSION SUMMARY")
	assert.Contains(t, out, "Accepted: 1  Rejected: 1")
}

func TestSession_SummaryWithoutMetrics(t *testing.T) {
	var out bytes.Buffer
	s := New(Params{
		Bank: ledger.NewBank(ledger.DefaultSettings()),
		In:   strings.NewReader("9\n7\n"),
		Out:  &out,
	})
	require.NoError(t, s.Run(context.Background()))
	assert.Contains(t, out.String(), "Metrics are disabled.")
}

func TestSession_EOFMidPrompt(t *testing.T) {
	h := newHarness()
	out := h.run(t, "6", "12345678900", "Ana")
	assert.NotContains(t, out, "Client created successfully!")
	assert.Empty(t, h.bank.Clients())
}

func TestSession_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(Params{
		Bank: ledger.NewBank(ledger.DefaultSettings()),
		In:   strings.NewReader("5\n"),
		Out:  &bytes.Buffer{},
	})
	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"150", "150"},
		{"150.5", "150.5"},
		{" 75,50 ", "75.5"},
		{"-10", "-10"},
		{"0", "0"},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "ParseAmount(%q) = %s", tt.input, got)
	}

	for _, bad := range []string{"", "abc", "1.234", "1,000.50", "10.001"} {
		_, err := ParseAmount(bad)
		assert.Error(t, err, "expected error for input: %q", bad)
	}
}
