package terminal

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agencia-dev/agencia/internal/id"
	"github.com/agencia-dev/agencia/internal/ledger"
	"github.com/agencia-dev/agencia/internal/model"
	"github.com/agencia-dev/agencia/internal/statement"
)

const birthDateLayout = "02-01-2006"

func (s *Session) deposit() error {
	return s.transact(model.KindDeposit, "Enter the deposit amount: ")
}

func (s *Session) withdraw() error {
	return s.transact(model.KindWithdrawal, "Enter the withdrawal amount: ")
}

func (s *Session) transact(kind model.TransactionKind, label string) error {
	client, acct, err := s.chooseAccount()
	if err != nil || acct == nil {
		return err
	}

	raw, err := s.prompt(label)
	if err != nil {
		return err
	}
	amount, err := ParseAmount(raw)
	if err != nil {
		s.logger.Debug("amount rejected", slog.String("input", raw), slog.String("error", err.Error()))
		fmt.Fprintln(s.out, "Invalid amount, please enter a number like 150.00.")
		return nil
	}

	if kind == model.KindDeposit {
		_, err = s.bank.Deposit(client.TaxID, acct.Number(), amount)
	} else {
		_, err = s.bank.Withdraw(client.TaxID, acct.Number(), amount)
	}

	attrs := []any{
		slog.String("client", client.TaxID),
		slog.Int("account", acct.Number()),
		slog.String("kind", string(kind)),
		slog.String("amount", amount.StringFixed(2)),
		slog.String("reason", ledger.Reason(err)),
	}
	if err != nil {
		s.logger.Info("transaction rejected", attrs...)
		fmt.Fprintln(s.out, rejectionMessage(err, acct, s.opts))
		return nil
	}
	s.logger.Debug("transaction applied", append(attrs, slog.String("balance", acct.Balance().StringFixed(2)))...)

	fmt.Fprintf(s.out, "%s completed successfully! Balance: %s\n", kind.Label(), s.opts.Money(acct.Balance()))
	return nil
}

func rejectionMessage(err error, acct *ledger.Account, opts statement.Options) string {
	switch {
	case errors.Is(err, ledger.ErrNonPositiveAmount):
		return "Operation failed: the amount entered is invalid."
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return "Operation failed: insufficient funds."
	case errors.Is(err, ledger.ErrExceedsPerTransactionLimit):
		if p, ok := acct.Policy(); ok {
			return fmt.Sprintf("Operation failed: the amount exceeds the per-withdrawal limit of %s.", opts.Money(p.PerWithdrawalLimit))
		}
		return "Operation failed: the amount exceeds the per-withdrawal limit."
	case errors.Is(err, ledger.ErrDailyLimitReached):
		return "Operation failed: daily withdrawal limit reached, please try again tomorrow."
	default:
		return fmt.Sprintf("Operation failed: %v", err)
	}
}

// ParseAmount parses a user-typed amount. A comma is accepted as the decimal
// separator; more than two fraction digits is an error.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", raw, err)
	}
	hundred := decimal.NewFromInt(100)
	if !amount.Mul(hundred).Equal(amount.Mul(hundred).Floor()) {
		return decimal.Zero, fmt.Errorf("amount %q has more than 2 decimal places", raw)
	}
	return amount, nil
}

// findClient prompts for a tax ID. A nil client means the lookup failed and
// the user has been told why.
func (s *Session) findClient() (*ledger.Client, error) {
	raw, err := s.prompt("Enter the client's tax ID: ")
	if err != nil {
		return nil, err
	}
	taxID, err := id.NormalizeTaxID(raw)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid tax ID.")
		return nil, nil
	}
	client, err := s.bank.Client(taxID)
	if err != nil {
		fmt.Fprintln(s.out, "Client not found!")
		return nil, nil
	}
	return client, nil
}

// chooseAccount resolves the client and, when there is more than one, asks
// which account to use. A blank answer picks the first account.
func (s *Session) chooseAccount() (*ledger.Client, *ledger.Account, error) {
	client, err := s.findClient()
	if err != nil || client == nil {
		return nil, nil, err
	}

	accounts := client.Accounts()
	switch len(accounts) {
	case 0:
		fmt.Fprintln(s.out, "Client has no accounts.")
		return nil, nil, nil
	case 1:
		return client, accounts[0], nil
	}

	numbers := make([]string, len(accounts))
	for i, a := range accounts {
		numbers[i] = id.FormatAccountNumber(a.Number())
	}
	raw, err := s.prompt(fmt.Sprintf("Choose an account (%s) or leave blank for the first: ", strings.Join(numbers, ", ")))
	if err != nil {
		return nil, nil, err
	}
	if raw == "" {
		return client, accounts[0], nil
	}

	number, err := id.ParseAccountNumber(raw)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid account number.")
		return nil, nil, nil
	}
	acct, err := client.Account(number)
	if err != nil {
		fmt.Fprintln(s.out, "Account not found!")
		return nil, nil, nil
	}
	return client, acct, nil
}

func (s *Session) showStatement() error {
	client, acct, err := s.chooseAccount()
	if err != nil || acct == nil {
		return err
	}
	st, err := s.bank.Statement(client.TaxID, acct.Number())
	if err != nil {
		fmt.Fprintf(s.out, "Operation failed: %v\n", err)
		return nil
	}
	return statement.Render(s.out, statement.Statement{
		Branch:  acct.Branch(),
		Account: acct.Number(),
		Holder:  client.Name,
		Entries: st.Entries,
		Balance: st.Balance,
	}, s.opts)
}

func (s *Session) exportStatement() error {
	client, acct, err := s.chooseAccount()
	if err != nil || acct == nil {
		return err
	}
	st, err := s.bank.Statement(client.TaxID, acct.Number())
	if err != nil {
		fmt.Fprintf(s.out, "Operation failed: %v\n", err)
		return nil
	}
	if err := statement.WriteCSV(s.out, st.Entries); err != nil {
		return fmt.Errorf("exporting statement: %w", err)
	}
	return nil
}

func (s *Session) newAccount() error {
	client, err := s.findClient()
	if err != nil || client == nil {
		return err
	}
	acct, err := s.bank.OpenCheckingAccount(client.TaxID)
	if err != nil {
		s.logger.Error("opening account failed", slog.String("client", client.TaxID), slog.String("error", err.Error()))
		fmt.Fprintf(s.out, "Operation failed: %v\n", err)
		return nil
	}
	s.logger.Info("account opened",
		slog.String("client", client.TaxID),
		slog.String("account", id.FormatAccountRef(acct.Branch(), acct.Number())))
	fmt.Fprintf(s.out, "Account %s created successfully!\n", id.FormatAccountRef(acct.Branch(), acct.Number()))
	return nil
}

func (s *Session) listAccounts() {
	accounts := s.bank.Accounts()
	if len(accounts) == 0 {
		fmt.Fprintln(s.out, "No accounts registered.")
		return
	}
	for _, a := range accounts {
		holder := a.Owner()
		if c, err := s.bank.Client(a.Owner()); err == nil {
			holder = c.Name
		}
		fmt.Fprintln(s.out, strings.Repeat("=", 50))
		fmt.Fprintf(s.out, "Branch:\t\t%s\n", a.Branch())
		fmt.Fprintf(s.out, "Account:\t%s\n", id.FormatAccountNumber(a.Number()))
		fmt.Fprintf(s.out, "Holder:\t\t%s\n", holder)
	}
}

func (s *Session) newClient() error {
	raw, err := s.prompt("Enter the tax ID (numbers only): ")
	if err != nil {
		return err
	}
	taxID, err := id.NormalizeTaxID(raw)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid tax ID.")
		return nil
	}
	if _, err := s.bank.Client(taxID); err == nil {
		fmt.Fprintln(s.out, "A client with this tax ID already exists!")
		return nil
	}

	name, err := s.prompt("Enter the full name: ")
	if err != nil {
		return err
	}
	rawBirth, err := s.prompt("Enter the birth date (dd-mm-yyyy): ")
	if err != nil {
		return err
	}
	birth, err := time.Parse(birthDateLayout, rawBirth)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid birth date, expected dd-mm-yyyy.")
		return nil
	}
	address, err := s.prompt("Enter the address (street, number - district - city/state): ")
	if err != nil {
		return err
	}

	if _, err := s.bank.RegisterClient(ledger.ClientParams{
		TaxID:     taxID,
		Name:      name,
		BirthDate: birth,
		Address:   address,
	}); err != nil {
		fmt.Fprintf(s.out, "Operation failed: %v\n", err)
		return nil
	}
	s.logger.Info("client registered", slog.String("client", taxID))
	fmt.Fprintln(s.out, "Client created successfully!")
	return nil
}

func (s *Session) summary() error {
	if s.metrics == nil {
		fmt.Fprintln(s.out, "Metrics are disabled.")
		return nil
	}
	sum, err := s.metrics.Summary()
	if err != nil {
		return fmt.Errorf("building summary: %w", err)
	}
	fmt.Fprintln(s.out, "============ SESSION SUMMARY ============")
	for _, c := range sum.Counts {
		fmt.Fprintf(s.out, "%-10s %-20s %d\n", c.Kind, c.Outcome, c.Value)
	}
	fmt.Fprintf(s.out, "Accepted: %d  Rejected: %d\n", sum.Accepted, sum.Rejected)
	return nil
}
