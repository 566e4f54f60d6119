package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agencia-dev/agencia/internal/model"
)

// Settings are the bank-wide defaults applied to new accounts.
type Settings struct {
	Branch   string
	Checking WithdrawalPolicy
}

// DefaultSettings returns branch 0001 with a 500 per-withdrawal limit and
// three withdrawals per day.
func DefaultSettings() Settings {
	return Settings{
		Branch: DefaultBranch,
		Checking: WithdrawalPolicy{
			PerWithdrawalLimit:   decimal.NewFromInt(500),
			DailyWithdrawalLimit: 3,
		},
	}
}

// Event describes one transaction attempt made through the Bank.
type Event struct {
	Client  string
	Account int
	Kind    model.TransactionKind
	Amount  decimal.Decimal
	Balance decimal.Decimal // balance after the attempt
	Err     error
}

// Observer is notified of every transaction attempt made through the Bank.
type Observer interface {
	TransactionObserved(ev Event)
}

// Bank is the aggregate root: it owns every client and hands out account
// numbers. It lives for the duration of a session.
type Bank struct {
	settings   Settings
	clients    []*Client
	byTaxID    map[string]*Client
	accounts   []*Account
	nextNumber int
	now        func() time.Time
	observer   Observer
}

// Option configures a Bank.
type Option func(*Bank)

// WithClock sets the clock used to timestamp log entries of every account.
func WithClock(now func() time.Time) Option {
	return func(b *Bank) { b.now = now }
}

// WithObserver registers an observer for transaction attempts.
func WithObserver(o Observer) Option {
	return func(b *Bank) { b.observer = o }
}

// NewBank creates an empty bank.
func NewBank(settings Settings, opts ...Option) *Bank {
	if settings.Branch == "" {
		settings.Branch = DefaultBranch
	}
	b := &Bank{
		settings:   settings,
		byTaxID:    make(map[string]*Client),
		nextNumber: 1,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Settings returns the bank's defaults.
func (b *Bank) Settings() Settings { return b.settings }

// ClientParams holds the data needed to register a client.
type ClientParams struct {
	TaxID     string
	Name      string
	BirthDate time.Time
	Address   string
}

// RegisterClient adds a new client. Tax IDs are unique.
func (b *Bank) RegisterClient(params ClientParams) (*Client, error) {
	taxID := strings.TrimSpace(params.TaxID)
	if taxID == "" {
		return nil, fmt.Errorf("%w: tax ID is required", ErrInvalidClient)
	}
	if _, ok := b.byTaxID[taxID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrClientExists, taxID)
	}
	c := &Client{
		TaxID:     taxID,
		Name:      params.Name,
		BirthDate: params.BirthDate,
		Address:   params.Address,
	}
	b.clients = append(b.clients, c)
	b.byTaxID[taxID] = c
	return c, nil
}

// Client returns the client registered under taxID.
func (b *Bank) Client(taxID string) (*Client, error) {
	c, ok := b.byTaxID[strings.TrimSpace(taxID)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, taxID)
	}
	return c, nil
}

// Clients returns all clients in registration order.
func (b *Bank) Clients() []*Client {
	out := make([]*Client, len(b.clients))
	copy(out, b.clients)
	return out
}

// OpenCheckingAccount opens a checking account with the bank's default policy
// for the client registered under taxID.
func (b *Bank) OpenCheckingAccount(taxID string) (*Account, error) {
	c, err := b.Client(taxID)
	if err != nil {
		return nil, err
	}
	acct, err := NewCheckingAccount(c.TaxID, b.nextNumber, b.settings.Branch, b.settings.Checking, WithAccountClock(b.now))
	if err != nil {
		return nil, fmt.Errorf("opening account for %s: %w", c.TaxID, err)
	}
	b.register(c, acct)
	return acct, nil
}

// OpenBasicAccount opens an account without withdrawal limits.
func (b *Bank) OpenBasicAccount(taxID string) (*Account, error) {
	c, err := b.Client(taxID)
	if err != nil {
		return nil, err
	}
	acct := NewAccount(c.TaxID, b.nextNumber, b.settings.Branch, WithAccountClock(b.now))
	b.register(c, acct)
	return acct, nil
}

func (b *Bank) register(c *Client, acct *Account) {
	c.OpenAccount(acct)
	b.accounts = append(b.accounts, acct)
	b.nextNumber++
}

// Accounts returns every account in opening order.
func (b *Bank) Accounts() []*Account {
	out := make([]*Account, len(b.accounts))
	copy(out, b.accounts)
	return out
}

// ResolveAccount returns the client's account with the given number, or the
// client's first account when number is 0.
func (b *Bank) ResolveAccount(taxID string, number int) (*Client, *Account, error) {
	c, err := b.Client(taxID)
	if err != nil {
		return nil, nil, err
	}
	var acct *Account
	if number == 0 {
		acct, err = c.PrimaryAccount()
	} else {
		acct, err = c.Account(number)
	}
	if err != nil {
		return nil, nil, err
	}
	return c, acct, nil
}

// Deposit deposits amount into the selected account of a client.
func (b *Bank) Deposit(taxID string, number int, amount decimal.Decimal) (model.Entry, error) {
	return b.execute(taxID, number, model.Deposit(amount))
}

// Withdraw withdraws amount from the selected account of a client.
func (b *Bank) Withdraw(taxID string, number int, amount decimal.Decimal) (model.Entry, error) {
	return b.execute(taxID, number, model.Withdrawal(amount))
}

func (b *Bank) execute(taxID string, number int, tx model.Transaction) (model.Entry, error) {
	c, acct, err := b.ResolveAccount(taxID, number)
	if err != nil {
		return model.Entry{}, err
	}
	entry, err := c.Execute(acct, tx)
	if b.observer != nil {
		b.observer.TransactionObserved(Event{
			Client:  c.TaxID,
			Account: acct.number,
			Kind:    tx.Kind,
			Amount:  tx.Amount,
			Balance: acct.balance,
			Err:     err,
		})
	}
	return entry, err
}

// Statement is a point-in-time view of an account's history and balance.
type Statement struct {
	Account *Account
	Entries []model.Entry
	Balance decimal.Decimal
}

// Statement returns the history and balance of the selected account.
func (b *Bank) Statement(taxID string, number int) (Statement, error) {
	_, acct, err := b.ResolveAccount(taxID, number)
	if err != nil {
		return Statement{}, err
	}
	return Statement{
		Account: acct,
		Entries: acct.History(),
		Balance: acct.balance,
	}, nil
}
