package ledger

import (
	"fmt"
	"time"

	"github.com/agencia-dev/agencia/internal/model"
)

// Client is an individual who owns one or more accounts.
type Client struct {
	TaxID     string
	Name      string
	BirthDate time.Time
	Address   string

	accounts []*Account
}

// OpenAccount adds acct to the client's accounts.
func (c *Client) OpenAccount(acct *Account) {
	c.accounts = append(c.accounts, acct)
}

// Execute applies tx to acct.
func (c *Client) Execute(acct *Account, tx model.Transaction) (model.Entry, error) {
	return Apply(acct, tx)
}

// Accounts returns the client's accounts in opening order.
func (c *Client) Accounts() []*Account {
	out := make([]*Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// Account returns the client's account with the given number.
func (c *Client) Account(number int) (*Account, error) {
	for _, a := range c.accounts {
		if a.number == number {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %d for client %s", ErrAccountNotFound, number, c.TaxID)
}

// PrimaryAccount returns the first account the client opened.
func (c *Client) PrimaryAccount() (*Account, error) {
	if len(c.accounts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoAccounts, c.TaxID)
	}
	return c.accounts[0], nil
}
