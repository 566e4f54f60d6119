package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/agencia-dev/agencia/internal/ledger"
	"github.com/agencia-dev/agencia/internal/metrics"
	"github.com/agencia-dev/agencia/internal/statement"
)

const menu = `
================= MENU ==================
[1] Deposit
[2] Withdraw
[3] Statement
[4] New account
[5] List accounts
[6] New client
[7] Exit
[8] Export statement (CSV)
[9] Session summary
=> `

// Params holds the collaborators of a Session.
type Params struct {
	Bank    *ledger.Bank
	Metrics *metrics.Collector // optional
	Options statement.Options
	In      io.Reader
	Out     io.Writer
	Logger  *slog.Logger
}

// Session is an interactive menu over a Bank. It reads one answer per line,
// so the same loop serves a terminal and a script file.
type Session struct {
	bank    *ledger.Bank
	metrics *metrics.Collector
	opts    statement.Options
	in      *bufio.Scanner
	out     io.Writer
	logger  *slog.Logger
}

// New creates a Session.
func New(p Params) *Session {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts := p.Options
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = statement.DefaultOptions().CurrencySymbol
	}
	return &Session{
		bank:    p.Bank,
		metrics: p.Metrics,
		opts:    opts,
		in:      bufio.NewScanner(p.In),
		out:     p.Out,
		logger:  logger,
	}
}

// Run shows the menu until the user exits, the input ends or ctx is done.
// Rejected operations are reported to the user and never end the session;
// only I/O failures are returned.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, menu)
		option, err := s.readLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return err
		}

		switch option {
		case "1":
			err = s.deposit()
		case "2":
			err = s.withdraw()
		case "3":
			err = s.showStatement()
		case "4":
			err = s.newAccount()
		case "5":
			s.listAccounts()
		case "6":
			err = s.newClient()
		case "7":
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		case "8":
			err = s.exportStatement()
		case "9":
			err = s.summary()
		default:
			fmt.Fprintln(s.out, "Invalid option, please try again.")
		}

		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	return s.readLine()
}
