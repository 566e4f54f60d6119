package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/agencia-dev/agencia/internal/config"
	"github.com/agencia-dev/agencia/internal/ledger"
	"github.com/agencia-dev/agencia/internal/metrics"
	"github.com/agencia-dev/agencia/internal/statement"
	"github.com/agencia-dev/agencia/internal/terminal"
)

func newShellCommand(root *rootOptions) *cobra.Command {
	var scriptPath string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Open the interactive bank menu",
		Long: "Open the interactive bank menu. State lives only for the duration of the session.\n" +
			"With --script, answers are read from a file, one per line.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if scriptPath != "" {
				f, err := os.Open(scriptPath)
				if err != nil {
					return fmt.Errorf("opening script: %w", err)
				}
				defer f.Close()
				in = f
			}

			return runShell(cmd, cfg, in)
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "read menu answers from a file instead of stdin")

	return cmd
}

func runShell(cmd *cobra.Command, cfg *config.Config, in io.Reader) error {
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector(logger)
	bank := ledger.NewBank(settingsFromConfig(cfg), ledger.WithObserver(collector))

	logger.Info("session started",
		slog.String("bank", cfg.Bank.Name),
		slog.String("branch", cfg.Bank.BranchCode))

	session := terminal.New(terminal.Params{
		Bank:    bank,
		Metrics: collector,
		Options: statement.Options{
			CurrencySymbol:  cfg.Bank.CurrencySymbol,
			TimestampFormat: cfg.Display.TimestampFormat,
		},
		In:     in,
		Out:    cmd.OutOrStdout(),
		Logger: logger,
	})
	if err := session.Run(cmd.Context()); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	logger.Info("session ended",
		slog.Int("clients", len(bank.Clients())),
		slog.Int("accounts", len(bank.Accounts())))
	return nil
}

func settingsFromConfig(cfg *config.Config) ledger.Settings {
	return ledger.Settings{
		Branch: cfg.Bank.BranchCode,
		Checking: ledger.WithdrawalPolicy{
			PerWithdrawalLimit:   cfg.Checking.PerWithdrawalLimit,
			DailyWithdrawalLimit: cfg.Checking.DailyWithdrawalLimit,
		},
	}
}

func newLogger(w io.Writer, lc config.LogConfig) (*slog.Logger, error) {
	level, err := lc.SlogLevel()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
