package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencia-dev/agencia/internal/commands"
	"github.com/agencia-dev/agencia/internal/config"
)

// runAgencia executes the CLI in-process with stdin set to input.
func runAgencia(t *testing.T, input string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestInit_WritesConfig(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runAgencia(t, "", "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, config.DefaultFile)

	cfg, err := config.Load(filepath.Join(dir, config.DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, "0001", cfg.Bank.BranchCode)
	assert.Equal(t, "R$", cfg.Bank.CurrencySymbol)
	assert.Equal(t, 3, cfg.Checking.DailyWithdrawalLimit)
}

func TestInit_Flags(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runAgencia(t, "", "init", dir, "--branch", "0420", "--currency-symbol", "$")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, "0420", cfg.Bank.BranchCode)
	assert.Equal(t, "$", cfg.Bank.CurrencySymbol)
}

func TestInit_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "bank")
	_, _, err := runAgencia(t, "", "init", dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInit_RefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runAgencia(t, "", "init", dir)
	require.NoError(t, err)

	_, _, err = runAgencia(t, "", "init", dir, "--branch", "0002")
	require.Error(t, err, "second init without --force should fail")

	_, _, err = runAgencia(t, "", "init", dir, "--branch", "0002", "--force")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, "0002", cfg.Bank.BranchCode)
}

func TestInit_RejectsEmptyBranch(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runAgencia(t, "", "init", dir, "--branch", "")
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, config.DefaultFile))
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}
