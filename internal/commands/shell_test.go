package commands_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencia-dev/agencia/internal/config"
)

const scenario = `6
12345678900
Ana Souza
17-05-1990
Rua A, 10 - Centro - Recife/PE
4
12345678900
1
12345678900
1000
2
12345678900
300
3
12345678900
7
`

func TestShell_Stdin(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "missing.yaml")
	out, _, err := runAgencia(t, scenario, "shell", "--config", cfgPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Client created successfully!")
	assert.Contains(t, out, "Account 0001/000001 created successfully!")
	assert.Contains(t, out, "- Deposit: R$ 1000.00")
	assert.Contains(t, out, "- Withdrawal: R$ 300.00")
	assert.Contains(t, out, "Balance: R$ 700.00")
	assert.Contains(t, out, "Exiting...")
}

func TestShell_ScriptAndConfig(t *testing.T) {
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Bank.BranchCode = "0777"
	cfg.Bank.CurrencySymbol = "US$"
	cfg.Display.TimestampFormat = "2006-01-02"
	require.NoError(t, config.Save(filepath.Join(dir, config.DefaultFile), cfg))

	scriptPath := filepath.Join(dir, "session.txt")
	require.NoError(t, os.WriteFile(scriptPath, []byte(scenario), 0o644))

	out, _, err := runAgencia(t, "", "shell", "--config", filepath.Join(dir, config.DefaultFile), "--script", scriptPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Account 0777/000001 created successfully!")
	assert.Contains(t, out, "Balance: US$ 700.00")
	assert.NotContains(t, out, "R$")
}

func TestShell_LogsToStderr(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "missing.yaml")
	input := strings.Replace(scenario, "300\n", "5000\n", 1)
	_, stderr, err := runAgencia(t, input, "shell", "--config", cfgPath, "--log-level", "debug")
	require.NoError(t, err)

	assert.Contains(t, stderr, "session started")
	assert.Contains(t, stderr, "transaction applied")
	assert.Contains(t, stderr, "transaction rejected")
	assert.Contains(t, stderr, "reason=insufficient_funds")
	assert.Contains(t, stderr, "session ended")
}

func TestShell_BadLogLevel(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "missing.yaml")
	_, _, err := runAgencia(t, "7\n", "shell", "--config", cfgPath, "--log-level", "loud")
	require.Error(t, err)
}

func TestShell_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("checking:\n  per_withdrawal_limit: -1\n"), 0o644))

	_, _, err := runAgencia(t, "7\n", "shell", "--config", path)
	require.Error(t, err)
}

func TestShell_MissingScript(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "missing.yaml")
	_, _, err := runAgencia(t, "", "shell", "--config", cfgPath, "--script", filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := runAgencia(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
}
