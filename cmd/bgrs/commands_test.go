package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inventory = "1|Gauze||Dressing|5|1.00|0|\n2|Old saline||Solution|3|2.00|1|\n3|Tape||Divers|10|3.00|0|\n"

func execute(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	require.NoError(t, root.Execute())
	return out.String()
}

func Test_ListCommand(t *testing.T) {
	// given
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("stock.txt", []byte(inventory), 0o644))
	// when
	out := execute(t, "", "list", "--file", "stock.txt", "--log-level", "error")
	// then
	assert.Equal(t, "3\tTape\t10\t3.00\n1\tGauze\t5\t1.00\n", out)
	data, err := os.ReadFile("stock.txt")
	require.NoError(t, err)
	assert.Equal(t, inventory, string(data), "list never writes the inventory")
}

func Test_SweepCommand(t *testing.T) {
	// given
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("stock.txt", []byte(inventory), 0o644))
	// when
	out := execute(t, "", "sweep", "--file", "stock.txt", "--audit-log", "audit.log", "--log-level", "error")
	// then
	assert.Equal(t, "1 expired product(s) removed\n", out)
	data, err := os.ReadFile("stock.txt")
	require.NoError(t, err)
	assert.Equal(t, "1|Gauze||Dressing|5|1.00|0|\n3|Tape||Divers|10|3.00|0|\n", string(data))
	audit, err := os.ReadFile("audit.log")
	require.NoError(t, err)
	assert.Contains(t, string(audit), `record removed id=2 name="Old saline"`)
}

func Test_RootCommand_RunsMenu(t *testing.T) {
	// given
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("stock.txt", []byte(inventory), 0o644))
	// when
	out := execute(t, "1\n9\n", "--load", "--file", "stock.txt", "--log-level", "error")
	// then
	assert.Contains(t, out, "1 expired product(s) removed.")
	assert.Contains(t, out, "Gauze")
	assert.NotContains(t, out, "Old saline")
	assert.Contains(t, out, "Goodbye.")
}

func Test_RootCommand_InvalidLogLevel(t *testing.T) {
	// given
	t.Chdir(t.TempDir())
	root := newRootCommand()
	root.SetArgs([]string{"list", "--log-level", "loud"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	// when
	err := root.Execute()
	// then
	assert.ErrorContains(t, err, "invalid log level")
}
