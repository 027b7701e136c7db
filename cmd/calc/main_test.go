package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCalc(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("CALC_HISTORY_DSN", "")
	t.Setenv("CALC_MAX_DEPTH", "256")
	t.Setenv("CALC_LOG_LEVEL", "info")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestEvalCommand(t *testing.T) {
	stdout, stderr, err := runCalc(t, "", "eval", "2+3", "(2+3)*4", "2**3**2", "1/4")
	require.NoError(t, err)
	require.Equal(t, "5\n20\n512\n0.25\n", stdout)
	require.Equal(t, "", stderr)
}

func TestEvalCommandFailure(t *testing.T) {
	stdout, stderr, err := runCalc(t, "", "eval", "2/0", "7//3", "0**0")
	require.EqualError(t, err, "2 of 3 expressions failed")
	require.Equal(t, "2\n", stdout)
	require.Contains(t, stderr, "error: division by zero\n")
	require.Contains(t, stderr, "error: indeterminate form 0**0\n")
}

func TestEvalCommandRequiresArgs(t *testing.T) {
	_, _, err := runCalc(t, "", "eval")
	require.Error(t, err)
}

func TestEvalCommandMaxDepthFlag(t *testing.T) {
	_, stderr, err := runCalc(t, "", "--max-depth", "2", "eval", "(((1)))")
	require.Error(t, err)
	require.Contains(t, stderr, "error: expression nested too deeply")
}

func TestReplCommand(t *testing.T) {
	input := "1+1\n\n  2**10  \n2 # 3\n7 % 4\nquit\n3\n"
	stdout, stderr, err := runCalc(t, input, "repl")
	require.NoError(t, err)
	require.Equal(t, "2\n1024\n3\n", stdout)
	require.Equal(t, "error: expression contains invalid characters\n", stderr)
}

func TestReplCommandEOF(t *testing.T) {
	stdout, _, err := runCalc(t, "5//2", "repl")
	require.NoError(t, err)
	require.Equal(t, "2\n", stdout)
}

func TestHistoryCommandWithoutDSN(t *testing.T) {
	_, _, err := runCalc(t, "", "history")
	require.Equal(t, errNoHistory, err)
}

func TestMigrateCommandWithoutDSN(t *testing.T) {
	_, _, err := runCalc(t, "", "migrate")
	require.Equal(t, errNoHistory, err)
}
