package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRunRequiresTaskID(t *testing.T) {
	_, err := executeCommand(t, "run", "--classifier", "tpot")
	require.Error(t, err)
	require.Contains(t, err.Error(), "task id")
}

func TestRunRequiresConfigFile(t *testing.T) {
	_, err := executeCommand(t, "run", "--task-id", "42", "--config", "definitely-missing.json")
	require.Error(t, err)
	require.Contains(t, err.Error(), "configuration file")
}

func TestListCommand(t *testing.T) {
	_, err := executeCommand(t, "list")
	require.NoError(t, err)
}
