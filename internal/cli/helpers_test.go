package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// extractArchive writes the files of testdata/cli.txtar to a temporary
// directory and returns it.
func extractArchive(t *testing.T) string {
	t.Helper()

	ar, err := txtar.ParseFile(filepath.Join("testdata", "cli.txtar"))
	require.NoError(t, err)

	dir := t.TempDir()
	for _, f := range ar.Files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f.Name), f.Data, 0644))
	}
	return dir
}

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}
