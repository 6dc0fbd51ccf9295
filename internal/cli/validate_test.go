package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand(t *testing.T) {
	dir := extractArchive(t)

	for _, file := range []string{"double.yaml", "double.cue"} {
		t.Run(file, func(t *testing.T) {
			out, _, err := execute(t, "validate", filepath.Join(dir, file))
			require.NoError(t, err, out)
			assert.Contains(t, out, "1 fixture set(s) valid")
			assert.Contains(t, out, "double")
		})
	}
}

func TestValidateCommandInvalid(t *testing.T) {
	dir := extractArchive(t)

	out, _, err := execute(t, "validate", filepath.Join(dir, "badkind.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, `unknown error kind "lookupp"`)
	assert.Contains(t, out, "fixtures.decode[0]")
}

func TestValidateCommandCUEPosition(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.cue")
	require.NoError(t, os.WriteFile(path, []byte("fixtures: {\n\tmerge: [\n"), 0644))

	out, _, err := execute(t, "--format", "json", "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  *CLIError        `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	require.NotNil(t, resp.Data.Error)
	assert.Greater(t, resp.Data.Error.Line, 0)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeFixtures, resp.Error.Code)
}

func TestValidateCommandUnreadable(t *testing.T) {
	_, _, err := execute(t, "validate", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to read fixture file")
}

func TestValidateCommandJSON(t *testing.T) {
	dir := extractArchive(t)

	out, _, err := execute(t, "--format", "json", "validate", filepath.Join(dir, "double.yaml"))
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, []SetSummary{{Keyword: "double", Cases: 2}}, resp.Data.Sets)
}
