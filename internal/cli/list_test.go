package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommand(t *testing.T) {
	dir := extractArchive(t)
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	t.Run("built-in", func(t *testing.T) {
		out, _, err := execute(t, "list")
		require.NoError(t, err)
		g.Assert(t, "list", []byte(out))
	})

	t.Run("with fixtures", func(t *testing.T) {
		out, _, err := execute(t, "list", "--fixtures", filepath.Join(dir, "double.yaml"))
		require.NoError(t, err)
		g.Assert(t, "list_fixtures", []byte(out))
	})
}

func TestListCommandJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "list")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   ListResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Sets, 6)
	assert.Equal(t, SetSummary{Keyword: "train", Cases: 3, Errors: 1}, resp.Data.Sets[2])
}

func TestListCommandBadFixtures(t *testing.T) {
	dir := extractArchive(t)

	_, _, err := execute(t, "list", "--fixtures", filepath.Join(dir, "badkind.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
