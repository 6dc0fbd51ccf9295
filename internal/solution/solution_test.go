package solution

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/roach88/bpecheck/internal/fixture"
	"github.com/roach88/bpecheck/internal/harness"
)

// extract writes the files of a txtar archive to a temporary directory.
func extract(t *testing.T, archive string) string {
	t.Helper()

	ar, err := txtar.ParseFile(archive)
	require.NoError(t, err)

	dir := t.TempDir()
	for _, f := range ar.Files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f.Name), f.Data, 0644))
	}
	return dir
}

func TestLoad_Functions(t *testing.T) {
	dir := extract(t, "testdata/solutions.txtar")

	sol, err := Load(filepath.Join(dir, "reference.go"))
	require.NoError(t, err)

	assert.Equal(t, "main", sol.Package)
	assert.Equal(t, []string{"GetStats", "MergePair", "Decode", "helper"}, sol.Names())

	_, ok := sol.Lookup("Encode")
	assert.False(t, ok, "methods are not subjects")
}

func TestLoad_SubjectsPassFixtures(t *testing.T) {
	dir := extract(t, "testdata/solutions.txtar")
	sol, err := Load(filepath.Join(dir, "reference.go"))
	require.NoError(t, err)

	d := harness.NewDispatcher(fixture.NewCatalog(), harness.NewRunner(io.Discard, nil))

	tests := []struct {
		name    string
		keyword string
	}{
		{"GetStats", "pair"},
		{"MergePair", ""},
		{"Decode", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := sol.Lookup(tt.name)
			require.True(t, ok)
			report, err := d.Execute(s, tt.keyword)
			require.NoError(t, err)
			assert.True(t, report.Pass())
		})
	}
}

func TestLoad_HelperIsCallable(t *testing.T) {
	dir := extract(t, "testdata/solutions.txtar")
	sol, err := Load(filepath.Join(dir, "reference.go"))
	require.NoError(t, err)

	s, ok := sol.Lookup("helper")
	require.True(t, ok)
	double, ok := s.Func.(func(int) int)
	require.True(t, ok)
	assert.Equal(t, 8, double(4))
}

func TestLoad_NonMainPackage(t *testing.T) {
	dir := extract(t, "testdata/solutions.txtar")

	sol, err := Load(filepath.Join(dir, "library.go"))
	require.NoError(t, err)
	assert.Equal(t, "tokens", sol.Package)
	assert.Equal(t, []string{"Double"}, sol.Names())
}

func TestLoad_Errors(t *testing.T) {
	dir := extract(t, "testdata/solutions.txtar")

	for _, name := range []string{"syntax.go", "undefined.go", "forbidden.go", "missing.go"} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(filepath.Join(dir, name))

			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, filepath.Join(dir, name), le.Path)
			assert.Contains(t, err.Error(), "load solution")
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.go"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_ContractConstant(t *testing.T) {
	src := []byte(`package main

import "bpecheck/bpe"

func BaseSize() int { return bpe.MinVocabSize }

func Fits(n int64) bool { return n >= bpe.MinVocabSize }
`)

	sol, err := Parse("const.go", src)
	require.NoError(t, err)

	s, ok := sol.Lookup("BaseSize")
	require.True(t, ok)
	baseSize, ok := s.Func.(func() int)
	require.True(t, ok)
	assert.Equal(t, fixture.MinVocabSize, baseSize())

	// Untyped, so it also converts to other integer types.
	s, ok = sol.Lookup("Fits")
	require.True(t, ok)
	fits, ok := s.Func.(func(int64) bool)
	require.True(t, ok)
	assert.True(t, fits(fixture.MinVocabSize))
	assert.False(t, fits(fixture.MinVocabSize-1))
}
