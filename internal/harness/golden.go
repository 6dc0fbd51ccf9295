package harness

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/bpecheck/internal/fixture"
)

// RunWithGolden runs set against the subject and compares the console output
// against testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// The run error is returned so callers can assert on it; a diverging output
// fails the test through goldie.
func RunWithGolden(t *testing.T, name string, s Subject, set fixture.Set) error {
	t.Helper()

	var out bytes.Buffer
	_, err := NewRunner(&out, nil).Execute(s, set)

	AssertGolden(t, name, out.Bytes())
	return err
}

// AssertGolden compares already captured output against a golden file.
func AssertGolden(t *testing.T, name string, output []byte) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, output)
}
