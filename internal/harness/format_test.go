package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/bpecheck/internal/fixture"
)

type point struct {
	X, Y int
	tag  string
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "nil"},
		{"int", 42, "42"},
		{"string", "ploc", `"ploc"`},
		{"string escapes", "a\nb", `"a\nb"`},
		{"bytes", []byte("pl"), `b"pl"`},
		{"empty slice", []int{}, "[]"},
		{"slice", []int{1, 5, 4}, "[1, 5, 4]"},
		{"pair", fixture.Pair{112, 108}, "(112, 108)"},
		{"pair count", &fixture.PairCount{Pair: fixture.Pair{1, 2}, Count: 2}, "((1, 2), 2)"},
		{"nil pointer", (*fixture.PairCount)(nil), "nil"},
		{"int keys sorted", map[int]string{10: "b", 2: "a"}, `{2: "a", 10: "b"}`},
		{"pair keys sorted", fixture.Merges{{32, 256}: 257, {112, 108}: 256, {111, 99}: 258},
			"{(32, 256): 257, (111, 99): 258, (112, 108): 256}"},
		{"vocab", fixture.Vocab{257: []byte(" pl"), 256: []byte("pl")}, `{256: b"pl", 257: b" pl"}`},
		{"struct", point{X: 1, Y: 2, tag: "x"}, "point{X: 1, Y: 2}"},
		{"nested any", []any{"a", []any{1, nil}}, `["a", [1, nil]]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

func TestFormatArgs(t *testing.T) {
	got := FormatArgs([]any{[]int{1, 2, 3}, fixture.Pair{2, 3}, 5})
	assert.Equal(t, "([1, 2, 3], (2, 3), 5)", got)

	assert.Equal(t, "()", FormatArgs(nil))
	assert.Equal(t, `("", 100)`, FormatArgs([]any{"", 100}))
}
