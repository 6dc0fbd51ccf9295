package fixture

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKind_Matches(t *testing.T) {
	value := fmt.Errorf("size 100: %w", ErrInvalidValue)
	lookup := fmt.Errorf("token 256: %w", ErrUnknownToken)
	other := errors.New("other")

	tests := []struct {
		kind ErrorKind
		err  error
		want bool
	}{
		{KindAny, other, true},
		{KindAny, value, true},
		{KindAny, nil, false},
		{KindValue, value, true},
		{KindValue, lookup, false},
		{KindValue, other, false},
		{KindLookup, lookup, true},
		{KindLookup, value, false},
		{KindLookup, nil, false},
		{ErrorKind(42), other, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v", tt.kind, tt.err), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Matches(tt.err))
		})
	}
}

func TestErrorKind_ParseRoundTrip(t *testing.T) {
	for _, k := range []ErrorKind{KindAny, KindValue, KindLookup} {
		parsed, err := ParseErrorKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseErrorKind("type")
	assert.ErrorContains(t, err, `unknown error kind "type"`)
	assert.Equal(t, "ErrorKind(42)", ErrorKind(42).String())
}

func TestExpectation_Variants(t *testing.T) {
	v := Returns([]int{1})
	assert.False(t, v.IsError())
	assert.Equal(t, []int{1}, v.Value())

	e := Fails(KindLookup)
	assert.True(t, e.IsError())
	assert.Equal(t, KindLookup, e.Kind())
	assert.Nil(t, e.Value())

	var zero Expectation
	assert.False(t, zero.IsError())
	assert.Nil(t, zero.Value())
}
