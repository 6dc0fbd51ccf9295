package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/bpecheck/internal/reference"
)

func TestFuncName_PackageFunction(t *testing.T) {
	assert.Equal(t, "MergePair", FuncName(reference.MergePair))
	assert.Equal(t, "Decode", FuncName(reference.Decode))
}

func TestFuncName_Closure(t *testing.T) {
	fn := func() {}
	assert.Equal(t, "TestFuncName_Closure.func1", FuncName(fn))
}

func TestFuncName_NotAFunction(t *testing.T) {
	assert.Equal(t, "", FuncName(nil))
	assert.Equal(t, "", FuncName(42))

	var nilFunc func()
	assert.Equal(t, "", FuncName(nilFunc))
}

func TestFunc_DerivesName(t *testing.T) {
	s := Func(reference.TopPair)
	assert.Equal(t, "TopPair", s.Name)
	assert.NotNil(t, s.Func)
}

func TestNamed_KeepsExplicitName(t *testing.T) {
	s := Named("get_stats", reference.TopPair)
	assert.Equal(t, "get_stats", s.Name)
}
