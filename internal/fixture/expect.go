package fixture

import (
	"errors"
	"fmt"
)

// Sentinel errors shared between the harness and the functions under test.
var (
	// ErrInvalidValue reports an argument outside the supported range,
	// e.g. a vocabulary size below MinVocabSize.
	ErrInvalidValue = errors.New("invalid value")

	// ErrUnknownToken reports a token id absent from the vocabulary.
	ErrUnknownToken = errors.New("unknown token")
)

// ErrorKind is the closed set of error categories a case can expect.
type ErrorKind int

const (
	// KindAny matches any error, including a recovered panic.
	KindAny ErrorKind = iota
	// KindValue matches errors wrapping ErrInvalidValue.
	KindValue
	// KindLookup matches errors wrapping ErrUnknownToken.
	KindLookup
)

var kindNames = map[ErrorKind]string{
	KindAny:    "any",
	KindValue:  "value",
	KindLookup: "lookup",
}

// String returns the name used in fixture files.
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Matches reports whether err belongs to this kind.
func (k ErrorKind) Matches(err error) bool {
	if err == nil {
		return false
	}
	switch k {
	case KindAny:
		return true
	case KindValue:
		return errors.Is(err, ErrInvalidValue)
	case KindLookup:
		return errors.Is(err, ErrUnknownToken)
	default:
		return false
	}
}

// ParseErrorKind parses a kind name ("any", "value", "lookup").
func ParseErrorKind(name string) (ErrorKind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown error kind %q: must be one of any, value, lookup", name)
}

// Expectation is the expected outcome of a case: either a value compared by
// structural equality or an error kind the function must return.
// The zero value expects a nil return value.
type Expectation struct {
	isError bool
	value   any
	kind    ErrorKind
}

// Returns expects the function to return v.
func Returns(v any) Expectation {
	return Expectation{value: v}
}

// Fails expects the function to return an error of the given kind.
func Fails(kind ErrorKind) Expectation {
	return Expectation{isError: true, kind: kind}
}

// IsError reports whether the expectation is an error kind.
func (e Expectation) IsError() bool { return e.isError }

// Value returns the expected value. Only meaningful when IsError is false.
func (e Expectation) Value() any { return e.value }

// Kind returns the expected error kind. Only meaningful when IsError is true.
func (e Expectation) Kind() ErrorKind { return e.kind }

// Case is a single fixture: positional arguments, expected outcome, optional hint.
type Case struct {
	Args   []any
	Expect Expectation
	Hint   string
}

// Set is the ordered sequence of cases for one keyword.
type Set struct {
	Keyword string
	Cases   []Case
}
