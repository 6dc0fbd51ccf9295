package harness

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories. The typed errors below match them with errors.Is.
var (
	ErrFixturesNotFound = errors.New("fixture set not found for keyword")
	ErrNoFixtures       = errors.New("no fixture set inferred for callable")
	ErrBatchFailed      = errors.New("batch failed")
	ErrSignature        = errors.New("function does not match fixture arguments")
)

// FixturesNotFoundError is returned when an explicit keyword is not in the
// catalog.
type FixturesNotFoundError struct {
	Keyword  string
	Keywords []string // valid keywords, in catalog order
}

// Error implements the error interface.
func (e *FixturesNotFoundError) Error() string {
	return fmt.Sprintf("fixture set not found for keyword %q (valid keywords: %s)",
		e.Keyword, quoteKeywords(e.Keywords))
}

// Is reports whether target is ErrFixturesNotFound.
func (e *FixturesNotFoundError) Is(target error) bool {
	return target == ErrFixturesNotFound
}

// NoFixturesError is returned when no keyword is given and none matches the
// function's name.
type NoFixturesError struct {
	Name     string
	Keywords []string
}

// Error implements the error interface.
func (e *NoFixturesError) Error() string {
	example := "encode"
	if !contains(e.Keywords, example) && len(e.Keywords) > 0 {
		example = e.Keywords[0]
	}
	return fmt.Sprintf("no fixtures found for function %q. Fixture sets are selected by "+
		"the following keywords: %s. You can run the fixtures of a keyword directly, "+
		"for example: harness.Test(fn, %q)", e.Name, quoteKeywords(e.Keywords), example)
}

// Is reports whether target is ErrNoFixtures.
func (e *NoFixturesError) Is(target error) bool {
	return target == ErrNoFixtures
}

// BatchError is returned after a complete batch with recorded failures.
type BatchError struct {
	Failures int
	Total    int
}

// Error implements the error interface.
func (e *BatchError) Error() string {
	return fmt.Sprintf("%d of %d tests failed", e.Failures, e.Total)
}

// Is reports whether target is ErrBatchFailed.
func (e *BatchError) Is(target error) bool {
	return target == ErrBatchFailed
}

// SignatureError is returned before any case runs when the function cannot
// accept the fixture arguments or produce the expected values.
type SignatureError struct {
	Name    string
	Case    int // -1 when the function itself is unusable
	Message string
}

// Error implements the error interface.
func (e *SignatureError) Error() string {
	if e.Case < 0 {
		return fmt.Sprintf("function %q: %s", e.Name, e.Message)
	}
	return fmt.Sprintf("function %q, test %d: %s", e.Name, e.Case, e.Message)
}

// Is reports whether target is ErrSignature.
func (e *SignatureError) Is(target error) bool {
	return target == ErrSignature
}

// PanicError wraps a panic recovered from the function under test.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func quoteKeywords(keywords []string) string {
	return "'" + strings.Join(keywords, "', '") + "'"
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
