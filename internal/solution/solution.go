// Package solution loads a learner's Go source file with the yaegi
// interpreter and exposes its top-level functions as harness subjects.
//
// A solution is a single file. It may import the standard library and the
// contract package:
//
//	package main
//
//	import "bpecheck/bpe"
//
//	func MergePair(ids []int, pair bpe.Pair, id int) []int { ... }
//
// If the file is package main and declares func main, main runs once during
// Load.
package solution

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/roach88/bpecheck/internal/harness"
)

// LoadError is returned when a solution cannot be read, parsed or
// interpreted.
type LoadError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load solution %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Solution is an interpreted solution file.
type Solution struct {
	Path    string
	Package string

	// Subjects are the top-level functions in declaration order.
	Subjects []harness.Subject
}

// Load reads and interprets the solution at path.
func Load(path string) (*Solution, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return Parse(path, src)
}

// Parse interprets src. path is only used for positions and errors.
func Parse(path string, src []byte) (*Solution, error) {
	pkg, names, err := declaredFuncs(path, src)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("failed to load stdlib: %w", err)}
	}
	if err := i.Use(Symbols); err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("failed to load contract symbols: %w", err)}
	}

	if _, err := i.Eval(string(src)); err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("code evaluation failed: %w", err)}
	}

	sol := &Solution{Path: path, Package: pkg}
	for _, name := range names {
		v, err := i.Eval(pkg + "." + name)
		if err != nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("function %s not found: %w", name, err)}
		}
		sol.Subjects = append(sol.Subjects, harness.Named(name, v.Interface()))
	}
	return sol, nil
}

// Lookup returns the subject declared as name.
func (s *Solution) Lookup(name string) (harness.Subject, bool) {
	for _, sub := range s.Subjects {
		if sub.Name == name {
			return sub, true
		}
	}
	return harness.Subject{}, false
}

// Names returns the function names in declaration order.
func (s *Solution) Names() []string {
	names := make([]string, len(s.Subjects))
	for i, sub := range s.Subjects {
		names[i] = sub.Name
	}
	return names
}

// declaredFuncs returns the package name and the plain top-level functions of
// src. Methods, generic functions, init and main are skipped.
func declaredFuncs(path string, src []byte) (string, []string, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.SkipObjectResolution)
	if err != nil {
		return "", nil, err
	}

	var names []string
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || fn.Type.TypeParams != nil {
			continue
		}
		if fn.Name.Name == "init" || fn.Name.Name == "main" || fn.Name.Name == "_" {
			continue
		}
		names = append(names, fn.Name.Name)
	}
	return file.Name.Name, names, nil
}
