package fixture

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// BaseVocabMarker is the single key of a mapping that expands to the base
// vocabulary extended with the mapping's value, e.g.
//
//	{"$base_vocab": {"256": "pl"}}
const BaseVocabMarker = "$base_vocab"

// FileError is returned when a fixture file is malformed.
type FileError struct {
	Path    string
	Message string
	Pos     token.Pos // CUE position if available
}

// Error implements the error interface.
func (e *FileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// LoadFile reads a fixture file. The format is chosen by extension:
// .yaml and .yml are YAML, .cue is CUE.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}

	var cat *Catalog
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		cat, err = ParseYAML(data)
	case ".cue":
		cat, err = ParseCUE(data, path)
	default:
		return nil, &FileError{Path: path, Message: fmt.Sprintf("unsupported fixture file extension %q (want .yaml, .yml or .cue)", ext)}
	}
	if err != nil {
		var fe *FileError
		if errors.As(err, &fe) && fe.Path == "" {
			fe.Path = path
		}
		return nil, err
	}
	return cat, nil
}

// fileDoc is the top level of a fixture file. Fixtures stays a node so that
// keyword order follows the document.
type fileDoc struct {
	Fixtures yaml.Node `yaml:"fixtures"`
}

type fileCase struct {
	Args   []any     `yaml:"args"`
	Expect yaml.Node `yaml:"expect"`
	Error  string    `yaml:"error"`
	Hint   string    `yaml:"hint"`
}

var caseFields = map[string]bool{"args": true, "expect": true, "error": true, "hint": true}

// ParseYAML parses a YAML fixture document.
// Unknown fields are rejected, at the top level and inside cases.
func ParseYAML(data []byte) (*Catalog, error) {
	var doc fileDoc
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, &FileError{Message: fmt.Sprintf("failed to parse YAML: %v", err)}
	}

	root := &doc.Fixtures
	if root.Kind == 0 {
		return nil, &FileError{Message: "fixtures is required"}
	}
	if root.Kind != yaml.MappingNode {
		return nil, &FileError{Message: fmt.Sprintf("line %d: fixtures must be a mapping of keyword to cases", root.Line)}
	}

	cat := &Catalog{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyword := root.Content[i].Value
		if keyword == "" {
			return nil, &FileError{Message: fmt.Sprintf("line %d: keyword must be non-empty", root.Content[i].Line)}
		}
		if _, dup := cat.Lookup(keyword); dup {
			return nil, &FileError{Message: fmt.Sprintf("line %d: duplicate keyword %q", root.Content[i].Line, keyword)}
		}

		cases, err := parseCases(keyword, root.Content[i+1])
		if err != nil {
			return nil, err
		}
		cat.sets = append(cat.sets, Set{Keyword: keyword, Cases: cases})
	}

	if len(cat.sets) == 0 {
		return nil, &FileError{Message: "fixtures must define at least one keyword"}
	}
	return cat, nil
}

func parseCases(keyword string, node *yaml.Node) ([]Case, error) {
	if node.Kind != yaml.SequenceNode || len(node.Content) == 0 {
		return nil, &FileError{Message: fmt.Sprintf("line %d: fixtures.%s must be a non-empty list of cases", node.Line, keyword)}
	}

	cases := make([]Case, 0, len(node.Content))
	for i, item := range node.Content {
		c, err := parseCase(item)
		if err != nil {
			return nil, &FileError{Message: fmt.Sprintf("line %d: fixtures.%s[%d]: %v", item.Line, keyword, i, err)}
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func parseCase(node *yaml.Node) (Case, error) {
	if node.Kind != yaml.MappingNode {
		return Case{}, fmt.Errorf("case must be a mapping")
	}

	present := make(map[string]bool)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if !caseFields[name] {
			return Case{}, fmt.Errorf("unknown field %q", name)
		}
		present[name] = true
	}

	if !present["args"] {
		return Case{}, fmt.Errorf("args is required (use [] for no arguments)")
	}
	if present["expect"] == present["error"] {
		return Case{}, fmt.Errorf("exactly one of expect or error is required")
	}

	var fc fileCase
	if err := node.Decode(&fc); err != nil {
		return Case{}, err
	}

	args := make([]any, len(fc.Args))
	for i, a := range fc.Args {
		resolved, err := resolveMarkers(a)
		if err != nil {
			return Case{}, fmt.Errorf("args[%d]: %w", i, err)
		}
		args[i] = resolved
	}

	c := Case{Args: args, Hint: fc.Hint}
	if present["error"] {
		kind, err := ParseErrorKind(fc.Error)
		if err != nil {
			return Case{}, err
		}
		c.Expect = Fails(kind)
		return c, nil
	}

	var raw any
	if err := fc.Expect.Decode(&raw); err != nil {
		return Case{}, fmt.Errorf("expect: %w", err)
	}
	expected, err := resolveMarkers(raw)
	if err != nil {
		return Case{}, fmt.Errorf("expect: %w", err)
	}
	c.Expect = Returns(expected)
	return c, nil
}

// resolveMarkers replaces base vocabulary markers in a decoded value tree.
func resolveMarkers(v any) (any, error) {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			r, err := resolveMarkers(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = r
		}
		return out, nil
	case map[string]any:
		if overrides, ok := val[BaseVocabMarker]; ok {
			if len(val) != 1 {
				return nil, fmt.Errorf("%s must be the only key of its mapping", BaseVocabMarker)
			}
			return expandBaseVocab(overrides)
		}
		out := make(map[string]any, len(val))
		for k, elem := range val {
			r, err := resolveMarkers(elem)
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", k, err)
			}
			out[k] = r
		}
		return out, nil
	case map[any]any:
		out := make(map[any]any, len(val))
		for k, elem := range val {
			r, err := resolveMarkers(elem)
			if err != nil {
				return nil, fmt.Errorf("[%v]: %w", k, err)
			}
			out[k] = r
		}
		return out, nil
	default:
		return v, nil
	}
}

func expandBaseVocab(overrides any) (Vocab, error) {
	vocab := BaseVocab()
	if overrides == nil {
		return vocab, nil
	}

	rv := reflect.ValueOf(overrides)
	if rv.Kind() != reflect.Map {
		return nil, fmt.Errorf("%s overrides must be a mapping of id to string", BaseVocabMarker)
	}
	iter := rv.MapRange()
	for iter.Next() {
		key := fmt.Sprint(iter.Key().Interface())
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid token id %q", BaseVocabMarker, key)
		}
		s, ok := iter.Value().Interface().(string)
		if !ok {
			return nil, fmt.Errorf("%s: token %d must be a string", BaseVocabMarker, id)
		}
		vocab[id] = []byte(s)
	}
	return vocab, nil
}

// ParseCUE evaluates a CUE fixture document, validates it against the
// embedded schema and decodes it like a YAML document.
func ParseCUE(data []byte, filename string) (*Catalog, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile fixture schema: %w", err)
	}

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v = schema.LookupPath(cue.ParsePath("#File")).Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	// JSON is a subset of YAML, so the exported value goes through the same
	// decoder and validation as YAML files.
	exported, err := v.MarshalJSON()
	if err != nil {
		return nil, formatCUEError(err)
	}
	return ParseYAML(exported)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &FileError{Message: err.Error()}
	}

	first := errs[0]
	fe := &FileError{Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		fe.Pos = positions[0]
	}
	return fe
}
