package harness

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/roach88/bpecheck/internal/fixture"
)

// Rule maps function names to a fixture keyword.
type Rule struct {
	Keyword string
	Match   func(name string) bool
}

// SubstringRule matches names containing keyword, ignoring case.
func SubstringRule(keyword string) Rule {
	return Rule{
		Keyword: keyword,
		Match: func(name string) bool {
			// A Caser keeps state and is not safe for concurrent use.
			fold := cases.Fold()
			return strings.Contains(fold.String(name), fold.String(keyword))
		},
	}
}

// RulesFor returns one SubstringRule per catalog keyword, in catalog order.
func RulesFor(cat *fixture.Catalog) []Rule {
	keywords := cat.Keywords()
	rules := make([]Rule, len(keywords))
	for i, k := range keywords {
		rules[i] = SubstringRule(k)
	}
	return rules
}

// Dispatcher selects the fixture set for a function and hands it to a Runner.
type Dispatcher struct {
	Catalog *fixture.Catalog
	Rules   []Rule // scanned in order, first match wins
	Runner  *Runner
}

// NewDispatcher creates a dispatcher with the default rules for cat.
func NewDispatcher(cat *fixture.Catalog, runner *Runner) *Dispatcher {
	return &Dispatcher{Catalog: cat, Rules: RulesFor(cat), Runner: runner}
}

// Resolve returns the set for keyword or, when keyword is empty, for the
// first rule matching name.
func (d *Dispatcher) Resolve(name, keyword string) (fixture.Set, error) {
	if keyword != "" {
		set, ok := d.Catalog.Lookup(keyword)
		if !ok {
			return fixture.Set{}, &FixturesNotFoundError{Keyword: keyword, Keywords: d.Catalog.Keywords()}
		}
		return set, nil
	}

	for _, rule := range d.Rules {
		if !rule.Match(name) {
			continue
		}
		if set, ok := d.Catalog.Lookup(rule.Keyword); ok {
			return set, nil
		}
	}
	return fixture.Set{}, &NoFixturesError{Name: name, Keywords: d.Catalog.Keywords()}
}

// Dispatch resolves the fixture set for s and runs it. Resolution errors are
// returned before the function is invoked.
func (d *Dispatcher) Dispatch(s Subject, keyword string) error {
	_, err := d.Execute(s, keyword)
	return err
}

// Execute is Dispatch returning the run report. The report is nil when no
// fixture set could be resolved.
func (d *Dispatcher) Execute(s Subject, keyword string) (*Report, error) {
	set, err := d.Resolve(s.Name, keyword)
	if err != nil {
		return nil, err
	}
	return d.Runner.Execute(s, set)
}

// Test runs the built-in fixtures against fn, printing verdicts to stdout.
// The fixture set is keyword, or inferred from the function's name when
// keyword is empty. fn may be a Subject to give it an explicit name.
//
//	harness.Test(MergePair, "")       // inferred: merge
//	harness.Test(myEncoder, "encode") // explicit
func Test(fn any, keyword string) error {
	s, ok := fn.(Subject)
	if !ok {
		s = Func(fn)
	}
	cat := fixture.NewCatalog()
	return NewDispatcher(cat, NewRunner(nil, nil)).Dispatch(s, keyword)
}
