package harness

// CaseResult is the outcome of one case, rendered for display and storage.
type CaseResult struct {
	Index    int    `json:"index"`
	Pass     bool   `json:"pass"`
	Args     string `json:"arguments"`
	Expected string `json:"expected"`
	Obtained string `json:"obtained,omitempty"`
	Hint     string `json:"hint,omitempty"`

	// Diff is the cmp.Diff of a value mismatch (-expected +obtained).
	Diff string `json:"diff,omitempty"`
}

// Report is the outcome of running one fixture set against one function.
type Report struct {
	Subject  string       `json:"subject"`
	Keyword  string       `json:"keyword"`
	Total    int          `json:"total"`
	Passed   int          `json:"passed"`
	Failures int          `json:"failures"`
	Aborted  bool         `json:"aborted,omitempty"`
	Cases    []CaseResult `json:"cases"`

	// Error is the message of the error returned with the report, if any.
	Error string `json:"error,omitempty"`
}

// NewReport creates an empty report for a subject and keyword.
func NewReport(subject, keyword string, total int) *Report {
	return &Report{
		Subject: subject,
		Keyword: keyword,
		Total:   total,
		Cases:   []CaseResult{},
	}
}

// Pass reports whether every case passed and the batch was not aborted.
func (r *Report) Pass() bool {
	return r.Error == "" && r.Failures == 0 && !r.Aborted
}

// AddCase records a case result and updates the counters.
func (r *Report) AddCase(c CaseResult) {
	r.Cases = append(r.Cases, c)
	if c.Pass {
		r.Passed++
	} else {
		r.Failures++
	}
}

// Fail records the error returned with the report.
func (r *Report) Fail(err error) {
	if err != nil {
		r.Error = err.Error()
	}
}
