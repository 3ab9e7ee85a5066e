package harness

// CaseResult is the outcome of a single case.
type CaseResult struct {
	Case Case

	// ActualTool is the tool the model called, "" if it answered in text.
	ActualTool string

	// ActualArgs are the decoded tool call arguments.
	ActualArgs map[string]any

	// ActualText is the model's text answer when no tool was called.
	ActualText string

	// Passed reports whether the case met its expectation.
	Passed bool

	// Err is set when the provider failed or returned malformed output.
	Err error
}

// CategoryResult groups the results of one category.
type CategoryResult struct {
	Name    string
	Results []CaseResult
}

// Passed returns how many of the category's cases passed.
func (c CategoryResult) Passed() int {
	passed := 0
	for _, r := range c.Results {
		if r.Passed {
			passed++
		}
	}
	return passed
}

// Report is the outcome of a full suite run.
type Report struct {
	Suite      string
	Categories []CategoryResult
}

// Total returns the number of cases in the report.
func (r *Report) Total() int {
	total := 0
	for _, cat := range r.Categories {
		total += len(cat.Results)
	}
	return total
}

// Passed returns the number of passing cases.
func (r *Report) Passed() int {
	passed := 0
	for _, cat := range r.Categories {
		passed += cat.Passed()
	}
	return passed
}

// Failed returns the number of failing cases.
func (r *Report) Failed() int {
	return r.Total() - r.Passed()
}

// PassRate returns the fraction of passing cases in [0, 1].
// An empty report has a pass rate of 0.
func (r *Report) PassRate() float64 {
	total := r.Total()
	if total == 0 {
		return 0
	}
	return float64(r.Passed()) / float64(total)
}
