// Package result defines local execution results and per-test verdicts.
package result

import "time"

// Verdict represents the outcome of one local test.
type Verdict string

const (
	VerdictAC Verdict = "AC"
	VerdictWA Verdict = "WA"
	VerdictRE Verdict = "RE"
	VerdictSE Verdict = "SE"
)

// ExecutionResult captures one process invocation. It is produced fresh per
// test case and never shared.
type ExecutionResult struct {
	ExitSuccess bool
	ExitCode    int
	Stdout      []byte
	Stderr      []byte
	Duration    time.Duration
}

// CompileResult contains compilation outcomes.
type CompileResult struct {
	OK       bool
	ExitCode int
	Output   string
	Duration time.Duration
}

// TestcaseResult contains per-testcase outcomes. Expected, Actual and Stderr
// are only populated when the verdict is not AC.
type TestcaseResult struct {
	TestID   uint64
	Name     string
	Verdict  Verdict
	Duration time.Duration
	Expected string
	Actual   string
	Stderr   string
	Err      error
}

// Passed reports whether the test was accepted.
func (r TestcaseResult) Passed() bool {
	return r.Verdict == VerdictAC
}

// Summary aggregates one engine invocation.
type Summary struct {
	ProblemID string
	Compile   *CompileResult
	Tests     []TestcaseResult
	TotalTime time.Duration
	AllPassed bool
}

// Failed returns the results that were not accepted, in test order.
func (s Summary) Failed() []TestcaseResult {
	var failed []TestcaseResult
	for _, t := range s.Tests {
		if !t.Passed() {
			failed = append(failed, t)
		}
	}
	return failed
}
