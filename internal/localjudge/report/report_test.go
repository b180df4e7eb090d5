package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"kat/internal/localjudge/result"
	"kat/internal/testutil"
)

func wrongAnswer() result.TestcaseResult {
	return result.TestcaseResult{
		TestID:   1,
		Name:     "1",
		Verdict:  result.VerdictWA,
		Duration: 20 * time.Millisecond,
		Expected: "4\n",
		Actual:   "3\n",
		Stderr:   "debug line",
	}
}

func TestParseVerbosity(t *testing.T) {
	testutil.AssertEqual(t, ParseVerbosity(false, false), Normal)
	testutil.AssertEqual(t, ParseVerbosity(false, true), Verbose)
	testutil.AssertEqual(t, ParseVerbosity(true, true), Silent)
}

func TestTestFinishedByVerbosity(t *testing.T) {
	tests := []struct {
		name      string
		verbosity Verbosity
		contains  []string
		absent    []string
	}{
		{name: "silent", verbosity: Silent, absent: []string{"failed", "Expected"}},
		{name: "normal", verbosity: Normal, contains: []string{"Test 1 failed: wrong answer"}, absent: []string{"Expected output", "debug line"}},
		{name: "verbose", verbosity: Verbose, contains: []string{
			"Test 1 failed: wrong answer",
			"Expected output:\n4\n",
			"Actual output:\n3\n",
			"Error output:\ndebug line\n",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf, tt.verbosity).TestFinished(wrongAnswer())
			out := buf.String()
			if tt.verbosity == Silent {
				testutil.AssertEqual(t, out, "")
			}
			for _, want := range tt.contains {
				testutil.AssertTrue(t, strings.Contains(out, want), "missing "+want+" in "+out)
			}
			for _, bad := range tt.absent {
				testutil.AssertFalse(t, strings.Contains(out, bad), "unexpected "+bad+" in "+out)
			}
		})
	}
}

func TestPassedTestShowsDuration(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, Normal).TestFinished(result.TestcaseResult{Name: "2", Verdict: result.VerdictAC, Duration: 1500 * time.Millisecond})
	testutil.AssertEqual(t, buf.String(), "Test 2 passed in 1.50s\n")
}

func TestCompileFailureOutputIsVerbatim(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, Normal).CompileFinished(result.CompileResult{OK: false, ExitCode: 1, Output: "main.cpp:1: error\n"})
	testutil.AssertEqual(t, buf.String(), "Compilation failed (exit code 1)\nmain.cpp:1: error\n")
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, Normal)
	p.Summary(result.Summary{ProblemID: "hello", AllPassed: true, TotalTime: 250 * time.Millisecond})
	testutil.AssertEqual(t, buf.String(), "All tests for hello passed in 0.25s\n")

	buf.Reset()
	p.Summary(result.Summary{ProblemID: "hello", Tests: []result.TestcaseResult{wrongAnswer(), {Verdict: result.VerdictAC}}})
	testutil.AssertEqual(t, buf.String(), "1 of 2 tests failed for hello\n")
}

func TestTestFinishedShowsLineEndingDifference(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		actual   string
		want     []string
	}{
		{"missing trailing newline", "3\n", "3", []string{`Expected output: "3\n"`, `Actual output:   "3"`}},
		{"trailing space", "3\n", "3 \n", []string{`Expected output: "3\n"`, `Actual output:   "3 \n"`}},
		{"crlf", "3\n", "3\r\n", []string{`Actual output:   "3\r\n"`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := wrongAnswer()
			res.Expected = tt.expected
			res.Actual = tt.actual
			res.Stderr = ""
			var buf bytes.Buffer
			NewPrinter(&buf, Verbose).TestFinished(res)
			out := buf.String()
			testutil.AssertTrue(t, strings.Contains(out, "differ only in whitespace"), out)
			for _, want := range tt.want {
				testutil.AssertTrue(t, strings.Contains(out, want), "missing "+want+" in "+out)
			}
		})
	}
}
