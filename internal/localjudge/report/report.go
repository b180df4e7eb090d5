// Package report renders local test progress for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"kat/internal/localjudge/result"
)

// Verbosity controls how much failure narration is printed.
type Verbosity int

const (
	// Silent prints nothing; callers rely on the returned summary.
	Silent Verbosity = iota
	// Normal prints one line per test and a short notice on failure.
	Normal
	// Verbose adds expected and actual output plus captured stderr.
	Verbose
)

// ParseVerbosity maps the -q/-v flags to a verbosity level. quiet wins.
func ParseVerbosity(quiet, verbose bool) Verbosity {
	switch {
	case quiet:
		return Silent
	case verbose:
		return Verbose
	default:
		return Normal
	}
}

// Printer writes engine events to out. It satisfies service.Reporter.
type Printer struct {
	out       io.Writer
	verbosity Verbosity
}

// NewPrinter creates a printer.
func NewPrinter(out io.Writer, verbosity Verbosity) *Printer {
	return &Printer{out: out, verbosity: verbosity}
}

// CompileStarted announces the compile step.
func (p *Printer) CompileStarted(problemID string) {
	if p.verbosity < Normal {
		return
	}
	fmt.Fprintf(p.out, "Compiling problem: %s ...\n", problemID)
}

// CompileFinished surfaces the compiler output verbatim when compilation failed.
func (p *Printer) CompileFinished(res result.CompileResult) {
	if p.verbosity < Normal {
		return
	}
	if res.OK {
		if p.verbosity >= Verbose {
			fmt.Fprintf(p.out, "Compiled in %s\n", seconds(res.Duration))
		}
		return
	}
	fmt.Fprintf(p.out, "Compilation failed (exit code %d)\n", res.ExitCode)
	if res.Output != "" {
		fmt.Fprint(p.out, withNewline(res.Output))
	}
}

// TestFinished prints the outcome of a single test.
func (p *Printer) TestFinished(res result.TestcaseResult) {
	if p.verbosity < Normal {
		return
	}
	if res.Passed() {
		fmt.Fprintf(p.out, "Test %s passed in %s\n", res.Name, seconds(res.Duration))
		return
	}

	fmt.Fprintf(p.out, "Test %s failed: %s\n", res.Name, describe(res))
	if p.verbosity < Verbose {
		return
	}
	switch res.Verdict {
	case result.VerdictWA:
		if whitespaceOnly(res.Expected, res.Actual) {
			fmt.Fprintf(p.out, "Outputs differ only in whitespace or line endings:\n")
			fmt.Fprintf(p.out, "Expected output: %q\n", res.Expected)
			fmt.Fprintf(p.out, "Actual output:   %q\n", res.Actual)
			break
		}
		fmt.Fprintf(p.out, "Expected output:\n%s", withNewline(res.Expected))
		fmt.Fprintf(p.out, "Actual output:\n%s", withNewline(res.Actual))
	case result.VerdictRE:
		if res.Actual != "" {
			fmt.Fprintf(p.out, "Output:\n%s", withNewline(res.Actual))
		}
	}
	if res.Stderr != "" {
		fmt.Fprintf(p.out, "Error output:\n%s", withNewline(res.Stderr))
	}
}

// Summary prints the closing line of a run.
func (p *Printer) Summary(summary result.Summary) {
	if p.verbosity < Normal {
		return
	}
	if summary.AllPassed {
		fmt.Fprintf(p.out, "All tests for %s passed in %s\n", summary.ProblemID, seconds(summary.TotalTime))
		return
	}
	fmt.Fprintf(p.out, "%d of %d tests failed for %s\n", len(summary.Failed()), len(summary.Tests), summary.ProblemID)
}

// Separator prints the divider between watch-mode runs.
func (p *Printer) Separator() {
	if p.verbosity < Normal {
		return
	}
	fmt.Fprintln(p.out, strings.Repeat("=", 25))
}

func describe(res result.TestcaseResult) string {
	switch res.Verdict {
	case result.VerdictWA:
		return "wrong answer"
	case result.VerdictRE:
		return "runtime error"
	default:
		if res.Err != nil {
			return res.Err.Error()
		}
		return "system error"
	}
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// whitespaceOnly reports whether two differing outputs would print the same
// once trailing newlines are added and surrounding space is hidden.
func whitespaceOnly(expected, actual string) bool {
	return expected != actual && strings.TrimSpace(expected) == strings.TrimSpace(actual)
}

func withNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
