// Package status classifies the judge's free-text submission status into a
// closed set of canonical states.
package status

import "regexp"

// Kind is the canonical state of a submission.
type Kind string

const (
	KindSetup    Kind = "Setup"
	KindRunning  Kind = "Running"
	KindAccepted Kind = "Accepted"
	KindFailed   Kind = "Failed"
	KindUnknown  Kind = "Unknown"
)

// Raw status labels reported by the judge.
const (
	RawNew                 = "New"
	RawCompiling           = "Compiling"
	RawRunning             = "Running"
	RawAccepted            = "Accepted"
	RawRunTimeError        = "Run Time Error"
	RawTimeLimitExceeded   = "Time Limit Exceeded"
	RawCompileError        = "Compile Error"
	RawMemoryLimitExceeded = "Memory Limit Exceeded"
	RawOutputLimitExceeded = "Output Limit Exceeded"
	RawWrongAnswer         = "Wrong Answer"
	RawJudgeError          = "Judge Error"
)

var (
	// The judge sometimes appends the score to a fully accepted submission.
	fullScorePattern = regexp.MustCompile(`^Accepted ?\(100\) ?$`)
	// Partial scores are not an acceptance.
	partialScorePattern = regexp.MustCompile(`^Accepted\(\d{1,2}\)$`)
)

var classification = map[string]Kind{
	RawNew:                 KindSetup,
	RawCompiling:           KindSetup,
	RawRunning:             KindRunning,
	RawAccepted:            KindAccepted,
	RawRunTimeError:        KindFailed,
	RawTimeLimitExceeded:   KindFailed,
	RawCompileError:        KindFailed,
	RawMemoryLimitExceeded: KindFailed,
	RawOutputLimitExceeded: KindFailed,
	RawWrongAnswer:         KindFailed,
	RawJudgeError:          KindFailed,
}

var glyphs = map[string]string{
	RawNew:                 "+",
	RawCompiling:           "*",
	RawRunning:             ">",
	RawAccepted:            "✓",
	RawRunTimeError:        "!",
	RawTimeLimitExceeded:   "T",
	RawCompileError:        "C",
	RawMemoryLimitExceeded: "M",
	RawOutputLimitExceeded: "O",
	RawWrongAnswer:         "✗",
	RawJudgeError:          "J",
}

// Status is a classified submission status. Reason holds the raw label for
// Setup and Failed and is empty otherwise.
type Status struct {
	Kind   Kind
	Reason string
}

// Classify maps a raw status label to its canonical status. It is total:
// anything outside the known table is Unknown.
func Classify(raw string) Status {
	if kind, ok := classification[raw]; ok {
		switch kind {
		case KindSetup, KindFailed:
			return Status{Kind: kind, Reason: raw}
		default:
			return Status{Kind: kind}
		}
	}
	switch {
	case fullScorePattern.MatchString(raw):
		return Status{Kind: KindAccepted}
	case partialScorePattern.MatchString(raw):
		return Status{Kind: KindFailed, Reason: raw}
	}
	return Status{Kind: KindUnknown}
}

// IsTerminal reports whether the judge has finished with the submission.
func (s Status) IsTerminal() bool {
	return s.Kind == KindAccepted || s.Kind == KindFailed
}

// Glyph returns a single-character symbol for the status.
func (s Status) Glyph() string {
	switch s.Kind {
	case KindRunning:
		return glyphs[RawRunning]
	case KindAccepted:
		return glyphs[RawAccepted]
	case KindSetup, KindFailed:
		if g, ok := glyphs[s.Reason]; ok {
			return g
		}
		// partial score
		return "~"
	}
	return "?"
}

func (s Status) String() string {
	if s.Reason != "" {
		return string(s.Kind) + "(" + s.Reason + ")"
	}
	return string(s.Kind)
}

// TestOutcome is the settled state of a single judge test case.
type TestOutcome int

const (
	TestPending TestOutcome = iota
	TestAccepted
	TestFailed
)

// ClassifyTest maps the status of one test case. Only an accepted or wrong
// answer entry counts as settled; anything else is still pending.
func ClassifyTest(raw string) TestOutcome {
	switch raw {
	case RawAccepted:
		return TestAccepted
	case RawWrongAnswer:
		return TestFailed
	default:
		return TestPending
	}
}
