package status

import (
	"testing"
	"unicode/utf8"

	"kat/internal/testutil"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		raw      string
		want     Status
		terminal bool
	}{
		{raw: "New", want: Status{Kind: KindSetup, Reason: "New"}},
		{raw: "Compiling", want: Status{Kind: KindSetup, Reason: "Compiling"}},
		{raw: "Running", want: Status{Kind: KindRunning}},
		{raw: "Accepted", want: Status{Kind: KindAccepted}, terminal: true},
		{raw: "Accepted (100) ", want: Status{Kind: KindAccepted}, terminal: true},
		{raw: "Accepted(100)", want: Status{Kind: KindAccepted}, terminal: true},
		{raw: "Run Time Error", want: Status{Kind: KindFailed, Reason: "Run Time Error"}, terminal: true},
		{raw: "Time Limit Exceeded", want: Status{Kind: KindFailed, Reason: "Time Limit Exceeded"}, terminal: true},
		{raw: "Compile Error", want: Status{Kind: KindFailed, Reason: "Compile Error"}, terminal: true},
		{raw: "Memory Limit Exceeded", want: Status{Kind: KindFailed, Reason: "Memory Limit Exceeded"}, terminal: true},
		{raw: "Output Limit Exceeded", want: Status{Kind: KindFailed, Reason: "Output Limit Exceeded"}, terminal: true},
		{raw: "Wrong Answer", want: Status{Kind: KindFailed, Reason: "Wrong Answer"}, terminal: true},
		{raw: "Judge Error", want: Status{Kind: KindFailed, Reason: "Judge Error"}, terminal: true},
		{raw: "Accepted(7)", want: Status{Kind: KindFailed, Reason: "Accepted(7)"}, terminal: true},
		{raw: "Accepted(99)", want: Status{Kind: KindFailed, Reason: "Accepted(99)"}, terminal: true},
		{raw: "Accepted(100)x", want: Status{Kind: KindUnknown}},
		{raw: "Accepted(123)", want: Status{Kind: KindUnknown}},
		{raw: "accepted", want: Status{Kind: KindUnknown}},
		{raw: " Running", want: Status{Kind: KindUnknown}},
		{raw: "", want: Status{Kind: KindUnknown}},
		{raw: "Waiting for judge", want: Status{Kind: KindUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := Classify(tt.raw)
			testutil.AssertEqual(t, got, tt.want)
			testutil.AssertEqual(t, got.IsTerminal(), tt.terminal)
		})
	}
}

func TestEveryKnownLabelIsClassified(t *testing.T) {
	for raw, kind := range classification {
		got := Classify(raw)
		testutil.AssertEqual(t, got.Kind, kind)
		testutil.AssertTrue(t, got.Kind != KindUnknown, raw+" should be known")
		testutil.AssertEqual(t, got.IsTerminal(), kind == KindAccepted || kind == KindFailed)
	}
}

func TestGlyphIsSingleCharacter(t *testing.T) {
	raws := []string{"Accepted(42)", "whatever", ""}
	for raw := range classification {
		raws = append(raws, raw)
	}
	for _, raw := range raws {
		g := Classify(raw).Glyph()
		testutil.AssertEqual(t, utf8.RuneCountInString(g), 1)
	}
	testutil.AssertTrue(t, Classify("Wrong Answer").Glyph() != Classify("Judge Error").Glyph(), "failure glyphs should differ")
}

func TestString(t *testing.T) {
	testutil.AssertEqual(t, Classify("Compiling").String(), "Setup(Compiling)")
	testutil.AssertEqual(t, Classify("Running").String(), "Running")
	testutil.AssertEqual(t, Classify("nope").String(), "Unknown")
}

func TestClassifyTest(t *testing.T) {
	testutil.AssertEqual(t, ClassifyTest("Accepted"), TestAccepted)
	testutil.AssertEqual(t, ClassifyTest("Wrong Answer"), TestFailed)
	testutil.AssertEqual(t, ClassifyTest("Time Limit Exceeded"), TestPending)
	testutil.AssertEqual(t, ClassifyTest(""), TestPending)
}
