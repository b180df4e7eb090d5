// Package diff compares program output with the expected answer.
//
// Comparison is exact: trailing whitespace and line endings are significant,
// the way some judges compare. Relaxing that is a product decision.
package diff

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Outcome is the verdict of one comparison.
type Outcome struct {
	Match    bool
	Expected string
	Actual   string
}

// Decode turns raw process output into text, replacing invalid UTF-8 sequences
// with U+FFFD instead of failing.
func Decode(raw []byte) string {
	out, _, err := transform.Bytes(runes.ReplaceIllFormed(), raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}

// Compare checks the decoded stdout against the decoded expected output.
// Both sides go through Decode so identical bytes always match.
func Compare(stdout []byte, expected []byte) Outcome {
	actual := Decode(stdout)
	want := Decode(expected)
	return Outcome{
		Match:    actual == want,
		Expected: want,
		Actual:   actual,
	}
}
