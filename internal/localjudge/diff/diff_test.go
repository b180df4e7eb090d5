package diff

import (
	"testing"

	"kat/internal/testutil"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		stdout   string
		expected string
		match    bool
	}{
		{"identical", "3\n", "3\n", true},
		{"different value", "3\n", "4\n", false},
		{"missing trailing newline", "3", "3\n", false},
		{"extra trailing space", "3 \n", "3\n", false},
		{"crlf is significant", "3\r\n", "3\n", false},
		{"both empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare([]byte(tt.stdout), []byte(tt.expected))
			testutil.AssertEqual(t, got.Match, tt.match)
			testutil.AssertEqual(t, got.Actual, tt.stdout)
			testutil.AssertEqual(t, got.Expected, tt.expected)
		})
	}
}

func TestDecodeReplacesInvalidSequences(t *testing.T) {
	got := Decode([]byte{'o', 'k', 0xff, '\n'})
	testutil.AssertEqual(t, got, "ok�\n")

	got = Decode([]byte("héllo"))
	testutil.AssertEqual(t, got, "héllo")
}

func TestCompareInvalidUTF8OnBothSides(t *testing.T) {
	raw := []byte{'a', 0xfe, 0xff, '\n'}

	got := Compare(raw, raw)
	testutil.AssertTrue(t, got.Match, "identical invalid bytes must match")
	testutil.AssertEqual(t, got.Expected, got.Actual)

	got = Compare([]byte{'a', 0xfe, '\n'}, []byte("a\n"))
	testutil.AssertFalse(t, got.Match, "replacement character must not match a missing byte")
}
