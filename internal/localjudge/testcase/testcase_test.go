package testcase

import (
	"path/filepath"
	"strings"
	"testing"

	"kat/internal/testutil"
	appErr "kat/pkg/errors"
)

func writeTests(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		testutil.WriteFile(t, dir, filepath.Join("tests", name), name)
	}
}

func ids(tests []TestCase) []uint64 {
	out := make([]uint64, 0, len(tests))
	for _, tc := range tests {
		out = append(out, tc.ID)
	}
	return out
}

func TestDiscoverAllSortedByID(t *testing.T) {
	dir := t.TempDir()
	writeTests(t, dir, "10.in", "10.ans", "2.in", "2.ans", "1.in", "1.ans")

	tests, err := Discover(dir, DefaultLayout(), AllTests())
	testutil.MustNoError(t, err)
	testutil.AssertDeepEqual(t, ids(tests), []uint64{1, 2, 10})
	testutil.AssertEqual(t, tests[0].InputPath, filepath.Join(dir, "tests", "1.in"))
	testutil.AssertEqual(t, tests[0].ExpectedOutputPath, filepath.Join(dir, "tests", "1.ans"))
	testutil.AssertEqual(t, tests[2].Name(), "10.in")
}

func TestDiscoverWithRangeFilter(t *testing.T) {
	dir := t.TempDir()
	writeTests(t, dir, "1.in", "1.ans", "2.in", "2.ans", "3.in", "3.ans", "4.in", "4.ans")

	filter, err := ParseFilter("2-3")
	testutil.MustNoError(t, err)
	tests, err := Discover(dir, DefaultLayout(), filter)
	testutil.MustNoError(t, err)
	testutil.AssertDeepEqual(t, ids(tests), []uint64{2, 3})
}

func TestDiscoverPrefixedNames(t *testing.T) {
	dir := t.TempDir()
	writeTests(t, dir, "sample-01.in", "sample-01.ans", "sample-02.in", "sample-02.ans")

	tests, err := Discover(dir, DefaultLayout(), AllTests())
	testutil.MustNoError(t, err)
	testutil.AssertDeepEqual(t, ids(tests), []uint64{1, 2})
}

func TestDiscoverCustomLayout(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "data/1.txt", "in")
	testutil.WriteFile(t, dir, "data/1.out", "out")

	tests, err := Discover(dir, Layout{Dir: "data", InputExt: ".txt", AnswerExt: "out"}, AllTests())
	testutil.MustNoError(t, err)
	testutil.AssertDeepEqual(t, ids(tests), []uint64{1})
}

func TestDiscoverErrors(t *testing.T) {
	tests := []struct {
		name   string
		files  []string
		filter string
		code   appErr.ErrorCode
	}{
		{"more inputs", []string{"1.in", "2.in", "1.ans"}, "all", appErr.TestFilesMismatch},
		{"more answers", []string{"1.in", "1.ans", "2.ans"}, "all", appErr.TestFilesMismatch},
		{"unpaired ids", []string{"1.in", "2.ans"}, "all", appErr.TestFilesMismatch},
		{"no files", []string{"readme.md"}, "all", appErr.NoMatchingTests},
		{"filter matches nothing", []string{"1.in", "1.ans"}, "7", appErr.NoMatchingTests},
		{"name without digits", []string{"sample.in", "1.ans"}, "all", appErr.InvalidTestFileName},
		{"duplicate id", []string{"1.in", "01.in", "1.ans", "2.ans"}, "all", appErr.TestFilesMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeTests(t, dir, tt.files...)
			filter, err := ParseFilter(tt.filter)
			testutil.MustNoError(t, err)
			_, err = Discover(dir, DefaultLayout(), filter)
			testutil.AssertCode(t, err, tt.code)
		})
	}
}

func TestDiscoverMissingTestDir(t *testing.T) {
	_, err := Discover(t.TempDir(), DefaultLayout(), AllTests())
	testutil.AssertCode(t, err, appErr.TestDirNotFound)
}

func TestDiscoverMismatchNamesSide(t *testing.T) {
	dir := t.TempDir()
	writeTests(t, dir, "1.in", "2.in", "1.ans")
	_, err := Discover(dir, DefaultLayout(), AllTests())
	testutil.AssertCode(t, err, appErr.TestFilesMismatch)
	testutil.AssertTrue(t, err != nil && strings.Contains(err.Error(), "more input files"), "error should name the larger side")
}

