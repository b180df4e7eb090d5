// Package testcase discovers local test pairs for a problem and applies test filters.
package testcase

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	appErr "kat/pkg/errors"
)

const (
	DefaultDir       = "tests"
	DefaultInputExt  = "in"
	DefaultAnswerExt = "ans"
)

var digitRun = regexp.MustCompile(`\d+`)

// TestCase is one input file paired with its expected output.
type TestCase struct {
	ID                 uint64
	InputPath          string
	ExpectedOutputPath string
}

// Name returns the input file name, used when reporting on the test.
func (tc TestCase) Name() string {
	return filepath.Base(tc.InputPath)
}

// Layout describes where tests live inside a problem directory.
type Layout struct {
	Dir       string `yaml:"dir"`
	InputExt  string `yaml:"inputExt"`
	AnswerExt string `yaml:"answerExt"`
}

// DefaultLayout returns the tests/*.in + tests/*.ans layout.
func DefaultLayout() Layout {
	return Layout{Dir: DefaultDir, InputExt: DefaultInputExt, AnswerExt: DefaultAnswerExt}
}

func (l Layout) withDefaults() Layout {
	if l.Dir == "" {
		l.Dir = DefaultDir
	}
	if l.InputExt == "" {
		l.InputExt = DefaultInputExt
	}
	if l.AnswerExt == "" {
		l.AnswerExt = DefaultAnswerExt
	}
	l.InputExt = strings.TrimPrefix(l.InputExt, ".")
	l.AnswerExt = strings.TrimPrefix(l.AnswerExt, ".")
	return l
}

// Discover lists the test pairs of problemDir that match filter, sorted by id.
// It never spawns processes; every validation failure is returned before any
// test is executed.
func Discover(problemDir string, layout Layout, filter Filter) ([]TestCase, error) {
	layout = layout.withDefaults()
	testDir := filepath.Join(problemDir, layout.Dir)
	info, err := os.Stat(testDir)
	if err != nil || !info.IsDir() {
		return nil, appErr.Newf(appErr.TestDirNotFound, "no tests for this problem: %s does not exist", testDir).
			WithDetail("test_dir", testDir)
	}

	inputs, err := collect(testDir, layout.InputExt, filter)
	if err != nil {
		return nil, err
	}
	answers, err := collect(testDir, layout.AnswerExt, filter)
	if err != nil {
		return nil, err
	}

	switch {
	case len(inputs) > len(answers):
		return nil, mismatch(testDir, "there are more input files than answer files", len(inputs), len(answers))
	case len(inputs) < len(answers):
		return nil, mismatch(testDir, "there are more answer files than input files", len(inputs), len(answers))
	case len(inputs) == 0:
		return nil, appErr.Newf(appErr.NoMatchingTests, "no matching test files in %s", testDir).
			WithDetail("test_dir", testDir)
	}

	tests := make([]TestCase, 0, len(inputs))
	for id, inputPath := range inputs {
		answerPath, ok := answers[id]
		if !ok {
			return nil, appErr.Newf(appErr.TestFilesMismatch, "input file %s has no matching answer file", filepath.Base(inputPath)).
				WithDetail("test_dir", testDir).
				WithDetail("test_id", id)
		}
		tests = append(tests, TestCase{ID: id, InputPath: inputPath, ExpectedOutputPath: answerPath})
	}
	sort.Slice(tests, func(i, j int) bool { return tests[i].ID < tests[j].ID })
	return tests, nil
}

// collect maps test id to path for every file in dir with extension ext.
func collect(dir, ext string, filter Filter) (map[uint64]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*."+ext))
	if err != nil {
		return nil, appErr.Wrapf(err, appErr.InternalError, "list %s files failed", ext)
	}
	sort.Strings(matches)

	files := make(map[uint64]string, len(matches))
	for _, path := range matches {
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			continue
		}
		id, err := ExtractID(path)
		if err != nil {
			return nil, err
		}
		if !filter.Contains(id) {
			continue
		}
		if prev, dup := files[id]; dup {
			return nil, appErr.Newf(appErr.TestFilesMismatch, "files %s and %s share test id %d",
				filepath.Base(prev), filepath.Base(path), id).
				WithDetail("test_dir", dir)
		}
		files[id] = path
	}
	return files, nil
}

// ExtractID returns the first run of digits in the base name of path.
func ExtractID(path string) (uint64, error) {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	digits := digitRun.FindString(stem)
	if digits == "" {
		return 0, appErr.Newf(appErr.InvalidTestFileName, "test file %s does not contain a number", base).
			WithDetail("file", path)
	}
	id, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, appErr.Wrapf(err, appErr.InvalidTestFileName, "test file %s has an invalid number", base).
			WithDetail("file", path)
	}
	return id, nil
}

func mismatch(dir, reason string, inputs, answers int) error {
	return appErr.Newf(appErr.TestFilesMismatch, "%s (%d input, %d answer) - are they all in the %s directory?",
		reason, inputs, answers, dir).
		WithDetail("test_dir", dir).
		WithDetail("inputs", inputs).
		WithDetail("answers", answers)
}
