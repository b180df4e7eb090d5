// Package parser extracts submission snapshots from the judge's status page.
package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	appErr "kat/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

const (
	judgeTableSelector = "table#judge_table"
	dataRowSelector    = "tr[data-submission-id]"
	cellSelector       = "td[data-type]"
	testEntrySelector  = "tr.testcases-row i[title]"
	submissionIDAttr   = "data-submission-id"
)

var testTitlePattern = regexp.MustCompile(`^Test case (\d+)/(\d+): (.*)$`)

// TestEntry is the judge status of one hidden test case.
type TestEntry struct {
	Ordinal   uint64
	Total     uint64
	RawStatus string
}

// Snapshot is one poll of a submission. A new snapshot is built on every
// poll; it is never updated in place.
type Snapshot struct {
	SubmissionID     string
	RawStatus        string
	CPUTime          string
	TestcasesSummary string
	Tests            []TestEntry

	Problem    string
	Language   string
	Time       string
	Plagiarism string
}

// Parse builds a snapshot from a status page body. A missing table, data row,
// submission id or status span fails the whole parse.
func Parse(body []byte) (Snapshot, error) {
	var snap Snapshot
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return snap, appErr.Wrapf(err, appErr.StatusParseFailed, "read status page failed: %v", err)
	}

	table := doc.Find(judgeTableSelector).First()
	if table.Length() == 0 {
		return snap, parseError("no submission table found")
	}
	row := table.Find(dataRowSelector).First()
	if row.Length() == 0 {
		return snap, parseError("no data row found")
	}
	id, ok := row.Attr(submissionIDAttr)
	if !ok || strings.TrimSpace(id) == "" {
		return snap, parseError("no submission id found")
	}
	snap.SubmissionID = strings.TrimSpace(id)

	statusFound := false
	var cellErr error
	row.Find(cellSelector).EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		dataType, _ := cell.Attr("data-type")
		switch dataType {
		case "plagiarism":
			snap.Plagiarism = cellText(cell)
		case "time":
			snap.Time = cellText(cell)
		case "problem":
			link := cell.Find("a").First()
			if link.Length() == 0 {
				cellErr = parseError("no problem name in submission table")
				return false
			}
			snap.Problem = cellText(link)
		case "status":
			span := cell.Find("span").First()
			if span.Length() == 0 {
				cellErr = parseError("no status span in submission table")
				return false
			}
			snap.RawStatus = cellText(span)
			statusFound = true
		case "cpu":
			snap.CPUTime = cellText(cell)
		case "lang":
			snap.Language = cellText(cell)
		case "testcases":
			item := cell.Find("div.horizontal_item").First()
			if item.Length() == 0 {
				cellErr = parseError("no test case count in submission table")
				return false
			}
			snap.TestcasesSummary = cellText(item)
		}
		return true
	})
	if cellErr != nil {
		return snap, cellErr
	}
	if !statusFound {
		return snap, parseError("no status span in submission table")
	}

	var testErr error
	table.Find(testEntrySelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title, _ := s.Attr("title")
		entry, err := ParseTestTitle(title)
		if err != nil {
			testErr = err
			return false
		}
		snap.Tests = append(snap.Tests, entry)
		return true
	})
	if testErr != nil {
		return snap, testErr
	}
	return snap, nil
}

// FormatTestTitle renders a test entry the way the judge titles it.
func FormatTestTitle(entry TestEntry) string {
	return fmt.Sprintf("Test case %d/%d: %s", entry.Ordinal, entry.Total, entry.RawStatus)
}

// ParseTestTitle reads a "Test case i/n: STATUS" title.
func ParseTestTitle(title string) (TestEntry, error) {
	m := testTitlePattern.FindStringSubmatch(strings.TrimSpace(title))
	if m == nil {
		return TestEntry{}, parseError(fmt.Sprintf("unexpected test case title %q", title))
	}
	ordinal, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return TestEntry{}, appErr.Wrapf(err, appErr.StatusParseFailed, "invalid test ordinal in %q", title)
	}
	total, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return TestEntry{}, appErr.Wrapf(err, appErr.StatusParseFailed, "invalid test total in %q", title)
	}
	return TestEntry{Ordinal: ordinal, Total: total, RawStatus: m[3]}, nil
}

// cellText returns the text of s with non-breaking spaces made plain.
func cellText(s *goquery.Selection) string {
	return strings.TrimSpace(strings.ReplaceAll(s.Text(), "\u00a0", " "))
}

func parseError(msg string) error {
	return appErr.New(appErr.StatusParseFailed).WithMessage(msg)
}
