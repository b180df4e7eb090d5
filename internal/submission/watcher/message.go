package watcher

import (
	"fmt"
	"strings"

	"kat/internal/submission/parser"
	"kat/internal/submission/status"
)

// FinalMessage is the one-line summary printed when a submission finishes.
func FinalMessage(st status.Status, snap parser.Snapshot) string {
	glyph := st.Glyph()
	switch {
	case st.Kind == status.KindAccepted, st.Reason == status.RawWrongAnswer:
		return fmt.Sprintf("Final Status: %s %s - %s tests passed in - %s", snap.RawStatus, glyph, snap.TestcasesSummary, snap.CPUTime)
	case st.Kind != status.KindFailed:
		return fmt.Sprintf("%s The submission finished with an unknown status: %s", glyph, snap.RawStatus)
	}

	switch st.Reason {
	case status.RawJudgeError:
		return fmt.Sprintf("%s The unexpected happened, the judge returned a Judge Error - you should probably contact them!", glyph)
	case status.RawRunTimeError:
		return fmt.Sprintf("%s Oh no! Your solution failed with a Run Time Error - you should probably check your code!", glyph)
	case status.RawTimeLimitExceeded:
		limit := strings.TrimSpace(strings.TrimLeft(snap.CPUTime, ">"))
		return fmt.Sprintf("%s Oh no! Your solution took longer than %s to run - is there an infinite loop in your code?", glyph, limit)
	case status.RawCompileError:
		return fmt.Sprintf("%s Oh no! Your solution failed to compile - did it compile locally?", glyph)
	case status.RawMemoryLimitExceeded:
		return fmt.Sprintf("%s Oh no! Your solution used too much memory - do you have an unnecessarily large data structure?", glyph)
	case status.RawOutputLimitExceeded:
		return fmt.Sprintf("%s Oh no! Your solution printed too much output - did you forget to remove debug statements?", glyph)
	default:
		// partial score
		return fmt.Sprintf("Final Status: %s %s - %s tests passed in - %s", snap.RawStatus, glyph, snap.TestcasesSummary, snap.CPUTime)
	}
}
