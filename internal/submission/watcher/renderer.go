package watcher

import (
	"fmt"
	"io"
	"os"

	"kat/internal/submission/status"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

const defaultTermWidth = 80

// BarRenderer draws accepted test cases as a progress bar sized to the
// terminal.
type BarRenderer struct {
	out       io.Writer
	termWidth int
	bar       *progressbar.ProgressBar
	total     int
	stage     string
}

// NewBarRenderer creates a renderer writing to out.
func NewBarRenderer(out io.Writer) *BarRenderer {
	width := defaultTermWidth
	if f, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	return &BarRenderer{out: out, termWidth: width}
}

// Update redraws the bar. Before the judge lists any test cases only stage
// changes are printed.
func (r *BarRenderer) Update(p Progress) {
	desc := "Testing "
	if p.Status.Kind == status.KindSetup {
		desc = fmt.Sprintf("Current Stage: %s %s ", p.Status.Reason, p.Status.Glyph())
	}
	if p.Total == 0 {
		if desc != r.stage {
			fmt.Fprintln(r.out, desc)
			r.stage = desc
		}
		return
	}
	if r.bar == nil || r.total != p.Total {
		r.bar = progressbar.NewOptions(p.Total,
			progressbar.OptionSetWriter(r.out),
			progressbar.OptionSetWidth(barWidth(p.Total, r.termWidth)),
			progressbar.OptionShowCount(),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "#",
				SaucerPadding: "-",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
		r.total = p.Total
	}
	r.bar.Describe(desc)
	_ = r.bar.Set(p.Accepted)
}

// Finish leaves the bar where it stopped and prints the summary.
func (r *BarRenderer) Finish(res Result) {
	if r.bar != nil {
		_ = r.bar.Exit()
	}
	fmt.Fprintf(r.out, "\n\n%s\n", res.Message)
}

// barWidth gives each test two columns, or half the terminal when that does
// not fit.
func barWidth(total, termWidth int) int {
	if termWidth >= total*2 {
		return total * 2
	}
	return termWidth / 2
}

// LineRenderer prints only the final summary. It is used when output is not
// a terminal or when progress is silenced.
type LineRenderer struct {
	out io.Writer
}

// NewLineRenderer creates a LineRenderer.
func NewLineRenderer(out io.Writer) *LineRenderer {
	return &LineRenderer{out: out}
}

func (r *LineRenderer) Update(Progress) {}

func (r *LineRenderer) Finish(res Result) {
	fmt.Fprintln(r.out, res.Message)
}
