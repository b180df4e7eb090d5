package command

import (
	"context"
	"fmt"
	"io"

	"kat/internal/cli/config"
	"kat/internal/cli/svc"
	"kat/internal/localjudge/report"
	"kat/internal/localjudge/result"
	localsvc "kat/internal/localjudge/service"
	"kat/internal/localjudge/testcase"
	"kat/internal/problem"
	appErr "kat/pkg/errors"
)

// solutionFlags select the problem, solution file and language.
type solutionFlags struct {
	file     string
	language string
}

// prepareLocal resolves everything the local engine needs. All discovery
// errors surface here, before any process is started.
func prepareLocal(sc *svc.ServiceContext, pathArg string, flags solutionFlags, filterExpr string) (localsvc.Request, config.Language, error) {
	dir, problemID, err := problem.ResolveDir(pathArg)
	if err != nil {
		return localsvc.Request{}, config.Language{}, err
	}
	lang, cmdSpec, err := sc.Config.Language(flags.language)
	if err != nil {
		return localsvc.Request{}, lang, err
	}
	solution, err := problem.ResolveSolution(dir, problemID, flags.file, lang.Extensions)
	if err != nil {
		return localsvc.Request{}, lang, err
	}
	filter, err := testcase.ParseFilter(filterExpr)
	if err != nil {
		return localsvc.Request{}, lang, err
	}
	tests, err := testcase.Discover(dir, sc.Config.Tests, filter)
	if err != nil {
		return localsvc.Request{}, lang, err
	}
	return localsvc.Request{
		ProblemID:    problemID,
		ProblemDir:   dir,
		SolutionPath: solution,
		Command:      cmdSpec,
		Tests:        tests,
	}, lang, nil
}

// runLocal runs the engine once and prints the outcome.
func runLocal(ctx context.Context, sc *svc.ServiceContext, req localsvc.Request, printer *report.Printer) (result.Summary, error) {
	sc.Engine.SetReporter(printer)
	summary, err := sc.Engine.Execute(ctx, req)
	if err != nil {
		return summary, err
	}
	printer.Summary(summary)
	return summary, nil
}

func testsFailed(summary result.Summary) error {
	return appErr.Newf(appErr.TestsFailed, "%d of %d tests failed for %s",
		len(summary.Failed()), len(summary.Tests), summary.ProblemID)
}

func narrate(out io.Writer, v report.Verbosity, format string, args ...interface{}) {
	if v < report.Normal {
		return
	}
	fmt.Fprintf(out, format, args...)
}
