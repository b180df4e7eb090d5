package command

import (
	"context"
	"path/filepath"
	"time"

	"kat/internal/cli/state"
	"kat/internal/cli/svc"
	"kat/internal/localjudge/report"
	localsvc "kat/internal/localjudge/service"
	"kat/internal/localjudge/testcase"
	"kat/internal/problem"
	"kat/internal/submission/status"
	submitsvc "kat/internal/submission/service"
	"kat/internal/submission/watcher"
	appErr "kat/pkg/errors"
	"kat/pkg/utils/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type submitOptions struct {
	solution  solutionFlags
	testFirst bool
	yes       bool
	open      bool
}

type submitTarget struct {
	problemID string
	solution  string
	language  string
}

func newSubmitCmd(g *globalOptions) *cobra.Command {
	opts := &submitOptions{}
	cmd := &cobra.Command{
		Use:   "submit [path]",
		Short: "Submit a solution and follow the judge until it finishes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(cmd, g, opts, pathArg(args))
		},
	}
	cmd.Flags().StringVarP(&opts.solution.file, "file", "f", "", "solution file (default: match the problem id)")
	cmd.Flags().StringVarP(&opts.solution.language, "language", "l", "", "language from the config (default: default.language)")
	cmd.Flags().BoolVarP(&opts.testFirst, "test-first", "t", false, "run all local tests first and abort when any fails")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "send the submission without asking")
	cmd.Flags().BoolVarP(&opts.open, "open", "o", false, "open the submission in the browser once the judge has finished")
	return cmd
}

func runSubmit(cmd *cobra.Command, g *globalOptions, opts *submitOptions, path string) error {
	ctx, sc, err := g.setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	target, req, err := resolveSubmitTarget(sc, path, opts)
	if err != nil {
		return err
	}
	ctx = logger.WithProblemID(ctx, target.problemID)
	out := cmd.OutOrStdout()
	v := g.verbosity()

	if opts.testFirst {
		narrate(out, v, "Testing the file %s for the problem %s ...\n", baseName(target.solution), target.problemID)
		summary, err := runLocal(ctx, sc, *req, report.NewPrinter(out, v))
		if err != nil {
			return err
		}
		if !summary.AllPassed {
			return appErr.Newf(appErr.TestsFailed, "some tests failed, aborting submission")
		}
	}
	return submitAndWatch(ctx, cmd, sc, v, target, opts.yes, opts.open)
}

// resolveSubmitTarget finds the solution to send. Tests are only discovered
// when they will be run first.
func resolveSubmitTarget(sc *svc.ServiceContext, path string, opts *submitOptions) (submitTarget, *localsvc.Request, error) {
	if opts.testFirst {
		req, lang, err := prepareLocal(sc, path, opts.solution, testcase.FilterAll)
		if err != nil {
			return submitTarget{}, nil, err
		}
		return submitTarget{problemID: req.ProblemID, solution: req.SolutionPath, language: lang.JudgeName}, &req, nil
	}
	dir, problemID, err := problem.ResolveDir(path)
	if err != nil {
		return submitTarget{}, nil, err
	}
	lang, _, err := sc.Config.Language(opts.solution.language)
	if err != nil {
		return submitTarget{}, nil, err
	}
	solution, err := problem.ResolveSolution(dir, problemID, opts.solution.file, lang.Extensions)
	if err != nil {
		return submitTarget{}, nil, err
	}
	return submitTarget{problemID: problemID, solution: solution, language: lang.JudgeName}, nil, nil
}

// submitAndWatch sends the solution, records it for "kat status" and follows
// the judge until a terminal status. With openAfter the submission page is
// opened once the judge has finished, whatever the verdict.
func submitAndWatch(ctx context.Context, cmd *cobra.Command, sc *svc.ServiceContext, v report.Verbosity, target submitTarget, yes, openAfter bool) error {
	out := cmd.OutOrStdout()
	if !yes {
		narrate(out, report.Normal, "Would submit %s for the problem %s as %s. Re-run with --yes to send it.\n",
			baseName(target.solution), target.problemID, target.language)
		return appErr.New(appErr.SubmitNotConfirmed)
	}

	judge, err := sc.Judge(target.problemID, true)
	if err != nil {
		return err
	}
	narrate(out, v, "Submitting problem: %s with the file %s ...\n", target.problemID, baseName(target.solution))
	receipt, err := judge.Send(ctx, submitsvc.Submission{
		ProblemID: target.problemID,
		Language:  target.language,
		FilePath:  target.solution,
	})
	if err != nil {
		return err
	}
	ctx = logger.WithSubmissionID(ctx, receipt.SubmissionID)

	last := state.LastSubmission{
		SubmissionID: receipt.SubmissionID,
		ProblemID:    target.problemID,
		StatusURL:    receipt.StatusURL,
		Language:     target.language,
		File:         target.solution,
		SubmittedAt:  time.Now(),
	}
	if err := state.Save(sc.Config.StatePath, last); err != nil {
		logger.Warn(ctx, "record last submission failed", zap.Error(err))
	}

	narrate(out, v, "Submission %s sent: %s\nWatching submission ...\n\n", receipt.SubmissionID, receipt.StatusURL)
	err = watchSubmission(ctx, cmd, sc, v, receipt.StatusURL)
	if !openAfter || (err != nil && !appErr.Is(err, appErr.TestsFailed)) {
		return err
	}
	if openErr := openURL(receipt.StatusURL); openErr != nil {
		logger.Warn(ctx, "open submission page failed", zap.Error(openErr))
		return appErr.Wrapf(openErr, appErr.InternalError, "website %s could not be opened: %v", receipt.StatusURL, openErr)
	}
	return err
}

// watchSubmission polls until the judge finishes. Anything but Accepted is
// reported as failed tests.
func watchSubmission(ctx context.Context, cmd *cobra.Command, sc *svc.ServiceContext, v report.Verbosity, statusURL string) error {
	out := cmd.OutOrStdout()
	var renderer watcher.Renderer = watcher.NewBarRenderer(out)
	if v < report.Normal {
		renderer = watcher.NewLineRenderer(out)
	}
	res, err := sc.Watcher(renderer).Watch(ctx, statusURL)
	if err != nil {
		return err
	}
	if res.Status.Kind != status.KindAccepted {
		return appErr.Newf(appErr.TestsFailed, "submission finished with status %s", res.Snapshot.RawStatus).
			WithDetail("status_url", statusURL)
	}
	return nil
}

func baseName(path string) string {
	return filepath.Base(path)
}
