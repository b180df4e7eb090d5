package command

import (
	"fmt"

	"kat/internal/filewatch"
	"kat/internal/localjudge/report"
	"kat/internal/localjudge/result"
	"kat/internal/localjudge/testcase"
	"kat/pkg/utils/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type watchOptions struct {
	solution solutionFlags
	tests    string
}

func newWatchCmd(g *globalOptions) *cobra.Command {
	opts := &watchOptions{}
	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-run the local tests every time the solution changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, g, opts, pathArg(args))
		},
	}
	cmd.Flags().StringVarP(&opts.solution.file, "file", "f", "", "solution file (default: match the problem id)")
	cmd.Flags().StringVarP(&opts.solution.language, "language", "l", "", "language from the config (default: default.language)")
	cmd.Flags().StringVarP(&opts.tests, "tests", "t", testcase.FilterAll, `tests to run, e.g. "1,3-5"`)
	return cmd
}

// runWatch runs the file watcher and the test loop side by side until the
// command context is cancelled (Ctrl-C) or the watcher fails.
func runWatch(cmd *cobra.Command, g *globalOptions, opts *watchOptions, path string) error {
	ctx, sc, err := g.setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	req, _, err := prepareLocal(sc, path, opts.solution, opts.tests)
	if err != nil {
		return err
	}
	ctx = logger.WithProblemID(ctx, req.ProblemID)
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	v := g.verbosity()
	printer := report.NewPrinter(out, v)
	sc.Engine.SetReporter(printer)

	fw, err := filewatch.New(req.SolutionPath)
	if err != nil {
		return err
	}

	narrate(out, v, "Watching %s for the problem %s, press Ctrl+C to stop\n", baseName(req.SolutionPath), req.ProblemID)
	printer.Separator()

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return fw.Run(gctx)
	})
	group.Go(func() error {
		return sc.Engine.Watch(gctx, req, fw.Changes(), func(summary result.Summary, err error) {
			if err != nil {
				if gctx.Err() != nil {
					return
				}
				logger.Info(gctx, "watch run failed", zap.Error(err))
				fmt.Fprintf(errOut, "%v\n", err)
			} else {
				printer.Summary(summary)
				if summary.AllPassed {
					narrate(out, v, "You can try to submit your solution using: kat submit %s\n", req.ProblemID)
				}
			}
			printer.Separator()
		})
	})
	return group.Wait()
}
