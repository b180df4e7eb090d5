package command

import (
	"kat/internal/localjudge/report"
	"kat/internal/localjudge/testcase"
	"kat/pkg/utils/logger"

	"github.com/spf13/cobra"
)

type testOptions struct {
	solution solutionFlags
	tests    string
	submit   bool
	yes      bool
}

func newTestCmd(g *globalOptions) *cobra.Command {
	opts := &testOptions{}
	cmd := &cobra.Command{
		Use:   "test [path]",
		Short: "Run a solution against its local tests",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(cmd, g, opts, pathArg(args))
		},
	}
	cmd.Flags().StringVarP(&opts.solution.file, "file", "f", "", "solution file (default: match the problem id)")
	cmd.Flags().StringVarP(&opts.solution.language, "language", "l", "", "language from the config (default: default.language)")
	cmd.Flags().StringVarP(&opts.tests, "tests", "t", testcase.FilterAll, `tests to run, e.g. "1,3-5"`)
	cmd.Flags().BoolVar(&opts.submit, "submit", false, "submit when all tests pass")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "send the submission without asking")
	return cmd
}

func runTest(cmd *cobra.Command, g *globalOptions, opts *testOptions, path string) error {
	ctx, sc, err := g.setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	req, lang, err := prepareLocal(sc, path, opts.solution, opts.tests)
	if err != nil {
		return err
	}
	ctx = logger.WithProblemID(ctx, req.ProblemID)
	out := cmd.OutOrStdout()
	v := g.verbosity()
	printer := report.NewPrinter(out, v)

	narrate(out, v, "Testing the file %s for the problem %s ...\n", baseName(req.SolutionPath), req.ProblemID)
	summary, err := runLocal(ctx, sc, req, printer)
	if err != nil {
		return err
	}
	if !summary.AllPassed {
		return testsFailed(summary)
	}
	if !opts.submit {
		return nil
	}
	return submitAndWatch(ctx, cmd, sc, v, submitTarget{
		problemID: req.ProblemID,
		solution:  req.SolutionPath,
		language:  lang.JudgeName,
	}, opts.yes, false)
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
