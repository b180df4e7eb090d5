package command

import (
	"kat/internal/problem"
	submitsvc "kat/internal/submission/service"
	appErr "kat/pkg/errors"
	"kat/pkg/utils/logger"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// openURL is replaced in tests.
var openURL = browser.OpenURL

func newOpenCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "open [problem-id]",
		Short: "Open a problem in the browser, by default the one in the current directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, sc, err := g.setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			var problemID string
			if len(args) == 1 {
				problemID = args[0]
			} else if _, problemID, err = problem.ResolveDir("."); err != nil {
				return err
			}
			if err := submitsvc.ValidateProblemID(problemID); err != nil {
				return err
			}

			judge, err := sc.Judge(problemID, false)
			if err != nil {
				return err
			}
			url := judge.Site().ProblemURL(problemID)
			narrate(cmd.OutOrStdout(), g.verbosity(), "Opening %s\n", url)
			if err := openURL(url); err != nil {
				logger.Debug(ctx, "open browser failed", zap.Error(err))
				return appErr.Wrapf(err, appErr.InternalError, "website %s could not be opened: %v", url, err)
			}
			return nil
		},
	}
}
