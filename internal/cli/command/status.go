package command

import (
	"kat/internal/cli/state"
	appErr "kat/pkg/errors"
	"kat/pkg/utils/logger"

	"github.com/spf13/cobra"
)

func newStatusCmd(g *globalOptions) *cobra.Command {
	var forget bool
	cmd := &cobra.Command{
		Use:   "status [submission-id]",
		Short: "Follow a submission, by default the last one sent",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, sc, err := g.setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if forget {
				if err := state.Clear(sc.Config.StatePath); err != nil {
					return err
				}
				narrate(cmd.OutOrStdout(), g.verbosity(), "Forgot the last submission\n")
				return nil
			}

			problemID := ""
			statusURL := ""
			if len(args) == 1 {
				judge, err := sc.Judge("", true)
				if err != nil {
					return err
				}
				statusURL = judge.Site().SubmissionURL(args[0])
				ctx = logger.WithSubmissionID(ctx, args[0])
			} else {
				last, err := state.Load(sc.Config.StatePath)
				if err != nil {
					return err
				}
				if last.Empty() {
					return appErr.New(appErr.NotFound).WithMessage("no submission recorded yet, pass a submission id")
				}
				problemID = last.ProblemID
				statusURL = last.StatusURL
				ctx = logger.WithSubmissionID(ctx, last.SubmissionID)
			}

			judge, err := sc.Judge(problemID, true)
			if err != nil {
				return err
			}
			if err := judge.Login(ctx); err != nil {
				return err
			}
			return watchSubmission(ctx, cmd, sc, g.verbosity(), statusURL)
		},
	}
	cmd.Flags().BoolVar(&forget, "clear", false, "forget the last submission instead of watching it")
	return cmd
}
