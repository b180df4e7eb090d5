package command

import (
	"os"
	"path/filepath"

	"kat/internal/problem"
	submitsvc "kat/internal/submission/service"
	appErr "kat/pkg/errors"
	"kat/pkg/utils/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGetCmd(g *globalOptions) *cobra.Command {
	var language, parent string
	cmd := &cobra.Command{
		Use:   "get <problem-id>",
		Short: "Create a problem directory with sample tests and a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, sc, err := g.setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			problemID := args[0]
			if err := submitsvc.ValidateProblemID(problemID); err != nil {
				return err
			}
			ctx = logger.WithProblemID(ctx, problemID)
			out := cmd.OutOrStdout()
			v := g.verbosity()

			templatePath := ""
			lang, _, err := sc.Config.Language(language)
			switch {
			case err == nil && lang.Template != "":
				templatePath = filepath.Join(sc.Config.TemplateDir, lang.Template)
			case err != nil && language != "":
				return err
			case err != nil:
				logger.Debug(ctx, "no default language, skipping template", zap.Error(err))
			}

			judge, err := sc.Judge(problemID, false)
			if err != nil {
				return err
			}
			if parent == "" {
				if parent, err = os.Getwd(); err != nil {
					return appErr.Wrapf(err, appErr.IOFailed, "get working directory failed: %v", err)
				}
			}

			res, err := problem.Setup(ctx, judge, sc.Client, problem.SetupRequest{
				ProblemID:    problemID,
				ParentDir:    parent,
				TestDir:      sc.Config.Tests.Dir,
				SamplesURL:   judge.Site().SamplesURL(problemID),
				TemplatePath: templatePath,
			})
			if appErr.Is(err, appErr.ProblemAlreadyExists) {
				narrate(out, v, "Looks like the problem %s has already been fetched!\n", problemID)
				return nil
			}
			if err != nil {
				return err
			}
			if res.Samples == 0 {
				narrate(out, v, "It seems that this problem does not have any test files!\n")
			}
			narrate(out, v, "Successfully initialised the problem %s in %s\n", problemID, res.Dir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", "", "language whose template is copied (default: default.language)")
	cmd.Flags().StringVarP(&parent, "path", "p", "", "directory to create the problem in (default: the working directory)")
	return cmd
}
