package command

import (
	"os"
	"path/filepath"

	"kat/internal/cli/config"
	"kat/internal/localjudge/report"
	appErr "kat/pkg/errors"

	"github.com/spf13/cobra"
)

func newInitCmd(g *globalOptions) *cobra.Command {
	var overwrite bool
	cmd := &cobra.Command{
		Use:       "init [all|config]",
		Short:     "Write a sample config and language templates",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{config.SampleAll, config.SampleConfig},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnv(envFile); err != nil {
				return err
			}
			path, err := g.configFile()
			if err != nil {
				return err
			}
			choice := config.SampleAll
			if len(args) == 1 {
				choice = args[0]
			}

			dir := filepath.Dir(path)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return appErr.Wrapf(err, appErr.IOFailed, "create config directory failed: %v", err)
			}
			res, err := config.WriteSample(dir, choice, overwrite)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			v := g.verbosity()
			for _, p := range res.Skipped {
				narrate(out, v, "Kept existing %s, re-run with --yes to overwrite it\n", p)
			}
			if len(res.Written) > 0 {
				narrate(out, v, "Successfully initialised the config files in %s, make sure to put your kattisrc file in the same directory!\n", dir)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&overwrite, "yes", "y", false, "overwrite existing config files")
	return cmd
}

func newConfigCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the kat configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "locate",
		Short: "Print where the configuration files are",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnv(envFile); err != nil {
				return err
			}
			path, err := g.configFile()
			if err != nil {
				return err
			}
			loc := config.Locate(path)
			out := cmd.OutOrStdout()
			narrate(out, report.Normal, "Your config directory is located at: %s\n", loc.Dir)
			narrate(out, report.Normal, "\t- Config location: %s\n", loc.Config)
			narrate(out, report.Normal, "\t- Kattisrc location: %s\n", loc.Kattisrc)
			narrate(out, report.Normal, "\t- Templates location: %s\n", loc.Templates)
			narrate(out, report.Normal, "\t- Last submission record: %s\n", loc.State)
			return nil
		},
	})
	return cmd
}
