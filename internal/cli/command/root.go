// Package command defines the kat command tree.
package command

import (
	"context"
	"io"

	"kat/internal/cli/config"
	"kat/internal/cli/svc"
	"kat/internal/localjudge/report"
	appErr "kat/pkg/errors"
	"kat/pkg/utils/logger"

	"github.com/spf13/cobra"
)

const envFile = ".env"

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	verbose    bool
	quiet      bool
}

func (o *globalOptions) verbosity() report.Verbosity {
	return report.ParseVerbosity(o.quiet, o.verbose)
}

// NewRootCmd builds the kat command tree writing to stdout and stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "kat",
		Short:         "Test and submit Kattis solutions from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file path (default $KAT_CONFIG or ~/.kat/config.yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "show expected and actual output of failing tests and debug logs")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress progress and failure narration")

	root.AddCommand(newTestCmd(opts))
	root.AddCommand(newSubmitCmd(opts))
	root.AddCommand(newWatchCmd(opts))
	root.AddCommand(newGetCmd(opts))
	root.AddCommand(newStatusCmd(opts))
	root.AddCommand(newOpenCmd(opts))
	root.AddCommand(newInitCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}

// configFile is --config, then $KAT_CONFIG, then ~/.kat/config.yaml.
func (o *globalOptions) configFile() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return config.DefaultPath()
}

// setup loads configuration, initializes logging and wires services.
func (o *globalOptions) setup(cmd *cobra.Command) (context.Context, *svc.ServiceContext, error) {
	if err := config.LoadEnv(envFile); err != nil {
		return nil, nil, err
	}
	path, err := o.configFile()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}
	if err := logger.Init(cfg.Log); err != nil {
		return nil, nil, appErr.Wrapf(err, appErr.ConfigInvalid, "init logger failed: %v", err)
	}

	sc, err := svc.NewServiceContext(cfg)
	if err != nil {
		return nil, nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return sc.WithRunID(ctx), sc, nil
}
