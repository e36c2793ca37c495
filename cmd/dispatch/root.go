package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/randomizedcoder/static-vs-dynamic/internal/config"
	"github.com/randomizedcoder/static-vs-dynamic/internal/telemetry"
)

// app carries state shared by every subcommand.
type app struct {
	v        *viper.Viper
	cfgFile  string
	cfg      *config.Config
	closeLog func() error
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{
		v:        viper.New(),
		closeLog: func() error { return nil },
	}

	root := &cobra.Command{
		Use:   "dispatch",
		Short: "Compare static and dynamic dispatch over an identical workload",
		Long: `dispatch runs the same kennel workload through a statically dispatched
and a dynamically dispatched implementation, and reports timing statistics
for each. Results can be saved as a baseline for later comparison.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./dispatch.yaml)")
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.String("log-file", "", "Also write JSON logs to this file")
	flags.String("baseline", "", "Baseline history file")
	flags.Float64("noise", 0, "Changes within this fraction are reported as noise")
	configKey(flags, "verbose", "verbose")
	configKey(flags, "log-file", "log_file")
	configKey(flags, "baseline", "baseline.file")
	configKey(flags, "noise", "baseline.noise")

	root.AddCommand(newRunCmd(a), newServeCmd(a), newLoadCmd(a))
	return root, a
}

// configKeyAnnotation marks a flag as an override for a config key.
const configKeyAnnotation = "dispatch_config_key"

// configKey marks flag name as the override for key. Several subcommands
// may override the same key; only the executing command's flags are bound.
func configKey(fs *pflag.FlagSet, name, key string) {
	if err := fs.SetAnnotation(name, configKeyAnnotation, []string{key}); err != nil {
		panic(fmt.Sprintf("annotate flag %s: %v", name, err))
	}
}

// bindFlags binds cmd's annotated flags, inherited ones included. Unset
// flags leave the key to env, file or default.
func (a *app) bindFlags(cmd *cobra.Command) error {
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		keys := f.Annotations[configKeyAnnotation]
		if len(keys) == 0 || err != nil {
			return
		}
		if berr := a.v.BindPFlag(keys[0], f); berr != nil {
			err = fmt.Errorf("bind flag %s: %w", f.Name, berr)
		}
	})
	return err
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.bindFlags(cmd); err != nil {
		return err
	}
	if err := config.Init(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.FromViper(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	closeLog, err := telemetry.InitLogger(cfg.Verbose, cfg.LogFile)
	if err != nil {
		return err
	}
	a.closeLog = closeLog

	slog.Debug("config resolved", "command", cmd.Name(), "static_addr", cfg.StaticAddr, "dynamic_addr", cfg.DynamicAddr)
	return nil
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root, a := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if cerr := a.closeLog(); cerr != nil {
		fmt.Fprintf(stderr, "Error: close log file: %v\n", cerr)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
