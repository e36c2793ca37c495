package main

import (
	"fmt"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/randomizedcoder/static-vs-dynamic/internal/bench"
	"github.com/randomizedcoder/static-vs-dynamic/internal/dispatch"
	"github.com/randomizedcoder/static-vs-dynamic/internal/kennel"
	"github.com/randomizedcoder/static-vs-dynamic/internal/report"
)

const labelRun = "run"

// sinkReport keeps the workload result observable.
var sinkReport dispatch.Report

type runOptions struct {
	mode       string
	save       bool
	cpuProfile string
}

func newRunCmd(a *app) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Sample the workload in process",
		Long: `Warms up each selected workload, times individual invocations and prints
mean, confidence interval and outliers. With a saved baseline, the change
since that baseline is reported too.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.mode, "mode", "both", "Workload to sample: static, dynamic or both")
	flags.BoolVar(&opts.save, "save", false, "Save results to the baseline history")
	flags.StringVar(&opts.cpuProfile, "cpuprofile", "", "Write a CPU profile into this directory")
	flags.Int("samples", 0, "Timed invocations per workload")
	flags.Duration("warmup", 0, "Untimed warm-up per workload")
	flags.Duration("progress", 0, "Interval between progress logs")
	configKey(flags, "samples", "run.samples")
	configKey(flags, "warmup", "run.warmup")
	configKey(flags, "progress", "run.progress")

	return cmd
}

func (a *app) run(cmd *cobra.Command, opts runOptions) error {
	modes, err := selectModes(opts.mode)
	if err != nil {
		return err
	}

	if opts.cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(opts.cpuProfile), profile.Quiet, profile.NoShutdownHook).Stop()
	}

	summaries := make([]report.Summary, 0, len(modes))
	for _, mode := range modes {
		w, err := dispatch.New(mode, kennel.Seed())
		if err != nil {
			return err
		}

		name := summaryName(labelRun, mode)
		samples, err := bench.Run(cmd.Context(), func() { sinkReport = w.Stuff() }, bench.Options{
			Name:     name,
			Warmup:   a.cfg.Run.Warmup,
			Samples:  a.cfg.Run.Samples,
			Progress: a.cfg.Run.Progress,
		})
		if err != nil {
			return err
		}

		s, err := report.Summarize(name, samples)
		if err != nil {
			return fmt.Errorf("summarize %s: %w", name, err)
		}
		summaries = append(summaries, s)
	}

	return a.publish(cmd.OutOrStdout(), labelRun, summaries, opts.save)
}
