package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randomizedcoder/static-vs-dynamic/internal/dispatch"
	"github.com/randomizedcoder/static-vs-dynamic/internal/load"
	"github.com/randomizedcoder/static-vs-dynamic/internal/report"
)

const labelLoad = "load"

type loadOptions struct {
	mode string
	save bool
}

func newLoadCmd(a *app) *cobra.Command {
	var opts loadOptions

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Drive the running servers and compare end-to-end latency",
		Long: `Sends GET /stuff to the static and dynamic servers started by
'dispatch serve', one mode after the other, and reports latency statistics
for successful requests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.mode, "mode", "both", "Server to drive: static, dynamic or both")
	flags.BoolVar(&opts.save, "save", false, "Save results to the baseline history")
	flags.Int("workers", 0, "Concurrent request loops")
	flags.Duration("duration", 0, "Time spent on each server")
	flags.Int("requests", 0, "Request budget per server, 0 for none")
	flags.Duration("progress", 0, "Interval between progress logs")
	flags.String("static-addr", "", "Address of the static server")
	flags.String("dynamic-addr", "", "Address of the dynamic server")
	configKey(flags, "workers", "load.workers")
	configKey(flags, "duration", "load.duration")
	configKey(flags, "requests", "load.requests")
	configKey(flags, "progress", "load.progress")
	configKey(flags, "static-addr", "static_addr")
	configKey(flags, "dynamic-addr", "dynamic_addr")

	return cmd
}

func (a *app) addr(mode dispatch.Mode) string {
	if mode == dispatch.ModeStatic {
		return a.cfg.StaticAddr
	}
	return a.cfg.DynamicAddr
}

func (a *app) load(cmd *cobra.Command, opts loadOptions) error {
	modes, err := selectModes(opts.mode)
	if err != nil {
		return err
	}

	summaries := make([]report.Summary, 0, len(modes))
	for _, mode := range modes {
		url := "http://" + a.addr(mode) + "/stuff"
		name := summaryName(labelLoad, mode)

		res, err := load.Run(cmd.Context(), load.Options{
			URL:      url,
			Workers:  a.cfg.Load.Workers,
			Duration: a.cfg.Load.Duration,
			Requests: a.cfg.Load.Requests,
			Progress: a.cfg.Load.Progress,
		})
		if err != nil {
			return err
		}
		slog.Info("load finished", "name", name, "ok", len(res.Samples), "errors", res.Errors, "rps", res.Throughput())

		s, err := report.Summarize(name, res.Samples)
		if err != nil {
			return fmt.Errorf("summarize %s (%d errors): %w", name, res.Errors, err)
		}
		summaries = append(summaries, s)

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d ok, %d errors, %.1f req/s\n", name, len(res.Samples), res.Errors, res.Throughput())
	}
	fmt.Fprintln(cmd.OutOrStdout())

	return a.publish(cmd.OutOrStdout(), labelLoad, summaries, opts.save)
}
