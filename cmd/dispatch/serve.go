package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/randomizedcoder/static-vs-dynamic/internal/dispatch"
	"github.com/randomizedcoder/static-vs-dynamic/internal/kennel"
	"github.com/randomizedcoder/static-vs-dynamic/internal/metrics"
	"github.com/randomizedcoder/static-vs-dynamic/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the static and dynamic workloads over HTTP",
		Long: `Starts one HTTP server per dispatch mode, each with its own seeded kennel,
plus a Prometheus /metrics endpoint. Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}

	flags := cmd.Flags()
	flags.String("static-addr", "", "Listen address of the static server")
	flags.String("dynamic-addr", "", "Listen address of the dynamic server")
	flags.String("metrics-addr", "", "Listen address of the metrics endpoint")
	configKey(flags, "static-addr", "static_addr")
	configKey(flags, "dynamic-addr", "dynamic_addr")
	configKey(flags, "metrics-addr", "metrics_addr")

	return cmd
}

func (a *app) serve(ctx context.Context) error {
	m := metrics.New()
	servers := []*server.Server{
		server.New(a.cfg.StaticAddr, dispatch.NewStatic(kennel.Seed()), m),
		server.New(a.cfg.DynamicAddr, dispatch.NewDynamic(kennel.Seed()), m),
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		g.Go(func() error {
			return s.Run(ctx)
		})
	}
	if a.cfg.MetricsAddr != "" {
		g.Go(func() error {
			slog.Info("starting metrics server", "addr", a.cfg.MetricsAddr)
			return server.Serve(ctx, a.cfg.MetricsAddr, m.Handler())
		})
	}

	err := g.Wait()
	slog.Info("servers stopped")
	return err
}
