// Package bench samples the latency of a zero-argument callable in
// process.
//
// Run is a small, single-goroutine harness for the dispatch CLI: warm up
// for a fixed time, then time a fixed number of individual calls. Summary
// statistics are left to package report.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/randomizedcoder/static-vs-dynamic/internal/cancel"
	"github.com/randomizedcoder/static-vs-dynamic/internal/tick"
)

// Options controls a sampling run.
type Options struct {
	// Name labels progress logs.
	Name string

	// Warmup is how long fn is called, untimed, before sampling starts.
	Warmup time.Duration

	// Samples is the number of timed calls. Must be positive.
	Samples int

	// Progress is the interval between progress logs. Zero disables them.
	Progress time.Duration
}

// Run warms up and then times opts.Samples calls of fn.
//
// Cancelling ctx stops the run between calls; the error wraps ctx.Err().
func Run(ctx context.Context, fn func(), opts Options) ([]time.Duration, error) {
	if opts.Samples < 1 {
		return nil, fmt.Errorf("bench: samples must be positive, got %d", opts.Samples)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("bench: %s not started: %w", opts.Name, err)
	}

	stopped, detach := cancel.WithContext(ctx)
	defer detach()

	warmups := 0
	for deadline := time.Now().Add(opts.Warmup); time.Now().Before(deadline); warmups++ {
		if stopped.Done() {
			return nil, fmt.Errorf("bench: %s warm-up interrupted: %w", opts.Name, context.Cause(ctx))
		}
		fn()
	}
	slog.Debug("warm-up complete", "name", opts.Name, "calls", warmups, "duration", opts.Warmup)

	progress := tick.New(opts.Progress)
	samples := make([]time.Duration, opts.Samples)
	for i := range samples {
		if stopped.Done() {
			return nil, fmt.Errorf("bench: %s interrupted after %d samples: %w", opts.Name, i, context.Cause(ctx))
		}
		if progress.Tick() {
			slog.Info("sampling", "name", opts.Name, "done", i, "total", opts.Samples, "elapsed", progress.Elapsed().Round(time.Millisecond))
		}

		start := time.Now()
		fn()
		samples[i] = time.Since(start)
	}

	return samples, nil
}
