// Package load drives an HTTP endpoint from several concurrent workers and
// collects per-request latencies.
//
// Workers stop on a shared cancel.Flag, raised by whichever comes first: the
// duration elapsing, the request budget running out, or ctx being cancelled.
// Latencies flow through a sharded MPSC ring to a single consumer.
package load

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	ring "github.com/randomizedcoder/go-lock-free-ring"
	"golang.org/x/sync/errgroup"

	"github.com/randomizedcoder/static-vs-dynamic/internal/cancel"
	"github.com/randomizedcoder/static-vs-dynamic/internal/tick"
)

// Sample ring geometry. Workers are spread across shards by id.
const (
	ringShards   = 16
	ringCapacity = ringShards * 1024
)

// ErrNoLimit is returned when neither a duration nor a request budget is set.
var ErrNoLimit = errors.New("load: duration or request budget required")

// Options controls a load run.
type Options struct {
	// URL receives GET requests.
	URL string

	// Workers is the number of concurrent request loops. Defaults to 1.
	Workers int

	// Duration bounds the run in time. Zero means no time bound.
	Duration time.Duration

	// Requests bounds the run in total requests. Zero means no budget.
	Requests int

	// Progress is the interval between progress logs. Zero disables them.
	Progress time.Duration

	// Client issues requests. Defaults to a client with keep-alives sized
	// for Workers.
	Client *http.Client
}

// Result holds the outcome of a load run.
type Result struct {
	// Samples are latencies of successful (2xx) requests, in arrival order
	// at the consumer.
	Samples []time.Duration

	// Errors counts transport failures and non-2xx responses.
	Errors int64

	// Elapsed is the wall time from the first request to the last worker
	// returning.
	Elapsed time.Duration
}

// Throughput returns successful requests per second.
func (r Result) Throughput() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(len(r.Samples)) / r.Elapsed.Seconds()
}

// Run generates load against opts.URL until a stop condition fires.
//
// A cancelled ctx ends the run early; the samples gathered so far are
// returned together with the wrapped context error.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.URL == "" {
		return Result{}, errors.New("load: url required")
	}
	if opts.Duration <= 0 && opts.Requests <= 0 {
		return Result{}, ErrNoLimit
	}
	workers := max(opts.Workers, 1)
	client := opts.Client
	if client == nil {
		client = &http.Client{
			Timeout:   30 * time.Second,
			Transport: &http.Transport{MaxIdleConnsPerHost: workers},
		}
	}

	r, err := ring.NewShardedRing(ringCapacity, ringShards)
	if err != nil {
		return Result{}, fmt.Errorf("load: create ring: %w", err)
	}

	stop, detach := cancel.WithContext(ctx)
	defer detach()
	if opts.Duration > 0 {
		timer := time.AfterFunc(opts.Duration, stop.Cancel)
		defer timer.Stop()
	}

	var (
		issued   atomic.Int64
		ok       atomic.Int64
		failures atomic.Int64
		logOnce  sync.Once
		finished atomic.Bool
	)

	samples := make([]time.Duration, 0, ringCapacity)
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		for {
			if v, got := r.TryRead(); got {
				samples = append(samples, v.(time.Duration))
				continue
			}
			if finished.Load() {
				// producers are gone; take what is left
				for v, got := r.TryRead(); got; v, got = r.TryRead() {
					samples = append(samples, v.(time.Duration))
				}
				return
			}
			runtime.Gosched()
		}
	}()

	progress := tick.New(opts.Progress)
	start := time.Now()

	// in-flight requests finish after ctx is cancelled; the flag stops the loop
	reqCtx := context.WithoutCancel(ctx)

	var g errgroup.Group
	for id := range workers {
		producer := uint64(id)
		g.Go(func() error {
			for !stop.Done() {
				if opts.Requests > 0 && issued.Add(1) > int64(opts.Requests) {
					stop.Cancel()
					return nil
				}

				latency, err := get(reqCtx, client, opts.URL)
				if err != nil {
					failures.Add(1)
					logOnce.Do(func() {
						slog.Warn("request failed", "url", opts.URL, "worker", producer, "error", err)
					})
					continue
				}

				for !r.Write(producer, latency) {
					runtime.Gosched()
				}
				n := ok.Add(1)

				if progress.Tick() {
					elapsed := progress.Elapsed()
					slog.Info("load progress",
						"url", opts.URL,
						"requests", n,
						"errors", failures.Load(),
						"rps", float64(n)/elapsed.Seconds(),
					)
				}
			}
			return nil
		})
	}

	werr := g.Wait()
	elapsed := time.Since(start)
	finished.Store(true)
	<-consumerDone

	res := Result{
		Samples: samples,
		Errors:  failures.Load(),
		Elapsed: elapsed,
	}
	slog.Debug("load complete", "url", opts.URL, "ok", len(samples), "errors", res.Errors, "elapsed", elapsed)

	if werr != nil {
		return res, fmt.Errorf("load: %w", werr)
	}
	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("load: interrupted: %w", err)
	}
	return res, nil
}

// get issues one GET and returns its latency. Non-2xx statuses are errors.
func get(ctx context.Context, client *http.Client, url string) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	// drain so the connection is reused
	_, err = io.Copy(io.Discard, resp.Body)
	latency := time.Since(start)
	resp.Body.Close()

	if err != nil {
		return 0, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return latency, nil
}
