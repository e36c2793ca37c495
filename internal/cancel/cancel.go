// Package cancel provides a stop flag for measurement loops.
//
// A Flag is polled between samples, where a context's Done channel would
// cost a select on every iteration. Bind ties a Flag to a context so that
// callers still cancel through context.Context.
package cancel

import (
	"context"
	"sync/atomic"
)

// Flag signals that a loop should stop.
//
// Safe for concurrent use: any number of goroutines may call Done while
// another calls Cancel.
type Flag struct {
	done atomic.Bool
}

// Done returns true once Cancel has been called.
//
// This performs a single atomic load.
func (f *Flag) Done() bool {
	return f.done.Load()
}

// Cancel raises the flag. Safe to call multiple times.
func (f *Flag) Cancel() {
	f.done.Store(true)
}

// Bind raises f when ctx is done. The returned function detaches f from
// ctx and reports whether it did so before ctx was done.
func Bind(ctx context.Context, f *Flag) (stop func() bool) {
	return context.AfterFunc(ctx, f.Cancel)
}

// WithContext returns a new Flag bound to ctx.
func WithContext(ctx context.Context) (*Flag, func() bool) {
	f := &Flag{}
	return f, Bind(ctx, f)
}
