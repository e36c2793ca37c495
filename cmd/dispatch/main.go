// Command dispatch measures the cost of static versus dynamic dispatch over
// the same kennel workload.
//
//	dispatch run   --mode both --samples 1000   in-process sampling
//	dispatch serve                               static and dynamic HTTP servers plus /metrics
//	dispatch load  --workers 8 --duration 30s    drive both servers and compare
//
// Results can be saved as a baseline and later runs are compared against it.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
