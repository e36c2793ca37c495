package config

import "fmt"

// Validate rejects settings no run could honour.
func (c *Config) Validate() error {
	switch {
	case c.StaticAddr == "" || c.DynamicAddr == "":
		return fmt.Errorf("%w: static_addr and dynamic_addr are required", ErrInvalid)
	case c.StaticAddr == c.DynamicAddr:
		return fmt.Errorf("%w: static_addr and dynamic_addr must differ (both %q)", ErrInvalid, c.StaticAddr)
	case c.Run.Samples < 2:
		return fmt.Errorf("%w: run.samples must be at least 2, got %d", ErrInvalid, c.Run.Samples)
	case c.Run.Warmup < 0:
		return fmt.Errorf("%w: run.warmup must not be negative", ErrInvalid)
	case c.Run.Progress < 0 || c.Load.Progress < 0:
		return fmt.Errorf("%w: run.progress and load.progress must not be negative", ErrInvalid)
	case c.Load.Workers < 1:
		return fmt.Errorf("%w: load.workers must be at least 1, got %d", ErrInvalid, c.Load.Workers)
	case c.Load.Duration <= 0 && c.Load.Requests <= 0:
		return fmt.Errorf("%w: one of load.duration or load.requests must be positive", ErrInvalid)
	case c.Load.Requests < 0:
		return fmt.Errorf("%w: load.requests must not be negative", ErrInvalid)
	case c.Baseline.Noise < 0 || c.Baseline.Noise >= 1:
		return fmt.Errorf("%w: baseline.noise must be in [0, 1), got %g", ErrInvalid, c.Baseline.Noise)
	}
	return nil
}
