package report

import "math"

// Verdict classifies a Change.
type Verdict int

const (
	NoChange Verdict = iota
	WithinNoise
	Improved
	Regressed
)

func (v Verdict) String() string {
	switch v {
	case NoChange:
		return "No change in performance detected."
	case WithinNoise:
		return "Change within noise threshold."
	case Improved:
		return "Performance has improved."
	case Regressed:
		return "Performance has regressed."
	default:
		return "Unknown."
	}
}

// Change is the relative difference of a summary against a baseline.
// Low, Mid and High are fractions, e.g. 0.05 for +5%.
type Change struct {
	Low     float64
	Mid     float64
	High    float64
	Verdict Verdict
}

// Compare computes the change of current relative to baseline.
//
// The interval compares the two confidence intervals at their extremes.
// A change is significant only when that interval excludes zero, and is
// reported as noise when the mean moved by no more than noise.
func Compare(baseline, current Summary, noise float64) Change {
	base := float64(baseline.Mean.Mid)
	if base <= 0 {
		return Change{Verdict: NoChange}
	}

	c := Change{
		Low:  (float64(current.Mean.Low) - float64(baseline.Mean.High)) / base,
		Mid:  (float64(current.Mean.Mid) - base) / base,
		High: (float64(current.Mean.High) - float64(baseline.Mean.Low)) / base,
	}

	switch {
	case c.Low <= 0 && c.High >= 0:
		c.Verdict = NoChange
	case math.Abs(c.Mid) <= noise:
		c.Verdict = WithinNoise
	case c.Mid < 0:
		c.Verdict = Improved
	default:
		c.Verdict = Regressed
	}
	return c
}
