// Package report summarises timing samples and renders them as text.
//
// The output mirrors the familiar statistical-benchmark layout: a mean
// with its confidence interval as [low mid high], an optional change
// against a stored baseline, and outliers bucketed by direction and
// severity. The arithmetic comes from github.com/montanaflynn/stats.
package report

import (
	"errors"
	"math"
	"time"

	"github.com/montanaflynn/stats"
)

// ErrNoSamples is returned when there is nothing to summarise.
var ErrNoSamples = errors.New("report: no samples")

// z95 is the two-sided 95% normal quantile.
const z95 = 1.959964

// Tukey fences, in units of the interquartile range.
const (
	mildFence   = 1.5
	severeFence = 3.0
)

// minOutlierSamples is the smallest sample set quartiles are computed for.
const minOutlierSamples = 4

// Estimate is a point estimate with its confidence interval.
type Estimate struct {
	Low  time.Duration `json:"low"`
	Mid  time.Duration `json:"mid"`
	High time.Duration `json:"high"`
}

// Outliers counts samples outside the Tukey fences.
type Outliers struct {
	LowSevere  int `json:"low_severe"`
	LowMild    int `json:"low_mild"`
	HighMild   int `json:"high_mild"`
	HighSevere int `json:"high_severe"`
}

// Total returns the number of outliers in every bucket.
func (o Outliers) Total() int {
	return o.LowSevere + o.LowMild + o.HighMild + o.HighSevere
}

// Summary describes one sample set.
type Summary struct {
	Name     string        `json:"name"`
	Samples  int           `json:"samples"`
	Mean     Estimate      `json:"mean"`
	Median   time.Duration `json:"median"`
	StdDev   time.Duration `json:"std_dev"`
	Min      time.Duration `json:"min"`
	Max      time.Duration `json:"max"`
	Outliers Outliers      `json:"outliers"`
}

// Summarize computes the Summary of samples.
func Summarize(name string, samples []time.Duration) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, ErrNoSamples
	}

	data := make(stats.Float64Data, len(samples))
	for i, s := range samples {
		data[i] = float64(s)
	}

	mean, err := data.Mean()
	if err != nil {
		return Summary{}, err
	}
	median, err := data.Median()
	if err != nil {
		return Summary{}, err
	}
	lo, err := data.Min()
	if err != nil {
		return Summary{}, err
	}
	hi, err := data.Max()
	if err != nil {
		return Summary{}, err
	}

	var sd float64
	if len(data) > 1 {
		if sd, err = data.StandardDeviationSample(); err != nil {
			return Summary{}, err
		}
	}
	half := z95 * sd / math.Sqrt(float64(len(data)))

	outliers, err := classify(data)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Name:    name,
		Samples: len(samples),
		Mean: Estimate{
			Low:  toDuration(mean - half),
			Mid:  toDuration(mean),
			High: toDuration(mean + half),
		},
		Median:   toDuration(median),
		StdDev:   toDuration(sd),
		Min:      toDuration(lo),
		Max:      toDuration(hi),
		Outliers: outliers,
	}, nil
}

func classify(data stats.Float64Data) (Outliers, error) {
	var o Outliers
	if len(data) < minOutlierSamples {
		return o, nil
	}

	q, err := stats.Quartile(data)
	if err != nil {
		return o, err
	}
	iqr := q.Q3 - q.Q1

	for _, v := range data {
		switch {
		case v < q.Q1-severeFence*iqr:
			o.LowSevere++
		case v < q.Q1-mildFence*iqr:
			o.LowMild++
		case v > q.Q3+severeFence*iqr:
			o.HighSevere++
		case v > q.Q3+mildFence*iqr:
			o.HighMild++
		}
	}
	return o, nil
}

func toDuration(ns float64) time.Duration {
	if ns < 0 {
		ns = 0
	}
	return time.Duration(math.Round(ns))
}

// Ratio returns how many times slower b's mean is than a's.
func Ratio(a, b Summary) float64 {
	if a.Mean.Mid <= 0 {
		return math.NaN()
	}
	return float64(b.Mean.Mid) / float64(a.Mean.Mid)
}
