package stats

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Copyright © 2025 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// TimeSummary describes a set of block solve-time samples.
type TimeSummary struct {
	Count          int
	Mean           float64
	Median         float64
	StdDev         float64
	CV             float64 /* coefficient of variation: stddev / mean */
	MeanOverMedian float64
	Min, Max       float64
}

// SummarizeTimes computes summary statistics over solve-time samples. An
// empty sample set is an error; downstream statistics would divide by zero.
func SummarizeTimes(samples []float64) (TimeSummary, error) {
	if len(samples) == 0 {
		return TimeSummary{}, errors.New("no block-time samples")
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	mean := stat.Mean(sorted, nil)
	median := stat.Quantile(0.5, stat.Empirical, sorted, nil)
	sd := popStdDev(sorted, mean)
	return TimeSummary{
		Count:          len(sorted),
		Mean:           mean,
		Median:         median,
		StdDev:         sd,
		CV:             sd / mean,
		MeanOverMedian: mean / median,
		Min:            sorted[0],
		Max:            sorted[len(sorted)-1],
	}, nil
}

/* Population standard deviation, matching the miner team's original
summaries rather than the Bessel-corrected sample estimate. */
func popStdDev(samples []float64, mean float64) float64 {
	var ss float64
	for _, v := range samples {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(samples)))
}

// ExponentialFit is a shifted exponential fitted by MLE: Loc is the sample
// minimum and Scale the mean excess over it.
type ExponentialFit struct {
	Loc, Scale float64
}

// FitExponential fits a shifted exponential to the samples.
func FitExponential(samples []float64) (ExponentialFit, error) {
	sum, err := SummarizeTimes(samples)
	if err != nil {
		return ExponentialFit{}, err
	}
	scale := sum.Mean - sum.Min
	if scale <= 0 {
		return ExponentialFit{}, errors.New("degenerate samples: zero spread")
	}
	return ExponentialFit{Loc: sum.Min, Scale: scale}, nil
}

// PDF evaluates the fitted density at x.
func (f ExponentialFit) PDF(x float64) float64 {
	if x < f.Loc {
		return 0
	}
	return distuv.Exponential{Rate: 1 / f.Scale}.Prob(x - f.Loc)
}

// LogNormalFit is a two-parameter log-normal (location fixed at zero):
// Shape is the standard deviation of the log samples and Scale is
// exp(mean of the log samples).
type LogNormalFit struct {
	Shape, Scale float64
}

// FitLogNormal fits a log-normal to strictly positive samples.
func FitLogNormal(samples []float64) (LogNormalFit, error) {
	if len(samples) == 0 {
		return LogNormalFit{}, errors.New("no block-time samples")
	}
	logs := make([]float64, len(samples))
	for i, v := range samples {
		if v <= 0 {
			return LogNormalFit{}, errors.Errorf("sample %d is non-positive: %v", i, v)
		}
		logs[i] = math.Log(v)
	}
	mu := stat.Mean(logs, nil)
	return LogNormalFit{Shape: popStdDev(logs, mu), Scale: math.Exp(mu)}, nil
}

// PDF evaluates the fitted density at x.
func (f LogNormalFit) PDF(x float64) float64 {
	if x <= 0 || f.Shape == 0 {
		return 0
	}
	return distuv.LogNormal{Mu: math.Log(f.Scale), Sigma: f.Shape}.Prob(x)
}
