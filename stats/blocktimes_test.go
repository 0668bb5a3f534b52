package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// Copyright © 2025 Matthew R Bonnette. Licensed under the Apache-2.0 license.

func TestSummarizeTimes(t *testing.T) {
	sum, err := SummarizeTimes([]float64{10, 20, 30, 40, 100})
	require.NoError(t, err)

	require.Equal(t, 5, sum.Count)
	require.InDelta(t, 40, sum.Mean, 1e-9)
	require.InDelta(t, 30, sum.Median, 1e-9)
	require.InDelta(t, 10, sum.Min, 1e-9)
	require.InDelta(t, 100, sum.Max, 1e-9)
	/* Population stddev: sqrt(((-30)^2+(-20)^2+(-10)^2+0+60^2)/5). */
	require.InDelta(t, math.Sqrt(5000.0/5.0), sum.StdDev, 1e-9)
	require.InDelta(t, sum.StdDev/40, sum.CV, 1e-9)
	require.InDelta(t, 40.0/30.0, sum.MeanOverMedian, 1e-9)
}

func TestSummarizeTimes_Empty(t *testing.T) {
	_, err := SummarizeTimes(nil)
	require.Error(t, err, "an empty sample set must abort before any division")
}

func TestFitExponential(t *testing.T) {
	fit, err := FitExponential([]float64{5, 10, 15, 30})
	require.NoError(t, err)
	require.InDelta(t, 5, fit.Loc, 1e-9)    /* sample minimum */
	require.InDelta(t, 10, fit.Scale, 1e-9) /* mean 15 minus minimum */

	require.Zero(t, fit.PDF(4), "density is zero below the location shift")
	require.InDelta(t, 1.0/fit.Scale, fit.PDF(fit.Loc), 1e-9)
	require.Greater(t, fit.PDF(10), fit.PDF(30), "density must decay")
}

func TestFitExponential_Degenerate(t *testing.T) {
	_, err := FitExponential([]float64{7, 7, 7})
	require.Error(t, err, "zero spread has no exponential scale")
}

func TestFitLogNormal(t *testing.T) {
	/* Samples exp(1), exp(2), exp(3): log-mean 2, population log-stddev
	sqrt(2/3). */
	samples := []float64{math.E, math.E * math.E, math.E * math.E * math.E}
	fit, err := FitLogNormal(samples)
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt(2.0/3.0), fit.Shape, 1e-9)
	require.InDelta(t, math.Exp(2), fit.Scale, 1e-9)

	require.Zero(t, fit.PDF(0))
	require.Greater(t, fit.PDF(fit.Scale), 0.0)
}

func TestFitLogNormal_RejectsNonPositive(t *testing.T) {
	_, err := FitLogNormal([]float64{1, 0, 2})
	require.Error(t, err)

	_, err = FitLogNormal(nil)
	require.Error(t, err)
}
