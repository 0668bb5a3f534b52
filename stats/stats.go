// Package stats bins wide-integer outputs and judges their uniformity with a
// Pearson chi-square test and an exploratory FFT check for periodic bias.
package stats

import (
	"math/big"
	"math/cmplx"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Copyright © 2025 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Alpha is the significance level at which uniformity is rejected.
const Alpha = 0.05

/* Expected bin frequencies at or below this make the chi-square
approximation unreliable. */
const minExpected = 5

// Histogram is an ordered sequence of bin counts over [0, modulus).
type Histogram struct {
	Counts  []int64
	Samples int
}

// NewHistogram returns an empty Histogram with the given number of bins.
func NewHistogram(bins int) *Histogram {
	return &Histogram{Counts: make([]int64, bins)}
}

// Add bins one output in [0, modulus): index = floor(out * bins / modulus).
func (h *Histogram) Add(out, modulus *big.Int) {
	idx := new(big.Int).Mul(out, big.NewInt(int64(len(h.Counts))))
	idx.Div(idx, modulus)
	h.Counts[idx.Int64()]++
	h.Samples++
}

// Merge folds another histogram of the same shape into h. Binning is
// order-independent, so per-worker histograms may be merged in any order.
func (h *Histogram) Merge(other *Histogram) {
	for i, c := range other.Counts {
		h.Counts[i] += c
	}
	h.Samples += other.Samples
}

// Bin maps each output to a bin and returns the resulting Histogram. The sum
// of its counts equals len(outputs) exactly.
func Bin(outputs []*big.Int, bins int, modulus *big.Int) *Histogram {
	h := NewHistogram(bins)
	for _, out := range outputs {
		h.Add(out, modulus)
	}
	return h
}

// FitReport is the outcome of a chi-square goodness-of-fit test against the
// uniform distribution.
type FitReport struct {
	ChiSquare float64
	PValue    float64
	DoF       int
	Expected  float64
	Uniform   bool
	/* LowExpected flags expected frequencies ≤ 5, where the chi-square
	approximation is statistically unreliable. */
	LowExpected bool
}

// ChiSquareUniform tests the histogram against a uniform expectation of
// Samples/bins per bin. Uniformity is rejected when the p-value falls below
// Alpha.
func ChiSquareUniform(h *Histogram) (FitReport, error) {
	bins := len(h.Counts)
	if bins < 2 {
		return FitReport{}, errors.Errorf("chi-square needs at least 2 bins, have %d", bins)
	}
	if h.Samples == 0 {
		return FitReport{}, errors.New("no samples were binned")
	}
	expected := float64(h.Samples) / float64(bins)
	observed := make([]float64, bins)
	uniform := make([]float64, bins)
	for i, c := range h.Counts {
		observed[i] = float64(c)
		uniform[i] = expected
	}
	x2 := stat.ChiSquare(observed, uniform)
	p := distuv.ChiSquared{K: float64(bins - 1)}.Survival(x2)
	return FitReport{
		ChiSquare:   x2,
		PValue:      p,
		DoF:         bins - 1,
		Expected:    expected,
		Uniform:     p >= Alpha,
		LowExpected: expected <= minExpected,
	}, nil
}

// Spectrum returns the DFT magnitudes of the mean-subtracted bin counts for
// frequencies 0..bins/2. The input is real-valued, so the negative-frequency
// half is redundant and folded out. A large magnitude at a nonzero frequency
// signals periodic structure in the mapping; no formal threshold is defined.
func Spectrum(h *Histogram) []float64 {
	bins := len(h.Counts)
	mean := float64(h.Samples) / float64(bins)
	seq := make([]float64, bins)
	for i, c := range h.Counts {
		seq[i] = float64(c) - mean
	}
	coeffs := fourier.NewFFT(bins).Coefficients(nil, seq)
	mags := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mags[i] = cmplx.Abs(c)
	}
	return mags
}
