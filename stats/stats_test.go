package stats

import (
	"math/big"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"
	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Copyright © 2025 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var span64 = new(big.Int).Lsh(big.NewInt(1), 64)

func uniform64(seed uint64, n int) []*big.Int {
	rng := exprand.New(exprand.NewSource(seed))
	outputs := make([]*big.Int, n)
	for i := range outputs {
		outputs[i] = new(big.Int).SetUint64(rng.Uint64())
	}
	return outputs
}

func TestBin_Conservation(t *testing.T) {
	outputs := uniform64(1, 5000)
	h := Bin(outputs, 64, span64)

	var sum int64
	for _, c := range h.Counts {
		sum += c
	}
	require.EqualValues(t, len(outputs), sum, "bin counts must sum to the sample count")
	require.Equal(t, len(outputs), h.Samples)
}

func TestBin_Bounds(t *testing.T) {
	modulus := big.NewInt(100)
	h := NewHistogram(10)
	h.Add(big.NewInt(0), modulus)  /* first bin */
	h.Add(big.NewInt(99), modulus) /* last bin */
	h.Add(big.NewInt(50), modulus)

	require.EqualValues(t, 1, h.Counts[0])
	require.EqualValues(t, 1, h.Counts[9])
	require.EqualValues(t, 1, h.Counts[5])
}

func TestHistogram_MergeMatchesSequential(t *testing.T) {
	outputs := uniform64(2, 2000)

	whole := Bin(outputs, 32, span64)
	left := Bin(outputs[:700], 32, span64)
	right := Bin(outputs[700:], 32, span64)
	left.Merge(right)

	require.Equal(t, whole.Counts, left.Counts, "merged partial histograms must equal sequential binning")
	require.Equal(t, whole.Samples, left.Samples)
}

/* With N=100000 over B=100 bins from a true uniform source, the test should
accept uniformity in nearly all trials; at α=0.05 roughly one of 20 fails by
construction. Allow four. */
func TestChiSquare_NullCase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 2M-draw null-case trial in short mode")
	}
	accepted := 0
	for trial := 0; trial < 20; trial++ {
		h := Bin(uniform64(uint64(1000+trial), 100000), 100, span64)
		fit, err := ChiSquareUniform(h)
		require.NoError(t, err)
		require.False(t, fit.LowExpected)
		if fit.Uniform {
			accepted++
		}
	}
	require.GreaterOrEqual(t, accepted, 16, "uniform draws rejected far too often")
}

/* Outputs confined to the first 10% of the range must be rejected
deterministically. */
func TestChiSquare_BiasedCase(t *testing.T) {
	tenth := new(big.Int).Div(span64, big.NewInt(10))
	rng := exprand.New(exprand.NewSource(7))
	h := NewHistogram(100)
	for i := 0; i < 10000; i++ {
		v := new(big.Int).SetUint64(rng.Uint64())
		h.Add(v.Mod(v, tenth), span64)
	}

	fit, err := ChiSquareUniform(h)
	require.NoError(t, err)
	require.False(t, fit.Uniform, "a 10%-confined stream must be rejected")
	require.Less(t, fit.PValue, Alpha)
}

func TestChiSquare_LowExpectedFlag(t *testing.T) {
	h := Bin(uniform64(3, 40), 10, span64) /* expected frequency 4 */
	fit, err := ChiSquareUniform(h)
	require.NoError(t, err)
	require.True(t, fit.LowExpected, "expected <= 5 must be flagged as unreliable")
}

func TestChiSquare_Errors(t *testing.T) {
	_, err := ChiSquareUniform(NewHistogram(100))
	require.Error(t, err, "zero samples must not reach the statistic")

	_, err = ChiSquareUniform(NewHistogram(1))
	require.Error(t, err, "a single bin has no degrees of freedom")
}

func TestSpectrum_ConjugateSymmetry(t *testing.T) {
	const bins = 64
	h := Bin(uniform64(4, 3000), bins, span64)
	mags := Spectrum(h)
	require.Len(t, mags, bins/2+1)

	/* The full complex transform of the same zero-mean sequence must agree
	with the folded half and satisfy |X[k]| = |X[B-k]|. */
	mean := float64(h.Samples) / float64(bins)
	seq := make([]complex128, bins)
	for i, c := range h.Counts {
		seq[i] = complex(float64(c)-mean, 0)
	}
	full := fourier.NewCmplxFFT(bins).Coefficients(nil, seq)
	for k := 1; k < bins/2; k++ {
		require.InDelta(t, cmplx.Abs(full[k]), cmplx.Abs(full[bins-k]), 1e-6,
			"magnitude at %d and %d must match", k, bins-k)
	}
	for k := 0; k <= bins/2; k++ {
		require.InDelta(t, cmplx.Abs(full[k]), mags[k], 1e-6)
	}

	/* Mean subtraction zeroes the DC component. */
	require.InDelta(t, 0, mags[0], 1e-6)
}
