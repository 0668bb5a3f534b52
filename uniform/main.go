package main

import (
	"fmt"
	"math/big"
	"runtime"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	exprand "golang.org/x/exp/rand"

	"powstat/group"
	"powstat/render"
	"powstat/stats"
)

// Copyright © 2025 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This tool stress-tests the uniformity of the hash-to-group mapping: it
// draws independent samples, maps them, bins the raw and re-hashed outputs
// against 2^512, and reports a chi-square verdict plus an FFT bias spectrum
// for each stage.

func main() {
	pSamples := pflag.IntP("samples", "n", 10000, "number of hash-to-group samples to draw")
	pBins := pflag.IntP("bins", "b", 100, "number of histogram bins")
	pWorkers := pflag.IntP("workers", "w", 0, "parallel sample workers (0 = all CPUs)")
	pSeed := pflag.StringP("seed", "s", "powstat", "seed string for deterministic sampling")
	pOut := pflag.StringP("out", "o", "uniformity", "output file prefix for rendered plots")
	pControl := pflag.Bool("control", false, "also test a true-uniform control stream")
	pHelp := pflag.BoolP("help", "h", false, "prints this help menu")
	pflag.Parse()

	if *pHelp {
		fmt.Println("Tests whether hash-to-group outputs are uniformly distributed.\n\nOptions:")
		pflag.PrintDefaults()
		return
	}
	if *pSamples < 1 || *pBins < 2 {
		log.Fatal("need at least 1 sample and 2 bins")
	}

	t := time.Now()
	raw, rehashed := collect(*pSamples, *pBins, *pWorkers, *pSeed)

	report("raw mapping output (mod 2^512)", raw, *pOut+"_raw")
	report("re-hashed output (mod 2^512)", rehashed, *pOut+"_rehashed")

	if *pControl {
		report("true-uniform control", control(*pSamples, *pBins, *pSeed), *pOut+"_control")
	}
	fmt.Printf("Finished in %s on %d CPUs.\n", time.Since(t), runtime.NumCPU())
}

/* collect draws samples across workers. Every draw is pure and independent,
so each worker fills private histograms that are merged afterwards; the
chi-square test is order-independent. */
func collect(samples, bins, workers int, seed string) (raw, rehashed *stats.Histogram) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > samples {
		workers = samples
	}
	raw, rehashed = stats.NewHistogram(bins), stats.NewHistogram(bins)
	span := group.Bound()

	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		quota := samples / workers
		if w < samples%workers {
			quota++
		}
		go func(w, quota int) {
			defer wg.Done()
			stream := group.NewStream(seed, w)
			localRaw, localHashed := stats.NewHistogram(bins), stats.NewHistogram(bins)
			for i := 0; i < quota; i++ {
				sample, nonce := stream.Next()
				out := group.Map(group.Decode(sample.Header), sample.M, sample.N, nonce)
				localRaw.Add(out, span)
				localHashed.Add(group.Rehash(out), span)
			}
			mu.Lock()
			raw.Merge(localRaw)
			rehashed.Merge(localHashed)
			mu.Unlock()
		}(w, quota)
	}
	wg.Wait()
	return raw, rehashed
}

/* control bins draws from a true-uniform 64-bit source, a calibration
baseline for the harness itself. */
func control(samples, bins int, seed string) *stats.Histogram {
	rng := exprand.New(exprand.NewSource(group.Seed64(seed)))
	h := stats.NewHistogram(bins)
	span := new(big.Int).Lsh(big.NewInt(1), 64)
	for i := 0; i < samples; i++ {
		h.Add(new(big.Int).SetUint64(rng.Uint64()), span)
	}
	return h
}

func report(stage string, h *stats.Histogram, prefix string) {
	fit, err := stats.ChiSquareUniform(h)
	if err != nil {
		log.WithError(err).Fatal("uniformity test aborted")
	}
	if fit.LowExpected {
		log.WithField("expected", fit.Expected).
			Warn("expected bin frequency is at most 5; the chi-square result is unreliable")
	}

	verdict := "appears uniform (p-value >= 0.05)"
	if !fit.Uniform {
		verdict = "is NOT uniform (p-value < 0.05)"
	}
	fmt.Printf("Testing uniformity of %s...\n", stage)
	fmt.Printf("Chi-Square Statistic: %.2f (df=%d)\n", fit.ChiSquare, fit.DoF)
	fmt.Printf("P-Value: %.4f\n", fit.PValue)
	fmt.Printf("  - Distribution %s\n\n", verdict)

	if err := render.BinCounts(h, stage, prefix+"_hist.png"); err != nil {
		log.WithError(err).Fatal("rendering histogram")
	}
	if err := render.MagnitudeSpectrum(stats.Spectrum(h), "FFT of "+stage, prefix+"_fft.png"); err != nil {
		log.WithError(err).Fatal("rendering spectrum")
	}
}
