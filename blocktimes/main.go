package main

import (
	"fmt"

	"github.com/p7r0x7/vainpath"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"powstat/minelog"
	"powstat/render"
	"powstat/stats"
)

// Copyright © 2025 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Charts the distribution of block solve times recorded by the miner and
// fits shifted-exponential and log-normal candidates to it.

func main() {
	pOut := pflag.StringP("out", "o", "blocktimes.png", "output path for the rendered chart")
	pHelp := pflag.BoolP("help", "h", false, "prints this help menu")
	pflag.Parse()

	if *pHelp {
		fmt.Println("Usage:\n  blocktimes [-o FILE] [JSON-FILE]\n\nOptions:")
		pflag.PrintDefaults()
		return
	}
	path := "blocktimes.json"
	if pflag.NArg() > 0 {
		path = pflag.Arg(0)
	}

	samples, err := minelog.ReadBlockTimes(path)
	if err != nil {
		log.WithError(err).Fatal("loading block times")
	}
	sum, err := stats.SummarizeTimes(samples)
	if err != nil {
		log.WithError(err).Fatal("summarizing block times")
	}

	var ef *stats.ExponentialFit
	if fit, err := stats.FitExponential(samples); err != nil {
		log.WithError(err).Warn("skipping exponential fit")
	} else {
		ef = &fit
	}
	var lf *stats.LogNormalFit
	if fit, err := stats.FitLogNormal(samples); err != nil {
		log.WithError(err).Warn("skipping log-normal fit")
	} else {
		lf = &fit
	}

	fmt.Printf("Number of blocks: %d\n", sum.Count)
	fmt.Printf("Median block time: %.2f s\n", sum.Median)
	fmt.Printf("Mean block time: %.2f s\n", sum.Mean)
	fmt.Printf("Mean / median: %.2f\n", sum.MeanOverMedian)
	fmt.Printf("Standard deviation: %.2f s\n", sum.StdDev)
	fmt.Printf("Coeff of variation: %.2f\n", sum.CV)
	if ef != nil {
		fmt.Printf("Exponential fit: loc=%.2f scale=%.2f\n", ef.Loc, ef.Scale)
	}
	if lf != nil {
		fmt.Printf("Log-normal fit: shape=%.2f scale=%.2f\n", lf.Shape, lf.Scale)
	}

	if err := render.BlockTimes(samples, sum, ef, lf, *pOut); err != nil {
		log.WithError(err).Fatal("rendering block times")
	}
	fmt.Println("Chart saved to", vainpath.Clean(*pOut))
}
