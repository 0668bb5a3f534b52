package main

import (
	"fmt"
	"math"

	"github.com/p7r0x7/vainpath"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"powstat/minelog"
	"powstat/render"
)

// Copyright © 2025 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Plots the miner's measured difficulty sweep: average nonce count and
// average solve time against difficulty, annotated with the measuring CPU.

func main() {
	pOut := pflag.StringP("out", "o", "difficulty_vs_metrics", "output file prefix for rendered charts")
	pHelp := pflag.BoolP("help", "h", false, "prints this help menu")
	pflag.Parse()

	if *pHelp {
		fmt.Println("Usage:\n  plotnonces [-o PREFIX] [LOG-FILE]\n\nOptions:")
		pflag.PrintDefaults()
		return
	}
	path := "nonce_data.txt"
	if pflag.NArg() > 0 {
		path = pflag.Arg(0)
	}

	records, err := minelog.LoadNonceLog(path)
	if err != nil {
		log.WithError(err).Error("loading nonce log")
		log.Fatal("expecting lines like: Difficulty: 56000000000, Average Nonce Count: 886.08, " +
			"Avg Time: 1.207 s, Aggregate Hash Rate: 4555.75")
	}

	cpu := minelog.CPUModel()
	rate := overallHashRate(records)
	fmt.Printf("Parsed %d measurements from %s\n", len(records), vainpath.Clean(path))
	fmt.Printf("Overall Average Aggregate Hash Rate: %.2f Nonces/s (Approx)\n", rate)
	fmt.Printf("Detected CPU/System: %s\n", cpu)
	for _, r := range records {
		fmt.Printf("Difficulty: %d, Average Nonce Count: %.2f, Avg Time: %.3f s, Aggregate Hash Rate: %.2f\n",
			r.Difficulty, r.AvgNonceCount, r.AvgTime, r.AggHashRate)
	}

	if err := render.Nonces(records, cpu, rate, *pOut); err != nil {
		log.WithError(err).Fatal("rendering difficulty charts")
	}
	fmt.Println("Charts saved under prefix", *pOut)
}

/* Non-finite rates come from failed sweeps and are excluded from the
overall average. */
func overallHashRate(records []minelog.Record) float64 {
	var total float64
	var n int
	for _, r := range records {
		if math.IsNaN(r.AggHashRate) || math.IsInf(r.AggHashRate, 0) {
			continue
		}
		total += r.AggHashRate
		n++
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}
