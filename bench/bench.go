package main

import (
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/dterei/gotsc"

	"powstat/group"
)

// Copyright © 2025 Matthew R Bonnette. Licensed under the Apache-2.0 license.
/* This tool measures the throughput of the hash-to-group oracle: sample
derivation, the modular-exponentiation mapping, and the re-hash stage. On
amd64 a background TSC poll also yields cycles per op. */

var fns = map[string]func(b *testing.B){
	"Derive": func(b *testing.B) {
		stream := group.NewStream("bench", 0)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			stream.Next()
		}
	},
	"Map": func(b *testing.B) {
		stream := group.NewStream("bench", 0)
		sample, nonce := stream.Next()
		h := group.Decode(sample.Header)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			group.Map(h, sample.M, sample.N, nonce+uint64(i))
		}
	},
	"Rehash": func(b *testing.B) {
		stream := group.NewStream("bench", 0)
		sample, nonce := stream.Next()
		out := group.Map(group.Decode(sample.Header), sample.M, sample.N, nonce)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			group.Rehash(out)
		}
	},
}

func measure(name string) {
	var totalHz, polls uint64
	done := false
	if runtime.GOARCH == "amd64" {
		go func() {
			calltime := gotsc.TSCOverhead()
			for !done {
				tsc1 := gotsc.BenchStart()
				time.Sleep(time.Millisecond)
				tsc2 := gotsc.BenchEnd()
				totalHz += (tsc2 - tsc1 - calltime) * 1000
				polls++
				time.Sleep(time.Millisecond * 19)
			}
		}()
	}
	r := testing.Benchmark(fns[name])
	done = true

	nsPerOp := float64(r.T.Nanoseconds()) / float64(r.N)
	fmt.Printf("%-8s %10.0f ops/s  %9.0f ns/op", name, 1e9/nsPerOp, nsPerOp)
	if polls > 0 {
		hz := float64(totalHz) / float64(polls)
		fmt.Printf("  %9.0f cycles/op", hz*nsPerOp/1e9)
	}
	fmt.Println()
}

func main() {
	fmt.Printf("Benchmarking the hash-to-group oracle on %d CPUs (%s/%s).\n\n",
		runtime.NumCPU(), runtime.GOOS, runtime.GOARCH)
	t := time.Now()
	for _, name := range []string{"Derive", "Map", "Rehash"} {
		measure(name)
	}
	fmt.Printf("\nFinished in %s.\n", time.Since(t))
}
