// Package render draws the toolkit's diagnostic charts with gonum/plot.
// Charts are handed off as PNG files; nothing here computes statistics.
package render

import (
	"fmt"
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"powstat/minelog"
	"powstat/stats"
)

// Copyright © 2025 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var (
	blue   = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255}
	red    = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 255}
	green  = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 255}
	orange = color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 255}
	purple = color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 255}
)

const pageW, pageH = 8 * vg.Inch, 6 * vg.Inch

// BinCounts draws the observed bin counts of a histogram with the expected
// uniform frequency overlaid as a dashed rule.
func BinCounts(h *stats.Histogram, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Bin Index"
	p.Y.Label.Text = "Frequency"

	values := make(plotter.Values, len(h.Counts))
	for i, c := range h.Counts {
		values[i] = float64(c)
	}
	bars, err := plotter.NewBarChart(values, vg.Points(2))
	if err != nil {
		return errors.Wrap(err, "bin counts")
	}
	bars.Color = blue
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.Legend.Add("Observed Frequencies", bars)

	expected := float64(h.Samples) / float64(len(h.Counts))
	rule, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: expected}, {X: float64(len(h.Counts) - 1), Y: expected},
	})
	if err != nil {
		return errors.Wrap(err, "expected rule")
	}
	rule.Color = red
	rule.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(rule)
	p.Legend.Add(fmt.Sprintf("Expected Uniform Frequency (%.1f)", expected), rule)

	return errors.Wrapf(p.Save(pageW, pageH, path), "saving %s", path)
}

// MagnitudeSpectrum draws FFT magnitudes against frequency in cycles per
// bin, folding out the redundant negative-frequency half.
func MagnitudeSpectrum(mags []float64, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Frequency"
	p.Y.Label.Text = "Magnitude"

	bins := 2 * (len(mags) - 1)
	data := make(plotter.XYs, len(mags))
	for i, m := range mags {
		data[i] = plotter.XY{X: float64(i) / float64(bins), Y: m}
	}
	line, err := plotter.NewLine(data)
	if err != nil {
		return errors.Wrap(err, "spectrum")
	}
	line.Color = purple
	p.Add(line)
	p.Legend.Add("FFT Magnitude", line)

	return errors.Wrapf(p.Save(pageW, pageH, path), "saving %s", path)
}

// BlockTimes draws a density-normalized histogram of solve times with the
// fitted shifted-exponential and log-normal densities and mean/median rules.
// Either fit may be nil when it could not be computed.
func BlockTimes(samples []float64, sum stats.TimeSummary, ef *stats.ExponentialFit, lf *stats.LogNormalFit, path string) error {
	p := plot.New()
	p.Title.Text = "Histogram of Block Times"
	p.X.Label.Text = "Block Time (s)"
	p.Y.Label.Text = "Density"

	hist, err := plotter.NewHist(plotter.Values(samples), histBins(sum))
	if err != nil {
		return errors.Wrap(err, "solve-time histogram")
	}
	hist.Normalize(1)
	hist.FillColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xb2}
	p.Add(hist)

	if ef != nil {
		f := plotter.NewFunction(ef.PDF)
		f.Color = red
		p.Add(f)
		p.Legend.Add(fmt.Sprintf("Exponential (loc=%.2f, scale=%.2f)", ef.Loc, ef.Scale), f)
	}
	if lf != nil {
		f := plotter.NewFunction(lf.PDF)
		f.Color = green
		p.Add(f)
		p.Legend.Add(fmt.Sprintf("Log-Normal (shape=%.2f)", lf.Shape), f)
	}

	top := peakDensity(samples, sum)
	for _, rule := range []struct {
		x     float64
		c     color.RGBA
		label string
	}{
		{sum.Median, red, fmt.Sprintf("Median: %.2fs", sum.Median)},
		{sum.Mean, green, fmt.Sprintf("Mean: %.2fs", sum.Mean)},
	} {
		line, err := plotter.NewLine(plotter.XYs{{X: rule.x, Y: 0}, {X: rule.x, Y: top}})
		if err != nil {
			return errors.Wrap(err, "summary rule")
		}
		line.Color = rule.c
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(line)
		p.Legend.Add(rule.label, line)
	}

	return errors.Wrapf(p.Save(pageW, pageH, path), "saving %s", path)
}

/* Bucket width of 10 seconds, mirroring the miner team's original charts. */
func histBins(sum stats.TimeSummary) int {
	bins := int(sum.Max/10) + 1
	if bins < 1 {
		bins = 1
	}
	return bins
}

/* peakDensity estimates the tallest density bar so summary rules span the
full plot height. */
func peakDensity(samples []float64, sum stats.TimeSummary) float64 {
	bins := histBins(sum)
	counts := make([]int, bins)
	width := sum.Max / float64(bins)
	if width == 0 {
		return 1
	}
	for _, v := range samples {
		i := int(v / width)
		if i >= bins {
			i = bins - 1
		}
		counts[i]++
	}
	peak := 0
	for _, c := range counts {
		if c > peak {
			peak = c
		}
	}
	return float64(peak) / (float64(len(samples)) * width)
}

// Nonces draws the difficulty scatters: average nonce count and average
// solve time against difficulty in millions, titled with the measuring CPU
// and the overall aggregate hash rate. Two PNGs are written under the given
// prefix.
func Nonces(records []minelog.Record, cpu string, avgRate float64, prefix string) error {
	title := fmt.Sprintf("Mining Metrics vs. Difficulty on %s\n(Overall Avg. Aggregate Hash Rate: %.2f Nonces/s)", cpu, avgRate)

	counts := make(plotter.XYs, len(records))
	times := make(plotter.XYs, len(records))
	for i, r := range records {
		millions := float64(r.Difficulty) / 1e6
		counts[i] = plotter.XY{X: millions, Y: r.AvgNonceCount}
		times[i] = plotter.XY{X: millions, Y: r.AvgTime}
	}

	if err := scatterPage(counts, title, "Average Nonce Count", blue,
		prefix+"_nonces.png"); err != nil {
		return err
	}
	return scatterPage(times, title, "Average Time per Solution (s)", orange,
		prefix+"_times.png")
}

func scatterPage(data plotter.XYs, title, ylabel string, c color.RGBA, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Difficulty (Millions)"
	p.Y.Label.Text = ylabel

	points, err := plotter.NewScatter(data)
	if err != nil {
		return errors.Wrap(err, "scatter")
	}
	points.Color = c
	p.Add(points)
	p.Legend.Add("Measured Data", points)

	trend, err := plotter.NewLine(data)
	if err != nil {
		return errors.Wrap(err, "trend")
	}
	trend.Color = c
	trend.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(trend)
	p.Legend.Add("Trend (linear assumption)", trend)

	return errors.Wrapf(p.Save(pageW, pageH, path), "saving %s", path)
}
