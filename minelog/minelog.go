// Package minelog ingests the text and JSON output of the external
// proof-of-work miner.
package minelog

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"

	sha256 "github.com/minio/sha256-simd"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Copyright © 2025 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Record is one parsed measurement line from the miner's nonce log.
type Record struct {
	Difficulty    uint64
	AvgNonceCount float64
	AvgTime       float64
	AggHashRate   float64
}

/* The miner interleaves progress chatter with measurement lines; only the
latter match this shape. */
var lineRE = regexp.MustCompile(
	`^Difficulty:\s*(\d+),\s*Average Nonce Count:\s*([\d.]+),\s*Avg Time:\s*([\d.]+)\s*s,\s*Aggregate Hash Rate:\s*([\d.]+)`)

// ParseNonceLog reads measurement records from r. Non-matching lines are
// skipped; matching lines with unparsable numbers are skipped with a
// warning. Zero valid records is an error.
func ParseNonceLog(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		m := lineRE.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		rec, err := parseRecord(m)
		if err != nil {
			log.WithField("line", n).WithError(err).Warn("skipping malformed measurement line")
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading nonce log")
	}
	if len(records) == 0 {
		return nil, errors.New("no valid measurement lines found")
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Difficulty < records[j].Difficulty })
	return records, nil
}

func parseRecord(m []string) (Record, error) {
	difficulty, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return Record{}, errors.Wrap(err, "difficulty")
	}
	nonces, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Record{}, errors.Wrap(err, "nonce count")
	}
	avgTime, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return Record{}, errors.Wrap(err, "avg time")
	}
	rate, err := strconv.ParseFloat(m[4], 64)
	if err != nil {
		return Record{}, errors.Wrap(err, "hash rate")
	}
	return Record{Difficulty: difficulty, AvgNonceCount: nonces, AvgTime: avgTime, AggHashRate: rate}, nil
}

// LoadNonceLog reads and parses the nonce log at path, logging the dataset
// fingerprint on ingest.
func LoadNonceLog(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	log.WithFields(log.Fields{"path": path, "sha256": Fingerprint(data)}).Info("loaded nonce log")
	return ParseNonceLog(bytes.NewReader(data))
}

// ReadBlockTimes reads a JSON array of numeric solve-time samples.
func ReadBlockTimes(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	var samples []float64
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	if len(samples) == 0 {
		return nil, errors.Errorf("%s holds no samples", path)
	}
	log.WithFields(log.Fields{"path": path, "sha256": Fingerprint(data), "samples": len(samples)}).
		Info("loaded block times")
	return samples, nil
}

// Fingerprint returns a short SHA-256 digest of a dataset for log
// correlation across runs.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
