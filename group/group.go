// Package group is a test oracle for the hash-to-group mapping used by the
// external miner. It emulates the production function closely enough to
// validate its distributional properties; it is not the production
// implementation.
package group

import (
	"crypto/sha512"
	"math/big"

	"github.com/zeebo/blake3"
)

// Copyright © 2025 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Width is the fixed bit-width of all wide values handled by this package.
const Width = 512

// Size is the exact serialized length of a wide value in bytes.
const Size = Width / 8

var (
	one  = big.NewInt(1)
	span = new(big.Int).Lsh(one, Width)           /* 2^512 */
	mask = new(big.Int).Sub(span, big.NewInt(1))  /* 2^512 - 1 */
)

// Bound returns 2^Width, the exclusive upper bound of the wide value space.
// The returned value must not be modified.
func Bound() *big.Int { return span }

// Encode serializes v to exactly Size bytes, big-endian. It panics if v is
// negative or wider than Width bits.
func Encode(v *big.Int) []byte {
	if v.Sign() < 0 || v.BitLen() > Width {
		panic("group: value does not fit in 512 bits")
	}
	return v.FillBytes(make([]byte, Size))
}

// Decode is the inverse of Encode.
func Decode(b []byte) *big.Int { return new(big.Int).SetBytes(b) }

// Sample is one independently drawn test input: a wide header plus the
// multiplier and modulus deterministically derived from it.
type Sample struct {
	Header []byte
	M, N   *big.Int
}

// NewSample derives a Sample from the given 64-byte header. The multiplier
// comes from BLAKE3-512 and the modulus from SHA-512, so the two are
// independent for any fixed header. The modulus is forced odd and the
// multiplier is adjusted to be coprime to it.
func NewSample(header []byte) Sample {
	if len(header) != Size {
		panic("group: header must be exactly 64 bytes")
	}
	md := blake3.Sum512(header)
	nd := sha512.Sum512(header)
	n := new(big.Int).SetBytes(nd[:])
	/* An even modulus would defeat the parity-flip adjustment below. */
	n.SetBit(n, 0, 1)
	m := coprime(new(big.Int).SetBytes(md[:]), n)
	return Sample{Header: header, M: m, N: n}
}

/* coprime adjusts m in place until gcd(m, n) = 1, n odd. The parity flip
matches the miner's own recovery; the increment loop closes the gap it
leaves for odd common factors. */
func coprime(m, n *big.Int) *big.Int {
	gcd := new(big.Int)
	if gcd.GCD(nil, nil, m, n).Cmp(one) == 0 {
		return m
	}
	if m.Bit(0) == 0 {
		m.Add(m, one)
	} else {
		m.Sub(m, one)
	}
	for gcd.GCD(nil, nil, m, n).Cmp(one) != 0 {
		m.Add(m, one)
	}
	return m
}

// Map computes m^((h+s) mod 2^Width) mod n, the hash-to-group mapping.
// Exponent arithmetic wraps at Width bits to emulate the miner's fixed-width
// addition. The result is always in [0, n). Pure and deterministic.
func Map(h, m, n *big.Int, s uint64) *big.Int {
	e := new(big.Int).Add(h, new(big.Int).SetUint64(s))
	e.And(e, mask)
	return e.Exp(m, e, n)
}

// Rehash whitens a mapping result: the raw output is only uniform modulo n,
// so it is serialized to Size bytes and pushed through SHA-512 to spread it
// over the full [0, 2^Width) range.
func Rehash(v *big.Int) *big.Int {
	sum := sha512.Sum512(Encode(v))
	return new(big.Int).SetBytes(sum[:])
}
