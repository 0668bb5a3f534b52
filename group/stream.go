package group

import (
	"encoding/binary"

	"github.com/aead/chacha20/chacha"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
)

// Copyright © 2025 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Stream deterministically draws independent Samples and nonces from a
// ChaCha20 keystream. Streams with the same seed and worker index produce
// identical draws; distinct worker indices produce disjoint streams, so
// parallel workers need no coordination.
type Stream struct {
	c *chacha.Cipher
}

// NewStream keys a Stream with BLAKE3-256 of the seed string. The worker
// index is folded into the ChaCha nonce.
func NewStream(seed string, worker int) *Stream {
	key := blake3.Sum256([]byte(seed))
	var nonce [chacha.XNonceSize]byte
	binary.BigEndian.PutUint64(nonce[:8], uint64(worker))
	c, err := chacha.NewCipher(nonce[:], key[:], 20)
	if err != nil {
		panic(err) /* Unreachable: key and nonce sizes are fixed above. */
	}
	return &Stream{c: c}
}

// Next draws one Sample and its nonce: 64 header bytes plus 8 nonce bytes of
// keystream.
func (s *Stream) Next() (Sample, uint64) {
	var block [Size + 8]byte
	s.c.XORKeyStream(block[:], block[:])
	header := make([]byte, Size)
	copy(header, block[:Size])
	return NewSample(header), binary.BigEndian.Uint64(block[Size:])
}

// Seed64 collapses a seed string to 64 bits for callers that need a plain
// integer seed alongside the keyed stream.
func Seed64(seed string) uint64 { return xxh3.HashString(seed) }
