// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vkfingerprint computes a content hash over an installed
// verification key's wire-format components, so operators can detect
// accidental VK drift across redeploys (paralleling the teacher's own
// zk.VerifyingKey.Hash field). It is not part of the spec's pairing
// check — purely an operational aid logged on set_verification_key.
package vkfingerprint

import (
	"github.com/zeebo/blake3"
)

// Fingerprint hashes alpha, beta, gamma, delta, and ic, in that order,
// with a separator byte between components so that e.g. ["1","23"] and
// ["12","3"] never collide.
func Fingerprint(alpha []string, beta, gamma, delta [][]string, ic [][]string) [32]byte {
	h := blake3.New()
	writeStrings(h, alpha)
	writePairs(h, beta)
	writePairs(h, gamma)
	writePairs(h, delta)
	for _, point := range ic {
		writeStrings(h, point)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func writeStrings(h *blake3.Hasher, values []string) {
	for _, v := range values {
		_, _ = h.Write([]byte(v))
		_, _ = h.Write([]byte{0})
	}
	_, _ = h.Write([]byte{0xff})
}

func writePairs(h *blake3.Hasher, pairs [][]string) {
	for _, pair := range pairs {
		writeStrings(h, pair)
	}
	_, _ = h.Write([]byte{0xfe})
}
