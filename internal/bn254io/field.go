// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bn254io parses the snarkjs/arkworks wire encoding of BN254
// field elements and curve points — decimal strings for scalars, and
// the `[c1, c0]` ordering for Fq2 coordinates — into gnark-crypto
// types, validating every point against the curve and, for G2,
// against the subgroup.
package bn254io

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/shade-studio/zk-verifier/internal/zkerrors"
)

// ParseFq parses a decimal string into a base field element, rejecting
// malformed strings and values outside [0, p).
func ParseFq(s string) (fp.Element, error) {
	var out fp.Element
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return out, zkerrors.Format("not a decimal integer: %q", s)
	}
	if v.Sign() < 0 {
		return out, zkerrors.Format("negative field element: %q", s)
	}
	if v.Cmp(fp.Modulus()) >= 0 {
		return out, zkerrors.Format("field element out of range: %q", s)
	}
	out.SetBigInt(v)
	return out, nil
}

// ParseFr parses a decimal string into a scalar field element, rejecting
// malformed strings and values outside [0, r).
func ParseFr(s string) (fr.Element, error) {
	var out fr.Element
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return out, zkerrors.Format("not a decimal integer: %q", s)
	}
	if v.Sign() < 0 {
		return out, zkerrors.Format("negative scalar: %q", s)
	}
	if v.Cmp(fr.Modulus()) >= 0 {
		return out, zkerrors.Format("scalar out of range: %q", s)
	}
	out.SetBigInt(v)
	return out, nil
}
