// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bn254io

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/shade-studio/zk-verifier/internal/zkerrors"
)

// ParseG1 decodes a snarkjs-style G1 point: a list of decimal-string
// coordinates, [x, y] or [x, y, z] with z ignored (snarkjs always emits
// the "1" in projective form; BN254 G1 has cofactor 1 so no subgroup
// check is needed). The resulting point must lie on the curve.
func ParseG1(coords []string) (bn254.G1Affine, error) {
	var out bn254.G1Affine
	if len(coords) < 2 {
		return out, zkerrors.Format("G1 point needs at least 2 coordinates, got %d", len(coords))
	}
	x, err := ParseFq(coords[0])
	if err != nil {
		return out, err
	}
	y, err := ParseFq(coords[1])
	if err != nil {
		return out, err
	}
	out.X, out.Y = x, y
	if !out.IsOnCurve() {
		return out, zkerrors.Format("G1 point is not on curve")
	}
	return out, nil
}

// ParseG2 decodes a snarkjs-style G2 point: a list of coordinate pairs,
// [[x_c1, x_c0], [y_c1, y_c0], ["1", "0"]] with the third pair ignored.
// snarkjs/circom serialize Fq2 elements with the c1 component first;
// gnark-crypto's bn254.E2{A0, A1} expects A0 = c0, A1 = c1, so the two
// components are swapped on the way in. Both the on-curve and subgroup
// checks are mandatory for G2 — unlike G1, BN254's G2 cofactor is not 1.
func ParseG2(coords [][]string) (bn254.G2Affine, error) {
	var out bn254.G2Affine
	if len(coords) < 2 {
		return out, zkerrors.Format("G2 point needs at least 2 coordinate pairs, got %d", len(coords))
	}
	xPair, yPair := coords[0], coords[1]
	if len(xPair) < 2 || len(yPair) < 2 {
		return out, zkerrors.Format("G2 coordinate pair needs at least 2 elements")
	}
	xC1, err := ParseFq(xPair[0])
	if err != nil {
		return out, err
	}
	xC0, err := ParseFq(xPair[1])
	if err != nil {
		return out, err
	}
	yC1, err := ParseFq(yPair[0])
	if err != nil {
		return out, err
	}
	yC0, err := ParseFq(yPair[1])
	if err != nil {
		return out, err
	}
	out.X.A0, out.X.A1 = xC0, xC1
	out.Y.A0, out.Y.A1 = yC0, yC1
	if !out.IsOnCurve() {
		return out, zkerrors.Format("G2 point is not on curve")
	}
	if !out.IsInSubGroup() {
		return out, zkerrors.Format("G2 point is not in the correct subgroup")
	}
	return out, nil
}
