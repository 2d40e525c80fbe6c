// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package groth16verify implements the deterministic Groth16 pairing
// check over BN254: parsing a verification key and a proof into
// gnark-crypto points, folding the public signals into vk_x, and
// evaluating the single multi-pairing equation
//
//	e(-A, B) * e(alpha, beta) * e(vk_x, gamma) * e(C, delta) == 1
//
// This package does not touch credential storage, access control, or
// events — it is a pure function of (key, proof, signals) -> (bool, error).
package groth16verify

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/shade-studio/zk-verifier/internal/bn254io"
	"github.com/shade-studio/zk-verifier/internal/zkerrors"
)

// VerifyingKey holds the parsed, curve-validated points of an installed
// verification key.
type VerifyingKey struct {
	Alpha bn254.G1Affine
	Beta  bn254.G2Affine
	Gamma bn254.G2Affine
	Delta bn254.G2Affine
	IC    []bn254.G1Affine
}

// ParseVerifyingKey parses the wire-format verification key components.
// An empty IC sequence is a configuration error: the key can never be
// used to verify a proof with zero or more public inputs against no
// input-commitment terms at all.
func ParseVerifyingKey(alpha []string, beta, gamma, delta [][]string, ic [][]string) (*VerifyingKey, error) {
	if len(ic) == 0 {
		return nil, zkerrors.InvalidVerificationKey("ic must be non-empty")
	}
	a, err := bn254io.ParseG1(alpha)
	if err != nil {
		return nil, zkerrors.InvalidVerificationKey("alpha: %s", err.Error())
	}
	b, err := bn254io.ParseG2(beta)
	if err != nil {
		return nil, zkerrors.InvalidVerificationKey("beta: %s", err.Error())
	}
	g, err := bn254io.ParseG2(gamma)
	if err != nil {
		return nil, zkerrors.InvalidVerificationKey("gamma: %s", err.Error())
	}
	d, err := bn254io.ParseG2(delta)
	if err != nil {
		return nil, zkerrors.InvalidVerificationKey("delta: %s", err.Error())
	}
	icPoints := make([]bn254.G1Affine, len(ic))
	for i, coords := range ic {
		p, err := bn254io.ParseG1(coords)
		if err != nil {
			return nil, zkerrors.InvalidVerificationKey("ic[%d]: %s", i, err.Error())
		}
		icPoints[i] = p
	}
	return &VerifyingKey{Alpha: a, Beta: b, Gamma: g, Delta: d, IC: icPoints}, nil
}

// Proof holds the parsed, curve-validated points of a Groth16 proof.
type Proof struct {
	A bn254.G1Affine
	B bn254.G2Affine
	C bn254.G1Affine
}

// ParseProof parses the wire-format proof components.
func ParseProof(piA []string, piB [][]string, piC []string) (*Proof, error) {
	a, err := bn254io.ParseG1(piA)
	if err != nil {
		return nil, zkerrors.Format("pi_a: %s", err.Error())
	}
	b, err := bn254io.ParseG2(piB)
	if err != nil {
		return nil, zkerrors.Format("pi_b: %s", err.Error())
	}
	c, err := bn254io.ParseG1(piC)
	if err != nil {
		return nil, zkerrors.Format("pi_c: %s", err.Error())
	}
	return &Proof{A: a, B: b, C: c}, nil
}

// ArityMismatchError is returned when the number of public signals does
// not match the verification key's IC length minus one. Unlike other
// format failures, which fold into a non-aborting valid=false result,
// an arity mismatch aborts the call — see DESIGN.md for why this
// departs from a strict reading of the non-aborting-on-any-parse-error
// policy.
type ArityMismatchError struct {
	Expected int
	Got      int
}

func (e *ArityMismatchError) Error() string {
	return zkerrors.InvalidPublicSignals("expected %d public signals, got %d", e.Expected, e.Got).Error()
}

// Verify evaluates the Groth16 pairing equation for the given key,
// proof, and decimal-string-encoded public signals. A returned error
// other than *ArityMismatchError represents a malformed signal and
// should be folded into valid=false by the caller, not treated as an
// abort.
func Verify(vk *VerifyingKey, proof *Proof, publicSignals []string) (bool, error) {
	if len(vk.IC) != len(publicSignals)+1 {
		return false, &ArityMismatchError{Expected: len(vk.IC) - 1, Got: len(publicSignals)}
	}

	var vkX bn254.G1Jac
	var base bn254.G1Jac
	base.FromAffine(&vk.IC[0])
	vkX.Set(&base)

	for i, s := range publicSignals {
		signal, err := bn254io.ParseFr(s)
		if err != nil {
			return false, zkerrors.InvalidPublicSignals("signal[%d]: %s", i, err.Error())
		}
		var scalar big.Int
		signal.BigInt(&scalar)
		var term bn254.G1Affine
		term.ScalarMultiplication(&vk.IC[i+1], &scalar)
		var termJac bn254.G1Jac
		termJac.FromAffine(&term)
		vkX.AddAssign(&termJac)
	}

	var vkXAffine bn254.G1Affine
	vkXAffine.FromJacobian(&vkX)

	var negA bn254.G1Affine
	negA.Neg(&proof.A)

	ok, err := bn254.PairingCheck(
		[]bn254.G1Affine{negA, vk.Alpha, vkXAffine, proof.C},
		[]bn254.G2Affine{proof.B, vk.Beta, vk.Gamma, vk.Delta},
	)
	if err != nil {
		return false, zkerrors.Format("pairing check: %s", err.Error())
	}
	return ok, nil
}
