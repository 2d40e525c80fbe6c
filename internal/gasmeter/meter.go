// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package gasmeter stands in for the NEAR host's env::used_gas():
// verify_proof reports a gas_used figure in its VerificationResult,
// computed here from named constants the way the teacher's zk package
// prices its own precompile operations (GasGroth16Verify,
// GasPerPublicInput in zk/types.go).
package gasmeter

const (
	// GasVerifyBase is the fixed cost of a single Groth16 pairing check.
	GasVerifyBase uint64 = 150_000
	// GasPerPublicInput is charged once per public signal folded into vk_x.
	GasPerPublicInput uint64 = 1_000
	// GasStoreCredential is charged when a verified proof is persisted.
	GasStoreCredential uint64 = 20_000
	// GasMutatingBase is a price for other state-mutating entry points;
	// no engine entry point charges it.
	GasMutatingBase uint64 = 5_000
)

// Meter accumulates a gas total across a single entry-point call.
type Meter struct {
	used uint64
}

// Consume adds amount to the running total.
func (m *Meter) Consume(amount uint64) {
	m.used += amount
}

// Used returns the running total.
func (m *Meter) Used() uint64 {
	return m.used
}
