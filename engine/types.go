// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package engine implements the verification orchestrator: the
// credential-lifecycle state machine and access/lifecycle control
// wrapped around the pure Groth16 pairing check, exposed as the
// twenty entry points in spec §6.
package engine

// G1Point is the snarkjs wire encoding of a G1 affine point: decimal
// string coordinates, [x, y] or [x, y, "1"].
type G1Point []string

// G2Point is the snarkjs wire encoding of a G2 affine point: pairs of
// decimal-string Fq2 coordinates, [[x_c1,x_c0],[y_c1,y_c0],["1","0"]].
type G2Point [][]string

// Groth16Proof is the wire format of a Groth16 proof.
type Groth16Proof struct {
	PiA G1Point `json:"pi_a"`
	PiB G2Point `json:"pi_b"`
	PiC G1Point `json:"pi_c"`
}

// VerificationKey is the wire format of a Groth16 verification key.
type VerificationKey struct {
	Alpha G1Point   `json:"alpha"`
	Beta  G2Point   `json:"beta"`
	Gamma G2Point   `json:"gamma"`
	Delta G2Point   `json:"delta"`
	IC    []G1Point `json:"ic"`
}

// VerifyProofInput is the request shape for verify_proof / verify_proof_view.
type VerifyProofInput struct {
	CircuitType       string       `json:"circuit_type"`
	Proof             Groth16Proof `json:"proof"`
	PublicSignals     []string     `json:"public_signals"`
	StoreCredential   bool         `json:"store_credential"`
	CustomExpiration  *uint64      `json:"custom_expiration,omitempty"`
	Claim             *string      `json:"claim,omitempty"`
}

// VerificationResult is the response shape for verify_proof / verify_proof_view.
type VerificationResult struct {
	Valid        bool    `json:"valid"`
	CredentialID *string `json:"credential_id"`
	GasUsed      uint64  `json:"gas_used"`
}

// Credential is the wire-shaped view of a stored credential, returned
// by get_credential / get_credentials_by_owner.
type Credential struct {
	ID            string   `json:"id"`
	Owner         string   `json:"owner"`
	CircuitType   string   `json:"circuit_type"`
	PublicSignals []string `json:"public_signals"`
	VerifiedAt    uint64   `json:"verified_at"`
	ExpiresAt     uint64   `json:"expires_at"`
	Claim         *string  `json:"claim,omitempty"`
}

// PaginatedCredentials is the response shape for get_credentials_by_owner.
type PaginatedCredentials struct {
	Credentials []Credential `json:"credentials"`
	Total       uint32       `json:"total"`
	HasMore     bool         `json:"has_more"`
}

// ContractConfig is the response shape for get_config.
type ContractConfig struct {
	Owner                     string   `json:"owner"`
	ProposedOwner             *string  `json:"proposed_owner"`
	Admins                    []string `json:"admins"`
	IsPaused                  bool     `json:"is_paused"`
	DefaultExpirationSecs     uint64   `json:"default_expiration_secs"`
	StorageCostPerCredential  string   `json:"storage_cost_per_credential"`
}

// ContractStats is the response shape for get_stats.
type ContractStats struct {
	TotalVerifications       uint64 `json:"total_verifications"`
	TotalCredentials         uint64 `json:"total_credentials"`
	IsPaused                 bool   `json:"is_paused"`
	VerificationKeysRegistered uint32 `json:"verification_keys_registered"`
}
