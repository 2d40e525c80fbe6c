// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package credential implements the credential lifecycle store: the
// append-mostly record of verified proofs, keyed by a deterministic id,
// indexed per owner, with a separate tombstone set for revocations.
package credential

// CircuitType is the closed set of circuits this engine knows how to
// verify. Unlike engine-level wire types, this is validated eagerly:
// an unknown circuit type is a format error at the call boundary.
type CircuitType string

const (
	VerifiedBuilder  CircuitType = "verified-builder"
	GrantTrackRecord CircuitType = "grant-track-record"
	TeamAttestation  CircuitType = "team-attestation"
)

// Valid reports whether c is one of the three known circuit types.
func (c CircuitType) Valid() bool {
	switch c {
	case VerifiedBuilder, GrantTrackRecord, TeamAttestation:
		return true
	default:
		return false
	}
}

// Credential is a single verified-proof record.
type Credential struct {
	ID            string
	Owner         string
	CircuitType   CircuitType
	PublicSignals []string
	VerifiedAt    uint64
	ExpiresAt     uint64
	Claim         *string
}
