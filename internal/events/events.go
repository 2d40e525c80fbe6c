// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package events builds the NEP-297-shaped EVENT_JSON lines this
// contract emits on its mutating calls (set_default_expiration emits
// none), standing in for the NEAR
// host's env::log_str. The envelope fields (standard, version) match
// the original contract's events.rs exactly.
package events

import "encoding/json"

const (
	Standard = "shade-zk-verifier"
	Version  = "1.0.0"
)

// Emitter is the seam a caller passes an account-ids-worth of log
// lines through. In production this wraps whatever the host's
// log-string call is; in tests it is usually a slice-collecting func.
type Emitter interface {
	Emit(line string)
}

// EmitterFunc adapts a plain function to the Emitter interface.
type EmitterFunc func(line string)

func (f EmitterFunc) Emit(line string) { f(line) }

type envelope struct {
	Standard string `json:"standard"`
	Version  string `json:"version"`
	Event    string `json:"event"`
	Data     [1]any `json:"data"`
}

func build(event string, data any) string {
	env := envelope{Standard: Standard, Version: Version, Event: event, Data: [1]any{data}}
	payload, err := json.Marshal(env)
	if err != nil {
		// The data structs below are all plain, marshalable value types;
		// a marshal failure here would be a programming error, not a
		// runtime condition the caller can act on.
		panic("events: failed to marshal event payload: " + err.Error())
	}
	return "EVENT_JSON:" + string(payload)
}

type VerificationKeySetData struct {
	CircuitType string `json:"circuit_type"`
	Updated     bool   `json:"updated"`
	Fingerprint string `json:"fingerprint"`
}

// VerificationKeySetLine reports fingerprint as a lowercase hex digest
// of the key's content hash, so operators can diff it across redeploys
// to catch accidental VK drift.
func VerificationKeySetLine(circuitType string, updated bool, fingerprint string) string {
	return build("verification_key_set", VerificationKeySetData{CircuitType: circuitType, Updated: updated, Fingerprint: fingerprint})
}

type ProofVerifiedData struct {
	CircuitType  string  `json:"circuit_type"`
	Valid        bool    `json:"valid"`
	CredentialID *string `json:"credential_id"`
}

func ProofVerifiedLine(circuitType string, valid bool, credentialID *string) string {
	return build("proof_verified", ProofVerifiedData{CircuitType: circuitType, Valid: valid, CredentialID: credentialID})
}

type CredentialStoredData struct {
	CredentialID string `json:"credential_id"`
	Owner        string `json:"owner"`
	CircuitType  string `json:"circuit_type"`
	ExpiresAt    uint64 `json:"expires_at"`
}

func CredentialStoredLine(credentialID, owner, circuitType string, expiresAt uint64) string {
	return build("credential_stored", CredentialStoredData{
		CredentialID: credentialID,
		Owner:        owner,
		CircuitType:  circuitType,
		ExpiresAt:    expiresAt,
	})
}

type CredentialRemovedData struct {
	CredentialID string `json:"credential_id"`
	RemovedBy    string `json:"removed_by"`
}

func CredentialRemovedLine(credentialID, removedBy string) string {
	return build("credential_removed", CredentialRemovedData{CredentialID: credentialID, RemovedBy: removedBy})
}

type CredentialRevokedData struct {
	CredentialID string  `json:"credential_id"`
	RevokedBy    string  `json:"revoked_by"`
	Reason       *string `json:"reason"`
}

func CredentialRevokedLine(credentialID, revokedBy string, reason *string) string {
	return build("credential_revoked", CredentialRevokedData{CredentialID: credentialID, RevokedBy: revokedBy, Reason: reason})
}

type ContractPausedData struct {
	Paused bool `json:"paused"`
}

func ContractPausedLine(paused bool) string {
	return build("contract_paused", ContractPausedData{Paused: paused})
}

type OwnershipProposedData struct {
	CurrentOwner  string `json:"current_owner"`
	ProposedOwner string `json:"proposed_owner"`
}

func OwnershipProposedLine(currentOwner, proposedOwner string) string {
	return build("ownership_proposed", OwnershipProposedData{CurrentOwner: currentOwner, ProposedOwner: proposedOwner})
}

type OwnershipTransferredData struct {
	OldOwner string `json:"old_owner"`
	NewOwner string `json:"new_owner"`
}

func OwnershipTransferredLine(oldOwner, newOwner string) string {
	return build("ownership_transferred", OwnershipTransferredData{OldOwner: oldOwner, NewOwner: newOwner})
}

type AdminChangedData struct {
	Account string `json:"account"`
}

func AdminAddedLine(account string) string {
	return build("admin_added", AdminChangedData{Account: account})
}

func AdminRemovedLine(account string) string {
	return build("admin_removed", AdminChangedData{Account: account})
}
