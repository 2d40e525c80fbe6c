// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"encoding/hex"
	"errors"
	"time"

	"github.com/holiman/uint256"
	log "github.com/luxfi/log"

	"github.com/shade-studio/zk-verifier/internal/access"
	"github.com/shade-studio/zk-verifier/internal/credential"
	"github.com/shade-studio/zk-verifier/internal/events"
	"github.com/shade-studio/zk-verifier/internal/gasmeter"
	"github.com/shade-studio/zk-verifier/internal/groth16verify"
	"github.com/shade-studio/zk-verifier/internal/vkfingerprint"
	"github.com/shade-studio/zk-verifier/internal/zkerrors"
)

// DefaultExpirationSecs is the initial default credential lifetime:
// thirty days.
const DefaultExpirationSecs uint64 = 30 * 24 * 60 * 60

// DefaultStorageCostDecimal is the initial per-credential storage
// deposit, in yoctoNEAR, as a decimal string.
const DefaultStorageCostDecimal = "10000000000000000000000"

// Clock abstracts env::block_timestamp(): the engine is otherwise a
// pure function of its stored state plus the incoming request, and
// this is the one seam where wall-clock time enters.
type Clock interface {
	NowSecs() uint64
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) NowSecs() uint64 { return uint64(time.Now().Unix()) }

type installedKey struct {
	raw    VerificationKey
	parsed *groth16verify.VerifyingKey
	hash   [32]byte
}

// Engine is the verification orchestrator: the single stateful object
// each entry point in spec §6 other than new (NewEngine) is a method on.
type Engine struct {
	roles *access.Roles
	store *credential.Store

	vks map[string]installedKey

	totalVerifications uint64
	totalCredentials   uint64

	defaultExpirationSecs    uint64
	storageCostPerCredential *uint256.Int

	clock    Clock
	logger   log.Logger
	emitter  events.Emitter
}

// NewEngine constructs a fresh engine with owner as the initial
// contract owner, matching the original contract's `new(owner)` init.
func NewEngine(owner string, logger log.Logger) *Engine {
	cost, err := uint256.FromDecimal(DefaultStorageCostDecimal)
	if err != nil {
		panic("engine: invalid built-in default storage cost constant: " + err.Error())
	}
	e := &Engine{
		roles:                 access.New(owner),
		store:                 credential.NewStore(),
		vks:                   make(map[string]installedKey),
		defaultExpirationSecs: DefaultExpirationSecs,
		storageCostPerCredential: cost,
		clock:                 SystemClock{},
		logger:                logger,
	}
	e.emitter = events.EmitterFunc(func(line string) {
		e.logger.Info(line)
	})
	return e
}

// SetClock overrides the engine's time source; intended for tests.
func (e *Engine) SetClock(c Clock) { e.clock = c }

// SetEmitter overrides the engine's EVENT_JSON sink; intended for tests
// that want to capture emitted lines instead of routing them to the logger.
func (e *Engine) SetEmitter(em events.Emitter) { e.emitter = em }

func (e *Engine) emit(line string) {
	if e.emitter != nil {
		e.emitter.Emit(line)
	}
}

// --- verification key management -------------------------------------------------

// SetVerificationKey installs or replaces the verification key for a
// circuit type. Owner-or-admin, not-paused. The key's points are
// parsed and validated eagerly here — a strengthening over the
// original contract's lazy re-parse on every verify call, justified
// in DESIGN.md — so a malformed key is rejected at install time
// rather than at the next proof's expense.
func (e *Engine) SetVerificationKey(caller, circuitType string, vk VerificationKey) error {
	if err := e.roles.AssertOwnerOrAdmin(caller); err != nil {
		return err
	}
	if err := e.roles.AssertNotPaused(); err != nil {
		return err
	}
	if !credential.CircuitType(circuitType).Valid() {
		return zkerrors.Format("unknown circuit type: %s", circuitType)
	}
	ic := icToStrings(vk.IC)
	parsed, err := groth16verify.ParseVerifyingKey(vk.Alpha, vk.Beta, vk.Gamma, vk.Delta, ic)
	if err != nil {
		return err
	}
	hash := vkfingerprint.Fingerprint(vk.Alpha, vk.Beta, vk.Gamma, vk.Delta, ic)

	_, updated := e.vks[circuitType]
	e.vks[circuitType] = installedKey{raw: vk, parsed: parsed, hash: hash}

	e.emit(events.VerificationKeySetLine(circuitType, updated, hex.EncodeToString(hash[:])))
	return nil
}

func icToStrings(ic []G1Point) [][]string {
	out := make([][]string, len(ic))
	for i, p := range ic {
		out[i] = p
	}
	return out
}

// HasVerificationKey reports whether a key is installed for circuitType.
func (e *Engine) HasVerificationKey(circuitType string) bool {
	_, ok := e.vks[circuitType]
	return ok
}

// --- verification orchestrator ----------------------------------------------------

// VerifyProof runs the full seven-step happy path: authorization is
// implicit (any account may call), pause-gated, requires an installed
// key, verifies the proof, and only once the proof is valid and storage
// was requested does it enforce the attached deposit, then optionally
// stores a credential and always emits proof_verified.
//
// A cryptographic verification failure is not an error: it is folded
// into a VerificationResult with Valid=false, the verification counter
// still increments, and the event still fires — only pause, missing-key,
// deposit (when the proof is valid and storage was requested), and
// arity-mismatch failures abort and roll back.
func (e *Engine) VerifyProof(caller string, deposit *uint256.Int, input VerifyProofInput) (*VerificationResult, error) {
	meter := &gasmeter.Meter{}
	meter.Consume(gasmeter.GasVerifyBase)
	meter.Consume(gasmeter.GasPerPublicInput * uint64(len(input.PublicSignals)))

	if err := e.roles.AssertNotPaused(); err != nil {
		return nil, err
	}
	key, ok := e.vks[input.CircuitType]
	if !ok {
		return nil, zkerrors.VerificationKeyNotFound(input.CircuitType)
	}

	valid, credentialID, err := e.runVerification(key, input, meter, caller, deposit)
	if err != nil {
		return nil, err
	}

	e.totalVerifications++
	e.emit(events.ProofVerifiedLine(input.CircuitType, valid, credentialID))

	return &VerificationResult{Valid: valid, CredentialID: credentialID, GasUsed: meter.Used()}, nil
}

// VerifyProofView runs the same pairing check as VerifyProof but never
// persists a credential and never emits an event, matching the
// original contract's read-only verify_proof_view exactly.
func (e *Engine) VerifyProofView(input VerifyProofInput) (*VerificationResult, error) {
	meter := &gasmeter.Meter{}
	meter.Consume(gasmeter.GasVerifyBase)
	meter.Consume(gasmeter.GasPerPublicInput * uint64(len(input.PublicSignals)))

	if err := e.roles.AssertNotPaused(); err != nil {
		return nil, err
	}
	key, ok := e.vks[input.CircuitType]
	if !ok {
		return nil, zkerrors.VerificationKeyNotFound(input.CircuitType)
	}

	valid, err := e.checkProof(key, input)
	if err != nil {
		return nil, err
	}
	return &VerificationResult{Valid: valid, CredentialID: nil, GasUsed: meter.Used()}, nil
}

// runVerification performs the pairing check and, on success and when
// requested, enforces the storage deposit and stores a credential. It
// returns (valid, credentialID, err); err is non-nil for an arity
// mismatch (which aborts the whole call) or for an insufficient
// deposit — but the deposit is only ever checked once the proof has
// been found valid and storage was actually requested, matching
// original_source/contracts/zk-verifier/src/lib.rs's
// `if is_valid && input.store_credential { assert deposit ... }`
// nesting: an invalid proof with no deposit attached still returns a
// normal, non-aborting {valid:false} result.
func (e *Engine) runVerification(key installedKey, input VerifyProofInput, meter *gasmeter.Meter, caller string, deposit *uint256.Int) (bool, *string, error) {
	valid, err := e.checkProof(key, input)
	if err != nil {
		return false, nil, err
	}
	if !valid || !input.StoreCredential {
		return valid, nil, nil
	}

	required := e.storageCostPerCredential
	if deposit == nil || deposit.Cmp(required) < 0 {
		attached := "0"
		if deposit != nil {
			attached = deposit.Dec()
		}
		return false, nil, zkerrors.InsufficientDeposit(required.Dec(), attached)
	}

	now := e.clock.NowSecs()
	expiresAt := now + e.defaultExpirationSecs
	if input.CustomExpiration != nil {
		expiresAt = now + *input.CustomExpiration
	}

	id := e.store.NextID(caller, credential.CircuitType(input.CircuitType))
	e.store.Insert(credential.Credential{
		ID:            id,
		Owner:         caller,
		CircuitType:   credential.CircuitType(input.CircuitType),
		PublicSignals: input.PublicSignals,
		VerifiedAt:    now,
		ExpiresAt:     expiresAt,
		Claim:         input.Claim,
	})
	e.totalCredentials++
	meter.Consume(gasmeter.GasStoreCredential)

	e.emit(events.CredentialStoredLine(id, caller, input.CircuitType, expiresAt))
	return true, &id, nil
}

// checkProof parses the proof and evaluates the pairing equation. An
// arity mismatch is propagated as an abort (spec §9's chosen policy);
// any other parse/format failure is folded into valid=false.
func (e *Engine) checkProof(key installedKey, input VerifyProofInput) (bool, error) {
	proof, err := groth16verify.ParseProof(input.Proof.PiA, input.Proof.PiB, input.Proof.PiC)
	if err != nil {
		return false, nil
	}
	valid, err := groth16verify.Verify(key.parsed, proof, input.PublicSignals)
	if err != nil {
		var arity *groth16verify.ArityMismatchError
		if errors.As(err, &arity) {
			return false, err
		}
		return false, nil
	}
	return valid, nil
}

// --- credential reads ---------------------------------------------------------------

// GetCredential returns the stored credential with the given id, if any.
func (e *Engine) GetCredential(id string) (*Credential, bool) {
	c, ok := e.store.Get(id)
	if !ok {
		return nil, false
	}
	return toWireCredential(c), true
}

// IsCredentialValid reports a credential's validity, honoring the
// tombstone set first: revoked ids are always invalid even if the
// underlying data was erased. Returns nil when the id is unknown and
// was never revoked, matching the spec's three-valued result.
func (e *Engine) IsCredentialValid(id string) *bool {
	if e.store.IsRevoked(id) {
		f := false
		return &f
	}
	valid, found := e.store.IsValid(id, e.clock.NowSecs())
	if !found {
		return nil
	}
	return &valid
}

// GetCredentialsByOwner paginates owner's credentials.
func (e *Engine) GetCredentialsByOwner(owner string, includeExpired bool, offset, limit uint32) PaginatedCredentials {
	page, total, hasMore := e.store.ByOwner(owner, includeExpired, offset, limit, e.clock.NowSecs())
	out := make([]Credential, len(page))
	for i, c := range page {
		out[i] = *toWireCredential(c)
	}
	return PaginatedCredentials{Credentials: out, Total: total, HasMore: hasMore}
}

func toWireCredential(c credential.Credential) *Credential {
	return &Credential{
		ID:            c.ID,
		Owner:         c.Owner,
		CircuitType:   string(c.CircuitType),
		PublicSignals: c.PublicSignals,
		VerifiedAt:    c.VerifiedAt,
		ExpiresAt:     c.ExpiresAt,
		Claim:         c.Claim,
	}
}

// --- credential lifecycle mutations --------------------------------------------------

// RemoveCredential deletes a credential the caller owns. Unlike most
// failure modes in this engine, a pause check here aborts the call
// (matching the original contract's assert_not_paused panic); only a
// missing id or an ownership mismatch is a silent false.
func (e *Engine) RemoveCredential(caller, id string) (bool, error) {
	if err := e.roles.AssertNotPaused(); err != nil {
		return false, err
	}
	removed := e.store.Remove(id, caller)
	if !removed {
		return false, nil
	}
	if e.totalCredentials > 0 {
		e.totalCredentials--
	}
	e.emit(events.CredentialRemovedLine(id, caller))
	return true, nil
}

// RevokeCredential permanently tombstones id, erasing any stored data.
// Owner-or-admin, not-paused. Unlike RemoveCredential, this always
// succeeds — even for an id that never existed — because the
// tombstone itself is the durable fact being recorded.
func (e *Engine) RevokeCredential(caller, id string, reason *string) error {
	if err := e.roles.AssertOwnerOrAdmin(caller); err != nil {
		return err
	}
	if err := e.roles.AssertNotPaused(); err != nil {
		return err
	}
	hadData := e.store.Revoke(id)
	if hadData && e.totalCredentials > 0 {
		e.totalCredentials--
	}
	e.emit(events.CredentialRevokedLine(id, caller, reason))
	return nil
}

// IsCredentialRevoked reports whether id has been tombstoned.
func (e *Engine) IsCredentialRevoked(id string) bool {
	return e.store.IsRevoked(id)
}

// --- access & lifecycle control ------------------------------------------------------

// SetPaused toggles the pause flag. Owner-only.
func (e *Engine) SetPaused(caller string, paused bool) error {
	if err := e.roles.SetPaused(caller, paused); err != nil {
		return err
	}
	e.emit(events.ContractPausedLine(paused))
	return nil
}

// ProposeOwner begins a two-step ownership transfer. Owner-only; the
// event fires before the pending state is committed, matching the
// original contract's emit-then-set ordering.
func (e *Engine) ProposeOwner(caller, newOwner string) error {
	if err := e.roles.AssertOwner(caller); err != nil {
		return err
	}
	e.emit(events.OwnershipProposedLine(e.roles.Owner, newOwner))
	return e.roles.ProposeOwner(caller, newOwner)
}

// AcceptOwnership completes a pending transfer. Not pause-gated: this
// is the rescue path that lets an incoming owner unpause a stuck contract.
func (e *Engine) AcceptOwnership(caller string) error {
	oldOwner := e.roles.Owner
	if err := e.roles.AcceptOwnership(caller); err != nil {
		return err
	}
	e.emit(events.OwnershipTransferredLine(oldOwner, caller))
	return nil
}

// AddAdmin adds account to the admin set. Owner-only.
func (e *Engine) AddAdmin(caller, account string) error {
	if err := e.roles.AddAdmin(caller, account); err != nil {
		return err
	}
	e.emit(events.AdminAddedLine(account))
	return nil
}

// RemoveAdmin removes account from the admin set. Owner-only.
func (e *Engine) RemoveAdmin(caller, account string) error {
	if err := e.roles.RemoveAdmin(caller, account); err != nil {
		return err
	}
	e.emit(events.AdminRemovedLine(account))
	return nil
}

// IsAdmin reports whether account is a registered admin.
func (e *Engine) IsAdmin(account string) bool {
	return e.roles.IsAdmin(account)
}

// SetDefaultExpiration sets the default credential lifetime. Owner-only.
// No event is emitted, matching the original contract.
func (e *Engine) SetDefaultExpiration(caller string, seconds uint64) error {
	if err := e.roles.AssertOwner(caller); err != nil {
		return err
	}
	e.defaultExpirationSecs = seconds
	return nil
}

// --- views -----------------------------------------------------------------------

// GetConfig returns the current contract configuration.
func (e *Engine) GetConfig() ContractConfig {
	var proposed *string
	if e.roles.ProposedOwner != "" {
		p := e.roles.ProposedOwner
		proposed = &p
	}
	admins := make([]string, 0, len(e.roles.Admins))
	for a := range e.roles.Admins {
		admins = append(admins, a)
	}
	return ContractConfig{
		Owner:                    e.roles.Owner,
		ProposedOwner:            proposed,
		Admins:                   admins,
		IsPaused:                 e.roles.Paused,
		DefaultExpirationSecs:    e.defaultExpirationSecs,
		StorageCostPerCredential: e.storageCostPerCredential.Dec(),
	}
}

// GetStats returns current contract counters.
func (e *Engine) GetStats() ContractStats {
	return ContractStats{
		TotalVerifications:         e.totalVerifications,
		TotalCredentials:           e.totalCredentials,
		IsPaused:                   e.roles.Paused,
		VerificationKeysRegistered: uint32(len(e.vks)),
	}
}

// GetStorageCost returns the per-credential storage deposit as a
// decimal string, matching the original contract's u128-to-string wire
// convention.
func (e *Engine) GetStorageCost() string {
	return e.storageCostPerCredential.Dec()
}
