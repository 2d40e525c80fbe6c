// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"strings"
	"testing"

	"github.com/holiman/uint256"
	log "github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/shade-studio/zk-verifier/internal/credential"
	"github.com/shade-studio/zk-verifier/internal/events"
	"github.com/shade-studio/zk-verifier/internal/zkerrors"
)

// See internal/groth16verify/verifier_test.go for the derivation of
// this fixture: a synthetic algebraic tuple satisfying the Groth16
// pairing equation with beta = gamma = delta = the G2 generator.
var (
	g1Generator = G1Point{"1", "2"}
	g2Generator = G2Point{
		{
			"11559732032986387107991004021392285783925812861821192530917403151452391805634",
			"10857046999023057135944570762232829481370756359578518086990519993285655852781",
		},
		{
			"4082367875863433681332203403145435568316851327593401208105741076214120093531",
			"8495653923123431417604973247489272438418190587263600148770280649306958101930",
		},
	}
	twoG1 = G1Point{
		"1368015179489954701390400359078579693043519447331113978918064868415326638035",
		"9918110051302171585080402603319702774565515993150576347155970296011118125764",
	}
	fourG1 = G1Point{
		"3010198690406615200373504922352659861758983907867017329644089018310584441462",
		"4027184618003122424972590350825261965929648733675738730716654005365300998076",
	}
)

func testVK() VerificationKey {
	return VerificationKey{
		Alpha: g1Generator,
		Beta:  g2Generator,
		Gamma: g2Generator,
		Delta: g2Generator,
		IC:    []G1Point{g1Generator, g1Generator},
	}
}

func validProof() Groth16Proof {
	return Groth16Proof{PiA: fourG1, PiB: g2Generator, PiC: g1Generator}
}

type fakeClock struct{ now uint64 }

func (c *fakeClock) NowSecs() uint64 { return c.now }

func testLogger() log.Logger { return log.NewTestLogger(log.InfoLevel) }

func newTestEngine(owner string) (*Engine, *fakeClock, *[]string) {
	e := NewEngine(owner, testLogger())
	clock := &fakeClock{now: 1_700_000_000}
	e.SetClock(clock)
	var lines []string
	e.SetEmitter(events.EmitterFunc(func(line string) { lines = append(lines, line) }))
	return e, clock, &lines
}

const (
	owner = "owner.testnet"
	alice = "alice.testnet"
	bob   = "bob.testnet"
)

// Scenario 1: install a verification key, then verify a trivial
// consistent proof against it without storing a credential.
func TestScenarioInstallKeyAndVerify(t *testing.T) {
	e, _, lines := newTestEngine(owner)
	require.False(t, e.HasVerificationKey("verified-builder"))

	require.NoError(t, e.SetVerificationKey(owner, "verified-builder", testVK()))
	require.True(t, e.HasVerificationKey("verified-builder"))

	result, err := e.VerifyProofView(VerifyProofInput{
		CircuitType:   "verified-builder",
		Proof:         validProof(),
		PublicSignals: []string{"1"},
	})
	require.NoError(t, err)
	require.True(t, result.Valid)
	require.Nil(t, result.CredentialID)

	// verify_proof_view must never emit events.
	for _, l := range *lines {
		require.NotContains(t, l, "proof_verified")
	}
}

// Scenario 2: a successful verify_proof with store_credential=true
// deposits the exact storage cost and records expires_at as
// verified_at + default_expiration_secs.
func TestScenarioStoreCredentialExactNumbers(t *testing.T) {
	e, clock, lines := newTestEngine(owner)
	require.NoError(t, e.SetVerificationKey(owner, "verified-builder", testVK()))

	deposit, err := uint256.FromDecimal(DefaultStorageCostDecimal)
	require.NoError(t, err)

	result, err := e.VerifyProof(alice, deposit, VerifyProofInput{
		CircuitType:     "verified-builder",
		Proof:           validProof(),
		PublicSignals:   []string{"1"},
		StoreCredential: true,
	})
	require.NoError(t, err)
	require.True(t, result.Valid)
	require.NotNil(t, result.CredentialID)

	cred, ok := e.GetCredential(*result.CredentialID)
	require.True(t, ok)
	require.Equal(t, clock.now, cred.VerifiedAt)
	require.Equal(t, clock.now+DefaultExpirationSecs, cred.ExpiresAt)
	require.Equal(t, uint64(2_592_000), cred.ExpiresAt-cred.VerifiedAt)

	found := false
	for _, l := range *lines {
		if strings.Contains(l, "credential_stored") {
			found = true
		}
	}
	require.True(t, found)
}

// Scenario 3: a wrong public signal folds into valid=false without
// aborting, and no credential is stored.
func TestScenarioWrongPublicSignalIsNonAborting(t *testing.T) {
	e, _, _ := newTestEngine(owner)
	require.NoError(t, e.SetVerificationKey(owner, "verified-builder", testVK()))

	deposit, err := uint256.FromDecimal(DefaultStorageCostDecimal)
	require.NoError(t, err)

	result, err := e.VerifyProof(alice, deposit, VerifyProofInput{
		CircuitType:     "verified-builder",
		Proof:           validProof(),
		PublicSignals:   []string{"2"},
		StoreCredential: true,
	})
	require.NoError(t, err)
	require.False(t, result.Valid)
	require.Nil(t, result.CredentialID)

	stats := e.GetStats()
	require.EqualValues(t, 1, stats.TotalVerifications)
	require.EqualValues(t, 0, stats.TotalCredentials)
}

// Scenario 3b: a tampered G1 point in the proof also folds into
// valid=false rather than aborting the call.
func TestScenarioTamperedProofIsNonAborting(t *testing.T) {
	e, _, _ := newTestEngine(owner)
	require.NoError(t, e.SetVerificationKey(owner, "verified-builder", testVK()))

	result, err := e.VerifyProofView(VerifyProofInput{
		CircuitType:   "verified-builder",
		Proof:         Groth16Proof{PiA: G1Point{"12345", "2"}, PiB: g2Generator, PiC: g1Generator},
		PublicSignals: []string{"1"},
	})
	require.NoError(t, err)
	require.False(t, result.Valid)
}

// Scenario 4: two-step ownership transfer.
func TestScenarioTwoStepOwnershipTransfer(t *testing.T) {
	e, _, lines := newTestEngine(owner)

	require.NoError(t, e.ProposeOwner(owner, alice))
	require.Error(t, e.AcceptOwnership(bob))
	require.NoError(t, e.AcceptOwnership(alice))

	cfg := e.GetConfig()
	require.Equal(t, alice, cfg.Owner)
	require.Nil(t, cfg.ProposedOwner)

	var sawProposed, sawTransferred bool
	for _, l := range *lines {
		if strings.Contains(l, "ownership_proposed") {
			sawProposed = true
		}
		if strings.Contains(l, "ownership_transferred") {
			sawTransferred = true
		}
	}
	require.True(t, sawProposed)
	require.True(t, sawTransferred)
}

// Scenario 5: revoking a credential id that never existed still
// tombstones it permanently.
func TestScenarioRevokeNonexistentIDTombstonesPermanently(t *testing.T) {
	e, _, _ := newTestEngine(owner)

	require.False(t, e.IsCredentialRevoked("cred-fake"))
	require.NoError(t, e.RevokeCredential(owner, "cred-fake", nil))
	require.True(t, e.IsCredentialRevoked("cred-fake"))

	valid := e.IsCredentialValid("cred-fake")
	require.NotNil(t, valid)
	require.False(t, *valid)
}

func TestArityMismatchAbortsVerifyProof(t *testing.T) {
	e, _, _ := newTestEngine(owner)
	require.NoError(t, e.SetVerificationKey(owner, "verified-builder", testVK()))

	deposit, err := uint256.FromDecimal(DefaultStorageCostDecimal)
	require.NoError(t, err)

	_, err = e.VerifyProof(alice, deposit, VerifyProofInput{
		CircuitType:     "verified-builder",
		Proof:           validProof(),
		PublicSignals:   []string{"1", "2"},
		StoreCredential: true,
	})
	require.Error(t, err)
}

func TestPauseGatesMutatingCallsExceptAcceptOwnership(t *testing.T) {
	e, _, _ := newTestEngine(owner)
	require.NoError(t, e.SetPaused(owner, true))

	err := e.SetVerificationKey(owner, "verified-builder", testVK())
	require.True(t, zkerrors.IsKind(err, zkerrors.KindLifecycle))

	require.NoError(t, e.ProposeOwner(owner, alice))
	require.NoError(t, e.AcceptOwnership(alice))
}

func TestVerifyProofViewAbortsWhenPaused(t *testing.T) {
	e, _, _ := newTestEngine(owner)
	require.NoError(t, e.SetVerificationKey(owner, "verified-builder", testVK()))
	require.NoError(t, e.SetPaused(owner, true))

	_, err := e.VerifyProofView(VerifyProofInput{
		CircuitType:   "verified-builder",
		Proof:         validProof(),
		PublicSignals: []string{"1"},
	})
	require.True(t, zkerrors.IsKind(err, zkerrors.KindLifecycle))
}

func TestRemoveCredentialAbortsWhenPaused(t *testing.T) {
	e, _, _ := newTestEngine(owner)
	require.NoError(t, e.SetPaused(owner, true))

	_, err := e.RemoveCredential(alice, "cred-fake")
	require.Error(t, err)
}

func TestInsufficientDepositAbortsStorage(t *testing.T) {
	e, _, _ := newTestEngine(owner)
	require.NoError(t, e.SetVerificationKey(owner, "verified-builder", testVK()))

	_, err := e.VerifyProof(alice, uint256.NewInt(1), VerifyProofInput{
		CircuitType:     "verified-builder",
		Proof:           validProof(),
		PublicSignals:   []string{"1"},
		StoreCredential: true,
	})
	require.True(t, zkerrors.IsKind(err, zkerrors.KindEconomic))
}

// An invalid proof never reaches the deposit check at all: storage is
// never attempted, so an underfunded call still returns a normal,
// non-aborting {valid:false} rather than an Economic error.
func TestInvalidProofWithInsufficientDepositIsNonAborting(t *testing.T) {
	e, _, _ := newTestEngine(owner)
	require.NoError(t, e.SetVerificationKey(owner, "verified-builder", testVK()))

	result, err := e.VerifyProof(alice, uint256.NewInt(1), VerifyProofInput{
		CircuitType:     "verified-builder",
		Proof:           validProof(),
		PublicSignals:   []string{"2"},
		StoreCredential: true,
	})
	require.NoError(t, err)
	require.False(t, result.Valid)
	require.Nil(t, result.CredentialID)

	stats := e.GetStats()
	require.EqualValues(t, 1, stats.TotalVerifications)
	require.EqualValues(t, 0, stats.TotalCredentials)
}

func TestCircuitTypeConstantsMatchCredentialPackage(t *testing.T) {
	require.Equal(t, "verified-builder", string(credential.VerifiedBuilder))
}

