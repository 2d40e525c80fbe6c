// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package zkerrors implements the engine's seven-category error
// taxonomy. Every mutating call that must abort the transaction and
// roll back state returns a *Error (except for the arity mismatch
// described on Error); cryptographic non-validity is
// never represented by this type — it is a plain `valid: false` on
// the result, exactly as spec'd.
package zkerrors

import (
	"errors"
	"fmt"
)

// Kind is one of the seven taxonomy categories. All Kinds except
// Verification correspond to an aborting, rolled-back failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuthorization
	KindLifecycle
	KindNotFound
	KindFormat
	KindVerification
	KindEconomic
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindAuthorization:
		return "authorization"
	case KindLifecycle:
		return "lifecycle"
	case KindNotFound:
		return "not_found"
	case KindFormat:
		return "format"
	case KindVerification:
		return "verification"
	case KindEconomic:
		return "economic"
	case KindConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

// Error is the engine's abort-carrying error type. The one exception is a
// public-signal arity mismatch, which aborts verify_proof and
// verify_proof_view with a *groth16verify.ArityMismatchError whose
// message is that of InvalidPublicSignals.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// IsKind reports whether err is, or wraps, a *Error of the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Unauthorized mirrors the original contract's ContractError::Unauthorized.
func Unauthorized() *Error {
	return newf(KindAuthorization, "unauthorized: caller is not contract owner")
}

// Paused mirrors ContractError::ContractPaused.
func Paused() *Error {
	return newf(KindLifecycle, "contract is paused")
}

// VerificationKeyNotFound mirrors ContractError::VerificationKeyNotFound.
func VerificationKeyNotFound(circuitType string) *Error {
	return newf(KindNotFound, "no verification key registered for circuit: %s", circuitType)
}

// Format mirrors ContractError::InvalidProofFormat.
func Format(format string, args ...any) *Error {
	return newf(KindFormat, "invalid proof format: "+format, args...)
}

// InvalidPublicSignals mirrors ContractError::InvalidPublicSignals.
func InvalidPublicSignals(format string, args ...any) *Error {
	return newf(KindFormat, "invalid public signals: "+format, args...)
}

// InsufficientDeposit mirrors ContractError::InsufficientDeposit.
func InsufficientDeposit(requiredDecimal, attachedDecimal string) *Error {
	return newf(KindEconomic, "insufficient deposit: required %s yoctoNEAR, attached %s", requiredDecimal, attachedDecimal)
}

// InvalidVerificationKey mirrors ContractError::InvalidVerificationKey.
func InvalidVerificationKey(format string, args ...any) *Error {
	return newf(KindConfiguration, "invalid verification key: "+format, args...)
}
