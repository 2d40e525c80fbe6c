// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package access implements the engine's ownership, admin-set, and
// pause controls: owner-only / owner-or-admin authorization, two-step
// ownership transfer, and the pause flag. The engine checks the pause
// flag in set_verification_key, verify_proof, verify_proof_view,
// remove_credential and revoke_credential; set_paused, propose_owner,
// accept_ownership, add_admin, remove_admin and set_default_expiration
// do not check it.
package access

import "github.com/shade-studio/zk-verifier/internal/zkerrors"

// Roles holds the singleton access-control state.
//
// Like credential.Store, Roles carries no mutex: the host serializes
// every call to completion before the next begins.
type Roles struct {
	Owner         string
	ProposedOwner string
	Admins        map[string]struct{}
	Paused        bool
}

// New returns a fresh Roles with owner as the initial contract owner
// and no admins.
func New(owner string) *Roles {
	return &Roles{Owner: owner, Admins: make(map[string]struct{})}
}

// IsOwner reports whether account is the current owner.
func (r *Roles) IsOwner(account string) bool {
	return account == r.Owner
}

// IsAdmin reports whether account is in the admin set.
func (r *Roles) IsAdmin(account string) bool {
	_, ok := r.Admins[account]
	return ok
}

// AssertOwner returns zkerrors.Unauthorized() unless caller is the owner.
func (r *Roles) AssertOwner(caller string) error {
	if !r.IsOwner(caller) {
		return zkerrors.Unauthorized()
	}
	return nil
}

// AssertOwnerOrAdmin returns zkerrors.Unauthorized() unless caller is the owner
// or a registered admin.
func (r *Roles) AssertOwnerOrAdmin(caller string) error {
	if r.IsOwner(caller) || r.IsAdmin(caller) {
		return nil
	}
	return zkerrors.Unauthorized()
}

// AssertNotPaused returns zkerrors.Paused() if the contract is paused.
func (r *Roles) AssertNotPaused() error {
	if r.Paused {
		return zkerrors.Paused()
	}
	return nil
}

// ProposeOwner begins a two-step ownership transfer. Only the current
// owner may propose, and admins cannot propose on the owner's behalf.
func (r *Roles) ProposeOwner(caller, newOwner string) error {
	if err := r.AssertOwner(caller); err != nil {
		return err
	}
	r.ProposedOwner = newOwner
	return nil
}

// AcceptOwnership completes a pending transfer if caller is exactly the
// proposed account. This is deliberately not gated by the pause flag:
// it is the rescue path that lets a new owner unpause a stuck contract.
func (r *Roles) AcceptOwnership(caller string) error {
	if r.ProposedOwner == "" || caller != r.ProposedOwner {
		return zkerrors.Unauthorized()
	}
	r.Owner = caller
	r.ProposedOwner = ""
	return nil
}

// AddAdmin adds account to the admin set. Owner-only.
func (r *Roles) AddAdmin(caller, account string) error {
	if err := r.AssertOwner(caller); err != nil {
		return err
	}
	r.Admins[account] = struct{}{}
	return nil
}

// RemoveAdmin removes account from the admin set. Owner-only.
func (r *Roles) RemoveAdmin(caller, account string) error {
	if err := r.AssertOwner(caller); err != nil {
		return err
	}
	delete(r.Admins, account)
	return nil
}

// SetPaused sets the pause flag. Owner-only.
func (r *Roles) SetPaused(caller string, paused bool) error {
	if err := r.AssertOwner(caller); err != nil {
		return err
	}
	r.Paused = paused
	return nil
}
