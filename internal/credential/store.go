// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package credential

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Store holds every live (stored and not removed or revoked)
// credential, an insertion-ordered
// per-owner index, and a permanent tombstone set for revoked ids.
//
// Unlike nearly every stateful struct in the teacher's precompile
// packages, Store carries no sync.RWMutex: the engine's execution
// model (spec §5) is a single-threaded host calling one entry point
// at a time to completion, with no goroutines and no concurrent
// access to coordinate. Adding a mutex here would be dead weight, not
// defensive code — see DESIGN.md.
type Store struct {
	credentials map[string]Credential
	byOwner     map[string][]string
	revoked     map[string]struct{}
	nonce       uint64
}

// NewStore returns an empty credential store.
func NewStore() *Store {
	return &Store{
		credentials: make(map[string]Credential),
		byOwner:     make(map[string][]string),
		revoked:     make(map[string]struct{}),
	}
}

// NextID derives the next deterministic credential id for owner and
// circuitType, bumping the internal nonce. The id is
// "cred-" + hex(sha256(owner ":" circuitType ":" nonce))[:16 bytes].
func (s *Store) NextID(owner string, circuitType CircuitType) string {
	nonce := s.nonce
	s.nonce++
	payload := fmt.Sprintf("%s:%s:%d", owner, circuitType, nonce)
	sum := sha256.Sum256([]byte(payload))
	return "cred-" + hex.EncodeToString(sum[:16])
}

// Insert stores c and appends its id to its owner's index.
func (s *Store) Insert(c Credential) {
	s.credentials[c.ID] = c
	s.byOwner[c.Owner] = append(s.byOwner[c.Owner], c.ID)
}

// Get returns the credential with the given id, if it exists.
func (s *Store) Get(id string) (Credential, bool) {
	c, ok := s.credentials[id]
	return c, ok
}

// ByOwner walks owner's credential ids in insertion order, filters out
// expired entries unless includeExpired is set, counts every surviving
// entry into total, and collects the page in [offset, offset+limit).
func (s *Store) ByOwner(owner string, includeExpired bool, offset, limit uint32, now uint64) (page []Credential, total uint32, hasMore bool) {
	ids := s.byOwner[owner]
	for _, id := range ids {
		c, ok := s.credentials[id]
		if !ok {
			continue
		}
		if !includeExpired && c.ExpiresAt <= now {
			continue
		}
		if total >= offset && uint32(len(page)) < limit {
			page = append(page, c)
		}
		total++
	}
	hasMore = offset+uint32(len(page)) < total
	return page, total, hasMore
}

// IsValid reports whether a stored, non-expired credential exists for
// id. It does not consult the tombstone set: callers that must honor
// revocation (the engine's is_credential_valid) check IsRevoked first.
func (s *Store) IsValid(id string, now uint64) (valid bool, found bool) {
	c, ok := s.credentials[id]
	if !ok {
		return false, false
	}
	return c.ExpiresAt > now, true
}

// Remove deletes the credential with the given id if it exists and is
// owned by caller, returning whether it removed anything. A missing
// id or ownership mismatch is a silent no-op, matching the original
// contract's remove_credential semantics.
func (s *Store) Remove(id, caller string) bool {
	c, ok := s.credentials[id]
	if !ok || c.Owner != caller {
		return false
	}
	delete(s.credentials, id)
	s.removeFromOwnerSet(c.Owner, id)
	return true
}

// Revoke tombstones id permanently, erasing its stored data if present.
// It reports whether a credential existed (for the caller's bookkeeping,
// e.g. decrementing a total count) — revocation itself always succeeds,
// even for an id that never existed.
func (s *Store) Revoke(id string) (hadData bool) {
	c, ok := s.credentials[id]
	if ok {
		delete(s.credentials, id)
		s.removeFromOwnerSet(c.Owner, id)
	}
	s.revoked[id] = struct{}{}
	return ok
}

// IsRevoked reports whether id has been tombstoned.
func (s *Store) IsRevoked(id string) bool {
	_, ok := s.revoked[id]
	return ok
}

func (s *Store) removeFromOwnerSet(owner, id string) {
	ids := s.byOwner[owner]
	for i, existing := range ids {
		if existing == id {
			s.byOwner[owner] = append(ids[:i], ids[i+1:]...)
			return
		}
	}
}
