package types

import (
	errorsmod "cosmossdk.io/errors"
	storetypes "cosmossdk.io/store/types"
)

// InitializeClient implements spec.md §6's constructor: it persists
// initialClientState and seeds the consensus-state-hash map with
// initialConsensusStateHash at initialClientState.LatestHeight. Construction
// invariants (trustingPeriod ≤ unbondingPeriod) are enforced by
// ClientState.Validate, called from NewClientState before this runs.
func InitializeClient(clientStore storetypes.KVStore, cs ClientState, initialConsensusStateHash [32]byte) error {
	if err := cs.Validate(); err != nil {
		return err
	}
	if IsZeroHash(initialConsensusStateHash) {
		return errorsmod.Wrap(ErrInvalidConsensusState, "initial consensus state hash cannot be the zero sentinel")
	}
	SetClientState(clientStore, cs)
	SetConsensusStateHash(clientStore, uint32(cs.LatestHeight.RevisionHeight), initialConsensusStateHash)
	return nil
}

// GetClientState returns the canonical encoding of the ClientState stored at
// KeyClientState (spec.md §4.1 "getClientState").
func GetClientState(clientStore storetypes.KVStore) (ClientState, error) {
	bz := clientStore.Get(KeyClientState)
	if len(bz) == 0 {
		return ClientState{}, errorsmod.Wrap(ErrInvalidClientState, "client state not set")
	}
	var cs ClientState
	if err := cs.Unmarshal(bz); err != nil {
		return ClientState{}, err
	}
	return cs, nil
}

// SetClientState persists the canonical encoding of cs.
func SetClientState(clientStore storetypes.KVStore, cs ClientState) {
	bz, err := cs.Marshal()
	if err != nil {
		panic(err) // cs must always have passed Validate() before being set
	}
	clientStore.Set(KeyClientState, bz)
}

// GetConsensusStateHash returns the 32-byte hash trusted at revisionHeight,
// failing with ErrConsensusStateNotFound if the entry is the reserved zero
// sentinel (spec.md §4.1 "Policy").
func GetConsensusStateHash(clientStore storetypes.KVStore, revisionHeight uint32) ([32]byte, error) {
	bz := clientStore.Get(ConsensusStateHashKey(revisionHeight))
	var hash [32]byte
	copy(hash[:], bz)
	if IsZeroHash(hash) {
		return [32]byte{}, errorsmod.Wrapf(ErrConsensusStateNotFound, "no consensus state hash at height %d", revisionHeight)
	}
	return hash, nil
}

// SetConsensusStateHash writes the trusted hash for revisionHeight. Entries
// are append-only in practice (spec.md §3); overwriting with a different
// hash is exactly what the update handler's Misbehaviour branch detects
// before calling this.
func SetConsensusStateHash(clientStore storetypes.KVStore, revisionHeight uint32, hash [32]byte) {
	clientStore.Set(ConsensusStateHashKey(revisionHeight), hash[:])
}

// FreezeClientState marks the stored client state frozen in place. It is
// used by the misbehaviour and combined update-and-membership handlers, and
// is always called against the real (non-cache-wrapped) client store so the
// freeze durably persists even when the rest of the handler's writes are
// discarded (spec.md §4.5/§9 "a detected misbehaviour must freeze the
// client even though the overall call reports failure").
func FreezeClientState(clientStore storetypes.KVStore) error {
	cs, err := GetClientState(clientStore)
	if err != nil {
		return err
	}
	cs.IsFrozen = true
	SetClientState(clientStore, cs)
	return nil
}

// IterateConsensusStateHashes walks every present (non-zero) consensus
// state hash entry in ascending height order, invoking cb for each. It
// stops early if cb returns false. It is itself the supplemented
// ExportMetadata-style accessor (SPEC_FULL.md §4); no separate
// ExportMetadata function exists. spec.md does not specify garbage
// collection and none is performed here.
func IterateConsensusStateHashes(clientStore storetypes.KVStore, cb func(revisionHeight uint32, hash [32]byte) bool) error {
	iterator := clientStore.Iterator(KeyConsensusStatePrefix, storetypes.PrefixEndBytes(KeyConsensusStatePrefix))
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		height, err := ParseConsensusStateHashKey(iterator.Key())
		if err != nil {
			return err
		}
		var hash [32]byte
		copy(hash[:], iterator.Value())
		if !cb(height, hash) {
			break
		}
	}
	return nil
}
