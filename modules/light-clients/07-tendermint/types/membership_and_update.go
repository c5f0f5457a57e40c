package types

import (
	"time"

	errorsmod "cosmossdk.io/errors"
	storetypes "cosmossdk.io/store/types"
)

// CombinedApplyResult mirrors MembershipApplyResult but for the combined
// update-and-membership path (spec.md §4.5), additionally surfacing the
// UpdateResult so the caller can durably persist a detected freeze even
// when the overall call later fails.
type CombinedApplyResult struct {
	UpdateResult UpdateResult
	Timestamp    uint64
	CachePairs   []KVPair
	CacheHeight  uint32
}

// ApplyMembershipAndUpdateClient implements spec.md §4.5: it folds
// ApplyUpdateClient's state transition and the single-height membership
// check behind one verifier call, so a batched prover can amortize both
// into a single succinct proof.
//
// clientStore MUST be a cache-wrapped child of the real client store, same
// as ApplyUpdateClient. On ErrCannotHandleMisbehaviour the returned
// CombinedApplyResult is non-nil with UpdateResult populated, specifically so
// that keeper.Keeper.Membership can detect UpdateResultMisbehaviour and
// re-apply FreezeClientState directly against the real store before
// discarding this call's cache-wrapped writes (spec.md §4.5 step 9 / §9 Open
// Question: "a detected misbehaviour must freeze the client even though the
// overall call reports failure"). Every other failure returns a nil result.
//
// The verifier is called before the update result is computed, so only a
// verified proof can freeze the client. If checkUpdateResult yields
// UpdateResultMisbehaviour, the client is frozen and the call fails with
// ErrCannotHandleMisbehaviour (spec.md §4.5 step 7): a combined proof can
// never be allowed to both freeze the client AND report a successful
// membership answer out of the same call.
func ApplyMembershipAndUpdateClient(
	clientStore storetypes.KVStore,
	ucAndMembershipVKey [32]byte,
	verifier Verifier,
	innerProof []byte,
	proofHeight Height,
	path [][]byte,
	value []byte,
	now time.Time,
) (*CombinedApplyResult, error) {
	var proof SP1MembershipAndUpdateClientProof
	if err := proof.Unmarshal(innerProof); err != nil {
		return nil, err
	}

	if proof.SP1Proof.VKey != ucAndMembershipVKey {
		return nil, errorsmod.Wrapf(ErrVerificationKeyMismatch, "expected %x, got %x", ucAndMembershipVKey, proof.SP1Proof.VKey)
	}

	var output UcAndMembershipOutput
	if err := output.Unmarshal(proof.SP1Proof.PublicValues); err != nil {
		return nil, err
	}
	if err := ValidateKVPairsLength(len(output.KVPairs)); err != nil {
		return nil, err
	}

	uc := output.UpdateClientOutput

	if !proofHeight.EQ(uc.NewHeight) {
		return nil, errorsmod.Wrapf(ErrProofHeightMismatch, "proof height %s does not match update client output height %s", proofHeight, uc.NewHeight)
	}

	stored, err := GetClientState(clientStore)
	if err != nil {
		return nil, err
	}
	if err := ValidateClientStateAndTime(stored, uc.ClientState, uc.Time, now); err != nil {
		return nil, err
	}

	trustedHash, err := GetConsensusStateHash(clientStore, uint32(uc.TrustedHeight.RevisionHeight))
	if err != nil {
		return nil, err
	}
	if uc.TrustedConsensusState.CanonicalHash() != trustedHash {
		return nil, errorsmod.Wrap(ErrConsensusStateHashMismatch, "trusted consensus state does not match stored hash at trusted height")
	}

	if err := verifier.Verify(proof.SP1Proof.VKey, proof.SP1Proof.PublicValues, proof.SP1Proof.Proof); err != nil {
		return nil, err
	}

	result := CheckUpdateResult(clientStore, uc)

	if result == UpdateResultMisbehaviour {
		// A combined proof that reveals misbehaviour must freeze the client
		// and fail outright: it can never be allowed to also serve the
		// membership query it was bundled with (spec.md §4.5 step 7). The
		// freeze itself still only lands once the caller commits this
		// cache-wrapped store's writes; keeper.Keeper.Membership re-applies
		// it directly against the real store on this exact error so it
		// survives even if the caller chose not to commit.
		stored.IsFrozen = true
		SetClientState(clientStore, stored)
		return &CombinedApplyResult{UpdateResult: result}, errorsmod.Wrapf(ErrCannotHandleMisbehaviour, "conflicting consensus state at height %s", uc.NewHeight)
	}

	// The membership proof is checked against whichever consensus state the
	// update proves, whether that is the pre-existing one (NoOp) or the
	// newly proven one (Update): in both cases it is uc.NewConsensusState,
	// the height the prover bound its commitment-root claim to.
	pair, found := FindKVPair(output.KVPairs, path)
	if !found {
		return nil, errorsmod.Wrapf(ErrMembershipProofKeyNotFound, "path %x", joinPath(path))
	}
	if !ValueEqual(pair.Value, value) {
		return nil, errorsmod.Wrapf(ErrMembershipProofValueMismatch, "path %x: expected %x, got %x", joinPath(path), value, pair.Value)
	}

	switch result {
	case UpdateResultUpdate:
		if uc.NewHeight.RevisionHeight > stored.LatestHeight.RevisionHeight {
			stored.LatestHeight = uc.NewHeight
			SetClientState(clientStore, stored)
		}
		SetConsensusStateHash(clientStore, uint32(uc.NewHeight.RevisionHeight), uc.NewConsensusState.CanonicalHash())
	case UpdateResultNoOp:
		// Unlike the plain update path, the combined path still needs to
		// validate and return the membership result even when the update
		// itself is a no-op, so it does not return early here.
	}

	out := &CombinedApplyResult{
		UpdateResult: result,
		Timestamp:    uc.NewConsensusState.Timestamp,
	}
	if len(output.KVPairs) > 1 {
		out.CachePairs = output.KVPairs
		out.CacheHeight = uint32(uc.NewHeight.RevisionHeight)
	}
	return out, nil
}
