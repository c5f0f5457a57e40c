package types

import (
	"time"

	errorsmod "cosmossdk.io/errors"
	storetypes "cosmossdk.io/store/types"
)

// UpdateResult is the three-variant outcome of updateClient (spec.md §4.3),
// re-architected from the source's boolean "froze the client?" return into
// an exhaustive tagged result the way the teacher's CheckHeaderAndUpdateState
// communicates outcomes through its return values.
type UpdateResult uint8

const (
	// UpdateResultUpdate means a new height/consensus state was accepted.
	UpdateResultUpdate UpdateResult = iota
	// UpdateResultMisbehaviour means the proof's new consensus state
	// conflicts with the one already stored at that height, or its timestamp
	// is not after the trusted consensus state's, and the client has been
	// frozen.
	UpdateResultMisbehaviour
	// UpdateResultNoOp means the submission exactly duplicates already
	// trusted state; no write occurred and the verifier was not called.
	UpdateResultNoOp
)

func (r UpdateResult) String() string {
	switch r {
	case UpdateResultUpdate:
		return "Update"
	case UpdateResultMisbehaviour:
		return "Misbehaviour"
	case UpdateResultNoOp:
		return "NoOp"
	default:
		return "Unknown"
	}
}

// MsgUpdateClient wraps the encoded update proof (spec.md §6).
type MsgUpdateClient struct {
	SP1Proof SP1Proof
}

// CheckUpdateResult is checkUpdateResult from spec.md §4.3: a pure-view
// decision, made purely from on-chain state, about what submitting this
// output would mean.
//
//   - stored == 0                                                  → Update
//   - stored != hash(newConsensusState) OR trusted.ts ≥ new.ts      → Misbehaviour
//   - otherwise                                                     → NoOp
func CheckUpdateResult(clientStore storetypes.KVStore, output UpdateClientOutput) UpdateResult {
	h := uint32(output.NewHeight.RevisionHeight)
	stored, err := GetConsensusStateHash(clientStore, h)
	if err != nil {
		// ErrConsensusStateNotFound means the zero sentinel: no prior entry.
		return UpdateResultUpdate
	}

	newHash := output.NewConsensusState.CanonicalHash()
	if stored != newHash || output.TrustedConsensusState.Timestamp >= output.NewConsensusState.Timestamp {
		return UpdateResultMisbehaviour
	}
	return UpdateResultNoOp
}

// ApplyUpdateClient implements spec.md §4.3's updateClient handler end to
// end, including the verifier call. clientStore is expected to be a
// cache-wrapped child of the real client store (storetypes.KVStore's
// CacheWrap(), the same primitive 08-wasm's MergedClientStore exposes): the
// caller (keeper.Keeper.UpdateClient) commits it with Write() only once
// ApplyUpdateClient returns a nil error, and discards it otherwise. This
// reproduces "any verifier failure reverts the whole transaction, unwinding
// step 6" (spec.md §4.3) without relying on an EVM-style transaction
// revert: the writes below never reach the real store until the verifier
// has also succeeded.
//
// On UpdateResultNoOp, the function returns before calling the verifier at
// all (spec.md §4.3 step 6 "NoOp: return immediately without calling the
// verifier"; this is P7).
func ApplyUpdateClient(
	clientStore storetypes.KVStore,
	updateClientVKey [32]byte,
	verifier Verifier,
	msg MsgUpdateClient,
	now time.Time,
) (UpdateResult, error) {
	if msg.SP1Proof.VKey != updateClientVKey {
		return 0, errorsmod.Wrapf(ErrVerificationKeyMismatch, "expected %x, got %x", updateClientVKey, msg.SP1Proof.VKey)
	}

	var output UpdateClientOutput
	if err := output.Unmarshal(msg.SP1Proof.PublicValues); err != nil {
		return 0, err
	}

	stored, err := GetClientState(clientStore)
	if err != nil {
		return 0, err
	}

	if err := ValidateClientStateAndTime(stored, output.ClientState, output.Time, now); err != nil {
		return 0, err
	}

	trustedHash, err := GetConsensusStateHash(clientStore, uint32(output.TrustedHeight.RevisionHeight))
	if err != nil {
		return 0, err
	}
	if output.TrustedConsensusState.CanonicalHash() != trustedHash {
		return 0, errorsmod.Wrap(ErrConsensusStateHashMismatch, "trusted consensus state does not match stored hash at trusted height")
	}

	result := CheckUpdateResult(clientStore, output)

	switch result {
	case UpdateResultUpdate:
		if output.NewHeight.RevisionHeight > stored.LatestHeight.RevisionHeight {
			stored.LatestHeight = output.NewHeight
			SetClientState(clientStore, stored)
		}
		SetConsensusStateHash(clientStore, uint32(output.NewHeight.RevisionHeight), output.NewConsensusState.CanonicalHash())
	case UpdateResultMisbehaviour:
		stored.IsFrozen = true
		SetClientState(clientStore, stored)
	case UpdateResultNoOp:
		return UpdateResultNoOp, nil
	}

	if err := verifier.Verify(msg.SP1Proof.VKey, msg.SP1Proof.PublicValues, msg.SP1Proof.Proof); err != nil {
		return result, err
	}

	return result, nil
}
