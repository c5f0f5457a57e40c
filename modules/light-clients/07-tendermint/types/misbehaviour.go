package types

import (
	"time"

	errorsmod "cosmossdk.io/errors"
	storetypes "cosmossdk.io/store/types"
)

// MsgSubmitMisbehaviour is the misbehaviour handler's input (spec.md §4.6).
type MsgSubmitMisbehaviour struct {
	SP1Proof SP1Proof
}

// ApplyMisbehaviour implements spec.md §4.6: given two internally-valid but
// conflicting headers at the same or different heights, each binding a
// distinct consensus state to a trusted ancestor, freeze the client.
//
// Unlike ApplyUpdateClient, every write here happens strictly after the
// verifier call succeeds, so ApplyMisbehaviour does not require
// clientStore to be a cache-wrapped store: there is nothing to unwind.
func ApplyMisbehaviour(
	clientStore storetypes.KVStore,
	misbehaviourVKey [32]byte,
	verifier Verifier,
	msg MsgSubmitMisbehaviour,
	now time.Time,
) error {
	if msg.SP1Proof.VKey != misbehaviourVKey {
		return errorsmod.Wrapf(ErrVerificationKeyMismatch, "expected %x, got %x", misbehaviourVKey, msg.SP1Proof.VKey)
	}

	var output MisbehaviourOutput
	if err := output.Unmarshal(msg.SP1Proof.PublicValues); err != nil {
		return err
	}

	stored, err := GetClientState(clientStore)
	if err != nil {
		return err
	}
	if err := ValidateClientStateAndTime(stored, output.ClientState, output.Time, now); err != nil {
		return err
	}

	trustedHash1, err := GetConsensusStateHash(clientStore, uint32(output.TrustedHeight1.RevisionHeight))
	if err != nil {
		return err
	}
	if output.TrustedConsensusState1.CanonicalHash() != trustedHash1 {
		return errorsmod.Wrap(ErrConsensusStateHashMismatch, "trusted consensus state 1 does not match stored hash at trusted height 1")
	}

	trustedHash2, err := GetConsensusStateHash(clientStore, uint32(output.TrustedHeight2.RevisionHeight))
	if err != nil {
		return err
	}
	if output.TrustedConsensusState2.CanonicalHash() != trustedHash2 {
		return errorsmod.Wrap(ErrConsensusStateHashMismatch, "trusted consensus state 2 does not match stored hash at trusted height 2")
	}

	if err := verifier.Verify(msg.SP1Proof.VKey, msg.SP1Proof.PublicValues, msg.SP1Proof.Proof); err != nil {
		return err
	}

	return FreezeClientState(clientStore)
}
