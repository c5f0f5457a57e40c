package types

import (
	"time"

	errorsmod "cosmossdk.io/errors"
)

// Constants from spec.md §6.
const (
	// AllowedClockDrift bounds how stale a proof's clock-reading may be.
	AllowedClockDrift = 30 * time.Minute
	// MaxKVPairsPerProof is the upper bound on a batched membership proof.
	MaxKVPairsPerProof = 256
	// MinKVPairsPerProof is the lower bound on a batched membership proof.
	MinKVPairsPerProof = 1
)

// ValidateClientStateAndTime implements spec.md §4.2's
// validateClientStateAndTime: a pure-view check binding a proof's declared
// client state and clock reading to the locally stored ClientState.
// LatestHeight and IsFrozen are intentionally NOT compared — the prover's
// view of those fields is allowed to lag the on-chain view.
func ValidateClientStateAndTime(stored ClientState, publicClientState ClientState, proofTime uint64, now time.Time) error {
	proofTimestamp := time.Unix(int64(proofTime), 0)

	if proofTimestamp.After(now) {
		return errorsmod.Wrapf(ErrProofIsInTheFuture, "proof time %s is after current time %s", proofTimestamp, now)
	}
	if now.Sub(proofTimestamp) > AllowedClockDrift {
		return errorsmod.Wrapf(ErrProofIsTooOld, "proof time %s is older than the allowed clock drift of %s (now: %s)", proofTimestamp, AllowedClockDrift, now)
	}
	if publicClientState.ChainID != stored.ChainID {
		return errorsmod.Wrapf(ErrChainIDMismatch, "expected %s, got %s", stored.ChainID, publicClientState.ChainID)
	}
	if !publicClientState.TrustLevel.EQ(stored.TrustLevel) {
		return errorsmod.Wrapf(ErrTrustThresholdMismatch, "expected %+v, got %+v", stored.TrustLevel, publicClientState.TrustLevel)
	}
	if publicClientState.TrustingPeriod != stored.TrustingPeriod {
		return errorsmod.Wrapf(ErrTrustingPeriodMismatch, "expected %d, got %d", stored.TrustingPeriod, publicClientState.TrustingPeriod)
	}
	if publicClientState.UnbondingPeriod != stored.UnbondingPeriod {
		return errorsmod.Wrapf(ErrUnbondingPeriodMismatch, "expected %d, got %d", stored.UnbondingPeriod, publicClientState.UnbondingPeriod)
	}
	return nil
}

// ValidateMembershipOutput implements spec.md §4.2's
// validateMembershipOutput: the trusted consensus state presented alongside
// a membership proof must match what is actually stored at proofHeight, and
// the proof's declared commitment root must match that consensus state's
// root.
func ValidateMembershipOutput(outputRoot [32]byte, storedHash [32]byte, trustedConsensusState ConsensusState) error {
	if trustedConsensusState.CanonicalHash() != storedHash {
		return errorsmod.Wrap(ErrConsensusStateHashMismatch, "trusted consensus state does not match stored hash at proof height")
	}
	if outputRoot != trustedConsensusState.Root {
		return errorsmod.Wrap(ErrConsensusStateRootMismatch, "commitment root does not match trusted consensus state root")
	}
	return nil
}

// ValidateKVPairsLength enforces spec.md §6's MIN/MAX_KV_PAIRS_PER_PROOF
// bound, shared by the single-height and combined membership paths.
func ValidateKVPairsLength(n int) error {
	if n < MinKVPairsPerProof || n > MaxKVPairsPerProof {
		return errorsmod.Wrapf(ErrLengthOutOfRange, "kv pairs length %d out of range [%d, %d]", n, MinKVPairsPerProof, MaxKVPairsPerProof)
	}
	return nil
}
