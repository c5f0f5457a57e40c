package types

import (
	errorsmod "cosmossdk.io/errors"
)

// sp1ics07tendermint sentinel errors, registered under a dedicated codespace
// the same way clienttypes.Err* are registered in ibc-go's 02-client module.
var (
	ErrFrozenClientState            = errorsmod.Register(ModuleName, 2, "client state is frozen")
	ErrVerificationKeyMismatch      = errorsmod.Register(ModuleName, 3, "verification key mismatch")
	ErrConsensusStateHashMismatch   = errorsmod.Register(ModuleName, 4, "consensus state hash mismatch")
	ErrConsensusStateRootMismatch   = errorsmod.Register(ModuleName, 5, "consensus state root mismatch")
	ErrConsensusStateNotFound       = errorsmod.Register(ModuleName, 6, "consensus state not found")
	ErrChainIDMismatch              = errorsmod.Register(ModuleName, 7, "chain id mismatch")
	ErrTrustThresholdMismatch       = errorsmod.Register(ModuleName, 8, "trust threshold mismatch")
	ErrTrustingPeriodMismatch       = errorsmod.Register(ModuleName, 9, "trusting period mismatch")
	ErrUnbondingPeriodMismatch      = errorsmod.Register(ModuleName, 10, "unbonding period mismatch")
	ErrProofIsInTheFuture           = errorsmod.Register(ModuleName, 11, "proof time is in the future")
	ErrProofIsTooOld                = errorsmod.Register(ModuleName, 12, "proof time is older than the allowed clock drift")
	ErrMembershipProofKeyNotFound   = errorsmod.Register(ModuleName, 13, "key not found in membership proof kv pairs")
	ErrMembershipProofValueMismatch = errorsmod.Register(ModuleName, 14, "membership proof value mismatch")
	ErrLengthOutOfRange             = errorsmod.Register(ModuleName, 15, "length out of allowed range")
	ErrUnknownMembershipProofType   = errorsmod.Register(ModuleName, 16, "unknown membership proof type")
	ErrKeyValuePairNotInCache       = errorsmod.Register(ModuleName, 17, "key value pair not found in transient cache")
	ErrProofHeightMismatch          = errorsmod.Register(ModuleName, 18, "proof height does not match update client output height")
	ErrCannotHandleMisbehaviour     = errorsmod.Register(ModuleName, 19, "combined proof detected misbehaviour, client frozen")
	ErrTrustingPeriodTooLong        = errorsmod.Register(ModuleName, 20, "trusting period exceeds unbonding period")
	ErrFeatureNotSupported          = errorsmod.Register(ModuleName, 21, "feature not supported")
	ErrInvalidClientState           = errorsmod.Register(ModuleName, 22, "invalid client state")
	ErrInvalidConsensusState        = errorsmod.Register(ModuleName, 23, "invalid consensus state")
)
