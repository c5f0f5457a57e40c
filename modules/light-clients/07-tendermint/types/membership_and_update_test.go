package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cosmos/sp1-ics07-tendermint/modules/light-clients/07-tendermint/types"
)

func TestApplyMembershipAndUpdateClient_UpdateAndProve(t *testing.T) {
	store := newTestStore()
	cs := testClientState()
	trusted := types.NewConsensusState(1000, [32]byte{1}, [32]byte{2})
	require.NoError(t, types.InitializeClient(store, cs, trusted.CanonicalHash()))

	newConsensus := types.NewConsensusState(2000, [32]byte{5}, [32]byte{6})
	newHeight := types.NewHeight(0, 2)
	path := [][]byte{[]byte("path")}
	value := []byte("value")

	ucOutput := types.UpdateClientOutput{
		TrustedHeight:         types.NewHeight(0, 1),
		TrustedConsensusState: trusted,
		NewHeight:             newHeight,
		NewConsensusState:     newConsensus,
		ClientState:           cs,
		Time:                  1500,
	}
	output := types.UcAndMembershipOutput{
		UpdateClientOutput: ucOutput,
		KVPairs:            []types.KVPair{{Path: path, Value: value}},
	}
	pv, err := output.Marshal()
	require.NoError(t, err)

	innerProof := types.SP1MembershipAndUpdateClientProof{
		SP1Proof: types.SP1Proof{VKey: ucAndMembershipVKey, PublicValues: pv, Proof: []byte("proof")},
	}
	innerBz, err := innerProof.Marshal()
	require.NoError(t, err)

	result, err := types.ApplyMembershipAndUpdateClient(store, ucAndMembershipVKey, acceptVerifier{}, innerBz, newHeight, path, value, time.Unix(1500, 0))
	require.NoError(t, err)
	require.Equal(t, types.UpdateResultUpdate, result.UpdateResult)
	require.Equal(t, newConsensus.Timestamp, result.Timestamp)

	hash, err := types.GetConsensusStateHash(store, 2)
	require.NoError(t, err)
	require.Equal(t, newConsensus.CanonicalHash(), hash)
}

func TestApplyMembershipAndUpdateClient_ProofHeightMismatch(t *testing.T) {
	store := newTestStore()
	cs := testClientState()
	trusted := types.NewConsensusState(1000, [32]byte{1}, [32]byte{2})
	require.NoError(t, types.InitializeClient(store, cs, trusted.CanonicalHash()))

	newConsensus := types.NewConsensusState(2000, [32]byte{5}, [32]byte{6})
	path := [][]byte{[]byte("path")}
	value := []byte("value")

	ucOutput := types.UpdateClientOutput{
		TrustedHeight:         types.NewHeight(0, 1),
		TrustedConsensusState: trusted,
		NewHeight:             types.NewHeight(0, 2),
		NewConsensusState:     newConsensus,
		ClientState:           cs,
		Time:                  1500,
	}
	output := types.UcAndMembershipOutput{
		UpdateClientOutput: ucOutput,
		KVPairs:            []types.KVPair{{Path: path, Value: value}},
	}
	pv, err := output.Marshal()
	require.NoError(t, err)

	innerProof := types.SP1MembershipAndUpdateClientProof{
		SP1Proof: types.SP1Proof{VKey: ucAndMembershipVKey, PublicValues: pv, Proof: []byte("proof")},
	}
	innerBz, err := innerProof.Marshal()
	require.NoError(t, err)

	// The caller asked for height (0,3), but the proof's update only binds
	// to (0,2): this must be rejected before anything is verified or
	// written, per spec.md §4.5 step 4.
	wrongHeight := types.NewHeight(0, 3)
	result, err := types.ApplyMembershipAndUpdateClient(store, ucAndMembershipVKey, acceptVerifier{}, innerBz, wrongHeight, path, value, time.Unix(1500, 0))
	require.ErrorIs(t, err, types.ErrProofHeightMismatch)
	require.Nil(t, result)
}

func TestApplyMembershipAndUpdateClient_MisbehaviourFreezesAndFails(t *testing.T) {
	store := newTestStore()
	cs := testClientState()
	trusted := types.NewConsensusState(1000, [32]byte{1}, [32]byte{2})
	require.NoError(t, types.InitializeClient(store, cs, trusted.CanonicalHash()))

	conflicting := types.NewConsensusState(999, [32]byte{9}, [32]byte{9})
	conflictingHeight := types.NewHeight(0, 1)
	path := [][]byte{[]byte("path")}
	value := []byte("value")

	ucOutput := types.UpdateClientOutput{
		TrustedHeight:         types.NewHeight(0, 1),
		TrustedConsensusState: trusted,
		NewHeight:             conflictingHeight,
		NewConsensusState:     conflicting,
		ClientState:           cs,
		Time:                  1500,
	}
	output := types.UcAndMembershipOutput{
		UpdateClientOutput: ucOutput,
		KVPairs:            []types.KVPair{{Path: path, Value: value}},
	}
	pv, err := output.Marshal()
	require.NoError(t, err)

	innerProof := types.SP1MembershipAndUpdateClientProof{
		SP1Proof: types.SP1Proof{VKey: ucAndMembershipVKey, PublicValues: pv, Proof: []byte("proof")},
	}
	innerBz, err := innerProof.Marshal()
	require.NoError(t, err)

	// Even with a verifier that would accept the proof, a combined call that
	// reveals misbehaviour must freeze the client and fail outright: it must
	// never serve the bundled membership answer as a side effect of
	// detecting conflicting consensus states (spec.md §4.5 step 7).
	result, err := types.ApplyMembershipAndUpdateClient(store, ucAndMembershipVKey, acceptVerifier{}, innerBz, conflictingHeight, path, value, time.Unix(1500, 0))
	require.ErrorIs(t, err, types.ErrCannotHandleMisbehaviour)
	require.NotNil(t, result)
	require.Equal(t, types.UpdateResultMisbehaviour, result.UpdateResult)
	require.Zero(t, result.Timestamp)

	cs, err = types.GetClientState(store)
	require.NoError(t, err)
	require.True(t, cs.IsFrozen)
}
