package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cosmos/sp1-ics07-tendermint/modules/light-clients/07-tendermint/types"
)

var (
	updateClientVKey    = [32]byte{0xAA}
	ucAndMembershipVKey = [32]byte{0xEE}
)

func TestApplyUpdateClient_Update(t *testing.T) {
	store := newTestStore()
	cs := testClientState()
	trusted := types.NewConsensusState(1000, [32]byte{1}, [32]byte{2})
	require.NoError(t, types.InitializeClient(store, cs, trusted.CanonicalHash()))

	newConsensus := types.NewConsensusState(2000, [32]byte{3}, [32]byte{4})
	output := types.UpdateClientOutput{
		TrustedHeight:         types.NewHeight(0, 1),
		TrustedConsensusState: trusted,
		NewHeight:             types.NewHeight(0, 2),
		NewConsensusState:     newConsensus,
		ClientState:           cs,
		Time:                  1500,
	}
	pv, err := output.Marshal()
	require.NoError(t, err)

	msg := types.MsgUpdateClient{SP1Proof: types.SP1Proof{VKey: updateClientVKey, PublicValues: pv, Proof: []byte("proof")}}
	now := time.Unix(1500, 0)

	result, err := types.ApplyUpdateClient(store, updateClientVKey, acceptVerifier{}, msg, now)
	require.NoError(t, err)
	require.Equal(t, types.UpdateResultUpdate, result)

	hash, err := types.GetConsensusStateHash(store, 2)
	require.NoError(t, err)
	require.Equal(t, newConsensus.CanonicalHash(), hash)

	stored, err := types.GetClientState(store)
	require.NoError(t, err)
	require.Equal(t, types.NewHeight(0, 2), stored.LatestHeight)
}

func TestApplyUpdateClient_NoOp(t *testing.T) {
	store := newTestStore()
	cs := testClientState()
	trusted := types.NewConsensusState(1000, [32]byte{1}, [32]byte{2})
	require.NoError(t, types.InitializeClient(store, cs, trusted.CanonicalHash()))

	newConsensus := types.NewConsensusState(2000, [32]byte{3}, [32]byte{4})
	types.SetConsensusStateHash(store, 2, newConsensus.CanonicalHash())

	// Resubmitting the consensus state the client already trusts at the new
	// height, with a timestamp after the trusted consensus state's, must be a
	// no-op and must never reach the verifier (spec.md §4.3 step 6 / P7).
	output := types.UpdateClientOutput{
		TrustedHeight:         types.NewHeight(0, 1),
		TrustedConsensusState: trusted,
		NewHeight:             types.NewHeight(0, 2),
		NewConsensusState:     newConsensus,
		ClientState:           cs,
		Time:                  1500,
	}
	pv, err := output.Marshal()
	require.NoError(t, err)
	msg := types.MsgUpdateClient{SP1Proof: types.SP1Proof{VKey: updateClientVKey, PublicValues: pv, Proof: []byte("proof")}}

	result, err := types.ApplyUpdateClient(store, updateClientVKey, rejectVerifier{}, msg, time.Unix(1500, 0))
	require.NoError(t, err)
	require.Equal(t, types.UpdateResultNoOp, result)
}

func TestApplyUpdateClient_Misbehaviour(t *testing.T) {
	store := newTestStore()
	cs := testClientState()
	trusted := types.NewConsensusState(1000, [32]byte{1}, [32]byte{2})
	require.NoError(t, types.InitializeClient(store, cs, trusted.CanonicalHash()))

	// A second, different consensus state claimed at the same already-set
	// height is misbehaviour.
	conflicting := types.NewConsensusState(999, [32]byte{9}, [32]byte{9})
	output := types.UpdateClientOutput{
		TrustedHeight:         types.NewHeight(0, 1),
		TrustedConsensusState: trusted,
		NewHeight:             types.NewHeight(0, 1),
		NewConsensusState:     conflicting,
		ClientState:           cs,
		Time:                  1500,
	}
	pv, err := output.Marshal()
	require.NoError(t, err)
	msg := types.MsgUpdateClient{SP1Proof: types.SP1Proof{VKey: updateClientVKey, PublicValues: pv, Proof: []byte("proof")}}

	result, err := types.ApplyUpdateClient(store, updateClientVKey, acceptVerifier{}, msg, time.Unix(1500, 0))
	require.NoError(t, err)
	require.Equal(t, types.UpdateResultMisbehaviour, result)

	stored, err := types.GetClientState(store)
	require.NoError(t, err)
	require.True(t, stored.IsFrozen)
}

func TestApplyUpdateClient_VerifierFailureReturnsError(t *testing.T) {
	store := newTestStore()
	cs := testClientState()
	trusted := types.NewConsensusState(1000, [32]byte{1}, [32]byte{2})
	require.NoError(t, types.InitializeClient(store, cs, trusted.CanonicalHash()))

	newConsensus := types.NewConsensusState(2000, [32]byte{3}, [32]byte{4})
	output := types.UpdateClientOutput{
		TrustedHeight:         types.NewHeight(0, 1),
		TrustedConsensusState: trusted,
		NewHeight:             types.NewHeight(0, 2),
		NewConsensusState:     newConsensus,
		ClientState:           cs,
		Time:                  1500,
	}
	pv, err := output.Marshal()
	require.NoError(t, err)
	msg := types.MsgUpdateClient{SP1Proof: types.SP1Proof{VKey: updateClientVKey, PublicValues: pv, Proof: []byte("proof")}}

	// ApplyUpdateClient writes directly to `store` here (not a cache-wrap)
	// to isolate this unit test to the function's own return contract: it
	// must surface the verifier's error, and the keeper layer (not under
	// test here) is what discards the writes via CacheWrap/Write semantics.
	_, err = types.ApplyUpdateClient(store, updateClientVKey, rejectVerifier{}, msg, time.Unix(1500, 0))
	require.ErrorIs(t, err, errVerifierRejected)
}

func TestApplyUpdateClient_WrongVKey(t *testing.T) {
	store := newTestStore()
	cs := testClientState()
	trusted := types.NewConsensusState(1000, [32]byte{1}, [32]byte{2})
	require.NoError(t, types.InitializeClient(store, cs, trusted.CanonicalHash()))

	msg := types.MsgUpdateClient{SP1Proof: types.SP1Proof{VKey: [32]byte{0xBB}, PublicValues: []byte{}, Proof: []byte{}}}
	_, err := types.ApplyUpdateClient(store, updateClientVKey, acceptVerifier{}, msg, time.Unix(1500, 0))
	require.ErrorIs(t, err, types.ErrVerificationKeyMismatch)
}
