package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cosmos/sp1-ics07-tendermint/modules/light-clients/07-tendermint/types"
)

var membershipVKey = [32]byte{0xCC}

func TestApplySingleHeightMembership_Success(t *testing.T) {
	store := newTestStore()
	cs := testClientState()
	trusted := types.NewConsensusState(1000, [32]byte{7}, [32]byte{8})
	require.NoError(t, types.InitializeClient(store, cs, trusted.CanonicalHash()))

	path := [][]byte{[]byte("ibc"), []byte("clients"), []byte("07-tendermint-0")}
	value := []byte("client-state-bytes")
	output := types.MembershipOutput{
		CommitmentRoot: trusted.Root,
		KVPairs:        []types.KVPair{{Path: path, Value: value}},
	}
	pv, err := output.Marshal()
	require.NoError(t, err)

	innerProof := types.SP1MembershipProof{
		SP1Proof:              types.SP1Proof{VKey: membershipVKey, PublicValues: pv, Proof: []byte("proof")},
		TrustedConsensusState: trusted,
	}
	innerBz, err := innerProof.Marshal()
	require.NoError(t, err)

	result, err := types.ApplySingleHeightMembership(store, membershipVKey, acceptVerifier{}, types.NewHeight(0, 1), path, value, innerBz)
	require.NoError(t, err)
	require.Equal(t, trusted.Timestamp, result.Timestamp)
	require.Nil(t, result.CachePairs)
}

func TestApplySingleHeightMembership_ValueMismatch(t *testing.T) {
	store := newTestStore()
	cs := testClientState()
	trusted := types.NewConsensusState(1000, [32]byte{7}, [32]byte{8})
	require.NoError(t, types.InitializeClient(store, cs, trusted.CanonicalHash()))

	path := [][]byte{[]byte("path")}
	output := types.MembershipOutput{
		CommitmentRoot: trusted.Root,
		KVPairs:        []types.KVPair{{Path: path, Value: []byte("actual")}},
	}
	pv, err := output.Marshal()
	require.NoError(t, err)

	innerProof := types.SP1MembershipProof{
		SP1Proof:              types.SP1Proof{VKey: membershipVKey, PublicValues: pv, Proof: []byte("proof")},
		TrustedConsensusState: trusted,
	}
	innerBz, err := innerProof.Marshal()
	require.NoError(t, err)

	_, err = types.ApplySingleHeightMembership(store, membershipVKey, acceptVerifier{}, types.NewHeight(0, 1), path, []byte("expected"), innerBz)
	require.ErrorIs(t, err, types.ErrMembershipProofValueMismatch)
}

func TestApplySingleHeightMembership_BatchCachesAllPairs(t *testing.T) {
	store := newTestStore()
	cs := testClientState()
	trusted := types.NewConsensusState(1000, [32]byte{7}, [32]byte{8})
	require.NoError(t, types.InitializeClient(store, cs, trusted.CanonicalHash()))

	pathA := [][]byte{[]byte("a")}
	pathB := [][]byte{[]byte("b")}
	output := types.MembershipOutput{
		CommitmentRoot: trusted.Root,
		KVPairs: []types.KVPair{
			{Path: pathA, Value: []byte("va")},
			{Path: pathB, Value: []byte("vb")},
		},
	}
	pv, err := output.Marshal()
	require.NoError(t, err)

	innerProof := types.SP1MembershipProof{
		SP1Proof:              types.SP1Proof{VKey: membershipVKey, PublicValues: pv, Proof: []byte("proof")},
		TrustedConsensusState: trusted,
	}
	innerBz, err := innerProof.Marshal()
	require.NoError(t, err)

	result, err := types.ApplySingleHeightMembership(store, membershipVKey, acceptVerifier{}, types.NewHeight(0, 1), pathA, []byte("va"), innerBz)
	require.NoError(t, err)
	require.Len(t, result.CachePairs, 2)
}

func TestApplyMisbehaviour_FreezesClient(t *testing.T) {
	store := newTestStore()
	cs := testClientState()
	trusted1 := types.NewConsensusState(1000, [32]byte{1}, [32]byte{2})
	trusted2 := types.NewConsensusState(1100, [32]byte{3}, [32]byte{4})
	require.NoError(t, types.InitializeClient(store, cs, trusted1.CanonicalHash()))
	types.SetConsensusStateHash(store, 2, trusted2.CanonicalHash())

	misbehaviourVKey := [32]byte{0xDD}
	output := types.MisbehaviourOutput{
		ClientState:            cs,
		TrustedHeight1:         types.NewHeight(0, 1),
		TrustedConsensusState1: trusted1,
		TrustedHeight2:         types.NewHeight(0, 2),
		TrustedConsensusState2: trusted2,
		Time:                   1500,
	}
	pv, err := output.Marshal()
	require.NoError(t, err)

	msg := types.MsgSubmitMisbehaviour{SP1Proof: types.SP1Proof{VKey: misbehaviourVKey, PublicValues: pv, Proof: []byte("proof")}}
	err = types.ApplyMisbehaviour(store, misbehaviourVKey, acceptVerifier{}, msg, time.Unix(1500, 0))
	require.NoError(t, err)

	stored, err := types.GetClientState(store)
	require.NoError(t, err)
	require.True(t, stored.IsFrozen)
}
