package types_test

import (
	"errors"

	"cosmossdk.io/store/dbadapter"
	storetypes "cosmossdk.io/store/types"
	dbm "github.com/cosmos/cosmos-db"

	"github.com/cosmos/sp1-ics07-tendermint/modules/light-clients/07-tendermint/types"
)

// newTestStore returns a fresh in-memory KVStore, the same dbadapter-backed
// construction cosmos-sdk keeper tests use when they don't need a full app.
func newTestStore() storetypes.KVStore {
	return dbadapter.Store{DB: dbm.NewMemDB()}
}

// acceptVerifier always succeeds, modeling a succinct proof that has
// already been checked off-chain by the test author.
type acceptVerifier struct{}

func (acceptVerifier) Verify(vKey [32]byte, publicValues []byte, proof []byte) error {
	return nil
}

// rejectVerifier always fails, used to assert that a verifier failure is
// surfaced as the handler's error and that a NoOp update never reaches the
// verifier.
type rejectVerifier struct{}

var errVerifierRejected = errors.New("verifier rejected proof")

func (rejectVerifier) Verify(vKey [32]byte, publicValues []byte, proof []byte) error {
	return errVerifierRejected
}

func testClientState() types.ClientState {
	cs, err := types.NewClientState(
		"test-chain",
		types.NewFraction(2, 3),
		types.NewHeight(0, 1),
		1800,
		3600,
	)
	if err != nil {
		panic(err)
	}
	return cs
}
