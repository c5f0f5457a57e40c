package keeper

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/sp1-ics07-tendermint/modules/light-clients/07-tendermint/types"
)

// QueryClientStateRequest is this module's read-only ClientState query
// (SPEC_FULL.md §4 "gRPC ClientState query service"), grounded on
// 29-fee/keeper/grpc_query.go's request/response/status.Error shape.
type QueryClientStateRequest struct {
	ClientId string
}

type QueryClientStateResponse struct {
	ClientState types.ClientState
}

// ClientState implements the ClientState gRPC method.
func (k Keeper) ClientState(c context.Context, req *QueryClientStateRequest) (*QueryClientStateResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}
	if req.ClientId == "" {
		return nil, status.Error(codes.InvalidArgument, "client id cannot be empty")
	}

	ctx := sdk.UnwrapSDKContext(c)

	cs, err := types.GetClientState(k.ClientStore(ctx, req.ClientId))
	if err != nil {
		return nil, status.Error(codes.NotFound, err.Error())
	}

	return &QueryClientStateResponse{ClientState: cs}, nil
}

// QueryConsensusStateHashRequest is a read-only lookup of a single trusted
// consensus-state hash, the closest analogue this hash-only storage model
// has to 29-fee's IncentivizedPacket single-item query.
type QueryConsensusStateHashRequest struct {
	ClientId       string
	RevisionHeight uint32
}

type QueryConsensusStateHashResponse struct {
	Hash [32]byte
}

func (k Keeper) ConsensusStateHash(c context.Context, req *QueryConsensusStateHashRequest) (*QueryConsensusStateHashResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}

	ctx := sdk.UnwrapSDKContext(c)

	hash, err := types.GetConsensusStateHash(k.ClientStore(ctx, req.ClientId), req.RevisionHeight)
	if err != nil {
		return nil, status.Error(codes.NotFound, err.Error())
	}

	return &QueryConsensusStateHashResponse{Hash: hash}, nil
}
