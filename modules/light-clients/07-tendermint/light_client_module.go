package sp1ics07tendermint

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/sp1-ics07-tendermint/modules/light-clients/07-tendermint/keeper"
	"github.com/cosmos/sp1-ics07-tendermint/modules/light-clients/07-tendermint/types"
)

// LightClientModule is the thin adapter between the host chain's message
// routing and keeper.Keeper, grounded on 06-solomachine's
// LightClientModule: each method resolves the client's store and delegates
// to the keeper, translating panics-on-missing-state into ordinary errors
// the way VerifyClientMessage/UpdateState/Status do there. Unlike
// solomachine, every handler here already returns a typed error from the
// keeper, so none of these wrappers need to panic.
type LightClientModule struct {
	keeper keeper.Keeper
}

// NewLightClientModule constructs a LightClientModule around an
// already-configured Keeper.
func NewLightClientModule(k keeper.Keeper) LightClientModule {
	return LightClientModule{keeper: k}
}

// CreateClient implements spec.md §6's constructor.
func (l LightClientModule) CreateClient(ctx sdk.Context, clientID string, cs types.ClientState, initialConsensusStateHash [32]byte) error {
	return l.keeper.CreateClient(ctx, clientID, cs, initialConsensusStateHash)
}

// UpdateClient implements spec.md §4.3 / §6 "updateClient".
func (l LightClientModule) UpdateClient(ctx sdk.Context, clientID string, msg types.MsgUpdateClient) (types.UpdateResult, error) {
	if err := l.requireNotFrozen(ctx, clientID); err != nil {
		return 0, err
	}
	return l.keeper.UpdateClient(ctx, clientID, msg)
}

// Membership implements spec.md §4.4 / §6 "membership".
func (l LightClientModule) Membership(ctx sdk.Context, clientID string, msg types.MsgMembership) (uint64, error) {
	if err := l.requireNotFrozen(ctx, clientID); err != nil {
		return 0, err
	}
	return l.keeper.Membership(ctx, clientID, msg)
}

// SubmitMisbehaviour implements spec.md §4.6 / §6 "misbehaviour". Unlike
// the other operations it is intentionally NOT gated by requireNotFrozen:
// an already-frozen client can still accept further misbehaviour evidence
// (FreezeClientState is idempotent), matching ibc-go's convention that
// misbehaviour submission never becomes impossible once a client is
// already frozen.
func (l LightClientModule) SubmitMisbehaviour(ctx sdk.Context, clientID string, msg types.MsgSubmitMisbehaviour) error {
	return l.keeper.Misbehaviour(ctx, clientID, msg)
}

// GetClientState implements spec.md §4.1 / §6 "getClientState". Read-only
// accessors are never gated by requireNotFrozen: callers are expected to
// consult Status() themselves if frozen-ness matters to them.
func (l LightClientModule) GetClientState(ctx sdk.Context, clientID string) (types.ClientState, error) {
	return l.keeper.GetClientState(ctx, clientID)
}

// Status implements the supplemented Status() query (SPEC_FULL.md §4).
func (l LightClientModule) Status(ctx sdk.Context, clientID string) (types.Status, error) {
	return l.keeper.Status(ctx, clientID)
}

// UpgradeClient implements spec.md's Non-goals entry for client upgrade
// proposals: always ErrFeatureNotSupported, never a silent no-op. Gated by
// notFrozen per spec.md §6's operations table, so a frozen client still
// reports FrozenClientState rather than FeatureNotSupported.
func (l LightClientModule) UpgradeClient(ctx sdk.Context, clientID string) error {
	if err := l.requireNotFrozen(ctx, clientID); err != nil {
		return err
	}
	return l.keeper.UpgradeClient(ctx, clientID)
}

// requireNotFrozen enforces spec.md §6's operations table "requires:
// notFrozen" column for updateClient, membership and upgradeClient.
func (l LightClientModule) requireNotFrozen(ctx sdk.Context, clientID string) error {
	status, err := l.keeper.Status(ctx, clientID)
	if err != nil {
		return err
	}
	if status == types.Frozen {
		return types.ErrFrozenClientState
	}
	return nil
}
