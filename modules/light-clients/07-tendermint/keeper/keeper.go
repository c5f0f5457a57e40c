package keeper

import (
	"io"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/store/cachekv"
	storetypes "cosmossdk.io/store/types"
	"github.com/hashicorp/go-metrics"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/telemetry"

	"github.com/cosmos/sp1-ics07-tendermint/modules/light-clients/07-tendermint/types"
)

// Keeper wraps the four program verifying keys this light client was
// deployed with, the succinct-proof Verifier collaborator, and the
// per-transaction membership cache (spec.md §1, §4.7). It is constructed
// once per app and threaded into LightClientModule the way
// 06-solomachine's keeper.Keeper is threaded into its LightClientModule.
type Keeper struct {
	storeKey storetypes.StoreKey

	// verifyingKeys bind this deployment to one, and only one, compiled
	// version of each of the four succinct programs (spec.md §3 "Typed
	// outputs"). A mismatch is always a caller/config error, never a
	// reason to accept the proof under the wrong program.
	updateClientVKey    [32]byte
	membershipVKey      [32]byte
	ucAndMembershipVKey [32]byte
	misbehaviourVKey    [32]byte

	verifier types.Verifier

	// transientCache is cleared at the start of every transaction by the
	// host ante/post handler (spec.md §4.7, §9 Open Question resolved in
	// types.TransientCache's doc comment: modeled as an explicit map
	// rather than cosmos-sdk's block-scoped transient store).
	transientCache *types.TransientCache

	logger log.Logger
}

// NewKeeper constructs a Keeper bound to a single deployment's four
// verifying keys and succinct-proof verifier backend.
func NewKeeper(
	storeKey storetypes.StoreKey,
	updateClientVKey, membershipVKey, ucAndMembershipVKey, misbehaviourVKey [32]byte,
	verifier types.Verifier,
	logger log.Logger,
) Keeper {
	return Keeper{
		storeKey:            storeKey,
		updateClientVKey:    updateClientVKey,
		membershipVKey:      membershipVKey,
		ucAndMembershipVKey: ucAndMembershipVKey,
		misbehaviourVKey:    misbehaviourVKey,
		verifier:            verifier,
		transientCache:      types.NewTransientCache(),
		logger:              logger.With("module", "x/"+types.ModuleName),
	}
}

// Logger returns a module-scoped logger, following the
// ctx.Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
// convention used throughout cosmos-sdk keepers.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return k.logger
}

// ClientStore returns the prefixed KVStore for a single client instance,
// the same prefixing convention 06-solomachine's keeper.ClientStore and
// 08-wasm's keeper use (clients/<clientID>/ under the module's store key).
func (k Keeper) ClientStore(ctx sdk.Context, clientID string) storetypes.KVStore {
	store := ctx.KVStore(k.storeKey)
	return prefixStore(store, clientID)
}

// ClearTransientCache resets the per-transaction membership cache. The host
// integration calls this once per transaction boundary (e.g. from an
// AnteHandler decorator or a BeginBlock/EndBlock pairing, depending on how
// "transaction" is delimited on the host chain) — never between handler
// calls batched within a single multicall transaction (spec.md §5).
func (k Keeper) ClearTransientCache() {
	k.transientCache.Clear()
}

// GetClientState returns the locally stored ClientState for clientID
// (spec.md §4.1 "getClientState").
func (k Keeper) GetClientState(ctx sdk.Context, clientID string) (types.ClientState, error) {
	return types.GetClientState(k.ClientStore(ctx, clientID))
}

// CreateClient implements spec.md §6's constructor: it persists the initial
// ClientState and seeds the consensus-state-hash map. Construction is never
// gated by requireNotFrozen: there is no prior state to be frozen yet.
func (k Keeper) CreateClient(ctx sdk.Context, clientID string, cs types.ClientState, initialConsensusStateHash [32]byte) error {
	store := k.ClientStore(ctx, clientID)
	return types.InitializeClient(store, cs, initialConsensusStateHash)
}

// Status reports whether the client is Active or Frozen (spec.md's
// supplemented Status accessor, SPEC_FULL.md §4).
func (k Keeper) Status(ctx sdk.Context, clientID string) (types.Status, error) {
	cs, err := types.GetClientState(k.ClientStore(ctx, clientID))
	if err != nil {
		return types.Frozen, err
	}
	return cs.Status(), nil
}

// GetTimestampAtHeight returns the timestamp already proven for height
// during the current transaction (SPEC_FULL.md §4 supplemented accessor,
// modeled on exported.ClientState.GetTimestampAtHeight). Because permanent
// storage only ever holds a consensus-state hash, not the full consensus
// state, only pairs written to the transient cache by a batched (more than
// one pair) membership proof earlier in this transaction are served here;
// update calls and single-pair membership proofs leave nothing to read.
// A height with no stored consensus-state hash fails with
// ErrConsensusStateNotFound; an uncached pair fails with
// ErrKeyValuePairNotInCache.
func (k Keeper) GetTimestampAtHeight(ctx sdk.Context, clientID string, height types.Height, pair types.KVPair) (uint64, error) {
	store := k.ClientStore(ctx, clientID)
	if _, err := types.GetConsensusStateHash(store, uint32(height.RevisionHeight)); err != nil {
		return 0, err
	}
	return k.transientCache.GetCachedKVPair(uint32(height.RevisionHeight), pair)
}

// UpdateClient runs the single-header update path (spec.md §4.3). It
// cache-wraps the client store so that a verifier failure unwinds every
// write this call would otherwise have made, matching
// types.ApplyUpdateClient's documented contract.
func (k Keeper) UpdateClient(ctx sdk.Context, clientID string, msg types.MsgUpdateClient) (types.UpdateResult, error) {
	store := k.ClientStore(ctx, clientID)
	cached := cachekv.NewStore(store)

	result, err := types.ApplyUpdateClient(cached, k.updateClientVKey, k.verifier, msg, ctx.BlockTime())
	if err != nil {
		return result, err
	}
	cached.Write()

	telemetry.IncrCounterWithLabels(
		[]string{types.ModuleName, "update_client"}, 1,
		[]metrics.Label{telemetry.NewLabel("result", result.String())},
	)
	if result == types.UpdateResultMisbehaviour {
		k.Logger(ctx).Info("client frozen by conflicting update", "client-id", clientID)
	}
	return result, nil
}

// Membership runs the membership-verification path (spec.md §4.4). If
// msg.Proof is empty it is a pure cache lookup (spec.md §4.4 step 1,
// "Cached" branch); otherwise it dispatches on the decoded
// MembershipProof envelope's ProofType (spec.md §4.4 step 2).
func (k Keeper) Membership(ctx sdk.Context, clientID string, msg types.MsgMembership) (uint64, error) {
	store := k.ClientStore(ctx, clientID)

	if len(msg.Proof) == 0 {
		return k.transientCache.GetCachedKVPair(uint32(msg.ProofHeight.RevisionHeight), types.KVPair{Path: msg.Path, Value: msg.Value})
	}

	var envelope types.MembershipProof
	if err := envelope.Unmarshal(msg.Proof); err != nil {
		return 0, err
	}

	switch envelope.ProofType {
	case types.SP1MembershipProofType:
		cached := cachekv.NewStore(store)
		result, err := types.ApplySingleHeightMembership(cached, k.membershipVKey, k.verifier, msg.ProofHeight, msg.Path, msg.Value, envelope.Proof)
		if err != nil {
			return 0, err
		}
		cached.Write()
		if result.CachePairs != nil {
			k.transientCache.CacheKVPairs(result.CacheHeight, result.CachePairs, result.Timestamp)
		}
		return result.Timestamp, nil

	case types.SP1MembershipAndUpdateClientProofType:
		cached := cachekv.NewStore(store)
		result, err := types.ApplyMembershipAndUpdateClient(cached, k.ucAndMembershipVKey, k.verifier, envelope.Proof, msg.ProofHeight, msg.Path, msg.Value, ctx.BlockTime())
		if result != nil && result.UpdateResult == types.UpdateResultMisbehaviour {
			// The freeze must durably persist even though this call returns
			// an error and the rest of `cached` is discarded
			// (spec.md §4.5 step 9 / §9 Open Question).
			if ferr := types.FreezeClientState(store); ferr != nil {
				return 0, ferr
			}
		}
		if err != nil {
			return 0, err
		}
		cached.Write()
		if result.CachePairs != nil {
			k.transientCache.CacheKVPairs(result.CacheHeight, result.CachePairs, result.Timestamp)
		}
		return result.Timestamp, nil

	default:
		return 0, errorsmod.Wrapf(types.ErrUnknownMembershipProofType, "proof type %d", envelope.ProofType)
	}
}

// Misbehaviour runs the misbehaviour path (spec.md §4.6). No cache-wrap is
// required: ApplyMisbehaviour only writes after its verifier call succeeds.
func (k Keeper) Misbehaviour(ctx sdk.Context, clientID string, msg types.MsgSubmitMisbehaviour) error {
	store := k.ClientStore(ctx, clientID)
	if err := types.ApplyMisbehaviour(store, k.misbehaviourVKey, k.verifier, msg, ctx.BlockTime()); err != nil {
		return err
	}
	telemetry.IncrCounter(1, types.ModuleName, "misbehaviour_submitted")
	k.Logger(ctx).Info("client frozen by submitted misbehaviour", "client-id", clientID)
	return nil
}

// UpgradeClient is explicitly out of scope (spec.md Non-goals: "IBC client
// upgrade proposals"); it always fails the same way 06-solomachine's
// light_client_module.go marks deprecated operations, rather than silently
// no-opping.
func (k Keeper) UpgradeClient(ctx sdk.Context, clientID string) error {
	return types.ErrFeatureNotSupported
}

// prefixStore scopes a KVStore to a single client instance, the same
// "clients/<clientID>/" convention ibc-go's core 24-host key builders use.
func prefixStore(store storetypes.KVStore, clientID string) storetypes.KVStore {
	return storePrefix{parent: store, prefix: []byte("clients/" + clientID + "/")}
}

// storePrefix is a minimal prefixed-store wrapper, grounded on the same
// idea as cosmos-sdk's store/prefix.Store but narrowed to this package's
// needs so the keeper does not need to import the full prefix store for a
// single concatenation rule.
type storePrefix struct {
	parent storetypes.KVStore
	prefix []byte
}

func (s storePrefix) key(k []byte) []byte {
	out := make([]byte, 0, len(s.prefix)+len(k))
	out = append(out, s.prefix...)
	out = append(out, k...)
	return out
}

func (s storePrefix) Get(key []byte) []byte            { return s.parent.Get(s.key(key)) }
func (s storePrefix) Has(key []byte) bool              { return s.parent.Has(s.key(key)) }
func (s storePrefix) Set(key, value []byte)            { s.parent.Set(s.key(key), value) }
func (s storePrefix) Delete(key []byte)                { s.parent.Delete(s.key(key)) }
func (s storePrefix) GetStoreType() storetypes.StoreType {
	return s.parent.GetStoreType()
}
func (s storePrefix) CacheWrap() storetypes.CacheWrap {
	return cachekv.NewStore(s)
}
func (s storePrefix) CacheWrapWithTrace(w io.Writer, tc storetypes.TraceContext) storetypes.CacheWrap {
	return cachekv.NewStore(s)
}
func (s storePrefix) Iterator(start, end []byte) storetypes.Iterator {
	return s.parent.Iterator(s.key(start), s.key(end))
}
func (s storePrefix) ReverseIterator(start, end []byte) storetypes.Iterator {
	return s.parent.ReverseIterator(s.key(start), s.key(end))
}
